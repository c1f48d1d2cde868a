package types

import (
	"fmt"

	"github.com/segmentio/encoding/json"
)

// typeJSON 类型的 JSON 表示
//
// 简单类型可以直接写成字符串："int"、"bool"、"string"、"null"、"void"，
// 其他字符串视为类名。复合类型使用对象形式：
//
//	{"kind": "list", "elements": [{"name": "a", "type": "int"}]}
//	{"kind": "fptr", "args": ["int"], "return": "bool"}
//	{"kind": "class", "name": "Animal"}
type typeJSON struct {
	Kind     string            `json:"kind"`
	Name     string            `json:"name,omitempty"`
	Elements []elementJSON     `json:"elements,omitempty"`
	Args     []json.RawMessage `json:"args,omitempty"`
	Return   json.RawMessage   `json:"return,omitempty"`
}

type elementJSON struct {
	Name string          `json:"name,omitempty"`
	Type json.RawMessage `json:"type"`
}

// Decode 从 JSON 解码类型
func Decode(data []byte) (Type, error) {
	if len(data) == 0 || string(data) == "null" {
		return VoidType{}, nil
	}

	var name string
	if data[0] == '"' {
		if err := json.Unmarshal(data, &name); err != nil {
			return nil, fmt.Errorf("invalid type: %w", err)
		}
		return simpleType(name), nil
	}

	var raw typeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid type: %w", err)
	}

	switch raw.Kind {
	case "list":
		lt := ListType{Elements: make([]ListElement, 0, len(raw.Elements))}
		for i, e := range raw.Elements {
			et, err := Decode(e.Type)
			if err != nil {
				return nil, fmt.Errorf("list element %d: %w", i, err)
			}
			lt.Elements = append(lt.Elements, ListElement{Name: e.Name, Type: et})
		}
		return lt, nil
	case "fptr", "func":
		ft := FptrType{Args: make([]Type, 0, len(raw.Args))}
		for i, a := range raw.Args {
			at, err := Decode(a)
			if err != nil {
				return nil, fmt.Errorf("fptr argument %d: %w", i, err)
			}
			ft.Args = append(ft.Args, at)
		}
		ret, err := Decode(raw.Return)
		if err != nil {
			return nil, fmt.Errorf("fptr return: %w", err)
		}
		ft.Return = ret
		return ft, nil
	case "class":
		if raw.Name == "" {
			return nil, fmt.Errorf("class type without name")
		}
		return ClassType{Name: raw.Name}, nil
	case "":
		return nil, fmt.Errorf("type object without kind")
	default:
		return simpleType(raw.Kind), nil
	}
}

func simpleType(name string) Type {
	switch name {
	case "int":
		return IntType{}
	case "bool":
		return BoolType{}
	case "string":
		return StringType{}
	case "null":
		return NullType{}
	case "void", "":
		return VoidType{}
	default:
		return ClassType{Name: name}
	}
}
