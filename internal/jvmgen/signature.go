package jvmgen

import (
	"fmt"
	"strings"

	"github.com/tangzhangming/sophia/internal/errors"
	"github.com/tangzhangming/sophia/internal/i18n"
	"github.com/tangzhangming/sophia/internal/types"
)

// Descriptor 返回类型描述符
//
// int 和 bool 总是编码为包装类：跨越方法边界、列表元素和字段的值
// 都是装箱后的对象引用。
func Descriptor(t types.Type) (string, error) {
	switch t := t.(type) {
	case types.VoidType:
		return "V", nil
	case types.ClassType:
		return "L" + t.Name + ";", nil
	case nil:
		return "", unknownType(t)
	}
	name, err := InternalName(t)
	if err != nil {
		return "", err
	}
	return "L" + name + ";", nil
}

// InternalName 返回 new/checkcast 使用的内部类名
func InternalName(t types.Type) (string, error) {
	switch t := t.(type) {
	case types.IntType:
		return intBox.WrapperClass, nil
	case types.BoolType:
		return boolBox.WrapperClass, nil
	case types.StringType:
		return StringClass, nil
	case types.ListType:
		return ListClass, nil
	case types.FptrType:
		return FptrClass, nil
	case types.ClassType:
		return t.Name, nil
	case types.NullType:
		return ObjectClass, nil
	}
	return "", unknownType(t)
}

// ParamsDescriptor 拼接参数列表描述符（不含括号）
func ParamsDescriptor(params []types.Type) (string, error) {
	var sb strings.Builder
	for _, p := range params {
		d, err := Descriptor(p)
		if err != nil {
			return "", err
		}
		sb.WriteString(d)
	}
	return sb.String(), nil
}

// MethodDescriptor 返回完整方法描述符 (params)ret
func MethodDescriptor(params []types.Type, ret types.Type) (string, error) {
	args, err := ParamsDescriptor(params)
	if err != nil {
		return "", err
	}
	if ret == nil {
		ret = types.VoidType{}
	}
	r, err := Descriptor(ret)
	if err != nil {
		return "", err
	}
	return "(" + args + ")" + r, nil
}

func unknownType(t types.Type) *errors.CompileError {
	return errors.New(errors.G0001, i18n.ErrUnknownType, fmt.Sprintf("%T", t))
}
