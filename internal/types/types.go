// Package types 定义 Sophia 的语义类型
//
// 类型集合是封闭的：int、bool、string、list、func（绑定方法值）、
// 类类型、null 和 void。所有类型都实现 Type 接口。
package types

import "strings"

// Type 语义类型
type Type interface {
	String() string
	isType()
}

// IntType 整数类型
type IntType struct{}

// BoolType 布尔类型
type BoolType struct{}

// StringType 字符串类型
type StringType struct{}

// NullType null 字面量的类型
type NullType struct{}

// VoidType 无返回值
type VoidType struct{}

// ClassType 类引用类型
type ClassType struct {
	Name string
}

// ListElement 列表元素描述（名称可以为空）
type ListElement struct {
	Name string
	Type Type
}

// ListType 固定形状的异构列表
type ListType struct {
	Elements []ListElement
}

// FptrType 绑定方法值（对象 + 方法名）
type FptrType struct {
	Args   []Type
	Return Type
}

func (IntType) isType()    {}
func (BoolType) isType()   {}
func (StringType) isType() {}
func (NullType) isType()   {}
func (VoidType) isType()   {}
func (ClassType) isType()  {}
func (ListType) isType()   {}
func (FptrType) isType()   {}

func (IntType) String() string    { return "int" }
func (BoolType) String() string   { return "bool" }
func (StringType) String() string { return "string" }
func (NullType) String() string   { return "null" }
func (VoidType) String() string   { return "void" }
func (t ClassType) String() string {
	return t.Name
}

func (t ListType) String() string {
	parts := make([]string, 0, len(t.Elements))
	for _, e := range t.Elements {
		if e.Name != "" {
			parts = append(parts, e.Name+":"+e.Type.String())
		} else {
			parts = append(parts, e.Type.String())
		}
	}
	return "list(" + strings.Join(parts, ", ") + ")"
}

func (t FptrType) String() string {
	parts := make([]string, 0, len(t.Args))
	for _, a := range t.Args {
		parts = append(parts, a.String())
	}
	ret := "void"
	if t.Return != nil {
		ret = t.Return.String()
	}
	return "func<" + strings.Join(parts, ", ") + " -> " + ret + ">"
}

// Len 返回列表元素个数
func (t ListType) Len() int { return len(t.Elements) }

// IndexOf 按名称查找元素位置
func (t ListType) IndexOf(name string) (int, bool) {
	for i, e := range t.Elements {
		if e.Name != "" && e.Name == name {
			return i, true
		}
	}
	return 0, false
}

// ElementAt 返回指定位置元素的类型，越界时返回 false
func (t ListType) ElementAt(i int) (Type, bool) {
	if i < 0 || i >= len(t.Elements) {
		return nil, false
	}
	return t.Elements[i].Type, true
}

// IsVoid 判断类型是否不携带值
func IsVoid(t Type) bool {
	if t == nil {
		return true
	}
	_, ok := t.(VoidType)
	return ok
}

// IsReference 判断相等比较是否使用引用相等
func IsReference(t Type) bool {
	switch t.(type) {
	case ClassType, ListType, FptrType, NullType:
		return true
	}
	return false
}
