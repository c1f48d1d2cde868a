// Package semantic 提供代码生成所需的类层次、符号解析和表达式类型查询
//
// 代码生成器假定输入已经通过语义检查；这里的实现只负责回答
// "这个表达式是什么类型"、"这个成员是字段还是方法"之类的问题。
package semantic

import (
	"errors"
	"fmt"

	"github.com/tangzhangming/sophia/internal/ast"
	"github.com/tangzhangming/sophia/internal/types"
)

var (
	// ErrUnknownClass 类不存在
	ErrUnknownClass = errors.New("unknown class")
	// ErrUnknownMember 类及其祖先中都找不到该成员
	ErrUnknownMember = errors.New("unknown member")
	// ErrUnknownVariable 当前方法中找不到该变量
	ErrUnknownVariable = errors.New("unknown variable")
	// ErrInheritanceCycle 继承关系成环
	ErrInheritanceCycle = errors.New("inheritance cycle")
)

// MemberKind 成员种类
type MemberKind int

const (
	MemberField MemberKind = iota
	MemberMethod
)

func (k MemberKind) String() string {
	if k == MemberField {
		return "field"
	}
	return "method"
}

// Member 成员解析结果
type Member struct {
	Kind   MemberKind
	Name   string
	Owner  string          // 声明该成员的类
	Type   types.Type      // 字段类型；方法时为 FptrType
	Method *ast.MethodDecl // 仅 MemberMethod
	Field  *ast.FieldDecl  // 仅 MemberField
}

// IsField 是否为字段
func (m Member) IsField() bool { return m.Kind == MemberField }

// classInfo 单个类的符号表
type classInfo struct {
	decl    *ast.ClassDecl
	fields  map[string]*ast.FieldDecl
	methods map[string]*ast.MethodDecl
}

// Hierarchy 类层次图 + 每个类的符号表
type Hierarchy struct {
	classes map[string]*classInfo
}

// NewHierarchy 从程序构建类层次
//
// 重复类名、未知父类和继承环都会返回错误。
func NewHierarchy(prog *ast.Program) (*Hierarchy, error) {
	h := &Hierarchy{classes: make(map[string]*classInfo, len(prog.Classes))}

	for _, cls := range prog.Classes {
		if _, dup := h.classes[cls.Name]; dup {
			return nil, fmt.Errorf("%s: duplicate class %s", cls.Pos(), cls.Name)
		}
		info := &classInfo{
			decl:    cls,
			fields:  make(map[string]*ast.FieldDecl, len(cls.Fields)),
			methods: make(map[string]*ast.MethodDecl, len(cls.Methods)),
		}
		for _, f := range cls.Fields {
			info.fields[f.Var.Name] = f
		}
		for _, m := range cls.Methods {
			info.methods[m.Name] = m
		}
		h.classes[cls.Name] = info
	}

	for _, cls := range prog.Classes {
		if cls.HasParent() {
			if _, ok := h.classes[cls.Parent]; !ok {
				return nil, fmt.Errorf("%s: class %s extends %w %s", cls.Pos(), cls.Name, ErrUnknownClass, cls.Parent)
			}
		}
		if _, err := h.Ancestors(cls.Name); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// Class 返回类声明
func (h *Hierarchy) Class(name string) (*ast.ClassDecl, error) {
	info, ok := h.classes[name]
	if !ok {
		return nil, fmt.Errorf("%w %s", ErrUnknownClass, name)
	}
	return info.decl, nil
}

// Ancestors 返回从自身开始一直到根的类名链
func (h *Hierarchy) Ancestors(name string) ([]string, error) {
	var chain []string
	seen := make(map[string]bool)
	for cur := name; cur != ""; {
		if seen[cur] {
			return nil, fmt.Errorf("%w through class %s", ErrInheritanceCycle, name)
		}
		seen[cur] = true
		info, ok := h.classes[cur]
		if !ok {
			return nil, fmt.Errorf("%w %s", ErrUnknownClass, cur)
		}
		chain = append(chain, cur)
		cur = info.decl.Parent
	}
	return chain, nil
}

// ResolveMember 解析 class.member
//
// 先在类自身查找，再沿继承链向上；字段优先于同名方法。
// 返回显式的 Field/Method 结果，查找失败只表示输入不一致。
func (h *Hierarchy) ResolveMember(class, member string) (Member, error) {
	chain, err := h.Ancestors(class)
	if err != nil {
		return Member{}, err
	}
	for _, c := range chain {
		info := h.classes[c]
		if f, ok := info.fields[member]; ok {
			return Member{Kind: MemberField, Name: member, Owner: c, Type: f.Var.Type, Field: f}, nil
		}
		if m, ok := info.methods[member]; ok {
			return Member{
				Kind:   MemberMethod,
				Name:   member,
				Owner:  c,
				Type:   MethodType(m),
				Method: m,
			}, nil
		}
	}
	return Member{}, fmt.Errorf("%w %s.%s", ErrUnknownMember, class, member)
}

// MethodType 方法作为值时的类型
func MethodType(m *ast.MethodDecl) types.FptrType {
	ret := m.ReturnType
	if ret == nil {
		ret = types.VoidType{}
	}
	return types.FptrType{Args: m.ArgTypes(), Return: ret}
}
