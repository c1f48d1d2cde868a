package semantic

import (
	"fmt"

	"github.com/tangzhangming/sophia/internal/ast"
	"github.com/tangzhangming/sophia/internal/types"
)

// Scope 表达式所在的上下文
type Scope struct {
	Class  *ast.ClassDecl
	Method *ast.MethodDecl
}

// LookupVar 在当前方法的参数和局部变量中查找变量
func (s Scope) LookupVar(name string) (*ast.VarDecl, bool) {
	if s.Method == nil {
		return nil, false
	}
	for _, v := range s.Method.Args {
		if v.Name == name {
			return v, true
		}
	}
	for _, v := range s.Method.Locals {
		if v.Name == name {
			return v, true
		}
	}
	return nil, false
}

// TypeOf 返回表达式的静态类型
//
// 输入假定已经类型正确；这里不做兼容性检查，只推导类型。
func (h *Hierarchy) TypeOf(scope Scope, expr ast.Expression) (types.Type, error) {
	switch e := expr.(type) {
	case *ast.IntValue:
		return types.IntType{}, nil
	case *ast.BoolValue:
		return types.BoolType{}, nil
	case *ast.StringValue:
		return types.StringType{}, nil
	case *ast.NullValue:
		return types.NullType{}, nil
	case *ast.This:
		if scope.Class == nil {
			return nil, fmt.Errorf("%s: 'this' outside of a class", e.Pos())
		}
		return types.ClassType{Name: scope.Class.Name}, nil
	case *ast.Identifier:
		v, ok := scope.LookupVar(e.Name)
		if !ok {
			return nil, fmt.Errorf("%s: %w %s", e.Pos(), ErrUnknownVariable, e.Name)
		}
		return v.Type, nil
	case *ast.ListValue:
		lt := types.ListType{Elements: make([]types.ListElement, 0, len(e.Elements))}
		for _, el := range e.Elements {
			t, err := h.TypeOf(scope, el)
			if err != nil {
				return nil, err
			}
			lt.Elements = append(lt.Elements, types.ListElement{Type: t})
		}
		return lt, nil
	case *ast.ListIndex:
		return h.typeOfIndex(scope, e)
	case *ast.MemberAccess:
		return h.typeOfMember(scope, e)
	case *ast.MethodCall:
		t, err := h.TypeOf(scope, e.Instance)
		if err != nil {
			return nil, err
		}
		fp, ok := t.(types.FptrType)
		if !ok {
			return nil, fmt.Errorf("%s: calling non-function value of type %s", e.Pos(), t)
		}
		if fp.Return == nil {
			return types.VoidType{}, nil
		}
		return fp.Return, nil
	case *ast.NewInstance:
		if _, err := h.Class(e.Class); err != nil {
			return nil, fmt.Errorf("%s: %w", e.Pos(), err)
		}
		return types.ClassType{Name: e.Class}, nil
	case *ast.UnaryExpr:
		if e.Op == ast.UnaryNot {
			return types.BoolType{}, nil
		}
		return types.IntType{}, nil
	case *ast.BinaryExpr:
		switch {
		case e.Op.IsArithmetic():
			return types.IntType{}, nil
		case e.Op.IsRelational(), e.Op.IsEquality(), e.Op.IsLogical():
			return types.BoolType{}, nil
		case e.Op == ast.BinaryAssign:
			return h.TypeOf(scope, e.Left)
		}
	}
	return nil, fmt.Errorf("%s: cannot type expression %T", expr.Pos(), expr)
}

func (h *Hierarchy) typeOfIndex(scope Scope, e *ast.ListIndex) (types.Type, error) {
	t, err := h.TypeOf(scope, e.Instance)
	if err != nil {
		return nil, err
	}
	lt, ok := t.(types.ListType)
	if !ok {
		return nil, fmt.Errorf("%s: indexing non-list value of type %s", e.Pos(), t)
	}
	if lt.Len() == 0 {
		return nil, fmt.Errorf("%s: indexing empty list", e.Pos())
	}
	// 常量下标可以精确定位元素；否则列表元素同构，取第一个
	if lit, ok := e.Index.(*ast.IntValue); ok {
		if et, ok := lt.ElementAt(int(lit.Value)); ok {
			return et, nil
		}
	}
	return lt.Elements[0].Type, nil
}

func (h *Hierarchy) typeOfMember(scope Scope, e *ast.MemberAccess) (types.Type, error) {
	t, err := h.TypeOf(scope, e.Instance)
	if err != nil {
		return nil, err
	}
	switch it := t.(type) {
	case types.ClassType:
		m, err := h.ResolveMember(it.Name, e.Member)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Pos(), err)
		}
		return m.Type, nil
	case types.ListType:
		idx, ok := it.IndexOf(e.Member)
		if !ok {
			return nil, fmt.Errorf("%s: %w %s in %s", e.Pos(), ErrUnknownMember, e.Member, it)
		}
		return it.Elements[idx].Type, nil
	}
	return nil, fmt.Errorf("%s: member access on value of type %s", e.Pos(), t)
}
