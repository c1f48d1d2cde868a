package jvmgen

import (
	"fmt"

	"github.com/tangzhangming/sophia/internal/ast"
	"github.com/tangzhangming/sophia/internal/errors"
	"github.com/tangzhangming/sophia/internal/i18n"
	"github.com/tangzhangming/sophia/internal/types"
)

// stmt 翻译一条语句
//
// 每条语句都有自己的 after 标签，语句结束后立即放置。非循环语句继承外层的
// break/continue 目标；最外层没有循环时它们退化为 after 本身。
func (m *methodGen) stmt(s ast.Statement) error {
	after := m.f.newLabel()
	brk, ok := m.f.topBreak()
	if !ok {
		brk = after
	}
	cont, ok := m.f.topContinue()
	if !ok {
		cont = after
	}

	m.f.pushLabels(after, brk, cont)
	err := m.lowerStmt(s)
	m.f.popLabels()
	if err != nil {
		return err
	}
	m.emit(label(after))
	return nil
}

func (m *methodGen) lowerStmt(s ast.Statement) error {
	switch s := s.(type) {
	case *ast.AssignmentStmt:
		if err := m.assign(s.LValue, s.RValue); err != nil {
			return err
		}
		m.emit(op(OpPop))
		return nil

	case *ast.BlockStmt:
		for _, inner := range s.Statements {
			if err := m.stmt(inner); err != nil {
				return err
			}
		}
		return nil

	case *ast.ConditionalStmt:
		return m.conditional(s)

	case *ast.MethodCallStmt:
		if err := m.call(s.Call); err != nil {
			return err
		}
		m.emit(op(OpPop))
		return nil

	case *ast.PrintStmt:
		return m.print(s)

	case *ast.ReturnStmt:
		return m.ret(s)

	case *ast.BreakStmt:
		target, _ := m.f.topBreak()
		if target == "" {
			return m.fail(s, errors.G0007, i18n.ErrNoLoopTarget, "break")
		}
		m.emit(jump(OpGoto, target))
		return nil

	case *ast.ContinueStmt:
		target, _ := m.f.topContinue()
		if target == "" {
			return m.fail(s, errors.G0007, i18n.ErrNoLoopTarget, "continue")
		}
		m.emit(jump(OpGoto, target))
		return nil

	case *ast.ForStmt:
		return m.forLoop(s)

	case *ast.ForeachStmt:
		return m.foreach(s)
	}
	return m.fail(s, errors.G0006, i18n.ErrUnsupportedNode, fmt.Sprintf("%T", s))
}

// conditional then 分支结束后跳过 else 分支
func (m *methodGen) conditional(s *ast.ConditionalStmt) error {
	after, _ := m.f.topAfter()
	t, f := m.f.newLabel(), m.f.newLabel()
	if err := m.branch(s.Condition, t, f); err != nil {
		return err
	}
	m.emit(label(t))
	if err := m.stmt(s.Then); err != nil {
		return err
	}
	m.emit(jump(OpGoto, after), label(f))
	if s.Else != nil {
		return m.stmt(s.Else)
	}
	return nil
}

// forLoop
//
//	init
//	guard:  branch(cond, body, after)
//	body:   ...           break -> after, continue -> update
//	update: ...; goto guard
//	after:
func (m *methodGen) forLoop(s *ast.ForStmt) error {
	after, _ := m.f.topAfter()
	if s.Init != nil {
		if err := m.assign(s.Init.LValue, s.Init.RValue); err != nil {
			return err
		}
		m.emit(op(OpPop))
	}

	guard, body, update := m.f.newLabel(), m.f.newLabel(), m.f.newLabel()
	m.emit(label(guard))
	if s.Condition != nil {
		if err := m.branch(s.Condition, body, after); err != nil {
			return err
		}
	} else {
		m.emit(jump(OpGoto, body))
	}
	m.emit(label(body))

	m.f.pushLabels(after, after, update)
	err := m.stmt(s.Body)
	m.f.popLabels()
	if err != nil {
		return err
	}

	m.emit(label(update))
	if s.Update != nil {
		if err := m.assign(s.Update.LValue, s.Update.RValue); err != nil {
			return err
		}
		m.emit(op(OpPop))
	}
	m.emit(jump(OpGoto, guard))
	return nil
}

// foreach 列表的形状在编译期已知，循环体按元素位置展开
//
// 列表只求值一次，存入临时槽位。
func (m *methodGen) foreach(s *ast.ForeachStmt) error {
	after, _ := m.f.topAfter()
	lt, err := m.typeOf(s.List)
	if err != nil {
		return err
	}
	list, ok := lt.(types.ListType)
	if !ok {
		return m.fail(s.List, errors.G0008, i18n.ErrUntypedExpression, s.List.String(), lt)
	}
	slot, ok := m.f.slotOf(s.Var.Name)
	if !ok {
		return m.fail(s.Var, errors.G0004, i18n.ErrUnknownVariable, s.Var.Name)
	}

	if err := m.expr(s.List); err != nil {
		return err
	}
	tmp := m.f.newTemp()
	m.emit(store(tmp))

	for i := 0; i < list.Len(); i++ {
		next := m.f.newLabel()
		elem, _ := list.ElementAt(i)
		m.emit(load(tmp), ldcInt(int32(i)), invoke(OpInvokevirtual, refListGet))
		if err := m.castTo(elem); err != nil {
			return m.wrap(err, s.Pos())
		}
		m.emit(store(slot))

		m.f.pushLabels(after, after, next)
		err := m.stmt(s.Body)
		m.f.popLabels()
		if err != nil {
			return err
		}
		m.emit(label(next))
	}
	return nil
}

// print 按静态类型选择 println 重载
func (m *methodGen) print(s *ast.PrintStmt) error {
	t, err := m.typeOf(s.Arg)
	if err != nil {
		return err
	}
	m.emit(opWith(OpGetstatic, fieldSystemOut.String()))
	if err := m.expr(s.Arg); err != nil {
		return err
	}
	switch t.(type) {
	case types.IntType:
		m.emit(invoke(OpInvokevirtual, intBox.Unbox()), invoke(OpInvokevirtual, intBox.Println()))
	case types.BoolType:
		m.emit(invoke(OpInvokevirtual, boolBox.Unbox()), invoke(OpInvokevirtual, boolBox.Println()))
	case types.StringType:
		m.emit(invoke(OpInvokevirtual, refPrintString))
	default:
		m.emit(invoke(OpInvokevirtual, refPrintObject))
	}
	return nil
}

func (m *methodGen) ret(s *ast.ReturnStmt) error {
	if m.isVoid() {
		if s.Value != nil {
			if err := m.expr(s.Value); err != nil {
				return err
			}
			m.emit(op(OpPop))
		}
		m.emit(op(OpReturn))
		return nil
	}
	if s.Value == nil {
		if err := m.defaultValue(m.decl.ReturnType); err != nil {
			return m.wrap(err, s.Pos())
		}
	} else if err := m.expr(s.Value); err != nil {
		return err
	}
	m.emit(op(OpAreturn))
	return nil
}
