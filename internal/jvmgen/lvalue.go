package jvmgen

import (
	"fmt"

	"github.com/tangzhangming/sophia/internal/ast"
	"github.com/tangzhangming/sophia/internal/errors"
	"github.com/tangzhangming/sophia/internal/i18n"
	"github.com/tangzhangming/sophia/internal/types"
)

// lvalue 可写位置
//
// 赋值和 ++/-- 共用同一套操作：
//
//	prepare   压入目标（列表+下标、对象，或者什么都不压）
//	dupTarget 复制目标，供 load 使用
//	load      读取当前值（消耗一份目标）
//	dupUnder  把栈顶的值复制到目标之下，作为表达式的结果
//	store     写入栈顶的值（消耗目标和值）
type lvalue interface {
	prepare(m *methodGen) error
	dupTarget(m *methodGen)
	load(m *methodGen) error
	dupUnder(m *methodGen)
	store(m *methodGen)
}

// lvalue 按左值的语法形式选择实现
func (m *methodGen) lvalue(e ast.Expression) (lvalue, error) {
	switch e := e.(type) {
	case *ast.Identifier:
		slot, ok := m.f.slotOf(e.Name)
		if !ok || e.Name == "" {
			return nil, m.fail(e, errors.G0004, i18n.ErrUnknownVariable, e.Name)
		}
		return localLV{slot: slot}, nil

	case *ast.ListIndex:
		t, err := m.typeOf(e)
		if err != nil {
			return nil, err
		}
		return indexLV{list: e.Instance, index: e.Index, elem: t, pos: e}, nil

	case *ast.MemberAccess:
		it, err := m.typeOf(e.Instance)
		if err != nil {
			return nil, err
		}
		switch it := it.(type) {
		case types.ClassType:
			mem, err := m.g.resolver.ResolveMember(it.Name, e.Member)
			if err != nil {
				return nil, errors.Wrap(err, errors.G0003, i18n.ErrUnknownMember, it.Name, e.Member).
					In(m.cls.Name, m.name).At(e.Pos())
			}
			if !mem.IsField() {
				// 方法不可赋值
				return nil, m.fail(e, errors.G0003, i18n.ErrUnknownMember, it.Name, e.Member)
			}
			desc, err := Descriptor(mem.Type)
			if err != nil {
				return nil, m.wrap(err, e.Pos())
			}
			return fieldLV{
				instance: e.Instance,
				ref:      FieldRef{Class: it.Name, Name: e.Member, Descriptor: desc},
			}, nil
		case types.ListType:
			idx, ok := it.IndexOf(e.Member)
			if !ok {
				return nil, m.fail(e, errors.G0003, i18n.ErrUnknownMember, it.String(), e.Member)
			}
			elem, _ := it.ElementAt(idx)
			return memberLV{list: e.Instance, index: idx, elem: elem, pos: e}, nil
		}
		return nil, m.fail(e, errors.G0003, i18n.ErrUnknownMember, it.String(), e.Member)
	}
	return nil, m.fail(e, errors.G0006, i18n.ErrUnsupportedNode, fmt.Sprintf("%T", e))
}

// localLV 局部变量槽位
type localLV struct {
	slot int
}

func (localLV) prepare(*methodGen) error { return nil }
func (localLV) dupTarget(*methodGen)     {}
func (l localLV) load(m *methodGen) error {
	m.emit(load(l.slot))
	return nil
}
func (localLV) dupUnder(m *methodGen) { m.emit(op(OpDup)) }
func (l localLV) store(m *methodGen)  { m.emit(store(l.slot)) }

// indexLV list[index]
type indexLV struct {
	list  ast.Expression
	index ast.Expression
	elem  types.Type
	pos   ast.Node
}

func (l indexLV) prepare(m *methodGen) error {
	if err := m.expr(l.list); err != nil {
		return err
	}
	return m.exprInt(l.index)
}
func (indexLV) dupTarget(m *methodGen) { m.emit(op(OpDup2)) }
func (l indexLV) load(m *methodGen) error {
	m.emit(invoke(OpInvokevirtual, refListGet))
	return m.wrap(m.castTo(l.elem), l.pos.Pos())
}
func (indexLV) dupUnder(m *methodGen) { m.emit(op(OpDupX2)) }
func (indexLV) store(m *methodGen)    { m.emit(invoke(OpInvokevirtual, refListSet)) }

// fieldLV obj.field
type fieldLV struct {
	instance ast.Expression
	ref      FieldRef
}

func (l fieldLV) prepare(m *methodGen) error { return m.expr(l.instance) }
func (fieldLV) dupTarget(m *methodGen)       { m.emit(op(OpDup)) }
func (l fieldLV) load(m *methodGen) error {
	m.emit(opWith(OpGetfield, l.ref.String()))
	return nil
}
func (fieldLV) dupUnder(m *methodGen) { m.emit(op(OpDupX1)) }
func (l fieldLV) store(m *methodGen)  { m.emit(opWith(OpPutfield, l.ref.String())) }

// memberLV list.name，下标在编译期确定
type memberLV struct {
	list  ast.Expression
	index int
	elem  types.Type
	pos   ast.Node
}

func (l memberLV) prepare(m *methodGen) error {
	if err := m.expr(l.list); err != nil {
		return err
	}
	m.emit(ldcInt(int32(l.index)))
	return nil
}
func (memberLV) dupTarget(m *methodGen) { m.emit(op(OpDup2)) }
func (l memberLV) load(m *methodGen) error {
	m.emit(invoke(OpInvokevirtual, refListGet))
	return m.wrap(m.castTo(l.elem), l.pos.Pos())
}
func (memberLV) dupUnder(m *methodGen) { m.emit(op(OpDupX2)) }
func (memberLV) store(m *methodGen)    { m.emit(invoke(OpInvokevirtual, refListSet)) }
