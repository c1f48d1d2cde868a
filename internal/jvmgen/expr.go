package jvmgen

import (
	"fmt"

	"github.com/tangzhangming/sophia/internal/ast"
	"github.com/tangzhangming/sophia/internal/errors"
	"github.com/tangzhangming/sophia/internal/i18n"
	"github.com/tangzhangming/sophia/internal/types"
)

// expr 翻译表达式，结束时栈上恰好多出一个装箱后的引用
func (m *methodGen) expr(e ast.Expression) error {
	switch e := e.(type) {
	case *ast.IntValue:
		m.emit(ldcInt(e.Value), invoke(OpInvokestatic, intBox.ValueOf()))
	case *ast.BoolValue:
		m.boolConst(e.Value)
	case *ast.StringValue:
		m.emit(ldcString(e.Value))
	case *ast.NullValue:
		m.emit(op(OpAconstNull))
	case *ast.This:
		m.emit(load(0))
	case *ast.Identifier:
		slot, ok := m.f.slotOf(e.Name)
		if !ok || e.Name == "" {
			return m.fail(e, errors.G0004, i18n.ErrUnknownVariable, e.Name)
		}
		m.emit(load(slot))
	case *ast.ListValue:
		return m.listLiteral(e)
	case *ast.ListIndex:
		return m.listIndex(e)
	case *ast.MemberAccess:
		return m.member(e)
	case *ast.MethodCall:
		return m.call(e)
	case *ast.NewInstance:
		return m.newInstance(e)
	case *ast.UnaryExpr:
		return m.unary(e)
	case *ast.BinaryExpr:
		return m.binary(e)
	default:
		return m.fail(e, errors.G0006, i18n.ErrUnsupportedNode, fmt.Sprintf("%T", e))
	}
	return nil
}

func (m *methodGen) boolConst(v bool) {
	if v {
		m.emit(op(OpIconst1))
	} else {
		m.emit(op(OpIconst0))
	}
	m.emit(invoke(OpInvokestatic, boolBox.ValueOf()))
}

// exprInt 求值并拆箱为 int
func (m *methodGen) exprInt(e ast.Expression) error {
	if err := m.expr(e); err != nil {
		return err
	}
	m.emit(invoke(OpInvokevirtual, intBox.Unbox()))
	return nil
}

// listLiteral 分配列表后按顺序追加元素
func (m *methodGen) listLiteral(e *ast.ListValue) error {
	m.emit(
		opWith(OpNew, ListClass),
		op(OpDup),
		opWith(OpNew, ArrayListClass),
		op(OpDup),
		invoke(OpInvokespecial, refArrayListInit),
		invoke(OpInvokespecial, refListInit),
	)
	for _, el := range e.Elements {
		m.emit(op(OpDup))
		if err := m.expr(el); err != nil {
			return err
		}
		m.emit(invoke(OpInvokevirtual, refListAdd))
	}
	return nil
}

func (m *methodGen) listIndex(e *ast.ListIndex) error {
	t, err := m.typeOf(e)
	if err != nil {
		return err
	}
	if err := m.expr(e.Instance); err != nil {
		return err
	}
	if err := m.exprInt(e.Index); err != nil {
		return err
	}
	m.emit(invoke(OpInvokevirtual, refListGet))
	return m.wrap(m.castTo(t), e.Pos())
}

// member target.member
//
// 类的字段直接 getfield；类的方法构造 Fptr 绑定接收者和方法名；
// 列表成员按名字找到下标后按位置读取。
func (m *methodGen) member(e *ast.MemberAccess) error {
	it, err := m.typeOf(e.Instance)
	if err != nil {
		return err
	}

	switch it := it.(type) {
	case types.ClassType:
		mem, err := m.g.resolver.ResolveMember(it.Name, e.Member)
		if err != nil {
			return errors.Wrap(err, errors.G0003, i18n.ErrUnknownMember, it.Name, e.Member).
				In(m.cls.Name, m.name).At(e.Pos())
		}
		if mem.IsField() {
			desc, err := Descriptor(mem.Type)
			if err != nil {
				return m.wrap(err, e.Pos())
			}
			if err := m.expr(e.Instance); err != nil {
				return err
			}
			m.emit(opWith(OpGetfield, FieldRef{Class: it.Name, Name: e.Member, Descriptor: desc}.String()))
			return nil
		}
		m.emit(opWith(OpNew, FptrClass), op(OpDup))
		if err := m.expr(e.Instance); err != nil {
			return err
		}
		m.emit(ldcString(e.Member), invoke(OpInvokespecial, refFptrInit))
		return nil

	case types.ListType:
		idx, ok := it.IndexOf(e.Member)
		if !ok {
			return m.fail(e, errors.G0003, i18n.ErrUnknownMember, it.String(), e.Member)
		}
		if err := m.expr(e.Instance); err != nil {
			return err
		}
		m.emit(ldcInt(int32(idx)), invoke(OpInvokevirtual, refListGet))
		elem, _ := it.ElementAt(idx)
		return m.wrap(m.castTo(elem), e.Pos())
	}
	return m.fail(e, errors.G0003, i18n.ErrUnknownMember, it.String(), e.Member)
}

// call target(args...)：参数装入 ArrayList 后交给 Fptr.invoke
func (m *methodGen) call(e *ast.MethodCall) error {
	ret, err := m.typeOf(e)
	if err != nil {
		return err
	}
	if err := m.expr(e.Instance); err != nil {
		return err
	}
	m.emit(
		opWith(OpNew, ArrayListClass),
		op(OpDup),
		invoke(OpInvokespecial, refArrayListInit),
	)
	for _, arg := range e.Args {
		m.emit(op(OpDup))
		if err := m.expr(arg); err != nil {
			return err
		}
		m.emit(invoke(OpInvokevirtual, refArrayListAdd), op(OpPop))
	}
	m.emit(invoke(OpInvokevirtual, refFptrInvoke))
	return m.wrap(m.castTo(ret), e.Pos())
}

// newInstance new C(args...)
//
// 有显式构造函数时调用它，实参个数必须一致；否则调用隐式的无参构造函数。
func (m *methodGen) newInstance(e *ast.NewInstance) error {
	cls, err := m.g.oracle.Class(e.Class)
	if err != nil {
		return errors.Wrap(err, errors.G0002, i18n.ErrUnknownClass, e.Class).
			In(m.cls.Name, m.name).At(e.Pos())
	}
	var params []types.Type
	if cls.Constructor != nil {
		params = cls.Constructor.ArgTypes()
	}
	// 显式构造函数必须被调用，不能退回到隐式的无参构造函数
	if len(params) != len(e.Args) {
		return m.fail(e, errors.G0003, i18n.ErrUnknownMember, e.Class, "<init>")
	}
	desc, err := MethodDescriptor(params, types.VoidType{})
	if err != nil {
		return m.wrap(err, e.Pos())
	}

	m.emit(opWith(OpNew, e.Class), op(OpDup))
	for _, arg := range e.Args {
		if err := m.expr(arg); err != nil {
			return err
		}
	}
	m.emit(invoke(OpInvokespecial, MethodRef{Class: e.Class, Name: "<init>", Descriptor: desc}))
	return nil
}

func (m *methodGen) unary(e *ast.UnaryExpr) error {
	switch e.Op {
	case ast.UnaryMinus:
		if err := m.exprInt(e.Operand); err != nil {
			return err
		}
		m.emit(op(OpIneg), invoke(OpInvokestatic, intBox.ValueOf()))
		return nil
	case ast.UnaryNot:
		if err := m.expr(e.Operand); err != nil {
			return err
		}
		m.emit(
			invoke(OpInvokevirtual, boolBox.Unbox()),
			op(OpIconst1),
			op(OpIxor),
			invoke(OpInvokestatic, boolBox.ValueOf()),
		)
		return nil
	}
	if e.Op.IsIncDec() {
		return m.incDec(e)
	}
	return m.fail(e, errors.G0006, i18n.ErrUnsupportedNode, e.Op.String())
}

// incDec ++/--：前缀形式的结果是新值，后缀形式的结果是旧值
func (m *methodGen) incDec(e *ast.UnaryExpr) error {
	lv, err := m.lvalue(e.Operand)
	if err != nil {
		return err
	}
	step := OpIadd
	if !e.Op.IsIncrement() {
		step = OpIsub
	}
	arith := func() {
		m.emit(
			invoke(OpInvokevirtual, intBox.Unbox()),
			op(OpIconst1),
			op(step),
			invoke(OpInvokestatic, intBox.ValueOf()),
		)
	}

	if err := lv.prepare(m); err != nil {
		return err
	}
	lv.dupTarget(m)
	if err := lv.load(m); err != nil {
		return err
	}
	if e.Op.IsPrefix() {
		arith()
		lv.dupUnder(m)
	} else {
		lv.dupUnder(m)
		arith()
	}
	lv.store(m)
	return nil
}

func (m *methodGen) binary(e *ast.BinaryExpr) error {
	switch {
	case e.Op == ast.BinaryAssign:
		return m.assign(e.Left, e.Right)
	case e.Op.IsLogical():
		return m.logicalValue(e)
	case e.Op.IsArithmetic():
		return m.arithmetic(e)
	case e.Op.IsRelational():
		return m.relational(e)
	case e.Op.IsEquality():
		return m.equality(e)
	}
	return m.fail(e, errors.G0006, i18n.ErrUnsupportedNode, e.Op.String())
}

var arithOps = map[ast.BinaryOperator]Opcode{
	ast.BinaryAdd: OpIadd,
	ast.BinarySub: OpIsub,
	ast.BinaryMul: OpImul,
	ast.BinaryDiv: OpIdiv,
	ast.BinaryMod: OpIrem,
}

func (m *methodGen) arithmetic(e *ast.BinaryExpr) error {
	if err := m.exprInt(e.Left); err != nil {
		return err
	}
	if err := m.exprInt(e.Right); err != nil {
		return err
	}
	m.emit(op(arithOps[e.Op]), invoke(OpInvokestatic, intBox.ValueOf()))
	return nil
}

// relational > <：条件不成立时跳到 false 块
func (m *methodGen) relational(e *ast.BinaryExpr) error {
	if err := m.exprInt(e.Left); err != nil {
		return err
	}
	if err := m.exprInt(e.Right); err != nil {
		return err
	}
	holds := OpIfIcmpgt
	if e.Op == ast.BinaryLt {
		holds = OpIfIcmplt
	}
	m.materialize(holds.negate())
	return nil
}

// materialize 把 "cond 成立时跳转到 false" 的比较变成装箱的布尔值
func (m *methodGen) materialize(jumpIfFalse Opcode) {
	f, join := m.f.newLabel(), m.f.newLabel()
	m.emit(
		jump(jumpIfFalse, f),
		op(OpIconst1),
		jump(OpGoto, join),
		label(f),
		op(OpIconst0),
		label(join),
		invoke(OpInvokestatic, boolBox.ValueOf()),
	)
}

// equality == !=
//
// int/bool/string 比较值（Object.equals），类、列表、函数值和 null 比较引用。
// 任一侧是 null 字面量时总是比较引用。
func (m *methodGen) equality(e *ast.BinaryExpr) error {
	lt, err := m.typeOf(e.Left)
	if err != nil {
		return err
	}
	rt, err := m.typeOf(e.Right)
	if err != nil {
		return err
	}

	if err := m.expr(e.Left); err != nil {
		return err
	}
	if err := m.expr(e.Right); err != nil {
		return err
	}

	if !types.IsReference(lt) && !types.IsReference(rt) {
		m.emit(invoke(OpInvokevirtual, refObjectEquals))
		if e.Op == ast.BinaryNeq {
			m.emit(op(OpIconst1), op(OpIxor))
		}
		m.emit(invoke(OpInvokestatic, boolBox.ValueOf()))
		return nil
	}

	holds := OpIfAcmpeq
	if e.Op == ast.BinaryNeq {
		holds = OpIfAcmpne
	}
	m.materialize(holds.negate())
	return nil
}

// assign lvalue = rvalue，结果是刚写入的值
//
// 先求右侧的值，再求目标（列表和下标、对象）。目标需要压栈时右侧的值
// 暂存在临时槽位中，之后再取回放到目标之上。
func (m *methodGen) assign(lhs, rhs ast.Expression) error {
	lv, err := m.lvalue(lhs)
	if err != nil {
		return err
	}
	if err := m.assignedValue(rhs); err != nil {
		return err
	}
	// 局部变量没有目标，值直接留在栈上
	if _, direct := lv.(localLV); !direct {
		tmp := m.f.newTemp()
		m.emit(store(tmp))
		if err := lv.prepare(m); err != nil {
			return err
		}
		m.emit(load(tmp))
	}
	lv.dupUnder(m)
	lv.store(m)
	return nil
}

// assignedValue 求赋值右侧的值
//
// 列表具有值语义：右侧不是新建的列表字面量时复制一份。
func (m *methodGen) assignedValue(rhs ast.Expression) error {
	rt, err := m.typeOf(rhs)
	if err != nil {
		return err
	}
	if err := m.expr(rhs); err != nil {
		return err
	}
	if _, isList := rt.(types.ListType); isList && !isListLiteral(rhs) {
		m.copyList()
	}
	return nil
}

// copyList 把栈顶的列表替换为它的副本；null 保持为 null
//
//	dup; ifnull L; new List; dup_x1; swap; invokespecial List/<init>(LList;)V; L:
func (m *methodGen) copyList() {
	done := m.f.newLabel()
	m.emit(
		op(OpDup),
		jump(OpIfnull, done),
		opWith(OpNew, ListClass),
		op(OpDupX1),
		op(OpSwap),
		invoke(OpInvokespecial, refListCopy),
		label(done),
	)
}

func isListLiteral(e ast.Expression) bool {
	_, ok := e.(*ast.ListValue)
	return ok
}
