package jvmgen

import "github.com/tangzhangming/sophia/internal/ast"

// branch 生成跳转代码：expr 为真跳到 t，否则跳到 f
//
// 逻辑连接词不会在栈上产生中间的布尔值；and 的右操作数只在左操作数为真时求值，
// or 的右操作数只在左操作数为假时求值。
func (m *methodGen) branch(e ast.Expression, t, f string) error {
	switch e := e.(type) {
	case *ast.UnaryExpr:
		if e.Op == ast.UnaryNot {
			return m.branch(e.Operand, f, t)
		}
	case *ast.BinaryExpr:
		switch e.Op {
		case ast.BinaryAnd:
			mid := m.f.newLabel()
			if err := m.branch(e.Left, mid, f); err != nil {
				return err
			}
			m.emit(label(mid))
			return m.branch(e.Right, t, f)
		case ast.BinaryOr:
			mid := m.f.newLabel()
			if err := m.branch(e.Left, t, mid); err != nil {
				return err
			}
			m.emit(label(mid))
			return m.branch(e.Right, t, f)
		}
	case *ast.BoolValue:
		if e.Value {
			m.emit(jump(OpGoto, t))
		} else {
			m.emit(jump(OpGoto, f))
		}
		return nil
	}

	if err := m.expr(e); err != nil {
		return err
	}
	m.emit(
		invoke(OpInvokevirtual, boolBox.Unbox()),
		jump(OpIfeq, f),
		jump(OpGoto, t),
	)
	return nil
}

// logicalValue 在值位置上的 and/or：分支到两个小块，分别压入装箱的 true/false
func (m *methodGen) logicalValue(e *ast.BinaryExpr) error {
	t, f, join := m.f.newLabel(), m.f.newLabel(), m.f.newLabel()
	if err := m.branch(e, t, f); err != nil {
		return err
	}
	m.emit(
		label(t),
		op(OpIconst1),
		invoke(OpInvokestatic, boolBox.ValueOf()),
		jump(OpGoto, join),
		label(f),
		op(OpIconst0),
		invoke(OpInvokestatic, boolBox.ValueOf()),
		label(join),
	)
	return nil
}
