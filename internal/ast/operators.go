package ast

// BinaryOperator 二元运算符
type BinaryOperator int

const (
	BinaryAdd BinaryOperator = iota
	BinarySub
	BinaryMul
	BinaryDiv
	BinaryMod
	BinaryGt
	BinaryLt
	BinaryEq
	BinaryNeq
	BinaryAnd
	BinaryOr
	BinaryAssign
)

var binaryNames = [...]string{
	BinaryAdd:    "+",
	BinarySub:    "-",
	BinaryMul:    "*",
	BinaryDiv:    "/",
	BinaryMod:    "%",
	BinaryGt:     ">",
	BinaryLt:     "<",
	BinaryEq:     "==",
	BinaryNeq:    "!=",
	BinaryAnd:    "and",
	BinaryOr:     "or",
	BinaryAssign: "=",
}

func (op BinaryOperator) String() string {
	if op >= 0 && int(op) < len(binaryNames) {
		return binaryNames[op]
	}
	return "?"
}

// IsArithmetic + - * / %
func (op BinaryOperator) IsArithmetic() bool {
	return op >= BinaryAdd && op <= BinaryMod
}

// IsRelational > <
func (op BinaryOperator) IsRelational() bool {
	return op == BinaryGt || op == BinaryLt
}

// IsEquality == !=
func (op BinaryOperator) IsEquality() bool {
	return op == BinaryEq || op == BinaryNeq
}

// IsLogical and or
func (op BinaryOperator) IsLogical() bool {
	return op == BinaryAnd || op == BinaryOr
}

// ParseBinaryOperator 按符号或名称解析二元运算符
func ParseBinaryOperator(s string) (BinaryOperator, bool) {
	switch s {
	case "+", "add":
		return BinaryAdd, true
	case "-", "sub":
		return BinarySub, true
	case "*", "mult", "mul":
		return BinaryMul, true
	case "/", "div":
		return BinaryDiv, true
	case "%", "mod":
		return BinaryMod, true
	case ">", "gt":
		return BinaryGt, true
	case "<", "lt":
		return BinaryLt, true
	case "==", "eq":
		return BinaryEq, true
	case "!=", "neq":
		return BinaryNeq, true
	case "and", "&&":
		return BinaryAnd, true
	case "or", "||":
		return BinaryOr, true
	case "=", "assign":
		return BinaryAssign, true
	}
	return 0, false
}

// UnaryOperator 一元运算符
type UnaryOperator int

const (
	UnaryMinus UnaryOperator = iota
	UnaryNot
	UnaryPreInc
	UnaryPreDec
	UnaryPostInc
	UnaryPostDec
)

var unaryNames = [...]string{
	UnaryMinus:   "-",
	UnaryNot:     "not",
	UnaryPreInc:  "++",
	UnaryPreDec:  "--",
	UnaryPostInc: "++",
	UnaryPostDec: "--",
}

func (op UnaryOperator) String() string {
	if op >= 0 && int(op) < len(unaryNames) {
		return unaryNames[op]
	}
	return "?"
}

// IsIncDec 是否为自增/自减（修改左值）
func (op UnaryOperator) IsIncDec() bool {
	return op >= UnaryPreInc && op <= UnaryPostDec
}

// IsPrefix 前缀形式返回新值，后缀形式返回旧值
func (op UnaryOperator) IsPrefix() bool {
	return op == UnaryPreInc || op == UnaryPreDec
}

// IsIncrement ++
func (op UnaryOperator) IsIncrement() bool {
	return op == UnaryPreInc || op == UnaryPostInc
}

// ParseUnaryOperator 按名称解析一元运算符
func ParseUnaryOperator(s string) (UnaryOperator, bool) {
	switch s {
	case "-", "minus", "neg":
		return UnaryMinus, true
	case "not", "!":
		return UnaryNot, true
	case "preinc":
		return UnaryPreInc, true
	case "predec":
		return UnaryPreDec, true
	case "postinc":
		return UnaryPostInc, true
	case "postdec":
		return UnaryPostDec, true
	}
	return 0, false
}
