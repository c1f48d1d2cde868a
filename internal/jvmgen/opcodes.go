package jvmgen

// Opcode JVM 指令（汇编助记符形式）
type Opcode uint8

// 只定义代码生成需要的指令
const (
	// 常量操作
	OpAconstNull Opcode = iota // 将 null 压入栈
	OpIconst0                  // 将 0 压入栈
	OpIconst1                  // 将 1 压入栈
	OpLdc                      // 将常量池中的项压入栈

	// 局部变量（槽位 0-3 使用短格式）
	OpAload  // 将引用类型局部变量压入栈
	OpAstore // 将栈顶引用存入局部变量

	// 栈操作
	OpPop   // 弹出栈顶元素
	OpDup   // 复制栈顶元素
	OpDupX1 // 复制栈顶元素并插入到第二个元素之下
	OpDupX2 // 复制栈顶元素并插入到第三个元素之下
	OpDup2  // 复制栈顶两个元素
	OpSwap  // 交换栈顶两个元素

	// 算术操作
	OpIadd // int 加法
	OpIsub // int 减法
	OpImul // int 乘法
	OpIdiv // int 除法
	OpIrem // int 取模
	OpIneg // int 取负
	OpIxor // int 异或

	// 条件跳转
	OpIfeq     // 栈顶 int 为 0 时跳转
	OpIfIcmpgt // int 大于时跳转
	OpIfIcmplt // int 小于时跳转
	OpIfIcmpge // int 大于等于时跳转
	OpIfIcmple // int 小于等于时跳转
	OpIfAcmpeq // 引用相等时跳转
	OpIfAcmpne // 引用不等时跳转
	OpIfnull   // 栈顶引用为 null 时跳转
	OpGoto     // 无条件跳转

	// 返回
	OpReturn  // void 返回
	OpAreturn // 引用返回

	// 字段操作
	OpGetstatic // 获取静态字段
	OpGetfield  // 获取实例字段
	OpPutfield  // 设置实例字段

	// 方法调用
	OpInvokevirtual // 调用实例方法
	OpInvokespecial // 调用构造方法/父类方法/私有方法
	OpInvokestatic  // 调用静态方法

	// 对象操作
	OpNew       // 创建对象
	OpCheckcast // 类型检查转换
)

var mnemonics = [...]string{
	OpAconstNull:    "aconst_null",
	OpIconst0:       "iconst_0",
	OpIconst1:       "iconst_1",
	OpLdc:           "ldc",
	OpAload:         "aload",
	OpAstore:        "astore",
	OpPop:           "pop",
	OpDup:           "dup",
	OpDupX1:         "dup_x1",
	OpDupX2:         "dup_x2",
	OpDup2:          "dup2",
	OpSwap:          "swap",
	OpIadd:          "iadd",
	OpIsub:          "isub",
	OpImul:          "imul",
	OpIdiv:          "idiv",
	OpIrem:          "irem",
	OpIneg:          "ineg",
	OpIxor:          "ixor",
	OpIfeq:          "ifeq",
	OpIfIcmpgt:      "if_icmpgt",
	OpIfIcmplt:      "if_icmplt",
	OpIfIcmpge:      "if_icmpge",
	OpIfIcmple:      "if_icmple",
	OpIfAcmpeq:      "if_acmpeq",
	OpIfAcmpne:      "if_acmpne",
	OpIfnull:        "ifnull",
	OpGoto:          "goto",
	OpReturn:        "return",
	OpAreturn:       "areturn",
	OpGetstatic:     "getstatic",
	OpGetfield:      "getfield",
	OpPutfield:      "putfield",
	OpInvokevirtual: "invokevirtual",
	OpInvokespecial: "invokespecial",
	OpInvokestatic:  "invokestatic",
	OpNew:           "new",
	OpCheckcast:     "checkcast",
}

func (op Opcode) String() string {
	if int(op) < len(mnemonics) {
		return mnemonics[op]
	}
	return "???"
}

// stackDelta 固定栈效应；调用和字段指令的效应取决于描述符，单独计算
var stackDelta = [...]int{
	OpAconstNull: 1,
	OpIconst0:    1,
	OpIconst1:    1,
	OpLdc:        1,
	OpAload:      1,
	OpAstore:     -1,
	OpPop:        -1,
	OpDup:        1,
	OpDupX1:      1,
	OpDupX2:      1,
	OpDup2:       2,
	OpSwap:       0,
	OpIadd:       -1,
	OpIsub:       -1,
	OpImul:       -1,
	OpIdiv:       -1,
	OpIrem:       -1,
	OpIneg:       0,
	OpIxor:       -1,
	OpIfeq:       -1,
	OpIfIcmpgt:   -2,
	OpIfIcmplt:   -2,
	OpIfIcmpge:   -2,
	OpIfIcmple:   -2,
	OpIfAcmpeq:   -2,
	OpIfAcmpne:   -2,
	OpIfnull:     -1,
	OpGoto:       0,
	OpReturn:     0,
	OpAreturn:    -1,
	OpGetstatic:  1,
	OpGetfield:   0,
	OpPutfield:   -2,
	OpNew:        1,
	OpCheckcast:  0,
}

// IsJump 是否为跳转指令
func (op Opcode) IsJump() bool {
	return op >= OpIfeq && op <= OpGoto
}

// IsTerminal 执行后不会落到下一条指令
func (op Opcode) IsTerminal() bool {
	switch op {
	case OpGoto, OpReturn, OpAreturn:
		return true
	}
	return false
}

// IsInvoke 是否为方法调用
func (op Opcode) IsInvoke() bool {
	return op >= OpInvokevirtual && op <= OpInvokestatic
}

// negate 比较跳转取反
func (op Opcode) negate() Opcode {
	switch op {
	case OpIfIcmpgt:
		return OpIfIcmple
	case OpIfIcmple:
		return OpIfIcmpgt
	case OpIfIcmplt:
		return OpIfIcmpge
	case OpIfIcmpge:
		return OpIfIcmplt
	case OpIfAcmpeq:
		return OpIfAcmpne
	case OpIfAcmpne:
		return OpIfAcmpeq
	}
	return op
}
