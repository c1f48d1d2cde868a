package jvmgen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
)

// Kind 输出行的种类；下游按行的形状区分标签、伪指令和指令
type Kind uint8

const (
	KindInstr     Kind = iota // 缩进两级的指令行
	KindLabel                 // 缩进一级的标签行
	KindDirective             // 顶格的伪指令行 (.class, .method ...)
	KindBlank                 // 空行
)

// Instr 结构化的指令
type Instr struct {
	Kind    Kind
	Op      Opcode
	Operand string // 类名、成员引用、常量或伪指令全文
	Slot    int    // aload/astore 槽位
	Target  string // 跳转目标或标签名
}

// Text 返回不含缩进的文本形式
func (in Instr) Text() string {
	switch in.Kind {
	case KindLabel:
		return in.Target + ":"
	case KindDirective:
		return in.Operand
	case KindBlank:
		return ""
	}

	switch {
	case in.Op == OpAload || in.Op == OpAstore:
		// 槽位 0-3 有单字节的短格式
		if in.Slot >= 0 && in.Slot <= 3 {
			return in.Op.String() + "_" + strconv.Itoa(in.Slot)
		}
		return in.Op.String() + " " + strconv.Itoa(in.Slot)
	case in.Op.IsJump():
		return in.Op.String() + " " + in.Target
	case in.Operand != "":
		return in.Op.String() + " " + in.Operand
	}
	return in.Op.String()
}

// String 调试输出
func (in Instr) String() string { return in.Text() }

// MethodRef 方法引用
type MethodRef struct {
	Class      string // 内部名称格式，如 java/lang/Integer
	Name       string
	Descriptor string
}

// String 返回 Jasmin 形式 Class/name(desc)ret
func (r MethodRef) String() string {
	return r.Class + "/" + r.Name + r.Descriptor
}

// FieldRef 字段引用
type FieldRef struct {
	Class      string
	Name       string
	Descriptor string
}

// String 返回 Jasmin 形式 Class/name desc
func (r FieldRef) String() string {
	return r.Class + "/" + r.Name + " " + r.Descriptor
}

// ============================================================================
// 指令构造
// ============================================================================

func op(o Opcode) Instr { return Instr{Op: o} }

func opWith(o Opcode, operand string) Instr { return Instr{Op: o, Operand: operand} }

func jump(o Opcode, label string) Instr { return Instr{Op: o, Target: label} }

func label(name string) Instr { return Instr{Kind: KindLabel, Target: name} }

func directive(text string) Instr { return Instr{Kind: KindDirective, Operand: text} }

func blank() Instr { return Instr{Kind: KindBlank} }

func load(slot int) Instr { return Instr{Op: OpAload, Slot: slot} }

func store(slot int) Instr { return Instr{Op: OpAstore, Slot: slot} }

func invoke(o Opcode, ref MethodRef) Instr { return Instr{Op: o, Operand: ref.String()} }

func ldcInt(v int32) Instr { return opWith(OpLdc, strconv.Itoa(int(v))) }

func ldcString(s string) Instr { return opWith(OpLdc, quote(s)) }

// quote 按 Jasmin 字符串字面量的规则转义
func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			switch {
			case r >= 0x20 && r <= 0x7e:
				sb.WriteRune(r)
			case r > 0xffff:
				r1, r2 := utf16.EncodeRune(r)
				fmt.Fprintf(&sb, `\u%04x\u%04x`, r1, r2)
			default:
				fmt.Fprintf(&sb, `\u%04x`, r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
