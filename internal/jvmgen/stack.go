package jvmgen

import (
	"strings"

	"github.com/tangzhangming/sophia/internal/errors"
	"github.com/tangzhangming/sophia/internal/i18n"
)

// stackInfo 栈深度模拟的结果
type stackInfo struct {
	Max  int // 最大深度，用于 .limit stack
	Exit int // 从代码末尾落出时的深度；末尾不可达时为 -1
}

// simulate 对指令序列做符号化的栈深度模拟
//
// 沿着顺序执行和跳转边传播深度，同一位置从不同路径到达时深度必须一致。
// 不可达的指令不参与计算。
func simulate(code []Instr) (stackInfo, error) {
	labels := make(map[string]int)
	for i, in := range code {
		if in.Kind == KindLabel {
			labels[in.Target] = i
		}
	}

	// depth[len(code)] 记录落出末尾时的深度
	depth := make([]int, len(code)+1)
	for i := range depth {
		depth[i] = -1
	}

	info := stackInfo{Exit: -1}
	work := []int{0}
	depth[0] = 0

	reach := func(i, d int, from Instr) error {
		if depth[i] == -1 {
			depth[i] = d
			if i < len(code) {
				work = append(work, i)
			}
			return nil
		}
		if depth[i] != d {
			return errors.New(errors.G0005, i18n.ErrStackMismatch, from.Text(), depth[i], d)
		}
		return nil
	}

	for len(work) > 0 {
		i := work[len(work)-1]
		work = work[:len(work)-1]
		in, d := code[i], depth[i]

		if in.Kind != KindInstr {
			if err := reach(i+1, d, in); err != nil {
				return info, err
			}
			continue
		}

		delta, err := stackEffect(in)
		if err != nil {
			return info, err
		}
		nd := d + delta
		if nd < 0 {
			return info, errors.New(errors.G0005, i18n.ErrStackMismatch, in.Text(), d, nd)
		}
		if nd > info.Max {
			info.Max = nd
		}

		if in.Op.IsJump() {
			t, ok := labels[in.Target]
			if !ok {
				return info, errors.New(errors.G0005, i18n.ErrUndefinedLabel, in.Target)
			}
			if err := reach(t, nd, in); err != nil {
				return info, err
			}
		}
		if !in.Op.IsTerminal() {
			if err := reach(i+1, nd, in); err != nil {
				return info, err
			}
		}
	}

	info.Exit = depth[len(code)]
	return info, nil
}

// stackEffect 单条指令的净栈效应
func stackEffect(in Instr) (int, error) {
	if !in.Op.IsInvoke() {
		if int(in.Op) < len(stackDelta) {
			return stackDelta[in.Op], nil
		}
		return 0, errors.New(errors.G0006, i18n.ErrUnsupportedNode, in.Op.String())
	}

	// Class/name(args)ret
	open := strings.IndexByte(in.Operand, '(')
	if open < 0 {
		return 0, errors.New(errors.G0001, i18n.ErrUnknownType, in.Operand)
	}
	args, ret, ok := descriptorSize(in.Operand[open:])
	if !ok {
		return 0, errors.New(errors.G0001, i18n.ErrUnknownType, in.Operand)
	}
	delta := ret - args
	if in.Op != OpInvokestatic {
		delta-- // 接收者
	}
	return delta, nil
}

// descriptorSize 返回方法描述符的参数个数和返回值个数
//
// 代码生成只用到单字宽的类型，long/double 不会出现。
func descriptorSize(desc string) (args, ret int, ok bool) {
	if len(desc) == 0 || desc[0] != '(' {
		return 0, 0, false
	}
	i := 1
	for i < len(desc) && desc[i] != ')' {
		n, ok := skipType(desc, i)
		if !ok {
			return 0, 0, false
		}
		i = n
		args++
	}
	if i >= len(desc) {
		return 0, 0, false
	}
	i++ // ')'
	if desc[i:] == "V" {
		return args, 0, true
	}
	if n, ok := skipType(desc, i); !ok || n != len(desc) {
		return 0, 0, false
	}
	return args, 1, true
}

// skipType 跳过 desc[i:] 开头的一个字段描述符
func skipType(desc string, i int) (int, bool) {
	for i < len(desc) && desc[i] == '[' {
		i++
	}
	if i >= len(desc) {
		return 0, false
	}
	switch desc[i] {
	case 'I', 'Z', 'B', 'C', 'S', 'F':
		return i + 1, true
	case 'L':
		end := strings.IndexByte(desc[i:], ';')
		if end < 0 {
			return 0, false
		}
		return i + end + 1, true
	}
	return 0, false
}
