package jvmgen

import (
	"fmt"
	"strconv"
	"strings"
)

// 一个只覆盖生成器所用指令子集的解释器，用来在测试里真正执行生成的代码。
// List/Fptr 和 java.lang 中用到的方法都在这里直接模拟。

type jint struct{ v int32 }
type jbool struct{ v bool }
type jlist struct{ elems []interface{} }
type jarray struct{ elems []interface{} }
type jfptr struct {
	obj  interface{}
	name string
}
type jobject struct {
	class  string
	fields map[string]interface{}
}
type jstream struct{}

type vmMethod struct {
	name   string
	desc   string
	static bool
	code   []Instr
	labels map[string]int
}

type vmClass struct {
	name    string
	super   string
	methods []*vmMethod
}

type vm struct {
	classes map[string]*vmClass
	out     []string
	budget  int
	trace   map[string]int // 标签被执行到的次数
}

func newVM(units []*Unit) *vm {
	v := &vm{classes: make(map[string]*vmClass), budget: 1_000_000, trace: make(map[string]int)}
	for _, u := range units {
		v.load(u)
	}
	return v
}

func (v *vm) load(u *Unit) {
	cls := &vmClass{}
	var cur *vmMethod
	for _, in := range u.Instrs {
		switch in.Kind {
		case KindDirective:
			text := in.Operand
			switch {
			case strings.HasPrefix(text, ".class public "):
				cls.name = strings.TrimPrefix(text, ".class public ")
			case strings.HasPrefix(text, ".super "):
				cls.super = strings.TrimPrefix(text, ".super ")
			case strings.HasPrefix(text, ".method public "):
				sig := strings.TrimPrefix(text, ".method public ")
				cur = &vmMethod{labels: make(map[string]int)}
				if strings.HasPrefix(sig, "static ") {
					cur.static = true
					sig = strings.TrimPrefix(sig, "static ")
				}
				open := strings.IndexByte(sig, '(')
				cur.name, cur.desc = sig[:open], sig[open:]
			case text == ".end method":
				cls.methods = append(cls.methods, cur)
				cur = nil
			}
		case KindLabel:
			if cur != nil {
				cur.labels[in.Target] = len(cur.code)
				cur.code = append(cur.code, in)
			}
		case KindInstr:
			if cur != nil {
				cur.code = append(cur.code, in)
			}
		}
	}
	v.classes[cls.name] = cls
}

// lookup 沿继承链查找方法；desc 为空时按名字和参数个数匹配
func (v *vm) lookup(class, name, desc string, arity int) (*vmMethod, error) {
	for c := class; c != ""; {
		cls, ok := v.classes[c]
		if !ok {
			break
		}
		for _, m := range cls.methods {
			if m.name != name {
				continue
			}
			if desc != "" && m.desc == desc {
				return m, nil
			}
			if desc == "" {
				if args, _, ok := descriptorSize(m.desc); ok && args == arity {
					return m, nil
				}
			}
		}
		c = cls.super
	}
	return nil, fmt.Errorf("no method %s.%s%s", class, name, desc)
}

// instantiate new C() 并执行无参构造函数
func (v *vm) instantiate(class string) (*jobject, error) {
	obj := &jobject{class: class, fields: make(map[string]interface{})}
	if _, err := v.call(class, "<init>", "()V", obj, nil); err != nil {
		return nil, err
	}
	return obj, nil
}

// invokeMethod 按名字调用对象上的方法
func (v *vm) invokeMethod(obj *jobject, name string, args ...interface{}) (interface{}, error) {
	return v.call(obj.class, name, "", obj, args)
}

func (v *vm) call(class, name, desc string, this interface{}, args []interface{}) (interface{}, error) {
	if class == ObjectClass && name == "<init>" {
		return nil, nil
	}
	m, err := v.lookup(class, name, desc, len(args))
	if err != nil {
		return nil, err
	}
	locals := make([]interface{}, 64)
	base := 0
	if !m.static {
		locals[0] = this
		base = 1
	}
	copy(locals[base:], args)
	return v.exec(m, locals)
}

func (v *vm) exec(m *vmMethod, locals []interface{}) (interface{}, error) {
	var stack []interface{}
	push := func(x interface{}) { stack = append(stack, x) }
	pop := func() interface{} {
		x := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return x
	}
	popInt := func() int32 { return pop().(int32) }

	pc := 0
	for {
		if v.budget--; v.budget < 0 {
			return nil, fmt.Errorf("%s: step budget exhausted", m.name)
		}
		if pc >= len(m.code) {
			return nil, fmt.Errorf("%s: fell off the end of code", m.name)
		}
		in := m.code[pc]
		pc++
		if in.Kind == KindLabel {
			v.trace[in.Target]++
			continue
		}

		switch in.Op {
		case OpAconstNull:
			push(nil)
		case OpIconst0:
			push(int32(0))
		case OpIconst1:
			push(int32(1))
		case OpLdc:
			if strings.HasPrefix(in.Operand, `"`) {
				s, err := strconv.Unquote(in.Operand)
				if err != nil {
					return nil, err
				}
				push(s)
			} else {
				n, err := strconv.Atoi(in.Operand)
				if err != nil {
					return nil, err
				}
				push(int32(n))
			}
		case OpAload:
			push(locals[in.Slot])
		case OpAstore:
			locals[in.Slot] = pop()
		case OpPop:
			pop()
		case OpDup:
			x := pop()
			push(x)
			push(x)
		case OpDupX1:
			a, b := pop(), pop()
			push(a)
			push(b)
			push(a)
		case OpDupX2:
			a, b, c := pop(), pop(), pop()
			push(a)
			push(c)
			push(b)
			push(a)
		case OpDup2:
			a, b := pop(), pop()
			push(b)
			push(a)
			push(b)
			push(a)
		case OpSwap:
			a, b := pop(), pop()
			push(a)
			push(b)
		case OpIadd, OpIsub, OpImul, OpIdiv, OpIrem, OpIxor:
			b, a := popInt(), popInt()
			switch in.Op {
			case OpIadd:
				push(a + b)
			case OpIsub:
				push(a - b)
			case OpImul:
				push(a * b)
			case OpIdiv:
				push(a / b)
			case OpIrem:
				push(a % b)
			case OpIxor:
				push(a ^ b)
			}
		case OpIneg:
			push(-popInt())
		case OpIfeq:
			if popInt() == 0 {
				pc = m.labels[in.Target]
			}
		case OpIfnull:
			if pop() == nil {
				pc = m.labels[in.Target]
			}
		case OpIfIcmpgt, OpIfIcmplt, OpIfIcmpge, OpIfIcmple:
			b, a := popInt(), popInt()
			taken := map[Opcode]bool{
				OpIfIcmpgt: a > b,
				OpIfIcmplt: a < b,
				OpIfIcmpge: a >= b,
				OpIfIcmple: a <= b,
			}[in.Op]
			if taken {
				pc = m.labels[in.Target]
			}
		case OpIfAcmpeq, OpIfAcmpne:
			b, a := pop(), pop()
			if (a == b) == (in.Op == OpIfAcmpeq) {
				pc = m.labels[in.Target]
			}
		case OpGoto:
			pc = m.labels[in.Target]
		case OpReturn:
			return nil, nil
		case OpAreturn:
			return pop(), nil
		case OpGetstatic:
			push(jstream{})
		case OpGetfield:
			name := fieldName(in.Operand)
			obj, ok := pop().(*jobject)
			if !ok {
				return nil, fmt.Errorf("getfield %s on non-object", name)
			}
			push(obj.fields[name])
		case OpPutfield:
			val := pop()
			obj, ok := pop().(*jobject)
			if !ok {
				return nil, fmt.Errorf("putfield on non-object")
			}
			obj.fields[fieldName(in.Operand)] = val
		case OpNew:
			switch in.Operand {
			case ArrayListClass:
				push(&jarray{})
			case ListClass:
				push(&jlist{})
			case FptrClass:
				push(&jfptr{})
			default:
				push(&jobject{class: in.Operand, fields: make(map[string]interface{})})
			}
		case OpCheckcast:
			if err := checkcast(stack[len(stack)-1], in.Operand); err != nil {
				return nil, err
			}
		case OpInvokevirtual, OpInvokespecial, OpInvokestatic:
			class, name, desc := splitRef(in.Operand)
			nargs, nret, ok := descriptorSize(desc)
			if !ok {
				return nil, fmt.Errorf("bad descriptor %s", desc)
			}
			args := make([]interface{}, nargs)
			for i := nargs - 1; i >= 0; i-- {
				args[i] = pop()
			}
			var recv interface{}
			if in.Op != OpInvokestatic {
				recv = pop()
			}
			res, err := v.native(class, name, desc, recv, args)
			if err != nil {
				return nil, err
			}
			if nret == 1 {
				push(res)
			}
		default:
			return nil, fmt.Errorf("unsupported opcode %s", in.Op)
		}
	}
}

// native 平台类和运行时辅助类的方法；其它的调用生成的代码
func (v *vm) native(class, name, desc string, recv interface{}, args []interface{}) (interface{}, error) {
	switch class + "." + name {
	case "java/lang/Integer.valueOf":
		return &jint{args[0].(int32)}, nil
	case "java/lang/Integer.intValue":
		return recv.(*jint).v, nil
	case "java/lang/Boolean.valueOf":
		return &jbool{args[0].(int32) != 0}, nil
	case "java/lang/Boolean.booleanValue":
		if recv.(*jbool).v {
			return int32(1), nil
		}
		return int32(0), nil
	case "java/lang/Object.equals":
		if javaEquals(recv, args[0]) {
			return int32(1), nil
		}
		return int32(0), nil
	case "java/util/ArrayList.<init>":
		return nil, nil
	case "java/util/ArrayList.add":
		a := recv.(*jarray)
		a.elems = append(a.elems, args[0])
		return int32(1), nil
	case "List.<init>":
		l := recv.(*jlist)
		switch src := args[0].(type) {
		case *jarray:
			l.elems = append([]interface{}(nil), src.elems...)
		case *jlist:
			l.elems = append([]interface{}(nil), src.elems...)
		}
		return nil, nil
	case "List.getElement":
		l := recv.(*jlist)
		i := int(args[0].(int32))
		if i < 0 || i >= len(l.elems) {
			return nil, fmt.Errorf("list index %d out of range", i)
		}
		return l.elems[i], nil
	case "List.setElement":
		l := recv.(*jlist)
		l.elems[args[0].(int32)] = args[1]
		return nil, nil
	case "List.addElement":
		l := recv.(*jlist)
		l.elems = append(l.elems, args[0])
		return nil, nil
	case "Fptr.<init>":
		f := recv.(*jfptr)
		f.obj, f.name = args[0], args[1].(string)
		return nil, nil
	case "Fptr.invoke":
		f := recv.(*jfptr)
		obj, ok := f.obj.(*jobject)
		if !ok {
			return nil, fmt.Errorf("invoke %s on non-object", f.name)
		}
		return v.call(obj.class, f.name, "", obj, recv2args(args[0]))
	case "java/io/PrintStream.println":
		v.out = append(v.out, v.format(desc, args[0]))
		return nil, nil
	}
	return v.call(class, name, desc, recv, args)
}

func recv2args(a interface{}) []interface{} {
	return a.(*jarray).elems
}

func (v *vm) format(desc string, x interface{}) string {
	switch desc {
	case "(I)V":
		return strconv.Itoa(int(x.(int32)))
	case "(Z)V":
		return strconv.FormatBool(x.(int32) != 0)
	}
	return display(x)
}

func display(x interface{}) string {
	switch x := x.(type) {
	case nil:
		return "null"
	case *jint:
		return strconv.Itoa(int(x.v))
	case *jbool:
		return strconv.FormatBool(x.v)
	case string:
		return x
	case *jlist:
		parts := make([]string, 0, len(x.elems))
		for _, e := range x.elems {
			parts = append(parts, display(e))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *jobject:
		return x.class + "@obj"
	}
	return fmt.Sprintf("%v", x)
}

func javaEquals(a, b interface{}) bool {
	switch a := a.(type) {
	case *jint:
		bi, ok := b.(*jint)
		return ok && a.v == bi.v
	case *jbool:
		bb, ok := b.(*jbool)
		return ok && a.v == bb.v
	case string:
		bs, ok := b.(string)
		return ok && a == bs
	}
	return a == b
}

func checkcast(x interface{}, class string) error {
	if x == nil {
		return nil
	}
	ok := true
	switch class {
	case "java/lang/Integer":
		_, ok = x.(*jint)
	case "java/lang/Boolean":
		_, ok = x.(*jbool)
	case StringClass:
		_, ok = x.(string)
	case ListClass:
		_, ok = x.(*jlist)
	case FptrClass:
		_, ok = x.(*jfptr)
	case ObjectClass:
	default:
		_, ok = x.(*jobject)
	}
	if !ok {
		return fmt.Errorf("checkcast %s failed for %T", class, x)
	}
	return nil
}

func splitRef(ref string) (class, name, desc string) {
	open := strings.IndexByte(ref, '(')
	slash := strings.LastIndexByte(ref[:open], '/')
	return ref[:slash], ref[slash+1 : open], ref[open:]
}

func fieldName(ref string) string {
	sp := strings.IndexByte(ref, ' ')
	path := ref[:sp]
	return path[strings.LastIndexByte(path, '/')+1:]
}
