package jvmgen

import "strconv"

// DefaultLabelPrefix 标签名前缀
const DefaultLabelPrefix = "Label_"

// receiver 槽位 0 的名字
const receiver = "this"

// labelTriple 控制栈的一项
type labelTriple struct {
	after string // 语句结束后的位置
	brk   string // break 目标
	cont  string // continue 目标
}

// frame 单个方法激活期间的状态：槽位表、标签计数器和控制栈
//
// 每个方法开始时新建，不跨方法共享。
type frame struct {
	slots  []string
	index  map[string]int
	temps  int
	prefix string
	labels int
	stack  []labelTriple
}

func newFrame(prefix string) *frame {
	if prefix == "" {
		prefix = DefaultLabelPrefix
	}
	f := &frame{index: make(map[string]int), prefix: prefix}
	f.declareLocal(receiver)
	return f
}

// declareLocal 为变量分配下一个槽位；重复声明返回已有槽位
//
// 临时槽位紧跟在已声明变量之后，所有声明必须先于第一次 newTemp。
func (f *frame) declareLocal(name string) int {
	if slot, ok := f.index[name]; ok {
		return slot
	}
	slot := len(f.slots)
	f.slots = append(f.slots, name)
	f.index[name] = slot
	return slot
}

// slotOf 返回变量槽位；空名字每次分配一个新的临时槽位
func (f *frame) slotOf(name string) (int, bool) {
	if name == "" {
		return f.newTemp(), true
	}
	slot, ok := f.index[name]
	return slot, ok
}

// newTemp 分配临时槽位，同一方法内不复用
func (f *frame) newTemp() int {
	slot := len(f.slots) + f.temps
	f.temps++
	return slot
}

// maxLocals .limit locals
func (f *frame) maxLocals() int {
	return len(f.slots) + f.temps
}

// newLabel 返回方法内唯一、严格递增的标签名
func (f *frame) newLabel() string {
	name := f.prefix + strconv.Itoa(f.labels)
	f.labels++
	return name
}

func (f *frame) pushLabels(after, brk, cont string) {
	f.stack = append(f.stack, labelTriple{after: after, brk: brk, cont: cont})
}

func (f *frame) popLabels() {
	f.stack = f.stack[:len(f.stack)-1]
}

func (f *frame) top() (labelTriple, bool) {
	if len(f.stack) == 0 {
		return labelTriple{}, false
	}
	return f.stack[len(f.stack)-1], true
}

func (f *frame) topAfter() (string, bool) {
	t, ok := f.top()
	return t.after, ok
}

func (f *frame) topBreak() (string, bool) {
	t, ok := f.top()
	return t.brk, ok
}

func (f *frame) topContinue() (string, bool) {
	t, ok := f.top()
	return t.cont, ok
}
