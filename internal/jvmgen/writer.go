package jvmgen

import (
	"bufio"
	"bytes"
	"io"
)

// Unit 一个类对应的编译单元
type Unit struct {
	Name   string  // 类名，同时决定输出文件名 <Name>.j
	Instrs []Instr // 按顺序排列的输出行
}

// FileName 输出文件名
func (u *Unit) FileName() string { return u.Name + ".j" }

func (u *Unit) append(in ...Instr) { u.Instrs = append(u.Instrs, in...) }

// WriteTo 序列化编译单元
//
// 伪指令顶格，标签缩进一个制表符，指令缩进两个制表符。
func (u *Unit) WriteTo(w io.Writer) (int64, error) {
	tw := NewTextWriter(w)
	for _, in := range u.Instrs {
		tw.WriteInstr(in)
	}
	return tw.Flush()
}

// Bytes 返回序列化后的文本
func (u *Unit) Bytes() []byte {
	var buf bytes.Buffer
	u.WriteTo(&buf)
	return buf.Bytes()
}

// String 返回序列化后的文本
func (u *Unit) String() string { return string(u.Bytes()) }

// TextWriter 汇编文本写入器
type TextWriter struct {
	w   *bufio.Writer
	n   int64
	err error
}

// NewTextWriter 创建新的文本写入器
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: bufio.NewWriter(w)}
}

// WriteInstr 写入一行
func (t *TextWriter) WriteInstr(in Instr) {
	switch in.Kind {
	case KindInstr:
		t.writeString("\t\t")
	case KindLabel:
		t.writeString("\t")
	}
	t.writeString(in.Text())
	t.writeString("\n")
}

func (t *TextWriter) writeString(s string) {
	if t.err != nil {
		return
	}
	n, err := t.w.WriteString(s)
	t.n += int64(n)
	t.err = err
}

// Flush 刷新缓冲区并返回写入的字节数和第一个错误
func (t *TextWriter) Flush() (int64, error) {
	if t.err != nil {
		return t.n, t.err
	}
	return t.n, t.w.Flush()
}
