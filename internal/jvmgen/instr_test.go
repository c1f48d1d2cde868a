package jvmgen

import (
	"bytes"
	"testing"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", `"hello"`},
		{"", `""`},
		{`say "hi"`, `"say \"hi\""`},
		{"a\\b", `"a\\b"`},
		{"line\nnext\ttab", `"line\nnext\ttab"`},
		{"é", `"\u00e9"`},
		{"😀", `"\ud83d\ude00"`},
	}
	for _, tt := range tests {
		if got := quote(tt.in); got != tt.want {
			t.Errorf("quote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestInstrText(t *testing.T) {
	tests := []struct {
		in   Instr
		want string
	}{
		{op(OpIadd), "iadd"},
		{ldcInt(-7), "ldc -7"},
		{ldcString("x"), `ldc "x"`},
		{jump(OpIfIcmple, "Label_3"), "if_icmple Label_3"},
		{label("Label_3"), "Label_3:"},
		{directive(".limit stack 4"), ".limit stack 4"},
		{invoke(OpInvokevirtual, refListGet), "invokevirtual List/getElement(I)Ljava/lang/Object;"},
		{opWith(OpGetfield, FieldRef{"Point", "x", "Ljava/lang/Integer;"}.String()), "getfield Point/x Ljava/lang/Integer;"},
		{opWith(OpCheckcast, "java/lang/String"), "checkcast java/lang/String"},
	}
	for _, tt := range tests {
		if got := tt.in.Text(); got != tt.want {
			t.Errorf("Text() = %q, want %q", got, tt.want)
		}
	}
}

func TestTextWriterIndentation(t *testing.T) {
	u := &Unit{Name: "A"}
	u.append(directive(".class public A"), label("L0"), op(OpReturn), blank())

	var buf bytes.Buffer
	n, err := u.WriteTo(&buf)
	if err != nil {
		t.Fatal(err)
	}
	want := ".class public A\n\tL0:\n\t\treturn\n\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
	if n != int64(len(want)) {
		t.Errorf("WriteTo returned %d, want %d", n, len(want))
	}
}

func TestNegate(t *testing.T) {
	tests := []struct {
		in, want Opcode
	}{
		{OpIfIcmpgt, OpIfIcmple},
		{OpIfIcmplt, OpIfIcmpge},
		{OpIfAcmpeq, OpIfAcmpne},
		{OpIfAcmpne, OpIfAcmpeq},
		{OpGoto, OpGoto},
	}
	for _, tt := range tests {
		if got := tt.in.negate(); got != tt.want {
			t.Errorf("%s.negate() = %s, want %s", tt.in, got, tt.want)
		}
		if got := tt.in.negate().negate(); got != tt.in {
			t.Errorf("%s negated twice = %s", tt.in, got)
		}
	}
}
