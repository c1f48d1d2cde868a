package jvmgen

import "testing"

func TestFrameSlots(t *testing.T) {
	f := newFrame("")

	if slot, ok := f.slotOf("this"); !ok || slot != 0 {
		t.Fatalf("slotOf(this) = %d, %v; want 0, true", slot, ok)
	}
	if got := f.declareLocal("a"); got != 1 {
		t.Errorf("declareLocal(a) = %d, want 1", got)
	}
	if got := f.declareLocal("b"); got != 2 {
		t.Errorf("declareLocal(b) = %d, want 2", got)
	}
	if got := f.declareLocal("a"); got != 1 {
		t.Errorf("redeclare a = %d, want 1", got)
	}

	for i := 0; i < 3; i++ {
		if slot, _ := f.slotOf("b"); slot != 2 {
			t.Errorf("slotOf(b) = %d on call %d", slot, i)
		}
	}
	if _, ok := f.slotOf("missing"); ok {
		t.Error("slotOf(missing) should fail")
	}

	// 临时槽位每次都是新的
	if got := f.newTemp(); got != 3 {
		t.Errorf("first temp = %d, want 3", got)
	}
	if got, _ := f.slotOf(""); got != 4 {
		t.Errorf("anonymous slot = %d, want 4", got)
	}
	if got := f.maxLocals(); got != 5 {
		t.Errorf("maxLocals = %d, want 5", got)
	}
}

func TestFrameLabels(t *testing.T) {
	f := newFrame("")
	if got := f.newLabel(); got != "Label_0" {
		t.Errorf("first label = %s", got)
	}
	if got := f.newLabel(); got != "Label_1" {
		t.Errorf("second label = %s", got)
	}
	if got := newFrame("L").newLabel(); got != "L0" {
		t.Errorf("prefixed label = %s", got)
	}

	if _, ok := f.topBreak(); ok {
		t.Error("empty control stack should have no break target")
	}
	f.pushLabels("a1", "b1", "c1")
	f.pushLabels("a2", "b2", "c2")
	if after, _ := f.topAfter(); after != "a2" {
		t.Errorf("topAfter = %s", after)
	}
	f.popLabels()
	brk, _ := f.topBreak()
	cont, _ := f.topContinue()
	if brk != "b1" || cont != "c1" {
		t.Errorf("after pop: break=%s continue=%s", brk, cont)
	}
}

func TestLoadStoreEncoding(t *testing.T) {
	tests := []struct {
		in   Instr
		want string
	}{
		{load(0), "aload_0"},
		{load(3), "aload_3"},
		{load(4), "aload 4"},
		{store(2), "astore_2"},
		{store(17), "astore 17"},
	}
	for _, tt := range tests {
		if got := tt.in.Text(); got != tt.want {
			t.Errorf("Text() = %q, want %q", got, tt.want)
		}
	}
}
