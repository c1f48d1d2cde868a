package jvmgen

import (
	"bytes"
	"testing"

	"github.com/tangzhangming/sophia/internal/runtime"
)

// 生成代码调用的辅助类方法都必须在辅助类源码中定义
func TestRuntimeReferencesResolve(t *testing.T) {
	refs := []MethodRef{
		refListInit, refListCopy, refListGet, refListSet, refListAdd,
		refFptrInit, refFptrInvoke,
	}
	for _, r := range refs {
		h, ok := runtime.Lookup(r.Class)
		if !ok {
			t.Errorf("%s: no helper class %s", r, r.Class)
			continue
		}
		decl := []byte(".method public " + r.Name + r.Descriptor + "\n")
		if !bytes.Contains(h.Source, decl) {
			t.Errorf("%s is not defined by %s", r, h.FileName())
		}
	}
}

func TestBoxMappings(t *testing.T) {
	tests := []struct {
		box     *BoxMapping
		valueOf string
		unbox   string
	}{
		{intBox, "java/lang/Integer/valueOf(I)Ljava/lang/Integer;", "java/lang/Integer/intValue()I"},
		{boolBox, "java/lang/Boolean/valueOf(Z)Ljava/lang/Boolean;", "java/lang/Boolean/booleanValue()Z"},
	}
	for _, tt := range tests {
		if got := tt.box.ValueOf().String(); got != tt.valueOf {
			t.Errorf("ValueOf = %s, want %s", got, tt.valueOf)
		}
		if got := tt.box.Unbox().String(); got != tt.unbox {
			t.Errorf("Unbox = %s, want %s", got, tt.unbox)
		}
	}
}
