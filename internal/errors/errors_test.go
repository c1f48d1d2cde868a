package errors

import (
	"fmt"
	"strings"
	"testing"

	"go.uber.org/multierr"

	"github.com/tangzhangming/sophia/internal/i18n"
	"github.com/tangzhangming/sophia/internal/token"
)

func TestCompileError(t *testing.T) {
	i18n.SetLanguage(i18n.LangEnglish)

	e := New(G0004, i18n.ErrUnknownVariable, "x").
		In("Main", "run").
		At(token.Position{Filename: "a.sophia", Line: 3, Column: 7})

	if e.Error() != "Main.run: unknown variable 'x'" {
		t.Errorf("Error() = %q", e.Error())
	}
	// 已经设置的位置不会被外层覆盖
	e.In("Other", "m").At(token.Position{Line: 99})
	if e.Location() != "Main.run" || e.Pos.Line != 3 {
		t.Errorf("location overwritten: %s %s", e.Location(), e.Pos)
	}
	if len(e.Hints) != 1 {
		t.Errorf("hints = %v", e.Hints)
	}

	cause := fmt.Errorf("disk full")
	w := Wrap(cause, B0005, i18n.ErrWriteUnit, "A.j")
	if w.Unwrap() != cause || !strings.HasSuffix(w.Error(), ": disk full") {
		t.Errorf("Wrap = %q", w.Error())
	}

	wrapped := fmt.Errorf("outer: %w", w)
	if ce, ok := As(wrapped); !ok || ce.Code != B0005 {
		t.Errorf("As = %v, %v", ce, ok)
	}
	if _, ok := As(cause); ok {
		t.Error("As matched a plain error")
	}
}

func TestInternalNote(t *testing.T) {
	i18n.SetLanguage(i18n.LangEnglish)

	tests := []struct {
		err  *CompileError
		note bool
	}{
		{New(G0005, i18n.ErrStackMismatch, "Label_1", 1, 2).In("Zoo", "run"), true},
		{New(G0002, i18n.ErrUnknownClass, "Cat"), false},
		{New(B0005, i18n.ErrWriteUnit, "Zoo.j").In("Zoo", ""), false},
	}
	f := NewFormatter()
	for _, tt := range tests {
		out := f.FormatCompileError(tt.err)
		if got := strings.Contains(out, " = note: no unit was written for class 'Zoo'"); got != tt.note {
			t.Errorf("%s: note = %v, want %v:\n%s", tt.err.Code, got, tt.note, out)
		}
	}
}

func TestFormatter(t *testing.T) {
	i18n.SetLanguage(i18n.LangEnglish)

	err := multierr.Combine(
		New(G0003, i18n.ErrUnknownMember, "Dog", "fly").In("Zoo", "run").At(token.Position{Filename: "zoo.sophia", Line: 5, Column: 12}),
		fmt.Errorf("plain failure"),
	)
	f := NewFormatter()
	out := f.Format(err)

	for _, want := range []string{
		"error[G0003]: class 'Dog' has no member 'fly'\n",
		" --> Zoo.run (zoo.sophia:5:12)\n",
		" = help: ",
		"error: plain failure\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("colors emitted with Colors=false")
	}

	f.Colors = true
	if !strings.Contains(f.Format(err), "\033[") {
		t.Error("no colors emitted with Colors=true")
	}
	if f.Format(nil) != "" {
		t.Error("Format(nil) should be empty")
	}
}

func TestColorize(t *testing.T) {
	if Colorize("x", ColorRed, false) != "x" {
		t.Error("disabled colorize changed the text")
	}
	if got := Colorize("x", ColorRed, true); !strings.HasPrefix(got, "\033[") || !strings.HasSuffix(got, "\033[0m") {
		t.Errorf("Colorize = %q", got)
	}
}
