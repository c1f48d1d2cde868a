package ast

import (
	"strings"
	"testing"

	"github.com/tangzhangming/sophia/internal/types"
)

const zoo = `{
  "classes": [
    {
      "name": "Animal",
      "pos": {"file": "zoo.sophia", "line": 1, "col": 1},
      "fields": [{"name": "legs", "type": "int"}],
      "methods": [
        {
          "name": "describe",
          "args": [{"name": "prefix", "type": "string"}],
          "return": "string",
          "body": [{"kind": "return", "value": {"kind": "ident", "name": "prefix"}}]
        }
      ]
    },
    {
      "name": "Dog",
      "parent": "Animal",
      "constructor": {
        "locals": [{"name": "i", "type": "int"}, {"name": "xs", "type": {"kind": "list", "elements": [{"type": "int"}]}}],
        "body": [
          {"kind": "assign", "lvalue": {"kind": "member", "instance": {"kind": "this"}, "member": "legs"},
           "rvalue": {"kind": "int", "value": 4}},
          {"kind": "for",
           "init": {"kind": "assign", "lvalue": {"kind": "ident", "name": "i"}, "rvalue": {"kind": "int", "value": 0}},
           "condition": {"kind": "binary", "op": "lt", "left": {"kind": "ident", "name": "i"}, "right": {"kind": "int", "value": 3}},
           "update": {"kind": "assign", "lvalue": {"kind": "ident", "name": "i"},
                      "rvalue": {"kind": "binary", "op": "+", "left": {"kind": "ident", "name": "i"}, "right": {"kind": "int", "value": 1}}},
           "body": {"kind": "block", "statements": [
             {"kind": "if", "condition": {"kind": "unary", "op": "not", "operand": {"kind": "bool", "value": true}},
              "then": {"kind": "break"}, "else": {"kind": "continue"}}
           ]}},
          {"kind": "foreach", "var": "i", "list": {"kind": "list", "elements": [{"kind": "int", "value": 1}]},
           "body": {"kind": "print", "value": {"kind": "ident", "name": "i"}}},
          {"kind": "call", "instance": {"kind": "member", "instance": {"kind": "this"}, "member": "describe"},
           "args": [{"kind": "string", "value": "dog"}]},
          {"kind": "print", "value": {"kind": "index", "instance": {"kind": "ident", "name": "xs"}, "index": {"kind": "int", "value": 0}}},
          {"kind": "print", "value": {"kind": "new", "class": "Animal"}},
          {"kind": "print", "value": {"kind": "unary", "op": "postinc", "operand": {"kind": "ident", "name": "i"}}},
          {"kind": "print", "value": {"kind": "null"}}
        ]
      }
    }
  ]
}`

func TestDecodeProgram(t *testing.T) {
	prog, err := DecodeProgram([]byte(zoo))
	if err != nil {
		t.Fatal(err)
	}
	if len(prog.Classes) != 2 {
		t.Fatalf("got %d classes", len(prog.Classes))
	}

	animal, dog := prog.Classes[0], prog.Classes[1]
	if animal.Pos().String() != "zoo.sophia:1:1" {
		t.Errorf("position = %s", animal.Pos())
	}
	if animal.HasParent() || dog.Parent != "Animal" {
		t.Errorf("parents: %q, %q", animal.Parent, dog.Parent)
	}
	if len(animal.Fields) != 1 || animal.Fields[0].Var.Type != (types.IntType{}) {
		t.Errorf("fields = %v", animal.Fields)
	}

	m := animal.Methods[0]
	if m.Name != "describe" || m.ReturnType != (types.StringType{}) || len(m.ArgTypes()) != 1 {
		t.Errorf("method = %s returns %s", m, m.ReturnType)
	}
	if ret, ok := m.Body[0].(*ReturnStmt); !ok || ret.Value.(*Identifier).Name != "prefix" {
		t.Errorf("body = %v", m.Body)
	}

	ctor := dog.Constructor
	if ctor == nil || !ctor.IsConstructor || ctor.Name != "Dog" || !types.IsVoid(ctor.ReturnType) {
		t.Fatalf("constructor = %+v", ctor)
	}
	kinds := make([]string, 0, len(ctor.Body))
	for _, s := range ctor.Body {
		kinds = append(kinds, strings.SplitN(s.String(), " ", 2)[0])
	}
	want := "this.legs,for,foreach,this.describe(\"dog\"),print(xs[0]),print(new,print(i++),print(null)"
	if strings.Join(kinds, ",") != want {
		t.Errorf("statements = %s\nwant %s", strings.Join(kinds, ","), want)
	}

	loop := ctor.Body[1].(*ForStmt)
	if loop.Init == nil || loop.Update == nil || loop.Condition.(*BinaryExpr).Op != BinaryLt {
		t.Errorf("for = %+v", loop)
	}
	cond := loop.Body.(*BlockStmt).Statements[0].(*ConditionalStmt)
	if _, ok := cond.Then.(*BreakStmt); !ok {
		t.Errorf("then = %T", cond.Then)
	}
	if _, ok := cond.Else.(*ContinueStmt); !ok {
		t.Errorf("else = %T", cond.Else)
	}
	if fe := ctor.Body[2].(*ForeachStmt); fe.Var.Name != "i" {
		t.Errorf("foreach var = %s", fe.Var.Name)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"syntax", `{"classes": [`, "failed to parse program"},
		{"no name", `{"classes": [{}]}`, "class without name"},
		{"bad statement", `{"classes": [{"name": "A", "methods": [{"name": "m", "body": [{"kind": "goto"}]}]}]}`, "unknown statement kind"},
		{"bad operator", `{"classes": [{"name": "A", "methods": [{"name": "m", "body": [
			{"kind": "print", "value": {"kind": "binary", "op": "**", "left": {"kind": "int", "value": 1}, "right": {"kind": "int", "value": 2}}}]}]}]}`, "unknown binary operator"},
		{"bad type", `{"classes": [{"name": "A", "fields": [{"name": "f", "type": {}}]}]}`, "type object without kind"},
		{"missing operand", `{"classes": [{"name": "A", "methods": [{"name": "m", "body": [{"kind": "print"}]}]}]}`, "missing expression"},
		{"int overflow", `{"classes": [{"name": "A", "methods": [{"name": "m", "body": [{"kind": "print", "value": {"kind": "int", "value": 4294967296}}]}]}]}`, "invalid int literal"},
	}
	for _, tt := range tests {
		_, err := DecodeProgram([]byte(tt.src))
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: err = %v, want %q", tt.name, err, tt.want)
		}
	}
}

func TestOperators(t *testing.T) {
	for _, s := range []string{"+", "-", "*", "/", "%", ">", "<", "==", "!=", "and", "or", "="} {
		op, ok := ParseBinaryOperator(s)
		if !ok || op.String() != s {
			t.Errorf("ParseBinaryOperator(%q) = %s, %v", s, op, ok)
		}
	}
	if op, _ := ParseBinaryOperator("mult"); !op.IsArithmetic() {
		t.Error("mult is arithmetic")
	}
	if op, _ := ParseBinaryOperator("&&"); !op.IsLogical() {
		t.Error("&& is logical")
	}

	tests := []struct {
		name      string
		incDec    bool
		prefix    bool
		increment bool
	}{
		{"preinc", true, true, true},
		{"predec", true, true, false},
		{"postinc", true, false, true},
		{"postdec", true, false, false},
		{"neg", false, false, false},
		{"!", false, false, false},
	}
	for _, tt := range tests {
		op, ok := ParseUnaryOperator(tt.name)
		if !ok {
			t.Errorf("ParseUnaryOperator(%q) failed", tt.name)
			continue
		}
		if op.IsIncDec() != tt.incDec || op.IsPrefix() != tt.prefix || op.IsIncrement() != tt.increment {
			t.Errorf("%s: incdec=%v prefix=%v inc=%v", tt.name, op.IsIncDec(), op.IsPrefix(), op.IsIncrement())
		}
	}
}
