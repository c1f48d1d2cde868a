package jvmgen

import (
	"strings"
	"testing"

	"github.com/tangzhangming/sophia/internal/ast"
	"github.com/tangzhangming/sophia/internal/semantic"
	"github.com/tangzhangming/sophia/internal/types"
)

// ============================================================================
// AST 构造
// ============================================================================

var (
	tInt    = types.IntType{}
	tBool   = types.BoolType{}
	tString = types.StringType{}
	tVoid   = types.VoidType{}
)

func tList(elems ...types.Type) types.ListType {
	lt := types.ListType{}
	for _, e := range elems {
		lt.Elements = append(lt.Elements, types.ListElement{Type: e})
	}
	return lt
}

func tRecord(names []string, elems ...types.Type) types.ListType {
	lt := types.ListType{}
	for i, e := range elems {
		lt.Elements = append(lt.Elements, types.ListElement{Name: names[i], Type: e})
	}
	return lt
}

func tClass(name string) types.ClassType { return types.ClassType{Name: name} }

func id(name string) *ast.Identifier { return &ast.Identifier{Name: name} }
func num(v int32) *ast.IntValue      { return &ast.IntValue{Value: v} }
func boolean(v bool) *ast.BoolValue  { return &ast.BoolValue{Value: v} }
func str(s string) *ast.StringValue  { return &ast.StringValue{Value: s} }
func null() *ast.NullValue           { return &ast.NullValue{} }
func this() *ast.This                { return &ast.This{} }

func list(e ...ast.Expression) *ast.ListValue { return &ast.ListValue{Elements: e} }

func bin(op ast.BinaryOperator, l, r ast.Expression) *ast.BinaryExpr {
	return &ast.BinaryExpr{Op: op, Left: l, Right: r}
}

func un(op ast.UnaryOperator, e ast.Expression) *ast.UnaryExpr {
	return &ast.UnaryExpr{Op: op, Operand: e}
}

func dot(inst ast.Expression, member string) *ast.MemberAccess {
	return &ast.MemberAccess{Instance: inst, Member: member}
}

func at(inst, index ast.Expression) *ast.ListIndex {
	return &ast.ListIndex{Instance: inst, Index: index}
}

func callOf(inst ast.Expression, args ...ast.Expression) *ast.MethodCall {
	return &ast.MethodCall{Instance: inst, Args: args}
}

func newObj(class string, args ...ast.Expression) *ast.NewInstance {
	return &ast.NewInstance{Class: class, Args: args}
}

func set(l, r ast.Expression) *ast.AssignmentStmt { return &ast.AssignmentStmt{LValue: l, RValue: r} }
func echo(e ast.Expression) *ast.PrintStmt        { return &ast.PrintStmt{Arg: e} }
func returns(e ast.Expression) *ast.ReturnStmt    { return &ast.ReturnStmt{Value: e} }
func block(s ...ast.Statement) *ast.BlockStmt     { return &ast.BlockStmt{Statements: s} }
func callStmt(c *ast.MethodCall) *ast.MethodCallStmt {
	return &ast.MethodCallStmt{Call: c}
}

func ifElse(cond ast.Expression, then, els ast.Statement) *ast.ConditionalStmt {
	return &ast.ConditionalStmt{Condition: cond, Then: then, Else: els}
}

func vars(pairs ...interface{}) []*ast.VarDecl {
	var out []*ast.VarDecl
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, &ast.VarDecl{Name: pairs[i].(string), Type: pairs[i+1].(types.Type)})
	}
	return out
}

func fields(pairs ...interface{}) []*ast.FieldDecl {
	var out []*ast.FieldDecl
	for _, v := range vars(pairs...) {
		out = append(out, &ast.FieldDecl{Var: v})
	}
	return out
}

func method(name string, ret types.Type, args, locals []*ast.VarDecl, body ...ast.Statement) *ast.MethodDecl {
	return &ast.MethodDecl{Name: name, ReturnType: ret, Args: args, Locals: locals, Body: body}
}

func ctor(args, locals []*ast.VarDecl, body ...ast.Statement) *ast.MethodDecl {
	return &ast.MethodDecl{
		Name:          "constructor",
		ReturnType:    tVoid,
		Args:          args,
		Locals:        locals,
		Body:          body,
		IsConstructor: true,
	}
}

// ============================================================================
// 编译与执行
// ============================================================================

func compile(t *testing.T, opts Options, classes ...*ast.ClassDecl) map[string]*Unit {
	t.Helper()
	prog := &ast.Program{Classes: classes}
	h, err := semantic.NewHierarchy(prog)
	if err != nil {
		t.Fatalf("NewHierarchy: %v", err)
	}
	units, err := NewFromHierarchy(h, opts).Generate(prog)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	out := make(map[string]*Unit, len(units))
	for _, u := range units {
		out[u.Name] = u
	}
	return out
}

func run(t *testing.T, units map[string]*Unit) *vm {
	t.Helper()
	list := make([]*Unit, 0, len(units))
	for _, u := range units {
		list = append(list, u)
	}
	return newVM(list)
}

// methodCode 取出某个方法的指令（不含伪指令）
func methodCode(t *testing.T, u *Unit, name string) []Instr {
	t.Helper()
	var code []Instr
	in := false
	for _, i := range u.Instrs {
		if i.Kind == KindDirective {
			switch {
			case strings.HasPrefix(i.Operand, ".method public "+name+"("):
				in = true
				continue
			case i.Operand == ".end method":
				if in {
					return code
				}
			}
			continue
		}
		if in {
			code = append(code, i)
		}
	}
	t.Fatalf("method %s not found in %s", name, u.Name)
	return nil
}

func texts(code []Instr) []string {
	out := make([]string, 0, len(code))
	for _, in := range code {
		if in.Kind == KindInstr {
			out = append(out, in.Text())
		}
	}
	return out
}

// containsSeq needle 是否作为连续子序列出现在 haystack 中
func containsSeq(haystack, needle []string) bool {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func countText(code []Instr, text string) int {
	n := 0
	for _, s := range texts(code) {
		if s == text {
			n++
		}
	}
	return n
}

func countPrefix(code []string, prefix string) int {
	n := 0
	for _, s := range code {
		if strings.HasPrefix(s, prefix) {
			n++
		}
	}
	return n
}

// lowerIn 在给定方法的上下文中翻译任意片段，返回生成的指令
func lowerIn(t *testing.T, classes []*ast.ClassDecl, cls *ast.ClassDecl, decl *ast.MethodDecl, fn func(m *methodGen) error) []Instr {
	t.Helper()
	h, err := semantic.NewHierarchy(&ast.Program{Classes: classes})
	if err != nil {
		t.Fatalf("NewHierarchy: %v", err)
	}
	g := NewFromHierarchy(h, Options{})
	m := newMethodGen(&classGen{g: g, cls: cls, unit: &Unit{Name: cls.Name}}, decl)
	if err := fn(m); err != nil {
		t.Fatalf("lower: %v", err)
	}
	return m.code
}
