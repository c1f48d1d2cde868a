// Package ast 定义 Sophia 的抽象语法树
//
// AST 由上游阶段（解析、类型检查）产生，代码生成期间只读。
// 语句和表达式都是封闭的变体集合，通过未导出的标记方法限定实现者。
package ast

import (
	"strconv"
	"strings"

	"github.com/tangzhangming/sophia/internal/token"
	"github.com/tangzhangming/sophia/internal/types"
)

// Node 是所有 AST 节点的基接口
type Node interface {
	Pos() token.Position // 返回节点在源代码中的位置
	String() string      // 返回节点的字符串表示（用于调试）
}

// Expression 表示一个表达式节点
type Expression interface {
	Node
	exprNode()
}

// Statement 表示一个语句节点
type Statement interface {
	Node
	stmtNode()
}

// ============================================================================
// 声明
// ============================================================================

// Program 一个完整的程序
type Program struct {
	Classes []*ClassDecl
}

// ClassDecl 类声明
type ClassDecl struct {
	Position    token.Position
	Name        string
	Parent      string // 为空表示继承根对象类型
	Fields      []*FieldDecl
	Constructor *MethodDecl // 可为 nil
	Methods     []*MethodDecl
}

func (d *ClassDecl) Pos() token.Position { return d.Position }
func (d *ClassDecl) String() string {
	if d.Parent != "" {
		return "class " + d.Name + " extends " + d.Parent
	}
	return "class " + d.Name
}

// HasParent 是否显式声明了父类
func (d *ClassDecl) HasParent() bool { return d.Parent != "" }

// VarDecl 变量声明（参数、局部变量、字段）
type VarDecl struct {
	Position token.Position
	Name     string
	Type     types.Type
}

func (d *VarDecl) Pos() token.Position { return d.Position }
func (d *VarDecl) String() string      { return d.Name + ": " + d.Type.String() }

// FieldDecl 字段声明
type FieldDecl struct {
	Var *VarDecl
}

func (d *FieldDecl) Pos() token.Position { return d.Var.Position }
func (d *FieldDecl) String() string      { return "field " + d.Var.String() }

// MethodDecl 方法声明；IsConstructor 为 true 时表示构造函数
type MethodDecl struct {
	Position      token.Position
	Name          string
	Args          []*VarDecl
	ReturnType    types.Type
	Locals        []*VarDecl
	Body          []Statement
	IsConstructor bool
}

func (d *MethodDecl) Pos() token.Position { return d.Position }
func (d *MethodDecl) String() string {
	args := make([]string, 0, len(d.Args))
	for _, a := range d.Args {
		args = append(args, a.String())
	}
	return "def " + d.Name + "(" + strings.Join(args, ", ") + ")"
}

// ArgTypes 返回参数类型列表
func (d *MethodDecl) ArgTypes() []types.Type {
	ts := make([]types.Type, 0, len(d.Args))
	for _, a := range d.Args {
		ts = append(ts, a.Type)
	}
	return ts
}

// ============================================================================
// 语句
// ============================================================================

// AssignmentStmt 赋值语句 lvalue = rvalue
type AssignmentStmt struct {
	Position token.Position
	LValue   Expression
	RValue   Expression
}

// BlockStmt 代码块
type BlockStmt struct {
	Position   token.Position
	Statements []Statement
}

// ConditionalStmt if/else
type ConditionalStmt struct {
	Position  token.Position
	Condition Expression
	Then      Statement
	Else      Statement // 可为 nil
}

// MethodCallStmt 作为语句的方法调用
type MethodCallStmt struct {
	Call *MethodCall
}

// PrintStmt print(arg)
type PrintStmt struct {
	Position token.Position
	Arg      Expression
}

// ReturnStmt return [expr]
type ReturnStmt struct {
	Position token.Position
	Value    Expression // 可为 nil
}

// BreakStmt break
type BreakStmt struct {
	Position token.Position
}

// ContinueStmt continue
type ContinueStmt struct {
	Position token.Position
}

// ForStmt for (init; cond; update) body
type ForStmt struct {
	Position  token.Position
	Init      *AssignmentStmt // 可为 nil
	Condition Expression      // 可为 nil
	Update    *AssignmentStmt // 可为 nil
	Body      Statement
}

// ForeachStmt foreach (var in list) body
type ForeachStmt struct {
	Position token.Position
	Var      *Identifier
	List     Expression
	Body     Statement
}

func (s *AssignmentStmt) Pos() token.Position  { return s.Position }
func (s *BlockStmt) Pos() token.Position       { return s.Position }
func (s *ConditionalStmt) Pos() token.Position { return s.Position }
func (s *MethodCallStmt) Pos() token.Position  { return s.Call.Position }
func (s *PrintStmt) Pos() token.Position       { return s.Position }
func (s *ReturnStmt) Pos() token.Position      { return s.Position }
func (s *BreakStmt) Pos() token.Position       { return s.Position }
func (s *ContinueStmt) Pos() token.Position    { return s.Position }
func (s *ForStmt) Pos() token.Position         { return s.Position }
func (s *ForeachStmt) Pos() token.Position     { return s.Position }

func (s *AssignmentStmt) String() string { return s.LValue.String() + " = " + s.RValue.String() }
func (s *BlockStmt) String() string      { return "{...}" }
func (s *ConditionalStmt) String() string {
	return "if (" + s.Condition.String() + ")"
}
func (s *MethodCallStmt) String() string { return s.Call.String() }
func (s *PrintStmt) String() string      { return "print(" + s.Arg.String() + ")" }
func (s *ReturnStmt) String() string {
	if s.Value == nil {
		return "return"
	}
	return "return " + s.Value.String()
}
func (s *BreakStmt) String() string    { return "break" }
func (s *ContinueStmt) String() string { return "continue" }
func (s *ForStmt) String() string      { return "for (...)" }
func (s *ForeachStmt) String() string {
	return "foreach (" + s.Var.Name + " in " + s.List.String() + ")"
}

func (*AssignmentStmt) stmtNode()  {}
func (*BlockStmt) stmtNode()       {}
func (*ConditionalStmt) stmtNode() {}
func (*MethodCallStmt) stmtNode()  {}
func (*PrintStmt) stmtNode()       {}
func (*ReturnStmt) stmtNode()      {}
func (*BreakStmt) stmtNode()       {}
func (*ContinueStmt) stmtNode()    {}
func (*ForStmt) stmtNode()         {}
func (*ForeachStmt) stmtNode()     {}

// ============================================================================
// 表达式
// ============================================================================

// BinaryExpr 二元表达式（包括赋值）
type BinaryExpr struct {
	Position token.Position
	Op       BinaryOperator
	Left     Expression
	Right    Expression
}

// UnaryExpr 一元表达式
type UnaryExpr struct {
	Position token.Position
	Op       UnaryOperator
	Operand  Expression
}

// MemberAccess 对象或列表成员访问 instance.member
type MemberAccess struct {
	Position token.Position
	Instance Expression
	Member   string
}

// Identifier 标识符
type Identifier struct {
	Position token.Position
	Name     string
}

// ListIndex 列表下标访问 instance[index]
type ListIndex struct {
	Position token.Position
	Instance Expression
	Index    Expression
}

// MethodCall 方法调用 instance(args...)
type MethodCall struct {
	Position token.Position
	Instance Expression
	Args     []Expression
}

// NewInstance new C(args...)
type NewInstance struct {
	Position token.Position
	Class    string
	Args     []Expression
}

// This this
type This struct {
	Position token.Position
}

// ListValue 列表字面量
type ListValue struct {
	Position token.Position
	Elements []Expression
}

// NullValue null
type NullValue struct {
	Position token.Position
}

// IntValue 整数字面量
type IntValue struct {
	Position token.Position
	Value    int32
}

// BoolValue 布尔字面量
type BoolValue struct {
	Position token.Position
	Value    bool
}

// StringValue 字符串字面量
type StringValue struct {
	Position token.Position
	Value    string
}

func (e *BinaryExpr) Pos() token.Position   { return e.Position }
func (e *UnaryExpr) Pos() token.Position    { return e.Position }
func (e *MemberAccess) Pos() token.Position { return e.Position }
func (e *Identifier) Pos() token.Position   { return e.Position }
func (e *ListIndex) Pos() token.Position    { return e.Position }
func (e *MethodCall) Pos() token.Position   { return e.Position }
func (e *NewInstance) Pos() token.Position  { return e.Position }
func (e *This) Pos() token.Position         { return e.Position }
func (e *ListValue) Pos() token.Position    { return e.Position }
func (e *NullValue) Pos() token.Position    { return e.Position }
func (e *IntValue) Pos() token.Position     { return e.Position }
func (e *BoolValue) Pos() token.Position    { return e.Position }
func (e *StringValue) Pos() token.Position  { return e.Position }

func (e *BinaryExpr) String() string {
	return "(" + e.Left.String() + " " + e.Op.String() + " " + e.Right.String() + ")"
}
func (e *UnaryExpr) String() string {
	switch e.Op {
	case UnaryPostInc, UnaryPostDec:
		return e.Operand.String() + e.Op.String()
	case UnaryNot:
		return "not " + e.Operand.String()
	}
	return e.Op.String() + e.Operand.String()
}
func (e *MemberAccess) String() string { return e.Instance.String() + "." + e.Member }
func (e *Identifier) String() string   { return e.Name }
func (e *ListIndex) String() string {
	return e.Instance.String() + "[" + e.Index.String() + "]"
}
func (e *MethodCall) String() string {
	return e.Instance.String() + "(" + joinExprs(e.Args) + ")"
}
func (e *NewInstance) String() string { return "new " + e.Class + "(" + joinExprs(e.Args) + ")" }
func (e *This) String() string        { return "this" }
func (e *ListValue) String() string   { return "[" + joinExprs(e.Elements) + "]" }
func (e *NullValue) String() string   { return "null" }
func (e *IntValue) String() string    { return strconv.Itoa(int(e.Value)) }
func (e *BoolValue) String() string   { return strconv.FormatBool(e.Value) }
func (e *StringValue) String() string { return strconv.Quote(e.Value) }

func (*BinaryExpr) exprNode()   {}
func (*UnaryExpr) exprNode()    {}
func (*MemberAccess) exprNode() {}
func (*Identifier) exprNode()   {}
func (*ListIndex) exprNode()    {}
func (*MethodCall) exprNode()   {}
func (*NewInstance) exprNode()  {}
func (*This) exprNode()         {}
func (*ListValue) exprNode()    {}
func (*NullValue) exprNode()    {}
func (*IntValue) exprNode()     {}
func (*BoolValue) exprNode()    {}
func (*StringValue) exprNode()  {}

func joinExprs(exprs []Expression) string {
	parts := make([]string, 0, len(exprs))
	for _, e := range exprs {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, ", ")
}
