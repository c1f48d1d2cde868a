package ast

import (
	"fmt"

	"github.com/segmentio/encoding/json"

	"github.com/tangzhangming/sophia/internal/token"
	"github.com/tangzhangming/sophia/internal/types"
)

// ============================================================================
// JSON 输入格式
//
// 类型检查之后的 AST 以 JSON 形式交给代码生成器。每个语句/表达式节点是
// 一个带 "kind" 字段的对象，例如：
//
//	{"kind": "binary", "op": "+", "left": {...}, "right": {...}}
//	{"kind": "member", "instance": {"kind": "this"}, "member": "count"}
// ============================================================================

type programJSON struct {
	Classes []classJSON `json:"classes"`
}

type classJSON struct {
	Pos         token.Position `json:"pos"`
	Name        string         `json:"name"`
	Parent      string         `json:"parent,omitempty"`
	Fields      []varJSON      `json:"fields,omitempty"`
	Constructor *methodJSON    `json:"constructor,omitempty"`
	Methods     []methodJSON   `json:"methods,omitempty"`
}

type varJSON struct {
	Pos  token.Position  `json:"pos"`
	Name string          `json:"name"`
	Type json.RawMessage `json:"type"`
}

type methodJSON struct {
	Pos    token.Position    `json:"pos"`
	Name   string            `json:"name"`
	Args   []varJSON         `json:"args,omitempty"`
	Return json.RawMessage   `json:"return,omitempty"`
	Locals []varJSON         `json:"locals,omitempty"`
	Body   []json.RawMessage `json:"body,omitempty"`
}

// nodeJSON 语句和表达式共用的节点结构
type nodeJSON struct {
	Kind string         `json:"kind"`
	Pos  token.Position `json:"pos"`

	// 运算符
	Op string `json:"op,omitempty"`

	// 子节点
	Left      json.RawMessage   `json:"left,omitempty"`
	Right     json.RawMessage   `json:"right,omitempty"`
	Operand   json.RawMessage   `json:"operand,omitempty"`
	Instance  json.RawMessage   `json:"instance,omitempty"`
	Index     json.RawMessage   `json:"index,omitempty"`
	Args      []json.RawMessage `json:"args,omitempty"`
	Elements  []json.RawMessage `json:"elements,omitempty"`
	Condition json.RawMessage   `json:"condition,omitempty"`
	Then      json.RawMessage   `json:"then,omitempty"`
	Else      json.RawMessage   `json:"else,omitempty"`
	Body      json.RawMessage   `json:"body,omitempty"`
	Stmts     []json.RawMessage `json:"statements,omitempty"`
	Init      json.RawMessage   `json:"init,omitempty"`
	Update    json.RawMessage   `json:"update,omitempty"`
	List      json.RawMessage   `json:"list,omitempty"`
	LValue    json.RawMessage   `json:"lvalue,omitempty"`
	RValue    json.RawMessage   `json:"rvalue,omitempty"`
	Value     json.RawMessage   `json:"value,omitempty"`
	Call      json.RawMessage   `json:"call,omitempty"`

	// 名称
	Name   string `json:"name,omitempty"`
	Member string `json:"member,omitempty"`
	Class  string `json:"class,omitempty"`
	Var    string `json:"var,omitempty"`
}

// DecodeProgram 解码 JSON 形式的程序
func DecodeProgram(data []byte) (*Program, error) {
	var raw programJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse program: %w", err)
	}

	prog := &Program{Classes: make([]*ClassDecl, 0, len(raw.Classes))}
	for i := range raw.Classes {
		cls, err := decodeClass(&raw.Classes[i])
		if err != nil {
			return nil, err
		}
		prog.Classes = append(prog.Classes, cls)
	}
	return prog, nil
}

func decodeClass(raw *classJSON) (*ClassDecl, error) {
	if raw.Name == "" {
		return nil, fmt.Errorf("%s: class without name", raw.Pos)
	}
	cls := &ClassDecl{Position: raw.Pos, Name: raw.Name, Parent: raw.Parent}

	for i := range raw.Fields {
		v, err := decodeVar(&raw.Fields[i])
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", raw.Name, err)
		}
		cls.Fields = append(cls.Fields, &FieldDecl{Var: v})
	}

	if raw.Constructor != nil {
		ctor, err := decodeMethod(raw.Constructor)
		if err != nil {
			return nil, fmt.Errorf("class %s constructor: %w", raw.Name, err)
		}
		ctor.IsConstructor = true
		if ctor.Name == "" {
			ctor.Name = raw.Name
		}
		ctor.ReturnType = types.VoidType{}
		cls.Constructor = ctor
	}

	for i := range raw.Methods {
		m, err := decodeMethod(&raw.Methods[i])
		if err != nil {
			return nil, fmt.Errorf("class %s method %s: %w", raw.Name, raw.Methods[i].Name, err)
		}
		cls.Methods = append(cls.Methods, m)
	}
	return cls, nil
}

func decodeVar(raw *varJSON) (*VarDecl, error) {
	t, err := types.Decode(raw.Type)
	if err != nil {
		return nil, fmt.Errorf("%s: variable %s: %w", raw.Pos, raw.Name, err)
	}
	return &VarDecl{Position: raw.Pos, Name: raw.Name, Type: t}, nil
}

func decodeMethod(raw *methodJSON) (*MethodDecl, error) {
	ret, err := types.Decode(raw.Return)
	if err != nil {
		return nil, err
	}
	m := &MethodDecl{Position: raw.Pos, Name: raw.Name, ReturnType: ret}
	for i := range raw.Args {
		v, err := decodeVar(&raw.Args[i])
		if err != nil {
			return nil, err
		}
		m.Args = append(m.Args, v)
	}
	for i := range raw.Locals {
		v, err := decodeVar(&raw.Locals[i])
		if err != nil {
			return nil, err
		}
		m.Locals = append(m.Locals, v)
	}
	for _, s := range raw.Body {
		stmt, err := DecodeStatement(s)
		if err != nil {
			return nil, err
		}
		m.Body = append(m.Body, stmt)
	}
	return m, nil
}

// DecodeStatement 解码单个语句
func DecodeStatement(data []byte) (Statement, error) {
	var n nodeJSON
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("invalid statement: %w", err)
	}

	switch n.Kind {
	case "assign":
		return decodeAssign(&n)
	case "block":
		block := &BlockStmt{Position: n.Pos}
		for _, s := range n.Stmts {
			stmt, err := DecodeStatement(s)
			if err != nil {
				return nil, err
			}
			block.Statements = append(block.Statements, stmt)
		}
		return block, nil
	case "if":
		cond, err := DecodeExpression(n.Condition)
		if err != nil {
			return nil, err
		}
		then, err := DecodeStatement(n.Then)
		if err != nil {
			return nil, err
		}
		stmt := &ConditionalStmt{Position: n.Pos, Condition: cond, Then: then}
		if len(n.Else) > 0 {
			if stmt.Else, err = DecodeStatement(n.Else); err != nil {
				return nil, err
			}
		}
		return stmt, nil
	case "call":
		call, err := decodeCall(&n)
		if err != nil {
			return nil, err
		}
		return &MethodCallStmt{Call: call}, nil
	case "print":
		arg, err := DecodeExpression(n.Value)
		if err != nil {
			return nil, err
		}
		return &PrintStmt{Position: n.Pos, Arg: arg}, nil
	case "return":
		stmt := &ReturnStmt{Position: n.Pos}
		if len(n.Value) > 0 {
			v, err := DecodeExpression(n.Value)
			if err != nil {
				return nil, err
			}
			stmt.Value = v
		}
		return stmt, nil
	case "break":
		return &BreakStmt{Position: n.Pos}, nil
	case "continue":
		return &ContinueStmt{Position: n.Pos}, nil
	case "for":
		return decodeFor(&n)
	case "foreach":
		list, err := DecodeExpression(n.List)
		if err != nil {
			return nil, err
		}
		body, err := DecodeStatement(n.Body)
		if err != nil {
			return nil, err
		}
		return &ForeachStmt{
			Position: n.Pos,
			Var:      &Identifier{Position: n.Pos, Name: n.Var},
			List:     list,
			Body:     body,
		}, nil
	}
	return nil, fmt.Errorf("%s: unknown statement kind %q", n.Pos, n.Kind)
}

func decodeAssign(n *nodeJSON) (*AssignmentStmt, error) {
	lv, err := DecodeExpression(n.LValue)
	if err != nil {
		return nil, err
	}
	rv, err := DecodeExpression(n.RValue)
	if err != nil {
		return nil, err
	}
	return &AssignmentStmt{Position: n.Pos, LValue: lv, RValue: rv}, nil
}

func decodeOptionalAssign(data json.RawMessage) (*AssignmentStmt, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	var n nodeJSON
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("invalid assignment: %w", err)
	}
	return decodeAssign(&n)
}

func decodeFor(n *nodeJSON) (*ForStmt, error) {
	init, err := decodeOptionalAssign(n.Init)
	if err != nil {
		return nil, err
	}
	update, err := decodeOptionalAssign(n.Update)
	if err != nil {
		return nil, err
	}
	stmt := &ForStmt{Position: n.Pos, Init: init, Update: update}
	if len(n.Condition) > 0 {
		if stmt.Condition, err = DecodeExpression(n.Condition); err != nil {
			return nil, err
		}
	}
	if stmt.Body, err = DecodeStatement(n.Body); err != nil {
		return nil, err
	}
	return stmt, nil
}

func decodeCall(n *nodeJSON) (*MethodCall, error) {
	// 语句形式可以把调用包在 "call" 字段里
	if len(n.Call) > 0 {
		var inner nodeJSON
		if err := json.Unmarshal(n.Call, &inner); err != nil {
			return nil, fmt.Errorf("invalid call: %w", err)
		}
		return decodeCall(&inner)
	}
	inst, err := DecodeExpression(n.Instance)
	if err != nil {
		return nil, err
	}
	args, err := decodeExprs(n.Args)
	if err != nil {
		return nil, err
	}
	return &MethodCall{Position: n.Pos, Instance: inst, Args: args}, nil
}

func decodeExprs(raw []json.RawMessage) ([]Expression, error) {
	exprs := make([]Expression, 0, len(raw))
	for _, r := range raw {
		e, err := DecodeExpression(r)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	return exprs, nil
}

// DecodeExpression 解码单个表达式
func DecodeExpression(data []byte) (Expression, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("missing expression")
	}
	var n nodeJSON
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("invalid expression: %w", err)
	}

	switch n.Kind {
	case "binary":
		op, ok := ParseBinaryOperator(n.Op)
		if !ok {
			return nil, fmt.Errorf("%s: unknown binary operator %q", n.Pos, n.Op)
		}
		left, err := DecodeExpression(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := DecodeExpression(n.Right)
		if err != nil {
			return nil, err
		}
		return &BinaryExpr{Position: n.Pos, Op: op, Left: left, Right: right}, nil
	case "unary":
		op, ok := ParseUnaryOperator(n.Op)
		if !ok {
			return nil, fmt.Errorf("%s: unknown unary operator %q", n.Pos, n.Op)
		}
		operand, err := DecodeExpression(n.Operand)
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Position: n.Pos, Op: op, Operand: operand}, nil
	case "member":
		inst, err := DecodeExpression(n.Instance)
		if err != nil {
			return nil, err
		}
		return &MemberAccess{Position: n.Pos, Instance: inst, Member: n.Member}, nil
	case "ident":
		return &Identifier{Position: n.Pos, Name: n.Name}, nil
	case "index":
		inst, err := DecodeExpression(n.Instance)
		if err != nil {
			return nil, err
		}
		idx, err := DecodeExpression(n.Index)
		if err != nil {
			return nil, err
		}
		return &ListIndex{Position: n.Pos, Instance: inst, Index: idx}, nil
	case "call":
		return decodeCall(&n)
	case "new":
		args, err := decodeExprs(n.Args)
		if err != nil {
			return nil, err
		}
		return &NewInstance{Position: n.Pos, Class: n.Class, Args: args}, nil
	case "this":
		return &This{Position: n.Pos}, nil
	case "list":
		elems, err := decodeExprs(n.Elements)
		if err != nil {
			return nil, err
		}
		return &ListValue{Position: n.Pos, Elements: elems}, nil
	case "null":
		return &NullValue{Position: n.Pos}, nil
	case "int":
		var v int32
		if err := json.Unmarshal(n.Value, &v); err != nil {
			return nil, fmt.Errorf("%s: invalid int literal: %w", n.Pos, err)
		}
		return &IntValue{Position: n.Pos, Value: v}, nil
	case "bool":
		var v bool
		if err := json.Unmarshal(n.Value, &v); err != nil {
			return nil, fmt.Errorf("%s: invalid bool literal: %w", n.Pos, err)
		}
		return &BoolValue{Position: n.Pos, Value: v}, nil
	case "string":
		var v string
		if err := json.Unmarshal(n.Value, &v); err != nil {
			return nil, fmt.Errorf("%s: invalid string literal: %w", n.Pos, err)
		}
		return &StringValue{Position: n.Pos, Value: v}, nil
	}
	return nil, fmt.Errorf("%s: unknown expression kind %q", n.Pos, n.Kind)
}
