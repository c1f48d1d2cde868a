// Package jvmgen 把类型检查后的 Sophia 程序翻译成 Jasmin 汇编
//
// 每个类生成一个编译单元。所有跨越方法边界、列表元素和字段的值都是
// 装箱后的对象引用，int/bool 只在运算的瞬间拆箱。
package jvmgen

import (
	"strconv"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tangzhangming/sophia/internal/ast"
	"github.com/tangzhangming/sophia/internal/errors"
	"github.com/tangzhangming/sophia/internal/i18n"
	"github.com/tangzhangming/sophia/internal/semantic"
	"github.com/tangzhangming/sophia/internal/token"
	"github.com/tangzhangming/sophia/internal/types"
)

// TypeOracle 提供类声明和表达式的静态类型
type TypeOracle interface {
	Class(name string) (*ast.ClassDecl, error)
	TypeOf(scope semantic.Scope, expr ast.Expression) (types.Type, error)
}

// SymbolResolver 判断 class.member 是字段还是方法
type SymbolResolver interface {
	ResolveMember(class, member string) (semantic.Member, error)
}

// Options 代码生成选项
type Options struct {
	EntryClass  string // 额外生成 static main 的类，为空则不生成
	FieldsFirst bool   // 字段段放在构造函数之前
	LabelPrefix string // 标签名前缀，默认 Label_
	Logger      *zap.Logger
}

// Generator Jasmin 代码生成器
//
// Generator 本身不保存翻译过程中的可变状态，每个类和方法的状态都在
// 各自的 classGen/methodGen 中，可以并发地为不同的类调用 GenerateClass。
type Generator struct {
	oracle   TypeOracle
	resolver SymbolResolver
	opts     Options
	log      *zap.Logger
}

// New 创建代码生成器
func New(oracle TypeOracle, resolver SymbolResolver, opts Options) *Generator {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.LabelPrefix == "" {
		opts.LabelPrefix = DefaultLabelPrefix
	}
	return &Generator{oracle: oracle, resolver: resolver, opts: opts, log: log}
}

// NewFromHierarchy 使用 semantic.Hierarchy 同时作为类型查询和符号解析
func NewFromHierarchy(h *semantic.Hierarchy, opts Options) *Generator {
	return New(h, h, opts)
}

// Generate 为程序中的每个类生成编译单元
//
// 单个类失败不影响其它类：返回所有成功的单元以及合并后的错误。
func (g *Generator) Generate(prog *ast.Program) ([]*Unit, error) {
	units := make([]*Unit, 0, len(prog.Classes))
	var errs error
	for _, cls := range prog.Classes {
		u, err := g.GenerateClass(cls)
		if err != nil {
			g.log.Warn("class generation failed", zap.String("class", cls.Name), zap.Error(err))
			errs = multierr.Append(errs, err)
			continue
		}
		units = append(units, u)
	}
	return units, errs
}

// GenerateClass 为单个类生成编译单元
func (g *Generator) GenerateClass(cls *ast.ClassDecl) (*Unit, error) {
	c := &classGen{g: g, cls: cls, unit: &Unit{Name: cls.Name}}
	if err := c.generate(); err != nil {
		return nil, err
	}
	g.log.Debug("generated class",
		zap.String("class", cls.Name),
		zap.Int("methods", len(cls.Methods)),
		zap.Int("lines", len(c.unit.Instrs)))
	return c.unit, nil
}

// ============================================================================
// 类
// ============================================================================

type classGen struct {
	g    *Generator
	cls  *ast.ClassDecl
	unit *Unit
}

func (c *classGen) super() string {
	if c.cls.HasParent() {
		return c.cls.Parent
	}
	return ObjectClass
}

func (c *classGen) generate() error {
	c.unit.append(
		directive(".class public "+c.cls.Name),
		directive(".super "+c.super()),
		blank(),
	)

	if c.g.opts.FieldsFirst {
		if err := c.fields(); err != nil {
			return err
		}
		if err := c.constructors(); err != nil {
			return err
		}
	} else {
		if err := c.constructors(); err != nil {
			return err
		}
		if err := c.fields(); err != nil {
			return err
		}
	}

	for _, m := range c.cls.Methods {
		if err := c.method(m); err != nil {
			return err
		}
	}

	if c.cls.Name == c.g.opts.EntryClass {
		c.entryPoint()
	}
	return nil
}

func (c *classGen) fields() error {
	for _, f := range c.cls.Fields {
		desc, err := Descriptor(f.Var.Type)
		if err != nil {
			return locate(err, c.cls.Name, "", f.Pos())
		}
		c.unit.append(directive(".field public " + f.Var.Name + " " + desc))
	}
	if len(c.cls.Fields) > 0 {
		c.unit.append(blank())
	}
	return nil
}

// constructors 生成构造函数段
//
// 显式构造函数取代隐式的无参构造函数；显式构造函数带参数时仍然保留
// 无参版本，子类的构造函数总是链接到父类的 <init>()V。
func (c *classGen) constructors() error {
	ctor := c.cls.Constructor
	if ctor == nil || len(ctor.Args) > 0 {
		if err := c.emitMethod(&ast.MethodDecl{
			Position:      c.cls.Position,
			Name:          "<init>",
			ReturnType:    types.VoidType{},
			IsConstructor: true,
		}); err != nil {
			return err
		}
	}
	if ctor != nil {
		return c.emitMethod(ctor)
	}
	return nil
}

func (c *classGen) method(m *ast.MethodDecl) error {
	return c.emitMethod(m)
}

// emitMethod 生成方法头、方法体和方法尾
func (c *classGen) emitMethod(decl *ast.MethodDecl) error {
	name := decl.Name
	ret := decl.ReturnType
	if decl.IsConstructor {
		name = "<init>"
		ret = types.VoidType{}
	}
	desc, err := MethodDescriptor(decl.ArgTypes(), ret)
	if err != nil {
		return locate(err, c.cls.Name, name, decl.Pos())
	}

	m := newMethodGen(c, decl)
	if err := m.lower(); err != nil {
		return err
	}
	code := pruneLabels(m.code)
	info, err := simulate(code)
	if err != nil {
		return locate(err, c.cls.Name, name, decl.Pos())
	}

	c.unit.append(
		directive(".method public "+name+desc),
		directive(".limit stack "+strconv.Itoa(info.Max)),
		directive(".limit locals "+strconv.Itoa(m.f.maxLocals())),
	)
	c.unit.append(code...)
	c.unit.append(directive(".end method"), blank())
	return nil
}

// entryPoint 生成 public static main，构造入口类的实例
func (c *classGen) entryPoint() {
	init := MethodRef{Class: c.cls.Name, Name: "<init>", Descriptor: "()V"}
	c.unit.append(
		directive(".method public static main([Ljava/lang/String;)V"),
		directive(".limit stack 2"),
		directive(".limit locals 1"),
		opWith(OpNew, c.cls.Name),
		op(OpDup),
		invoke(OpInvokespecial, init),
		op(OpPop),
		op(OpReturn),
		directive(".end method"),
		blank(),
	)
}

// pruneLabels 删除没有被任何跳转引用的标签行
func pruneLabels(code []Instr) []Instr {
	used := make(map[string]bool)
	for _, in := range code {
		if in.Kind == KindInstr && in.Op.IsJump() {
			used[in.Target] = true
		}
	}
	out := code[:0:0]
	for _, in := range code {
		if in.Kind == KindLabel && !used[in.Target] {
			continue
		}
		out = append(out, in)
	}
	return out
}

// ============================================================================
// 方法
// ============================================================================

// methodGen 单个方法的翻译状态
type methodGen struct {
	g     *Generator
	cls   *ast.ClassDecl
	decl  *ast.MethodDecl
	name  string
	scope semantic.Scope
	f     *frame
	code  []Instr
}

func newMethodGen(c *classGen, decl *ast.MethodDecl) *methodGen {
	name := decl.Name
	if decl.IsConstructor {
		name = "<init>"
	}
	m := &methodGen{
		g:     c.g,
		cls:   c.cls,
		decl:  decl,
		name:  name,
		scope: semantic.Scope{Class: c.cls, Method: decl},
		f:     newFrame(c.g.opts.LabelPrefix),
	}
	for _, a := range decl.Args {
		m.f.declareLocal(a.Name)
	}
	for _, l := range decl.Locals {
		m.f.declareLocal(l.Name)
	}
	return m
}

func (m *methodGen) emit(in ...Instr) { m.code = append(m.code, in...) }

// lower 翻译整个方法体，包括构造函数的前导代码和方法尾
func (m *methodGen) lower() error {
	if m.decl.IsConstructor {
		if err := m.chainAndInitFields(); err != nil {
			return err
		}
	}
	for _, l := range m.decl.Locals {
		slot, _ := m.f.slotOf(l.Name)
		if err := m.defaultValue(l.Type); err != nil {
			return m.wrap(err, l.Pos())
		}
		m.emit(store(slot))
	}
	for _, s := range m.decl.Body {
		if err := m.stmt(s); err != nil {
			return err
		}
	}
	return m.epilogue()
}

// chainAndInitFields 调用父类无参构造函数并给每个字段赋默认值
func (m *methodGen) chainAndInitFields() error {
	parentInit := refObjectInit
	if m.cls.HasParent() {
		parentInit = MethodRef{Class: m.cls.Parent, Name: "<init>", Descriptor: "()V"}
	}
	m.emit(load(0), invoke(OpInvokespecial, parentInit))
	for _, fd := range m.cls.Fields {
		desc, err := Descriptor(fd.Var.Type)
		if err != nil {
			return m.wrap(err, fd.Pos())
		}
		m.emit(load(0))
		if err := m.defaultValue(fd.Var.Type); err != nil {
			return m.wrap(err, fd.Pos())
		}
		m.emit(opWith(OpPutfield, FieldRef{Class: m.cls.Name, Name: fd.Var.Name, Descriptor: desc}.String()))
	}
	return nil
}

// epilogue 保证没有路径从代码末尾落出
func (m *methodGen) epilogue() error {
	if m.isVoid() {
		m.emit(op(OpReturn))
		return nil
	}
	if err := m.defaultValue(m.decl.ReturnType); err != nil {
		return m.wrap(err, m.decl.Pos())
	}
	m.emit(op(OpAreturn))
	return nil
}

func (m *methodGen) isVoid() bool {
	return m.decl.IsConstructor || m.decl.ReturnType == nil || types.IsVoid(m.decl.ReturnType)
}

// defaultValue 压入类型的默认值：int 0，bool false，string ""，其它 null
func (m *methodGen) defaultValue(t types.Type) error {
	switch t.(type) {
	case types.IntType:
		m.emit(op(OpIconst0), invoke(OpInvokestatic, intBox.ValueOf()))
	case types.BoolType:
		m.emit(op(OpIconst0), invoke(OpInvokestatic, boolBox.ValueOf()))
	case types.StringType:
		m.emit(ldcString(""))
	case types.ListType, types.ClassType, types.FptrType, types.NullType:
		m.emit(op(OpAconstNull))
	default:
		return unknownType(t)
	}
	return nil
}

// typeOf 查询表达式静态类型
func (m *methodGen) typeOf(e ast.Expression) (types.Type, error) {
	t, err := m.g.oracle.TypeOf(m.scope, e)
	if err != nil {
		return nil, errors.Wrap(err, errors.G0008, i18n.ErrUntypedExpression, e.String()).
			In(m.cls.Name, m.name).At(e.Pos())
	}
	return t, nil
}

// fail 构造带位置的内部错误
func (m *methodGen) fail(n ast.Node, code, msgID string, args ...interface{}) error {
	return errors.New(code, msgID, args...).In(m.cls.Name, m.name).At(n.Pos())
}

// wrap 给来自编码器等的错误补上类、方法和位置
func (m *methodGen) wrap(err error, pos token.Position) error {
	return locate(err, m.cls.Name, m.name, pos)
}

func locate(err error, class, method string, pos token.Position) error {
	ce, ok := errors.As(err)
	if !ok {
		return err
	}
	return ce.In(class, method).At(pos)
}

// castTo 把 Object 类型的栈顶转换为静态类型
func (m *methodGen) castTo(t types.Type) error {
	switch t.(type) {
	case types.VoidType, types.NullType:
		return nil
	}
	name, err := InternalName(t)
	if err != nil {
		return err
	}
	m.emit(opWith(OpCheckcast, name))
	return nil
}
