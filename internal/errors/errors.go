package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/tangzhangming/sophia/internal/i18n"
	"github.com/tangzhangming/sophia/internal/token"
)

// ============================================================================
// 编译错误
// ============================================================================

// CompileError 代码生成或构建过程中的错误
type CompileError struct {
	Code    string         // 错误码 (G0002)
	Level   Level          // 错误级别
	Message string         // 主消息
	Class   string         // 所在类（可选）
	Method  string         // 所在方法（可选）
	Pos     token.Position // 源代码位置（可选）
	Hints   []string       // 修复建议
	Err     error          // 原始错误
}

// New 创建错误，消息通过 i18n 翻译
func New(code, msgID string, args ...interface{}) *CompileError {
	return &CompileError{
		Code:    code,
		Level:   LevelError,
		Message: i18n.T(msgID, args...),
		Hints:   GetHints(code),
	}
}

// Wrap 包装底层错误
func Wrap(err error, code, msgID string, args ...interface{}) *CompileError {
	e := New(code, msgID, args...)
	e.Err = err
	return e
}

// In 设置错误所在的类和方法
func (e *CompileError) In(class, method string) *CompileError {
	if e.Class == "" {
		e.Class = class
	}
	if e.Method == "" {
		e.Method = method
	}
	return e
}

// At 设置源代码位置
func (e *CompileError) At(pos token.Position) *CompileError {
	if !e.Pos.IsValid() {
		e.Pos = pos
	}
	return e
}

// Location 返回 "Class.method" 形式的位置描述
func (e *CompileError) Location() string {
	switch {
	case e.Class != "" && e.Method != "":
		return e.Class + "." + e.Method
	case e.Class != "":
		return e.Class
	}
	return ""
}

// Error 实现 error 接口
func (e *CompileError) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if loc := e.Location(); loc != "" {
		return fmt.Sprintf("%s: %s", loc, msg)
	}
	return msg
}

// Unwrap 支持 errors.Is / errors.As
func (e *CompileError) Unwrap() error {
	return e.Err
}

// As 从错误链中取出 CompileError
func As(err error) (*CompileError, bool) {
	var ce *CompileError
	if stderrors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
