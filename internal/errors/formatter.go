package errors

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/tangzhangming/sophia/internal/i18n"
)

// ============================================================================
// 格式化器
// ============================================================================

// Formatter 错误格式化器
type Formatter struct {
	Colors    bool // 是否使用颜色
	ShowHints bool // 是否显示修复建议
}

// NewFormatter 创建默认格式化器
func NewFormatter() *Formatter {
	return &Formatter{
		Colors:    false,
		ShowHints: true,
	}
}

// Format 格式化任意错误；multierr 聚合的错误逐个展开
func (f *Formatter) Format(err error) string {
	if err == nil {
		return ""
	}
	var sb strings.Builder
	for _, e := range multierr.Errors(err) {
		if ce, ok := As(e); ok {
			sb.WriteString(f.FormatCompileError(ce))
			continue
		}
		sb.WriteString(fmt.Sprintf("%s: %s\n", f.colorize("error", ColorBoldRed), e.Error()))
	}
	return sb.String()
}

// FormatCompileError 格式化编译错误
func (f *Formatter) FormatCompileError(err *CompileError) string {
	var sb strings.Builder

	// 错误头: error[G0002]: 未知的类 'Foo'
	levelStr := f.colorize(err.Level.String(), f.levelColor(err.Level))
	codeStr := f.colorize(fmt.Sprintf("[%s]", err.Code), f.levelColor(err.Level))
	sb.WriteString(fmt.Sprintf("%s%s: %s\n", levelStr, codeStr, err.Message))

	// 位置: --> Animal.speak (zoo.sophia:5:12)
	if loc := f.location(err); loc != "" {
		sb.WriteString(fmt.Sprintf(" %s %s\n", f.colorize("-->", ColorCyan), f.colorize(loc, ColorCyan)))
	}

	// 底层原因
	if err.Err != nil {
		sb.WriteString(fmt.Sprintf("%s %s\n", f.colorize(" = cause:", ColorCyan), err.Err.Error()))
	}

	// 代码生成错误只影响出错的类
	if IsInternal(err.Code) && err.Class != "" {
		sb.WriteString(fmt.Sprintf("%s %s\n", f.colorize(" = note:", ColorCyan), i18n.T(i18n.NoteUnitSkipped, err.Class)))
	}

	// 修复建议
	if f.ShowHints {
		for _, hint := range err.Hints {
			sb.WriteString(fmt.Sprintf("%s %s\n", f.colorize(" = help:", ColorCyan), hint))
		}
	}
	return sb.String()
}

func (f *Formatter) location(err *CompileError) string {
	loc := err.Location()
	if err.Pos.IsValid() {
		if loc != "" {
			return fmt.Sprintf("%s (%s)", loc, err.Pos)
		}
		return err.Pos.String()
	}
	return loc
}

func (f *Formatter) levelColor(level Level) Color {
	switch level {
	case LevelError:
		return ColorBoldRed
	case LevelWarning:
		return ColorBoldYellow
	default:
		return ColorBoldCyan
	}
}

func (f *Formatter) colorize(s string, color Color) string {
	return Colorize(s, color, f.Colors)
}
