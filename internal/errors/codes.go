// Package errors 提供 Sophia 代码生成器的错误处理系统
package errors

import "github.com/tangzhangming/sophia/internal/i18n"

// ============================================================================
// 错误级别
// ============================================================================

// Level 错误级别
type Level int

const (
	LevelError   Level = iota // 错误
	LevelWarning              // 警告
	LevelNote                 // 提示
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelNote:
		return "note"
	default:
		return "unknown"
	}
}

// ============================================================================
// 代码生成错误码 (G 开头)
//
// 这些错误都表示上游阶段违反了约定：代码生成器只处理语义正确的程序，
// 出现时当前编译单元中止，已经生成的单元不受影响。
// ============================================================================

const (
	G0001 = "G0001" // 无法编码的类型
	G0002 = "G0002" // 未知的类
	G0003 = "G0003" // 未知的成员
	G0004 = "G0004" // 未知的变量
	G0005 = "G0005" // 操作数栈深度不一致
	G0006 = "G0006" // 不支持的节点
	G0007 = "G0007" // break/continue 没有目标
	G0008 = "G0008" // 无法确定表达式类型
)

// ============================================================================
// 构建错误码 (B 开头)
// ============================================================================

const (
	B0001 = "B0001" // 读取输入失败
	B0002 = "B0002" // 解码输入失败
	B0003 = "B0003" // 配置文件错误
	B0004 = "B0004" // 输出目录准备失败
	B0005 = "B0005" // 写入编译单元失败
	B0006 = "B0006" // 类代码生成失败
	B0007 = "B0007" // 构建被取消
	B0008 = "B0008" // 类名与运行时辅助类冲突
)

// hints 每个错误码对应的修复建议
var hints = map[string]string{
	G0001: i18n.HintUpstreamBug,
	G0002: i18n.HintUpstreamBug,
	G0003: i18n.HintUpstreamBug,
	G0004: i18n.HintUpstreamBug,
	G0007: i18n.HintUpstreamBug,
	G0008: i18n.HintUpstreamBug,
	B0002: i18n.HintCheckInput,
	B0003: i18n.HintCheckConfig,
	B0004: i18n.HintOutputAccess,
	B0005: i18n.HintOutputAccess,
	B0008: i18n.HintRenameClass,
}

// GetHints 返回错误码对应的修复建议
func GetHints(code string) []string {
	if id, ok := hints[code]; ok {
		return []string{i18n.T(id)}
	}
	return nil
}

// IsInternal 是否为代码生成内部错误
func IsInternal(code string) bool {
	return len(code) > 0 && code[0] == 'G'
}
