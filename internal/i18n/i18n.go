// Package i18n 提供命令行和诊断信息的多语言文本
//
// 消息按 ID 查找。当前语言缺少的条目回退到英文，两者都没有时返回 ID 本身。
package i18n

import (
	"fmt"
	"strings"

	"go.uber.org/atomic"
)

// Language 语言代码
type Language string

const (
	LangEnglish Language = "en"
	LangChinese Language = "zh"
)

// catalogs 各语言的消息表
var catalogs = map[Language]map[string]string{
	LangEnglish: messagesEN,
	LangChinese: messagesZH,
}

var current = atomic.NewString(string(LangEnglish))

// Parse 把语言标签或 locale 名规范化为支持的语言
//
// 大小写不敏感，接受 "zh"、"zh-CN"、"zh_TW.UTF-8"、"zh-Hans" 和
// Windows 风格的 "Chinese (Simplified)_China.936"，其余都按英文处理。
func Parse(s string) Language {
	tag := strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(tag, "chinese") {
		return LangChinese
	}
	if i := strings.IndexAny(tag, ".@"); i >= 0 {
		tag = tag[:i]
	}
	if i := strings.IndexAny(tag, "-_"); i >= 0 {
		tag = tag[:i]
	}
	if tag == "zh" {
		return LangChinese
	}
	return LangEnglish
}

// SetLanguage 设置当前语言，没有消息表的语言按英文处理
func SetLanguage(lang Language) {
	if _, ok := catalogs[lang]; !ok {
		lang = LangEnglish
	}
	current.Store(string(lang))
}

// SetLanguageFromString 按 Parse 的规则设置当前语言
func SetLanguageFromString(s string) {
	SetLanguage(Parse(s))
}

// GetLanguage 当前语言
func GetLanguage() Language {
	return Language(current.Load())
}

// T 查找消息，有参数时按 fmt 动词格式化
func T(msgID string, args ...interface{}) string {
	msg, ok := catalogs[GetLanguage()][msgID]
	if !ok {
		if msg, ok = messagesEN[msgID]; !ok {
			return msgID
		}
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}
