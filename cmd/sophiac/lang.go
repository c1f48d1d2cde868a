package main

import (
	"os"

	"github.com/tangzhangming/sophia/internal/i18n"
)

// initLanguage 初始化消息语言
// 优先级: 命令行参数 > 环境变量 SOPHIA_LANG > 操作系统语言 > 默认英文
func initLanguage(override string) {
	switch {
	case override != "":
		i18n.SetLanguageFromString(override)
	case os.Getenv("SOPHIA_LANG") != "":
		i18n.SetLanguageFromString(os.Getenv("SOPHIA_LANG"))
	case detectChineseOS():
		i18n.SetLanguage(i18n.LangChinese)
	default:
		i18n.SetLanguage(i18n.LangEnglish)
	}
}

// detectChineseOS 检测操作系统是否为中文环境
//
// 按 POSIX 的优先级只看第一个非空的 locale 变量。
func detectChineseOS() bool {
	if systemPrefersChinese() {
		return true
	}
	for _, v := range []string{"LC_ALL", "LC_MESSAGES", "LANGUAGE", "LANG"} {
		if val := os.Getenv(v); val != "" {
			return i18n.Parse(val) == i18n.LangChinese
		}
	}
	return false
}
