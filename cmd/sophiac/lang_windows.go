//go:build windows

package main

import (
	"golang.org/x/sys/windows"

	"github.com/tangzhangming/sophia/internal/i18n"
)

// systemPrefersChinese 查询用户界面语言列表的首选项
func systemPrefersChinese() bool {
	langs, err := windows.GetUserPreferredUILanguages(windows.MUI_LANGUAGE_NAME)
	if err != nil || len(langs) == 0 {
		return false
	}
	return i18n.Parse(langs[0]) == i18n.LangChinese
}
