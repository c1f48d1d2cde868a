//go:build !windows

package main

// systemPrefersChinese 非 Windows 系统只看环境变量
func systemPrefersChinese() bool { return false }
