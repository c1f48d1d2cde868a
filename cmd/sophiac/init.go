package main

import (
	"os"
	"path/filepath"

	"github.com/tangzhangming/sophia/internal/errors"
	"github.com/tangzhangming/sophia/internal/i18n"
	"github.com/tangzhangming/sophia/internal/pkg"
)

// initVersion 新项目的初始版本
const initVersion = "0.1.0"

// initProject 在 dir 中写入默认的 sophia.toml，返回文件路径
//
// 已有配置文件时不覆盖。项目名取目录名。
func initProject(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrap(err, errors.B0003, i18n.ErrSaveConfig, dir)
	}
	path := filepath.Join(abs, pkg.ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return "", errors.New(errors.B0003, i18n.ErrConfigExists, path)
	}

	config := pkg.Default()
	config.Project.Name = filepath.Base(abs)
	config.Project.Version = initVersion

	if err := os.MkdirAll(abs, 0755); err != nil {
		return "", errors.Wrap(err, errors.B0003, i18n.ErrSaveConfig, path)
	}
	if err := config.Save(path); err != nil {
		return "", errors.Wrap(err, errors.B0003, i18n.ErrSaveConfig, path)
	}
	return path, nil
}
