// Package pkg 实现 Sophia 项目配置 (sophia.toml)
package pkg

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// 常量定义
const (
	ConfigFileName = "sophia.toml" // 配置文件名

	DefaultOutput = "output"
	DefaultEntry  = "Main"
)

// Config 项目配置
type Config struct {
	Project ProjectInfo   `toml:"project"`
	Build   BuildConfig   `toml:"build"`
	Codegen CodegenConfig `toml:"codegen"`
}

// ProjectInfo 项目信息
type ProjectInfo struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// BuildConfig 构建选项
type BuildConfig struct {
	// Output 输出目录，存放 .j 文件和运行时辅助类
	Output string `toml:"output"`

	// Entry 程序入口类，会额外生成 static main
	Entry string `toml:"entry"`

	// Clean 构建前删除输出目录中旧的 .j 文件
	Clean bool `toml:"clean"`

	// Jobs 并发生成的类数量，0 表示 CPU 数
	Jobs int `toml:"jobs"`

	// Cache 启用增量输出，内容未变的文件不重写
	Cache bool `toml:"cache"`

	// Runtime 写出 List.j / Fptr.j
	Runtime bool `toml:"runtime"`

	// Requires 对编译器版本的约束，如 ">=0.1.0"
	Requires string `toml:"requires"`
}

// CodegenConfig 代码生成选项
type CodegenConfig struct {
	FieldsFirst bool   `toml:"fields_first"`
	LabelPrefix string `toml:"label_prefix"`
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Build: BuildConfig{
			Output:  DefaultOutput,
			Entry:   DefaultEntry,
			Clean:   true,
			Cache:   true,
			Runtime: true,
		},
	}
}

// LoadConfig 从文件加载配置
//
// 文件中没有出现的键保留默认值。
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig 解析配置内容
func ParseConfig(data []byte) (*Config, error) {
	config := Default()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate 检查配置的取值
func (c *Config) Validate() error {
	if c.Build.Jobs < 0 {
		return fmt.Errorf("build.jobs must not be negative, got %d", c.Build.Jobs)
	}
	if strings.TrimSpace(c.Build.Output) == "" {
		return fmt.Errorf("build.output must not be empty")
	}
	if c.Codegen.LabelPrefix != "" && !isIdentifier(c.Codegen.LabelPrefix) {
		return fmt.Errorf("codegen.label_prefix %q is not a valid label name", c.Codegen.LabelPrefix)
	}
	if c.Project.Version != "" && !IsValidVersion(c.Project.Version) {
		return fmt.Errorf("project.version %q is not a valid version", c.Project.Version)
	}
	if c.Build.Requires != "" {
		cs, err := ParseConstraint(c.Build.Requires)
		if err != nil {
			return fmt.Errorf("build.requires: %w", err)
		}
		if !cs.Check(MustParseVersion(CompilerVersion)) {
			return fmt.Errorf("project requires compiler %s, this is %s", cs, CompilerVersion)
		}
	}
	return nil
}

// EffectiveJobs 实际使用的并发数
func (c *Config) EffectiveJobs() int {
	if c.Build.Jobs > 0 {
		return c.Build.Jobs
	}
	return runtime.NumCPU()
}

// Save 保存配置到文件
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// FindConfigFile 从指定路径向上查找配置文件
// 返回配置文件的完整路径，如果找不到则返回空字符串
func FindConfigFile(startPath string) string {
	info, err := os.Stat(startPath)
	if err != nil {
		return ""
	}

	dir := startPath
	if !info.IsDir() {
		dir = filepath.Dir(startPath)
	}
	dir, err = filepath.Abs(dir)
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			// 已到达根目录
			return ""
		}
		dir = parent
	}
}

// isIdentifier 标签前缀只能由字母、数字和下划线组成，且不以数字开头
func isIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return s != ""
}
