// Package runtime 提供生成的代码在运行时依赖的辅助类
package runtime

import (
	"embed"
	"path"
	"sort"
	"strings"
)

// 两个辅助类以 Jasmin 源码形式随编译器分发，构建时写入输出目录
//
//	List  基于 ArrayList 的列表，赋值时按值复制
//	Fptr  方法指针，调用时按名称和参数个数反射查找

//go:embed jasmin/*.j
var sources embed.FS

// Helper 一个辅助类
type Helper struct {
	Name   string // 类名
	Source []byte // Jasmin 源码
}

// FileName 输出文件名
func (h Helper) FileName() string { return h.Name + ".j" }

// Helpers 返回全部辅助类，按名称排序
func Helpers() []Helper {
	entries, err := sources.ReadDir("jasmin")
	if err != nil {
		// 嵌入的目录在编译期就确定了
		panic(err)
	}
	out := make([]Helper, 0, len(entries))
	for _, e := range entries {
		src, err := sources.ReadFile(path.Join("jasmin", e.Name()))
		if err != nil {
			panic(err)
		}
		out = append(out, Helper{Name: strings.TrimSuffix(e.Name(), ".j"), Source: src})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup 按类名查找辅助类
func Lookup(name string) (Helper, bool) {
	for _, h := range Helpers() {
		if h.Name == name {
			return h, true
		}
	}
	return Helper{}, false
}

// IsHelper 类名是否被辅助类占用；用户类不能与之同名
func IsHelper(name string) bool {
	_, ok := Lookup(name)
	return ok
}
