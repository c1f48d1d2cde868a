// Package compiler 驱动一次完整的构建
//
// 构建过程：
//  1. 检查类名是否与运行时辅助类冲突
//  2. 准备输出目录并写出 List.j / Fptr.j
//  3. 按类并发生成编译单元，单个类失败不影响其它类
//  4. 清理输出目录中不再属于本程序的 .j 文件
//  5. 保存增量缓存索引
package compiler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tangzhangming/sophia/internal/ast"
	"github.com/tangzhangming/sophia/internal/errors"
	"github.com/tangzhangming/sophia/internal/i18n"
	"github.com/tangzhangming/sophia/internal/jvmgen"
	"github.com/tangzhangming/sophia/internal/pkg"
	sophiart "github.com/tangzhangming/sophia/internal/runtime"
	"github.com/tangzhangming/sophia/internal/semantic"
)

// Options 构建选项
type Options struct {
	Output  string // 输出目录
	Jobs    int    // 并发数，<= 0 表示 CPU 核心数
	Clean   bool   // 删除过时的 .j 文件
	Cache   bool   // 内容未变的文件不重写
	Runtime bool   // 写出运行时辅助类
	Codegen jvmgen.Options
	Logger  *zap.Logger
}

// OptionsFromConfig 从项目配置构造构建选项
func OptionsFromConfig(c *pkg.Config, log *zap.Logger) Options {
	return Options{
		Output:  c.Build.Output,
		Jobs:    c.EffectiveJobs(),
		Clean:   c.Build.Clean,
		Cache:   c.Build.Cache,
		Runtime: c.Build.Runtime,
		Codegen: jvmgen.Options{
			EntryClass:  c.Build.Entry,
			FieldsFirst: c.Codegen.FieldsFirst,
			LabelPrefix: c.Codegen.LabelPrefix,
			Logger:      log,
		},
		Logger: log,
	}
}

// Result 构建结果
type Result struct {
	Output    string   // 输出目录
	Units     []string // 输出目录中属于本次构建的文件名，按字典序
	Written   int      // 实际写入的文件数
	Unchanged int      // 内容未变而跳过的文件数
	Failed    int      // 生成失败的类数
	Removed   int      // 清理掉的过时文件数
}

// builder 单次构建的状态
type builder struct {
	opts  Options
	log   *zap.Logger
	gen   *jvmgen.Generator
	cache *OutputCache

	written   atomic.Int64
	unchanged atomic.Int64
	failed    atomic.Int64

	mu    sync.Mutex
	units []string
}

// job 一个待生成的类，index 用于按声明顺序汇总错误
type job struct {
	index int
	cls   *ast.ClassDecl
}

// Build 为程序生成全部编译单元并写入输出目录
//
// 即使返回错误，Result 也总是非 nil，记录已经完成的部分。
func Build(ctx context.Context, prog *ast.Program, h *semantic.Hierarchy, opts Options) (*Result, error) {
	b := newBuilder(h, opts)
	res := &Result{Output: b.opts.Output}

	if err := ctx.Err(); err != nil {
		return res, errors.Wrap(err, errors.B0007, i18n.ErrBuildAborted)
	}

	classes, errs := b.checkNames(prog.Classes)

	if err := os.MkdirAll(b.opts.Output, 0755); err != nil {
		return res, multierr.Append(errs, errors.Wrap(err, errors.B0004, i18n.ErrPrepareOut, b.opts.Output))
	}
	if b.opts.Cache {
		b.cache = OpenCache(b.opts.Output)
	}

	if b.opts.Runtime {
		for _, helper := range sophiart.Helpers() {
			errs = multierr.Append(errs, b.write(helper.FileName(), helper.Source))
		}
	}

	errs = multierr.Append(errs, b.generateAll(ctx, classes))

	aborted := ctx.Err() != nil
	if aborted {
		errs = multierr.Append(errs, errors.Wrap(ctx.Err(), errors.B0007, i18n.ErrBuildAborted))
	}

	// 中止时本次构建不完整，保留旧文件
	if b.opts.Clean && !aborted {
		removed, err := b.clean()
		res.Removed = removed
		errs = multierr.Append(errs, err)
	}

	if b.cache != nil {
		if err := b.cache.Save(); err != nil {
			errs = multierr.Append(errs, errors.Wrap(err, errors.B0005, i18n.ErrWriteUnit, CacheFileName))
		}
	}

	sort.Strings(b.units)
	res.Units = b.units
	res.Written = int(b.written.Load())
	res.Unchanged = int(b.unchanged.Load())
	res.Failed = int(b.failed.Load())

	b.log.Info("build finished",
		zap.String("output", res.Output),
		zap.Int("written", res.Written),
		zap.Int("unchanged", res.Unchanged),
		zap.Int("failed", res.Failed),
		zap.Int("removed", res.Removed))
	return res, errs
}

func newBuilder(h *semantic.Hierarchy, opts Options) *builder {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Codegen.Logger == nil {
		opts.Codegen.Logger = opts.Logger
	}
	if opts.Output == "" {
		opts.Output = pkg.DefaultOutput
	}
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.NumCPU()
	}
	return &builder{
		opts: opts,
		log:  opts.Logger,
		gen:  jvmgen.NewFromHierarchy(h, opts.Codegen),
	}
}

// checkNames 过滤掉与运行时辅助类同名的类
func (b *builder) checkNames(classes []*ast.ClassDecl) ([]*ast.ClassDecl, error) {
	if !b.opts.Runtime {
		return classes, nil
	}
	var errs error
	kept := make([]*ast.ClassDecl, 0, len(classes))
	for _, cls := range classes {
		if sophiart.IsHelper(cls.Name) {
			b.failed.Inc()
			errs = multierr.Append(errs,
				errors.New(errors.B0008, i18n.ErrReservedName, cls.Name).At(cls.Pos()))
			continue
		}
		kept = append(kept, cls)
	}
	return kept, errs
}

// ============================================================================
// 并发生成
// ============================================================================

// generateAll 用固定数量的 worker 生成所有类
//
// 取消后不再分发新的类，已经在生成中的类会完成。
// 错误按类的声明顺序合并，与调度顺序无关。
func (b *builder) generateAll(ctx context.Context, classes []*ast.ClassDecl) error {
	errs := make([]error, len(classes))
	jobs := make(chan job)

	workers := b.opts.Jobs
	if workers > len(classes) {
		workers = len(classes)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				errs[j.index] = b.buildClass(j.cls)
			}
		}()
	}

dispatch:
	for i, cls := range classes {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- job{index: i, cls: cls}:
		}
	}
	close(jobs)
	wg.Wait()

	return multierr.Combine(errs...)
}

// buildClass 生成并写出单个类
func (b *builder) buildClass(cls *ast.ClassDecl) error {
	unit, err := b.generate(cls)
	if err != nil {
		b.failed.Inc()
		b.log.Warn("class generation failed", zap.String("class", cls.Name), zap.Error(err))
		return err
	}
	return b.write(unit.FileName(), unit.Bytes())
}

// generate 调用代码生成器；生成器内部的 panic 转成该类的错误
func (b *builder) generate(cls *ast.ClassDecl) (unit *jvmgen.Unit, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrap(fmt.Errorf("%v", r), errors.B0006, i18n.ErrClassFailed, cls.Name).In(cls.Name, "")
		}
	}()
	return b.gen.GenerateClass(cls)
}

// ============================================================================
// 输出
// ============================================================================

// write 写出一个文件；启用缓存时内容不变的文件跳过
func (b *builder) write(name string, data []byte) error {
	if b.cache != nil && b.cache.Unchanged(name, data) {
		b.unchanged.Inc()
		b.keep(name)
		b.log.Debug("unit unchanged", zap.String("file", name))
		return nil
	}

	path := filepath.Join(b.opts.Output, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		if b.cache != nil {
			b.cache.Forget(name)
		}
		return errors.Wrap(err, errors.B0005, i18n.ErrWriteUnit, path)
	}
	if b.cache != nil {
		b.cache.Record(name, data)
	}
	b.written.Inc()
	b.keep(name)
	b.log.Debug("unit written", zap.String("file", name), zap.Int("bytes", len(data)))
	return nil
}

func (b *builder) keep(name string) {
	b.mu.Lock()
	b.units = append(b.units, name)
	b.mu.Unlock()
}

// clean 删除输出目录中本次构建没有产出的 .j 文件
//
// 生成失败的类的旧文件也会被删除，输出目录中不会混杂新旧两个版本。
func (b *builder) clean() (int, error) {
	entries, err := os.ReadDir(b.opts.Output)
	if err != nil {
		return 0, errors.Wrap(err, errors.B0004, i18n.ErrPrepareOut, b.opts.Output)
	}

	current := make(map[string]bool, len(b.units))
	for _, name := range b.units {
		current[name] = true
	}

	var (
		removed int
		errs    error
	)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".j") || current[name] {
			continue
		}
		if err := os.Remove(filepath.Join(b.opts.Output, name)); err != nil {
			errs = multierr.Append(errs, errors.Wrap(err, errors.B0004, i18n.ErrPrepareOut, b.opts.Output))
			continue
		}
		if b.cache != nil {
			b.cache.Forget(name)
		}
		removed++
		b.log.Debug("removed stale unit", zap.String("file", name))
	}
	return removed, errs
}
