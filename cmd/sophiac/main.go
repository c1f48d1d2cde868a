package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tangzhangming/sophia/internal/ast"
	"github.com/tangzhangming/sophia/internal/compiler"
	"github.com/tangzhangming/sophia/internal/errors"
	"github.com/tangzhangming/sophia/internal/i18n"
	"github.com/tangzhangming/sophia/internal/pkg"
	"github.com/tangzhangming/sophia/internal/semantic"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// cli 命令行参数
type cli struct {
	output  string
	config  string
	jobs    int
	verbose bool
	lang    string
	noCache bool
	version bool
	doInit  bool
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var c cli
	fs := flag.NewFlagSet("sophiac", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&c.output, "o", "", "output directory (overrides build.output)")
	fs.StringVar(&c.config, "config", "", "path to "+pkg.ConfigFileName)
	fs.IntVar(&c.jobs, "j", 0, "number of classes generated concurrently")
	fs.BoolVar(&c.verbose, "v", false, "verbose (debug) logging")
	fs.StringVar(&c.lang, "lang", "", "message language: en or zh")
	fs.BoolVar(&c.noCache, "no-cache", false, "rewrite every unit even if unchanged")
	fs.BoolVar(&c.version, "version", false, "print version and exit")
	fs.BoolVar(&c.doInit, "init", false, "write a default "+pkg.ConfigFileName+" into [dir] and exit")
	fs.Usage = func() {
		fmt.Fprintln(stderr, i18n.T(i18n.CLIUsage))
		fmt.Fprintln(stderr)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 1
	}

	initLanguage(c.lang)

	if c.version {
		fmt.Fprintln(stdout, i18n.T(i18n.CLIVersion, pkg.CompilerVersion))
		return 0
	}

	formatter := errors.NewFormatter()
	if f, ok := stderr.(*os.File); ok {
		formatter.Colors = errors.DetectColorSupport(f)
	}

	if c.doInit {
		dir := "."
		if fs.NArg() > 0 {
			dir = fs.Arg(0)
		}
		path, err := initProject(dir)
		if err != nil {
			fmt.Fprint(stderr, formatter.Format(err))
			return 1
		}
		fmt.Fprintln(stdout, i18n.T(i18n.CLIInitDone, path))
		return 0
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, i18n.T(i18n.CLIMissing))
		fs.Usage()
		return 1
	}

	log := newLogger(c.verbose, stderr)
	defer log.Sync()
	log.Debug("sophiac starting",
		zap.String("version", pkg.CompilerVersion),
		zap.String("lang", string(i18n.GetLanguage())))

	res, err := c.build(ctx, fs.Arg(0), log)
	if err != nil {
		fmt.Fprint(stderr, formatter.Format(err))
		fmt.Fprintln(stderr, i18n.T(i18n.CLIFailed))
		return 1
	}
	fmt.Fprintln(stdout, i18n.T(i18n.CLIBuildDone, res.Written, res.Unchanged, res.Output))
	return 0
}

// build 加载配置、解码输入并执行构建
func (c *cli) build(ctx context.Context, input string, log *zap.Logger) (*compiler.Result, error) {
	cfg, err := c.loadConfig(input)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return nil, errors.Wrap(err, errors.B0001, i18n.ErrReadInput, input)
	}
	prog, err := ast.DecodeProgram(data)
	if err != nil {
		return nil, errors.Wrap(err, errors.B0002, i18n.ErrDecodeInput, input)
	}
	h, err := semantic.NewHierarchy(prog)
	if err != nil {
		return nil, errors.Wrap(err, errors.B0002, i18n.ErrDecodeInput, input)
	}

	log.Debug("program loaded",
		zap.String("input", input),
		zap.Int("classes", len(prog.Classes)),
		zap.String("output", cfg.Build.Output))

	return compiler.Build(ctx, prog, h, compiler.OptionsFromConfig(cfg, log))
}

// loadConfig 加载配置并应用命令行覆盖
//
// 没有 -config 时从输入文件所在目录向上查找 sophia.toml；
// 配置文件中的相对输出目录相对于配置文件所在目录。
func (c *cli) loadConfig(input string) (*pkg.Config, error) {
	path := c.config
	if path == "" {
		path = pkg.FindConfigFile(input)
	}

	cfg := pkg.Default()
	if path != "" {
		loaded, err := pkg.LoadConfig(path)
		if err != nil {
			return nil, errors.Wrap(err, errors.B0003, i18n.ErrLoadConfig, path)
		}
		cfg = loaded
		if !filepath.IsAbs(cfg.Build.Output) {
			cfg.Build.Output = filepath.Join(filepath.Dir(path), cfg.Build.Output)
		}
	}

	if c.output != "" {
		cfg.Build.Output = c.output
	}
	if c.jobs > 0 {
		cfg.Build.Jobs = c.jobs
	}
	if c.noCache {
		cfg.Build.Cache = false
	}
	return cfg, nil
}

// newLogger 默认只输出警告以上的日志，-v 时输出调试日志
func newLogger(verbose bool, w io.Writer) *zap.Logger {
	level := zapcore.WarnLevel
	encoder := zap.NewProductionEncoderConfig()
	if verbose {
		level = zapcore.DebugLevel
		encoder = zap.NewDevelopmentEncoderConfig()
	}
	encoder.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoder), zapcore.AddSync(w), level)
	return zap.New(core)
}
