package main

import (
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ByLCY/folio/config"
	"github.com/ByLCY/folio/dsl"
	"github.com/ByLCY/folio/fonts"
	"github.com/ByLCY/folio/layout"
	"github.com/ByLCY/folio/renderer"
	canvasrenderer "github.com/ByLCY/folio/renderer/canvas"
)

const (
	defaultInput  = "examples/invoice.folio"
	defaultOutput = "output/invoice.pdf"
)

func main() {
	input := flag.String("in", "", "DSL 文件路径（默认 "+defaultInput+"）")
	output := flag.String("out", "", "PDF 输出路径（默认 "+defaultOutput+"）")
	configPath := flag.String("config", "", "YAML 任务配置路径")
	preset := flag.String("preset", "", "起始预设设计名")
	debug := flag.String("debug", "", "布局调试 JSON 输出路径")
	dataJSON := flag.String("data", "", "绑定到 DSL 的 JSON 数据，覆盖配置中的 data")
	dryRun := flag.Bool("dry-run", false, "只排版不生成 PDF，输出绘制记录 JSON")
	verbose := flag.Bool("v", false, "输出调试日志")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("读取配置失败: %v", err)
		}
		cfg = loaded
	}
	if *input != "" {
		cfg.Input = *input
	}
	if *output != "" {
		cfg.Output = *output
	}
	if *preset != "" {
		cfg.Preset = *preset
	}
	if *debug != "" {
		cfg.Debug = *debug
	}
	if cfg.Input == "" {
		cfg.Input = defaultInput
	}
	if cfg.Output == "" {
		cfg.Output = defaultOutput
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("配置无效: %v", err)
	}

	logger, err := newLogger(cfg.Logging, *verbose, os.Stderr)
	if err != nil {
		log.Fatalf("配置无效: %v", err)
	}
	layout.SetLogger(logger)

	var data any
	if cfg.Data != nil {
		data = cfg.Data
	}
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &data); err != nil {
			log.Fatalf("解析 data JSON 失败: %v", err)
		}
	}

	if err := run(cfg, data, *dryRun); err != nil {
		log.Fatalf("生成 PDF 失败: %v", err)
	}
	if *dryRun {
		fmt.Printf("已生成绘制记录：%s\n", cfg.Output)
		return
	}
	fmt.Printf("已生成 PDF：%s\n", cfg.Output)
}

// run 串联解析、构建、排版与输出。
// newLogger 按配置的日志级别创建文本日志；verbose 时固定为 debug。
func newLogger(lc *config.LoggingConfig, verbose bool, w io.Writer) (*slog.Logger, error) {
	if lc == nil {
		lc = &config.LoggingConfig{}
		lc.SetDefaults()
	}
	level, err := lc.SlogLevel()
	if err != nil {
		return nil, err
	}
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

func run(cfg *config.Config, data any, dryRun bool) error {
	file, err := os.Open(cfg.Input)
	if err != nil {
		return fmt.Errorf("无法打开 DSL 文件 %s: %w", cfg.Input, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return fmt.Errorf("解析 DSL 失败: %w", err)
	}

	tb, err := layout.Build(doc, data, cfg.BuildOptions())
	if err != nil {
		return fmt.Errorf("构建表格失败: %w", err)
	}
	if cfg.Font.Path != "" {
		if err := setFont(tb, cfg.Font, filepath.Dir(cfg.Input)); err != nil {
			return err
		}
	}

	target, err := newRenderer(cfg, dryRun)
	if err != nil {
		return err
	}
	result, err := tb.Render(target)
	if err != nil {
		return fmt.Errorf("布局计算失败: %w", err)
	}

	if cfg.Debug != "" {
		if err := writeDebug(tb.DebugReport(result), cfg.Debug); err != nil {
			return err
		}
	}

	out, err := target.Bytes()
	if err != nil {
		return fmt.Errorf("渲染输出失败: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Output), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(cfg.Output, out, 0o644); err != nil {
		return fmt.Errorf("写入输出文件失败: %w", err)
	}
	return nil
}

// newRenderer 返回输出目标：默认为 PDF 文档，dry-run 时为使用 OpenType 度量的绘制记录器。
func newRenderer(cfg *config.Config, dryRun bool) (renderer.Renderer, error) {
	size, err := cfg.Page.Resolve()
	if err != nil {
		return nil, err
	}
	if dryRun {
		rec := layout.NewRecorder(size)
		rec.Fonts = measuringFont
		return rec, nil
	}
	return canvasrenderer.New(canvasrenderer.Options{
		PageSize: size,
		Meta: canvasrenderer.Meta{
			Title:    cfg.Meta.Title,
			Subject:  cfg.Meta.Subject,
			Author:   cfg.Meta.Author,
			Creator:  cfg.Meta.Creator,
			Keywords: cfg.Meta.Keywords,
		},
	}), nil
}

func measuringFont(src layout.FontSource) (layout.Font, error) {
	if len(src.Data) > 0 {
		return fonts.Parse(src.Name, src.Data)
	}
	return fonts.LoadBuiltin(src.Standard)
}

// setFont 读取字体文件并注册为表格字体，相对路径基于 DSL 文件所在目录。
func setFont(tb *layout.Table, fc config.FontConfig, baseDir string) error {
	path := fc.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("读取字体 %s 失败: %w", fc.Path, err)
	}
	if err := tb.SetCustomFont(fc.Name, base64.StdEncoding.EncodeToString(raw)); err != nil {
		return fmt.Errorf("注册字体 %s 失败: %w", fc.Name, err)
	}
	return nil
}

func writeDebug(report layout.DebugReport, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(report, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
