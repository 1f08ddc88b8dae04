// Package config 读取描述一次表格排版任务的 YAML 文件。
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ByLCY/folio/layout"
)

var (
	// ErrConfigurationError 是所有配置校验错误的根错误。
	ErrConfigurationError = errors.New("配置错误")
	// ErrMissingRequiredField 表示缺少必填字段。
	ErrMissingRequiredField = errors.New("缺少必填字段")
)

// ConfigError 记录出错的字段与原因。
type ConfigError struct {
	Field   string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("配置项 '%s' 错误: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("配置错误: %s", e.Message)
}

func (e *ConfigError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrConfigurationError
}

// NewConfigError 创建 ConfigError。
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

// 命名页面尺寸（pt）。
var pageSizes = map[string]layout.Size{
	"a3":     {Width: 841.89, Height: 1190.55},
	"a4":     layout.A4,
	"a5":     {Width: 419.53, Height: 595.28},
	"letter": {Width: 612, Height: 792},
	"legal":  {Width: 612, Height: 1008},
}

// PageConfig 描述输出页面：Size 为命名尺寸，Width/Height 为带单位的长度并优先于 Size。
type PageConfig struct {
	Size      string `yaml:"size" json:"size,omitempty"`
	Width     string `yaml:"width" json:"width,omitempty"`
	Height    string `yaml:"height" json:"height,omitempty"`
	Landscape bool   `yaml:"landscape" json:"landscape,omitempty"`
}

// Resolve 返回页面尺寸（pt）。
func (p PageConfig) Resolve() (layout.Size, error) {
	size := layout.A4
	if p.Size != "" {
		named, ok := pageSizes[strings.ToLower(p.Size)]
		if !ok {
			return layout.Size{}, NewConfigError("page.size", fmt.Sprintf("未知的页面尺寸 %s", p.Size))
		}
		size = named
	}
	if p.Width != "" || p.Height != "" {
		w, okW := layout.ParseLength(p.Width)
		h, okH := layout.ParseLength(p.Height)
		if !okW || !okH || w.ToPT() <= 0 || h.ToPT() <= 0 {
			return layout.Size{}, NewConfigError("page", "width 与 height 需同时给出正长度")
		}
		size = layout.Size{Width: w.ToPT(), Height: h.ToPT()}
	}
	if p.Landscape && size.Width < size.Height {
		size.Width, size.Height = size.Height, size.Width
	}
	return size, nil
}

// FontConfig 指定自定义字体文件；为空时使用标准字体。
type FontConfig struct {
	Name string `yaml:"name" json:"name,omitempty"`
	Path string `yaml:"path" json:"path,omitempty"`
}

// MetaConfig 写入 PDF 文档信息。
type MetaConfig struct {
	Title    string   `yaml:"title" json:"title,omitempty"`
	Subject  string   `yaml:"subject" json:"subject,omitempty"`
	Author   string   `yaml:"author" json:"author,omitempty"`
	Creator  string   `yaml:"creator" json:"creator,omitempty"`
	Keywords []string `yaml:"keywords" json:"keywords,omitempty"`
}

// LoggingConfig 配置命令行日志。
type LoggingConfig struct {
	// Level 为 debug、info、warn 或 error。
	Level string `yaml:"level" json:"level"`
}

// SetDefaults 填充未设置的日志级别。
func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "warn"
	}
}

// SlogLevel 将 Level 转为 slog.Level。
func (c *LoggingConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Level)); err != nil {
		return 0, &ConfigError{Field: "logging.level", Message: fmt.Sprintf("无效的日志级别 %s", c.Level), Err: err}
	}
	return lvl, nil
}

// Config 是一次排版任务的完整配置。
type Config struct {
	Input  string `yaml:"input" json:"input,omitempty"`
	Output string `yaml:"output" json:"output,omitempty"`
	Debug  string `yaml:"debug" json:"debug,omitempty"`

	// Preset 为起始预设设计名。
	Preset string `yaml:"preset" json:"preset,omitempty"`
	// Design 在 DSL 的 design 之后合并。
	Design *layout.DesignConfig `yaml:"design" json:"design,omitempty"`
	// Table 中的非零字段覆盖 DSL 的 options。
	Table layout.TableOptions `yaml:"table" json:"table"`

	// Data 是绑定到 DSL 插值表达式的数据。
	Data map[string]any `yaml:"data" json:"data,omitempty"`

	Page    PageConfig     `yaml:"page" json:"page"`
	Font    FontConfig     `yaml:"font" json:"font"`
	Meta    MetaConfig     `yaml:"meta" json:"meta"`
	Logging *LoggingConfig `yaml:"logging" json:"logging,omitempty"`
}

// Default 返回默认配置。
func Default() *Config {
	c := &Config{Logging: &LoggingConfig{}}
	c.Logging.SetDefaults()
	return c
}

// Load 读取并解析配置文件。
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}
	return Parse(data)
}

// Parse 解析 YAML 配置；未知字段视为错误。
func Parse(data []byte) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	if c.Logging == nil {
		c.Logging = &LoggingConfig{}
	}
	c.Logging.SetDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate 校验配置的取值范围。
func (c *Config) Validate() error {
	if c.Preset != "" {
		if _, err := layout.Preset(c.Preset); err != nil {
			return &ConfigError{Field: "preset", Message: fmt.Sprintf("未知的预设 %s", c.Preset), Err: err}
		}
	}
	t := c.Table
	if t.Rows < 0 || t.Columns < 0 || t.RepeatHeaderRows < 0 {
		return NewConfigError("table", "行列数不能为负")
	}
	if t.RowHeight < 0 || t.ColWidth < 0 || t.TableWidth < 0 || t.TableHeight < 0 {
		return NewConfigError("table", "尺寸不能为负")
	}
	if t.PageBreakThreshold != nil && *t.PageBreakThreshold < 0 {
		return NewConfigError("table.pageBreakThreshold", "分页阈值不能为负")
	}
	if t.Design != nil {
		return NewConfigError("table.design", "请使用顶层 design 字段")
	}
	if c.Font.Path != "" && c.Font.Name == "" {
		return &ConfigError{Field: "font.name", Message: "指定 font.path 时必须给出名称", Err: ErrMissingRequiredField}
	}
	if _, err := c.Page.Resolve(); err != nil {
		return err
	}
	if c.Logging != nil {
		if _, err := c.Logging.SlogLevel(); err != nil {
			return err
		}
	}
	return nil
}

// BuildOptions 将配置转换为 layout.Build 的选项。
func (c *Config) BuildOptions() layout.BuildOptions {
	return layout.BuildOptions{Preset: c.Preset, Design: c.Design, Table: c.Table}
}
