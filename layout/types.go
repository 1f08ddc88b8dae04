package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// 该文件定义表格样式、边框与设计配置的数据模型，供样式级联、分页与调试 JSON 共用。

// Color 兼容 0-1 与 0-255 两种取值范围，绘制前通过 Normalize 统一到 0-1。
type Color struct {
	R float64 `json:"r" yaml:"r"`
	G float64 `json:"g" yaml:"g"`
	B float64 `json:"b" yaml:"b"`
}

// RGB 构造颜色，分量可以是 0-255 或 0-1。
func RGB(r, g, b float64) Color { return Color{R: r, G: g, B: b} }

// Normalize 将大于 1 的分量视为 0-255 取值并除以 255。
func (c Color) Normalize() Color {
	norm := func(v float64) float64 {
		if v > 1 {
			return v / 255
		}
		return v
	}
	return Color{R: norm(c.R), G: norm(c.G), B: norm(c.B)}
}

// ParseColor 解析 #rgb / #rrggbb / #rrggbbaa，返回 0-1 范围的颜色。
func ParseColor(value string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(hex) == 3 {
		hex = strings.Repeat(hex[0:1], 2) + strings.Repeat(hex[1:2], 2) + strings.Repeat(hex[2:3], 2)
	}
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("颜色值 %s 无法解析", value)
	}
	var comps [3]float64
	for i := range comps {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("颜色值 %s 无法解析: %w", value, err)
		}
		comps[i] = float64(v) / 255
	}
	return Color{R: comps[0], G: comps[1], B: comps[2]}, nil
}

// UnmarshalYAML 允许在配置中直接写 "#dcdcdc"，也兼容 {r, g, b} 映射。
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		parsed, err := ParseColor(node.Value)
		if err != nil {
			return fmt.Errorf("第 %d 行: %w", node.Line, err)
		}
		*c = parsed
		return nil
	}
	type plain Color
	var raw plain
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*c = Color(raw)
	return nil
}

// LineStyle 为边框线型。
type LineStyle string

const (
	LineSolid  LineStyle = "solid"
	LineDashed LineStyle = "dashed"
	LineDotted LineStyle = "dotted"
)

// BorderSpec 描述单条边框；零值字段表示未设置，由默认值或旧式 borderColor/borderWidth 补齐。
type BorderSpec struct {
	Display   *bool     `json:"display,omitempty" yaml:"display,omitempty"`
	Color     *Color    `json:"color,omitempty" yaml:"color,omitempty"`
	Width     float64   `json:"width,omitempty" yaml:"width,omitempty"`
	Style     LineStyle `json:"style,omitempty" yaml:"style,omitempty"`
	DashArray []float64 `json:"dashArray,omitempty" yaml:"dashArray,omitempty"`
	DashPhase float64   `json:"dashPhase,omitempty" yaml:"dashPhase,omitempty"`
}

// MinDashPattern 是非零虚线图案允许的最小总长（pt）。
const MinDashPattern = 0.01

// ValidateDashArray 拒绝负值以及总长小于 MinDashPattern 的非零图案；全 0 图案表示实线，允许。
func ValidateDashArray(arr []float64) error {
	total := 0.0
	for _, v := range arr {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %v 含负值或非有限值", ErrInvalidDash, arr)
		}
		total += v
	}
	if total > 0 && total < MinDashPattern {
		return fmt.Errorf("%w: %v 总长小于 %gpt", ErrInvalidDash, arr, MinDashPattern)
	}
	return nil
}

// UnmarshalYAML 在解码后校验 dashArray。
func (b *BorderSpec) UnmarshalYAML(node *yaml.Node) error {
	type plain BorderSpec
	var raw plain
	if err := node.Decode(&raw); err != nil {
		return err
	}
	if err := ValidateDashArray(raw.DashArray); err != nil {
		return fmt.Errorf("第 %d 行: %w", node.Line, err)
	}
	*b = BorderSpec(raw)
	return nil
}

// Visible 未显式关闭即视为显示。
func (b *BorderSpec) Visible() bool {
	return b != nil && (b.Display == nil || *b.Display)
}

// Clone 深拷贝，避免不同单元格共享同一份边框数据。
func (b *BorderSpec) Clone() *BorderSpec {
	if b == nil {
		return nil
	}
	out := *b
	if b.Display != nil {
		v := *b.Display
		out.Display = &v
	}
	if b.Color != nil {
		c := *b.Color
		out.Color = &c
	}
	if b.DashArray != nil {
		out.DashArray = append([]float64(nil), b.DashArray...)
	}
	return &out
}

// AdditionalBorder 是单元格内部的附加横线，YOffset 自单元格上边缘向下计量（pt）。
type AdditionalBorder struct {
	YOffset float64    `json:"yOffset" yaml:"yOffset"`
	Style   BorderSpec `json:"style" yaml:"style"`
}

func cloneAdditional(in []AdditionalBorder) []AdditionalBorder {
	if in == nil {
		return nil
	}
	out := make([]AdditionalBorder, len(in))
	for i, ab := range in {
		out[i] = AdditionalBorder{YOffset: ab.YOffset, Style: *ab.Style.Clone()}
	}
	return out
}

// Alignment 水平对齐。
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// VerticalAlignment 垂直对齐。
type VerticalAlignment string

const (
	VAlignTop    VerticalAlignment = "top"
	VAlignMiddle VerticalAlignment = "middle"
	VAlignBottom VerticalAlignment = "bottom"
)

// WordWrap 控制单元格内是否折行。
type WordWrap string

const (
	WrapNormal    WordWrap = "normal"
	WrapBreakWord WordWrap = "break-word"
	WrapNone      WordWrap = "none"
)

// TextDecoration / TextTransform / TextOverflow / WhiteSpace 沿用 CSS 取值。
type (
	TextDecoration string
	TextTransform  string
	TextOverflow   string
	WhiteSpace     string
)

const (
	DecorationNone        TextDecoration = "none"
	DecorationUnderline   TextDecoration = "underline"
	DecorationLineThrough TextDecoration = "line-through"

	TransformNone       TextTransform = "none"
	TransformCapitalize TextTransform = "capitalize"
	TransformUppercase  TextTransform = "uppercase"
	TransformLowercase  TextTransform = "lowercase"

	OverflowClip     TextOverflow = "clip"
	OverflowEllipsis TextOverflow = "ellipsis"
)

// FontWeight 可为 normal/bold/lighter 或数字字重（如 "600"）。
type FontWeight string

// Valid 判断字重取值是否合法。
func (w FontWeight) Valid() bool {
	switch w {
	case "normal", "bold", "lighter":
		return true
	}
	_, err := strconv.Atoi(string(w))
	return err == nil
}

// CellStyle 是单元格样式；指针或空字符串字段表示未设置，覆盖时不会擦除已有值。
type CellStyle struct {
	FontSize          *float64           `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	FontColor         *Color             `json:"fontColor,omitempty" yaml:"fontColor,omitempty"`
	BackgroundColor   *Color             `json:"backgroundColor,omitempty" yaml:"backgroundColor,omitempty"`
	BorderColor       *Color             `json:"borderColor,omitempty" yaml:"borderColor,omitempty"`
	BorderWidth       *float64           `json:"borderWidth,omitempty" yaml:"borderWidth,omitempty"`
	Alignment         Alignment          `json:"alignment,omitempty" yaml:"alignment,omitempty"`
	TopBorder         *BorderSpec        `json:"topBorder,omitempty" yaml:"topBorder,omitempty"`
	RightBorder       *BorderSpec        `json:"rightBorder,omitempty" yaml:"rightBorder,omitempty"`
	BottomBorder      *BorderSpec        `json:"bottomBorder,omitempty" yaml:"bottomBorder,omitempty"`
	LeftBorder        *BorderSpec        `json:"leftBorder,omitempty" yaml:"leftBorder,omitempty"`
	AdditionalBorders []AdditionalBorder `json:"additionalBorders,omitempty" yaml:"additionalBorders,omitempty"`
	Padding           PaddingSpec        `json:"padding,omitempty" yaml:"padding,omitempty"`
	FontFamily        string             `json:"fontFamily,omitempty" yaml:"fontFamily,omitempty"`
	FontWeight        FontWeight         `json:"fontWeight,omitempty" yaml:"fontWeight,omitempty"`
	FontStyle         string             `json:"fontStyle,omitempty" yaml:"fontStyle,omitempty"`
	BorderRadius      string             `json:"borderRadius,omitempty" yaml:"borderRadius,omitempty"`
	VerticalAlignment VerticalAlignment  `json:"verticalAlignment,omitempty" yaml:"verticalAlignment,omitempty"`
	TextDecoration    TextDecoration     `json:"textDecoration,omitempty" yaml:"textDecoration,omitempty"`
	TextTransform     TextTransform      `json:"textTransform,omitempty" yaml:"textTransform,omitempty"`
	TextOverflow      TextOverflow       `json:"textOverflow,omitempty" yaml:"textOverflow,omitempty"`
	WhiteSpace        WhiteSpace         `json:"whiteSpace,omitempty" yaml:"whiteSpace,omitempty"`
	BoxShadow         string             `json:"boxShadow,omitempty" yaml:"boxShadow,omitempty"`
	Opacity           *float64           `json:"opacity,omitempty" yaml:"opacity,omitempty"`
	ColumnSpan        *int               `json:"columnSpan,omitempty" yaml:"columnSpan,omitempty"`
	RowSpan           *int               `json:"rowSpan,omitempty" yaml:"rowSpan,omitempty"`
	WordWrap          WordWrap           `json:"wordWrap,omitempty" yaml:"wordWrap,omitempty"`
	ClassName         string             `json:"className,omitempty" yaml:"className,omitempty"`
}

// DesignConfig 是表格级的级联默认值；同一类型也用作 headingRowStyle 等“部分配置”。
type DesignConfig struct {
	FontFamily      string   `json:"fontFamily,omitempty" yaml:"fontFamily,omitempty"`
	FontSize        *float64 `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	FontColor       *Color   `json:"fontColor,omitempty" yaml:"fontColor,omitempty"`
	BackgroundColor *Color   `json:"backgroundColor,omitempty" yaml:"backgroundColor,omitempty"`
	BorderColor     *Color   `json:"borderColor,omitempty" yaml:"borderColor,omitempty"`
	BorderWidth     *float64 `json:"borderWidth,omitempty" yaml:"borderWidth,omitempty"`

	BorderTop    *BorderSpec `json:"borderTop,omitempty" yaml:"borderTop,omitempty"`
	BorderRight  *BorderSpec `json:"borderRight,omitempty" yaml:"borderRight,omitempty"`
	BorderBottom *BorderSpec `json:"borderBottom,omitempty" yaml:"borderBottom,omitempty"`
	BorderLeft   *BorderSpec `json:"borderLeft,omitempty" yaml:"borderLeft,omitempty"`

	HeadingRowStyle    *DesignConfig `json:"headingRowStyle,omitempty" yaml:"headingRowStyle,omitempty"`
	HeadingColumnStyle *DesignConfig `json:"headingColumnStyle,omitempty" yaml:"headingColumnStyle,omitempty"`

	DefaultTopBorder    *BorderSpec `json:"defaultTopBorder,omitempty" yaml:"defaultTopBorder,omitempty"`
	DefaultRightBorder  *BorderSpec `json:"defaultRightBorder,omitempty" yaml:"defaultRightBorder,omitempty"`
	DefaultBottomBorder *BorderSpec `json:"defaultBottomBorder,omitempty" yaml:"defaultBottomBorder,omitempty"`
	DefaultLeftBorder   *BorderSpec `json:"defaultLeftBorder,omitempty" yaml:"defaultLeftBorder,omitempty"`

	AdditionalBorders []AdditionalBorder `json:"additionalBorders,omitempty" yaml:"additionalBorders,omitempty"`

	Padding           PaddingSpec       `json:"padding,omitempty" yaml:"padding,omitempty"`
	VerticalAlignment VerticalAlignment `json:"verticalAlignment,omitempty" yaml:"verticalAlignment,omitempty"`
	BorderRadius      string            `json:"borderRadius,omitempty" yaml:"borderRadius,omitempty"`
	FontWeight        FontWeight        `json:"fontWeight,omitempty" yaml:"fontWeight,omitempty"`
	FontStyle         string            `json:"fontStyle,omitempty" yaml:"fontStyle,omitempty"`
	Alignment         Alignment         `json:"alignment,omitempty" yaml:"alignment,omitempty"`

	SpecialCells []CellSelector `json:"specialCells,omitempty" yaml:"specialCells,omitempty"`
	BoxShadow    string         `json:"boxShadow,omitempty" yaml:"boxShadow,omitempty"`

	EvenRowStyle     *CellStyle `json:"evenRowStyle,omitempty" yaml:"evenRowStyle,omitempty"`
	OddRowStyle      *CellStyle `json:"oddRowStyle,omitempty" yaml:"oddRowStyle,omitempty"`
	FirstRowStyle    *CellStyle `json:"firstRowStyle,omitempty" yaml:"firstRowStyle,omitempty"`
	LastRowStyle     *CellStyle `json:"lastRowStyle,omitempty" yaml:"lastRowStyle,omitempty"`
	FirstColumnStyle *CellStyle `json:"firstColumnStyle,omitempty" yaml:"firstColumnStyle,omitempty"`
	LastColumnStyle  *CellStyle `json:"lastColumnStyle,omitempty" yaml:"lastColumnStyle,omitempty"`

	WordWrap         WordWrap `json:"wordWrap,omitempty" yaml:"wordWrap,omitempty"`
	DynamicRowHeight *bool    `json:"dynamicRowHeight,omitempty" yaml:"dynamicRowHeight,omitempty"`

	TextDecoration TextDecoration `json:"textDecoration,omitempty" yaml:"textDecoration,omitempty"`
	TextTransform  TextTransform  `json:"textTransform,omitempty" yaml:"textTransform,omitempty"`
	TextOverflow   TextOverflow   `json:"textOverflow,omitempty" yaml:"textOverflow,omitempty"`
	WhiteSpace     WhiteSpace     `json:"whiteSpace,omitempty" yaml:"whiteSpace,omitempty"`

	Opacity    *float64 `json:"opacity,omitempty" yaml:"opacity,omitempty"`
	ColumnSpan *int     `json:"columnSpan,omitempty" yaml:"columnSpan,omitempty"`
	RowSpan    *int     `json:"rowSpan,omitempty" yaml:"rowSpan,omitempty"`
	ClassName  string   `json:"className,omitempty" yaml:"className,omitempty"`
}

// Extent 是表格的总行列数，零值表示未知（此时 last-row / last-column 规则不生效）。
type Extent struct {
	Rows int
	Cols int
}

func ptr[T any](v T) *T { return &v }

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
