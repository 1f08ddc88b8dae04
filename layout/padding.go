package layout

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPadding 是未设置或无法解析时使用的内边距（pt）。
var DefaultPadding = Insets{Top: 5, Right: 5, Bottom: 5, Left: 5}

// Insets 为四边内边距，单位 pt。
type Insets struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Horizontal / Vertical 返回两侧之和。
func (in Insets) Horizontal() float64 { return in.Left + in.Right }
func (in Insets) Vertical() float64   { return in.Top + in.Bottom }

// PaddingSpec 是 CSS 风格的 padding 简写：单个数字或以空格分隔的 1/2/4 个取值。
// 配置中写数字 5 与字符串 "5" 等价。
type PaddingSpec string

// UniformPadding 返回四边相同的 padding。
func UniformPadding(v float64) PaddingSpec {
	return PaddingSpec(formatNumber(v))
}

// Resolve 解析为 Insets；空值、0、取值个数不是 1/2/4 或含有非数字时回退到 DefaultPadding。
func (p PaddingSpec) Resolve() Insets {
	raw := strings.TrimSpace(string(p))
	if raw == "" || raw == "0" {
		return DefaultPadding
	}
	parts := strings.Split(raw, " ")
	vals := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, ok := parsePoints(part)
		if !ok {
			return DefaultPadding
		}
		vals = append(vals, v)
	}
	// 1 个值：四边相同；2 个值：上下 / 左右；4 个值：上 右 下 左
	switch len(vals) {
	case 1:
		return Insets{Top: vals[0], Right: vals[0], Bottom: vals[0], Left: vals[0]}
	case 2:
		return Insets{Top: vals[0], Right: vals[1], Bottom: vals[0], Left: vals[1]}
	case 4:
		return Insets{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}
	default:
		return DefaultPadding
	}
}

// UnmarshalYAML 接受数字或字符串标量，例如 padding: 5 或 padding: "4 8"。
func (p *PaddingSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("第 %d 行: padding 需要数字或字符串", node.Line)
	}
	*p = PaddingSpec(node.Value)
	return nil
}
