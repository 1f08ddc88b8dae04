package layout

import (
	"strconv"
	"strings"
)

// 表格引擎内部统一使用 pt（PDF 用户空间单位）；mm 仅在 canvas 后端与带单位的输入之间换算。

// Unit represents the original unit of a length value as written in the DSL or config.
type Unit int

const (
	UnitNone Unit = iota // bare numbers, read as points
	UnitMM               // millimeters
	UnitCM               // centimeters
	UnitIN               // inches
	UnitPT               // points
)

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	case UnitPT:
		return "pt"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// ToPT converts the length to points; unit-less values are already points.
func (l Length) ToPT() float64 {
	switch l.Unit {
	case UnitMM:
		return l.Value * MmToPt
	case UnitCM:
		return l.Value * 10 * MmToPt
	case UnitIN:
		return l.Value * 72
	default:
		return l.Value
	}
}

// ToMM converts the length to millimeters.
func (l Length) ToMM() float64 { return l.ToPT() * PtToMm }

// String 按原单位输出，例如 "4.2mm"；无单位时只输出数字。
func (l Length) String() string { return formatNumber(l.Value) + UnitToString(l.Unit) }

// ParseLength parses "12", "12pt", "4.2mm", "1in"; ok is false when the numeric part is invalid.
func ParseLength(value string) (Length, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, false
	}
	unit := UnitNone
	for _, suf := range []struct {
		s string
		u Unit
	}{{"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"pt", UnitPT}, {"px", UnitNone}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			v = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return Length{}, false
	}
	return Length{Value: f, Unit: unit}, true
}

// parsePoints 是 ParseLength 的便捷形式，直接返回 pt。
func parsePoints(value string) (float64, bool) {
	l, ok := ParseLength(value)
	if !ok {
		return 0, false
	}
	return l.ToPT(), true
}

func formatNumber(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
