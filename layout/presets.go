package layout

import (
	"fmt"
	"slices"
	"strings"
)

// 预设设计。每次调用都构造新值，调用方可以自由修改返回的配置。

func rgbPtr(r, g, b float64) *Color { return ptr(RGB(r, g, b)) }

func solidBorder(c *Color, width float64) *BorderSpec {
	return &BorderSpec{Display: ptr(true), Color: c, Width: width, Style: LineSolid}
}

func hiddenBorder() *BorderSpec { return &BorderSpec{Display: ptr(false)} }

// uniformBorders 把同一规格复制到四边的 defaultXBorder。
func (d DesignConfig) uniformBorders(c *Color, width float64) DesignConfig {
	d.DefaultTopBorder = solidBorder(clonePtr(c), width)
	d.DefaultRightBorder = solidBorder(clonePtr(c), width)
	d.DefaultBottomBorder = solidBorder(clonePtr(c), width)
	d.DefaultLeftBorder = solidBorder(clonePtr(c), width)
	return d
}

// DefaultDesign 是表格未指定设计时使用的配置。
func DefaultDesign() DesignConfig {
	return DesignConfig{
		FontFamily:      "Helvetica, Arial, sans-serif",
		FontSize:        ptr(12.0),
		FontColor:       rgbPtr(0, 0, 0),
		BackgroundColor: rgbPtr(255, 255, 255),
		BorderColor:     rgbPtr(200, 200, 200),
		BorderWidth:     ptr(1.0),
		HeadingRowStyle: &DesignConfig{
			BackgroundColor: rgbPtr(220, 220, 220),
			FontSize:        ptr(13.0),
			FontWeight:      "bold",
		},
		HeadingColumnStyle: &DesignConfig{
			BackgroundColor: rgbPtr(240, 240, 240),
			FontSize:        ptr(13.0),
			FontWeight:      "bold",
		},
		AdditionalBorders: []AdditionalBorder{},
		Padding:           "5 5 5 5",
		VerticalAlignment: VAlignMiddle,
		Alignment:         AlignLeft,
		WordWrap:          WrapNormal,
		DynamicRowHeight:  ptr(true),
	}.uniformBorders(rgbPtr(200, 200, 200), 1)
}

func materialDesign() DesignConfig {
	return DesignConfig{
		FontFamily:         "Roboto, sans-serif",
		FontSize:           ptr(14.0),
		FontColor:          rgbPtr(33, 33, 33),
		BackgroundColor:    rgbPtr(255, 255, 255),
		BorderColor:        rgbPtr(224, 224, 224),
		BorderWidth:        ptr(1.0),
		HeadingRowStyle:    &DesignConfig{BackgroundColor: rgbPtr(245, 245, 245)},
		HeadingColumnStyle: &DesignConfig{BackgroundColor: rgbPtr(250, 250, 250)},
		WordWrap:           WrapNormal,
		DynamicRowHeight:   ptr(true),
	}
}

func classicDesign() DesignConfig {
	return DesignConfig{
		FontFamily:       "Times New Roman, Times, serif",
		FontSize:         ptr(12.0),
		FontColor:        rgbPtr(0, 0, 0),
		BackgroundColor:  rgbPtr(255, 255, 255),
		BorderColor:      rgbPtr(150, 150, 150),
		BorderWidth:      ptr(1.0),
		WordWrap:         WrapNormal,
		DynamicRowHeight: ptr(true),
	}
}

func modernDesign() DesignConfig {
	return DesignConfig{
		FontFamily:       "Arial, sans-serif",
		FontSize:         ptr(11.0),
		FontColor:        rgbPtr(50, 50, 50),
		BackgroundColor:  rgbPtr(245, 245, 245),
		BorderColor:      rgbPtr(200, 200, 200),
		BorderWidth:      ptr(0.5),
		WordWrap:         WrapNormal,
		DynamicRowHeight: ptr(true),
	}
}

func highContrastDesign() DesignConfig {
	return DesignConfig{
		FontFamily:       "Verdana, sans-serif",
		FontSize:         ptr(13.0),
		FontColor:        rgbPtr(255, 255, 255),
		BackgroundColor:  rgbPtr(0, 0, 0),
		BorderColor:      rgbPtr(255, 255, 255),
		BorderWidth:      ptr(2.0),
		WordWrap:         WrapNormal,
		DynamicRowHeight: ptr(true),
	}
}

func financialDesign() DesignConfig {
	return DesignConfig{
		FontFamily:      "Arial, sans-serif",
		FontSize:        ptr(11.0),
		FontColor:       rgbPtr(50, 50, 50),
		BackgroundColor: rgbPtr(255, 255, 255),
		BorderColor:     rgbPtr(230, 230, 230),
		BorderWidth:     ptr(0.5),
		HeadingRowStyle: &DesignConfig{
			BackgroundColor: rgbPtr(240, 240, 240),
			FontWeight:      "bold",
			BorderBottom:    solidBorder(rgbPtr(180, 180, 180), 1),
		},
		EvenRowStyle:     &CellStyle{BackgroundColor: rgbPtr(250, 250, 250)},
		OddRowStyle:      &CellStyle{BackgroundColor: rgbPtr(255, 255, 255)},
		WordWrap:         WrapNormal,
		DynamicRowHeight: ptr(true),
	}
}

func dashboardDesign() DesignConfig {
	return DesignConfig{
		FontFamily:      "Segoe UI, Roboto, sans-serif",
		FontSize:        ptr(12.0),
		FontColor:       rgbPtr(60, 60, 60),
		BackgroundColor: rgbPtr(255, 255, 255),
		BorderWidth:     ptr(0.0),
		BorderRadius:    "8px",
		BoxShadow:       "0 2px 5px rgba(0,0,0,0.1)",
		HeadingRowStyle: &DesignConfig{
			BackgroundColor: rgbPtr(250, 250, 250),
			FontWeight:      "bold",
			FontSize:        ptr(13.0),
		},
		DefaultTopBorder:    hiddenBorder(),
		DefaultRightBorder:  hiddenBorder(),
		DefaultBottomBorder: solidBorder(rgbPtr(240, 240, 240), 1),
		DefaultLeftBorder:   hiddenBorder(),
		Padding:             "12 16 12 16",
		WordWrap:            WrapNormal,
		DynamicRowHeight:    ptr(true),
	}
}

func dataTableDesign() DesignConfig {
	return DesignConfig{
		FontFamily:      `Consolas, "Courier New", monospace`,
		FontSize:        ptr(11.0),
		FontColor:       rgbPtr(20, 20, 20),
		BackgroundColor: rgbPtr(255, 255, 255),
		HeadingRowStyle: &DesignConfig{
			BackgroundColor: rgbPtr(230, 240, 250),
			FontWeight:      "bold",
			Alignment:       AlignCenter,
		},
		SpecialCells: []CellSelector{
			{Selector: Selector{Kind: SelectFirstColumn}, Style: CellStyle{FontWeight: "bold"}},
		},
		WordWrap:         WrapNormal,
		DynamicRowHeight: ptr(true),
	}.uniformBorders(rgbPtr(210, 220, 230), 1)
}

func minimalistDesign() DesignConfig {
	return DesignConfig{
		FontFamily:      "Helvetica Neue, Arial, sans-serif",
		FontSize:        ptr(11.0),
		FontColor:       rgbPtr(80, 80, 80),
		BackgroundColor: rgbPtr(255, 255, 255),
		BorderWidth:     ptr(0.0),
		HeadingRowStyle: &DesignConfig{
			FontSize:        ptr(12.0),
			FontWeight:      "bold",
			BorderBottom:    solidBorder(rgbPtr(230, 230, 230), 1),
			BackgroundColor: rgbPtr(252, 252, 252),
			Padding:         "10 16 10 16",
		},
		DefaultTopBorder:    hiddenBorder(),
		DefaultRightBorder:  hiddenBorder(),
		DefaultBottomBorder: solidBorder(rgbPtr(240, 240, 240), 0.5),
		DefaultLeftBorder:   hiddenBorder(),
		Padding:             "8 16 8 16",
		WordWrap:            WrapNormal,
		DynamicRowHeight:    ptr(true),
		VerticalAlignment:   VAlignMiddle,
	}
}

func bootstrapDesign() DesignConfig {
	return DesignConfig{
		FontFamily:      `-apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif`,
		FontSize:        ptr(14.0),
		FontColor:       rgbPtr(33, 37, 41),
		BackgroundColor: rgbPtr(255, 255, 255),
		HeadingRowStyle: &DesignConfig{
			BackgroundColor:   rgbPtr(248, 249, 250),
			FontWeight:        "bold",
			Alignment:         AlignLeft,
			VerticalAlignment: VAlignMiddle,
		},
		Padding:           "8 12 8 12",
		WordWrap:          WrapNormal,
		DynamicRowHeight:  ptr(true),
		EvenRowStyle:      &CellStyle{BackgroundColor: rgbPtr(255, 255, 255)},
		OddRowStyle:       &CellStyle{BackgroundColor: rgbPtr(249, 250, 251)},
		VerticalAlignment: VAlignMiddle,
	}.uniformBorders(rgbPtr(222, 226, 230), 1)
}

func darkModeDesign() DesignConfig {
	return DesignConfig{
		FontFamily:      "Inter, Roboto, system-ui, sans-serif",
		FontSize:        ptr(13.0),
		FontColor:       rgbPtr(220, 220, 220),
		BackgroundColor: rgbPtr(33, 37, 43),
		BorderColor:     rgbPtr(60, 65, 70),
		BorderWidth:     ptr(1.0),
		HeadingRowStyle: &DesignConfig{
			BackgroundColor: rgbPtr(42, 47, 55),
			FontColor:       rgbPtr(240, 240, 240),
			FontWeight:      "bold",
			BorderBottom:    solidBorder(rgbPtr(70, 75, 80), 1),
		},
		EvenRowStyle:      &CellStyle{BackgroundColor: rgbPtr(33, 37, 43)},
		OddRowStyle:       &CellStyle{BackgroundColor: rgbPtr(38, 42, 48)},
		Padding:           "8 12 8 12",
		WordWrap:          WrapNormal,
		DynamicRowHeight:  ptr(true),
		VerticalAlignment: VAlignMiddle,
	}.uniformBorders(rgbPtr(60, 65, 70), 1)
}

var presets = map[string]func() DesignConfig{
	"default":       DefaultDesign,
	"material":      materialDesign,
	"classic":       classicDesign,
	"modern":        modernDesign,
	"high-contrast": highContrastDesign,
	"financial":     financialDesign,
	"dashboard":     dashboardDesign,
	"data-table":    dataTableDesign,
	"minimalist":    minimalistDesign,
	"bootstrap":     bootstrapDesign,
	"dark-mode":     darkModeDesign,
}

// Preset 返回指定名称的预设设计（名称不区分大小写）。
func Preset(name string) (DesignConfig, error) {
	fn, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return DesignConfig{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return fn(), nil
}

// PresetNames 返回全部预设名称（已排序）。
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
