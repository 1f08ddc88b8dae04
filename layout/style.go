package layout

// 样式级联：设计配置 → 表头行/列 → 首末行列 → 奇偶行 → specialCells → 单元格显式样式，后者覆盖前者。
// 所有步骤都返回新值，不修改输入。

// Overlay 返回以 o 中已设置字段覆盖 s 后的新样式，o 为 nil 时返回 s 的深拷贝。
func (s CellStyle) Overlay(o *CellStyle) CellStyle {
	out := s.clone()
	if o == nil {
		return out
	}
	if o.FontSize != nil {
		out.FontSize = clonePtr(o.FontSize)
	}
	if o.FontColor != nil {
		out.FontColor = clonePtr(o.FontColor)
	}
	if o.BackgroundColor != nil {
		out.BackgroundColor = clonePtr(o.BackgroundColor)
	}
	if o.BorderColor != nil {
		out.BorderColor = clonePtr(o.BorderColor)
	}
	if o.BorderWidth != nil {
		out.BorderWidth = clonePtr(o.BorderWidth)
	}
	if o.Alignment != "" {
		out.Alignment = o.Alignment
	}
	if o.TopBorder != nil {
		out.TopBorder = o.TopBorder.Clone()
	}
	if o.RightBorder != nil {
		out.RightBorder = o.RightBorder.Clone()
	}
	if o.BottomBorder != nil {
		out.BottomBorder = o.BottomBorder.Clone()
	}
	if o.LeftBorder != nil {
		out.LeftBorder = o.LeftBorder.Clone()
	}
	if o.AdditionalBorders != nil {
		out.AdditionalBorders = cloneAdditional(o.AdditionalBorders)
	}
	if o.Padding != "" {
		out.Padding = o.Padding
	}
	if o.FontFamily != "" {
		out.FontFamily = o.FontFamily
	}
	if o.FontWeight != "" {
		out.FontWeight = o.FontWeight
	}
	if o.FontStyle != "" {
		out.FontStyle = o.FontStyle
	}
	if o.BorderRadius != "" {
		out.BorderRadius = o.BorderRadius
	}
	if o.VerticalAlignment != "" {
		out.VerticalAlignment = o.VerticalAlignment
	}
	if o.TextDecoration != "" {
		out.TextDecoration = o.TextDecoration
	}
	if o.TextTransform != "" {
		out.TextTransform = o.TextTransform
	}
	if o.TextOverflow != "" {
		out.TextOverflow = o.TextOverflow
	}
	if o.WhiteSpace != "" {
		out.WhiteSpace = o.WhiteSpace
	}
	if o.BoxShadow != "" {
		out.BoxShadow = o.BoxShadow
	}
	if o.Opacity != nil {
		out.Opacity = clonePtr(o.Opacity)
	}
	if o.ColumnSpan != nil {
		out.ColumnSpan = clonePtr(o.ColumnSpan)
	}
	if o.RowSpan != nil {
		out.RowSpan = clonePtr(o.RowSpan)
	}
	if o.WordWrap != "" {
		out.WordWrap = o.WordWrap
	}
	if o.ClassName != "" {
		out.ClassName = o.ClassName
	}
	return out
}

func (s CellStyle) clone() CellStyle {
	out := s
	out.FontSize = clonePtr(s.FontSize)
	out.FontColor = clonePtr(s.FontColor)
	out.BackgroundColor = clonePtr(s.BackgroundColor)
	out.BorderColor = clonePtr(s.BorderColor)
	out.BorderWidth = clonePtr(s.BorderWidth)
	out.TopBorder = s.TopBorder.Clone()
	out.RightBorder = s.RightBorder.Clone()
	out.BottomBorder = s.BottomBorder.Clone()
	out.LeftBorder = s.LeftBorder.Clone()
	out.AdditionalBorders = cloneAdditional(s.AdditionalBorders)
	out.Opacity = clonePtr(s.Opacity)
	out.ColumnSpan = clonePtr(s.ColumnSpan)
	out.RowSpan = clonePtr(s.RowSpan)
	return out
}

// ApplyConfig 把部分设计配置（headingRowStyle / headingColumnStyle）逐字段应用到样式上。
// borderTop 等映射到 TopBorder；不合法的 fontWeight 被忽略。
func (s CellStyle) ApplyConfig(cfg *DesignConfig) CellStyle {
	if cfg == nil {
		return s.clone()
	}
	partial := CellStyle{
		FontSize:          cfg.FontSize,
		FontColor:         cfg.FontColor,
		BackgroundColor:   cfg.BackgroundColor,
		BorderColor:       cfg.BorderColor,
		BorderWidth:       cfg.BorderWidth,
		FontFamily:        cfg.FontFamily,
		FontStyle:         cfg.FontStyle,
		Alignment:         cfg.Alignment,
		Padding:           cfg.Padding,
		VerticalAlignment: cfg.VerticalAlignment,
		BorderRadius:      cfg.BorderRadius,
		TopBorder:         cfg.BorderTop,
		RightBorder:       cfg.BorderRight,
		BottomBorder:      cfg.BorderBottom,
		LeftBorder:        cfg.BorderLeft,
		WordWrap:          cfg.WordWrap,
		TextDecoration:    cfg.TextDecoration,
		TextTransform:     cfg.TextTransform,
		TextOverflow:      cfg.TextOverflow,
		WhiteSpace:        cfg.WhiteSpace,
		BoxShadow:         cfg.BoxShadow,
		Opacity:           cfg.Opacity,
		ColumnSpan:        cfg.ColumnSpan,
		RowSpan:           cfg.RowSpan,
		ClassName:         cfg.ClassName,
		AdditionalBorders: cfg.AdditionalBorders,
	}
	if cfg.FontWeight != "" {
		if cfg.FontWeight.Valid() {
			partial.FontWeight = cfg.FontWeight
		} else {
			Logger().Warn("忽略无效的 fontWeight", "value", string(cfg.FontWeight))
		}
	}
	return s.Overlay(&partial)
}

// baseStyle 由设计配置生成级联起点；各边边框优先取 defaultXBorder，其次 borderX。
func (d *DesignConfig) baseStyle() CellStyle {
	orBorder := func(primary, fallback *BorderSpec) *BorderSpec {
		if primary != nil {
			return primary.Clone()
		}
		return fallback.Clone()
	}
	return CellStyle{
		FontSize:          clonePtr(d.FontSize),
		FontColor:         clonePtr(d.FontColor),
		BackgroundColor:   clonePtr(d.BackgroundColor),
		BorderColor:       clonePtr(d.BorderColor),
		BorderWidth:       clonePtr(d.BorderWidth),
		FontFamily:        d.FontFamily,
		FontWeight:        d.FontWeight,
		FontStyle:         d.FontStyle,
		Alignment:         d.Alignment,
		Padding:           d.Padding,
		VerticalAlignment: d.VerticalAlignment,
		BorderRadius:      d.BorderRadius,
		WordWrap:          d.WordWrap,
		TopBorder:         orBorder(d.DefaultTopBorder, d.BorderTop),
		RightBorder:       orBorder(d.DefaultRightBorder, d.BorderRight),
		BottomBorder:      orBorder(d.DefaultBottomBorder, d.BorderBottom),
		LeftBorder:        orBorder(d.DefaultLeftBorder, d.BorderLeft),
		AdditionalBorders: cloneAdditional(d.AdditionalBorders),
		TextDecoration:    d.TextDecoration,
		TextTransform:     d.TextTransform,
		TextOverflow:      d.TextOverflow,
		WhiteSpace:        d.WhiteSpace,
		BoxShadow:         d.BoxShadow,
		Opacity:           clonePtr(d.Opacity),
		ColumnSpan:        clonePtr(d.ColumnSpan),
		RowSpan:           clonePtr(d.RowSpan),
		ClassName:         d.ClassName,
	}
}

// StyleResolver 持有设计配置的快照并计算单元格的最终样式。
// 快照在创建时深拷贝，之后对原配置的修改不会影响已有的解析器。
type StyleResolver struct {
	design DesignConfig
	base   CellStyle
}

// NewStyleResolver 以设计配置创建解析器。
func NewStyleResolver(design DesignConfig) *StyleResolver {
	d := design.Clone()
	return &StyleResolver{design: d, base: d.baseStyle()}
}

// Design 返回解析器使用的设计配置副本。
func (r *StyleResolver) Design() DesignConfig { return r.design.Clone() }

// DynamicRowHeight 报告是否按内容计算行高；未设置时默认开启。
func (r *StyleResolver) DynamicRowHeight() bool {
	return r.design.DynamicRowHeight == nil || *r.design.DynamicRowHeight
}

// Resolve 计算 (row, col) 的最终样式；ext 为零值时 last-row / last-column 规则不生效。
func (r *StyleResolver) Resolve(row, col int, explicit *CellStyle, ext Extent) CellStyle {
	d := &r.design
	style := r.base.clone()

	if row == 0 {
		style = style.ApplyConfig(d.HeadingRowStyle).Overlay(d.FirstRowStyle)
	}
	if col == 0 {
		style = style.ApplyConfig(d.HeadingColumnStyle).Overlay(d.FirstColumnStyle)
	}
	if ext.Rows > 0 && row == ext.Rows-1 {
		style = style.Overlay(d.LastRowStyle)
	}
	if ext.Cols > 0 && col == ext.Cols-1 {
		style = style.Overlay(d.LastColumnStyle)
	}
	if d.OddRowStyle != nil && row%2 != 0 {
		style = style.Overlay(d.OddRowStyle)
	} else if d.EvenRowStyle != nil && row%2 == 0 {
		style = style.Overlay(d.EvenRowStyle)
	}
	for _, sc := range d.SpecialCells {
		if sc.Selector.Matches(row, col, ext) {
			style = style.Overlay(&sc.Style)
		}
	}
	return style.Overlay(explicit)
}

// Merge 以 o 中已设置的字段浅覆盖 d，返回新配置（o 的嵌套样式整体替换，不逐字段合并）。
func (d DesignConfig) Merge(o DesignConfig) DesignConfig {
	out := d.Clone()
	o = o.Clone()
	setStr := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setStr(&out.FontFamily, o.FontFamily)
	setStr(&out.BorderRadius, o.BorderRadius)
	setStr(&out.FontStyle, o.FontStyle)
	setStr(&out.BoxShadow, o.BoxShadow)
	setStr(&out.ClassName, o.ClassName)
	if o.FontSize != nil {
		out.FontSize = o.FontSize
	}
	if o.FontColor != nil {
		out.FontColor = o.FontColor
	}
	if o.BackgroundColor != nil {
		out.BackgroundColor = o.BackgroundColor
	}
	if o.BorderColor != nil {
		out.BorderColor = o.BorderColor
	}
	if o.BorderWidth != nil {
		out.BorderWidth = o.BorderWidth
	}
	if o.BorderTop != nil {
		out.BorderTop = o.BorderTop
	}
	if o.BorderRight != nil {
		out.BorderRight = o.BorderRight
	}
	if o.BorderBottom != nil {
		out.BorderBottom = o.BorderBottom
	}
	if o.BorderLeft != nil {
		out.BorderLeft = o.BorderLeft
	}
	if o.HeadingRowStyle != nil {
		out.HeadingRowStyle = o.HeadingRowStyle
	}
	if o.HeadingColumnStyle != nil {
		out.HeadingColumnStyle = o.HeadingColumnStyle
	}
	if o.DefaultTopBorder != nil {
		out.DefaultTopBorder = o.DefaultTopBorder
	}
	if o.DefaultRightBorder != nil {
		out.DefaultRightBorder = o.DefaultRightBorder
	}
	if o.DefaultBottomBorder != nil {
		out.DefaultBottomBorder = o.DefaultBottomBorder
	}
	if o.DefaultLeftBorder != nil {
		out.DefaultLeftBorder = o.DefaultLeftBorder
	}
	if o.AdditionalBorders != nil {
		out.AdditionalBorders = o.AdditionalBorders
	}
	if o.Padding != "" {
		out.Padding = o.Padding
	}
	if o.VerticalAlignment != "" {
		out.VerticalAlignment = o.VerticalAlignment
	}
	if o.FontWeight != "" {
		out.FontWeight = o.FontWeight
	}
	if o.Alignment != "" {
		out.Alignment = o.Alignment
	}
	if o.SpecialCells != nil {
		out.SpecialCells = o.SpecialCells
	}
	if o.EvenRowStyle != nil {
		out.EvenRowStyle = o.EvenRowStyle
	}
	if o.OddRowStyle != nil {
		out.OddRowStyle = o.OddRowStyle
	}
	if o.FirstRowStyle != nil {
		out.FirstRowStyle = o.FirstRowStyle
	}
	if o.LastRowStyle != nil {
		out.LastRowStyle = o.LastRowStyle
	}
	if o.FirstColumnStyle != nil {
		out.FirstColumnStyle = o.FirstColumnStyle
	}
	if o.LastColumnStyle != nil {
		out.LastColumnStyle = o.LastColumnStyle
	}
	if o.WordWrap != "" {
		out.WordWrap = o.WordWrap
	}
	if o.DynamicRowHeight != nil {
		out.DynamicRowHeight = o.DynamicRowHeight
	}
	if o.TextDecoration != "" {
		out.TextDecoration = o.TextDecoration
	}
	if o.TextTransform != "" {
		out.TextTransform = o.TextTransform
	}
	if o.TextOverflow != "" {
		out.TextOverflow = o.TextOverflow
	}
	if o.WhiteSpace != "" {
		out.WhiteSpace = o.WhiteSpace
	}
	if o.Opacity != nil {
		out.Opacity = o.Opacity
	}
	if o.ColumnSpan != nil {
		out.ColumnSpan = o.ColumnSpan
	}
	if o.RowSpan != nil {
		out.RowSpan = o.RowSpan
	}
	return out
}

// Clone 深拷贝设计配置。
func (d DesignConfig) Clone() DesignConfig {
	out := d
	out.FontSize = clonePtr(d.FontSize)
	out.FontColor = clonePtr(d.FontColor)
	out.BackgroundColor = clonePtr(d.BackgroundColor)
	out.BorderColor = clonePtr(d.BorderColor)
	out.BorderWidth = clonePtr(d.BorderWidth)
	out.BorderTop = d.BorderTop.Clone()
	out.BorderRight = d.BorderRight.Clone()
	out.BorderBottom = d.BorderBottom.Clone()
	out.BorderLeft = d.BorderLeft.Clone()
	if d.HeadingRowStyle != nil {
		h := d.HeadingRowStyle.Clone()
		out.HeadingRowStyle = &h
	}
	if d.HeadingColumnStyle != nil {
		h := d.HeadingColumnStyle.Clone()
		out.HeadingColumnStyle = &h
	}
	out.DefaultTopBorder = d.DefaultTopBorder.Clone()
	out.DefaultRightBorder = d.DefaultRightBorder.Clone()
	out.DefaultBottomBorder = d.DefaultBottomBorder.Clone()
	out.DefaultLeftBorder = d.DefaultLeftBorder.Clone()
	out.AdditionalBorders = cloneAdditional(d.AdditionalBorders)
	if d.SpecialCells != nil {
		out.SpecialCells = make([]CellSelector, len(d.SpecialCells))
		for i, sc := range d.SpecialCells {
			out.SpecialCells[i] = CellSelector{Selector: sc.Selector, Style: sc.Style.clone()}
		}
	}
	out.EvenRowStyle = cloneStyle(d.EvenRowStyle)
	out.OddRowStyle = cloneStyle(d.OddRowStyle)
	out.FirstRowStyle = cloneStyle(d.FirstRowStyle)
	out.LastRowStyle = cloneStyle(d.LastRowStyle)
	out.FirstColumnStyle = cloneStyle(d.FirstColumnStyle)
	out.LastColumnStyle = cloneStyle(d.LastColumnStyle)
	out.DynamicRowHeight = clonePtr(d.DynamicRowHeight)
	out.Opacity = clonePtr(d.Opacity)
	out.ColumnSpan = clonePtr(d.ColumnSpan)
	out.RowSpan = clonePtr(d.RowSpan)
	return out
}

func cloneStyle(s *CellStyle) *CellStyle {
	if s == nil {
		return nil
	}
	c := s.clone()
	return &c
}
