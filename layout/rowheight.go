package layout

import "math"

// fontSizeOf 返回样式字号，未设置时为 DefaultFontSize。
func fontSizeOf(s CellStyle) float64 {
	if s.FontSize != nil && *s.FontSize > 0 {
		return *s.FontSize
	}
	return DefaultFontSize
}

// RequiredHeight 计算文本在给定宽度内完整显示所需的高度（含上下内边距）。
// wordWrap 为 none 时只占一行；其余情况按可用宽度 width-左右内边距 折行。
func RequiredHeight(text string, width float64, style CellStyle, font Font) float64 {
	fs := fontSizeOf(style)
	pad := style.Padding.Resolve()
	if style.WordWrap == WrapNone {
		return fs + pad.Vertical()
	}
	text = applyTextTransform(text, style.TextTransform)
	lines := 0
	for range NewWrapper(font, fs).Lines(text, width-pad.Horizontal()) {
		lines++
	}
	return float64(lines)*fs*LineSpacing + pad.Vertical()
}

// ComputeRowHeights 计算每一行的高度。
//
// 未开启 dynamicRowHeight 时所有行都是 defaultHeight。开启时，每个锚点单元格按合并后的宽度
// 计算所需高度，平均分摊到所跨越的各行，作为这些行的下限；非锚点的合并单元格不参与计算。
func ComputeRowHeights(g *Grid, merges *MergeSet, defaultHeight, colWidth float64, styles *StyleResolver, font Font) []float64 {
	heights := make([]float64, g.Rows())
	for i := range heights {
		heights[i] = defaultHeight
	}
	if !styles.DynamicRowHeight() {
		return heights
	}
	ext := g.Extent()
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			width := colWidth
			rowCount := 1
			if span, ok := merges.FindSpan(row, col); ok {
				if !span.IsAnchor(row, col) {
					continue
				}
				width = colWidth * float64(span.ColCount())
				rowCount = span.RowCount()
			}
			style := styles.Resolve(row, col, g.explicit(row, col), ext)
			perRow := RequiredHeight(g.content(row, col), width, style, font) / float64(rowCount)
			for r := row; r < row+rowCount && r < len(heights); r++ {
				heights[r] = math.Max(heights[r], perRow)
			}
		}
	}
	return heights
}
