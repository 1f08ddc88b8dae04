package layout

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	ellipsis = "..."

	// 文字装饰线相对基线的偏移与线宽（相对字号）。
	underlineOffset   = -0.15
	lineThroughOffset = 0.35
	decorationWeight  = 0.075
)

// applyTextTransform 按 textTransform 转换大小写；capitalize 只改写每个单词的首字母。
func applyTextTransform(text string, t TextTransform) string {
	switch t {
	case TransformUppercase:
		return cases.Upper(language.Und).String(text)
	case TransformLowercase:
		return cases.Lower(language.Und).String(text)
	case TransformCapitalize:
		return cases.Title(language.Und, cases.NoLower).String(text)
	}
	return text
}

// CellPainter 负责绘制单个单元格：背景、文字、装饰线、边框与附加横线。
type CellPainter struct {
	Font    Font
	Borders BorderPainter
}

// Paint 在 (x, y) 为左上角、宽 width 高 height 的区域内绘制单元格。
func (p CellPainter) Paint(page Page, x, y, width, height float64, text string, style CellStyle) {
	pad := style.Padding.Resolve()

	if style.BackgroundColor != nil {
		opacity := 1.0
		if style.Opacity != nil {
			opacity = *style.Opacity
		}
		bg := style.BackgroundColor.Normalize()
		page.DrawRectangle(RectOptions{X: x, Y: y - height, Width: width, Height: height, Color: &bg, Opacity: opacity})
	}

	display := applyTextTransform(text, style.TextTransform)
	fs := fontSizeOf(style)
	color := Color{}
	if style.FontColor != nil {
		color = style.FontColor.Normalize()
	}
	measure := func(s string) float64 { return MeasureWidth(p.Font, s, fs) }
	alignX := func(lineWidth float64) float64 {
		switch style.Alignment {
		case AlignCenter:
			return x + (width-lineWidth)/2
		case AlignRight:
			return x + width - lineWidth - pad.Right
		}
		return x + pad.Left
	}
	draw := func(line string, tx, ty, lineWidth float64) {
		page.DrawText(line, TextOptions{X: tx, Y: ty, Size: fs, Font: p.Font, Color: color})
		p.decorate(page, style.TextDecoration, tx, ty, lineWidth, fs, color)
	}
	avail := width - pad.Horizontal()

	if style.WordWrap == WrapNone {
		shown := display
		tw := measure(shown)
		if style.TextOverflow == OverflowEllipsis && tw > avail {
			shown = truncateWithEllipsis(display, avail, measure)
			tw = measure(shown)
		}
		ty := y - height + (height-fs)/2
		switch style.VerticalAlignment {
		case VAlignTop:
			ty = y - pad.Top - fs
		case VAlignBottom:
			ty = y - height + pad.Bottom
		}
		draw(shown, alignX(tw), ty, tw)
	} else {
		lines := NewWrapper(p.Font, fs).Wrap(display, avail)
		lh := fs * LineSpacing
		total := float64(len(lines)) * lh
		startY := y - (height-total)/2
		switch style.VerticalAlignment {
		case VAlignTop:
			startY = y - pad.Top
		case VAlignBottom:
			startY = y - height + pad.Bottom + total
		}
		for i, line := range lines {
			lw := measure(line)
			draw(line, alignX(lw), startY-float64(i)*lh-fs, lw)
		}
	}

	if style.BorderColor != nil && style.BorderWidth != nil && *style.BorderWidth != 0 &&
		style.TopBorder == nil && style.RightBorder == nil && style.BottomBorder == nil && style.LeftBorder == nil {
		bc := style.BorderColor.Normalize()
		page.DrawRectangle(RectOptions{X: x, Y: y - height, Width: width, Height: height, BorderColor: &bc, BorderWidth: *style.BorderWidth})
	} else {
		p.Borders.PaintCell(page, x, y, width, height, style)
	}

	for _, ab := range style.AdditionalBorders {
		yy := y - ab.YOffset
		p.Borders.PaintLine(page, x, yy, x+width, yy, ab.Style)
	}
}

func (p CellPainter) decorate(page Page, deco TextDecoration, tx, ty, lineWidth, fs float64, color Color) {
	var dy float64
	switch deco {
	case DecorationUnderline:
		dy = underlineOffset * fs
	case DecorationLineThrough:
		dy = lineThroughOffset * fs
	default:
		return
	}
	page.DrawLine(LineOptions{
		Start:     Point{X: tx, Y: ty + dy},
		End:       Point{X: tx + lineWidth, Y: ty + dy},
		Thickness: fs * decorationWeight,
		Color:     color,
	})
}

// truncateWithEllipsis 逐字符截断，直到 "截断文本..." 不超过 avail 或文本被截空。
func truncateWithEllipsis(text string, avail float64, measure func(string) float64) string {
	runes := []rune(text)
	width := measure(text)
	for width > avail && len(runes) > 0 {
		runes = runes[:len(runes)-1]
		width = measure(string(runes) + ellipsis)
	}
	return string(runes) + ellipsis
}
