package layout

import "math"

// 虚线默认的线段 / 间隔长度（pt）。
var (
	DefaultDashedPattern = []float64{5, 3}
	DefaultDottedPattern = []float64{2, 2}
)

// BorderPainter 绘制单元格四边与附加横线。
type BorderPainter struct{}

// Segment 是沿线段参数化长度的一个可见区间 [Start, End]。
type Segment struct {
	Start float64
	End   float64
}

// resolvedBorder 是补齐默认值后可直接绘制的边框。
type resolvedBorder struct {
	color Color
	width float64
	style LineStyle
	dash  []float64
	phase float64
}

// prepare 补齐边框：颜色取 spec → 旧式颜色 → 黑色，线宽取 spec → 旧式线宽 → 1。
func prepare(spec *BorderSpec, legacyColor *Color, legacyWidth float64) (resolvedBorder, bool) {
	if spec == nil && legacyColor == nil {
		return resolvedBorder{}, false
	}
	if spec != nil && !spec.Visible() {
		return resolvedBorder{}, false
	}
	b := resolvedBorder{color: Color{}, width: 1, style: LineSolid}
	switch {
	case spec != nil && spec.Color != nil:
		b.color = spec.Color.Normalize()
	case legacyColor != nil:
		b.color = legacyColor.Normalize()
	}
	switch {
	case spec != nil && spec.Width > 0:
		b.width = spec.Width
	case legacyWidth > 0:
		b.width = legacyWidth
	}
	if spec != nil {
		if spec.Style != "" {
			b.style = spec.Style
		}
		b.dash = spec.DashArray
		b.phase = spec.DashPhase
	}
	return b, true
}

// PaintCell 绘制单元格的四条边，(x, y) 为单元格左上角。
//
// 只要任意一边设置了独立边框，就只绘制显式设置且可见的边；四边都未设置时，
// 若存在旧式 borderColor 则四边都按旧式颜色与线宽绘制。
func (BorderPainter) PaintCell(page Page, x, y, width, height float64, style CellStyle) {
	sides := [4]*BorderSpec{style.TopBorder, style.RightBorder, style.BottomBorder, style.LeftBorder}
	anySide := false
	for _, s := range sides {
		if s != nil {
			anySide = true
			break
		}
	}
	legacyWidth := 0.0
	if style.BorderWidth != nil {
		legacyWidth = *style.BorderWidth
	}
	// 上 右 下 左
	lines := [4][4]float64{
		{x, y, x + width, y},
		{x + width, y, x + width, y - height},
		{x, y - height, x + width, y - height},
		{x, y, x, y - height},
	}
	for i, spec := range sides {
		var (
			b  resolvedBorder
			ok bool
		)
		if anySide {
			if spec == nil {
				continue
			}
			b, ok = prepare(spec, style.BorderColor, legacyWidth)
		} else {
			b, ok = prepare(nil, style.BorderColor, legacyWidth)
		}
		if !ok {
			continue
		}
		l := lines[i]
		paintResolved(page, l[0], l[1], l[2], l[3], b)
	}
}

// PaintLine 以边框规格绘制任意线段，用于附加横线。
func (BorderPainter) PaintLine(page Page, x1, y1, x2, y2 float64, spec BorderSpec) {
	b, ok := prepare(&spec, nil, 0)
	if !ok {
		return
	}
	paintResolved(page, x1, y1, x2, y2, b)
}

func paintResolved(page Page, x1, y1, x2, y2 float64, b resolvedBorder) {
	var pattern []float64
	switch b.style {
	case LineSolid:
	case LineDashed:
		pattern = DefaultDashedPattern
	case LineDotted:
		pattern = DefaultDottedPattern
	default:
		Logger().Debug("未知边框线型，跳过", "style", string(b.style))
		return
	}
	if b.style != LineSolid && len(b.dash) > 0 {
		pattern = b.dash
	}
	line := func(from, to Point) {
		page.DrawLine(LineOptions{Start: from, End: to, Thickness: b.width, Color: b.color})
	}
	start, end := Point{X: x1, Y: y1}, Point{X: x2, Y: y2}
	if pattern == nil {
		line(start, end)
		return
	}
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	ux, uy := dx/length, dy/length
	for _, seg := range DashSegments(length, pattern, b.phase) {
		line(Point{X: x1 + ux*seg.Start, Y: y1 + uy*seg.Start}, Point{X: x1 + ux*seg.End, Y: y1 + uy*seg.End})
	}
}

// effectivePattern 将奇数长度的数组重复一次得到偶数长度，并丢弃负值；总长为 0 时返回 nil。
func effectivePattern(pattern []float64) []float64 {
	arr := make([]float64, 0, len(pattern)*2)
	total := 0.0
	for _, v := range pattern {
		v = math.Max(v, 0)
		arr = append(arr, v)
		total += v
	}
	if total == 0 {
		return nil
	}
	if len(arr)%2 == 1 {
		arr = append(arr, arr...)
	}
	return arr
}

// maxDashRepeats 是单条线段上图案重复次数的上限，超过时整条绘制。
const maxDashRepeats = 1e5

// DashSegments 计算长度为 length 的线段上应绘制的区间。
//
// 偶数下标为线段、奇数下标为间隔。phase 按图案总长取模（负值回绕为正），
// 先跳过完整的图案项，再从剩余偏移处开始交替输出。图案全为 0，
// 或图案相对 length 过短（重复超过 maxDashRepeats 次）时整条绘制。
func DashSegments(length float64, pattern []float64, phase float64) []Segment {
	if length <= 0 {
		return nil
	}
	arr := effectivePattern(pattern)
	if arr == nil {
		return []Segment{{Start: 0, End: length}}
	}
	total := 0.0
	for _, v := range arr {
		total += v
	}
	if length/total > maxDashRepeats {
		return []Segment{{Start: 0, End: length}}
	}
	offset := math.Mod(phase, total)
	if offset < 0 {
		offset += total
	}
	idx := 0
	for offset >= arr[idx] {
		offset -= arr[idx]
		idx = (idx + 1) % len(arr)
	}
	var segs []Segment
	pos := 0.0
	remaining := arr[idx] - offset
	for pos < length {
		next := math.Min(pos+remaining, length)
		if idx%2 == 0 && next > pos {
			segs = append(segs, Segment{Start: pos, End: next})
		}
		pos = next
		idx = (idx + 1) % len(arr)
		remaining = arr[idx]
	}
	return segs
}
