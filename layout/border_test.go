package layout

import (
	"errors"
	"math"
	"testing"

	"gopkg.in/yaml.v3"
)

func segsEqual(a, b []Segment) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i].Start-b[i].Start) > 1e-9 || math.Abs(a[i].End-b[i].End) > 1e-9 {
			return false
		}
	}
	return true
}

// [4,2] 相位 3：首段只剩 1 个单位，之后按 2 间隔 / 4 线段交替。
func TestDashSegmentsPhase(t *testing.T) {
	got := DashSegments(20, []float64{4, 2}, 3)
	want := []Segment{{0, 1}, {3, 7}, {9, 13}, {15, 19}}
	if !segsEqual(got, want) {
		t.Fatalf("虚线区间错误: got=%v want=%v", got, want)
	}
}

func TestDashSegmentsEdgeCases(t *testing.T) {
	// 奇数长度重复一次：[3] → [3,3]
	if got := DashSegments(10, []float64{3}, 0); !segsEqual(got, []Segment{{0, 3}, {6, 9}}) {
		t.Fatalf("奇数长度图案错误: %v", got)
	}
	// 全 0 图案画实线
	if got := DashSegments(10, []float64{0, 0}, 0); !segsEqual(got, []Segment{{0, 10}}) {
		t.Fatalf("全 0 图案应画实线: %v", got)
	}
	// 负相位回绕
	if got := DashSegments(6, []float64{4, 2}, -1); !segsEqual(got, []Segment{{1, 5}}) {
		t.Fatalf("负相位错误: %v", got)
	}
	// 相位落在间隔内
	if got := DashSegments(8, []float64{4, 2}, 5); !segsEqual(got, []Segment{{1, 5}, {7, 8}}) {
		t.Fatalf("相位落在间隔内时错误: %v", got)
	}
	if got := DashSegments(0, []float64{4, 2}, 0); got != nil {
		t.Fatalf("长度为 0 不应输出区间: %v", got)
	}
}

func TestPaintCellExplicitSidesOnly(t *testing.T) {
	page := &RecordedPage{PageSize: A4}
	style := CellStyle{
		BorderColor: rgbPtr(255, 0, 0),
		BorderWidth: ptr(2.0),
		TopBorder:   &BorderSpec{},
		LeftBorder:  &BorderSpec{Display: ptr(false)},
	}
	BorderPainter{}.PaintCell(page, 10, 100, 50, 20, style)
	if len(page.Lines) != 1 {
		t.Fatalf("只应绘制显式且可见的上边框，实际 %d 条", len(page.Lines))
	}
	l := page.Lines[0]
	if l.Start != (Point{10, 100}) || l.End != (Point{60, 100}) {
		t.Fatalf("上边框位置错误: %+v", l)
	}
	if l.Color != RGB(1, 0, 0) || l.Thickness != 2 {
		t.Fatalf("上边框应回退到旧式颜色与线宽: %+v", l)
	}
}

func TestPaintCellLegacyFallback(t *testing.T) {
	page := &RecordedPage{PageSize: A4}
	BorderPainter{}.PaintCell(page, 0, 50, 10, 10, CellStyle{BorderColor: rgbPtr(0, 0, 255)})
	if len(page.Lines) != 4 {
		t.Fatalf("四边未设置时应按旧式颜色绘制四边，实际 %d", len(page.Lines))
	}
	for _, l := range page.Lines {
		if l.Thickness != 1 || l.Color != RGB(0, 0, 1) {
			t.Fatalf("旧式边框错误: %+v", l)
		}
	}
	page = &RecordedPage{PageSize: A4}
	BorderPainter{}.PaintCell(page, 0, 50, 10, 10, CellStyle{})
	if len(page.Lines) != 0 {
		t.Fatalf("没有任何边框设置时不应绘制")
	}
}

func TestPaintLineStyles(t *testing.T) {
	page := &RecordedPage{PageSize: A4}
	BorderPainter{}.PaintLine(page, 0, 0, 16, 0, BorderSpec{Style: LineDashed})
	// 默认 5/3：[0,5] [8,13]
	if len(page.Lines) != 2 || page.Lines[1].Start.X != 8 || page.Lines[1].End.X != 13 {
		t.Fatalf("默认虚线错误: %+v", page.Lines)
	}
	page = &RecordedPage{PageSize: A4}
	BorderPainter{}.PaintLine(page, 0, 0, 0, -8, BorderSpec{Style: LineDotted})
	// 默认 2/2，竖线向下
	if len(page.Lines) != 2 || page.Lines[1].Start.Y != -4 || page.Lines[1].End.Y != -6 {
		t.Fatalf("默认点线错误: %+v", page.Lines)
	}
	page = &RecordedPage{PageSize: A4}
	BorderPainter{}.PaintLine(page, 0, 0, 10, 0, BorderSpec{Style: "double"})
	if len(page.Lines) != 0 {
		t.Fatalf("未知线型不应绘制")
	}
	BorderPainter{}.PaintLine(page, 0, 0, 10, 0, BorderSpec{Style: LineSolid, DashArray: []float64{1, 1}})
	if len(page.Lines) != 1 {
		t.Fatalf("实线应忽略 dashArray")
	}
}

// 图案相对线段过短时整条绘制，不会生成海量线段。
func TestDashSegmentsTinyPatternFallsBackToSolid(t *testing.T) {
	want := []Segment{{Start: 0, End: 100}}
	if got := DashSegments(100, []float64{1e-9, 1e-9}, 0); !segsEqual(got, want) {
		t.Fatalf("极小图案应整条绘制，实际 %d 段", len(got))
	}
	if got := DashSegments(500, []float64{1e-4, 1e-4}, 0); !segsEqual(got, []Segment{{Start: 0, End: 500}}) {
		t.Fatalf("重复次数超过上限应整条绘制，实际 %d 段", len(got))
	}
	// 上限以内仍按图案切分
	if got := DashSegments(100, []float64{0.5, 0.5}, 0); len(got) != 100 {
		t.Fatalf("期望 100 段，实际 %d 段", len(got))
	}
}

func TestValidateDashArray(t *testing.T) {
	for _, ok := range [][]float64{nil, {0, 0}, {4, 2}, {0.005, 0.005}} {
		if err := ValidateDashArray(ok); err != nil {
			t.Fatalf("%v 应合法: %v", ok, err)
		}
	}
	for _, bad := range [][]float64{{-1, 2}, {1e-9, 1e-9}, {0.001}, {math.Inf(1), 1}} {
		if err := ValidateDashArray(bad); !errors.Is(err, ErrInvalidDash) {
			t.Fatalf("%v 应返回 ErrInvalidDash，实际 %v", bad, err)
		}
	}

	var spec BorderSpec
	if err := yaml.Unmarshal([]byte("style: dashed\ndashArray: [1e-9, 1e-9]\n"), &spec); !errors.Is(err, ErrInvalidDash) {
		t.Fatalf("YAML 中的极小图案应被拒绝，实际 %v", err)
	}
	var d DesignConfig
	if err := yaml.Unmarshal([]byte("additionalBorders:\n  - yOffset: 4\n    style: {dashArray: [-2, 1]}\n"), &d); !errors.Is(err, ErrInvalidDash) {
		t.Fatalf("附加边框中的负值图案应被拒绝，实际 %v", err)
	}
	if err := yaml.Unmarshal([]byte("borderTop: {style: dashed, dashArray: [4, 2], dashPhase: 1}\n"), &d); err != nil {
		t.Fatalf("合法图案解析失败: %v", err)
	}
	if d.BorderTop == nil || len(d.BorderTop.DashArray) != 2 || d.BorderTop.DashPhase != 1 {
		t.Fatalf("边框解析错误: %+v", d.BorderTop)
	}
}
