package layout

import (
	"strconv"
	"strings"
	"testing"
)

// renderFixed 以固定行高 30、列宽 40 渲染 rows×cols 表格，单元格内容为 "r,c"。
func renderFixed(t *testing.T, doc *Recorder, rows, cols int, merges *MergeSet, opts RenderOptions) *Result {
	t.Helper()
	g := mustGrid(t, rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			_ = g.SetCell(r, c, strconv.Itoa(r)+","+strconv.Itoa(c))
		}
	}
	if opts.RowHeight == 0 {
		opts.RowHeight = 30
	}
	if opts.ColWidth == 0 {
		opts.ColWidth = 40
	}
	styles := NewStyleResolver(DesignConfig{DynamicRowHeight: ptr(false)})
	res, err := NewEngine(styles).Render(doc, namedFont("stub"), g, merges, opts)
	if err != nil {
		t.Fatalf("渲染失败: %v", err)
	}
	return res
}

func batchRows(p PageResult) [][3]int {
	out := make([][3]int, len(p.Batches))
	for i, b := range p.Batches {
		h := 0
		if b.Header {
			h = 1
		}
		out[i] = [3]int{b.StartRow, b.EndRow, h}
	}
	return out
}

// 页高 200：首页从 y=150 开始，放下 0-2 行后剩余 60，第 3 行放不下阈值 50，换页并重绘表头。
func TestRenderPageBreakRepeatsHeader(t *testing.T) {
	doc := NewRecorder(Size{Width: 300, Height: 200})
	res := renderFixed(t, doc, 5, 2, nil, RenderOptions{RepeatHeaderRows: 1})
	if len(res.Pages) != 2 || doc.PageCount() != 2 {
		t.Fatalf("期望 2 页，实际 %d", len(res.Pages))
	}
	if got := batchRows(res.Pages[0]); len(got) != 1 || got[0] != [3]int{0, 2, 0} {
		t.Fatalf("第一页批次错误: %v", got)
	}
	second := res.Pages[1]
	if got := batchRows(second); len(got) != 2 || got[0] != [3]int{0, 0, 1} || got[1] != [3]int{3, 4, 0} {
		t.Fatalf("第二页应先重绘表头再继续: %v", got)
	}
	if second.Batches[0].Top != 150 || second.Batches[1].Top != 120 {
		t.Fatalf("批次位置错误: header=%g body=%g", second.Batches[0].Top, second.Batches[1].Top)
	}
	c := second.Batches[1].Cells[1]
	if c.Row != 3 || c.Col != 1 || c.X != 90 || c.Y != 120 || c.Width != 40 || c.Height != 30 {
		t.Fatalf("单元格位置错误: %+v", c)
	}
	if !second.Batches[0].Cells[0].Header {
		t.Fatalf("重绘的表头单元格应带 Header 标记")
	}
}

func TestRenderHeaderRepetitionDisabled(t *testing.T) {
	doc := NewRecorder(Size{Width: 300, Height: 200})
	res := renderFixed(t, doc, 5, 1, nil, RenderOptions{RepeatHeaderRows: 1, HeaderRepetition: ptr(false)})
	if got := batchRows(res.Pages[1]); len(got) != 1 || got[0] != [3]int{3, 4, 0} {
		t.Fatalf("关闭表头重复后不应重绘表头: %v", got)
	}
}

// 表头块高度为重复行高度之和。
func TestRenderHeaderHeightIsSumOfRows(t *testing.T) {
	doc := NewRecorder(Size{Width: 300, Height: 300})
	res := renderFixed(t, doc, 10, 1, nil, RenderOptions{RepeatHeaderRows: 2})
	if len(res.Pages) < 2 {
		t.Fatalf("期望换页，实际 %d 页", len(res.Pages))
	}
	hb := res.Pages[1].Batches[0]
	if !hb.Header || hb.StartRow != 0 || hb.EndRow != 1 || hb.Height != 60 {
		t.Fatalf("表头批次错误: %+v", hb)
	}
	if body := res.Pages[1].Batches[1]; body.Top != hb.Top-60 {
		t.Fatalf("正文应紧接表头之后: header top=%g body top=%g", hb.Top, body.Top)
	}
}

// 主循环尚未越过表头行时换页不重绘表头，避免表头出现两次。
func TestRenderNoHeaderRepeatWithinHeaderRows(t *testing.T) {
	doc := NewRecorder(Size{Width: 300, Height: 200})
	res := renderFixed(t, doc, 2, 1, nil, RenderOptions{RowHeight: 120, RepeatHeaderRows: 2})
	for _, p := range res.Pages {
		for _, b := range p.Batches {
			if b.Header {
				t.Fatalf("不应出现重复表头: %+v", b)
			}
		}
	}
}

// 单行高度超过整页时仍然完整放置。
func TestRenderOversizedRow(t *testing.T) {
	doc := NewRecorder(Size{Width: 300, Height: 200})
	res := renderFixed(t, doc, 1, 1, nil, RenderOptions{RowHeight: 500})
	placed := 0
	for _, p := range res.Pages {
		for _, b := range p.Batches {
			for _, c := range b.Cells {
				if c.Height != 500 {
					t.Fatalf("超高行不应被拆分: %+v", c)
				}
				placed++
			}
		}
	}
	if placed != 1 {
		t.Fatalf("超高行应恰好放置一次，实际 %d", placed)
	}
}

// 纵向合并跨越换页：本页只计算本批次内的高度，下一页首行补一个延续单元格。
func TestRenderMergeAcrossPages(t *testing.T) {
	var m MergeSet
	if err := m.Add(Span{1, 0, 2, 0}); err != nil {
		t.Fatalf("合并失败: %v", err)
	}
	doc := NewRecorder(Size{Width: 300, Height: 180})
	res := renderFixed(t, doc, 4, 2, &m, RenderOptions{})
	if len(res.Pages) != 2 {
		t.Fatalf("期望 2 页，实际 %d", len(res.Pages))
	}
	first := res.Pages[0].Batches[0]
	if first.EndRow != 1 {
		t.Fatalf("第一页应只包含 0-1 行: %+v", first)
	}
	anchor := first.Cells[2]
	if anchor.Row != 1 || anchor.Col != 0 || anchor.Height != 30 || anchor.Content != "1,0" {
		t.Fatalf("锚点高度应截断到本批次: %+v", anchor)
	}

	next := res.Pages[1].Batches[0]
	cont := next.Cells[0]
	if !cont.Continuation || cont.Row != 2 || cont.Col != 0 || cont.Content != "" || cont.Height != 30 {
		t.Fatalf("延续单元格错误: %+v", cont)
	}
	if other := next.Cells[1]; other.Row != 2 || other.Col != 1 || other.X != 90 {
		t.Fatalf("延续单元格之后的列位置错误: %+v", other)
	}
	for _, txt := range doc.Pages[1].Texts {
		if txt.Text == "1,0" {
			t.Fatalf("锚点内容不应在下一页重复绘制")
		}
	}
}

// 同一批次内的合并：锚点覆盖整块区域，被覆盖的单元格不输出。
func TestRenderMergeWithinBatch(t *testing.T) {
	var m MergeSet
	_ = m.Add(Span{0, 0, 1, 1})
	doc := NewRecorder(A4)
	res := renderFixed(t, doc, 2, 3, &m, RenderOptions{})
	cells := res.Pages[0].Batches[0].Cells
	if len(cells) != 3 {
		t.Fatalf("期望 3 个单元格（锚点 + 两个第 2 列），实际 %d: %+v", len(cells), cells)
	}
	if a := cells[0]; a.Width != 80 || a.Height != 60 {
		t.Fatalf("锚点尺寸错误: %+v", a)
	}
	if c := cells[2]; c.Row != 1 || c.Col != 2 || c.X != 130 {
		t.Fatalf("被合并区域覆盖的列应跳过: %+v", c)
	}
}

func TestRenderUseExistingPages(t *testing.T) {
	doc := NewRecorder(A4)
	doc.AddPage()
	startY := 400.0
	startX := 10.0
	res := renderFixed(t, doc, 2, 1, nil, RenderOptions{UseExistingPages: true, StartX: &startX, StartY: &startY})
	if doc.PageCount() != 1 || res.Pages[0].Index != 0 {
		t.Fatalf("应在已有页面上继续绘制，页数 %d", doc.PageCount())
	}
	c := res.Pages[0].Batches[0].Cells[0]
	if c.X != 10 || c.Y != 400 {
		t.Fatalf("起点错误: %+v", c)
	}
}

func TestRenderRejectsInvalidInput(t *testing.T) {
	g := mustGrid(t, 2, 2)
	e := NewEngine(nil)
	if _, err := e.Render(NewRecorder(A4), namedFont("x"), g, nil, RenderOptions{RowHeight: 0, ColWidth: 10}); err == nil {
		t.Fatalf("行高为 0 应报错")
	}
	var m MergeSet
	_ = m.Add(Span{0, 0, 3, 3})
	if _, err := e.Render(NewRecorder(A4), namedFont("x"), g, &m, RenderOptions{RowHeight: 10, ColWidth: 10}); err == nil {
		t.Fatalf("超出表格的合并区域应报错")
	}
}

// 主循环批次恰好覆盖每一行一次，高度之和等于各行高度之和；重复表头额外计入。
func TestRenderConservesRows(t *testing.T) {
	cases := []struct {
		name       string
		rows, cols int
		pageHeight float64
		repeat     int
		merges     []Span
	}{
		{"single page", 4, 2, 800, 1, nil},
		{"many pages", 30, 3, 260, 1, nil},
		{"two header rows", 25, 2, 300, 2, []Span{{0, 0, 0, 1}}},
		{"span across break", 20, 2, 240, 1, []Span{{3, 0, 6, 0}, {10, 1, 14, 1}}},
		{"no header", 18, 1, 220, 0, []Span{{2, 0, 3, 0}}},
	}
	for _, c := range cases {
		g := mustGrid(t, c.rows, c.cols)
		for r := 0; r < c.rows; r++ {
			// 每行文本长度不同，行高随之变化
			_ = g.SetCell(r, 0, strings.Repeat("abcdefgh ", r%5+1))
		}
		var merges MergeSet
		for _, s := range c.merges {
			if err := merges.Add(s); err != nil {
				t.Fatalf("%s: 合并失败: %v", c.name, err)
			}
		}
		doc := NewRecorder(Size{Width: 400, Height: c.pageHeight})
		res, err := NewEngine(NewStyleResolver(DesignConfig{})).Render(doc, stubFont{advance: 5}, g, &merges,
			RenderOptions{RowHeight: 20, ColWidth: 60, RepeatHeaderRows: c.repeat})
		if err != nil {
			t.Fatalf("%s: 渲染失败: %v", c.name, err)
		}

		want := 0.0
		for _, h := range res.RowHeights {
			want += h
		}
		next, got := 0, 0.0
		for pi, p := range res.Pages {
			for _, b := range p.Batches {
				sum := 0.0
				for r := b.StartRow; r <= b.EndRow; r++ {
					sum += res.RowHeights[r]
				}
				if !approx(b.Height, sum) {
					t.Fatalf("%s: 批次 %d-%d 高度 %g，行高之和 %g", c.name, b.StartRow, b.EndRow, b.Height, sum)
				}
				if b.Header {
					if pi == 0 || b.StartRow != 0 || b.EndRow != c.repeat-1 {
						t.Fatalf("%s: 表头批次错误: page=%d %+v", c.name, pi, b)
					}
					continue
				}
				if b.StartRow != next {
					t.Fatalf("%s: 行 %d 之后应从 %d 继续，实际 %d", c.name, next-1, next, b.StartRow)
				}
				next = b.EndRow + 1
				got += b.Height
			}
		}
		if next != c.rows {
			t.Fatalf("%s: 只放置了 %d/%d 行", c.name, next, c.rows)
		}
		if !approx(got, want) {
			t.Fatalf("%s: 主循环高度之和 %g，期望 %g", c.name, got, want)
		}
	}
}
