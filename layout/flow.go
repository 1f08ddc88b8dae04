package layout

import "fmt"

const (
	// DefaultStartX 是未指定起点时表格左边缘的 x 坐标（pt）。
	DefaultStartX = 50.0
	// DefaultPageMargin 是页面顶部留白；新页面从 pageHeight-DefaultPageMargin 开始绘制。
	DefaultPageMargin = 50.0
	// DefaultPageBreakThreshold 是开始新一批行所需的最小剩余高度。
	DefaultPageBreakThreshold = 50.0
)

// RenderOptions 控制一次分页渲染。指针字段为 nil 时取默认值。
type RenderOptions struct {
	RowHeight          float64
	ColWidth           float64
	RepeatHeaderRows   int
	HeaderRepetition   *bool
	PageBreakThreshold *float64
	StartX             *float64
	StartY             *float64
	// UseExistingPages 为 true 且文档已有页面时，从最后一页继续绘制。
	UseExistingPages bool
}

// Placement 是一个单元格在页面上的绝对位置，(X, Y) 为左上角。
type Placement struct {
	Row     int       `json:"row"`
	Col     int       `json:"col"`
	X       float64   `json:"x"`
	Y       float64   `json:"y"`
	Width   float64   `json:"width"`
	Height  float64   `json:"height"`
	Content string    `json:"content"`
	Style   CellStyle `json:"style"`
	Header  bool      `json:"isHeader,omitempty"`
	// Continuation 表示锚点位于上一批次的纵向合并区域在本批次顶部的延续部分。
	Continuation bool `json:"continuation,omitempty"`
}

// Batch 是同一页上连续的一段行，Top 为首行上边缘，Height 为各行高度之和。
type Batch struct {
	StartRow int         `json:"startRow"`
	EndRow   int         `json:"endRow"`
	Top      float64     `json:"top"`
	Height   float64     `json:"height"`
	Header   bool        `json:"isHeader,omitempty"`
	Cells    []Placement `json:"cells"`
}

// PageResult 记录在某一页上输出的批次。Index 为文档中的页序号（从 0 开始）。
type PageResult struct {
	Index   int     `json:"index"`
	Size    Size    `json:"size"`
	Batches []Batch `json:"batches"`
}

// Result 是一次渲染的排版记录。
type Result struct {
	RowHeights []float64    `json:"rowHeights"`
	Pages      []PageResult `json:"pages"`
}

// Engine 把表格按行分批排入文档页面。
type Engine struct {
	Styles *StyleResolver
}

// NewEngine 以样式解析器创建引擎。
func NewEngine(styles *StyleResolver) *Engine {
	return &Engine{Styles: styles}
}

// flowState 是一次渲染过程中的游标：当前页与当前 y。
type flowState struct {
	doc    Document
	page   Page
	result *Result
	y      float64
}

func (s *flowState) openPage(p Page, index int) {
	s.page = p
	s.result.Pages = append(s.result.Pages, PageResult{Index: index, Size: p.Size()})
}

func (s *flowState) addPage() {
	p := s.doc.AddPage()
	s.openPage(p, s.doc.PageCount()-1)
	s.y = p.Size().Height - DefaultPageMargin
}

func (s *flowState) emit(b Batch) {
	last := &s.result.Pages[len(s.result.Pages)-1]
	last.Batches = append(last.Batches, b)
}

// Render 计算行高并把全部行绘制到文档中。
//
// 每当剩余空间放不下下一行（y - h < threshold）就换页；换页后若启用了表头重复且主循环已越过表头行，
// 先在新页顶部重绘前 RepeatHeaderRows 行。单行高度超过整页时仍会完整放置，不做行内拆分。
func (e *Engine) Render(doc Document, font Font, grid *Grid, merges *MergeSet, opts RenderOptions) (*Result, error) {
	if grid == nil {
		return nil, fmt.Errorf("表格为空")
	}
	if opts.RowHeight <= 0 || opts.ColWidth <= 0 {
		return nil, fmt.Errorf("行高与列宽必须为正数: rowHeight=%v colWidth=%v", opts.RowHeight, opts.ColWidth)
	}
	for _, s := range merges.Spans() {
		if err := grid.Validate(s.EndRow, s.EndCol); err != nil {
			return nil, fmt.Errorf("合并区域 %s 超出表格范围: %w", s, err)
		}
	}
	styles := e.Styles
	if styles == nil {
		styles = NewStyleResolver(DesignConfig{})
	}
	heights := ComputeRowHeights(grid, merges, opts.RowHeight, opts.ColWidth, styles, font)
	st := &flowState{doc: doc, result: &Result{RowHeights: heights}}

	if opts.UseExistingPages && doc.PageCount() > 0 {
		i := doc.PageCount() - 1
		st.openPage(doc.Page(i), i)
	} else {
		p := doc.AddPage()
		st.openPage(p, doc.PageCount()-1)
	}
	pageHeight := st.page.Size().Height
	startX := valueOr(opts.StartX, DefaultStartX)
	st.y = valueOr(opts.StartY, pageHeight-DefaultPageMargin)
	threshold := valueOr(opts.PageBreakThreshold, DefaultPageBreakThreshold)
	headerOn := opts.HeaderRepetition == nil || *opts.HeaderRepetition
	repeat := min(max(opts.RepeatHeaderRows, 0), grid.Rows())

	lay := batchLayout{
		grid:    grid,
		merges:  merges,
		styles:  styles,
		heights: heights,
		startX:  startX,
		colW:    opts.ColWidth,
	}
	painter := CellPainter{Font: font}
	draw := func(b Batch) {
		for _, c := range b.Cells {
			painter.Paint(st.page, c.X, c.Y, c.Width, c.Height, c.Content, c.Style)
		}
		st.emit(b)
	}
	log := Logger()

	rows := grid.Rows()
	row := 0
	for row < rows {
		if st.y-heights[row] < threshold {
			st.addPage()
			log.Debug("换页", "row", row, "page", st.doc.PageCount()-1)
			if headerOn && repeat > 0 && row >= repeat {
				hb := lay.batch(0, repeat-1, true, st.y)
				draw(hb)
				st.y -= hb.Height
				log.Debug("重复表头", "rows", repeat, "height", hb.Height)
			}
		}
		end, acc := row, heights[row]
		for end+1 < rows && st.y-acc-heights[end+1] >= threshold {
			end++
			acc += heights[end]
		}
		b := lay.batch(row, end, false, st.y)
		draw(b)
		log.Debug("输出批次", "start", row, "end", end, "top", st.y, "height", acc)
		st.y -= acc
		row = end + 1
	}
	return st.result, nil
}

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// occupied 记录本批次中被上方纵向合并覆盖的列。
type occupied struct {
	col    int
	endRow int
	width  float64
}

type batchLayout struct {
	grid    *Grid
	merges  *MergeSet
	styles  *StyleResolver
	heights []float64
	startX  float64
	colW    float64
}

// spanHeight 返回从 row 到 min(endRow, batchEnd) 的行高之和。
func (l *batchLayout) spanHeight(row, endRow, batchEnd int) float64 {
	h := 0.0
	for r := row; r <= min(endRow, batchEnd); r++ {
		h += l.heights[r]
	}
	return h
}

// batch 计算 [start, end] 行的单元格位置，top 为首行上边缘。
func (l *batchLayout) batch(start, end int, header bool, top float64) Batch {
	b := Batch{StartRow: start, EndRow: end, Top: top, Header: header}
	ext := l.grid.Extent()
	y := top
	var occ []occupied
	style := func(row, col int) CellStyle {
		return l.styles.Resolve(row, col, l.grid.explicit(row, col), ext)
	}
	place := func(row, col int, x, w, h float64, content string, s CellStyle, cont bool) {
		b.Cells = append(b.Cells, Placement{
			Row: row, Col: col, X: x, Y: y, Width: w, Height: h,
			Content:      content,
			Style:        s,
			Header:       header,
			Continuation: cont,
		})
	}
	for r := start; r <= end; r++ {
		x := l.startX
		col := 0
	cols:
		for col < l.grid.Cols() {
			for _, o := range occ {
				if o.col == col && r <= o.endRow {
					x += o.width
					col++
					continue cols
				}
			}
			span, merged := l.merges.FindSpan(r, col)
			if merged && !span.IsAnchor(r, col) {
				// 锚点在上一批次的纵向合并：在本批次首行补一个空内容的延续单元格
				if r == start && span.StartRow < start && col == span.StartCol {
					w := l.colW * float64(span.ColCount())
					place(r, col, x, w, l.spanHeight(r, span.EndRow, end), "", style(span.StartRow, span.StartCol), true)
					if span.EndRow > r {
						occ = append(occ, occupied{col: col, endRow: span.EndRow, width: w})
					}
					x += w
					col = span.EndCol + 1
					continue
				}
				col++
				continue
			}
			if merged {
				w := l.colW * float64(span.ColCount())
				place(r, col, x, w, l.spanHeight(r, span.EndRow, end), l.grid.content(r, col), style(r, col), false)
				if span.EndRow > r {
					occ = append(occ, occupied{col: col, endRow: span.EndRow, width: w})
				}
				x += w
				col = span.EndCol + 1
				continue
			}
			place(r, col, x, l.colW, l.heights[r], l.grid.content(r, col), style(r, col), false)
			x += l.colW
			col++
		}
		b.Height += l.heights[r]
		y -= l.heights[r]
	}
	return b
}
