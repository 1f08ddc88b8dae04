package layout

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const (
	// DefaultRowHeight / DefaultColWidth 是 TableOptions 未指定时的行高与列宽（pt）。
	DefaultRowHeight = 20.0
	DefaultColWidth  = 80.0
)

// TableOptions 描述表格尺寸与分页参数。
// TableWidth / TableHeight 非零时分别覆盖 ColWidth（= TableWidth/Columns）与 RowHeight（= TableHeight/Rows）。
type TableOptions struct {
	Rows               int           `json:"rows" yaml:"rows"`
	Columns            int           `json:"columns" yaml:"columns"`
	RowHeight          float64       `json:"rowHeight,omitempty" yaml:"rowHeight,omitempty"`
	ColWidth           float64       `json:"colWidth,omitempty" yaml:"colWidth,omitempty"`
	TableWidth         float64       `json:"tableWidth,omitempty" yaml:"tableWidth,omitempty"`
	TableHeight        float64       `json:"tableHeight,omitempty" yaml:"tableHeight,omitempty"`
	RepeatHeaderRows   int           `json:"repeatHeaderRows,omitempty" yaml:"repeatHeaderRows,omitempty"`
	HeaderRepetition   *bool         `json:"headerRepetition,omitempty" yaml:"headerRepetition,omitempty"`
	PageBreakThreshold *float64      `json:"pageBreakThreshold,omitempty" yaml:"pageBreakThreshold,omitempty"`
	Design             *DesignConfig `json:"design,omitempty" yaml:"design,omitempty"`
}

// CustomFont 是通过 SetCustomFont 注册的字体文件。
type CustomFont struct {
	Name string
	Data []byte
}

// Table 组合表格数据、合并区域、设计配置与字体，是对外的主要入口。
type Table struct {
	opts   TableOptions
	design DesignConfig
	styles *StyleResolver
	grid   *Grid
	merges MergeSet
	font   *CustomFont
}

// NewTable 创建表格；设计配置以浅合并方式覆盖 DefaultDesign。
func NewTable(opts TableOptions) (*Table, error) {
	if opts.Rows < 0 || opts.Columns < 0 {
		return nil, fmt.Errorf("表格尺寸无效: rows=%d columns=%d", opts.Rows, opts.Columns)
	}
	if opts.RowHeight <= 0 {
		opts.RowHeight = DefaultRowHeight
	}
	if opts.ColWidth <= 0 {
		opts.ColWidth = DefaultColWidth
	}
	grid, err := NewGrid(opts.Rows, opts.Columns)
	if err != nil {
		return nil, err
	}
	design := DefaultDesign()
	if opts.Design != nil {
		design = design.Merge(*opts.Design)
	}
	opts.Design = nil
	t := &Table{opts: opts, grid: grid}
	t.setDesign(design)
	return t, nil
}

func (t *Table) setDesign(d DesignConfig) {
	t.design = d
	t.styles = NewStyleResolver(d)
}

// Rows / Cols 返回当前行列数。
func (t *Table) Rows() int { return t.grid.Rows() }
func (t *Table) Cols() int { return t.grid.Cols() }

// Grid 返回底层表格数据。
func (t *Table) Grid() *Grid { return t.grid }

func (t *Table) SetCell(row, col int, value string) error { return t.grid.SetCell(row, col, value) }

func (t *Table) Cell(row, col int) (string, error) { return t.grid.Cell(row, col) }

func (t *Table) SetCellStyle(row, col int, style CellStyle) error {
	return t.grid.SetStyle(row, col, style)
}

// RawCellStyle 返回单元格的显式样式（不经过级联）。
func (t *Table) RawCellStyle(row, col int) (CellStyle, error) { return t.grid.Style(row, col) }

// CellStyle 返回级联后的最终样式，末行 / 末列规则按当前尺寸生效。
func (t *Table) CellStyle(row, col int) (CellStyle, error) {
	if err := t.grid.Validate(row, col); err != nil {
		return CellStyle{}, err
	}
	return t.styles.Resolve(row, col, t.grid.explicit(row, col), t.grid.Extent()), nil
}

func (t *Table) RemoveCell(row, col int) error { return t.grid.RemoveCell(row, col) }

func (t *Table) AddRow() { t.grid.AddRow() }

func (t *Table) AddColumn() { t.grid.AddColumn() }

// RemoveRow 删除行并同步调整合并区域。
func (t *Table) RemoveRow(row int) error {
	if err := t.grid.RemoveRow(row); err != nil {
		return err
	}
	t.merges.RemoveRow(row)
	return nil
}

// RemoveColumn 删除列并同步调整合并区域。
func (t *Table) RemoveColumn(col int) error {
	if err := t.grid.RemoveColumn(col); err != nil {
		return err
	}
	t.merges.RemoveColumn(col)
	return nil
}

// MergeCells 合并 (startRow,startCol)-(endRow,endCol)，两个角点都必须在表格内。
func (t *Table) MergeCells(startRow, startCol, endRow, endCol int) error {
	if err := t.grid.Validate(startRow, startCol); err != nil {
		return err
	}
	if err := t.grid.Validate(endRow, endCol); err != nil {
		return err
	}
	return t.merges.Add(Span{StartRow: startRow, StartCol: startCol, EndRow: endRow, EndCol: endCol})
}

// MergedCells 返回合并区域列表副本。
func (t *Table) MergedCells() []Span { return t.merges.Spans() }

// Merges 返回合并区域集合。
func (t *Table) Merges() *MergeSet { return &t.merges }

// Design 返回当前设计配置副本。
func (t *Table) Design() DesignConfig { return t.design.Clone() }

// ApplyDesignConfig 把 cfg 浅合并到当前设计上，并重建样式解析器。
func (t *Table) ApplyDesignConfig(cfg DesignConfig) {
	t.setDesign(t.design.Merge(cfg))
}

// ApplyPreset 以预设设计整体替换当前设计。
func (t *Table) ApplyPreset(name string) error {
	d, err := Preset(name)
	if err != nil {
		return err
	}
	t.setDesign(d)
	return nil
}

// RowHeight 返回配置的默认行高。
func (t *Table) RowHeight() float64 { return t.opts.RowHeight }

// SetRowHeight 设置所有行的默认行高。
func (t *Table) SetRowHeight(h float64) {
	if h > 0 {
		t.opts.RowHeight = h
		t.opts.TableHeight = 0
	}
}

// SetMinRowHeight 只在 h 大于当前行高时提高默认行高。
func (t *Table) SetMinRowHeight(h float64) {
	if h > t.cellSize().row {
		t.SetRowHeight(h)
	}
}

// SetCustomFont 注册 Base64 编码的字体文件，允许带 data URL 前缀。
func (t *Table) SetCustomFont(name, data string) error {
	raw := strings.TrimSpace(data)
	if rest, ok := strings.CutPrefix(raw, "data:"); ok {
		_, payload, found := strings.Cut(rest, ";base64,")
		if !found {
			return fmt.Errorf("%w: data URL 缺少 base64 标记", ErrInvalidFont)
		}
		raw = payload
	}
	b, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(b) == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidFont, name)
	}
	t.font = &CustomFont{Name: name, Data: b}
	return nil
}

type cellMetrics struct{ row, col float64 }

func (t *Table) cellSize() cellMetrics {
	s := cellMetrics{row: t.opts.RowHeight, col: t.opts.ColWidth}
	if t.opts.TableWidth > 0 && t.grid.Cols() > 0 {
		s.col = t.opts.TableWidth / float64(t.grid.Cols())
	}
	if t.opts.TableHeight > 0 && t.grid.Rows() > 0 {
		s.row = t.opts.TableHeight / float64(t.grid.Rows())
	}
	return s
}

func (t *Table) renderOptions() RenderOptions {
	s := t.cellSize()
	return RenderOptions{
		RowHeight:          s.row,
		ColWidth:           s.col,
		RepeatHeaderRows:   t.opts.RepeatHeaderRows,
		HeaderRepetition:   t.opts.HeaderRepetition,
		PageBreakThreshold: t.opts.PageBreakThreshold,
	}
}

func (t *Table) embedFont(doc Document) (Font, error) {
	src := FontSource{Name: StandardHelvetica, Standard: StandardHelvetica}
	if t.font != nil {
		src = FontSource{Name: t.font.Name, Data: t.font.Data}
	}
	f, err := doc.EmbedFont(src)
	if err != nil {
		return nil, fmt.Errorf("嵌入字体 %s 失败: %w", src.Name, err)
	}
	return f, nil
}

// Render 在文档末尾新开一页开始绘制整张表格。
func (t *Table) Render(doc Document) (*Result, error) {
	font, err := t.embedFont(doc)
	if err != nil {
		return nil, err
	}
	return NewEngine(t.styles).Render(doc, font, t.grid, &t.merges, t.renderOptions())
}

// EmbedIn 从文档最后一页的 (startX, startY) 处继续绘制；文档没有页面时先添加一页。
// startY 为 0 表示从页面顶部留白处开始。
func (t *Table) EmbedIn(doc Document, startX, startY float64) (*Result, error) {
	if startX < 0 || startY < 0 {
		return nil, fmt.Errorf("%w: (%v, %v)", ErrInvalidCoordinates, startX, startY)
	}
	font, err := t.embedFont(doc)
	if err != nil {
		return nil, err
	}
	if doc.PageCount() == 0 {
		doc.AddPage()
	}
	if startY == 0 {
		startY = doc.Page(doc.PageCount()-1).Size().Height - DefaultPageMargin
	}
	opts := t.renderOptions()
	opts.StartX = &startX
	opts.StartY = &startY
	opts.UseExistingPages = true
	return NewEngine(t.styles).Render(doc, font, t.grid, &t.merges, opts)
}
