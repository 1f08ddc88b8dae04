package layout

import "fmt"

// Grid 以行优先的扁平缓冲区保存单元格内容与显式样式，两者始终同尺寸。
// 所有访问都先做边界检查，越界时返回 *BoundsError 且不做任何修改。
type Grid struct {
	rows, cols int
	cells      []string
	styles     []*CellStyle
}

// NewGrid 创建 rows×cols 的空表格。
func NewGrid(rows, cols int) (*Grid, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("表格尺寸无效: %dx%d", rows, cols)
	}
	return &Grid{
		rows:   rows,
		cols:   cols,
		cells:  make([]string, rows*cols),
		styles: make([]*CellStyle, rows*cols),
	}, nil
}

// Rows 返回行数。
func (g *Grid) Rows() int { return g.rows }

// Cols 返回列数。
func (g *Grid) Cols() int { return g.cols }

// Extent 返回当前尺寸，供样式解析判断末行 / 末列。
func (g *Grid) Extent() Extent { return Extent{Rows: g.rows, Cols: g.cols} }

// Validate 检查坐标是否在 [0, rows) × [0, cols) 内。
func (g *Grid) Validate(row, col int) error {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return &BoundsError{Row: row, Col: col, Rows: g.rows, Cols: g.cols}
	}
	return nil
}

func (g *Grid) index(row, col int) int { return row*g.cols + col }

// SetCell 写入单元格文本。
func (g *Grid) SetCell(row, col int, value string) error {
	if err := g.Validate(row, col); err != nil {
		return err
	}
	g.cells[g.index(row, col)] = value
	return nil
}

// Cell 读取单元格文本。
func (g *Grid) Cell(row, col int) (string, error) {
	if err := g.Validate(row, col); err != nil {
		return "", err
	}
	return g.cells[g.index(row, col)], nil
}

// SetStyle 设置单元格的显式样式（保存副本）。
func (g *Grid) SetStyle(row, col int, style CellStyle) error {
	if err := g.Validate(row, col); err != nil {
		return err
	}
	s := CellStyle{}.Overlay(&style)
	g.styles[g.index(row, col)] = &s
	return nil
}

// Style 返回单元格的显式样式副本；未设置时返回零值。
func (g *Grid) Style(row, col int) (CellStyle, error) {
	if err := g.Validate(row, col); err != nil {
		return CellStyle{}, err
	}
	return CellStyle{}.Overlay(g.styles[g.index(row, col)]), nil
}

// explicit 供引擎内部读取，调用方保证坐标合法。
func (g *Grid) explicit(row, col int) *CellStyle { return g.styles[g.index(row, col)] }

func (g *Grid) content(row, col int) string { return g.cells[g.index(row, col)] }

// RemoveCell 清空单元格文本与样式。
func (g *Grid) RemoveCell(row, col int) error {
	if err := g.Validate(row, col); err != nil {
		return err
	}
	i := g.index(row, col)
	g.cells[i] = ""
	g.styles[i] = nil
	return nil
}

// AddRow 在末尾追加一行。
func (g *Grid) AddRow() {
	g.cells = append(g.cells, make([]string, g.cols)...)
	g.styles = append(g.styles, make([]*CellStyle, g.cols)...)
	g.rows++
}

// AddColumn 在末尾追加一列。
func (g *Grid) AddColumn() {
	g.reshape(g.cols+1, func(col int) (int, bool) { return col, col < g.cols })
}

// RemoveRow 删除指定行。
func (g *Grid) RemoveRow(row int) error {
	if row < 0 || row >= g.rows {
		return &BoundsError{Row: row, Col: 0, Rows: g.rows, Cols: g.cols}
	}
	start, end := row*g.cols, (row+1)*g.cols
	g.cells = append(g.cells[:start], g.cells[end:]...)
	g.styles = append(g.styles[:start], g.styles[end:]...)
	g.rows--
	return nil
}

// RemoveColumn 删除指定列。
func (g *Grid) RemoveColumn(col int) error {
	if col < 0 || col >= g.cols {
		return &BoundsError{Row: 0, Col: col, Rows: g.rows, Cols: g.cols}
	}
	g.reshape(g.cols-1, func(c int) (int, bool) {
		if c >= col {
			return c + 1, true
		}
		return c, true
	})
	return nil
}

// reshape 以新的列数重建缓冲区，source 把新列号映射到旧列号（false 表示新列为空）。
func (g *Grid) reshape(cols int, source func(col int) (int, bool)) {
	cells := make([]string, g.rows*cols)
	styles := make([]*CellStyle, g.rows*cols)
	for r := 0; r < g.rows; r++ {
		for c := 0; c < cols; c++ {
			old, ok := source(c)
			if !ok {
				continue
			}
			cells[r*cols+c] = g.cells[g.index(r, old)]
			styles[r*cols+c] = g.styles[g.index(r, old)]
		}
	}
	g.cells, g.styles, g.cols = cells, styles, cols
}
