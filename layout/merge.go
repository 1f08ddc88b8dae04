package layout

import "fmt"

// Span 是闭区间的合并区域，左上角为锚点单元格。
type Span struct {
	StartRow int `json:"startRow" yaml:"startRow"`
	StartCol int `json:"startCol" yaml:"startCol"`
	EndRow   int `json:"endRow" yaml:"endRow"`
	EndCol   int `json:"endCol" yaml:"endCol"`
}

// Contains 判断 (row, col) 是否落在区域内。
func (s Span) Contains(row, col int) bool {
	return row >= s.StartRow && row <= s.EndRow && col >= s.StartCol && col <= s.EndCol
}

// IsAnchor 判断 (row, col) 是否为锚点。
func (s Span) IsAnchor(row, col int) bool {
	return row == s.StartRow && col == s.StartCol
}

// RowCount / ColCount 返回跨越的行数与列数。
func (s Span) RowCount() int { return s.EndRow - s.StartRow + 1 }
func (s Span) ColCount() int { return s.EndCol - s.StartCol + 1 }

func (s Span) String() string {
	return fmt.Sprintf("[(%d,%d)-(%d,%d)]", s.StartRow, s.StartCol, s.EndRow, s.EndCol)
}

func (s Span) valid() bool {
	return s.StartRow >= 0 && s.StartCol >= 0 && s.EndRow >= s.StartRow && s.EndCol >= s.StartCol
}

// MergeSet 按插入顺序保存合并区域。
//
// 新区域只检查两个角点 (StartRow,StartCol) 与 (EndRow,EndCol) 是否已被占用，
// 角点之外的部分重叠不会被拒绝；查询时按插入顺序取第一个包含该坐标的区域。
type MergeSet struct {
	spans []Span
}

// Add 登记合并区域。
func (m *MergeSet) Add(s Span) error {
	if !s.valid() {
		return fmt.Errorf("%w: %s", ErrInvalidSpan, s)
	}
	for _, corner := range [2][2]int{{s.StartRow, s.StartCol}, {s.EndRow, s.EndCol}} {
		if existing, ok := m.FindSpan(corner[0], corner[1]); ok {
			return &ConflictError{Existing: existing, Row: corner[0], Col: corner[1]}
		}
	}
	m.spans = append(m.spans, s)
	return nil
}

// FindSpan 返回第一个包含 (row, col) 的区域。
func (m *MergeSet) FindSpan(row, col int) (Span, bool) {
	if m == nil {
		return Span{}, false
	}
	for _, s := range m.spans {
		if s.Contains(row, col) {
			return s, true
		}
	}
	return Span{}, false
}

// Spans 返回区域列表的副本。
func (m *MergeSet) Spans() []Span {
	if m == nil {
		return nil
	}
	return append([]Span(nil), m.spans...)
}

// Len 返回区域数量。
func (m *MergeSet) Len() int {
	if m == nil {
		return 0
	}
	return len(m.spans)
}

// RemoveRow 同步表格删除行：跨越该行的区域收缩一行，之后的区域上移，收缩为单个单元格的区域被丢弃。
func (m *MergeSet) RemoveRow(row int) {
	m.filter(func(s Span) (Span, bool) {
		switch {
		case row < s.StartRow:
			s.StartRow--
			s.EndRow--
		case row <= s.EndRow:
			if s.RowCount() == 1 {
				return s, false
			}
			s.EndRow--
		}
		return s, true
	})
}

// RemoveColumn 与 RemoveRow 相同，作用于列。
func (m *MergeSet) RemoveColumn(col int) {
	m.filter(func(s Span) (Span, bool) {
		switch {
		case col < s.StartCol:
			s.StartCol--
			s.EndCol--
		case col <= s.EndCol:
			if s.ColCount() == 1 {
				return s, false
			}
			s.EndCol--
		}
		return s, true
	})
}

func (m *MergeSet) filter(fn func(Span) (Span, bool)) {
	kept := m.spans[:0]
	for _, s := range m.spans {
		if ns, ok := fn(s); ok && (ns.RowCount() > 1 || ns.ColCount() > 1) {
			kept = append(kept, ns)
		}
	}
	m.spans = kept
}
