package layout

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ByLCY/folio/dsl"
)

// SelectorKind 标识 specialCells 选择器的种类。
type SelectorKind string

const (
	SelectCoordinates SelectorKind = "coordinates"
	SelectFirstRow    SelectorKind = "first-row"
	SelectFirstColumn SelectorKind = "first-column"
	SelectNthRow      SelectorKind = "nth-row"
	SelectNthColumn   SelectorKind = "nth-column"
	SelectLastRow     SelectorKind = "last-row"
	SelectLastColumn  SelectorKind = "last-column"
	SelectEvenRows    SelectorKind = "even-rows"
	SelectOddRows     SelectorKind = "odd-rows"
)

// Selector 是已校验的选择器：coordinates 使用 Row/Col，nth-row / nth-column 使用 Index。
type Selector struct {
	Kind  SelectorKind
	Row   int
	Col   int
	Index int
}

// Matches 判断选择器是否命中 (row, col)。last-row / last-column 需要已知总行列数。
func (s Selector) Matches(row, col int, ext Extent) bool {
	switch s.Kind {
	case SelectCoordinates:
		return row == s.Row && col == s.Col
	case SelectFirstRow:
		return row == 0
	case SelectFirstColumn:
		return col == 0
	case SelectNthRow:
		return row == s.Index
	case SelectNthColumn:
		return col == s.Index
	case SelectLastRow:
		return ext.Rows > 0 && row == ext.Rows-1
	case SelectLastColumn:
		return ext.Cols > 0 && col == ext.Cols-1
	case SelectEvenRows:
		return row%2 == 0
	case SelectOddRows:
		return row%2 != 0
	}
	return false
}

func (s Selector) String() string {
	switch s.Kind {
	case SelectCoordinates:
		return fmt.Sprintf("cell(%d, %d)", s.Row, s.Col)
	case SelectNthRow, SelectNthColumn:
		return fmt.Sprintf("%s(%d)", s.Kind, s.Index)
	}
	return string(s.Kind)
}

// ParseSelector 解析 "first-row"、"nth-row(2)"、"cell(1, 3)" 形式的选择器表达式。
func ParseSelector(expr string) (Selector, error) {
	e, err := dsl.ParseSelector(expr)
	if err != nil {
		return Selector{}, fmt.Errorf("%w: %v", ErrInvalidSelector, err)
	}
	return selectorFromExpr(e)
}

func selectorFromExpr(e *dsl.SelectorExpr) (Selector, error) {
	argc := func(n int) error {
		if len(e.Args) != n {
			return fmt.Errorf("%w: %s 需要 %d 个参数，实际 %d 个", ErrInvalidSelector, e.Name, n, len(e.Args))
		}
		for _, a := range e.Args {
			if a < 0 {
				return fmt.Errorf("%w: %s 的参数不能为负", ErrInvalidSelector, e.Name)
			}
		}
		return nil
	}
	switch kind := SelectorKind(e.Name); kind {
	case SelectCoordinates, "cell":
		if err := argc(2); err != nil {
			return Selector{}, err
		}
		return Selector{Kind: SelectCoordinates, Row: e.Args[0], Col: e.Args[1]}, nil
	case SelectNthRow, SelectNthColumn:
		if err := argc(1); err != nil {
			return Selector{}, err
		}
		return Selector{Kind: kind, Index: e.Args[0]}, nil
	case SelectFirstRow, SelectFirstColumn, SelectLastRow, SelectLastColumn, SelectEvenRows, SelectOddRows:
		if err := argc(0); err != nil {
			return Selector{}, err
		}
		return Selector{Kind: kind}, nil
	default:
		return Selector{}, fmt.Errorf("%w: 未知的选择器 %q", ErrInvalidSelector, e.Name)
	}
}

// CellSelector 是 specialCells 中的一项：命中选择器的单元格叠加 Style。
type CellSelector struct {
	Selector Selector
	Style    CellStyle
}

// UnmarshalYAML 支持两种写法：
//
//	- select: nth-row(2)
//	  style: {...}
//	- selector: coordinates
//	  coordinates: {row: 1, col: 2}
//	  style: {...}
func (c *CellSelector) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Select      string `yaml:"select"`
		Selector    string `yaml:"selector"`
		Index       *int   `yaml:"index"`
		Coordinates *struct {
			Row int `yaml:"row"`
			Col int `yaml:"col"`
		} `yaml:"coordinates"`
		Style CellStyle `yaml:"style"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	var (
		sel Selector
		err error
	)
	switch {
	case raw.Select != "":
		sel, err = ParseSelector(raw.Select)
	case raw.Selector != "":
		e := &dsl.SelectorExpr{Name: raw.Selector}
		switch SelectorKind(raw.Selector) {
		case SelectCoordinates:
			if raw.Coordinates == nil {
				return fmt.Errorf("第 %d 行: %w: coordinates 选择器缺少坐标", node.Line, ErrInvalidSelector)
			}
			e.Args = []int{raw.Coordinates.Row, raw.Coordinates.Col}
		case SelectNthRow, SelectNthColumn:
			if raw.Index == nil {
				return fmt.Errorf("第 %d 行: %w: %s 缺少 index", node.Line, ErrInvalidSelector, raw.Selector)
			}
			e.Args = []int{*raw.Index}
		}
		sel, err = selectorFromExpr(e)
	default:
		err = fmt.Errorf("%w: 缺少 select 或 selector", ErrInvalidSelector)
	}
	if err != nil {
		return fmt.Errorf("第 %d 行: %w", node.Line, err)
	}
	c.Selector = sel
	c.Style = raw.Style
	return nil
}

// MarshalYAML 以 select 表达式输出，便于 Preset 导出后再次读入。
func (c CellSelector) MarshalYAML() (any, error) {
	return struct {
		Select string    `yaml:"select"`
		Style  CellStyle `yaml:"style"`
	}{Select: c.Selector.String(), Style: c.Style}, nil
}
