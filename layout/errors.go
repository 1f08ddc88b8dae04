package layout

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds 表示单元格坐标越界。
	ErrOutOfBounds = errors.New("单元格坐标越界")
	// ErrMergeConflict 表示合并区域的角点已被其他合并区域占用。
	ErrMergeConflict = errors.New("单元格已属于其他合并区域")
	// ErrInvalidSpan 表示合并区域起止坐标颠倒或为负。
	ErrInvalidSpan = errors.New("合并区域无效")
	// ErrInvalidCoordinates 表示嵌入起点为负。
	ErrInvalidCoordinates = errors.New("嵌入坐标无效")
	// ErrInvalidFont 表示自定义字体数据不是合法的 Base64。
	ErrInvalidFont = errors.New("字体数据无效")
	// ErrUnknownPreset 表示找不到指定名称的预设设计。
	ErrUnknownPreset = errors.New("未知的预设设计")
	// ErrInvalidSelector 表示 specialCells 选择器无法解析。
	ErrInvalidSelector = errors.New("选择器无效")
	// ErrInvalidDash 表示虚线图案含负值或总长过小。
	ErrInvalidDash = errors.New("虚线图案无效")
)

// BoundsError 记录越界访问的坐标与当前表格尺寸。
type BoundsError struct {
	Row, Col   int
	Rows, Cols int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("单元格坐标越界: row=%d col=%d（表格 %dx%d）", e.Row, e.Col, e.Rows, e.Cols)
}

// Is 使 errors.Is(err, ErrOutOfBounds) 成立。
func (e *BoundsError) Is(target error) bool { return target == ErrOutOfBounds }

// ConflictError 记录与新合并区域冲突的已有区域及冲突的角点。
type ConflictError struct {
	Existing Span
	Row, Col int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("单元格 (%d,%d) 已属于合并区域 %s", e.Row, e.Col, e.Existing)
}

// Is 使 errors.Is(err, ErrMergeConflict) 成立。
func (e *ConflictError) Is(target error) bool { return target == ErrMergeConflict }
