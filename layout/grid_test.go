package layout

import (
	"errors"
	"testing"
)

func mustGrid(t *testing.T, rows, cols int) *Grid {
	t.Helper()
	g, err := NewGrid(rows, cols)
	if err != nil {
		t.Fatalf("创建表格失败: %v", err)
	}
	return g
}

func TestGridBoundsChecked(t *testing.T) {
	g := mustGrid(t, 2, 3)
	cases := [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 3}}
	for _, c := range cases {
		err := g.SetCell(c[0], c[1], "x")
		if !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("(%d,%d) 应返回越界错误，实际 %v", c[0], c[1], err)
		}
		var be *BoundsError
		if !errors.As(err, &be) || be.Rows != 2 || be.Cols != 3 {
			t.Fatalf("越界错误应携带表格尺寸，实际 %+v", be)
		}
	}
	if _, err := NewGrid(-1, 2); err == nil {
		t.Fatalf("负尺寸应报错")
	}
}

func TestGridSetAndRemove(t *testing.T) {
	g := mustGrid(t, 2, 2)
	if err := g.SetCell(1, 1, "hello"); err != nil {
		t.Fatalf("写入失败: %v", err)
	}
	if v, _ := g.Cell(1, 1); v != "hello" {
		t.Fatalf("读取内容错误: %q", v)
	}
	size := 14.0
	_ = g.SetStyle(1, 1, CellStyle{FontSize: &size})
	size = 99
	st, _ := g.Style(1, 1)
	if st.FontSize == nil || *st.FontSize != 14 {
		t.Fatalf("样式应保存副本，实际 %+v", st.FontSize)
	}
	if err := g.RemoveCell(1, 1); err != nil {
		t.Fatalf("清空失败: %v", err)
	}
	v, _ := g.Cell(1, 1)
	st, _ = g.Style(1, 1)
	if v != "" || st.FontSize != nil {
		t.Fatalf("清空后内容与样式应为空: %q %+v", v, st)
	}
}

func TestGridAddRemoveRowsAndColumns(t *testing.T) {
	g := mustGrid(t, 2, 2)
	_ = g.SetCell(0, 0, "a")
	_ = g.SetCell(0, 1, "b")
	_ = g.SetCell(1, 0, "c")
	_ = g.SetCell(1, 1, "d")

	g.AddColumn()
	if g.Cols() != 3 {
		t.Fatalf("追加列后应为 3 列，实际 %d", g.Cols())
	}
	if v, _ := g.Cell(1, 1); v != "d" {
		t.Fatalf("追加列不应移动已有内容，实际 %q", v)
	}
	if v, _ := g.Cell(1, 2); v != "" {
		t.Fatalf("新列应为空，实际 %q", v)
	}

	g.AddRow()
	if g.Rows() != 3 {
		t.Fatalf("追加行后应为 3 行，实际 %d", g.Rows())
	}

	if err := g.RemoveColumn(0); err != nil {
		t.Fatalf("删除列失败: %v", err)
	}
	if v, _ := g.Cell(0, 0); v != "b" {
		t.Fatalf("删除第 0 列后 (0,0) 应为 b，实际 %q", v)
	}
	if err := g.RemoveRow(0); err != nil {
		t.Fatalf("删除行失败: %v", err)
	}
	if v, _ := g.Cell(0, 0); v != "d" {
		t.Fatalf("删除第 0 行后 (0,0) 应为 d，实际 %q", v)
	}
	if g.Rows() != 2 || g.Cols() != 2 {
		t.Fatalf("尺寸错误: %dx%d", g.Rows(), g.Cols())
	}
	if err := g.RemoveRow(5); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("删除不存在的行应越界，实际 %v", err)
	}
}
