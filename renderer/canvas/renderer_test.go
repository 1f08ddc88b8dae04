package canvasrenderer

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/ByLCY/folio/fonts"
	"github.com/ByLCY/folio/layout"
)

func TestEmbedFontStandardAndCustom(t *testing.T) {
	doc := New(Options{})
	f, err := doc.EmbedFont(layout.FontSource{Name: layout.StandardHelvetica, Standard: layout.StandardHelvetica})
	if err != nil {
		t.Fatalf("嵌入标准字体失败: %v", err)
	}
	again, _ := doc.EmbedFont(layout.FontSource{Name: layout.StandardHelvetica, Standard: layout.StandardHelvetica})
	if f != again {
		t.Fatalf("同名字体应只载入一次")
	}

	data, _ := fonts.Load("bold")
	custom, err := doc.EmbedFont(layout.FontSource{Name: "Brand", Data: data})
	if err != nil || custom.Name() != "Brand" {
		t.Fatalf("嵌入自定义字体失败: %v", err)
	}

	if _, err := doc.EmbedFont(layout.FontSource{Name: "Broken", Data: []byte("fake-font")}); !errors.Is(err, layout.ErrInvalidFont) {
		t.Fatalf("非法字体数据应返回 ErrInvalidFont，实际 %v", err)
	}
	if _, err := doc.EmbedFont(layout.FontSource{}); !errors.Is(err, layout.ErrInvalidFont) {
		t.Fatalf("未指定字体应报错，实际 %v", err)
	}
}

func TestFontWidthMatchesOpenType(t *testing.T) {
	doc := New(Options{})
	f, err := doc.EmbedFont(layout.FontSource{Name: "Body", Standard: "regular"})
	if err != nil {
		t.Fatalf("嵌入字体失败: %v", err)
	}
	m, ok := f.(layout.WidthMeasurer)
	if !ok {
		t.Fatalf("canvas 字体应支持宽度测量")
	}
	ot, _ := fonts.LoadBuiltin("regular")
	got := m.WidthOfTextAtSize("Quarterly total", 12)
	want := ot.WidthOfTextAtSize("Quarterly total", 12)
	if got <= 0 || math.Abs(got-want) > 1 {
		t.Fatalf("canvas 宽度 %g 与 OpenType 宽度 %g 差异过大", got, want)
	}
	if m.WidthOfTextAtSize("", 12) != 0 {
		t.Fatalf("空文本宽度应为 0")
	}
}

func TestDocumentPages(t *testing.T) {
	doc := New(Options{PageSize: layout.Size{Width: 300, Height: 200}})
	if _, err := doc.Bytes(); err == nil {
		t.Fatalf("没有页面时应报错")
	}
	p := doc.AddPage()
	if p.Size() != (layout.Size{Width: 300, Height: 200}) || doc.PageCount() != 1 {
		t.Fatalf("页面尺寸或数量错误: %+v %d", p.Size(), doc.PageCount())
	}
	if doc.Page(0) != p {
		t.Fatalf("Page(0) 应返回同一页面")
	}
	if s := New(Options{}).AddPage().Size(); s != layout.A4 {
		t.Fatalf("零值页面尺寸应回退到 A4: %+v", s)
	}
}

func TestRenderTableToPDF(t *testing.T) {
	tb, err := layout.NewTable(layout.TableOptions{Rows: 40, Columns: 3})
	if err != nil {
		t.Fatalf("创建表格失败: %v", err)
	}
	for r := 0; r < 40; r++ {
		_ = tb.SetCell(r, 0, "row")
		_ = tb.SetCell(r, 2, "a somewhat longer cell that needs to wrap across lines")
	}
	_ = tb.MergeCells(5, 0, 6, 1)
	if err := tb.ApplyPreset("material"); err != nil {
		t.Fatalf("应用预设失败: %v", err)
	}

	doc := New(Options{Meta: Meta{Title: "Report", Keywords: []string{"a", "b"}}})
	res, err := tb.Render(doc)
	if err != nil {
		t.Fatalf("渲染失败: %v", err)
	}
	if doc.PageCount() < 2 || len(res.Pages) != doc.PageCount() {
		t.Fatalf("40 行应跨页: pages=%d result=%d", doc.PageCount(), len(res.Pages))
	}
	raw, err := doc.Bytes()
	if err != nil {
		t.Fatalf("输出 PDF 失败: %v", err)
	}
	if !bytes.HasPrefix(raw, []byte("%PDF-")) {
		t.Fatalf("输出不是 PDF: %q", raw[:8])
	}
}

func TestDrawWithForeignFontFallsBack(t *testing.T) {
	doc := New(Options{})
	p := doc.AddPage()
	// 来自其他文档的字体句柄不会导致 panic
	rec := layout.NewRecorder(layout.A4)
	foreign, _ := rec.EmbedFont(layout.FontSource{Name: "X", Standard: "X"})
	p.DrawText("hello", layout.TextOptions{X: 10, Y: 10, Size: 12, Font: foreign})
	p.DrawRectangle(layout.RectOptions{X: 1, Y: 1, Width: 10, Height: 10})
	p.DrawLine(layout.LineOptions{Start: layout.Point{X: 0, Y: 0}, End: layout.Point{X: 10, Y: 0}, Thickness: 1})
	if doc.fallback == nil {
		t.Fatalf("应载入回退字体")
	}
	if _, err := doc.Bytes(); err != nil {
		t.Fatalf("输出 PDF 失败: %v", err)
	}
}

// 首行宽度恰好等于可用宽度且紧跟显式换行时，不应产生额外的空行。
func TestWrapEqualWidthThenNewline(t *testing.T) {
	doc := New(Options{})
	f, err := doc.EmbedFont(layout.FontSource{Name: "Body", Standard: "regular"})
	if err != nil {
		t.Fatalf("嵌入字体失败: %v", err)
	}
	w := layout.NewWrapper(f, 12)
	first := "SAMPLE-A"
	// 加上极小余量抵消浮点误差
	limit := w.Slack + f.(layout.WidthMeasurer).WidthOfTextAtSize(first, 12) + 1e-9

	lines := w.Wrap(first+"\nSAMPLE-B", limit)
	if len(lines) != 2 || lines[0] != first || lines[1] != "SAMPLE-B" {
		t.Fatalf("期望两行且无空行，实际 %q", lines)
	}
	if got := w.Wrap("hello world again", w.Slack+40); len(got) < 2 {
		t.Fatalf("窄列应折成多行，实际 %q", got)
	}
}
