package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/folio/fonts"
	"github.com/ByLCY/folio/layout"
	"github.com/ByLCY/folio/renderer"
)

// 未指定字体时使用的内置字体。
const fallbackFont = "regular"

// Document 通过 github.com/tdewolff/canvas 实现 layout.Document，最终输出 PDF。
// 版面坐标为 pt、原点左下角；canvas 以 mm 为单位，绘制时在边界换算。
type Document struct {
	opts  Options
	pages []*Page

	fontMu   sync.Mutex
	fonts    map[string]*Font
	fallback *Font
}

var (
	_ renderer.Renderer    = (*Document)(nil)
	_ layout.Page          = (*Page)(nil)
	_ layout.WidthMeasurer = (*Font)(nil)
)

// Options 配置 PDF 文档。
type Options struct {
	// PageSize 为新页面尺寸（pt），零值使用 A4。
	PageSize layout.Size
	Meta     Meta
}

// Meta 写入 PDF 的文档信息字典。
type Meta struct {
	Title    string
	Subject  string
	Author   string
	Creator  string
	Keywords []string
}

// New 创建空文档。
func New(opts Options) *Document {
	if opts.PageSize.Width <= 0 || opts.PageSize.Height <= 0 {
		opts.PageSize = layout.A4
	}
	return &Document{opts: opts, fonts: map[string]*Font{}}
}

func (d *Document) AddPage() layout.Page {
	size := d.opts.PageSize
	c := canvas.New(toMm(size.Width), toMm(size.Height))
	ctx := canvas.NewContext(c)
	// CartesianI：原点左下角、y 轴向上，与 PDF 用户空间一致
	ctx.SetCoordSystem(canvas.CartesianI)
	p := &Page{doc: d, size: size, c: c, ctx: ctx}
	d.pages = append(d.pages, p)
	return p
}

func (d *Document) PageCount() int { return len(d.pages) }

func (d *Document) Page(i int) layout.Page { return d.pages[i] }

// EmbedFont 载入字体：Data 非空时解析字体文件，否则按 Standard 名称取内置替代字体。
// 同名字体只载入一次。
func (d *Document) EmbedFont(src layout.FontSource) (layout.Font, error) {
	name := src.Name
	if name == "" {
		name = src.Standard
	}
	if name == "" {
		return nil, fmt.Errorf("%w: 未指定字体", layout.ErrInvalidFont)
	}

	d.fontMu.Lock()
	defer d.fontMu.Unlock()
	if f, ok := d.fonts[name]; ok {
		return f, nil
	}

	data := src.Data
	if len(data) == 0 {
		blob, err := fonts.Load(src.Standard)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", layout.ErrInvalidFont, err)
		}
		data = blob
	}
	f, err := newFont(name, data)
	if err != nil {
		return nil, err
	}
	d.fonts[name] = f
	return f, nil
}

func (d *Document) defaultFont() (*Font, error) {
	d.fontMu.Lock()
	defer d.fontMu.Unlock()
	if d.fallback != nil {
		return d.fallback, nil
	}
	data, err := fonts.Load(fallbackFont)
	if err != nil {
		return nil, err
	}
	f, err := newFont("folio-fallback", data)
	if err != nil {
		return nil, err
	}
	d.fallback = f
	return f, nil
}

// Write 将全部页面写成 PDF。
func (d *Document) Write(w io.Writer) error {
	if len(d.pages) == 0 {
		return fmt.Errorf("缺少可渲染的页面")
	}
	first := d.pages[0].c
	writer := pdf.New(w, first.W, first.H, nil)
	d.applyMeta(writer)
	for i, p := range d.pages {
		if i > 0 {
			writer.NewPage(p.c.W, p.c.H)
		}
		p.c.RenderTo(writer)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("写入 PDF 失败: %w", err)
	}
	layout.Logger().Debug("PDF 输出完成", "pages", len(d.pages))
	return nil
}

// Bytes 返回 PDF 字节。
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (d *Document) applyMeta(writer *pdf.PDF) {
	m := d.opts.Meta
	keywords := strings.Join(m.Keywords, ", ")
	writer.SetInfo(m.Title, m.Subject, keywords, m.Author, m.Creator)
}

// Page 是单个 PDF 页面的绘图面。
type Page struct {
	doc  *Document
	size layout.Size
	c    *canvas.Canvas
	ctx  *canvas.Context
}

func (p *Page) Size() layout.Size { return p.size }

// DrawText 以 (X, Y) 为基线起点绘制单行文本；非本文档嵌入的字体句柄回退到内置字体。
func (p *Page) DrawText(text string, opts layout.TextOptions) {
	if text == "" || opts.Size <= 0 {
		return
	}
	f, ok := opts.Font.(*Font)
	if !ok {
		fb, err := p.doc.defaultFont()
		if err != nil {
			layout.Logger().Warn("加载回退字体失败，跳过文本", "err", err)
			return
		}
		f = fb
	}
	face := f.face(opts.Size, colorFrom(opts.Color, 1))
	p.ctx.DrawText(toMm(opts.X), toMm(opts.Y), canvas.NewTextLine(face, text, canvas.Left))
}

// DrawRectangle 绘制矩形；Color 为空不填充，BorderColor 为空不描边。
func (p *Page) DrawRectangle(opts layout.RectOptions) {
	if opts.Color == nil && opts.BorderColor == nil {
		return
	}
	fill := color.Color(canvas.Transparent)
	if opts.Color != nil {
		fill = colorFrom(*opts.Color, opts.Opacity)
	}
	stroke := color.Color(canvas.Transparent)
	width := 0.0
	if opts.BorderColor != nil && opts.BorderWidth > 0 {
		stroke = colorFrom(*opts.BorderColor, 1)
		width = toMm(opts.BorderWidth)
	}
	p.ctx.SetFillColor(fill)
	p.ctx.SetStrokeColor(stroke)
	p.ctx.SetStrokeWidth(width)
	p.ctx.DrawPath(toMm(opts.X), toMm(opts.Y), canvas.Rectangle(toMm(opts.Width), toMm(opts.Height)))
}

// DrawLine 绘制实线段，虚线由调用方拆分成多段。
func (p *Page) DrawLine(opts layout.LineOptions) {
	if opts.Thickness <= 0 {
		return
	}
	path := &canvas.Path{}
	path.MoveTo(0, 0)
	path.LineTo(toMm(opts.End.X-opts.Start.X), toMm(opts.End.Y-opts.Start.Y))
	p.ctx.SetFillColor(canvas.Transparent)
	p.ctx.SetStrokeColor(colorFrom(opts.Color, 1))
	p.ctx.SetStrokeWidth(toMm(opts.Thickness))
	p.ctx.SetStrokeCapper(canvas.ButtCap)
	p.ctx.DrawPath(toMm(opts.Start.X), toMm(opts.Start.Y), path)
}

// Font 是 canvas 字体族的句柄，宽度由 canvas 的字形度量给出。
type Font struct {
	name   string
	family *canvas.FontFamily

	mu    sync.Mutex
	faces map[float64]*canvas.FontFace
}

func newFont(name string, data []byte) (*Font, error) {
	family := canvas.NewFontFamily(name)
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("%w: 载入字体 %s 失败: %v", layout.ErrInvalidFont, name, err)
	}
	return &Font{name: name, family: family, faces: map[float64]*canvas.FontFace{}}, nil
}

func (f *Font) Name() string { return f.name }

// WidthOfTextAtSize 返回 text 在 size（pt）字号下的宽度（pt）。
func (f *Font) WidthOfTextAtSize(text string, size float64) float64 {
	if text == "" || size <= 0 {
		return 0
	}
	f.mu.Lock()
	face, ok := f.faces[size]
	if !ok {
		face = f.family.Face(size, canvas.Black, canvas.FontRegular, canvas.FontNormal)
		f.faces[size] = face
	}
	f.mu.Unlock()
	return toPt(face.TextWidth(text))
}

func (f *Font) face(size float64, col color.Color) *canvas.FontFace {
	return f.family.Face(size, col, canvas.FontRegular, canvas.FontNormal)
}

// colorFrom 将版面颜色（分量 0-1 或 0-255）转为 canvas 颜色，alpha 截断到 [0, 1]。
func colorFrom(c layout.Color, alpha float64) color.Color {
	n := c.Normalize()
	alpha = math.Max(0, math.Min(1, alpha))
	return canvas.RGBA(n.R, n.G, n.B, alpha)
}

// toPt 将毫米(mm)转换为点(pt)。
func toPt(mm float64) float64 { return mm * layout.MmToPt }

// toMm 将点(pt)转换为毫米(mm)。
func toMm(pt float64) float64 { return pt * layout.PtToMm }
