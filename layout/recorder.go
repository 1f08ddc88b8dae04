package layout

import (
	"encoding/json"
	"fmt"
)

// A4 纵向页面尺寸（pt）。
var A4 = Size{Width: 595.28, Height: 841.89}

// TextOp / RectOp / LineOp 是 Recorder 记录的绘制操作。
type TextOp struct {
	Text string `json:"text"`
	TextOptions
	FontName string `json:"font,omitempty"`
}

type RectOp = RectOptions

type LineOp = LineOptions

// RecordedPage 是记录下来的单个页面。
type RecordedPage struct {
	PageSize Size     `json:"size"`
	Texts    []TextOp `json:"texts,omitempty"`
	Rects    []RectOp `json:"rects,omitempty"`
	Lines    []LineOp `json:"lines,omitempty"`
}

func (p *RecordedPage) Size() Size { return p.PageSize }

func (p *RecordedPage) DrawText(text string, opts TextOptions) {
	op := TextOp{Text: text, TextOptions: opts}
	if opts.Font != nil {
		op.FontName = opts.Font.Name()
	}
	p.Texts = append(p.Texts, op)
}

func (p *RecordedPage) DrawRectangle(opts RectOptions) { p.Rects = append(p.Rects, opts) }

func (p *RecordedPage) DrawLine(opts LineOptions) { p.Lines = append(p.Lines, opts) }

// namedFont 是 Recorder 默认返回的字体句柄，不支持测量。
type namedFont string

func (f namedFont) Name() string { return string(f) }

// Recorder 是内存中的 Document 实现，按顺序记录所有绘制操作。
// PageSize 为零值时使用 A4；Fonts 为空时 EmbedFont 返回只带名称的字体句柄。
type Recorder struct {
	PageSize Size
	Fonts    func(src FontSource) (Font, error)
	Pages    []*RecordedPage
}

// NewRecorder 创建指定页面尺寸的记录器。
func NewRecorder(size Size) *Recorder { return &Recorder{PageSize: size} }

func (r *Recorder) AddPage() Page {
	size := r.PageSize
	if size.Width == 0 || size.Height == 0 {
		size = A4
	}
	p := &RecordedPage{PageSize: size}
	r.Pages = append(r.Pages, p)
	return p
}

func (r *Recorder) PageCount() int { return len(r.Pages) }

func (r *Recorder) Page(i int) Page { return r.Pages[i] }

func (r *Recorder) EmbedFont(src FontSource) (Font, error) {
	if r.Fonts != nil {
		return r.Fonts(src)
	}
	name := src.Name
	if name == "" {
		name = src.Standard
	}
	if name == "" {
		return nil, fmt.Errorf("%w: 未指定字体", ErrInvalidFont)
	}
	return namedFont(name), nil
}

// Bytes 以 JSON 输出全部页面的绘制记录。
func (r *Recorder) Bytes() ([]byte, error) {
	return json.MarshalIndent(struct {
		Pages []*RecordedPage `json:"pages"`
	}{r.Pages}, "", "  ")
}

var _ Document = (*Recorder)(nil)
