package layout

// 引擎只依赖下面这组绘图接口；PDF 后端（renderer/canvas）与内存记录器（Recorder）各自实现。
// 坐标遵循 PDF 用户空间：原点在页面左下角，y 轴向上，单位 pt。

// StandardHelvetica 是未设置自定义字体时请求的标准字体。
const StandardHelvetica = "Helvetica"

// Size 为页面尺寸（pt）。
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Point 为页面坐标。
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Font 是已嵌入文档的字体句柄。
type Font interface {
	Name() string
}

// WidthMeasurer 是字体句柄的可选能力；未实现时宽度按启发式估算。
type WidthMeasurer interface {
	WidthOfTextAtSize(text string, size float64) float64
}

// FontSource 指定要嵌入的字体：Data 非空时为字体文件字节，否则按 Standard 名称取标准字体。
type FontSource struct {
	Name     string
	Standard string
	Data     []byte
}

// Document 是可追加页面的目标文档。
type Document interface {
	AddPage() Page
	PageCount() int
	Page(i int) Page
	EmbedFont(src FontSource) (Font, error)
}

// Page 是单个页面的绘图面。
type Page interface {
	Size() Size
	DrawText(text string, opts TextOptions)
	DrawRectangle(opts RectOptions)
	DrawLine(opts LineOptions)
}

// TextOptions 中 (X, Y) 为文字基线起点。
type TextOptions struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Size  float64 `json:"size"`
	Font  Font    `json:"-"`
	Color Color   `json:"color"`
}

// RectOptions 中 (X, Y) 为矩形左下角；Color 为空表示不填充，BorderColor 为空表示不描边。
// Opacity 只作用于填充色。
type RectOptions struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Color       *Color  `json:"color,omitempty"`
	BorderColor *Color  `json:"borderColor,omitempty"`
	BorderWidth float64 `json:"borderWidth,omitempty"`
	Opacity     float64 `json:"opacity"`
}

// LineOptions 描述一条实线段。
type LineOptions struct {
	Start     Point   `json:"start"`
	End       Point   `json:"end"`
	Thickness float64 `json:"thickness"`
	Color     Color   `json:"color"`
}
