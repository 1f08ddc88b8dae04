package fonts

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// OpenTypeFont 用 TrueType/OpenType 字形前进宽度测量文本，实现 layout.Font 与 layout.WidthMeasurer。
// 72 DPI 下 1px 即 1pt，测量结果可直接用于版面坐标。
type OpenTypeFont struct {
	name string
	f    *sfnt.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

// Parse 解析字体文件字节。
func Parse(name string, data []byte) (*OpenTypeFont, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("解析字体 %s 失败: %w", name, err)
	}
	return &OpenTypeFont{name: name, f: f, faces: map[float64]font.Face{}}, nil
}

// LoadBuiltin 按名称加载内置字体并解析。
func LoadBuiltin(name string) (*OpenTypeFont, error) {
	data, err := Load(name)
	if err != nil {
		return nil, err
	}
	return Parse(name, data)
}

func (o *OpenTypeFont) Name() string { return o.name }

// WidthOfTextAtSize 返回 text 在 size 字号下的前进宽度（pt），含字距调整。
func (o *OpenTypeFont) WidthOfTextAtSize(text string, size float64) float64 {
	if text == "" || size <= 0 {
		return 0
	}
	face, err := o.face(size)
	if err != nil {
		return 0
	}
	var (
		total fixed.Int26_6
		prev  rune
	)
	for i, r := range strings.ReplaceAll(text, "\n", "") {
		if i > 0 {
			total += face.Kern(prev, r)
		}
		adv, ok := face.GlyphAdvance(r)
		if !ok {
			adv, _ = face.GlyphAdvance('?')
		}
		total += adv
		prev = r
	}
	return fixedToFloat(total)
}

// LineMetrics 返回 size 字号下的上升部与下降部（pt）。
func (o *OpenTypeFont) LineMetrics(size float64) (ascent, descent float64) {
	face, err := o.face(size)
	if err != nil {
		return size * 0.8, size * 0.2
	}
	m := face.Metrics()
	return fixedToFloat(m.Ascent), fixedToFloat(m.Descent)
}

func (o *OpenTypeFont) face(size float64) (font.Face, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if face, ok := o.faces[size]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(o.f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	o.faces[size] = face
	return face, nil
}

func fixedToFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }
