package layout

import (
	"iter"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultFontSize 是样式未指定字号时使用的字号（pt）。
	DefaultFontSize = 12.0
	// LineSpacing 是行高与字号之比。
	LineSpacing = 1.2
	// DefaultWrapSlack 是折行时从可用宽度中预留的余量（pt）。
	DefaultWrapSlack = 10.0
	// heuristicAdvance 是无法测量时每个字符的估算宽度（相对字号）。
	heuristicAdvance = 0.6
)

// MeasureWidth 返回文本在给定字号下的宽度；字体不支持测量时按字符数估算。
func MeasureWidth(font Font, text string, size float64) float64 {
	if m, ok := font.(WidthMeasurer); ok {
		return m.WidthOfTextAtSize(text, size)
	}
	return float64(utf8.RuneCountInString(text)) * size * heuristicAdvance
}

// Wrapper 按贪心策略把文本切成不超过 maxWidth-Slack 的行。
type Wrapper struct {
	Font  Font
	Size  float64
	Slack float64
}

// NewWrapper 使用默认余量创建折行器；size<=0 时取 DefaultFontSize。
func NewWrapper(font Font, size float64) Wrapper {
	if size <= 0 {
		size = DefaultFontSize
	}
	return Wrapper{Font: font, Size: size, Slack: DefaultWrapSlack}
}

func (w Wrapper) width(s string) float64 { return MeasureWidth(w.Font, s, w.Size) }

// Lines 惰性产出折行结果，可重复遍历。
// 每个以 "\n" 分隔的段落至少产出一行；空文本产出一个空行。
func (w Wrapper) Lines(text string, maxWidth float64) iter.Seq[string] {
	limit := maxWidth - w.Slack
	return func(yield func(string) bool) {
		for para := range strings.SplitSeq(text, "\n") {
			if !w.paragraph(para, limit, yield) {
				return
			}
		}
	}
}

func (w Wrapper) paragraph(para string, limit float64, yield func(string) bool) bool {
	current := ""
	emitted := false
	emit := func(line string) bool {
		emitted = true
		return yield(line)
	}
	for _, word := range strings.Split(para, " ") {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if w.width(candidate) <= limit {
			current = candidate
			continue
		}
		if current != "" {
			if !emit(current) {
				return false
			}
			current = ""
		}
		if w.width(word) <= limit {
			current = word
			continue
		}
		// 单词本身超宽：逐字符切分，整行输出，剩余部分作为当前行继续累积
		var chunk []rune
		for _, r := range word {
			next := string(append(chunk, r))
			if len(chunk) == 0 || w.width(next) <= limit {
				chunk = append(chunk, r)
				continue
			}
			if !emit(string(chunk)) {
				return false
			}
			chunk = []rune{r}
		}
		current = string(chunk)
	}
	if current != "" || !emitted {
		return emit(current)
	}
	return true
}

// Wrap 返回全部折行结果。
func (w Wrapper) Wrap(text string, maxWidth float64) []string {
	var out []string
	for line := range w.Lines(text, maxWidth) {
		out = append(out, line)
	}
	return out
}
