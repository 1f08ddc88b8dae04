package layout

import (
	"math"
	"slices"
	"testing"
	"unicode/utf8"
)

// stubFont 每个字符固定宽度 advance，与字号无关，便于精确断言折行结果。
type stubFont struct{ advance float64 }

func (stubFont) Name() string { return "stub" }

func (f stubFont) WidthOfTextAtSize(text string, _ float64) float64 {
	return float64(utf8.RuneCountInString(text)) * f.advance
}

func TestMeasureWidthHeuristic(t *testing.T) {
	if got := MeasureWidth(namedFont("x"), "abcd", 10); math.Abs(got-24) > 1e-9 {
		t.Fatalf("启发式宽度期望 24，实际 %g", got)
	}
	if got := MeasureWidth(stubFont{advance: 3}, "中文ab", 99); got != 12 {
		t.Fatalf("可测量字体应使用其宽度，实际 %g", got)
	}
}

func TestWrapGreedy(t *testing.T) {
	// maxWidth 40，余量 10 → 每行最多 6 个字符
	w := NewWrapper(stubFont{advance: 5}, 12)
	got := w.Wrap("aaa bbb ccc", 40)
	if want := []string{"aaa", "bbb", "ccc"}; !slices.Equal(got, want) {
		t.Fatalf("折行错误: got=%q want=%q", got, want)
	}
	got = w.Wrap("aa bb cc", 40)
	if want := []string{"aa bb", "cc"}; !slices.Equal(got, want) {
		t.Fatalf("折行错误: got=%q want=%q", got, want)
	}
}

func TestWrapLongWordSplitByChar(t *testing.T) {
	w := NewWrapper(stubFont{advance: 5}, 12)
	got := w.Wrap("xy abcdefghijklmn op", 40)
	want := []string{"xy", "abcdef", "ghijkl", "mn op"}
	if !slices.Equal(got, want) {
		t.Fatalf("超长单词切分错误: got=%q want=%q", got, want)
	}
	// 单个字符都放不下时仍然占一行，不会产生空行
	got = w.Wrap("abc", 12)
	if want := []string{"a", "b", "c"}; !slices.Equal(got, want) {
		t.Fatalf("极窄宽度切分错误: got=%q", got)
	}
}

func TestWrapEmptyAndHardBreaks(t *testing.T) {
	w := NewWrapper(stubFont{advance: 5}, 12)
	if got := w.Wrap("", 100); !slices.Equal(got, []string{""}) {
		t.Fatalf("空文本应产出一个空行，实际 %q", got)
	}
	if got := w.Wrap("a\n\nb", 100); !slices.Equal(got, []string{"a", "", "b"}) {
		t.Fatalf("换行符应强制分行，实际 %q", got)
	}
}

func TestWrapLinesRestartable(t *testing.T) {
	w := NewWrapper(stubFont{advance: 5}, 12)
	seq := w.Lines("aaa bbb ccc", 40)
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if !slices.Equal(first, second) {
		t.Fatalf("重复遍历结果应一致: %q vs %q", first, second)
	}
	n := 0
	for range seq {
		n++
		break
	}
	if n != 1 {
		t.Fatalf("提前终止遍历失败")
	}
}

func TestNewWrapperDefaults(t *testing.T) {
	w := NewWrapper(nil, 0)
	if w.Size != DefaultFontSize || w.Slack != DefaultWrapSlack {
		t.Fatalf("默认参数错误: %+v", w)
	}
}
