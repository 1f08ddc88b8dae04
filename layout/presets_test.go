package layout

import (
	"errors"
	"testing"
)

func TestPresetsResolve(t *testing.T) {
	names := PresetNames()
	if len(names) != 11 || names[0] != "bootstrap" {
		t.Fatalf("预设列表错误: %v", names)
	}
	for _, name := range names {
		d, err := Preset(name)
		if err != nil {
			t.Fatalf("读取预设 %s 失败: %v", name, err)
		}
		if d.FontSize == nil || d.FontColor == nil {
			t.Fatalf("预设 %s 缺少基础字体设置", name)
		}
		// 每个预设都能完成一次级联
		s := NewStyleResolver(d).Resolve(0, 0, nil, Extent{Rows: 2, Cols: 2})
		if s.FontWeight != "" && !s.FontWeight.Valid() {
			t.Fatalf("预设 %s 产生了无效字重 %q", name, s.FontWeight)
		}
	}
}

func TestPresetFreshValues(t *testing.T) {
	a, _ := Preset("Material")
	*a.FontSize = 99
	a.HeadingRowStyle.FontWeight = "lighter"
	b, _ := Preset("material")
	if *b.FontSize == 99 || b.HeadingRowStyle.FontWeight == "lighter" {
		t.Fatalf("每次读取预设都应得到新值")
	}
	if _, err := Preset("unknown"); !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("未知预设应返回 ErrUnknownPreset，实际 %v", err)
	}
}

func TestRecorderBytes(t *testing.T) {
	r := NewRecorder(Size{})
	p := r.AddPage()
	if p.Size() != A4 {
		t.Fatalf("零值页面尺寸应回退到 A4: %+v", p.Size())
	}
	p.DrawText("hi", TextOptions{X: 1, Y: 2, Size: 12, Font: namedFont("F")})
	raw, err := r.Bytes()
	if err != nil {
		t.Fatalf("输出记录失败: %v", err)
	}
	if len(raw) == 0 || r.Pages[0].Texts[0].FontName != "F" {
		t.Fatalf("记录内容错误: %s", raw)
	}
	if _, err := r.EmbedFont(FontSource{}); !errors.Is(err, ErrInvalidFont) {
		t.Fatalf("未指定字体应报错，实际 %v", err)
	}
}
