package fonts

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// 内置字体表，名称不区分大小写。
var builtin = map[string][]byte{
	"regular":     goregular.TTF,
	"bold":        gobold.TTF,
	"italic":      goitalic.TTF,
	"bold-italic": gobolditalic.TTF,
	"mono":        gomono.TTF,
}

// 标准字体名到内置字体的映射；PDF 后端没有 Type1 标准字体时用它代替。
var standard = map[string]string{
	"helvetica":             "regular",
	"helvetica-bold":        "bold",
	"helvetica-oblique":     "italic",
	"helvetica-boldoblique": "bold-italic",
	"courier":               "mono",
}

// Load 返回内置字体的字节数据，name 可写为 "embed:bold" 或直接 "bold"，也接受 "Helvetica" 等标准字体名。
func Load(name string) ([]byte, error) {
	key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "embed:")))
	if alias, ok := standard[key]; ok {
		key = alias
	}
	data, ok := builtin[key]
	if !ok {
		return nil, fmt.Errorf("读取内置字体 %s 失败: 未知字体", name)
	}
	return data, nil
}

// Names 返回全部内置字体名（已排序）。
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
