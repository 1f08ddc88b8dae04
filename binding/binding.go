package binding

import (
	"fmt"
	"maps"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate 将文本中的 ${path.to.value} 替换为 data 中的值。
// 若 data 为空或路径不存在，则返回原占位符。
func Interpolate(text string, data any) string {
	if data == nil {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := exprPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		path := strings.TrimSpace(groups[1])
		if path == "" {
			return match
		}
		if val, ok := Lookup(data, path); ok {
			return format(val)
		}
		return match
	})
}

// format 让 JSON 解码得到的整数浮点（如 3.0）输出为 "3"。
func format(v any) string {
	switch n := v.(type) {
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Lookup 按 a.b[0].c 形式的路径取值。
func Lookup(data any, path string) (any, bool) {
	current := data
	segments := strings.Split(path, ".")
	for _, segment := range segments {
		name, indexes := parseSegment(segment)
		if name != "" {
			var ok bool
			current, ok = descendMap(current, name)
			if !ok {
				return nil, false
			}
		}
		for _, idxStr := range indexes {
			idx, err := strconv.Atoi(idxStr)
			if err != nil {
				return nil, false
			}
			var ok bool
			current, ok = descendArray(current, idx)
			if !ok {
				return nil, false
			}
		}
	}
	return current, true
}

// Items 取出 path 处的数组元素；路径不存在或不是数组时返回 false。
func Items(data any, path string) ([]any, bool) {
	v, ok := Lookup(data, path)
	if !ok {
		return nil, false
	}
	if items, ok := asSlice(v); ok {
		return items, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// With 返回在 data 之上绑定 name=value 的新作用域，不修改 data。
// data 不是 map 时，新作用域只包含 name。
func With(data any, name string, value any) map[string]any {
	scope := map[string]any{}
	switch c := data.(type) {
	case map[string]any:
		maps.Copy(scope, c)
	case map[string]string:
		for k, v := range c {
			scope[k] = v
		}
	}
	scope[name] = value
	return scope
}

func parseSegment(segment string) (string, []string) {
	name := segment
	indexes := []string{}
	if i := strings.Index(segment, "["); i != -1 {
		name = segment[:i]
		rest := segment[i:]
		for len(rest) > 0 {
			if rest[0] != '[' {
				break
			}
			end := strings.IndexByte(rest, ']')
			if end == -1 {
				break
			}
			indexes = append(indexes, rest[1:end])
			rest = rest[end+1:]
		}
	}
	return name, indexes
}

func descendMap(current any, key string) (any, bool) {
	switch c := current.(type) {
	case map[string]any:
		val, ok := c[key]
		return val, ok
	case map[string]string:
		val, ok := c[key]
		return val, ok
	default:
		return nil, false
	}
}

func descendArray(current any, idx int) (any, bool) {
	items, ok := asSlice(current)
	if !ok || idx < 0 || idx >= len(items) {
		return nil, false
	}
	return items[idx], true
}

func asSlice(current any) ([]any, bool) {
	switch c := current.(type) {
	case []any:
		return c, true
	case []string:
		out := make([]any, len(c))
		for i, s := range c {
			out[i] = s
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(c))
		for i, m := range c {
			out[i] = m
		}
		return out, true
	default:
		return nil, false
	}
}
