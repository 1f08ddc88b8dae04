package layout

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler 丢弃所有日志；Enabled 返回 false，调用方不会格式化消息。
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger 设置 layout 包及渲染后端共用的日志器，传 nil 恢复静默。
//
// 使用的级别：
//   - Debug: 分页、表头重复、批次输出等排版细节
//   - Warn: 可降级的问题（例如无法解析的选择器被忽略）
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger 返回当前日志器。
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
