package renderer

import "github.com/ByLCY/folio/layout"

// Renderer 是可以输出最终文件的绘图文档，例如 PDF（renderer/canvas）或绘制记录（layout.Recorder）。
// Bytes 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	layout.Document
	Bytes() ([]byte, error)
}

var _ Renderer = (*layout.Recorder)(nil)
