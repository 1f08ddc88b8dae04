package layout

import (
	"encoding/json"
	"os"
)

// DebugReport 汇总表格结构与一次渲染的排版结果，便于调试或可视化。
type DebugReport struct {
	Rows    int     `json:"rows"`
	Columns int     `json:"columns"`
	Merges  []Span  `json:"merges,omitempty"`
	Layout  *Result `json:"layout"`
}

// DebugReport 以当前表格结构和渲染结果生成调试报告。
func (t *Table) DebugReport(res *Result) DebugReport {
	return DebugReport{
		Rows:    t.Rows(),
		Columns: t.Cols(),
		Merges:  t.MergedCells(),
		Layout:  res,
	}
}

// WriteDebugJSON 将调试报告输出为 JSON 文件。
func WriteDebugJSON(report DebugReport, path string) error {
	if report.Layout == nil {
		return nil
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
