package layout

// BuildOptions 配置 DSL 构建阶段；零值表示完全按 DSL 内容构建。
type BuildOptions struct {
	// Preset 非空时作为第一条 design 语句之前的起始设计。
	Preset string
	// Design 在 DSL 的 design 语句之后浅合并，通常来自 YAML 配置。
	Design *DesignConfig
	// Table 中的非零字段覆盖 DSL options 中的同名设置。
	Table TableOptions
}

// override 以 o 中的非零字段覆盖 base。
func (base TableOptions) override(o TableOptions) TableOptions {
	if o.Rows > 0 {
		base.Rows = o.Rows
	}
	if o.Columns > 0 {
		base.Columns = o.Columns
	}
	if o.RowHeight > 0 {
		base.RowHeight = o.RowHeight
	}
	if o.ColWidth > 0 {
		base.ColWidth = o.ColWidth
	}
	if o.TableWidth > 0 {
		base.TableWidth = o.TableWidth
	}
	if o.TableHeight > 0 {
		base.TableHeight = o.TableHeight
	}
	if o.RepeatHeaderRows > 0 {
		base.RepeatHeaderRows = o.RepeatHeaderRows
	}
	if o.HeaderRepetition != nil {
		base.HeaderRepetition = o.HeaderRepetition
	}
	if o.PageBreakThreshold != nil {
		base.PageBreakThreshold = o.PageBreakThreshold
	}
	return base
}
