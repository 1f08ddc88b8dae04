package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ByLCY/folio/binding"
	"github.com/ByLCY/folio/dsl"
)

// builtCell 是展开 row / each 之后的单元格。
type builtCell struct {
	text  string
	style *CellStyle
}

type tableBuilder struct {
	data    any
	opts    TableOptions
	design  DesignConfig
	rows    [][]builtCell
	merges  []*dsl.MergeStmt
	special []CellSelector
}

// Build 将 DSL 文档转换为 Table：options 决定尺寸与分页参数，design / special 组成设计配置，
// row / each 填充单元格（${path} 从 data 中取值），merge 登记合并区域。
func Build(doc *dsl.Document, data any, opts BuildOptions) (*Table, error) {
	if doc == nil {
		return nil, fmt.Errorf("文档为空")
	}
	b := &tableBuilder{data: data, design: DefaultDesign()}
	if opts.Preset != "" {
		d, err := Preset(opts.Preset)
		if err != nil {
			return nil, err
		}
		b.design = d
	}

	for _, st := range doc.Statements {
		var err error
		switch {
		case st.Options != nil:
			err = b.options(st.Options.Block)
		case st.Design != nil:
			err = b.applyDesign(st.Design)
		case st.Special != nil:
			err = b.addSpecial(st.Special)
		case st.Row != nil:
			err = b.addRow(st.Row.Cells, data)
		case st.Each != nil:
			err = b.expandEach(st.Each)
		case st.Merge != nil:
			b.merges = append(b.merges, st.Merge)
		}
		if err != nil {
			return nil, fmt.Errorf("%s 语句: %w", st.Kind(), err)
		}
	}

	design := b.design
	if len(b.special) > 0 {
		design.SpecialCells = append(design.SpecialCells, b.special...)
	}
	if opts.Design != nil {
		design = design.Merge(*opts.Design)
	}

	topts := b.opts.override(opts.Table)
	topts.Rows = max(topts.Rows, len(b.rows))
	for _, r := range b.rows {
		topts.Columns = max(topts.Columns, len(r))
	}
	t, err := NewTable(topts)
	if err != nil {
		return nil, err
	}
	t.setDesign(design)

	for r, cells := range b.rows {
		for c, cell := range cells {
			if err := t.SetCell(r, c, cell.text); err != nil {
				return nil, err
			}
			if cell.style != nil {
				if err := t.SetCellStyle(r, c, *cell.style); err != nil {
					return nil, err
				}
			}
		}
	}
	for _, m := range b.merges {
		if err := t.MergeCells(m.Coords[0], m.Coords[1], m.Coords[2], m.Coords[3]); err != nil {
			return nil, fmt.Errorf("%s: merge %v: %w", m.Pos, m.Coords, err)
		}
	}
	Logger().Debug("表格构建完成", "table", doc.Name, "rows", t.Rows(), "cols", t.Cols(), "merges", len(b.merges))
	return t, nil
}

func (b *tableBuilder) options(block *dsl.Block) error {
	for _, e := range block.Entries {
		var err error
		switch e.Key {
		case "rows":
			b.opts.Rows, err = entryInt(e)
		case "columns":
			b.opts.Columns, err = entryInt(e)
		case "row-height":
			b.opts.RowHeight, err = entryLength(e)
		case "col-width":
			b.opts.ColWidth, err = entryLength(e)
		case "table-width":
			b.opts.TableWidth, err = entryLength(e)
		case "table-height":
			b.opts.TableHeight, err = entryLength(e)
		case "repeat-header-rows":
			b.opts.RepeatHeaderRows, err = entryInt(e)
		case "header-repetition":
			var v bool
			v, err = entryBool(e)
			b.opts.HeaderRepetition = &v
		case "page-break-threshold":
			var v float64
			v, err = entryLength(e)
			b.opts.PageBreakThreshold = &v
		default:
			err = fmt.Errorf("%s: 未知的 options 属性 %s", e.Pos, e.Key)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (b *tableBuilder) applyDesign(st *dsl.DesignStmt) error {
	if st.Preset != "" {
		d, err := Preset(st.Preset)
		if err != nil {
			return fmt.Errorf("%s: %w", st.Pos, err)
		}
		b.design = d
	}
	if st.Block == nil {
		return nil
	}
	d, err := designFromBlock(st.Block, true)
	if err != nil {
		return err
	}
	b.design = b.design.Merge(d)
	return nil
}

func (b *tableBuilder) addSpecial(st *dsl.SpecialStmt) error {
	sel, err := selectorFromExpr(st.Selector)
	if err != nil {
		return fmt.Errorf("%s: %w", st.Pos, err)
	}
	style, err := styleFromBlock(st.Block)
	if err != nil {
		return err
	}
	b.special = append(b.special, CellSelector{Selector: sel, Style: style})
	return nil
}

func (b *tableBuilder) addRow(cells []*dsl.CellStmt, scope any) error {
	row := make([]builtCell, 0, len(cells))
	for _, c := range cells {
		cell := builtCell{text: binding.Interpolate(string(c.Value), scope)}
		if c.Style != nil {
			s, err := styleFromBlock(c.Style)
			if err != nil {
				return err
			}
			cell.style = &s
		}
		row = append(row, cell)
	}
	b.rows = append(b.rows, row)
	return nil
}

func (b *tableBuilder) expandEach(st *dsl.EachStmt) error {
	path := st.Path.String()
	items, ok := binding.Items(b.data, path)
	if !ok {
		return fmt.Errorf("%s: %s 不是数组", st.Pos, path)
	}
	for _, item := range items {
		if err := b.addRow(st.Cells, binding.With(b.data, st.Var, item)); err != nil {
			return err
		}
	}
	return nil
}

// designFromBlock 解析设计块。top 为 true 时，border-top 等写入 defaultXBorder，
// 否则（heading-row / heading-column 块）写入 borderX。
func designFromBlock(block *dsl.Block, top bool) (DesignConfig, error) {
	var (
		d     DesignConfig
		style CellStyle
	)
	cellStyle := func(e *dsl.Entry) (*CellStyle, error) {
		if e.Block == nil {
			return nil, fmt.Errorf("%s: %s 需要样式块", e.Pos, e.Key)
		}
		s, err := styleFromBlock(e.Block)
		return &s, err
	}
	for _, e := range block.Entries {
		var err error
		switch e.Key {
		case "heading-row", "heading-column":
			if e.Block == nil {
				return d, fmt.Errorf("%s: %s 需要样式块", e.Pos, e.Key)
			}
			var partial DesignConfig
			if partial, err = designFromBlock(e.Block, false); err != nil {
				return d, err
			}
			if e.Key == "heading-row" {
				d.HeadingRowStyle = &partial
			} else {
				d.HeadingColumnStyle = &partial
			}
		case "first-row":
			d.FirstRowStyle, err = cellStyle(e)
		case "last-row":
			d.LastRowStyle, err = cellStyle(e)
		case "first-column":
			d.FirstColumnStyle, err = cellStyle(e)
		case "last-column":
			d.LastColumnStyle, err = cellStyle(e)
		case "even-row":
			d.EvenRowStyle, err = cellStyle(e)
		case "odd-row":
			d.OddRowStyle, err = cellStyle(e)
		case "dynamic-row-height":
			var v bool
			v, err = entryBool(e)
			d.DynamicRowHeight = &v
		default:
			err = applyStyleEntry(&style, e)
		}
		if err != nil {
			return d, err
		}
	}
	d = d.Merge(designFromStyle(style))
	if top {
		d.DefaultTopBorder, d.BorderTop = d.BorderTop, nil
		d.DefaultRightBorder, d.BorderRight = d.BorderRight, nil
		d.DefaultBottomBorder, d.BorderBottom = d.BorderBottom, nil
		d.DefaultLeftBorder, d.BorderLeft = d.BorderLeft, nil
	}
	return d, nil
}

// designFromStyle 把单元格样式字段映射到同名的设计配置字段。
func designFromStyle(s CellStyle) DesignConfig {
	return DesignConfig{
		FontFamily:        s.FontFamily,
		FontSize:          s.FontSize,
		FontColor:         s.FontColor,
		BackgroundColor:   s.BackgroundColor,
		BorderColor:       s.BorderColor,
		BorderWidth:       s.BorderWidth,
		BorderTop:         s.TopBorder,
		BorderRight:       s.RightBorder,
		BorderBottom:      s.BottomBorder,
		BorderLeft:        s.LeftBorder,
		AdditionalBorders: s.AdditionalBorders,
		Padding:           s.Padding,
		VerticalAlignment: s.VerticalAlignment,
		BorderRadius:      s.BorderRadius,
		FontWeight:        s.FontWeight,
		FontStyle:         s.FontStyle,
		Alignment:         s.Alignment,
		BoxShadow:         s.BoxShadow,
		WordWrap:          s.WordWrap,
		TextDecoration:    s.TextDecoration,
		TextTransform:     s.TextTransform,
		TextOverflow:      s.TextOverflow,
		WhiteSpace:        s.WhiteSpace,
		Opacity:           s.Opacity,
		ClassName:         s.ClassName,
	}
}

func styleFromBlock(block *dsl.Block) (CellStyle, error) {
	var s CellStyle
	for _, e := range block.Entries {
		if err := applyStyleEntry(&s, e); err != nil {
			return s, err
		}
	}
	return s, nil
}

// applyStyleEntry 解析单个样式属性。属性名沿用 CSS 风格的短横线写法。
func applyStyleEntry(s *CellStyle, e *dsl.Entry) error {
	var err error
	switch e.Key {
	case "font-size":
		s.FontSize, err = entryLengthPtr(e)
	case "color", "font-color":
		s.FontColor, err = entryColor(e)
	case "background", "background-color":
		s.BackgroundColor, err = entryColor(e)
	case "border-color":
		s.BorderColor, err = entryColor(e)
	case "border-width":
		s.BorderWidth, err = entryLengthPtr(e)
	case "align", "alignment":
		var v string
		v, err = entryEnum(e, "left", "center", "right")
		s.Alignment = Alignment(v)
	case "valign", "vertical-align":
		var v string
		v, err = entryEnum(e, "top", "middle", "bottom")
		s.VerticalAlignment = VerticalAlignment(v)
	case "padding":
		var v string
		v, err = entryString(e)
		s.Padding = PaddingSpec(v)
	case "font-weight":
		var v string
		if v, err = entryString(e); err == nil {
			if !FontWeight(v).Valid() {
				err = fmt.Errorf("%s: 无效的 font-weight %q", e.Pos, v)
			}
			s.FontWeight = FontWeight(v)
		}
	case "font-style":
		s.FontStyle, err = entryString(e)
	case "font-family":
		s.FontFamily, err = entryString(e)
	case "wrap", "word-wrap":
		var v string
		v, err = entryEnum(e, "normal", "break-word", "none")
		s.WordWrap = WordWrap(v)
	case "decoration", "text-decoration":
		var v string
		v, err = entryEnum(e, "none", "underline", "line-through")
		s.TextDecoration = TextDecoration(v)
	case "transform", "text-transform":
		var v string
		v, err = entryEnum(e, "none", "capitalize", "uppercase", "lowercase")
		s.TextTransform = TextTransform(v)
	case "overflow", "text-overflow":
		var v string
		v, err = entryEnum(e, "clip", "ellipsis")
		s.TextOverflow = TextOverflow(v)
	case "white-space":
		var v string
		v, err = entryEnum(e, "normal", "nowrap", "pre")
		s.WhiteSpace = WhiteSpace(v)
	case "opacity":
		var v float64
		v, err = entryFloat(e)
		s.Opacity = &v
	case "border-radius":
		s.BorderRadius, err = entryString(e)
	case "box-shadow":
		s.BoxShadow, err = entryString(e)
	case "class", "class-name":
		s.ClassName, err = entryString(e)
	case "border-top":
		s.TopBorder, err = entryBorder(e)
	case "border-right":
		s.RightBorder, err = entryBorder(e)
	case "border-bottom":
		s.BottomBorder, err = entryBorder(e)
	case "border-left":
		s.LeftBorder, err = entryBorder(e)
	case "additional-border":
		var ab AdditionalBorder
		if ab, err = entryAdditionalBorder(e); err == nil {
			s.AdditionalBorders = append(s.AdditionalBorders, ab)
		}
	default:
		err = fmt.Errorf("%s: 未知的样式属性 %s", e.Pos, e.Key)
	}
	return err
}

func entryObject(e *dsl.Entry) (*dsl.Block, error) {
	switch {
	case e.Block != nil:
		return e.Block, nil
	case e.Value != nil && e.Value.Object != nil:
		return e.Value.Object, nil
	}
	return nil, fmt.Errorf("%s: %s 需要 { ... } 对象", e.Pos, e.Key)
}

func entryBorder(e *dsl.Entry) (*BorderSpec, error) {
	obj, err := entryObject(e)
	if err != nil {
		return nil, err
	}
	spec := &BorderSpec{}
	for _, f := range obj.Entries {
		if err := applyBorderField(spec, f); err != nil {
			return nil, err
		}
	}
	return spec, nil
}

func applyBorderField(spec *BorderSpec, f *dsl.Entry) error {
	var err error
	switch f.Key {
	case "display":
		var v bool
		v, err = entryBool(f)
		spec.Display = &v
	case "color":
		spec.Color, err = entryColor(f)
	case "width":
		spec.Width, err = entryLength(f)
	case "style":
		var v string
		v, err = entryEnum(f, "solid", "dashed", "dotted")
		spec.Style = LineStyle(v)
	case "dash", "dash-array":
		if spec.DashArray, err = entryNumbers(f); err == nil {
			if verr := ValidateDashArray(spec.DashArray); verr != nil {
				err = fmt.Errorf("%s: %s: %w", f.Pos, f.Key, verr)
			}
		}
	case "phase", "dash-phase":
		spec.DashPhase, err = entryFloat(f)
	default:
		err = fmt.Errorf("%s: 未知的边框属性 %s", f.Pos, f.Key)
	}
	return err
}

func entryAdditionalBorder(e *dsl.Entry) (AdditionalBorder, error) {
	var ab AdditionalBorder
	obj, err := entryObject(e)
	if err != nil {
		return ab, err
	}
	for _, f := range obj.Entries {
		if f.Key == "offset" || f.Key == "y-offset" {
			if ab.YOffset, err = entryLength(f); err != nil {
				return ab, err
			}
			continue
		}
		if err := applyBorderField(&ab.Style, f); err != nil {
			return ab, err
		}
	}
	return ab, nil
}

func entryString(e *dsl.Entry) (string, error) {
	raw, ok := e.Value.Raw()
	if !ok {
		return "", fmt.Errorf("%s: %s 需要标量取值", e.Pos, e.Key)
	}
	return raw, nil
}

func entryEnum(e *dsl.Entry, allowed ...string) (string, error) {
	raw, err := entryString(e)
	if err != nil {
		return "", err
	}
	for _, a := range allowed {
		if raw == a {
			return raw, nil
		}
	}
	return "", fmt.Errorf("%s: %s 的取值 %q 无效（可选: %s）", e.Pos, e.Key, raw, strings.Join(allowed, ", "))
}

func entryInt(e *dsl.Entry) (int, error) {
	raw, err := entryString(e)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%s: %s 需要非负整数，实际为 %q", e.Pos, e.Key, raw)
	}
	return v, nil
}

func entryFloat(e *dsl.Entry) (float64, error) {
	raw, err := entryString(e)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %s 需要数字，实际为 %q", e.Pos, e.Key, raw)
	}
	return v, nil
}

func entryLength(e *dsl.Entry) (float64, error) {
	raw, err := entryString(e)
	if err != nil {
		return 0, err
	}
	v, ok := parsePoints(raw)
	if !ok {
		return 0, fmt.Errorf("%s: %s 的长度 %q 无法解析", e.Pos, e.Key, raw)
	}
	return v, nil
}

func entryLengthPtr(e *dsl.Entry) (*float64, error) {
	v, err := entryLength(e)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func entryBool(e *dsl.Entry) (bool, error) {
	raw, err := entryString(e)
	if err != nil {
		return false, err
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: %s 需要 true/false，实际为 %q", e.Pos, e.Key, raw)
	}
	return v, nil
}

func entryColor(e *dsl.Entry) (*Color, error) {
	raw, err := entryString(e)
	if err != nil {
		return nil, err
	}
	c, err := ParseColor(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.Pos, err)
	}
	return &c, nil
}

func entryNumbers(e *dsl.Entry) ([]float64, error) {
	if e.Value == nil || e.Value.Array == nil {
		return nil, fmt.Errorf("%s: %s 需要数组，例如 [4, 2]", e.Pos, e.Key)
	}
	out := make([]float64, 0, len(e.Value.Array.Values))
	for _, v := range e.Value.Array.Values {
		raw, ok := v.Raw()
		if !ok {
			return nil, fmt.Errorf("%s: %s 只能包含数字", e.Pos, e.Key)
		}
		f, ok := parsePoints(raw)
		if !ok {
			return nil, fmt.Errorf("%s: %s 中的 %q 不是数字", e.Pos, e.Key, raw)
		}
		out = append(out, f)
	}
	return out, nil
}
