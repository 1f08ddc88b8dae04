package dsl_test

import (
	"strings"
	"testing"

	"github.com/ByLCY/folio/dsl"
)

const sampleDSL = `
// invoice line items
table Invoice {
  options {
    columns: 3
    col-width: 42mm
    repeat-header-rows: 1
  }

  design material {
    font-size: 11
    heading-row { background: #DCDCDC; font-weight: bold }
    border-bottom: { width: 0.5, style: dashed, dash: [4, 2] }
  }

  special nth-row(2) { color: #c00000 }
  special cell(1, 2)
  {
    align: right
  }

  /* header */
  row { cell "Name"  cell "Qty"  cell "Price" }
  row {
    cell "${items[0].name}"
    cell "2" { align: center }
  }

  each item in data.items[0].lines {
    cell "${item.name}"
  }

  merge 3 0 3 1
}
`

func TestParseDocument(t *testing.T) {
	doc, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if doc.Name != "Invoice" {
		t.Fatalf("expected table name Invoice, got %s", doc.Name)
	}

	kinds := make([]string, len(doc.Statements))
	for i, st := range doc.Statements {
		kinds[i] = st.Kind()
	}
	want := "options design special special row row each merge"
	if got := strings.Join(kinds, " "); got != want {
		t.Fatalf("unexpected statements:\n got: %s\nwant: %s", got, want)
	}

	opts := doc.Statements[0].Options.Block
	if len(opts.Entries) != 3 {
		t.Fatalf("expected 3 option entries, got %d", len(opts.Entries))
	}
	if raw, _ := opts.Entries[1].Value.Raw(); raw != "42mm" {
		t.Fatalf("expected col-width 42mm, got %q", raw)
	}
	if opts.Entries[0].Pos.Line != 5 {
		t.Fatalf("expected first option on line 5, got %d", opts.Entries[0].Pos.Line)
	}
}

func TestParseDesign(t *testing.T) {
	doc, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	design := doc.Statements[1].Design
	if design.Preset != "material" {
		t.Fatalf("expected preset material, got %q", design.Preset)
	}
	entries := design.Block.Entries
	if len(entries) != 3 {
		t.Fatalf("expected 3 design entries, got %d", len(entries))
	}
	heading := entries[1]
	if heading.Key != "heading-row" || heading.Block == nil || len(heading.Block.Entries) != 2 {
		t.Fatalf("heading-row block not parsed: %+v", heading)
	}
	if c := heading.Block.Entries[0].Value.Color; c == nil || *c != "#DCDCDC" {
		t.Fatalf("expected color literal, got %+v", heading.Block.Entries[0].Value)
	}
	border := entries[2].Value.Object
	if border == nil || len(border.Entries) != 3 {
		t.Fatalf("expected inline border object with 3 entries, got %+v", entries[2].Value)
	}
	dash := border.Entries[2].Value.Array
	if dash == nil || len(dash.Values) != 2 || *dash.Values[1].Number != "2" {
		t.Fatalf("expected dash array [4, 2], got %+v", border.Entries[2].Value)
	}
}

func TestParseRowsAndEach(t *testing.T) {
	doc, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	header := doc.Statements[4].Row
	if len(header.Cells) != 3 || header.Cells[2].Value != "Price" {
		t.Fatalf("unexpected header row: %+v", header.Cells)
	}
	second := doc.Statements[5].Row
	if second.Cells[0].Value != "${items[0].name}" {
		t.Fatalf("expected interpolation kept verbatim, got %q", second.Cells[0].Value)
	}
	if second.Cells[1].Style == nil || second.Cells[1].Style.Entries[0].Key != "align" {
		t.Fatalf("expected inline cell style, got %+v", second.Cells[1].Style)
	}

	each := doc.Statements[6].Each
	if each.Var != "item" {
		t.Fatalf("expected loop variable item, got %s", each.Var)
	}
	if got := each.Path.String(); got != "data.items[0].lines" {
		t.Fatalf("expected path data.items[0].lines, got %s", got)
	}
	if len(each.Cells) != 1 {
		t.Fatalf("expected 1 cell template, got %d", len(each.Cells))
	}

	merge := doc.Statements[7].Merge
	if len(merge.Coords) != 4 || merge.Coords[0] != 3 || merge.Coords[3] != 1 {
		t.Fatalf("unexpected merge coords: %v", merge.Coords)
	}
}

func TestParseSpecialSelectors(t *testing.T) {
	doc, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	first := doc.Statements[2].Special.Selector
	if first.Name != "nth-row" || len(first.Args) != 1 || first.Args[0] != 2 {
		t.Fatalf("unexpected selector: %s", first)
	}
	second := doc.Statements[3].Special.Selector
	if second.String() != "cell(1, 2)" {
		t.Fatalf("unexpected selector: %s", second)
	}
}

func TestParseSelector(t *testing.T) {
	cases := map[string]string{
		"first-row":       "first-row",
		" nth-column(3) ": "nth-column(3)",
		"cell(0,4)":       "cell(0, 4)",
	}
	for in, want := range cases {
		sel, err := dsl.ParseSelector(in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", in, err)
		}
		if sel.String() != want {
			t.Fatalf("expected %s, got %s", want, sel)
		}
	}
	for _, bad := range []string{"", "nth-row(", "nth-row(1) extra", "(1)"} {
		if _, err := dsl.ParseSelector(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		`table { row { cell "a" } }`,
		`table T { row { cell a } }`,
		`table T { merge 1 2 3 }`,
		`table T { bogus { } }`,
		`table T { each x in items[0 { cell "a" } }`,
	}
	for _, src := range cases {
		if _, err := dsl.Parse(strings.NewReader(src)); err == nil {
			t.Fatalf("expected parse error for %q", src)
		}
	}
}
