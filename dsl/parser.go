package dsl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{8}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})\b`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `-?(?:\d+\.\d+|\d+)(?:pt|mm|cm|in|px|%|x)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[][(),.=+\-*/%<>!?;:]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	identTokenType  = mustTokenType("Ident")
	numberTokenType = mustTokenType("Number")
	symbolTokenType = mustTokenType("Symbol")

	parserOptions = []participle.Option{
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	}

	documentParser = participle.MustBuild[Document](parserOptions...)
	selectorParser = participle.MustBuild[SelectorExpr](parserOptions...)
)

// Document is the root AST node: `table Name { ... }`.
type Document struct {
	Pos        lexer.Position `parser:"" json:"-"`
	Name       string         `parser:"Newline* 'table' @Ident"`
	Statements []*Statement   `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}' Newline*"`
}

// Statement is one top-level table statement.
type Statement struct {
	Options *OptionsStmt `parser:"  @@"`
	Design  *DesignStmt  `parser:"| @@"`
	Special *SpecialStmt `parser:"| @@"`
	Row     *RowStmt     `parser:"| @@"`
	Each    *EachStmt    `parser:"| @@"`
	Merge   *MergeStmt   `parser:"| @@"`
}

// Kind returns the human-readable statement type.
func (s *Statement) Kind() string {
	switch {
	case s == nil:
		return "unknown"
	case s.Options != nil:
		return "options"
	case s.Design != nil:
		return "design"
	case s.Special != nil:
		return "special"
	case s.Row != nil:
		return "row"
	case s.Each != nil:
		return "each"
	case s.Merge != nil:
		return "merge"
	default:
		return "unknown"
	}
}

// OptionsStmt holds table dimensions and paging options.
type OptionsStmt struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Block *Block         `parser:"'options' @@"`
}

// DesignStmt optionally starts from a named preset, then applies the block.
type DesignStmt struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Preset string         `parser:"'design' @Ident?"`
	Block  *Block         `parser:"@@?"`
}

// SpecialStmt appends a selector-based style override.
type SpecialStmt struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Selector *SelectorExpr  `parser:"'special' @@"`
	Block    *Block         `parser:"Newline* @@"`
}

// SelectorExpr is `name` or `name(arg, ...)`, eg: first-row, nth-row(2), cell(1, 3).
type SelectorExpr struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Name string         `parser:"@Ident"`
	Args []int          `parser:"( '(' ( @Number ( ',' @Number )* )? ')' )?"`
}

func (s *SelectorExpr) String() string {
	if len(s.Args) == 0 {
		return s.Name
	}
	args := make([]string, len(s.Args))
	for i, a := range s.Args {
		args[i] = strconv.Itoa(a)
	}
	return s.Name + "(" + strings.Join(args, ", ") + ")"
}

// RowStmt appends one row of cells.
type RowStmt struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Cells []*CellStmt    `parser:"'row' '{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// CellStmt is a cell literal with an optional inline style block.
type CellStmt struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Value StringLiteral  `parser:"'cell' @String"`
	Style *Block         `parser:"@@?"`
}

// EachStmt expands one row per element of the array at Path.
type EachStmt struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Var   string         `parser:"'each' @Ident"`
	Path  *PathExpr      `parser:"'in' @@"`
	Cells []*CellStmt    `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// MergeStmt merges the rectangle `startRow startCol endRow endCol`.
type MergeStmt struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Coords []int          `parser:"'merge' @Number @Number @Number @Number"`
}

// Block is a delimited list of entries (`key: value` or `key { ... }`).
type Block struct {
	Entries []*Entry `parser:"'{' Newline* ( @@ ( ';' | ',' | Newline )* )* '}'"`
}

// Entry is a key with either a value or a nested block.
type Entry struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Key   string         `parser:"@Ident"`
	Value *Value         `parser:"( ':' Newline* @@ )?"`
	Block *Block         `parser:"@@?"`
}

// Value represents generic property values.
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	Color  *string        `parser:"| @Color"`
	Ident  *string        `parser:"| @Ident"`
	Array  *ArrayValue    `parser:"| @@"`
	Object *Block         `parser:"| @@"`
}

// ArrayValue captures `[ ... ]` expressions.
type ArrayValue struct {
	Values []*Value `parser:"'[' Newline* ( @@ ( (',' | ';' | Newline+) Newline* @@ )* )? Newline* ']'"`
}

// Raw returns the literal text of a scalar value.
func (v *Value) Raw() (string, bool) {
	switch {
	case v == nil:
		return "", false
	case v.String != nil:
		return string(*v.String), true
	case v.Number != nil:
		return *v.Number, true
	case v.Color != nil:
		return *v.Color, true
	case v.Ident != nil:
		return *v.Ident, true
	default:
		return "", false
	}
}

// PathExpr is a data path such as `data.items[0].lines`.
type PathExpr struct {
	Pos lexer.Position
	Raw string
}

func (p *PathExpr) String() string {
	if p == nil {
		return ""
	}
	return p.Raw
}

// Parse implements participle.Parseable: it consumes identifiers, numbers and
// the symbols `.`, `[`, `]` up to the first token that cannot belong to a path.
func (p *PathExpr) Parse(lex *lexer.PeekingLexer) error {
	start := lex.Peek()
	var b strings.Builder
	depth := 0
	for tok := lex.Peek(); isPathToken(tok, depth); tok = lex.Peek() {
		switch tok.Value {
		case "[":
			depth++
		case "]":
			depth--
		}
		b.WriteString(tok.Value)
		lex.Next()
	}
	if b.Len() == 0 {
		return participle.NextMatch
	}
	if depth != 0 {
		return participle.Errorf(start.Pos, "unbalanced '[' in path %s", b.String())
	}
	p.Pos = start.Pos
	p.Raw = b.String()
	return nil
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses DSL content from an io.Reader.
func Parse(r io.Reader) (*Document, error) {
	return documentParser.Parse("", r)
}

// ParseString parses DSL content from a string.
func ParseString(input string) (*Document, error) {
	return documentParser.ParseString("", input)
}

// ParseSelector parses a standalone selector expression such as `nth-row(2)`.
func ParseSelector(input string) (*SelectorExpr, error) {
	return selectorParser.ParseString("", strings.TrimSpace(input))
}

func isPathToken(tok *lexer.Token, depth int) bool {
	if tok == nil || tok.EOF() {
		return false
	}
	switch tok.Type {
	case identTokenType, numberTokenType:
		return true
	case symbolTokenType:
		switch tok.Value {
		case ".", "[":
			return true
		case "]":
			return depth > 0
		}
	}
	return false
}

func mustTokenType(name string) lexer.TokenType {
	symbols := dslLexer.Symbols()
	tt, ok := symbols[name]
	if !ok {
		panic(fmt.Sprintf("token %s not defined", name))
	}
	return tt
}
