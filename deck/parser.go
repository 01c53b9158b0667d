package deck

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	deckLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		// Grid must come before Number so "2x4" lexes as one token.
		{Name: "Grid", Pattern: `\d+x\d+`},
		{Name: "Number", Pattern: `\d+(?:\.\d+)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[:;,]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	stringTokenType = mustTokenType("String")
	identTokenType  = mustTokenType("Ident")

	documentParser = participle.MustBuild[Document](
		participle.Lexer(deckLexer),
		participle.Elide("Whitespace", "LineComment", "HashComment"),
	)
)

func mustTokenType(name string) lexer.TokenType {
	t, ok := deckLexer.Symbols()[name]
	if !ok {
		panic(fmt.Sprintf("deck lexer is missing token %q", name))
	}
	return t
}

// Document is the root AST node for a deck manifest.
type Document struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Name     StringOrIdent  `parser:"Newline* 'deck' @@"`
	Version  string         `parser:"@Ident"`
	Sections []*Section     `parser:"'{' Newline* ( @@ Newline* )* '}' Newline*"`
}

// Section represents a top-level section (meta/source/assets/print).
type Section struct {
	Meta   *Block `parser:"  'meta' @@"`
	Source *Block `parser:"| 'source' @@"`
	Assets *Block `parser:"| 'assets' @@"`
	Print  *Block `parser:"| 'print' @@"`
}

// Kind returns the human-readable section type.
func (s *Section) Kind() string {
	switch {
	case s == nil:
		return "unknown"
	case s.Meta != nil:
		return "meta"
	case s.Source != nil:
		return "source"
	case s.Assets != nil:
		return "assets"
	case s.Print != nil:
		return "print"
	default:
		return "unknown"
	}
}

// Block is a delimited list of key/value entries.
type Block struct {
	Entries []*Entry `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Entry is a single assignment using colon syntax (key: value).
type Entry struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Key   string         `parser:"@Ident ':' Newline*"`
	Value *Value         `parser:"@@"`
}

// Value represents a property value. Bare identifiers cover enum-like
// settings (cut-ready, landscape); quoted strings cover paths and names.
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Grid   *string        `parser:"| @Grid"`
	Number *string        `parser:"| @Number"`
	Ident  *string        `parser:"| @Ident"`
}

// Text returns the value as plain text regardless of its lexical form.
func (v *Value) Text() string {
	switch {
	case v == nil:
		return ""
	case v.String != nil:
		return string(*v.String)
	case v.Grid != nil:
		return *v.Grid
	case v.Number != nil:
		return *v.Number
	case v.Ident != nil:
		return *v.Ident
	default:
		return ""
	}
}

// StringOrIdent accepts either a quoted string or a bare identifier.
type StringOrIdent struct {
	Value string
}

// Parse implements participle.Parseable.
func (s *StringOrIdent) Parse(lex *lexer.PeekingLexer) error {
	tok := lex.Peek()
	if tok.EOF() {
		return participle.NextMatch
	}
	switch tok.Type {
	case stringTokenType:
		unquoted, err := strconv.Unquote(tok.Value)
		if err != nil {
			return err
		}
		lex.Next()
		s.Value = unquoted
		return nil
	case identTokenType:
		lex.Next()
		s.Value = tok.Value
		return nil
	default:
		return participle.NextMatch
	}
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

// Parse parses a deck manifest from an io.Reader.
func Parse(r io.Reader) (*Document, error) {
	return documentParser.Parse("", r)
}

// ParseString parses a deck manifest from a string.
func ParseString(input string) (*Document, error) {
	return documentParser.ParseString("", input)
}
