package markdown

import (
	"reflect"
	"strings"
	"testing"
)

func toks(t *testing.T, src string) []Token {
	t.Helper()
	ts, err := NewCodeBlockScanner(src).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	return ts
}

func tokenTypes(tokens []Token) []TokenType {
	if len(tokens) == 0 {
		return nil
	}
	out := make([]TokenType, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Type)
	}
	return out
}

func wantTypes(t *testing.T, src string, want []TokenType) []Token {
	t.Helper()
	got := toks(t, src)
	gotTypes := tokenTypes(got)
	if !reflect.DeepEqual(gotTypes, want) {
		t.Fatalf("\nsource:\n%q\nwant types:\n%v\ngot types:\n%v\n", src, want, gotTypes)
	}
	return got
}

func Test_CodeBlock_HeaderSourceBoundary(t *testing.T) {
	src := "a: b\nc: d\nplain text\nmore text"
	got := wantTypes(t, src, []TokenType{
		CODE_KEY, COLON, SPACE, CODE_VALUE, BR,
		CODE_KEY, COLON, SPACE, CODE_VALUE, BR,
		CODE_SOURCE, BR, CODE_SOURCE,
	})
	if got[0].Lexeme != "a" || got[3].Lexeme != "b" {
		t.Fatalf("first header not a/b: %q %q", got[0].Lexeme, got[3].Lexeme)
	}
	if got[5].Lexeme != "c" || got[8].Lexeme != "d" {
		t.Fatalf("second header not c/d: %q %q", got[5].Lexeme, got[8].Lexeme)
	}
	if got[10].Lexeme != "plain text" || got[12].Lexeme != "more text" {
		t.Fatalf("source lines wrong: %q %q", got[10].Lexeme, got[12].Lexeme)
	}
}

func Test_CodeBlock_NoHeaderReDetection(t *testing.T) {
	// Once the header phase falls through, a later "key: value"-looking line
	// stays source text. Source code may legitimately contain ": ".
	src := "plain\nkey: value"
	got := wantTypes(t, src, []TokenType{CODE_SOURCE, BR, CODE_SOURCE})
	if got[2].Lexeme != "key: value" {
		t.Fatalf("later line reinterpreted: %q", got[2].Lexeme)
	}
}

func Test_CodeBlock_ColonWithoutSpaceIsNotHeader(t *testing.T) {
	got := wantTypes(t, "a:b\nc: d", []TokenType{CODE_SOURCE, BR, CODE_SOURCE})
	if got[0].Lexeme != "a:b" || got[2].Lexeme != "c: d" {
		t.Fatalf("unexpected source lexemes: %q %q", got[0].Lexeme, got[2].Lexeme)
	}
}

func Test_CodeBlock_EmptyInput(t *testing.T) {
	got := toks(t, "")
	if len(got) != 0 {
		t.Fatalf("expected no tokens for empty input, got %v", got)
	}
}

func Test_CodeBlock_NoHeaderInput(t *testing.T) {
	got := wantTypes(t, "just code", []TokenType{CODE_SOURCE})
	if got[0].Lexeme != "just code" {
		t.Fatalf("source lexeme wrong: %q", got[0].Lexeme)
	}
}

func Test_CodeBlock_BreakRunLength(t *testing.T) {
	got := wantTypes(t, "\n\n\n", []TokenType{BR})
	if got[0].Literal != 3 {
		t.Fatalf("BR literal = %v, want 3", got[0].Literal)
	}
	if got[0].Lexeme != "\n\n\n" {
		t.Fatalf("BR lexeme = %q", got[0].Lexeme)
	}
}

func Test_CodeBlock_BreakRunMixedCRLF(t *testing.T) {
	got := wantTypes(t, "a: b\r\n\nc", []TokenType{
		CODE_KEY, COLON, SPACE, CODE_VALUE, BR, CODE_SOURCE,
	})
	if got[4].Literal != 2 {
		t.Fatalf("BR literal = %v, want 2 (breaks, not bytes)", got[4].Literal)
	}
	if got[5].Line != 2 || got[5].Col != 0 {
		t.Fatalf("source after CRLF run at %d:%d, want 2:0", got[5].Line, got[5].Col)
	}
}

func Test_CodeBlock_SpaceRunLength(t *testing.T) {
	got := wantTypes(t, "k: \t v", []TokenType{
		CODE_KEY, COLON, SPACE, CODE_VALUE,
	})
	if got[2].Literal != 3 {
		t.Fatalf("SPACE literal = %v, want 3", got[2].Literal)
	}
	if got[2].Lexeme != " \t " {
		t.Fatalf("SPACE lexeme = %q", got[2].Lexeme)
	}
}

func Test_CodeBlock_PositionTracking(t *testing.T) {
	got := toks(t, "a: b\nc")
	last := got[len(got)-1]
	if last.Type != CODE_SOURCE || last.Lexeme != "c" {
		t.Fatalf("last token = %+v, want CODE_SOURCE %q", last, "c")
	}
	if last.Line != 1 || last.Col != 0 {
		t.Fatalf("token for %q at %d:%d, want 1:0", "c", last.Line, last.Col)
	}
}

func Test_CodeBlock_ColumnTracking(t *testing.T) {
	got := toks(t, "lang: go")
	wantCols := []int{0, 4, 5, 6} // lang | : | space | go
	for i, tok := range got {
		if tok.Col != wantCols[i] {
			t.Fatalf("token %d (%v) col = %d, want %d", i, tok.Type, tok.Col, wantCols[i])
		}
		if tok.Line != 0 {
			t.Fatalf("token %d on line %d, want 0", i, tok.Line)
		}
	}
}

func Test_CodeBlock_Determinism(t *testing.T) {
	srcs := []string{
		"",
		"just code",
		"a: b\nc: d\nplain text\nmore text",
		"\n\n\n",
		"lang: go\nfmt.Println(\"hi\")",
	}
	for _, src := range srcs {
		first := toks(t, src)
		second := toks(t, src)
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("tokenizing %q twice diverged:\n%v\n%v", src, first, second)
		}
	}
}

func Test_CodeBlock_LexemeRoundTrip(t *testing.T) {
	srcs := []string{
		"",
		"just code",
		"a: b",
		"a: b\nc",
		"a: b\nc: d\nplain text\nmore text",
		"a:b\nc: d",
		"plain\nkey: value",
		"lang: go\ntitle: hello\n\nfunc main() {\n\tfmt.Println(\"hi\")\n}\n",
		"\n\n\n",
		"k: \t v\r\nbody",
		"trailing break\n",
	}
	for _, src := range srcs {
		var b strings.Builder
		for _, tok := range toks(t, src) {
			b.WriteString(tok.Lexeme)
		}
		if got := b.String(); got != src {
			t.Fatalf("lexeme concat diverged:\nsrc: %q\ngot: %q", src, got)
		}
	}
}

func Test_CodeBlock_HeadersThenBody(t *testing.T) {
	src := "lang: go\ntitle: hello\n\nfunc main() {}\n"
	wantTypes(t, src, []TokenType{
		CODE_KEY, COLON, SPACE, CODE_VALUE, BR,
		CODE_KEY, COLON, SPACE, CODE_VALUE, BR,
		CODE_SOURCE, BR,
	})
	got := toks(t, src)
	// blank line after the headers folds into the second break run
	if got[9].Literal != 2 {
		t.Fatalf("break run between headers and body = %v, want 2", got[9].Literal)
	}
	if got[10].Lexeme != "func main() {}" {
		t.Fatalf("body line = %q", got[10].Lexeme)
	}
	if got[10].Line != 3 {
		t.Fatalf("body line number = %d, want 3", got[10].Line)
	}
}
