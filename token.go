package markdown

// TokenType represents the kind of token.
type TokenType int

const (
	// Code blocks
	CODE_KEY TokenType = iota
	CODE_VALUE
	CODE_SOURCE

	// Punctuation
	COLON // ":"

	// Runs (Literal carries the run length as an int)
	SPACE // horizontal whitespace run
	BR    // line-break run
)

var tokenTypeNames = map[TokenType]string{
	CODE_KEY:    "CODE_KEY",
	CODE_VALUE:  "CODE_VALUE",
	CODE_SOURCE: "CODE_SOURCE",
	COLON:       "COLON",
	SPACE:       "SPACE",
	BR:          "BR",
}

func (tt TokenType) String() string {
	if name, ok := tokenTypeNames[tt]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token is a lexical token with optional literal value.
type Token struct {
	Type    TokenType
	Lexeme  string      // raw text slice
	Literal interface{} // interpreted value; defaults to the lexeme
	Line    int         // 0-based
	Col     int         // 0-based
}

// Tokenizer converts one source string into an ordered token sequence.
// Concrete scanners for each markup construct implement it.
type Tokenizer interface {
	Tokenize() ([]Token, error)
}

// TokenizerFactory builds a fresh Tokenizer over a source string. Passed to
// the engine's sub-tokenization hook so a scanner can delegate a region to a
// specialized scanner without sharing cursor state.
type TokenizerFactory func(src string) Tokenizer
