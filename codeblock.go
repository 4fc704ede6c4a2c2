package markdown

// CodeBlockScanner tokenizes a code block: an optional run of "key: value"
// header lines followed by the block's source text, taken verbatim line by
// line. Header detection is purely syntactic; keys and values are never
// interpreted here.
type CodeBlockScanner struct {
	*Scanner
}

// NewCodeBlockScanner creates a scanner over one code block's raw text.
func NewCodeBlockScanner(src string) *CodeBlockScanner {
	return &CodeBlockScanner{Scanner: NewScanner(src)}
}

// Tokenize scans the headers, then the remaining source, and returns the
// accumulated tokens in source order.
func (c *CodeBlockScanner) Tokenize() ([]Token, error) {
	if err := c.scanHeaders(); err != nil {
		return nil, err
	}
	if err := c.scanSource(); err != nil {
		return nil, err
	}
	return c.tokens, nil
}

// scanHeaders consumes "key: value" lines from the top of the block. A line
// is a header only when a ": " immediately follows the first colon position
// reached on that line. On the first line that does not match, the
// characters already advanced over stay queued for the source phase, so the
// line is captured as source text rather than dropped. Once the header
// phase ends it is never re-entered: source text may legitimately contain
// ": " without becoming a header.
func (c *CodeBlockScanner) scanHeaders() error {
	for {
		if err := c.nextOnLineUntil(":"); err != nil {
			return err
		}
		if !c.nextIs(": ") {
			return nil
		}
		c.add(CODE_KEY)
		c.add(COLON)
		if err := c.scanSpaces(); err != nil {
			return err
		}
		if err := c.moveToEndOfLine(); err != nil {
			return err
		}
		c.add(CODE_VALUE)
		if err := c.scanBreaks(); err != nil {
			return err
		}
	}
}

// scanSource emits one CODE_SOURCE token per remaining line, with BR tokens
// counting the break runs between them.
func (c *CodeBlockScanner) scanSource() error {
	for !c.atEnd() {
		if err := c.scanBreaks(); err != nil {
			return err
		}
		if c.atEnd() {
			return nil
		}
		if err := c.moveToEndOfLine(); err != nil {
			return err
		}
		c.add(CODE_SOURCE)
	}
	return nil
}
