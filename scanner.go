package markdown

import "fmt"

// sentinel is the reserved end-of-input marker. Every bounds-checked read
// returns it once the cursor or lookahead window passes the end of the
// source, which keeps lookahead total: end-of-input is observed by
// comparison, never raised.
const sentinel = "\x00"

// Scanner is the engine shared by all concrete scanners. It owns the source
// string, a character cursor, the queued-character window, and line/column
// counters. Characters between queued and cursor (inclusive) have been
// advanced over but not yet folded into an emitted token.
type Scanner struct {
	src    string
	cursor int // index of the character under the cursor
	queued int // start of characters not yet folded into a token
	line   int // 0-based
	col    int // 0-based column within line
	tokens []Token
}

// NewScanner creates an engine over the given source. A scanner is good for
// one pass; it is not reused across inputs.
func NewScanner(src string) *Scanner {
	return &Scanner{src: src}
}

func (s *Scanner) atEnd() bool { return s.cursor >= len(s.src) }

// at returns the n characters starting at idx, or the sentinel when the
// window would leave the source.
func (s *Scanner) at(idx, n int) string {
	if idx < 0 || n < 1 || idx+n > len(s.src) {
		return sentinel
	}
	return s.src[idx : idx+n]
}

// peek returns the n characters immediately after the cursor without
// consuming them.
func (s *Scanner) peek(n int) string {
	return s.at(s.cursor+1, n)
}

// match reports which candidate, if any, starts at the cursor itself.
func (s *Scanner) match(candidates ...string) (string, bool) {
	for _, c := range candidates {
		if s.at(s.cursor, len(c)) == c {
			return c, true
		}
	}
	return "", false
}

// matchNext reports which candidate, if any, starts immediately after the
// cursor. Each candidate's own length determines the lookahead window.
func (s *Scanner) matchNext(candidates ...string) (string, bool) {
	for _, c := range candidates {
		if s.peek(len(c)) == c {
			return c, true
		}
	}
	return "", false
}

// is tests the candidates anchored at the cursor, inclusive.
func (s *Scanner) is(candidates ...string) bool {
	_, ok := s.match(candidates...)
	return ok
}

// nextIs tests the candidates against the lookahead window.
func (s *Scanner) nextIs(candidates ...string) bool {
	_, ok := s.matchNext(candidates...)
	return ok
}

// next moves the cursor forward n characters. Moving past the end is legal;
// subsequent reads observe the sentinel. Moving backward is a programming
// error in the caller and aborts the scan.
func (s *Scanner) next(n int) error {
	if n < 0 {
		return s.errf("cannot move the cursor backward by %d", n)
	}
	s.cursor += n
	return nil
}

// nextUntil advances one character at a time while the lookahead does not
// match any terminator. Callers must include a terminator that is reachable
// on every input (the sentinel qualifies), or the scan will not terminate.
func (s *Scanner) nextUntil(terminators ...string) error {
	for !s.nextIs(terminators...) {
		if err := s.next(1); err != nil {
			return err
		}
	}
	return nil
}

// nextOnLineUntil is nextUntil bounded to the current line: line breaks and
// the sentinel are always terminators.
func (s *Scanner) nextOnLineUntil(terminators ...string) error {
	return s.nextUntil(append(terminators, "\r\n", "\n", sentinel)...)
}

// moveToEndOfLine advances the cursor to just before the next line break or
// the end of input, without emitting.
func (s *Scanner) moveToEndOfLine() error {
	return s.nextOnLineUntil()
}

// add folds every character from the queued index through the cursor,
// inclusive, into one token of the given kind. The literal defaults to the
// folded lexeme. This is the only place tokens enter the output and the only
// place the queued window resets: the window restarts just past the cursor,
// the column advances by the lexeme's length, and the cursor moves one
// position.
func (s *Scanner) add(kind TokenType, literal ...interface{}) Token {
	end := s.cursor + 1
	if end > len(s.src) {
		end = len(s.src)
	}
	lex := s.src[s.queued:end]
	lit := interface{}(lex)
	if len(literal) > 0 {
		lit = literal[0]
	}
	tok := Token{
		Type:    kind,
		Lexeme:  lex,
		Literal: lit,
		Line:    s.line,
		Col:     s.col,
	}
	s.tokens = append(s.tokens, tok)
	s.queued = s.cursor + 1
	s.col += len(lex)
	s.cursor++
	return tok
}

// scanRepeated consumes a maximal run of the candidates starting at the
// cursor and emits one token whose literal is the number of matches, not one
// token per character. No-op when the cursor is not on a candidate. Returns
// the run length.
func (s *Scanner) scanRepeated(kind TokenType, candidates ...string) (int, error) {
	m, ok := s.match(candidates...)
	if !ok {
		return 0, nil
	}
	if err := s.next(len(m) - 1); err != nil {
		return 0, err
	}
	count := 1
	for {
		m, ok = s.matchNext(candidates...)
		if !ok {
			break
		}
		if err := s.next(len(m)); err != nil {
			return 0, err
		}
		count++
	}
	s.add(kind, count)
	return count, nil
}

// scanSpaces folds a run of horizontal whitespace into one SPACE token.
func (s *Scanner) scanSpaces() error {
	_, err := s.scanRepeated(SPACE, " ", "\t")
	return err
}

// scanBreaks folds a run of line breaks into one BR token, bumps the line
// counter by the run length, and resets the column. Nothing else mutates the
// line counter.
func (s *Scanner) scanBreaks() error {
	n, err := s.scanRepeated(BR, "\r\n", "\n")
	if err != nil {
		return err
	}
	if n > 0 {
		s.line += n
		s.col = 0
	}
	return nil
}

// tokenizeQueued hands the currently queued characters to a fresh scanner
// built by factory, runs it to completion, and splices its tokens into this
// scanner's output. The queued window then resets exactly as add does. The
// sub-scanner owns its own cursor; positions in the spliced tokens are
// relative to the queued chunk.
func (s *Scanner) tokenizeQueued(factory TokenizerFactory) error {
	end := s.cursor + 1
	if end > len(s.src) {
		end = len(s.src)
	}
	if s.queued >= end {
		return nil
	}
	chunk := s.src[s.queued:end]
	toks, err := factory(chunk).Tokenize()
	if err != nil {
		return err
	}
	s.tokens = append(s.tokens, toks...)
	s.queued = s.cursor + 1
	s.col += len(chunk)
	s.cursor++
	return nil
}

func (s *Scanner) errf(format string, args ...interface{}) error {
	return &ScanError{Line: s.line, Col: s.col, Msg: fmt.Sprintf(format, args...)}
}
