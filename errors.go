// errors.go: scan-error type and caret-snippet rendering.
//
// The scanner reports exactly one failure kind: an invalid cursor movement,
// which indicates a programming error in a caller rather than malformed
// input. It surfaces as a *ScanError carrying the position the scan had
// reached. WrapErrorWithSource turns such an error into a readable,
// caret-annotated snippet of the offending source line:
//
//	SCAN ERROR at 3:12: cannot move the cursor backward by -2
//
//	   2 | lang: go
//	   3 | fmt.Println("hi")
//	     |            ^
//	   4 | }
//
// Any other error is returned unchanged.
package markdown

import (
	"fmt"
	"strings"
)

// ScanError is a fatal scanning failure with the 0-based position the scan
// had reached when it was raised.
type ScanError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("SCAN ERROR at %d:%d: %s", e.Line+1, e.Col+1, e.Msg)
}

// WrapErrorWithSource returns an error whose message is a caret-annotated
// snippet of src when err is a *ScanError, and err unchanged otherwise.
// Positions are rendered 1-based and clamped to the source bounds, so short
// or empty sources never break rendering.
func WrapErrorWithSource(err error, src string) error {
	e, ok := err.(*ScanError)
	if !ok {
		return err
	}
	return fmt.Errorf("%s", prettyErrorString(src, e.Line+1, e.Col+1, e.Msg))
}

// prettyErrorString builds a Python-like snippet with a header and a caret.
// It shows at most one previous and one next line when available.
// Coordinates are 1-based and clamped to the source bounds.
func prettyErrorString(src string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	lineTxt := lines[line-1]

	var b strings.Builder
	fmt.Fprintf(&b, "SCAN ERROR at %d:%d: %s\n\n", line, col, msg)
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	caretPad := col - 1
	if caretPad > len(lineTxt) {
		caretPad = len(lineTxt)
	}
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", caretPad))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
