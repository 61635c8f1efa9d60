// Package progress provides terminal capability detection and a spinner shown
// on stderr while repository history is read.
package progress

// TerminalCapabilities describes what the output terminal can display.
type TerminalCapabilities struct {
	IsTTY           bool
	SupportsColor   bool
	SupportsUnicode bool
	// Width is the column count, 0 when unknown.
	Width int
}

// ProgressSymbols are the glyphs used for progress output.
type ProgressSymbols struct {
	Checkmark  string
	Failure    string
	SpinnerSet int // index into spinner.CharSets
}

var (
	unicodeSymbols = ProgressSymbols{Checkmark: "✓", Failure: "✗", SpinnerSet: 14}
	asciiSymbols   = ProgressSymbols{Checkmark: "[OK]", Failure: "[FAIL]", SpinnerSet: 9}
)

// Symbols picks braille spinner frames and check marks when the terminal
// renders Unicode, ASCII otherwise.
func (c TerminalCapabilities) Symbols() ProgressSymbols {
	if c.SupportsUnicode {
		return unicodeSymbols
	}
	return asciiSymbols
}
