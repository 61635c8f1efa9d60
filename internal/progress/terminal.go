package progress

import (
	"os"

	"golang.org/x/term"
)

// Environment switches honoured by Detect. NO_COLOR follows no-color.org;
// TGIT_ASCII=1 forces ASCII glyphs on terminals with poor font coverage.
const (
	envNoColor = "NO_COLOR"
	envASCII   = "TGIT_ASCII"
)

// Detect inspects the terminal behind f. Anything that is not a terminal,
// including a nil file, reports no capabilities at all.
func Detect(f *os.File) TerminalCapabilities {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return TerminalCapabilities{}
	}

	caps := TerminalCapabilities{
		IsTTY:           true,
		SupportsColor:   os.Getenv(envNoColor) == "",
		SupportsUnicode: os.Getenv(envASCII) != "1",
	}
	if w, _, err := term.GetSize(int(f.Fd())); err == nil {
		caps.Width = w
	}
	return caps
}
