package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner shows activity on a terminal. On anything that is not a TTY it
// does nothing, so piped output stays clean.
type Spinner struct {
	mu      sync.Mutex
	s       *spinner.Spinner
	w       io.Writer
	symbols ProgressSymbols
	enabled bool
	running bool
}

// NewSpinner creates a spinner writing to w with the given message.
func NewSpinner(w io.Writer, caps TerminalCapabilities, message string) *Spinner {
	symbols := caps.Symbols()
	sp := &Spinner{w: w, symbols: symbols, enabled: caps.IsTTY}
	if sp.enabled {
		sp.s = spinner.New(spinner.CharSets[symbols.SpinnerSet], 100*time.Millisecond, spinner.WithWriter(w))
		sp.s.Suffix = " " + message
	}
	return sp
}

// Start begins animating. Calling Start on a running spinner is a no-op.
func (sp *Spinner) Start() {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	if !sp.enabled || sp.running {
		return
	}
	sp.s.Start()
	sp.running = true
}

// UpdateMessage replaces the text shown next to the spinner.
func (sp *Spinner) UpdateMessage(message string) {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	if !sp.enabled {
		return
	}
	sp.s.Lock()
	sp.s.Suffix = " " + message
	sp.s.Unlock()
}

// Stop halts the spinner and, when ok is known, prints a final status line.
func (sp *Spinner) Stop(final string, ok bool) {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	if !sp.enabled || !sp.running {
		return
	}
	sp.s.Stop()
	sp.running = false
	if final == "" {
		return
	}
	symbol := sp.symbols.Checkmark
	if !ok {
		symbol = sp.symbols.Failure
	}
	fmt.Fprintf(sp.w, "%s %s\n", symbol, final)
}
