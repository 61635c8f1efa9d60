package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// palette styles the parts of a formatted error. color.NoColor turns the
// colored palette into plain text when output is not a terminal.
type palette struct {
	label, category, message, usage, fix, bullet, warning func(a ...any) string
}

var (
	colored = palette{
		label:    color.New(color.FgRed, color.Bold).SprintFunc(),
		category: color.New(color.FgYellow).SprintFunc(),
		message:  color.New(color.FgRed).SprintFunc(),
		usage:    color.New(color.FgCyan).SprintFunc(),
		fix:      color.New(color.FgGreen, color.Bold).SprintFunc(),
		bullet:   color.New(color.FgGreen).SprintFunc(),
		warning:  color.New(color.FgYellow, color.Bold).SprintFunc(),
	}
	plain = palette{
		label:    fmt.Sprint,
		category: fmt.Sprint,
		message:  fmt.Sprint,
		usage:    fmt.Sprint,
		fix:      fmt.Sprint,
		bullet:   fmt.Sprint,
		warning:  fmt.Sprint,
	}
)

// FormatError renders err for the terminal, in color when supported.
func FormatError(err *CLIError) string {
	return render(err, colored)
}

// FormatErrorPlain renders err without escape codes.
func FormatErrorPlain(err *CLIError) string {
	return render(err, plain)
}

// render lays out:
//
//	Error [Category]: message
//
//	Usage: usage
//
//	To fix this:
//	  • hint
func render(err *CLIError, p palette) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s]: %s\n", p.label("Error"), p.category(err.Category), p.message(err.Message))

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s %s\n", p.usage("Usage:"), p.usage(err.Usage))
	}

	if len(err.Hints) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", p.fix("To fix this:"))
		for _, hint := range err.Hints {
			fmt.Fprintf(&sb, "  %s %s\n", p.bullet("•"), hint)
		}
	}
	return sb.String()
}

// FprintError writes FormatError(err) to w.
func FprintError(w io.Writer, err *CLIError) {
	fmt.Fprint(w, FormatError(err))
}

// FprintWarning prints a non-fatal warning line. A non-empty context, such
// as the repository path, is shown in brackets.
func FprintWarning(w io.Writer, context, message string) {
	if context != "" {
		message = fmt.Sprintf("[%s] %s", context, message)
	}
	fmt.Fprintf(w, "%s %s\n", colored.warning("Warning:"), message)
}
