package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Formatter applies one kind of semantic formatting.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

func (f Formatter) render(text string) string {
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// Sprint formats its operands like fmt.Sprint and applies the formatting.
func (f Formatter) Sprint(a ...any) string {
	return f.render(fmt.Sprint(a...))
}

// Sprintf formats according to format and applies the formatting.
func (f Formatter) Sprintf(format string, a ...any) string {
	return f.render(fmt.Sprintf(format, a...))
}

// EnsureNewline appends a newline unless s already ends with one.
func EnsureNewline(s string) string {
	if len(s) == 0 || s[len(s)-1] != '\n' {
		return s + "\n"
	}
	return s
}

func noColor() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return true
	}
	return color.NoColor
}

var (
	// Code is a runnable command. `backticks` without colour.
	Code = Formatter{color.New(color.FgYellow), "`", "`"}

	// Path is a file path.
	Path = Formatter{color.New(color.FgYellow), "", ""}

	// Flag is a CLI flag such as --keyfile.
	Flag = Formatter{color.New(color.FgYellow), "", ""}

	Success = Formatter{color.New(color.FgGreen), "", ""}
	Error   = Formatter{color.New(color.FgRed), "", ""}
	Warning = Formatter{color.New(color.FgYellow), "", ""}
	Info    = Formatter{color.New(color.FgCyan), "", ""}

	// Highlight is a user value: a fingerprint, a size, a suite name.
	Highlight = Formatter{color.New(color.FgCyan), "'", "'"}

	// Muted is secondary text such as units.
	Muted = Formatter{color.New(color.FgHiBlack), "(", ")"}
)

// Tick prefixes a success message.
func Tick() string { return Success.Sprint("✓") }

// Cross prefixes a failure message.
func Cross() string { return Error.Sprint("✗") }

// Arrow prefixes a hint or follow-up line.
func Arrow() string { return Info.Sprint("→") }
