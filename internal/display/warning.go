package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files (optional)
	Suggestion string   // Action to take (optional)
}

// Render formats the warning as an indented block, in yellow when colored is true.
func (w Warning) Render(colored bool) string {
	var b strings.Builder

	b.WriteString("Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		b.WriteString("    ")
		if len(w.Files) == 1 {
			b.WriteString("Affected path:\n")
		} else {
			b.WriteString("Affected paths:\n")
		}

		for i, file := range w.Files {
			b.WriteString(fmt.Sprintf("      %d. %s\n", i+1, file))
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	if !colored {
		return b.String()
	}

	yellow := color.New(color.FgYellow)
	yellow.EnableColor()
	return yellow.Sprint(b.String())
}

// Display writes the rendered warning to out.
func (w Warning) Display(out io.Writer, colored bool) {
	fmt.Fprint(out, w.Render(colored))
}

// SkippedEntries builds the warning shown after a scan that passed over
// symbolic links or unreadable directories.
func SkippedEntries(paths []string) Warning {
	noun := "entries"
	if len(paths) == 1 {
		noun = "entry"
	}
	return Warning{
		Title:      fmt.Sprintf("Skipped %d %s during traversal", len(paths), noun),
		Message:    "Symbolic links are not followed; unreadable directories are skipped only with on_error: skip",
		Files:      paths,
		Suggestion: "Scan the link target directly, or fix permissions and run again",
	}
}
