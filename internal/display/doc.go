// Package display formats user-facing warning blocks for the terminal.
//
// A Warning renders a title, an optional message, the affected paths and an
// optional suggestion:
//
//	w := display.SkippedEntries([]string{"src/link.py"})
//	w.Display(os.Stderr, false)
//
// All output goes through an io.Writer. Color is applied with fatih/color
// only when the caller asks for it, so tests see plain text.
package display
