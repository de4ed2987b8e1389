// Package render formats phone book listings and status lines for the
// terminal.
package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"

	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// EmptyMessage is printed instead of a table when there are no entries.
const EmptyMessage = "The phone book is empty."

// Column headers, in display order.
var headers = []string{"Name", "Mobile number", "Work number"}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// Status line colors. fatih/color disables them when output is not a
// terminal or NO_COLOR is set.
var (
	successColor = color.New(color.FgGreen)
	noticeColor  = color.New(color.FgYellow)
	failureColor = color.New(color.FgRed)
	promptColor  = color.New(color.FgCyan)
)

// Table writes pb as a bordered table ordered by name, or EmptyMessage.
func Table(w io.Writer, pb types.PhoneBook) error {
	if len(pb) == 0 {
		_, err := fmt.Fprintln(w, EmptyMessage)
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, rec := range pb.Records() {
		t.Row(rec.Name, rec.Mobile, rec.Work)
	}

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// JSON writes pb as an indented JSON array of records ordered by name.
func JSON(w io.Writer, pb types.PhoneBook) error {
	return writeJSON(w, pb.Records())
}

// EntryJSON writes a single record as indented JSON.
func EntryJSON(w io.Writer, name string, e types.Entry) error {
	return writeJSON(w, types.Record{Name: name, Entry: e})
}

func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// Success prints a green status line.
func Success(w io.Writer, format string, args ...any) {
	successColor.Fprintf(w, format+"\n", args...)
}

// Notice prints a yellow status line for normal but negative outcomes such
// as a name that is not found.
func Notice(w io.Writer, format string, args ...any) {
	noticeColor.Fprintf(w, format+"\n", args...)
}

// Failure prints a red status line.
func Failure(w io.Writer, format string, args ...any) {
	failureColor.Fprintf(w, format+"\n", args...)
}

// Prompt prints a cyan prompt line.
func Prompt(w io.Writer, msg string) {
	promptColor.Fprintln(w, msg)
}

// DisableColor turns off colored status lines for the whole process.
func DisableColor() {
	color.NoColor = true
}
