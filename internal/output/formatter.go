package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"
)

// ANSI color codes
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
	Gray   = "\033[90m"
)

// Formatter renders all operator-facing output. Text goes to Writer,
// errors to ErrWriter; in JSON mode structured objects replace the text
// rendering entirely.
type Formatter struct {
	JSON      bool
	Verbose   bool
	Quiet     bool
	NoColor   bool
	Writer    io.Writer
	ErrWriter io.Writer
}

func New(jsonOutput, verbose, quiet, noColor bool) *Formatter {
	if !noColor && !term.IsTerminal(int(os.Stdout.Fd())) {
		noColor = true
	}
	return &Formatter{
		JSON:      jsonOutput,
		Verbose:   verbose,
		Quiet:     quiet,
		NoColor:   noColor,
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
	}
}

// Color wraps text in ANSI color codes if colors are enabled
func (f *Formatter) Color(color, text string) string {
	if f.NoColor || f.JSON {
		return text
	}
	return color + text + Reset
}

func (f *Formatter) BoldText(text string) string {
	return f.Color(Bold, text)
}

func (f *Formatter) SuccessText(text string) string {
	return f.Color(Green, text)
}

func (f *Formatter) ErrorText(text string) string {
	return f.Color(Red, text)
}

func (f *Formatter) WarningText(text string) string {
	return f.Color(Yellow, text)
}

func (f *Formatter) InfoText(text string) string {
	return f.Color(Cyan, text)
}

func (f *Formatter) MutedText(text string) string {
	return f.Color(Gray, text)
}

func (f *Formatter) PrintJSON(v interface{}) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Infof prints a normal progress line. Suppressed by --quiet and in JSON
// mode, where only the final structured result is emitted.
func (f *Formatter) Infof(format string, args ...interface{}) {
	if f.Quiet || f.JSON {
		return
	}
	fmt.Fprintf(f.Writer, format+"\n", args...)
}

// Warningf prints a warning line. Warnings survive --quiet.
func (f *Formatter) Warningf(format string, args ...interface{}) {
	if f.JSON {
		return
	}
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(f.Writer, f.WarningText("Warning:")+" "+msg)
}

// Errorf prints an error line to the error stream. Never suppressed.
func (f *Formatter) Errorf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(f.ErrWriter, f.ErrorText("Error:")+" "+msg)
}

func (f *Formatter) PrintError(err error) {
	if f.JSON {
		f.PrintJSON(map[string]interface{}{
			"error":   true,
			"message": err.Error(),
		})
		return
	}
	f.Errorf("%v", err)
}

func (f *Formatter) PrintSuccess(message string) {
	if f.Quiet {
		return
	}
	if f.JSON {
		f.PrintJSON(map[string]interface{}{
			"success": true,
			"message": message,
		})
		return
	}
	fmt.Fprintln(f.Writer, f.SuccessText("✓")+" "+message)
}

func (f *Formatter) Verbosef(format string, args ...interface{}) {
	if f.Verbose && !f.Quiet && !f.JSON {
		msg := fmt.Sprintf(format, args...)
		fmt.Fprintln(f.Writer, f.MutedText(msg))
	}
}

type TableWriter struct {
	w         *tabwriter.Writer
	formatter *Formatter
}

func (f *Formatter) NewTable(headers ...string) *TableWriter {
	tw := &TableWriter{
		w:         tabwriter.NewWriter(f.Writer, 0, 0, 2, ' ', 0),
		formatter: f,
	}
	if len(headers) > 0 {
		coloredHeaders := make([]string, len(headers))
		for i, h := range headers {
			coloredHeaders[i] = f.BoldText(h)
		}
		fmt.Fprintln(tw.w, strings.Join(coloredHeaders, "\t"))
	}
	return tw
}

func (t *TableWriter) AddRow(values ...string) {
	fmt.Fprintln(t.w, strings.Join(values, "\t"))
}

func (t *TableWriter) Flush() {
	t.w.Flush()
}
