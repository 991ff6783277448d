package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func newBuffered(jsonOutput, verbose, quiet bool) (*Formatter, *bytes.Buffer) {
	var buf bytes.Buffer
	return &Formatter{
		JSON:      jsonOutput,
		Verbose:   verbose,
		Quiet:     quiet,
		NoColor:   true,
		Writer:    &buf,
		ErrWriter: &buf,
	}, &buf
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		json    bool
		verbose bool
		quiet   bool
	}{
		{"default", false, false, false},
		{"json mode", true, false, false},
		{"verbose mode", false, true, false},
		{"quiet mode", false, false, true},
		{"all options", true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(tt.json, tt.verbose, tt.quiet, false)
			if f == nil {
				t.Fatal("expected non-nil formatter")
			}
			if f.JSON != tt.json {
				t.Errorf("JSON = %v, want %v", f.JSON, tt.json)
			}
			if f.Verbose != tt.verbose {
				t.Errorf("Verbose = %v, want %v", f.Verbose, tt.verbose)
			}
			if f.Quiet != tt.quiet {
				t.Errorf("Quiet = %v, want %v", f.Quiet, tt.quiet)
			}
			if f.Writer == nil {
				t.Error("expected Writer to be set")
			}
			if f.ErrWriter == nil {
				t.Error("expected ErrWriter to be set")
			}
		})
	}
}

func TestPrintJSON(t *testing.T) {
	f, buf := newBuffered(true, false, false)

	if err := f.PrintJSON(map[string]int{"created": 1, "deleted": 2}); err != nil {
		t.Fatalf("PrintJSON() error = %v", err)
	}

	var decoded map[string]int
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["created"] != 1 || decoded["deleted"] != 2 {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestInfof(t *testing.T) {
	f, buf := newBuffered(false, false, false)
	f.Infof("created filter %s", "abc")
	if got := buf.String(); got != "created filter abc\n" {
		t.Errorf("output = %q", got)
	}
}

func TestInfofQuiet(t *testing.T) {
	f, buf := newBuffered(false, false, true)
	f.Infof("should not appear")
	if buf.Len() != 0 {
		t.Errorf("quiet mode produced output: %q", buf.String())
	}
}

func TestInfofJSONMode(t *testing.T) {
	f, buf := newBuffered(true, false, false)
	f.Infof("should not appear")
	if buf.Len() != 0 {
		t.Errorf("json mode produced text output: %q", buf.String())
	}
}

func TestWarningfSurvivesQuiet(t *testing.T) {
	f, buf := newBuffered(false, false, true)
	f.Warningf("no filters found")
	if !strings.Contains(buf.String(), "Warning: no filters found") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestVerbosef(t *testing.T) {
	f, buf := newBuffered(false, true, false)
	f.Verbosef("grouped %d filters", 5)
	if !strings.Contains(buf.String(), "grouped 5 filters") {
		t.Errorf("output = %q", buf.String())
	}

	f, buf = newBuffered(false, false, false)
	f.Verbosef("hidden")
	if buf.Len() != 0 {
		t.Errorf("non-verbose mode produced output: %q", buf.String())
	}
}

func TestPrintError(t *testing.T) {
	f, buf := newBuffered(false, false, false)
	f.PrintError(errors.New("boom"))
	if !strings.Contains(buf.String(), "Error: boom") {
		t.Errorf("output = %q", buf.String())
	}

	f, buf = newBuffered(true, false, false)
	f.PrintError(errors.New("boom"))
	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("json error output invalid: %v", err)
	}
	if decoded["error"] != true || decoded["message"] != "boom" {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestColorDisabled(t *testing.T) {
	f, _ := newBuffered(false, false, false)
	if got := f.Color(Red, "text"); got != "text" {
		t.Errorf("NoColor Color() = %q, want plain text", got)
	}
}

func TestColorEnabled(t *testing.T) {
	f, _ := newBuffered(false, false, false)
	f.NoColor = false
	got := f.Color(Green, "ok")
	if got != Green+"ok"+Reset {
		t.Errorf("Color() = %q", got)
	}
}

func TestTable(t *testing.T) {
	f, buf := newBuffered(false, false, false)
	table := f.NewTable("ID", "CRITERIA")
	table.AddRow("1", "from:a@x.com")
	table.AddRow("2", "from:b@x.com")
	table.Flush()

	out := buf.String()
	for _, want := range []string{"ID", "CRITERIA", "from:a@x.com", "from:b@x.com"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}
