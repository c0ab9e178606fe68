package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil error", err: nil, want: ExitSuccess},
		{name: "user error", err: NewUserError("bad input"), want: ExitUserError},
		{name: "system error", err: NewSystemError("disk on fire"), want: ExitSystemError},
		{name: "conflict error", err: NewConflictError("already there"), want: ExitConflict},
		{name: "untyped error", err: errors.New("plain"), want: ExitUserError},
		{name: "wrapped exit error", err: wrap(NewConflictError("nested")), want: ExitConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func wrap(err error) error {
	return &ExitError{Code: GetExitCode(err), Message: "outer", Cause: err}
}

func TestExitErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewSystemErrorWithCause("wrapper", cause)
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause through Unwrap")
	}
}

func TestPrinterErrorJSON(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, true, false)
	p.Error(NewUserError("document not found: adr-001"))

	got := buf.String()
	if !strings.Contains(got, `"error"`) || !strings.Contains(got, "adr-001") {
		t.Errorf("JSON error output missing fields: %q", got)
	}
	if !strings.Contains(got, `"code"`) {
		t.Errorf("JSON error output missing code: %q", got)
	}
}

func TestPrinterErrorHumanGoesToStderr(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, false, false).WithStderr(&errOut)
	p.Error(NewSystemError("boom"))

	if out.Len() != 0 {
		t.Errorf("human error should not write to stdout, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "boom") {
		t.Errorf("stderr missing error message: %q", errOut.String())
	}
}

func TestPrinterSuccessMessage(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false, false)
	if err := p.Success(map[string]any{"message": "created adr-001"}); err != nil {
		t.Fatalf("Success() error: %v", err)
	}
	if !strings.Contains(buf.String(), "created adr-001") {
		t.Errorf("missing success message: %q", buf.String())
	}
}

func TestPrinterTable(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false, false)
	p.Table([]string{"From", "To"}, [][]string{
		{"adr-001", "adr-002"},
		{"plan-001", "adr-001"},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[1], "adr-001 ") {
		t.Errorf("first column should be padded to width: %q", lines[1])
	}
}

func TestPrinterWarnJSON(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, true, false)
	p.Warn("cycle detected at %s", "adr-001")
	if !strings.Contains(buf.String(), "cycle detected at adr-001") {
		t.Errorf("missing warning: %q", buf.String())
	}
}
