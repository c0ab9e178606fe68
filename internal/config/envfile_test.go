package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeEnvFile(t *testing.T, root, content string) {
	t.Helper()
	dir := StateDir(root)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir state dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.env"), []byte(content), 0o600); err != nil {
		t.Fatalf("write config.env: %v", err)
	}
}

func TestLoadEnvSetsUnsetVariables(t *testing.T) {
	root := t.TempDir()
	writeEnvFile(t, root, "# defaults\nPLANKS_DOCS_DIR=records\nexport PLANKS_TEST_QUOTED=\"with spaces\"\n")

	t.Setenv("PLANKS_DOCS_DIR", "")
	os.Unsetenv("PLANKS_DOCS_DIR")
	t.Setenv("PLANKS_TEST_QUOTED", "")
	os.Unsetenv("PLANKS_TEST_QUOTED")

	if err := LoadEnv(root); err != nil {
		t.Fatalf("LoadEnv() error: %v", err)
	}
	if got := os.Getenv("PLANKS_DOCS_DIR"); got != "records" {
		t.Errorf("PLANKS_DOCS_DIR = %q, want records", got)
	}
	if got := os.Getenv("PLANKS_TEST_QUOTED"); got != "with spaces" {
		t.Errorf("PLANKS_TEST_QUOTED = %q, want unquoted value", got)
	}
}

func TestLoadEnvKeepsExistingValues(t *testing.T) {
	root := t.TempDir()
	writeEnvFile(t, root, "PLANKS_DOCS_DIR=from-file\n")

	t.Setenv("PLANKS_DOCS_DIR", "from-env")
	if err := LoadEnv(root); err != nil {
		t.Fatalf("LoadEnv() error: %v", err)
	}
	if got := os.Getenv("PLANKS_DOCS_DIR"); got != "from-env" {
		t.Errorf("existing value overwritten: %q", got)
	}
}

func TestLoadEnvMissingFile(t *testing.T) {
	if err := LoadEnv(t.TempDir()); err != nil {
		t.Errorf("missing file should not error: %v", err)
	}
}

func TestParseEnvLine(t *testing.T) {
	tests := []struct {
		line      string
		wantKey   string
		wantValue string
		wantOK    bool
	}{
		{line: "KEY=value", wantKey: "KEY", wantValue: "value", wantOK: true},
		{line: "export KEY=value", wantKey: "KEY", wantValue: "value", wantOK: true},
		{line: "KEY='quoted'", wantKey: "KEY", wantValue: "quoted", wantOK: true},
		{line: "# comment", wantOK: false},
		{line: "", wantOK: false},
		{line: "no-equals", wantOK: false},
		{line: "=value", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			key, value, ok := parseEnvLine(tt.line)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && (key != tt.wantKey || value != tt.wantValue) {
				t.Errorf("got (%q, %q), want (%q, %q)", key, value, tt.wantKey, tt.wantValue)
			}
		})
	}
}
