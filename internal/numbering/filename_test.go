package numbering

import "testing"

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		n      int
		digits int
		want   string
	}{
		{n: 7, digits: 3, want: "007"},
		{n: 42, digits: 3, want: "042"},
		{n: 1234, digits: 3, want: "1234"},
		{n: 1, digits: 5, want: "00001"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.n, tt.digits); got != tt.want {
			t.Errorf("FormatNumber(%d, %d) = %q, want %q", tt.n, tt.digits, got, tt.want)
		}
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{title: "Improve Parser", want: "improve-parser"},
		{title: "Use  PostgreSQL!", want: "use-postgresql"},
		{title: "already-kebab", want: "already-kebab"},
		{title: "Mixed_Case With   Spaces", want: "mixed-case-with-spaces"},
		{title: "--- leading & trailing ---", want: "leading-trailing"},
		{title: "C++ (v2)", want: "c-v2"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := Slugify(tt.title); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestFilenameRoundTrip(t *testing.T) {
	name := Filename("plan", 7, "Improve Parser")
	if name != "plan-007-improve-parser.md" {
		t.Fatalf("Filename() = %q", name)
	}

	components, ok := ParseFilename(name)
	if !ok {
		t.Fatal("ParseFilename() did not match its own output")
	}
	if components.Family != "plan" {
		t.Errorf("Family = %q, want plan", components.Family)
	}
	if components.Number != "007" {
		t.Errorf("Number = %q, want 007", components.Number)
	}
	if components.Title != "improve parser" {
		t.Errorf("Title = %q, want %q", components.Title, "improve parser")
	}
	if components.Value() != 7 {
		t.Errorf("Value() = %d, want 7", components.Value())
	}
}

func TestParseFilenameRejectsNonMatching(t *testing.T) {
	bad := []string{
		"README.md",
		"adr-abc-title.md",
		"adr-001.md",
		"adr-001-title.txt",
		"-001-title.md",
		"adr-001-Title.md",
		"adr-001-title.md.backup.2026-08-25T10-00-00Z",
	}

	for _, name := range bad {
		if _, ok := ParseFilename(name); ok {
			t.Errorf("ParseFilename(%q) matched, want no match", name)
		}
	}
}
