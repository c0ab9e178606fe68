package docstore

import (
	"errors"
	"strings"
	"testing"
)

func TestDocumentMarshalUnmarshalRoundTrip(t *testing.T) {
	doc := &Document{
		Path: "adr-001-use-go.md",
		Meta: Metadata{
			"title":   "Use Go",
			"number":  1,
			"created": "2026-08-25",
			"tags":    []any{"language", "tooling"},
			"status":  "accepted",
		},
		Body: "# Use Go\n\nWe will use Go because the team knows it.\n",
	}

	data, err := doc.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	parsed, err := Unmarshal(doc.Path, data)
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	if parsed.Title() != "Use Go" {
		t.Errorf("Title() = %q, want Use Go", parsed.Title())
	}
	if parsed.Number() != 1 {
		t.Errorf("Number() = %d, want 1", parsed.Number())
	}
	if got := parsed.Tags(); len(got) != 2 || got[0] != "language" || got[1] != "tooling" {
		t.Errorf("Tags() = %v", got)
	}
	if parsed.Body != doc.Body {
		t.Errorf("Body = %q, want %q", parsed.Body, doc.Body)
	}
}

func TestDocumentMarshalStableKeyOrder(t *testing.T) {
	doc := &Document{
		Meta: Metadata{
			"zebra":  "last",
			"number": 7,
			"title":  "Ordering",
			"alpha":  "first-of-rest",
		},
		Body: "body\n",
	}

	data, err := doc.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	text := string(data)
	titleIdx := strings.Index(text, "title:")
	numberIdx := strings.Index(text, "number:")
	alphaIdx := strings.Index(text, "alpha:")
	zebraIdx := strings.Index(text, "zebra:")

	if !(titleIdx < numberIdx && numberIdx < alphaIdx && alphaIdx < zebraIdx) {
		t.Errorf("unexpected key order in:\n%s", text)
	}

	// A second marshal must produce identical bytes.
	again, err := doc.Marshal()
	if err != nil {
		t.Fatalf("second Marshal() error: %v", err)
	}
	if string(again) != text {
		t.Error("Marshal() output is not deterministic")
	}
}

func TestUnmarshalMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "no frontmatter", content: "# Just a heading\n\nbody\n"},
		{name: "unterminated block", content: "---\ntitle: Oops\n\nbody without closing\n"},
		{name: "invalid yaml", content: "---\ntitle: [unclosed\n---\n\nbody\n"},
		{name: "scalar frontmatter", content: "---\njust a string\n---\n\nbody\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal("bad.md", []byte(tt.content))
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("Unmarshal() error = %v, want ErrMalformed", err)
			}
		})
	}
}

func TestUnmarshalEmptyBody(t *testing.T) {
	doc, err := Unmarshal("empty.md", []byte("---\ntitle: No Body\n---\n"))
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if doc.Body != "" {
		t.Errorf("Body = %q, want empty", doc.Body)
	}
	if doc.Title() != "No Body" {
		t.Errorf("Title() = %q", doc.Title())
	}
}

func TestNumberToleratesYAMLTypes(t *testing.T) {
	tests := []struct {
		name string
		meta Metadata
		want int
	}{
		{name: "int", meta: Metadata{"number": 3}, want: 3},
		{name: "int64", meta: Metadata{"number": int64(4)}, want: 4},
		{name: "float", meta: Metadata{"number": float64(5)}, want: 5},
		{name: "absent", meta: Metadata{}, want: 0},
		{name: "wrong type", meta: Metadata{"number": "seven"}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &Document{Meta: tt.meta}
			if got := doc.Number(); got != tt.want {
				t.Errorf("Number() = %d, want %d", got, tt.want)
			}
		})
	}
}
