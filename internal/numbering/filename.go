package numbering

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultDigits is the zero-padding width for numbers in filenames.
const DefaultDigits = 3

// Extension is the default document file extension.
const Extension = ".md"

// filenamePattern matches <family>-<number>-<slug>.md where family is
// alphanumeric starting with a letter and slug is kebab-case.
var filenamePattern = regexp.MustCompile(`^([a-z][a-z0-9]*)-(\d+)-([a-z0-9]+(?:-[a-z0-9]+)*)\.md$`)

// Components are the parts extracted from a filename matching the grammar.
type Components struct {
	Family string
	Number string // zero-padded, as it appears in the filename
	Title  string // slug with hyphens restored to spaces
}

// Value returns the numeric value of the padded number component.
func (c Components) Value() int {
	n, _ := strconv.Atoi(c.Number)
	return n
}

// FormatNumber returns n zero-padded to the given number of digits.
// Numbers wider than digits are not truncated.
func FormatNumber(n, digits int) string {
	return fmt.Sprintf("%0*d", digits, n)
}

// Filename builds the canonical filename for a document:
// <family>-<zero-padded-number>-<kebab-title>.md
func Filename(family string, number int, title string) string {
	return fmt.Sprintf("%s-%s-%s%s", family, FormatNumber(number, DefaultDigits), Slugify(title), Extension)
}

// ParseFilename parses a filename produced by Filename back into its
// components. Returns ok=false if the name does not match the grammar.
func ParseFilename(name string) (Components, bool) {
	match := filenamePattern.FindStringSubmatch(name)
	if match == nil {
		return Components{}, false
	}
	return Components{
		Family: match[1],
		Number: match[2],
		Title:  strings.ReplaceAll(match[3], "-", " "),
	}, true
}

// Slugify derives a filename slug from a title: lowercase, non-alphanumeric
// characters dropped, spaces and existing hyphens collapsed to single
// hyphens, no leading or trailing hyphen.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r == ' ' || r == '-' || r == '_':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
