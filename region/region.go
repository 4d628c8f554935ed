// Package region extracts named regions from source files so that code
// tags in documentation can show a relevant excerpt instead of a whole
// file. Regions are delimited by marker lines; the marker syntax is
// chosen from the source file's extension.
package region

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dgallion1/xmldoc/resolve"
)

// ErrRegionNotFound reports that a full scan of the source never found
// a region with the requested name. Callers get an explicit error, not
// the unfiltered source.
var ErrRegionNotFound = errors.New("region not found")

// Syntax identifies the marker pair delimiting regions in a source file.
type Syntax int

const (
	// SyntaxHash uses "#region Name" / "#endregion" lines.
	SyntaxHash Syntax = iota
	// SyntaxMarkup uses "<!-- <Name> -->" / "<!-- </Name> -->" lines,
	// for markup dialects without a #region directive.
	SyntaxMarkup
)

// markupExtensions lists the extensions that use comment markers
// instead of #region directives.
var markupExtensions = map[string]bool{
	"xml":    true,
	"xaml":   true,
	"html":   true,
	"cshtml": true,
	"vbhtml": true,
}

// SyntaxForFile returns the marker syntax for a source identifier
// based on its file extension.
func SyntaxForFile(sourceID string) Syntax {
	if markupExtensions[strings.ToLower(Ext(sourceID))] {
		return SyntaxMarkup
	}
	return SyntaxHash
}

// Ext returns the extension of a source identifier without the leading
// dot, e.g. "cs" for "samples/Program.cs".
func Ext(sourceID string) string {
	if i := strings.LastIndex(sourceID, "."); i >= 0 {
		ext := sourceID[i+1:]
		if !strings.ContainsAny(ext, "/\\") {
			return ext
		}
	}
	return ""
}

var (
	hashStart   = regexp.MustCompile(`^\s*#region\s*(.*?)\s*$`)
	hashEnd     = regexp.MustCompile(`^\s*#endregion`)
	markupStart = regexp.MustCompile(`^\s*<!--\s*<\s*([^/>\s]+)\s*>\s*-->\s*$`)
	markupEnd   = regexp.MustCompile(`^\s*<!--\s*<\s*/\s*([^>\s]+)\s*>\s*-->\s*$`)
)

func (s Syntax) markers() (start, end *regexp.Regexp) {
	if s == SyntaxMarkup {
		return markupStart, markupEnd
	}
	return hashStart, hashEnd
}

// Load resolves a source identifier through the loader and extracts
// the named region. An empty name returns the loaded text unchanged.
func Load(loader resolve.SourceLoader, sourceID, name string) (string, error) {
	text, err := loader.LoadSource(sourceID)
	if err != nil {
		return "", err
	}
	if name == "" {
		return text, nil
	}
	return Extract(text, name, SyntaxForFile(sourceID))
}

// Extract scans text line by line and returns the body of the named
// region with marker lines removed and common leading whitespace
// stripped.
//
// The scan keeps a nesting counter: the matching start marker sets it
// to 1, every further start marker line inside the region increments
// it (its name is not checked, and the line is kept in the output),
// and every end marker line decrements it (the line is dropped).
// Scanning stops when the counter returns to zero. A region still open
// at end of input yields the lines captured so far.
func Extract(text, name string, syntax Syntax) (string, error) {
	start, end := syntax.markers()

	var captured []string
	depth := 0
	found := false

scan:
	for _, line := range splitLines(text) {
		switch {
		case depth == 0:
			if m := start.FindStringSubmatch(line); m != nil && m[1] == name {
				depth = 1
				found = true
			}
		case end.MatchString(line):
			depth--
			if depth == 0 {
				break scan
			}
		default:
			if start.MatchString(line) {
				depth++
			}
			captured = append(captured, line)
		}
	}

	if !found {
		return "", fmt.Errorf("%w: %q", ErrRegionNotFound, name)
	}
	return strings.Join(dedent(captured), "\n"), nil
}

// splitLines splits on newlines with line terminators normalized away.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// dedent strips the minimum common leading-whitespace run from every
// non-blank line. Blank lines become empty.
func dedent(lines []string) []string {
	min := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := leadingWhitespace(line)
		if min < 0 || n < min {
			min = n
		}
	}
	if min < 0 {
		min = 0
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			out[i] = ""
			continue
		}
		out[i] = line[min:]
	}
	return out
}

func leadingWhitespace(line string) int {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' {
			return i
		}
	}
	return len(line)
}
