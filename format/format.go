// Package format renders documentation-comment markup into HTML
// fragments. One Formatter call parses a raw fragment into an element
// tree and renders it depth-first, dispatching on the element name.
// Unrecognized tags and unresolved references degrade to neutral
// output instead of failing, so one bad comment cannot abort a batch
// build.
package format

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/beevik/etree"

	"github.com/dgallion1/xmldoc/resolve"
)

// ErrMalformed reports markup that does not parse as XML. It is scoped
// to one fragment; callers should skip or flag the owning comment and
// keep going.
var ErrMalformed = errors.New("malformed documentation markup")

// Options controls rendering behavior.
type Options struct {
	Language string       // CSS language class for inline code blocks.
	Logger   *slog.Logger // Diagnostics for degraded renderings.
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{Language: "csharp"}
}

// Formatter renders documentation fragments. It holds only the
// resolver capabilities and options, so one Formatter may be shared by
// any number of concurrent Format calls; each call owns a private
// output buffer.
type Formatter struct {
	crefs    resolve.CrefResolver
	keywords resolve.KeywordResolver
	sources  resolve.SourceLoader
	opts     Options
	log      *slog.Logger
}

// New returns a Formatter bound to the given capabilities. Any of the
// resolvers may be nil; the affected tags then render their neutral
// fallback.
func New(crefs resolve.CrefResolver, keywords resolve.KeywordResolver, sources resolve.SourceLoader, opts Options) *Formatter {
	if opts.Language == "" {
		opts.Language = "csharp"
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Formatter{
		crefs:    crefs,
		keywords: keywords,
		sources:  sources,
		opts:     opts,
		log:      log,
	}
}

// Parse wraps a raw fragment in a synthetic root element and parses
// it. The returned element is the root; the fragment's own content is
// its children.
func Parse(raw string) (*etree.Element, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString("<doc>" + raw + "</doc>"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return doc.Root(), nil
}

// Format renders a raw documentation fragment to an HTML string.
// The only error condition is markup that does not parse, reported as
// ErrMalformed.
func (f *Formatter) Format(raw string) (string, error) {
	root, err := Parse(raw)
	if err != nil {
		return "", err
	}
	return f.FormatElement(root), nil
}

// FormatElement renders the children of an already-parsed element.
func (f *Formatter) FormatElement(el *etree.Element) string {
	r := renderer{f: f}
	r.children(el)
	return r.sb.String()
}
