// Package comment assembles the rendered documentation record for one
// symbol. A Builder pulls raw per-field markup from a documentation
// provider, formats each field through the tag formatter, and collects
// the cross-cutting pieces (see-alsos, examples) with an independent
// walk over the whole comment.
package comment

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/beevik/etree"

	"github.com/dgallion1/xmldoc/format"
)

// Source is the documentation provider capability for one symbol. The
// raw markup it returns is already macro-expanded (includes and
// inherited docs resolved). Field accessors distinguish an absent
// field (ok false) from a present-but-empty one.
type Source interface {
	// Summary, Remarks and Returns yield the raw markup of the
	// corresponding field.
	Summary() (string, bool)
	Remarks() (string, bool)
	Returns() (string, bool)

	// ParameterNames and TypeParameterNames list declared names in
	// declaration order; Parameter and TypeParameter yield the raw
	// markup documenting one name.
	ParameterNames() []string
	Parameter(name string) (string, bool)
	TypeParameterNames() []string
	TypeParameter(name string) (string, bool)

	// Exceptions lists every documented exception occurrence in
	// document order. One type may occur more than once.
	Exceptions() []ExceptionDoc

	// CommentXML is the whole raw comment, used for the see-also and
	// example walks.
	CommentXML() string
}

// ExceptionDoc is one raw exception occurrence from the provider.
type ExceptionDoc struct {
	Type string // documentation identifier of the exception type
	Text string // raw markup of the description
}

// Documentation is the rendered record for one symbol. Scalar fields
// are nil when the source field is absent, never empty strings.
type Documentation struct {
	Summary *string
	Remarks *string
	Returns *string

	// Parameters and TypeParameters hold one entry per declared name,
	// in declaration order, whether or not the name is documented.
	Parameters     []Param
	TypeParameters []Param

	// Exceptions holds one entry per distinct type in first-seen
	// order; descriptions of repeated types are newline-joined before
	// formatting.
	Exceptions []Exception

	// SeeAlsos lists every seealso element anywhere in the comment, in
	// document order, duplicates preserved.
	SeeAlsos []SeeAlso

	// Examples holds one rendered entry per top-level example element.
	Examples []string
}

// Param couples a declared name with its rendered documentation, nil
// when the name is undocumented.
type Param struct {
	Name string
	Doc  *string
}

// Exception couples an exception type identifier with its rendered
// description.
type Exception struct {
	Type string
	Doc  string
}

// SeeAlso is one see-also link: the href or cref value it points at
// and, when the element has inner content, that content rendered as
// alt text.
type SeeAlso struct {
	Ref string
	Alt *string
}

// Builder builds Documentation records through one shared Formatter.
// It is safe for concurrent use.
type Builder struct {
	f   *format.Formatter
	log *slog.Logger
}

// NewBuilder returns a Builder rendering through f. A nil logger
// discards diagnostics.
func NewBuilder(f *format.Formatter, log *slog.Logger) *Builder {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Builder{f: f, log: log}
}

// Build assembles the record for one symbol. Markup that does not
// parse fails this one symbol with an error wrapping
// format.ErrMalformed; callers should flag the symbol and continue
// with the rest of the build.
func (b *Builder) Build(src Source) (*Documentation, error) {
	d := &Documentation{}

	var err error
	if d.Summary, err = b.scalar(src.Summary); err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}
	if d.Remarks, err = b.scalar(src.Remarks); err != nil {
		return nil, fmt.Errorf("remarks: %w", err)
	}
	if d.Returns, err = b.scalar(src.Returns); err != nil {
		return nil, fmt.Errorf("returns: %w", err)
	}

	if d.Parameters, err = b.params(src.ParameterNames(), src.Parameter); err != nil {
		return nil, fmt.Errorf("parameter %w", err)
	}
	if d.TypeParameters, err = b.params(src.TypeParameterNames(), src.TypeParameter); err != nil {
		return nil, fmt.Errorf("type parameter %w", err)
	}

	if d.Exceptions, err = b.exceptions(src.Exceptions()); err != nil {
		return nil, fmt.Errorf("exception %w", err)
	}

	root, err := format.Parse(src.CommentXML())
	if err != nil {
		return nil, fmt.Errorf("comment: %w", err)
	}
	d.SeeAlsos = b.seeAlsos(root)
	for _, el := range root.SelectElements("example") {
		d.Examples = append(d.Examples, b.f.FormatElement(el))
	}

	return d, nil
}

func (b *Builder) scalar(get func() (string, bool)) (*string, error) {
	raw, ok := get()
	if !ok {
		return nil, nil
	}
	s, err := b.f.Format(raw)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// params iterates declared names, not documentation order, so the
// record always matches the declaration even when the comment lists
// parameters differently or incompletely.
func (b *Builder) params(names []string, get func(string) (string, bool)) ([]Param, error) {
	out := make([]Param, 0, len(names))
	for _, name := range names {
		p := Param{Name: name}
		if raw, ok := get(name); ok {
			s, err := b.f.Format(raw)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			p.Doc = &s
		}
		out = append(out, p)
	}
	return out, nil
}

func (b *Builder) exceptions(occurrences []ExceptionDoc) ([]Exception, error) {
	var order []string
	texts := make(map[string][]string)
	for _, occ := range occurrences {
		if _, seen := texts[occ.Type]; !seen {
			order = append(order, occ.Type)
		}
		texts[occ.Type] = append(texts[occ.Type], occ.Text)
	}

	out := make([]Exception, 0, len(order))
	for _, typ := range order {
		doc, err := b.f.Format(strings.Join(texts[typ], "\n"))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", typ, err)
		}
		out = append(out, Exception{Type: typ, Doc: doc})
	}
	return out, nil
}

// seeAlsos collects every seealso element at any depth, in document
// order. Elements with neither href nor cref are skipped; duplicates
// are kept.
func (b *Builder) seeAlsos(root *etree.Element) []SeeAlso {
	var out []SeeAlso
	var walk func(*etree.Element)
	walk = func(el *etree.Element) {
		for _, child := range el.ChildElements() {
			if child.Tag == "seealso" {
				ref := child.SelectAttrValue("href", "")
				if ref == "" {
					ref = child.SelectAttrValue("cref", "")
				}
				if ref != "" {
					sa := SeeAlso{Ref: ref}
					if len(child.Child) > 0 {
						alt := b.f.FormatElement(child)
						sa.Alt = &alt
					}
					out = append(out, sa)
				}
			}
			walk(child)
		}
	}
	walk(root)
	return out
}
