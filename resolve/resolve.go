// Package resolve defines the lookup capabilities the formatter depends
// on: cross-reference resolution, language-keyword links, and code
// source loading. The interfaces are small so embedders can back them
// with a compiler symbol table, a static index, or plain maps; stock
// implementations cover the common cases.
//
// Implementations must be safe for concurrent use: a documentation
// build formats many symbols in parallel and every formatting call may
// invoke the same resolver.
package resolve

import "errors"

// ErrSourceUnavailable reports that a code source identifier could not
// be loaded. Formatters treat it as "emit nothing" rather than a
// failure.
var ErrSourceUnavailable = errors.New("code source unavailable")

// CrefResolver maps a documentation identifier (a cref value) to a
// display name and an optional link target. An empty url means the
// reference resolves to a name but has no page to link to.
// Implementations should return the identifier itself as the name when
// they cannot resolve it.
type CrefResolver interface {
	ResolveCref(id string) (name, url string)
}

// KeywordResolver maps a reserved language keyword (a langword value)
// to its fixed reference URL, if one is maintained for it.
type KeywordResolver interface {
	ResolveKeyword(word string) (url string, ok bool)
}

// SourceLoader maps a code source identifier (typically a repository
// relative file path) to its raw text. A missing source is reported as
// an error wrapping ErrSourceUnavailable, never as fabricated
// placeholder text.
type SourceLoader interface {
	LoadSource(id string) (string, error)
}

// CrefResolverFunc adapts a function to the CrefResolver interface.
type CrefResolverFunc func(id string) (name, url string)

func (f CrefResolverFunc) ResolveCref(id string) (name, url string) { return f(id) }

// KeywordResolverFunc adapts a function to the KeywordResolver interface.
type KeywordResolverFunc func(word string) (url string, ok bool)

func (f KeywordResolverFunc) ResolveKeyword(word string) (url string, ok bool) { return f(word) }

// SourceLoaderFunc adapts a function to the SourceLoader interface.
type SourceLoaderFunc func(id string) (string, error)

func (f SourceLoaderFunc) LoadSource(id string) (string, error) { return f(id) }
