/*
Package xmldoc renders structured XML documentation comments into HTML
fragments for a documentation site.

The work is split across four packages: format renders one markup
fragment through a recursive tag dispatcher, region extracts named
excerpts from external source files, comment assembles the full
rendered record for one symbol, and resolve defines the lookup
capabilities (cross references, language keywords, code sources) the
renderer is parameterized over.

Symbol discovery, site templating and serving stay outside this
module; it consumes raw markup from a documentation provider and emits
HTML fragment strings.
*/
package xmldoc
