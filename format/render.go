package format

import (
	"html"
	"strings"

	"github.com/beevik/etree"

	"github.com/dgallion1/xmldoc/region"
)

// externalRefMarker prefixes cref values that point outside the set of
// resolvable symbols. The marker is stripped and the remainder rendered
// as an unlinked reference, whether or not a resolver is present.
const externalRefMarker = "!:"

// tagKind is the closed set of recognized element kinds. Dispatching on
// the kind rather than the tag string keeps the handler set exhaustive:
// every kind has exactly one handler and kindUnknown is the default.
type tagKind int

const (
	kindUnknown tagKind = iota
	kindPara
	kindCode
	kindTerm
	kindDescription
	kindList
	kindParamRef
	kindSee
	kindSeeAlso
	kindNote
)

func kindOf(tag string) tagKind {
	switch tag {
	case "para":
		return kindPara
	case "code":
		return kindCode
	case "term":
		return kindTerm
	case "description":
		return kindDescription
	case "list":
		return kindList
	case "paramref", "typeparamref":
		return kindParamRef
	case "see":
		return kindSee
	case "seealso":
		return kindSeeAlso
	case "note":
		return kindNote
	}
	return kindUnknown
}

// renderer accumulates output for one formatting call. It is never
// shared: FormatElement creates one per invocation.
type renderer struct {
	f  *Formatter
	sb strings.Builder
}

// children renders every child token of el in document order. Leaf
// text is HTML-escaped here; this is the only place text enters the
// output outside of attribute fallbacks.
func (r *renderer) children(el *etree.Element) {
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			r.sb.WriteString(escape(t.Data))
		case *etree.Element:
			r.element(t)
		}
	}
}

func (r *renderer) element(el *etree.Element) {
	switch kindOf(el.Tag) {
	case kindPara:
		r.wrap("p", el)
	case kindCode:
		r.code(el)
	case kindTerm:
		r.sb.WriteString(`<span class="term">`)
		r.children(el)
		r.sb.WriteString("</span>")
	case kindDescription:
		r.children(el)
	case kindList:
		r.list(el)
	case kindParamRef:
		r.paramRef(el)
	case kindSee:
		r.see(el, true)
	case kindSeeAlso:
		r.see(el, false)
	case kindNote:
		r.note(el)
	default:
		r.wrap(el.FullTag(), el)
	}
}

func (r *renderer) wrap(tag string, el *etree.Element) {
	r.sb.WriteString("<" + tag + ">")
	r.children(el)
	r.sb.WriteString("</" + tag + ">")
}

// code renders a code block. With a source attribute the text comes
// from the code-source loader, optionally narrowed to a named region,
// and the language class follows the file extension. Without one the
// element's own content is emitted verbatim-escaped under the default
// language.
func (r *renderer) code(el *etree.Element) {
	src := el.SelectAttrValue("source", "")
	if src == "" {
		r.codeBlock(r.f.opts.Language, innerXML(el))
		return
	}
	if r.f.sources == nil {
		r.f.log.Debug("code source skipped, no loader", "source", src)
		return
	}
	name := el.SelectAttrValue("region", "")
	text, err := region.Load(r.f.sources, src, name)
	if err != nil {
		r.f.log.Debug("code source unavailable", "source", src, "region", name, "error", err)
		return
	}
	lang := strings.ToLower(region.Ext(src))
	if lang == "" {
		lang = r.f.opts.Language
	}
	r.codeBlock(lang, text)
}

func (r *renderer) codeBlock(lang, text string) {
	r.sb.WriteString(`<pre><code class="lang-` + escape(lang) + `">`)
	r.sb.WriteString(escape(text))
	r.sb.WriteString("</code></pre>")
}

func (r *renderer) list(el *etree.Element) {
	switch el.SelectAttrValue("type", "") {
	case "table":
		r.table(el)
	case "number":
		r.items("ol", el)
	default:
		r.items("ul", el)
	}
}

func (r *renderer) items(tag string, el *etree.Element) {
	r.sb.WriteString("<" + tag + ">")
	for _, item := range el.SelectElements("item") {
		r.sb.WriteString("<li>")
		r.children(item)
		r.sb.WriteString("</li>")
	}
	r.sb.WriteString("</" + tag + ">")
}

// table renders a type="table" list. The listheader's children become
// the cells of a single header row; each direct item child is one cell
// of the shared body, not one row.
func (r *renderer) table(el *etree.Element) {
	r.sb.WriteString("<table>")
	if header := el.SelectElement("listheader"); header != nil {
		r.sb.WriteString("<thead><tr>")
		for _, tok := range header.Child {
			switch t := tok.(type) {
			case *etree.CharData:
				if strings.TrimSpace(t.Data) == "" {
					continue
				}
				r.sb.WriteString("<td>" + escape(t.Data) + "</td>")
			case *etree.Element:
				r.sb.WriteString("<td>")
				r.element(t)
				r.sb.WriteString("</td>")
			}
		}
		r.sb.WriteString("</tr></thead>")
	}
	r.sb.WriteString("<tbody>")
	for _, item := range el.SelectElements("item") {
		r.sb.WriteString("<td>")
		r.children(item)
		r.sb.WriteString("</td>")
	}
	r.sb.WriteString("</tbody></table>")
}

func (r *renderer) paramRef(el *etree.Element) {
	r.sb.WriteString("<c>")
	r.childrenOr(el, el.SelectAttrValue("name", ""))
	r.sb.WriteString("</c>")
}

// see renders see and seealso elements. The first matching rule wins:
// href, then langword (see only), then cref, else no output.
func (r *renderer) see(el *etree.Element, isSee bool) {
	if href := el.SelectAttrValue("href", ""); href != "" {
		r.sb.WriteString(`<a href="` + escape(href) + `">`)
		r.childrenOr(el, href)
		r.sb.WriteString("</a>")
		return
	}

	if isSee {
		if word := el.SelectAttrValue("langword", ""); word != "" {
			r.langword(el, word)
			return
		}
	}

	if attr := el.SelectAttr("cref"); attr != nil {
		r.cref(el, attr.Value)
		return
	}
}

func (r *renderer) langword(el *etree.Element, word string) {
	if r.f.keywords != nil {
		if url, ok := r.f.keywords.ResolveKeyword(word); ok {
			r.sb.WriteString(`<a href="` + escape(url) + `">`)
			r.childrenOr(el, word)
			r.sb.WriteString("</a>")
			return
		}
	}
	r.sb.WriteString("<c>")
	r.childrenOr(el, word)
	r.sb.WriteString("</c>")
}

func (r *renderer) cref(el *etree.Element, id string) {
	if rest, ok := strings.CutPrefix(id, externalRefMarker); ok {
		r.sb.WriteString(`<c class="xref">` + escape(rest) + "</c>")
		return
	}
	if r.f.crefs == nil {
		return
	}
	name, url := r.f.crefs.ResolveCref(id)
	if url == "" {
		r.f.log.Debug("unresolved cref", "cref", id)
		r.sb.WriteString(`<c class="xref">`)
		r.childrenOr(el, name)
		r.sb.WriteString("</c>")
		return
	}
	r.sb.WriteString(`<a class="xref" href="` + escape(url) + `">`)
	r.childrenOr(el, name)
	r.sb.WriteString("</a>")
}

func (r *renderer) note(el *etree.Element) {
	typ := el.SelectAttrValue("type", "note")
	if typ == "" {
		typ = "note"
	}
	r.sb.WriteString(`<div class="` + escape(typ) + `"><h5>` + escape(typ) + "</h5>")
	r.children(el)
	r.sb.WriteString("</div>")
}

// childrenOr renders el's children if it has any, else the escaped
// fallback text.
func (r *renderer) childrenOr(el *etree.Element, fallback string) {
	if len(el.Child) > 0 {
		r.children(el)
		return
	}
	r.sb.WriteString(escape(fallback))
}

// innerXML reserializes el's children, elements included, as markup.
func innerXML(el *etree.Element) string {
	var sb strings.Builder
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			sb.WriteString(t.Data)
		case *etree.Element:
			d := etree.NewDocument()
			d.SetRoot(t.Copy())
			if s, err := d.WriteToString(); err == nil {
				sb.WriteString(s)
			}
		}
	}
	return sb.String()
}

func escape(s string) string {
	return html.EscapeString(s)
}
