package resolve

// KeywordTable is a map-backed KeywordResolver. Keywords absent from
// the map have no link and render as plain inline code.
type KeywordTable map[string]string

func (t KeywordTable) ResolveKeyword(word string) (url string, ok bool) {
	url, ok = t[word]
	return url, ok
}

const keywordBase = "https://learn.microsoft.com/dotnet/csharp/language-reference/keywords/"

// DefaultKeywords returns the stock langword table: the C# keywords
// that have a stable reference page. Callers may copy and extend it.
func DefaultKeywords() KeywordTable {
	t := KeywordTable{}
	for _, w := range []string{
		"abstract", "as", "async", "await", "base", "bool", "break",
		"byte", "case", "catch", "char", "checked", "class", "const",
		"continue", "decimal", "default", "delegate", "do", "double",
		"dynamic", "else", "enum", "event", "explicit", "extern",
		"finally", "fixed", "float", "for", "foreach", "goto", "if",
		"implicit", "in", "int", "interface", "internal", "is", "lock",
		"long", "nameof", "namespace", "new", "object", "operator",
		"out", "override", "params", "private", "protected", "public",
		"readonly", "ref", "return", "sbyte", "sealed", "short",
		"sizeof", "stackalloc", "static", "string", "struct", "switch",
		"this", "throw", "try", "typeof", "uint", "ulong", "unchecked",
		"unsafe", "ushort", "using", "var", "virtual", "void",
		"volatile", "while", "yield",
	} {
		t[w] = keywordBase + w
	}
	// Literals live under their own pages.
	t["null"] = keywordBase + "null"
	t["true"] = keywordBase + "true-literal"
	t["false"] = keywordBase + "false-literal"
	return t
}
