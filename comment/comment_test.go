package comment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/xmldoc/format"
	"github.com/dgallion1/xmldoc/resolve"
)

// fakeSource is an in-memory documentation provider for one symbol.
type fakeSource struct {
	summary, remarks, returns *string
	paramNames                []string
	params                    map[string]string
	typeParamNames            []string
	typeParams                map[string]string
	excs                      []ExceptionDoc
	xml                       string
}

func (s *fakeSource) Summary() (string, bool) { return deref(s.summary) }
func (s *fakeSource) Remarks() (string, bool) { return deref(s.remarks) }
func (s *fakeSource) Returns() (string, bool) { return deref(s.returns) }

func (s *fakeSource) ParameterNames() []string { return s.paramNames }
func (s *fakeSource) Parameter(name string) (string, bool) {
	raw, ok := s.params[name]
	return raw, ok
}

func (s *fakeSource) TypeParameterNames() []string { return s.typeParamNames }
func (s *fakeSource) TypeParameter(name string) (string, bool) {
	raw, ok := s.typeParams[name]
	return raw, ok
}

func (s *fakeSource) Exceptions() []ExceptionDoc { return s.excs }
func (s *fakeSource) CommentXML() string         { return s.xml }

func deref(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	return *p, true
}

func str(s string) *string { return &s }

func testBuilder() *Builder {
	return NewBuilder(format.New(nil, nil, nil, format.DefaultOptions()), nil)
}

func TestBuild_ScalarFields(t *testing.T) {
	b := testBuilder()
	doc, err := b.Build(&fakeSource{
		summary: str("<para>sums things</para>"),
		returns: str("the total"),
	})
	require.NoError(t, err)

	require.NotNil(t, doc.Summary)
	assert.Equal(t, "<p>sums things</p>", *doc.Summary)
	require.NotNil(t, doc.Returns)
	assert.Equal(t, "the total", *doc.Returns)
	// Absent field stays absent, not empty.
	assert.Nil(t, doc.Remarks)
}

func TestBuild_EmptyFieldIsNotAbsent(t *testing.T) {
	b := testBuilder()
	doc, err := b.Build(&fakeSource{summary: str("")})
	require.NoError(t, err)
	require.NotNil(t, doc.Summary)
	assert.Equal(t, "", *doc.Summary)
}

func TestBuild_ParametersFollowDeclarationOrder(t *testing.T) {
	b := testBuilder()
	// Documentation order is deliberately reversed and incomplete.
	doc, err := b.Build(&fakeSource{
		paramNames: []string{"first", "second", "third"},
		params: map[string]string{
			"third": "last one",
			"first": "first one",
		},
	})
	require.NoError(t, err)

	require.Len(t, doc.Parameters, 3)
	assert.Equal(t, "first", doc.Parameters[0].Name)
	assert.Equal(t, "second", doc.Parameters[1].Name)
	assert.Equal(t, "third", doc.Parameters[2].Name)

	require.NotNil(t, doc.Parameters[0].Doc)
	assert.Equal(t, "first one", *doc.Parameters[0].Doc)
	assert.Nil(t, doc.Parameters[1].Doc)
	require.NotNil(t, doc.Parameters[2].Doc)
	assert.Equal(t, "last one", *doc.Parameters[2].Doc)
}

func TestBuild_TypeParameters(t *testing.T) {
	b := testBuilder()
	doc, err := b.Build(&fakeSource{
		typeParamNames: []string{"TKey", "TValue"},
		typeParams:     map[string]string{"TValue": "stored value"},
	})
	require.NoError(t, err)

	require.Len(t, doc.TypeParameters, 2)
	assert.Nil(t, doc.TypeParameters[0].Doc)
	require.NotNil(t, doc.TypeParameters[1].Doc)
	assert.Equal(t, "stored value", *doc.TypeParameters[1].Doc)
}

func TestBuild_ExceptionsGroupedFirstSeen(t *testing.T) {
	b := testBuilder()
	doc, err := b.Build(&fakeSource{
		excs: []ExceptionDoc{
			{Type: "T:System.ArgumentException", Text: "bad arg"},
			{Type: "T:System.IO.IOException", Text: "disk gone"},
			{Type: "T:System.ArgumentException", Text: "also when empty"},
		},
	})
	require.NoError(t, err)

	require.Len(t, doc.Exceptions, 2)
	assert.Equal(t, "T:System.ArgumentException", doc.Exceptions[0].Type)
	assert.Equal(t, "bad arg\nalso when empty", doc.Exceptions[0].Doc)
	assert.Equal(t, "T:System.IO.IOException", doc.Exceptions[1].Type)
	assert.Equal(t, "disk gone", doc.Exceptions[1].Doc)
}

func TestBuild_SeeAlsosAnyDepth(t *testing.T) {
	b := testBuilder()
	doc, err := b.Build(&fakeSource{
		xml: `<summary>See <seealso cref="T:A"/> here.` +
			`<para><seealso cref="T:B">b docs</seealso></para></summary>` +
			`<seealso href="https://example.com"/>` +
			`<seealso cref="T:A"/>`,
	})
	require.NoError(t, err)

	require.Len(t, doc.SeeAlsos, 4)
	assert.Equal(t, "T:A", doc.SeeAlsos[0].Ref)
	assert.Nil(t, doc.SeeAlsos[0].Alt)
	assert.Equal(t, "T:B", doc.SeeAlsos[1].Ref)
	require.NotNil(t, doc.SeeAlsos[1].Alt)
	assert.Equal(t, "b docs", *doc.SeeAlsos[1].Alt)
	assert.Equal(t, "https://example.com", doc.SeeAlsos[2].Ref)
	// Duplicates are preserved.
	assert.Equal(t, "T:A", doc.SeeAlsos[3].Ref)
}

func TestBuild_ExamplesStaySeparate(t *testing.T) {
	b := testBuilder()
	doc, err := b.Build(&fakeSource{
		xml: `<example><code>var a;</code></example>` +
			`<example><para>second</para></example>`,
	})
	require.NoError(t, err)

	require.Len(t, doc.Examples, 2)
	assert.Equal(t, `<pre><code class="lang-csharp">var a;</code></pre>`, doc.Examples[0])
	assert.Equal(t, "<p>second</p>", doc.Examples[1])
}

func TestBuild_MalformedFieldFailsComment(t *testing.T) {
	b := testBuilder()
	_, err := b.Build(&fakeSource{summary: str("<para>unclosed")})
	require.Error(t, err)
	assert.ErrorIs(t, err, format.ErrMalformed)
}

func TestBuild_CrefResolutionFlowsThrough(t *testing.T) {
	resolver := resolve.CrefResolverFunc(func(id string) (string, string) {
		return "Widget", "widget.html"
	})
	b := NewBuilder(format.New(resolver, nil, nil, format.DefaultOptions()), nil)

	doc, err := b.Build(&fakeSource{
		summary: str(`Builds a <see cref="T:Acme.Widget"/>.`),
	})
	require.NoError(t, err)
	require.NotNil(t, doc.Summary)
	assert.Equal(t, `Builds a <a class="xref" href="widget.html">Widget</a>.`, *doc.Summary)
}
