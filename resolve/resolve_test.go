package resolve

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordTable(t *testing.T) {
	table := KeywordTable{"if": "https://example.com/if"}

	url, ok := table.ResolveKeyword("if")
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/if", url)

	_, ok = table.ResolveKeyword("frobnicate")
	assert.False(t, ok)
}

func TestDefaultKeywords(t *testing.T) {
	table := DefaultKeywords()

	for _, w := range []string{"if", "null", "async", "true", "false"} {
		url, ok := table.ResolveKeyword(w)
		assert.True(t, ok, w)
		assert.True(t, strings.HasPrefix(url, "https://"), w)
	}
	_, ok := table.ResolveKeyword("notakeyword")
	assert.False(t, ok)
}

func TestFileLoader_LoadSource(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "samples"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "samples", "Program.cs"), []byte("var x = 1;\n"), 0o644))

	l := NewFileLoader(root)

	text, err := l.LoadSource("samples/Program.cs")
	require.NoError(t, err)
	assert.Equal(t, "var x = 1;\n", text)

	_, err = l.LoadSource("samples/Missing.cs")
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestFileLoader_RejectsEscapingPaths(t *testing.T) {
	l := NewFileLoader(t.TempDir())
	_, err := l.LoadSource("../outside.cs")
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestFileLoader_CachesFirstRead(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.cs")
	require.NoError(t, os.WriteFile(path, []byte("one"), 0o644))

	l := NewFileLoader(root)
	text, err := l.LoadSource("a.cs")
	require.NoError(t, err)
	assert.Equal(t, "one", text)

	// A rewrite after the first load is not observed.
	require.NoError(t, os.WriteFile(path, []byte("two"), 0o644))
	text, err = l.LoadSource("a.cs")
	require.NoError(t, err)
	assert.Equal(t, "one", text)
}

func TestFileLoader_ConcurrentLoads(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.cs"), []byte("body"), 0o644))

	l := NewFileLoader(root)
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			text, err := l.LoadSource("a.cs")
			if err != nil || text != "body" {
				t.Errorf("got %q, %v", text, err)
			}
		}()
	}
	wg.Wait()
}
