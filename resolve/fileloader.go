package resolve

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// FileLoader is a SourceLoader backed by files under a root directory.
// Loaded sources are cached for the lifetime of the loader, and
// concurrent loads of the same identifier are collapsed into one read:
// a documentation build formats many symbols in parallel and example
// code tags tend to reference a small shared set of files.
type FileLoader struct {
	root string

	group singleflight.Group
	mu    sync.RWMutex
	cache map[string]string
}

// NewFileLoader returns a loader that resolves source identifiers as
// paths relative to root.
func NewFileLoader(root string) *FileLoader {
	return &FileLoader{
		root:  root,
		cache: make(map[string]string),
	}
}

// LoadSource reads the file named by id. Identifiers escaping the root
// directory or naming unreadable files yield ErrSourceUnavailable.
func (l *FileLoader) LoadSource(id string) (string, error) {
	l.mu.RLock()
	text, ok := l.cache[id]
	l.mu.RUnlock()
	if ok {
		return text, nil
	}

	v, err, _ := l.group.Do(id, func() (any, error) {
		path := filepath.Join(l.root, filepath.FromSlash(id))
		rel, err := filepath.Rel(l.root, path)
		if err != nil || strings.HasPrefix(rel, "..") {
			return nil, fmt.Errorf("%w: %s escapes source root", ErrSourceUnavailable, id)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, id, err)
		}
		text := string(data)
		l.mu.Lock()
		l.cache[id] = text
		l.mu.Unlock()
		return text, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
