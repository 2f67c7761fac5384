package i18n

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"github.com/Zachkp/cv-site/internal/api"
)

// Fetcher performs GET requests. *api.Client satisfies it.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Loader reads "<base>/<lang>.json" from a URL or a local directory.
type Loader struct {
	base    string
	fetcher Fetcher
}

// NewLoader creates a loader for base, which is either an http(s) URL or a
// directory path.
func NewLoader(base string, fetcher Fetcher) *Loader {
	return &Loader{base: base, fetcher: fetcher}
}

// Load fetches and parses the catalog for lang.
func (l *Loader) Load(ctx context.Context, lang string) (*Catalog, error) {
	var body []byte
	var err error

	if strings.HasPrefix(l.base, "http://") || strings.HasPrefix(l.base, "https://") {
		body, err = l.fetcher.Get(ctx, strings.TrimRight(l.base, "/")+"/"+lang+".json")
	} else {
		body, err = os.ReadFile(filepath.Join(l.base, lang+".json"))
		if err != nil {
			err = errors.Wrapf(api.ErrNetwork, "reading translations: %v", err)
		}
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load translations for %s", lang)
	}

	return ParseCatalog(lang, body)
}

// Manager caches catalogs per language for the life of the process.
type Manager struct {
	loader      *Loader
	defaultLang string

	mu       sync.RWMutex
	catalogs map[string]*Catalog
	group    singleflight.Group
}

// NewManager creates a manager backed by loader.
func NewManager(loader *Loader, defaultLang string) *Manager {
	return &Manager{
		loader:      loader,
		defaultLang: defaultLang,
		catalogs:    make(map[string]*Catalog),
	}
}

// DefaultLanguage is the fallback language.
func (m *Manager) DefaultLanguage() string {
	return m.defaultLang
}

// Cached returns the catalog for lang if it was already loaded.
func (m *Manager) Cached(lang string) (*Catalog, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.catalogs[lang]
	return c, ok
}

// Ensure returns the catalog for lang, loading it at most once. Concurrent
// callers for the same language share a single fetch. A failed load is
// logged and yields an empty catalog, which is not cached.
func (m *Manager) Ensure(ctx context.Context, lang string) *Catalog {
	if c, ok := m.Cached(lang); ok {
		return c
	}

	// The load is shared by every waiter, so it must outlive the caller
	// that happened to start it.
	shared := context.WithoutCancel(ctx)
	v, _, _ := m.group.Do(lang, func() (interface{}, error) {
		if c, ok := m.Cached(lang); ok {
			return c, nil
		}

		c, err := m.loader.Load(shared, lang)
		if err != nil {
			log.Printf("Error loading translations for %s: %v", lang, err)
			return Empty(lang), nil
		}

		m.mu.Lock()
		m.catalogs[lang] = c
		m.mu.Unlock()
		log.Printf("Translations loaded for: %s", lang)
		return c, nil
	})
	return v.(*Catalog)
}

// Change switches from current to target. Switching to the current
// language is a no-op.
func (m *Manager) Change(ctx context.Context, current, target string) (string, *Catalog) {
	if target == current {
		return current, m.Ensure(ctx, current)
	}
	c := m.Ensure(ctx, target)
	log.Printf("Language changed to: %s", target)
	return target, c
}
