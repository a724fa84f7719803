// Package datasets loads and caches translation datasets from disk.
package datasets

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/eternallight/lumen/core/bible"
	"github.com/eternallight/lumen/core/canon"
	lumerr "github.com/eternallight/lumen/core/errors"
	"github.com/eternallight/lumen/internal/cache"
	"github.com/eternallight/lumen/internal/logging"
)

// defaultTTL keeps loaded datasets in memory long enough for a whole
// service; datasets on disk rarely change while the controller runs.
const defaultTTL = 1 * time.Hour

// datasetExtensions lists candidate filenames per translation, tried in order.
var datasetExtensions = []string{".json", ".json.xz", ".xml", ".xml.xz"}

// Manager resolves translation codes to loaded datasets, caching results.
type Manager struct {
	dir   string
	reg   *canon.Registry
	cache *cache.TTLCache[string, *bible.Dataset]
}

// NewManager creates a Manager reading dataset files from dir. Files are
// named after the lowercased translation code (e.g. "rst.json",
// "ktb.json.xz", "nrt.xml").
func NewManager(dir string, reg *canon.Registry) *Manager {
	return &Manager{
		dir:   dir,
		reg:   reg,
		cache: cache.New[string, *bible.Dataset](defaultTTL),
	}
}

// Get returns the dataset for a translation, loading it on first use.
func (m *Manager) Get(translation string) (*bible.Dataset, error) {
	if !m.reg.HasTranslation(translation) {
		return nil, lumerr.NewNotFound("translation", translation)
	}

	if ds, ok := m.cache.Get(translation); ok {
		return ds, nil
	}

	base := strings.ToLower(translation)
	for _, ext := range datasetExtensions {
		path := filepath.Join(m.dir, base+ext)
		if _, err := os.Stat(path); err != nil {
			continue
		}

		ds, err := bible.LoadFile(path, m.reg, translation)
		if err != nil {
			return nil, lumerr.Wrapf(err, "loading dataset %s", translation)
		}

		m.cache.Set(translation, ds)
		logging.DatasetEvent("loaded", translation, "path", path, "books", len(ds.Books))
		return ds, nil
	}

	return nil, lumerr.NewNotFound("dataset", translation)
}

// Invalidate drops a cached dataset so the next Get reloads it from disk.
func (m *Manager) Invalidate(translation string) {
	m.cache.Delete(translation)
}
