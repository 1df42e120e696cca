package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/miradorstack/tenant-posture/internal/models"
)

// Catalog holds display metadata for known standards.
type Catalog struct {
	entries map[string]Entry
}

// Entry describes a single standard.
type Entry struct {
	Key      string `yaml:"key"`
	Label    string `yaml:"label"`
	Category string `yaml:"category"`
	Impact   string `yaml:"impact"`
}

// File is the YAML root structure.
type File struct {
	Standards []Entry `yaml:"standards"`
}

// Load reads a catalog from path. An empty path or a missing file returns a nil
// catalog, which annotates nothing.
func Load(path string, logger *slog.Logger) (*Catalog, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	entries := make(map[string]Entry, len(file.Standards))
	for _, entry := range file.Standards {
		key := strings.TrimSpace(entry.Key)
		if key == "" {
			continue
		}
		if _, dup := entries[key]; dup {
			logger.Warn("duplicate catalog entry", slog.String("key", key))
		}
		entry.Key = key
		entries[key] = entry
	}
	logger.Debug("standards catalog loaded", slog.String("path", path), slog.Int("entries", len(entries)))
	return &Catalog{entries: entries}, nil
}

// Lookup returns the entry for a standard key. Keys may be given with or
// without the "standards." prefix used by the management API.
func (c *Catalog) Lookup(key string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	if entry, ok := c.entries[key]; ok {
		return entry, true
	}
	if trimmed := strings.TrimPrefix(key, "standards."); trimmed != key {
		entry, ok := c.entries[trimmed]
		return entry, ok
	}
	entry, ok := c.entries["standards."+key]
	return entry, ok
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Annotate fills label, category and impact on rows with a catalog entry.
// Rows without one keep their key as label.
func (c *Catalog) Annotate(rows []models.ResolvedStandard) []models.ResolvedStandard {
	for i := range rows {
		entry, ok := c.Lookup(rows[i].Key)
		if !ok {
			if rows[i].Label == "" {
				rows[i].Label = rows[i].Key
			}
			continue
		}
		rows[i].Label = entry.Label
		rows[i].Category = entry.Category
		rows[i].Impact = entry.Impact
	}
	return rows
}
