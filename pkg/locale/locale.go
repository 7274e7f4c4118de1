// Package locale provides the word lists used to generate song text.
//
// Tables are embedded YAML files named after the locale id. Adding a
// locale means adding a file; no code changes are needed.
package locale

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

var ErrUnknownLocale = errors.New("unknown locale")

//go:embed data/*.yaml
var data embed.FS

// Table holds the word lists of one locale. Tables are shared between
// goroutines and must be treated as read-only.
type Table struct {
	ID               string   `yaml:"-"`
	Name             string   `yaml:"name"`
	ReviewTemplate   string   `yaml:"review_template"`
	SongPrefixes     []string `yaml:"song_prefixes"`
	SongNouns        []string `yaml:"song_nouns"`
	BandWords        []string `yaml:"band_words"`
	BandNouns        []string `yaml:"band_nouns"`
	ArtistFirstNames []string `yaml:"artist_first_names"`
	ArtistLastNames  []string `yaml:"artist_last_names"`
	AlbumPrefixes    []string `yaml:"album_prefixes"`
	AlbumNouns       []string `yaml:"album_nouns"`
	Genres           []string `yaml:"genres"`
	ReviewWords      []string `yaml:"review_words"`
}

// Review fills the review template with two words.
func (t *Table) Review(word1, word2 string) string {
	return fmt.Sprintf(t.ReviewTemplate, word1, word2)
}

func (t *Table) validate() error {
	lists := map[string][]string{
		"song_prefixes":      t.SongPrefixes,
		"song_nouns":         t.SongNouns,
		"band_words":         t.BandWords,
		"band_nouns":         t.BandNouns,
		"artist_first_names": t.ArtistFirstNames,
		"artist_last_names":  t.ArtistLastNames,
		"album_prefixes":     t.AlbumPrefixes,
		"album_nouns":        t.AlbumNouns,
		"genres":             t.Genres,
		"review_words":       t.ReviewWords,
	}
	for k, v := range lists {
		if len(v) == 0 {
			return fmt.Errorf("locale: %s: empty list %s", t.ID, k)
		}
	}
	if n := strings.Count(t.ReviewTemplate, "%s"); n != 2 || strings.Count(t.ReviewTemplate, "%") != 2 {
		return fmt.Errorf("locale: %s: review template %q must contain exactly two %%s verbs", t.ID, t.ReviewTemplate)
	}
	return nil
}

var (
	loadOnce sync.Once
	tables   map[string]*Table
	loadErr  error
)

func load() (map[string]*Table, error) {
	loadOnce.Do(func() {
		tables, loadErr = parse(data, "data")
	})
	return tables, loadErr
}

func parse(fsys fs.FS, dir string) (map[string]*Table, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("locale: couldn't read tables: %w", err)
	}
	ts := map[string]*Table{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || path.Ext(name) != ".yaml" {
			continue
		}
		b, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("locale: couldn't read %s: %w", name, err)
		}
		t, err := Parse(strings.TrimSuffix(name, ".yaml"), b)
		if err != nil {
			return nil, err
		}
		ts[t.ID] = t
	}
	return ts, nil
}

// Parse decodes and validates a single YAML table.
func Parse(id string, b []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("locale: couldn't parse %s: %w", id, err)
	}
	t.ID = id
	if err := t.validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Get returns the table of a locale. Unknown ids are an error, there is
// no default locale.
func Get(id string) (*Table, error) {
	ts, err := load()
	if err != nil {
		return nil, err
	}
	t, ok := ts[id]
	if !ok {
		return nil, fmt.Errorf("locale: %q: %w", id, ErrUnknownLocale)
	}
	return t, nil
}

// IDs returns the supported locale ids sorted alphabetically.
func IDs() []string {
	ts, err := load()
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(ts))
	for id := range ts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
