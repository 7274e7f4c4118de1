package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/igolaizola/songgen"
	"github.com/igolaizola/songgen/pkg/catalog"
	"github.com/igolaizola/songgen/pkg/filestore"
	"github.com/oklog/ulid/v2"
)

type Config struct {
	Debug    bool
	Page     int
	PageSize int
	Pages    int
	Seed     int64
	Locale   string
	AvgLikes float64
	Format   string
	Name     string

	FSType string
	FSConn string
}

// row is the flat csv form of a song.
type row struct {
	Index          int    `json:"index" csv:"index"`
	Title          string `json:"title" csv:"title"`
	Artist         string `json:"artist" csv:"artist"`
	Album          string `json:"album" csv:"album"`
	Genre          string `json:"genre" csv:"genre"`
	Likes          int    `json:"likes" csv:"likes"`
	Color          string `json:"color" csv:"color"`
	SecondaryColor string `json:"secondary_color" csv:"secondary_color"`
	Pattern        string `json:"pattern" csv:"pattern"`
	Review         string `json:"review" csv:"review"`
}

func toRow(s *catalog.Song) *row {
	return &row{
		Index:          s.Index,
		Title:          s.Title,
		Artist:         s.Artist,
		Album:          s.Album,
		Genre:          s.Genre,
		Likes:          s.Likes,
		Color:          s.Cover.Color.String(),
		SecondaryColor: s.Cover.SecondaryColor.String(),
		Pattern:        string(s.Cover.Pattern),
		Review:         s.Review,
	}
}

// Run generates consecutive pages of songs and stores them as a single
// csv or json file.
func Run(ctx context.Context, cfg *Config) error {
	log.Println("export: process started")
	defer log.Println("export: process ended")

	debug := func(format string, args ...interface{}) {
		if !cfg.Debug {
			return
		}
		format += "\n"
		log.Printf(format, args...)
	}

	pages := cfg.Pages
	if pages < 1 {
		pages = 1
	}

	var marshal func([]*catalog.Song) ([]byte, error)
	switch cfg.Format {
	case "csv":
		marshal = func(songs []*catalog.Song) ([]byte, error) {
			rows := make([]*row, 0, len(songs))
			for _, s := range songs {
				rows = append(rows, toRow(s))
			}
			return gocsv.MarshalBytes(rows)
		}
	case "json":
		marshal = func(songs []*catalog.Song) ([]byte, error) {
			return json.MarshalIndent(songs, "", "  ")
		}
	default:
		return fmt.Errorf("export: unsupported format: %s", cfg.Format)
	}

	store, err := filestore.New(ctx, cfg.FSType, cfg.FSConn, cfg.Debug)
	if err != nil {
		return fmt.Errorf("export: couldn't create file storage: %w", err)
	}

	var songs []*catalog.Song
	for i := 0; i < pages; i++ {
		page, err := songgen.Songs(ctx, songgen.SongsRequest{
			Page:     cfg.Page + i,
			PageSize: cfg.PageSize,
			Seed:     cfg.Seed,
			Locale:   cfg.Locale,
			AvgLikes: cfg.AvgLikes,
		})
		if err != nil {
			return fmt.Errorf("export: couldn't generate page %d: %w", cfg.Page+i, err)
		}
		debug("export: page %d generated", page.Page)
		songs = append(songs, page.Songs...)
	}

	b, err := marshal(songs)
	if err != nil {
		return fmt.Errorf("export: couldn't marshal songs: %w", err)
	}

	name := cfg.Name
	if name == "" {
		name = fmt.Sprintf("songs-%s.%s", ulid.Make(), cfg.Format)
	}
	tmp := filepath.Join(os.TempDir(), fmt.Sprintf("songgen-%s%s", ulid.Make(), filepath.Ext(name)))
	if err := os.WriteFile(tmp, b, 0644); err != nil {
		return fmt.Errorf("export: couldn't write temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp) }()

	if err := store.Upload(ctx, tmp, name); err != nil {
		return fmt.Errorf("export: couldn't upload %s: %w", name, err)
	}
	u, err := store.URL(ctx, name)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	log.Printf("export: %d songs stored at %s\n", len(songs), u)
	return nil
}
