package songs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/igolaizola/songgen"
)

type Config struct {
	Debug    bool
	Page     int
	PageSize int
	Seed     int64
	Locale   string
	AvgLikes float64
	Output   string
}

// Run prints a page of songs as JSON to the output file or stdout.
func Run(ctx context.Context, cfg *Config) error {
	debug := func(format string, args ...interface{}) {
		if !cfg.Debug {
			return
		}
		format += "\n"
		log.Printf(format, args...)
	}

	page, err := songgen.Songs(ctx, songgen.SongsRequest{
		Page:     cfg.Page,
		PageSize: cfg.PageSize,
		Seed:     cfg.Seed,
		Locale:   cfg.Locale,
		AvgLikes: cfg.AvgLikes,
	})
	if err != nil {
		return fmt.Errorf("songs: %w", err)
	}
	debug("songs: generated page %d with %d songs", page.Page, len(page.Songs))

	js, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return fmt.Errorf("songs: couldn't marshal page: %w", err)
	}
	js = append(js, '\n')
	if cfg.Output == "" {
		_, err = os.Stdout.Write(js)
		return err
	}
	if err := os.WriteFile(cfg.Output, js, 0644); err != nil {
		return fmt.Errorf("songs: couldn't write %s: %w", cfg.Output, err)
	}
	log.Printf("songs: page %d written to %s\n", page.Page, cfg.Output)
	return nil
}
