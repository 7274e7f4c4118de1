package music

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/igolaizola/songgen"
	"github.com/igolaizola/songgen/pkg/music"
)

type Config struct {
	Debug  bool
	Index  int
	Seed   int64
	Format string
	Output string
}

// Run writes the score of a song as JSON, or its piano roll as an image
// when the format is png or svg.
func Run(ctx context.Context, cfg *Config) error {
	score, err := songgen.Music(songgen.MusicRequest{
		SongIndex: cfg.Index,
		Seed:      cfg.Seed,
	})
	if err != nil {
		return fmt.Errorf("music: %w", err)
	}
	if cfg.Debug {
		log.Printf("music: %d bars at %d bpm in %s\n", score.BarCount, score.Tempo, score.Scale)
	}

	var b []byte
	switch cfg.Format {
	case "", "json":
		b, err = json.Marshal(score)
		if err != nil {
			return fmt.Errorf("music: couldn't marshal score: %w", err)
		}
		b = append(b, '\n')
	case "png", "svg":
		if cfg.Output == "" {
			return fmt.Errorf("music: output file is required for %s", cfg.Format)
		}
		b, err = music.PianoRoll(score, cfg.Format)
		if err != nil {
			return fmt.Errorf("music: %w", err)
		}
	default:
		return fmt.Errorf("music: unsupported format %q", cfg.Format)
	}

	if cfg.Output == "" {
		_, err = os.Stdout.Write(b)
		return err
	}
	if err := os.WriteFile(cfg.Output, b, 0644); err != nil {
		return fmt.Errorf("music: couldn't write %s: %w", cfg.Output, err)
	}
	log.Printf("music: song %d written to %s\n", cfg.Index, cfg.Output)
	return nil
}
