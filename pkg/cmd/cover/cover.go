package cover

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/igolaizola/songgen"
)

type Config struct {
	Debug  bool
	Index  int
	Seed   int64
	Locale string
	Size   int
	Format string
	Output string
}

// Run renders the cover of a song into a png or jpg file.
func Run(ctx context.Context, cfg *Config) error {
	format := cfg.Format
	if format == "" {
		format = "png"
	}
	output := cfg.Output
	if output == "" {
		output = fmt.Sprintf("cover-%d.%s", cfg.Index, format)
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("cover: couldn't create %s: %w", output, err)
	}
	err = songgen.Cover(f, songgen.CoverRequest{
		Index:  cfg.Index,
		Seed:   cfg.Seed,
		Locale: cfg.Locale,
		Size:   cfg.Size,
		Format: format,
	})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(output)
		return fmt.Errorf("cover: %w", err)
	}
	log.Printf("cover: song %d written to %s\n", cfg.Index, output)
	return nil
}
