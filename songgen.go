// Package songgen serves an endless, reproducible catalog of fictitious
// songs. Requests are validated here before reaching the generators.
package songgen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/igolaizola/songgen/pkg/catalog"
	"github.com/igolaizola/songgen/pkg/image"
	"github.com/igolaizola/songgen/pkg/music"
)

// Defaults used when a request leaves a parameter empty.
const (
	DefaultPage      = 1
	DefaultPageSize  = 20
	DefaultSeed      = 12345
	DefaultLocale    = "en_US"
	DefaultAvgLikes  = 5
	DefaultCoverSize = image.DefaultSize

	MaxPageSize = 100
)

var ErrInvalid = errors.New("invalid input")

// ValidationError reports a request parameter out of its accepted range.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// SongsRequest asks for a page of songs.
type SongsRequest struct {
	Page     int
	PageSize int
	Seed     int64
	Locale   string
	AvgLikes float64
}

func (r *SongsRequest) validate() error {
	if r.Page < 1 {
		return invalid("page", "must be at least 1, got %d", r.Page)
	}
	if r.PageSize < 1 || r.PageSize > MaxPageSize {
		return invalid("pageSize", "must be in [1, %d], got %d", MaxPageSize, r.PageSize)
	}
	if r.Page > math.MaxInt/r.PageSize {
		return invalid("page", "%d is too large for page size %d", r.Page, r.PageSize)
	}
	avg, err := likes(r.AvgLikes)
	if err != nil {
		return err
	}
	r.AvgLikes = avg
	return nil
}

// Songs returns the songs of a page.
func Songs(ctx context.Context, req SongsRequest) (*catalog.Page, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	return catalog.GeneratePage(ctx, catalog.PageRequest{
		Page:     req.Page,
		PageSize: req.PageSize,
		Seed:     req.Seed,
		Locale:   req.Locale,
		AvgLikes: req.AvgLikes,
	})
}

// SongRequest asks for a single song.
type SongRequest struct {
	Index    int
	Seed     int64
	Locale   string
	AvgLikes float64
}

// Song returns one song by index.
func Song(req SongRequest) (*catalog.Song, error) {
	if err := index("index", req.Index); err != nil {
		return nil, err
	}
	avg, err := likes(req.AvgLikes)
	if err != nil {
		return nil, err
	}
	return catalog.Generate(req.Index, req.Seed, req.Locale, avg)
}

// MusicRequest asks for the score of a song. The locale is accepted for
// symmetry with the other requests but never changes the music.
type MusicRequest struct {
	SongIndex int
	Seed      int64
	Locale    string
}

// Music returns the score of a song.
func Music(req MusicRequest) (*music.Score, error) {
	if err := index("songIndex", req.SongIndex); err != nil {
		return nil, err
	}
	return music.Generate(req.SongIndex, req.Seed), nil
}

// CoverRequest asks for the cover image of a song.
type CoverRequest struct {
	Index  int
	Seed   int64
	Locale string
	Size   int
	Format string
}

// Cover renders the cover of a song into w.
func Cover(w io.Writer, req CoverRequest) error {
	if err := index("index", req.Index); err != nil {
		return err
	}
	if req.Size < image.MinSize || req.Size > image.MaxSize {
		return invalid("size", "must be in [%d, %d], got %d", image.MinSize, image.MaxSize, req.Size)
	}
	if req.Format == "" {
		req.Format = "png"
	}
	// Likes don't show on covers.
	s, err := catalog.Generate(req.Index, req.Seed, req.Locale, 0)
	if err != nil {
		return err
	}
	return image.RenderCover(w, s.Cover, s.Title, s.Artist, req.Size, req.Format)
}

func index(field string, v int) error {
	if v < 1 {
		return invalid(field, "must be at least 1, got %d", v)
	}
	return nil
}

// likes validates an average of likes and clamps it to [0, MaxLikes].
func likes(avg float64) (float64, error) {
	if math.IsNaN(avg) || math.IsInf(avg, 0) {
		return 0, invalid("avgLikes", "must be a finite number, got %v", avg)
	}
	return math.Min(math.Max(avg, 0), catalog.MaxLikes), nil
}
