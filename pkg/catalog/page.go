package catalog

import (
	"context"
	"fmt"
	"runtime"

	"github.com/igolaizola/songgen/pkg/locale"
	"golang.org/x/sync/errgroup"
)

// TotalPagesUnknown is reported as the total page count because the
// catalog has no end.
const TotalPagesUnknown = -1

type PageRequest struct {
	Page     int
	PageSize int
	Seed     int64
	Locale   string
	AvgLikes float64
}

type Page struct {
	Songs      []*Song `json:"songs"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalPages int     `json:"totalPages"`
}

// FirstIndex returns the index of the first song of a page. Pages and
// indexes start at 1.
func FirstIndex(page, size int) int {
	return (page-1)*size + 1
}

// GeneratePage generates all the songs of a page. Songs are generated in
// parallel; each one lands in its own slot so the order only depends on
// the index.
func GeneratePage(ctx context.Context, req PageRequest) (*Page, error) {
	t, err := locale.Get(req.Locale)
	if err != nil {
		return nil, fmt.Errorf("catalog: couldn't generate page %d: %w", req.Page, err)
	}
	songs := make([]*Song, req.PageSize)
	start := FirstIndex(req.Page, req.PageSize)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range songs {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			songs[i] = generate(t, start+i, req.Seed, req.AvgLikes)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("catalog: couldn't generate page %d: %w", req.Page, err)
	}
	return &Page{
		Songs:      songs,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: TotalPagesUnknown,
	}, nil
}
