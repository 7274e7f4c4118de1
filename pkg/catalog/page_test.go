package catalog

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/igolaizola/songgen/pkg/locale"
)

func TestFirstIndex(t *testing.T) {
	tests := []struct {
		page, size, want int
	}{
		{1, 20, 1},
		{2, 20, 21},
		{3, 10, 21},
		{5, 1, 5},
	}
	for _, tt := range tests {
		if got := FirstIndex(tt.page, tt.size); got != tt.want {
			t.Errorf("FirstIndex(%d, %d) = %d; want %d", tt.page, tt.size, got, tt.want)
		}
	}
}

func TestGeneratePage(t *testing.T) {
	req := PageRequest{Page: 2, PageSize: 20, Seed: 12345, Locale: "en_US", AvgLikes: 5}
	p, err := GeneratePage(context.Background(), req)
	if err != nil {
		t.Fatalf("GeneratePage() err = %v; want nil", err)
	}
	if p.Page != 2 || p.PageSize != 20 || p.TotalPages != TotalPagesUnknown {
		t.Fatalf("GeneratePage() header = %d/%d/%d", p.Page, p.PageSize, p.TotalPages)
	}
	if len(p.Songs) != 20 {
		t.Fatalf("len(songs) = %d; want 20", len(p.Songs))
	}
	for i, s := range p.Songs {
		want, err := Generate(21+i, 12345, "en_US", 5)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(s, want) {
			t.Fatalf("song %d = %+v; want %+v", 21+i, s, want)
		}
	}

	// Same index through a different page layout.
	other, err := GeneratePage(context.Background(), PageRequest{Page: 3, PageSize: 10, Seed: 12345, Locale: "en_US", AvgLikes: 5})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(other.Songs[0], p.Songs[0]) {
		t.Fatalf("index 21 differs between page layouts: %+v != %+v", other.Songs[0], p.Songs[0])
	}
}

func TestGeneratePageErrors(t *testing.T) {
	_, err := GeneratePage(context.Background(), PageRequest{Page: 1, PageSize: 5, Locale: "nope"})
	if !errors.Is(err, locale.ErrUnknownLocale) {
		t.Fatalf("GeneratePage() err = %v; want %v", err, locale.ErrUnknownLocale)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = GeneratePage(ctx, PageRequest{Page: 1, PageSize: 5, Locale: "en_US"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("GeneratePage() err = %v; want %v", err, context.Canceled)
	}
}
