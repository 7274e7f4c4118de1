package export

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/igolaizola/songgen"
	"github.com/igolaizola/songgen/pkg/catalog"
)

func TestRunCSV(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{
		Page: 1, PageSize: 5, Pages: 2,
		Seed: 12345, Locale: "en_US", AvgLikes: 5,
		Format: "csv", Name: "songs.csv",
		FSType: "local", FSConn: dir,
	}
	if err := Run(context.Background(), cfg); err != nil {
		t.Fatalf("Run() err = %v; want nil", err)
	}
	b, err := os.ReadFile(filepath.Join(dir, "songs.csv"))
	if err != nil {
		t.Fatal(err)
	}
	var rows []*row
	if err := gocsv.UnmarshalBytes(b, &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 10 {
		t.Fatalf("got %d rows; want 10", len(rows))
	}
	want := &row{
		Index:          1,
		Title:          "Hollow Skies",
		Artist:         "Mia Smith",
		Album:          "Letters to Tomorrow",
		Genre:          "Country",
		Likes:          5,
		Color:          "hsl(320, 71%, 45%)",
		SecondaryColor: "hsl(165, 88%, 69%)",
		Pattern:        "gradient",
		Review:         "This song is raw and uplifting. This song is fresh and beautiful. This song is emotional and amazing.",
	}
	if *rows[0] != *want {
		t.Errorf("first row = %+v; want %+v", rows[0], want)
	}
	for i, r := range rows {
		if r.Index != i+1 {
			t.Errorf("row %d has index %d", i, r.Index)
		}
	}
}

func TestRunJSON(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{
		Page: 3, PageSize: 4,
		Seed: 99, Locale: "ru_RU", AvgLikes: 2,
		Format: "json",
		FSType: "local", FSConn: dir,
	}
	if err := Run(context.Background(), cfg); err != nil {
		t.Fatalf("Run() err = %v; want nil", err)
	}
	matches, err := filepath.Glob(filepath.Join(dir, "songs-*.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Fatalf("got files %v; want one export", matches)
	}
	b, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	var songs []*catalog.Song
	if err := json.Unmarshal(b, &songs); err != nil {
		t.Fatal(err)
	}
	if len(songs) != 4 || songs[0].Index != 9 {
		t.Fatalf("got %d songs starting at %d; want 4 starting at 9", len(songs), songs[0].Index)
	}
	s, err := songgen.Song(songgen.SongRequest{Index: 9, Seed: 99, Locale: "ru_RU", AvgLikes: 2})
	if err != nil {
		t.Fatal(err)
	}
	if songs[0].Title != s.Title || songs[0].Likes != s.Likes {
		t.Errorf("exported song = %+v; want %+v", songs[0], s)
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		cfg  *Config
	}{
		{"format", &Config{Page: 1, PageSize: 5, Locale: "en_US", Format: "xml", FSType: "local", FSConn: dir}},
		{"store", &Config{Page: 1, PageSize: 5, Locale: "en_US", Format: "csv", FSType: "ftp"}},
		{"page", &Config{Page: 0, PageSize: 5, Locale: "en_US", Format: "csv", FSType: "local", FSConn: dir}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Run(context.Background(), tt.cfg); err == nil {
				t.Fatal("Run() err = nil; want error")
			}
		})
	}
	err := Run(context.Background(), tests[2].cfg)
	if !errors.Is(err, songgen.ErrInvalid) {
		t.Errorf("Run() err = %v; want ErrInvalid", err)
	}
}
