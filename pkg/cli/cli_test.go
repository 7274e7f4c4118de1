package cli

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/igolaizola/songgen/pkg/catalog"
)

func TestListValue(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	var origins []string
	fsListVar(fs, &origins, "origins", nil, "")
	if err := fs.Parse([]string{"--origins", "http://a.test, http://b.test", "--origins", "http://c.test,"}); err != nil {
		t.Fatal(err)
	}
	want := []string{"http://a.test", "http://b.test", "http://c.test"}
	if len(origins) != len(want) {
		t.Fatalf("origins = %v; want %v", origins, want)
	}
	for i := range want {
		if origins[i] != want[i] {
			t.Errorf("origins[%d] = %q; want %q", i, origins[i], want[i])
		}
	}
}

func TestSongsCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "songs.json")
	cmd := New("test", "", "")
	args := []string{"songs", "--page", "2", "--page-size", "4", "--locale", "uk_UA", "--output", out}
	if err := cmd.ParseAndRun(context.Background(), args); err != nil {
		t.Fatalf("ParseAndRun() err = %v; want nil", err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var page catalog.Page
	if err := json.Unmarshal(b, &page); err != nil {
		t.Fatal(err)
	}
	if page.Page != 2 || len(page.Songs) != 4 || page.Songs[0].Index != 5 {
		t.Errorf("page = %d with %d songs", page.Page, len(page.Songs))
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "songs.json")
	config := filepath.Join(dir, "songs.yaml")
	yaml := "page-size: 3\nseed: 7\nlocale: ru_RU\noutput: " + out + "\n"
	if err := os.WriteFile(config, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}
	cmd := New("test", "", "")
	if err := cmd.ParseAndRun(context.Background(), []string{"songs", "--config", config}); err != nil {
		t.Fatalf("ParseAndRun() err = %v; want nil", err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var page catalog.Page
	if err := json.Unmarshal(b, &page); err != nil {
		t.Fatal(err)
	}
	if len(page.Songs) != 3 {
		t.Errorf("got %d songs; want 3", len(page.Songs))
	}
}
