package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/igolaizola/songgen/pkg/catalog"
	"github.com/igolaizola/songgen/pkg/music"
)

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSongs(t *testing.T) {
	h := Handler(&Config{})
	rec := get(t, h, "/api/songs")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200: %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
	var page catalog.Page
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatal(err)
	}
	if page.Page != 1 || page.PageSize != 20 || page.TotalPages != catalog.TotalPagesUnknown {
		t.Errorf("page = %d, size = %d, total = %d", page.Page, page.PageSize, page.TotalPages)
	}
	if len(page.Songs) != 20 {
		t.Fatalf("got %d songs; want 20", len(page.Songs))
	}
	first := page.Songs[0]
	if first.Index != 1 || first.Title != "Hollow Skies" || first.Artist != "Mia Smith" || first.Likes != 5 {
		t.Errorf("first song = %+v", first)
	}
	for i, s := range page.Songs {
		if s.Index != i+1 {
			t.Errorf("song %d has index %d", i, s.Index)
		}
	}
}

func TestSongsPagination(t *testing.T) {
	h := Handler(&Config{})
	var a catalog.Page
	if err := json.Unmarshal(get(t, h, "/api/songs?page=2&pageSize=10&seed=77&locale=ru_RU").Body.Bytes(), &a); err != nil {
		t.Fatal(err)
	}
	var single catalog.Song
	if err := json.Unmarshal(get(t, h, "/api/songs/11?seed=77&locale=ru_RU").Body.Bytes(), &single); err != nil {
		t.Fatal(err)
	}
	if len(a.Songs) != 10 {
		t.Fatalf("got %d songs; want 10", len(a.Songs))
	}
	if a.Songs[0].Title != single.Title || a.Songs[0].Likes != single.Likes || a.Songs[0].Cover != single.Cover {
		t.Errorf("page song = %+v; single song = %+v", a.Songs[0], single)
	}
}

func TestBadRequests(t *testing.T) {
	h := Handler(&Config{})
	tests := []string{
		"/api/songs?page=0",
		"/api/songs?page=-3",
		"/api/songs?pageSize=0",
		"/api/songs?pageSize=101",
		"/api/songs?page=abc",
		"/api/songs?seed=1.5",
		"/api/songs?seed=99999999999999999999",
		"/api/songs?avgLikes=NaN",
		"/api/songs?avgLikes=Inf",
		"/api/songs?avgLikes=lots",
		"/api/songs?locale=fr_FR",
		"/api/songs/0",
		"/api/songs/abc",
		"/api/songs/1?locale=xx",
		"/api/music/0",
		"/api/music/abc",
		"/api/music/0/roll.png",
		"/api/covers/0.png",
		"/api/covers/1.png?size=10",
		"/api/covers/1.png?size=4096",
		"/api/covers/1.png?locale=zz",
	}
	for _, target := range tests {
		t.Run(target, func(t *testing.T) {
			rec := get(t, h, target)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d; want 400: %s", rec.Code, rec.Body)
			}
		})
	}
}

func TestAvgLikesClamped(t *testing.T) {
	h := Handler(&Config{})
	tests := []struct {
		avg  string
		want int
	}{
		{"-4", 0},
		{"0", 0},
		{"10", 10},
		{"25", 10},
	}
	for _, tt := range tests {
		var s catalog.Song
		rec := get(t, h, "/api/songs/5?avgLikes="+tt.avg)
		if rec.Code != http.StatusOK {
			t.Fatalf("avgLikes=%s: status = %d", tt.avg, rec.Code)
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
			t.Fatal(err)
		}
		if s.Likes != tt.want {
			t.Errorf("avgLikes=%s: likes = %d; want %d", tt.avg, s.Likes, tt.want)
		}
	}
}

func TestMusic(t *testing.T) {
	h := Handler(&Config{})
	rec := get(t, h, "/api/music/1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200: %s", rec.Code, rec.Body)
	}
	var score music.Score
	if err := json.Unmarshal(rec.Body.Bytes(), &score); err != nil {
		t.Fatal(err)
	}
	if score.Tempo != 94 || score.Scale != "blues" || score.BarCount != 13 {
		t.Errorf("score = %d %s %d", score.Tempo, score.Scale, score.BarCount)
	}

	// Locale doesn't change the music.
	other := get(t, h, "/api/music/1?locale=uk_UA")
	if other.Body.String() != rec.Body.String() {
		t.Error("music changed with locale")
	}
}

func TestImages(t *testing.T) {
	h := Handler(&Config{})
	for _, target := range []string{"/api/covers/3.png?size=64", "/api/music/3/roll.png"} {
		rec := get(t, h, target)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status = %d; want 200: %s", target, rec.Code, rec.Body)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
			t.Errorf("%s: content type = %q", target, ct)
		}
		if !strings.HasPrefix(rec.Body.String(), "\x89PNG") {
			t.Errorf("%s: body is not a png", target)
		}
	}
	a := get(t, h, "/api/covers/3.png?size=64&seed=9")
	b := get(t, h, "/api/covers/3.png?size=64&seed=9")
	if a.Body.String() != b.Body.String() {
		t.Error("cover isn't deterministic")
	}
}

func TestLocalesAndHealth(t *testing.T) {
	h := Handler(&Config{})
	var ids []string
	if err := json.Unmarshal(get(t, h, "/api/locales").Body.Bytes(), &ids); err != nil {
		t.Fatal(err)
	}
	if strings.Join(ids, ",") != "en_US,ru_RU,uk_UA" {
		t.Errorf("locales = %v", ids)
	}
	rec := get(t, h, "/healthz")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("healthz = %d %q", rec.Code, rec.Body)
	}
}

func TestRequestID(t *testing.T) {
	h := Handler(&Config{})
	rec := get(t, h, "/healthz")
	if id := rec.Header().Get("X-Request-ID"); len(id) != 26 {
		t.Errorf("minted request id = %q; want a ulid", id)
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if id := rec.Header().Get("X-Request-ID"); id != "abc" {
		t.Errorf("request id = %q; want abc", id)
	}
}

func TestRateLimit(t *testing.T) {
	h := Handler(&Config{Rate: 0.001, Burst: 2})
	for i := 0; i < 2; i++ {
		if rec := get(t, h, "/healthz"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d; want 200", i, rec.Code)
		}
	}
	if rec := get(t, h, "/healthz"); rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d; want 429", rec.Code)
	}
}

func TestCORS(t *testing.T) {
	h := Handler(&Config{CORSOrigins: []string{"http://localhost:5173"}})
	req := httptest.NewRequest(http.MethodGet, "/api/locales", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("allow origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/locales", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("allow origin = %q; want empty", got)
	}
}
