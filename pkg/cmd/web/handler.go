package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/igolaizola/songgen"
	"github.com/igolaizola/songgen/pkg/image"
	"github.com/igolaizola/songgen/pkg/locale"
	"github.com/igolaizola/songgen/pkg/music"
)

const defaultTimeout = 60 * time.Second

// Handler returns the router with every API endpoint.
func Handler(cfg *Config) http.Handler {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// Create router
	mux := chi.NewRouter()

	// Add middleware
	mux.Use(requestID)
	mux.Use(middleware.RealIP)
	if cfg.Debug {
		mux.Use(middleware.Logger)
	}
	mux.Use(middleware.Recoverer)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))
	if cfg.Rate > 0 {
		mux.Use(rateLimit(cfg.Rate, cfg.Burst))
	}
	mux.Use(middleware.Timeout(timeout))

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	mux.Route("/api", func(r chi.Router) {
		r.Get("/locales", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, locale.IDs())
		})

		r.Get("/songs", func(w http.ResponseWriter, r *http.Request) {
			q := query{r: r}
			req := songgen.SongsRequest{
				Page:     q.intValue("page", songgen.DefaultPage),
				PageSize: q.intValue("pageSize", songgen.DefaultPageSize),
				Seed:     q.int64Value("seed", songgen.DefaultSeed),
				Locale:   q.stringValue("locale", songgen.DefaultLocale),
				AvgLikes: q.floatValue("avgLikes", songgen.DefaultAvgLikes),
			}
			if q.err != nil {
				writeError(w, q.err)
				return
			}
			page, err := songgen.Songs(r.Context(), req)
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, page)
		})

		r.Get("/songs/{index}", func(w http.ResponseWriter, r *http.Request) {
			q := query{r: r}
			req := songgen.SongRequest{
				Index:    q.param("index"),
				Seed:     q.int64Value("seed", songgen.DefaultSeed),
				Locale:   q.stringValue("locale", songgen.DefaultLocale),
				AvgLikes: q.floatValue("avgLikes", songgen.DefaultAvgLikes),
			}
			if q.err != nil {
				writeError(w, q.err)
				return
			}
			song, err := songgen.Song(req)
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, song)
		})

		r.Get("/music/{songIndex}", func(w http.ResponseWriter, r *http.Request) {
			score, ok := getScore(w, r)
			if !ok {
				return
			}
			writeJSON(w, score)
		})

		r.Get("/music/{songIndex}/roll.png", func(w http.ResponseWriter, r *http.Request) {
			score, ok := getScore(w, r)
			if !ok {
				return
			}
			b, err := music.PianoRoll(score, "png")
			if err != nil {
				writeError(w, err)
				return
			}
			writeImage(w, "png", b)
		})

		r.Get("/covers/{index}.png", func(w http.ResponseWriter, r *http.Request) {
			q := query{r: r}
			req := songgen.CoverRequest{
				Index:  q.param("index"),
				Seed:   q.int64Value("seed", songgen.DefaultSeed),
				Locale: q.stringValue("locale", songgen.DefaultLocale),
				Size:   q.intValue("size", songgen.DefaultCoverSize),
				Format: "png",
			}
			if q.err != nil {
				writeError(w, q.err)
				return
			}
			var buf bytes.Buffer
			if err := songgen.Cover(&buf, req); err != nil {
				writeError(w, err)
				return
			}
			writeImage(w, "png", buf.Bytes())
		})
	})
	return mux
}

func getScore(w http.ResponseWriter, r *http.Request) (*music.Score, bool) {
	q := query{r: r}
	req := songgen.MusicRequest{
		SongIndex: q.param("songIndex"),
		Seed:      q.int64Value("seed", songgen.DefaultSeed),
		Locale:    q.stringValue("locale", songgen.DefaultLocale),
	}
	if q.err != nil {
		writeError(w, q.err)
		return nil, false
	}
	score, err := songgen.Music(req)
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return score, true
}

// query reads request parameters keeping the first parsing error.
type query struct {
	r   *http.Request
	err error
}

func (q *query) fail(name, value, kind string) {
	if q.err != nil {
		return
	}
	q.err = &songgen.ValidationError{Field: name, Reason: fmt.Sprintf("%q is not %s", value, kind)}
}

func (q *query) stringValue(name, def string) string {
	if v := q.r.URL.Query().Get(name); v != "" {
		return v
	}
	return def
}

func (q *query) intValue(name string, def int) int {
	v := q.r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		q.fail(name, v, "an integer")
	}
	return n
}

func (q *query) int64Value(name string, def int64) int64 {
	v := q.r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		q.fail(name, v, "a 64-bit integer")
	}
	return n
}

func (q *query) floatValue(name string, def float64) float64 {
	v := q.r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		q.fail(name, v, "a number")
	}
	return f
}

func (q *query) param(name string) int {
	v := chi.URLParam(q.r, name)
	n, err := strconv.Atoi(v)
	if err != nil {
		q.fail(name, v, "an integer")
	}
	return n
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, songgen.ErrInvalid), errors.Is(err, locale.ErrUnknownLocale):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := statusCode(err)
	if code == http.StatusInternalServerError {
		log.Println("web:", err)
	}
	http.Error(w, err.Error(), code)
}

func writeJSON(w http.ResponseWriter, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Println("web: couldn't encode response:", err)
		http.Error(w, fmt.Sprintf("couldn't encode response: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(b)
}

func writeImage(w http.ResponseWriter, format string, b []byte) {
	w.Header().Set("Content-Type", image.ContentType(format))
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	_, _ = w.Write(b)
}
