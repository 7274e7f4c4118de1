// Package catalog generates the metadata of fictitious songs.
//
// Every song is a pure function of (seed, index, locale, average likes):
// nothing is stored and the same inputs always give the same song.
package catalog

import (
	"fmt"
	"math"
	"strings"

	"github.com/igolaizola/songgen/pkg/locale"
	"github.com/igolaizola/songgen/pkg/seed"
)

// Draw parameters. They are part of the output contract.
const (
	bandChance   = 0.5
	singleChance = 0.3

	// Single is the album name of songs released on their own.
	Single = "Single"

	hueRange        = 360
	saturationMin   = 60
	saturationRange = 40
	lightnessMin    = 40
	lightnessRange  = 30

	reviewMinSentences   = 2
	reviewSentencesRange = 4

	// MaxLikes is the upper bound of the likes of a song.
	MaxLikes = 10
)

type Song struct {
	Index  int    `json:"index"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album"`
	Genre  string `json:"genre"`
	Likes  int    `json:"likes"`
	Cover  Cover  `json:"cover"`
	Review string `json:"review"`
}

// Generate returns the song at index for the given base seed.
func Generate(index int, baseSeed int64, localeID string, avgLikes float64) (*Song, error) {
	t, err := locale.Get(localeID)
	if err != nil {
		return nil, fmt.Errorf("catalog: couldn't generate song %d: %w", index, err)
	}
	return generate(t, index, baseSeed, avgLikes), nil
}

func generate(t *locale.Table, index int, baseSeed int64, avgLikes float64) *Song {
	// The draw order below is part of the output contract.
	r := seed.For(baseSeed, int64(index))
	s := &Song{Index: index}
	s.Title = title(r, t)
	s.Artist = artist(r, t)
	s.Album = album(r, t)
	s.Genre = seed.Pick(r, t.Genres)
	s.Cover = Cover{
		Color:          color(r),
		SecondaryColor: color(r),
		Pattern:        seed.Pick(r, Patterns),
	}
	s.Review = review(r, t)

	// Likes use their own stream so that changing the average never
	// changes anything else.
	lr := seed.For(baseSeed+seed.LikesOffset, int64(index))
	s.Likes = Likes(lr, avgLikes)
	return s
}

func title(r *seed.Rand, t *locale.Table) string {
	prefix := seed.Pick(r, t.SongPrefixes)
	noun := seed.Pick(r, t.SongNouns)
	return prefix + " " + noun
}

func artist(r *seed.Rand, t *locale.Table) string {
	if r.Float64() > bandChance {
		word := seed.Pick(r, t.BandWords)
		noun := seed.Pick(r, t.BandNouns)
		return word + " " + noun
	}
	first := seed.Pick(r, t.ArtistFirstNames)
	last := seed.Pick(r, t.ArtistLastNames)
	return first + " " + last
}

func album(r *seed.Rand, t *locale.Table) string {
	if r.Chance(singleChance) {
		return Single
	}
	prefix := seed.Pick(r, t.AlbumPrefixes)
	noun := seed.Pick(r, t.AlbumNouns)
	return prefix + " " + noun
}

func color(r *seed.Rand) HSL {
	return HSL{
		Hue:        r.Intn(hueRange),
		Saturation: saturationMin + r.Intn(saturationRange),
		Lightness:  lightnessMin + r.Intn(lightnessRange),
	}
}

func review(r *seed.Rand, t *locale.Table) string {
	n := reviewMinSentences + r.Intn(reviewSentencesRange)
	sentences := make([]string, 0, n)
	for i := 0; i < n; i++ {
		w1 := seed.Pick(r, t.ReviewWords)
		w2 := seed.Pick(r, t.ReviewWords)
		sentences = append(sentences, t.Review(w1, w2))
	}
	return strings.Join(sentences, " ")
}

// Likes turns an average into a whole number of likes. The integer part is
// always granted and the fractional part is the chance of one more like.
// Averages outside [0, MaxLikes] are clamped.
func Likes(r *seed.Rand, avg float64) int {
	switch {
	case avg <= 0 || math.IsNaN(avg):
		return 0
	case avg >= MaxLikes:
		return MaxLikes
	}
	whole := math.Floor(avg)
	likes := int(whole)
	if r.Chance(avg - whole) {
		likes++
	}
	return likes
}
