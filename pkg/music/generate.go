package music

import (
	"github.com/igolaizola/songgen/pkg/seed"
)

// Generation constants. They are part of the output contract.
const (
	BeatsPerBar = 4

	MinTempo   = 80
	tempoRange = 60
	MinBars    = 8
	barsRange  = 9

	// MiddleC is the MIDI pitch the melody is built on.
	MiddleC = 60
	// BassBase is the MIDI pitch of the bass tonic, two octaves lower.
	BassBase = 36
	octave   = 12

	chordToneChance = 0.6
	bassChance      = 0.3
	hiHatChance     = 0.8
)

// Generate returns the score of a song. All the parts share one stream so
// the draw order below is part of the output contract.
func Generate(songIndex int, baseSeed int64) *Score {
	r := seed.For(baseSeed, int64(songIndex))

	scale := seed.Pick(r, Scales)
	progression := seed.Pick(r, Progressions)
	tempo := MinTempo + r.Intn(tempoRange)
	bars := MinBars + r.Intn(barsRange)

	return &Score{
		Tempo:    tempo,
		Scale:    scale.Name,
		BarCount: bars,
		Tracks: Tracks{
			Melody: melody(r, scale, progression, bars),
			Bass:   bass(r, progression, bars),
			Drums:  drums(r, bars),
		},
	}
}

func melody(r *seed.Rand, scale Scale, progression []int, bars int) []Note {
	notes := make([]Note, 0, bars*BeatsPerBar)
	for bar := 0; bar < bars; bar++ {
		root := progression[bar%len(progression)]
		for beat := 0; beat < BeatsPerBar; beat++ {
			candidates := scale.Offsets
			if r.Chance(chordToneChance) {
				candidates = triad(root)
			}
			pitch := seed.Pick(r, candidates)
			lift := r.Intn(2) * octave
			notes = append(notes, Note(MiddleC+pitch+lift))
		}
	}
	return notes
}

func bass(r *seed.Rand, progression []int, bars int) []Note {
	notes := make([]Note, 0, bars*BeatsPerBar)
	for bar := 0; bar < bars; bar++ {
		root := Note(BassBase + progression[bar%len(progression)])
		for beat := 0; beat < BeatsPerBar; beat++ {
			// The downbeat never draws.
			if beat == 0 || r.Chance(bassChance) {
				notes = append(notes, root)
				continue
			}
			notes = append(notes, Rest)
		}
	}
	return notes
}

func drums(r *seed.Rand, bars int) []Hit {
	hits := make([]Hit, 0, bars*BeatsPerBar)
	for bar := 0; bar < bars; bar++ {
		for beat := 0; beat < BeatsPerBar; beat++ {
			hits = append(hits, Hit{
				Kick:  beat%2 == 0,
				Snare: beat%2 == 1,
				HiHat: r.Chance(hiHatChance),
			})
		}
	}
	return hits
}
