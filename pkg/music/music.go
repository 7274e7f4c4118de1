// Package music generates symbolic scores (tempo, scale, melody, bass and
// drums) for catalog songs. Scores depend only on the base seed and the
// song index.
package music

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Note is a MIDI pitch or Rest.
type Note int

// Rest marks a silent beat. It is encoded as JSON null.
const Rest Note = -1

func (n Note) MarshalJSON() ([]byte, error) {
	if n == Rest {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, int64(n), 10), nil
}

func (n *Note) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*n = Rest
		return nil
	}
	var v int
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*n = Note(v)
	return nil
}

// Hit is one beat of the drum pattern.
type Hit struct {
	Kick  bool `json:"kick"`
	Snare bool `json:"snare"`
	HiHat bool `json:"hihat"`
}

type Tracks struct {
	Melody []Note `json:"melody"`
	Bass   []Note `json:"bass"`
	Drums  []Hit  `json:"drums"`
}

type Score struct {
	Tempo    int    `json:"tempo"`
	Scale    string `json:"scale"`
	BarCount int    `json:"numBars"`
	Tracks   Tracks `json:"tracks"`
}

// Beats returns the number of beats of every track.
func (s *Score) Beats() int {
	return s.BarCount * BeatsPerBar
}
