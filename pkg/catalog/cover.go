package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Pattern is the background style of a cover.
type Pattern string

const (
	Gradient  Pattern = "gradient"
	Stripes   Pattern = "stripes"
	Dots      Pattern = "dots"
	Waves     Pattern = "waves"
	Geometric Pattern = "geometric"
)

// Patterns in draw order. The order is part of the output contract.
var Patterns = []Pattern{Gradient, Stripes, Dots, Waves, Geometric}

// HSL is a color with hue in degrees and saturation and lightness in
// percent. It is encoded as a css hsl() string.
type HSL struct {
	Hue        int
	Saturation int
	Lightness  int
}

func (c HSL) String() string {
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", c.Hue, c.Saturation, c.Lightness)
}

func (c HSL) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *HSL) UnmarshalText(b []byte) error {
	s := string(b)
	inner, ok := strings.CutPrefix(s, "hsl(")
	if ok {
		inner, ok = strings.CutSuffix(inner, ")")
	}
	parts := strings.Split(inner, ",")
	if !ok || len(parts) != 3 {
		return fmt.Errorf("catalog: invalid hsl color %q", s)
	}
	var vs [3]int
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if i > 0 {
			p, ok = strings.CutSuffix(p, "%")
			if !ok {
				return fmt.Errorf("catalog: invalid hsl color %q", s)
			}
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("catalog: invalid hsl color %q: %w", s, err)
		}
		vs[i] = v
	}
	*c = HSL{Hue: vs[0], Saturation: vs[1], Lightness: vs[2]}
	return nil
}

// Cover describes how a client should paint the album cover.
type Cover struct {
	Color          HSL     `json:"color"`
	SecondaryColor HSL     `json:"secondaryColor"`
	Pattern        Pattern `json:"pattern"`
}
