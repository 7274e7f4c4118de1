package music

import (
	"bytes"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	melodyColor = color.RGBA{R: 102, G: 126, B: 234, A: 255}
	bassColor   = color.RGBA{R: 118, G: 75, B: 162, A: 255}
	kickColor   = color.RGBA{R: 220, G: 60, B: 60, A: 255}
)

// PianoRoll draws the melody, bass and kick drum of a score. Format is any
// format supported by gonum plot (png, jpg, svg, pdf...).
func PianoRoll(s *Score, format string) ([]byte, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s %d BPM, %d bars", s.Scale, s.Tempo, s.BarCount)
	p.X.Label.Text = "beat"
	p.Y.Label.Text = "midi pitch"
	p.X.Min = 0
	p.X.Max = float64(s.Beats())
	p.Y.Min = BassBase - 4
	p.Y.Max = MiddleC + 2*octave
	p.Add(plotter.NewGrid())

	tracks := []struct {
		name  string
		pts   plotter.XYs
		color color.Color
		shape draw.GlyphDrawer
	}{
		{"melody", notePoints(s.Tracks.Melody), melodyColor, draw.BoxGlyph{}},
		{"bass", notePoints(s.Tracks.Bass), bassColor, draw.BoxGlyph{}},
		{"kick", kickPoints(s.Tracks.Drums), kickColor, draw.CircleGlyph{}},
	}
	for _, t := range tracks {
		if len(t.pts) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(t.pts)
		if err != nil {
			return nil, fmt.Errorf("music: couldn't create %s plotter: %w", t.name, err)
		}
		sc.GlyphStyle.Color = t.color
		sc.GlyphStyle.Shape = t.shape
		sc.GlyphStyle.Radius = vg.Points(2.5)
		p.Add(sc)
		p.Legend.Add(t.name, sc)
	}
	p.Legend.Top = true

	c, err := p.WriterTo(8*vg.Inch, 4*vg.Inch, format)
	if err != nil {
		return nil, fmt.Errorf("music: couldn't create plot: %w", err)
	}
	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("music: couldn't write plot: %w", err)
	}
	return buf.Bytes(), nil
}

// notePoints converts a track to plot points, skipping rests.
func notePoints(notes []Note) plotter.XYs {
	pts := make(plotter.XYs, 0, len(notes))
	for i, n := range notes {
		if n == Rest {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(i), Y: float64(n)})
	}
	return pts
}

// kickPoints places kicks below the bass range.
func kickPoints(hits []Hit) plotter.XYs {
	pts := make(plotter.XYs, 0, len(hits))
	for i, h := range hits {
		if h.Kick {
			pts = append(pts, plotter.XY{X: float64(i), Y: BassBase - 2})
		}
	}
	return pts
}
