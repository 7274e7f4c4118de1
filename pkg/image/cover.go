package image

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/igolaizola/songgen/pkg/catalog"
)

const (
	MinSize     = 64
	MaxSize     = 2048
	DefaultSize = 512
)

type painter func(x, y, size int, a, b color.RGBA) color.RGBA

var painters = map[catalog.Pattern]painter{
	catalog.Gradient:  gradient,
	catalog.Stripes:   stripes,
	catalog.Dots:      dots,
	catalog.Waves:     waves,
	catalog.Geometric: geometric,
}

// RenderCover paints a square cover with the title and artist of a song
// and encodes it in the given format (png or jpg).
func RenderCover(w io.Writer, cover catalog.Cover, title, artist string, size int, format string) error {
	if size < MinSize || size > MaxSize {
		return fmt.Errorf("image: size %d out of range [%d, %d]", size, MinSize, MaxSize)
	}
	paint, ok := painters[cover.Pattern]
	if !ok {
		return fmt.Errorf("image: unknown pattern %q", cover.Pattern)
	}
	encode, err := getEncoder(format)
	if err != nil {
		return err
	}

	a, b := rgb(cover.Color), rgb(cover.SecondaryColor)
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetRGBA(x, y, paint(x, y, size, a, b))
		}
	}

	if err := drawLabels(img, title, artist); err != nil {
		return err
	}
	if err := encode(w, img); err != nil {
		return fmt.Errorf("image: couldn't encode cover: %w", err)
	}
	return nil
}

// gradient blends diagonally from the top left corner.
func gradient(x, y, size int, a, b color.RGBA) color.RGBA {
	t := float64(x+y) / float64(2*(size-1))
	return blend(a, b, t)
}

func stripes(x, y, size int, a, b color.RGBA) color.RGBA {
	width := max(size/10, 1)
	if ((x+y)/width)%2 == 0 {
		return a
	}
	return b
}

func dots(x, y, size int, a, b color.RGBA) color.RGBA {
	cell := max(size/8, 2)
	cx, cy := x%cell-cell/2, y%cell-cell/2
	r := cell / 4
	if cx*cx+cy*cy <= r*r {
		return b
	}
	return a
}

func waves(x, y, size int, a, b color.RGBA) color.RGBA {
	band := float64(size) / 6
	offset := band / 2 * math.Sin(2*math.Pi*3*float64(x)/float64(size))
	if int(math.Floor((float64(y)+offset)/band))%2 == 0 {
		return a
	}
	return b
}

// geometric splits the cover in a grid of triangles.
func geometric(x, y, size int, a, b color.RGBA) color.RGBA {
	cell := max(size/4, 1)
	lx, ly := x%cell, y%cell
	upper := lx > ly
	if (x/cell+y/cell)%2 == 1 {
		upper = !upper
	}
	if upper {
		return a
	}
	return blend(a, b, 0.75)
}
