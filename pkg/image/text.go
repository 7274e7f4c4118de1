package image

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var shadowColor = color.RGBA{0, 0, 0, 160}

// calculateTextPixelsAverageColor calculates the average color of pixels that match with the text letters.
func calculateTextPixelsAverageColor(img image.Image, x, y int, label string, face font.Face) color.Color {
	mask := image.NewAlpha(img.Bounds())
	dr := &font.Drawer{
		Dst:  mask,
		Src:  image.NewUniform(color.Alpha{A: 255}),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	dr.DrawString(label)

	var rTotal, gTotal, bTotal, count uint64
	bounds := mask.Bounds()
	for i := bounds.Min.X; i < bounds.Max.X; i++ {
		for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
			if mask.AlphaAt(i, j).A > 0 {
				r, g, b, _ := img.At(i, j).RGBA()
				rTotal += uint64(r)
				gTotal += uint64(g)
				bTotal += uint64(b)
				count++
			}
		}
	}
	if count == 0 {
		return color.RGBA{0, 0, 0, 255}
	}
	return color.RGBA{
		R: uint8(rTotal / count >> 8),
		G: uint8(gTotal / count >> 8),
		B: uint8(bTotal / count >> 8),
		A: 255,
	}
}

func chooseContrastingColor(bgColor color.Color) color.Color {
	r, g, b, _ := bgColor.RGBA()
	rLinear := linearize(float64(r) / 65535)
	gLinear := linearize(float64(g) / 65535)
	bLinear := linearize(float64(b) / 65535)

	// Relative luminance according to ITU-R BT.709
	luminance := 0.2126*rLinear + 0.7152*gLinear + 0.0722*bLinear
	if luminance > 0.179 {
		return color.RGBA{0, 0, 0, 255}
	}
	return color.RGBA{255, 255, 255, 255}
}

// linearize converts a color channel from sRGB to linear space
func linearize(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

func newFace(size float64) (font.Face, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("image: couldn't parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("image: couldn't create font face: %w", err)
	}
	return face, nil
}

// drawLabels writes the title and, below it, the artist on the bottom left
// corner of the image.
func drawLabels(img draw.Image, title, artist string) error {
	size := img.Bounds().Dx()
	margin := size * 6 / 100

	titleFace, err := newFace(float64(size) * 8 / 100)
	if err != nil {
		return err
	}
	defer titleFace.Close()
	artistFace, err := newFace(float64(size) * 5 / 100)
	if err != nil {
		return err
	}
	defer artistFace.Close()

	artistY := size - margin
	titleY := artistY - artistFace.Metrics().Height.Ceil() - margin/3
	drawString(img, title, titleFace, margin, titleY)
	drawString(img, artist, artistFace, margin, artistY)
	return nil
}

// drawString draws a string with a shadow, choosing the text color by
// contrast with the pixels under it. (x, y) is the baseline origin.
func drawString(img draw.Image, label string, face font.Face, x, y int) {
	textColor := chooseContrastingColor(calculateTextPixelsAverageColor(img, x, y, label, face))

	offset := max(img.Bounds().Dx()/256, 1)
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(shadowColor),
		Face: face,
		Dot:  fixed.P(x+offset, y+offset),
	}
	d.DrawString(label)

	d.Src = image.NewUniform(textColor)
	d.Dot = fixed.P(x, y)
	d.DrawString(label)
}
