// Package ogimage draws the social preview card linked from og:image.
package ogimage

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	Width  = 1200
	Height = 630
	margin = 60
)

var (
	gradientTop    = color.RGBA{0xFD, 0xF8, 0xEC, 0xFF}
	gradientBottom = color.RGBA{0xE8, 0xD3, 0xA1, 0xFF}
	titleColor     = color.RGBA{0x7A, 0x5A, 0x1E, 0xFF}
	textColor      = color.RGBA{0x33, 0x41, 0x55, 0xFF}
)

// basicfont only covers ASCII
var asciiFold = strings.NewReplacer(
	"ă", "a", "â", "a", "î", "i", "ș", "s", "ş", "s", "ț", "t", "ţ", "t",
	"Ă", "A", "Â", "A", "Î", "I", "Ș", "S", "Ş", "S", "Ț", "T", "Ţ", "T",
	"•", "-",
)

// Card is the text printed on the preview image
type Card struct {
	Title    string
	Subtitle string
	Tagline  string
}

// Render returns the card as PNG bytes.
func Render(card Card) ([]byte, error) {
	canvas := image.NewRGBA(image.Rect(0, 0, Width, Height))
	fillGradient(canvas)

	y := 170
	y = drawLine(canvas, card.Title, y, 8, titleColor) + 40
	y = drawLine(canvas, card.Subtitle, y, 5, textColor) + 50
	drawLine(canvas, card.Tagline, y, 3, textColor)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("failed to encode preview image: %w", err)
	}
	return buf.Bytes(), nil
}

func fillGradient(dst *image.RGBA) {
	for y := 0; y < Height; y++ {
		c := lerp(gradientTop, gradientBottom, float64(y)/float64(Height-1))
		for x := 0; x < Width; x++ {
			dst.SetRGBA(x, y, c)
		}
	}
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t) }
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), 0xFF}
}

// drawLine renders text centered at top y, magnified by up to scale so it
// fits between the margins. It returns the y just below the line.
func drawLine(dst *image.RGBA, text string, y, scale int, c color.Color) int {
	text = asciiFold.Replace(text)
	if strings.TrimSpace(text) == "" {
		return y
	}

	face := basicfont.Face7x13
	w := font.MeasureString(face, text).Ceil()
	h := face.Height

	layer := image.NewRGBA(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  layer,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(text)

	for scale > 1 && w*scale > Width-2*margin {
		scale--
	}
	sw, sh := w*scale, h*scale
	x := (Width - sw) / 2
	target := image.Rect(x, y, x+sw, y+sh)

	// nearest neighbour keeps the bitmap glyphs crisp
	draw.NearestNeighbor.Scale(dst, target, layer, layer.Bounds(), draw.Over, nil)
	return y + sh
}
