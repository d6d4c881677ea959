package imaging

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// textRenderer draws single-line labels in Go Regular.
type textRenderer struct {
	face    font.Face
	ascent  int
	descent int
}

func newTextRenderer(sizePt, dpi float64) (*textRenderer, error) {
	if sizePt <= 0 {
		sizePt = 10
	}
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    sizePt,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}

	m := face.Metrics()
	return &textRenderer{
		face:    face,
		ascent:  m.Ascent.Ceil(),
		descent: m.Descent.Ceil(),
	}, nil
}

// lineHeight is the pixel height of one line of text.
func (t *textRenderer) lineHeight() int {
	return t.ascent + t.descent
}

// width returns the advance of s in pixels.
func (t *textRenderer) width(s string) int {
	return font.MeasureString(t.face, s).Ceil()
}

// draw renders s with its top-left corner at (x, y).
func (t *textRenderer) draw(dst *image.RGBA, x, y int, s string, fg color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(fg),
		Face: t.face,
		Dot:  fixed.P(x, y+t.ascent),
	}
	d.DrawString(s)
}

// drawLabel renders s on a filled box, with pad pixels of margin.
func (t *textRenderer) drawLabel(dst *image.RGBA, x, y, pad int, s string, fg, bg color.Color) {
	box := image.Rect(x, y, x+t.width(s)+2*pad, y+t.lineHeight()+2*pad)
	fillRect(dst, box, bg)
	t.draw(dst, x+pad, y+pad, s, fg)
}
