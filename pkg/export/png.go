package export

import (
	"errors"
	"io"
	"math"

	"github.com/gogpu/gg"
)

const pngPadding = 16

// RenderPNG draws d into an image width pixels wide, scaled uniformly to
// fit, and encodes it as PNG to w.
func RenderPNG(w io.Writer, d Drawing, width int) error {
	if width <= 2*pngPadding {
		return errors.New("png width too small")
	}
	min, max, ok := d.Bounds()
	if !ok {
		return errors.New("drawing has no points")
	}
	dx := math.Max(max.X-min.X, 1e-9)
	dy := max.Y - min.Y
	scale := float64(width-2*pngPadding) / dx
	height := int(math.Ceil(dy*scale)) + 2*pngPadding

	dc := gg.NewContext(width, height)
	defer dc.Close()
	dc.ClearWithColor(gg.White)
	dc.SetLineWidth(2)

	px := func(x, y float64) (float64, float64) {
		return pngPadding + (x-min.X)*scale, float64(height) - pngPadding - (y-min.Y)*scale
	}
	for _, l := range d.Layers {
		if len(l.Points) < 2 {
			continue
		}
		dc.SetColor(gg.Hex(l.Color).Color())
		for i, p := range l.Points {
			x, y := px(p.X, p.Y)
			if i == 0 {
				dc.MoveTo(x, y)
				continue
			}
			dc.LineTo(x, y)
		}
		if l.Closed {
			dc.ClosePath()
		}
		if err := dc.Stroke(); err != nil {
			return err
		}
	}
	return dc.EncodePNG(w)
}
