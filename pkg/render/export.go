package render

import (
	"image"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// WritePNG renders f and encodes it as PNG. A scale above 1 enlarges the
// frame with Catmull-Rom interpolation.
func (r *Renderer) WritePNG(w io.Writer, f Frame, scale int) error {
	return png.Encode(w, Scale(r.Render(f), scale))
}

// Scale enlarges img by an integer factor. Factors below 2 return img.
func Scale(img image.Image, scale int) image.Image {
	if scale < 2 {
		return img
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.CatmullRom.Scale(out, out.Bounds(), img, b, draw.Over, nil)
	return out
}
