package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
)

// EncodePNG writes the raster as a grayscale PNG, each raster pixel becoming scale x scale
func EncodePNG(w io.Writer, r *Raster, scale int) error {
	if scale < 1 {
		scale = 1
	}
	img := image.NewGray(image.Rect(0, 0, r.Width*scale, r.Height*scale))

	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			if !r.At(x, y) {
				continue
			}
			for sy := 0; sy < scale; sy++ {
				for sx := 0; sx < scale; sx++ {
					img.SetGray(x*scale+sx, y*scale+sy, color.Gray{Y: 0xff})
				}
			}
		}
	}

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
