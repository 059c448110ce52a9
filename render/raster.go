package render

import "github.com/lixenwraith/tiwe/face"

// Raster is a one-bit canvas, true pixels are lit (white)
type Raster struct {
	Width  int
	Height int
	pix    []bool
}

// NewRaster allocates a dark raster
func NewRaster(width, height int) *Raster {
	return &Raster{
		Width:  width,
		Height: height,
		pix:    make([]bool, width*height),
	}
}

// NewCanvasRaster sizes a raster to the face canvas
func NewCanvasRaster(c face.Canvas) *Raster {
	return NewRaster(c.Width, c.Height)
}

// Clear darkens every pixel
func (r *Raster) Clear() {
	clear(r.pix)
}

// At reports whether (x, y) is lit, false outside the raster
func (r *Raster) At(x, y int) bool {
	if x < 0 || y < 0 || x >= r.Width || y >= r.Height {
		return false
	}
	return r.pix[y*r.Width+x]
}

// Lit returns the number of lit pixels
func (r *Raster) Lit() int {
	n := 0
	for _, p := range r.pix {
		if p {
			n++
		}
	}
	return n
}

// FillCircle sets every pixel within radius of (cx, cy), clipped to the raster
func (r *Raster) FillCircle(cx, cy, radius int, lit bool) {
	if radius < 0 {
		return
	}
	r2 := radius * radius

	minY := max(cy-radius, 0)
	maxY := min(cy+radius, r.Height-1)
	minX := max(cx-radius, 0)
	maxX := min(cx+radius, r.Width-1)

	for y := minY; y <= maxY; y++ {
		dy := y - cy
		row := y * r.Width
		for x := minX; x <= maxX; x++ {
			dx := x - cx
			if dx*dx+dy*dy <= r2 {
				r.pix[row+x] = lit
			}
		}
	}
}

// DrawFrame paints each dot as a dark outer disc under a lit inner disc, in frame order
// Later dots occlude earlier ones, the dark rim keeps overlapping dots apart
func (r *Raster) DrawFrame(fr face.Frame) {
	r.Clear()
	for _, d := range fr.Dots {
		r.FillCircle(d.X, d.Y, d.Outer, false)
		r.FillCircle(d.X, d.Y, d.Inner, true)
	}
}
