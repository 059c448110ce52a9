package face

import "github.com/lixenwraith/tiwe/vmath"

// Default canvas dimensions
const (
	CanvasWidth  = 144
	CanvasHeight = 168
)

// Point is an integer canvas coordinate
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p translated by q
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Canvas is the drawable area, origin top-left, y growing down
type Canvas struct {
	Width  int
	Height int
	Center Point
}

// NewCanvas returns a canvas with center at half its size
func NewCanvas(width, height int) Canvas {
	return Canvas{
		Width:  width,
		Height: height,
		Center: Point{X: width / 2, Y: height / 2},
	}
}

// DefaultCanvas is the fixed 144x168 face with center (72, 84)
func DefaultCanvas() Canvas {
	return NewCanvas(CanvasWidth, CanvasHeight)
}

// Project converts a fixed-point angle and radius into a canvas point
// Angle 0 points up, angles grow clockwise, full turn is vmath.TrigMaxAngle
func (c Canvas) Project(angle int32, radius int) Point {
	return Point{
		X: c.Center.X + vmath.ScaleByRatio(vmath.Sin(angle), radius),
		Y: c.Center.Y + vmath.ScaleByRatio(-vmath.Cos(angle), radius),
	}
}

// Contains reports whether p lies in [0,Width) x [0,Height)
func (c Canvas) Contains(p Point) bool {
	return p.X >= 0 && p.X < c.Width && p.Y >= 0 && p.Y < c.Height
}
