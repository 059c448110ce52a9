package render

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tiwe/face"
)

// Half-block glyphs, each terminal cell holds two vertically stacked pixels
const (
	glyphEmpty  = ' '
	glyphUpper  = '▀'
	glyphLower  = '▄'
	glyphFull   = '█'
	statusLines = 1
)

var (
	dotStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorBlack)
)

// TerminalRenderer draws frames onto a tcell screen, scaling the canvas to fit
type TerminalRenderer struct {
	screen tcell.Screen
	raster *Raster
	status func() string
}

// NewTerminalRenderer creates a renderer for the given canvas
func NewTerminalRenderer(screen tcell.Screen, canvas face.Canvas) *TerminalRenderer {
	return &TerminalRenderer{
		screen: screen,
		raster: NewCanvasRaster(canvas),
	}
}

// SetStatus installs a provider for the bottom status line
func (r *TerminalRenderer) SetStatus(fn func() string) {
	r.status = fn
}

// Draw implements engine.Sink
func (r *TerminalRenderer) Draw(fr face.Frame) error {
	r.raster.DrawFrame(fr)

	width, height := r.screen.Size()
	rows := height - statusLines
	if rows < 1 {
		rows = height
	}

	r.screen.Fill(glyphEmpty, dotStyle)
	v := fitViewport(r.raster.Width, r.raster.Height, width, rows*2)

	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < width; cx++ {
			top := v.sample(r.raster, cx, cy*2)
			bottom := v.sample(r.raster, cx, cy*2+1)
			if g := halfBlock(top, bottom); g != glyphEmpty {
				r.screen.SetContent(cx, cy, g, nil, dotStyle)
			}
		}
	}

	if r.status != nil && rows < height {
		drawText(r.screen, 0, height-1, width, r.status(), statusStyle)
	}

	r.screen.Show()
	return nil
}

func halfBlock(top, bottom bool) rune {
	switch {
	case top && bottom:
		return glyphFull
	case top:
		return glyphUpper
	case bottom:
		return glyphLower
	default:
		return glyphEmpty
	}
}

func drawText(s tcell.Screen, x, y, width int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		if col >= width {
			return
		}
		s.SetContent(col, y, ch, nil, style)
		col++
	}
}

// viewport maps output pixels back onto raster pixels with uniform scale, centered
type viewport struct {
	scale float64
	offX  float64
	offY  float64
}

func fitViewport(srcW, srcH, dstW, dstH int) viewport {
	if srcW <= 0 || srcH <= 0 || dstW <= 0 || dstH <= 0 {
		return viewport{}
	}
	scale := math.Min(float64(dstW)/float64(srcW), float64(dstH)/float64(srcH))
	return viewport{
		scale: scale,
		offX:  (float64(dstW) - float64(srcW)*scale) / 2,
		offY:  (float64(dstH) - float64(srcH)*scale) / 2,
	}
}

// sample returns the raster pixel under output pixel (px, py)
func (v viewport) sample(r *Raster, px, py int) bool {
	if v.scale == 0 {
		return false
	}
	x := int(math.Floor((float64(px) + 0.5 - v.offX) / v.scale))
	y := int(math.Floor((float64(py) + 0.5 - v.offY) / v.scale))
	return r.At(x, y)
}
