//go:build !tinygo

package sim

import (
	"image"
	"image/color"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"joycursor/core"
	"joycursor/host/charlcd"
)

// Character cell geometry of the rendered panel, in pixels.
const (
	cellWidth  = 8
	cellHeight = 12
	cellGap    = 1
	panelPad   = 4
)

var (
	panelBackground = color.RGBA{R: 0x20, G: 0x40, B: 0xd0, A: 0xff}
	panelCell       = color.RGBA{R: 0x28, G: 0x4c, B: 0xe0, A: 0xff}
	panelInk        = color.RGBA{R: 0xe8, G: 0xf0, B: 0xff, A: 0xff}
	indicatorOn     = color.RGBA{R: 0xff, G: 0x30, B: 0x20, A: 0xff}
	indicatorOff    = color.RGBA{R: 0x40, G: 0x10, B: 0x10, A: 0xff}
)

// Panel is a drivers.Displayer backed by an RGBA image, sized for the LCD
// plus a strip for the status LED.
type Panel struct {
	img *image.RGBA
}

// NewPanel allocates the pixel buffer.
func NewPanel() *Panel {
	w, h := PanelSize()
	return &Panel{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

// PanelSize returns the rendered size in pixels.
func PanelSize() (int, int) {
	w := 2*panelPad + core.DisplayColumns*(cellWidth+cellGap)
	h := 3*panelPad + core.DisplayRows*(cellHeight+cellGap) + cellHeight/2
	return w, h
}

func (p *Panel) Size() (x, y int16) {
	b := p.img.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (p *Panel) SetPixel(x, y int16, c color.RGBA) {
	p.img.SetRGBA(int(x), int(y), c)
}

func (p *Panel) Display() error {
	return nil
}

// Image returns the backing image.
func (p *Panel) Image() *image.RGBA {
	return p.img
}

func (p *Panel) fill(x0, y0, w, h int, c color.RGBA) {
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			p.img.SetRGBA(x, y, c)
		}
	}
}

// Render draws the LCD cells and the indicator.
func (p *Panel) Render(lcd *charlcd.LCD, indicator bool) {
	b := p.img.Bounds()
	p.fill(0, 0, b.Dx(), b.Dy(), panelBackground)

	cells := lcd.Cells()
	font := &proggy.TinySZ8pt7b
	for row := range cells {
		for col, code := range cells[row] {
			x := panelPad + col*(cellWidth+cellGap)
			y := panelPad + row*(cellHeight+cellGap)
			p.fill(x, y, cellWidth, cellHeight, panelCell)
			r := charlcd.Glyph(code)
			if r == ' ' {
				continue
			}
			if code == 0xff {
				p.fill(x, y, cellWidth, cellHeight, panelInk)
				continue
			}
			tinyfont.DrawChar(p, font, int16(x+1), int16(y+cellHeight-3), r, panelInk)
		}
	}

	led := indicatorOff
	if indicator {
		led = indicatorOn
	}
	ly := 2*panelPad + core.DisplayRows*(cellHeight+cellGap)
	p.fill(panelPad, ly, cellHeight/2, cellHeight/2, led)
}
