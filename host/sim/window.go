//go:build !tinygo && cgo

package sim

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"joycursor/core"
)

const windowScale = 4

// RunWindow opens a desktop window showing the LCD and maps the keyboard
// onto the board's inputs. It blocks until the window closes.
//
//	arrows  joystick
//	space   joystick button
//	Q / E   encoder counter-clockwise / clockwise
//	R       encoder button
func RunWindow(m *Machine, title string) error {
	w, h := PanelSize()
	g := &boardGame{m: m, panel: NewPanel()}

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(w*windowScale, h*windowScale)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type boardGame struct {
	m       *Machine
	panel   *Panel
	img     *ebiten.Image
	detents Detents
}

func (g *boardGame) Update() error {
	g.pollKeys()
	g.detents.Release(g.m)
	g.m.Advance(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

func (g *boardGame) pollKeys() {
	x, y := StickCentre, StickCentre
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		x = StickHigh
	} else if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		x = StickLow
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		y = StickHigh
	} else if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		y = StickLow
	}
	g.m.Tilt(x, y)

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.m.PressJoystick(true)
	}
	if inpututil.IsKeyJustReleased(ebiten.KeySpace) {
		g.m.PressJoystick(false)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.m.PressEncoder(true)
	}
	if inpututil.IsKeyJustReleased(ebiten.KeyR) {
		g.m.PressEncoder(false)
	}

	// One detent per key press. Frames are shorter than a tick, so turns
	// are queued and released one per tick.
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		g.detents.Push(core.DirCW)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.detents.Push(core.DirCCW)
	}
}

func (g *boardGame) Draw(screen *ebiten.Image) {
	g.panel.Render(g.m.LCD, g.m.Indicator())
	if g.img == nil {
		w, h := PanelSize()
		g.img = ebiten.NewImage(w, h)
	}
	g.img.WritePixels(g.panel.Image().Pix)
	screen.DrawImage(g.img, nil)
}

func (g *boardGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return PanelSize()
}
