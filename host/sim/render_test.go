//go:build !tinygo

package sim

import (
	"testing"

	"joycursor/core"
	"joycursor/host/charlcd"
)

func TestPanelRender(t *testing.T) {
	p := NewPanel()
	w, h := p.Size()
	pw, ph := PanelSize()
	if int(w) != pw || int(h) != ph {
		t.Fatalf("size = %dx%d, want %dx%d", w, h, pw, ph)
	}

	l := charlcd.New()
	l.GotoXY(0, 0)
	l.PutChar(0xff)
	p.Render(l, true)

	if got := p.Image().RGBAAt(panelPad+1, panelPad+1); got != panelInk {
		t.Errorf("block cell pixel = %v, want ink", got)
	}
	if got := p.Image().RGBAAt(panelPad+cellWidth+cellGap+1, panelPad+1); got != panelCell {
		t.Errorf("empty cell pixel = %v, want cell background", got)
	}

	ly := 2*panelPad + core.DisplayRows*(cellHeight+cellGap)
	if got := p.Image().RGBAAt(panelPad, ly); got != indicatorOn {
		t.Errorf("indicator pixel = %v", got)
	}
}
