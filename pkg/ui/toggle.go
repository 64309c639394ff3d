package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	toggleSize = 14
	charWidth  = 6 // debug font
)

// Toggle is a labelled checkbox.
type Toggle struct {
	box
	Label string
	Value bool
}

func NewToggle(label string, value bool) *Toggle {
	return &Toggle{
		box:   box{W: toggleSize, H: toggleSize},
		Label: label,
		Value: value,
	}
}

// Width includes the label printed right of the box.
func (t *Toggle) Width() float64 {
	return toggleSize + 6 + float64(len(t.Label)*charWidth)
}

func (t *Toggle) Update() {
	if t.clicked() {
		t.Value = !t.Value
	}
}

func (t *Toggle) Draw(screen *ebiten.Image) {
	vector.StrokeRect(screen, float32(t.X), float32(t.Y), toggleSize, toggleSize, 2, borderColor, true)
	if t.Value {
		vector.FillRect(screen, float32(t.X+3), float32(t.Y+3), toggleSize-6, toggleSize-6,
			color.RGBA{R: 100, G: 200, B: 100, A: 255}, true)
	}
	ebitenutil.DebugPrintAt(screen, t.Label, int(t.X)+toggleSize+6, int(t.Y))
}
