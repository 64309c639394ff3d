package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	panelPadding = 6
	widgetGap    = 14
)

// Panel is a horizontal strip laying widgets out left to right.
type Panel struct {
	X, Y, Width, Height float64
	Widgets             []Widget

	BGColor color.RGBA
	cursor  float64
}

// NewPanel creates an empty strip.
func NewPanel(x, y, width, height float64) *Panel {
	return &Panel{
		X:       x,
		Y:       y,
		Width:   width,
		Height:  height,
		BGColor: color.RGBA{R: 40, G: 40, B: 45, A: 230},
		cursor:  x + panelPadding,
	}
}

// Add places w after the previous widget, vertically centred.
func (p *Panel) Add(w Widget) {
	w.place(p.cursor, p.Y+panelPadding)
	p.cursor += w.Width() + widgetGap
	p.Widgets = append(p.Widgets, w)
}

// AddButton is a shorthand for Add(NewButton(...)).
func (p *Panel) AddButton(label string, onClick func()) *Button {
	b := NewButton(label, onClick)
	p.Add(b)
	return b
}

// AddToggle is a shorthand for Add(NewToggle(...)).
func (p *Panel) AddToggle(label string, value bool) *Toggle {
	t := NewToggle(label, value)
	p.Add(t)
	return t
}

func (p *Panel) Update() {
	for _, w := range p.Widgets {
		w.Update()
	}
}

func (p *Panel) Draw(screen *ebiten.Image) {
	vector.FillRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(p.Height), p.BGColor, true)
	for _, w := range p.Widgets {
		w.Draw(screen)
	}
}
