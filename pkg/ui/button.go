package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Button runs OnClick once per click.
type Button struct {
	box
	Label   string
	OnClick func()

	BGColor    color.RGBA
	HoverColor color.RGBA
}

// NewButton sizes the button to its label.
func NewButton(label string, onClick func()) *Button {
	return &Button{
		box:        box{W: float64(len(label)*charWidth + 12), H: 20},
		Label:      label,
		OnClick:    onClick,
		BGColor:    color.RGBA{R: 80, G: 120, B: 180, A: 255},
		HoverColor: color.RGBA{R: 100, G: 150, B: 220, A: 255},
	}
}

func (b *Button) Width() float64 { return b.W }

func (b *Button) Update() {
	if b.clicked() && b.OnClick != nil {
		b.OnClick()
	}
}

func (b *Button) Draw(screen *ebiten.Image) {
	bg := b.BGColor
	if b.hover() {
		bg = b.HoverColor
	}
	vector.FillRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), bg, true)
	vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 1, borderColor, true)
	ebitenutil.DebugPrintAt(screen, b.Label, int(b.X)+6, int(b.Y)+2)
}
