// Package ui holds the few widgets of the viewer's control strip.
package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Widget is anything the Panel can lay out.
type Widget interface {
	Update()
	Draw(screen *ebiten.Image)
	// Width is the horizontal room the widget needs.
	Width() float64
	place(x, y float64)
}

var borderColor = color.RGBA{R: 200, G: 200, B: 200, A: 255}

// box is the clickable area shared by every widget.
type box struct {
	X, Y, W, H float64
}

func (b *box) place(x, y float64) { b.X, b.Y = x, y }

func (b *box) hover() bool {
	mx, my := ebiten.CursorPosition()
	return float64(mx) >= b.X && float64(mx) <= b.X+b.W &&
		float64(my) >= b.Y && float64(my) <= b.Y+b.H
}

// clicked reports a left click that started over the box this frame.
func (b *box) clicked() bool {
	return b.hover() && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}
