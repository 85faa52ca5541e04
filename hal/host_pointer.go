//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type hostPointer struct {
	ch chan PointerEvent

	inside bool
	lastX  float64
	lastY  float64
	down   bool

	touching bool
	active   ebiten.TouchID
	tx, ty   float64
	ids      []ebiten.TouchID
}

func newHostPointer() *hostPointer {
	return &hostPointer{ch: make(chan PointerEvent, 256)}
}

func (p *hostPointer) Events() <-chan PointerEvent { return p.ch }

func (p *hostPointer) emit(kind PointerKind, x, y float64) {
	select {
	case p.ch <- PointerEvent{Kind: kind, X: x, Y: y}:
	default:
	}
}

// poll turns this frame's mouse and touch state into events. Coordinates
// from ebiten are device pixels; events carry logical units.
func (p *hostPointer) poll(scale float64, width, height int) {
	if scale <= 0 {
		scale = 1
	}
	focused := ebiten.IsFocused()

	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx)/scale, float64(cy)/scale
	inside := focused && cx >= 0 && cy >= 0 && cx < width && cy < height

	if inside && (!p.inside || x != p.lastX || y != p.lastY) {
		p.emit(PointerMove, x, y)
	}
	if inside && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		p.down = true
		p.emit(PointerDown, x, y)
	}
	if p.down && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		p.down = false
		p.emit(PointerUp, x, y)
	}
	if p.inside && !inside {
		p.down = false
		p.emit(PointerLeave, x, y)
	}
	p.inside = inside
	p.lastX, p.lastY = x, y

	switch {
	case p.down:
		ebiten.SetCursorShape(ebiten.CursorShapeMove)
	case inside:
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	default:
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}

	p.pollTouch(scale, focused)
}

// pollTouch follows the first finger down until it lifts.
func (p *hostPointer) pollTouch(scale float64, focused bool) {
	if p.touching {
		switch {
		case !focused:
			p.touching = false
			p.emit(TouchCancel, p.tx, p.ty)
		case inpututil.IsTouchJustReleased(p.active):
			p.touching = false
			p.emit(TouchEnd, p.tx, p.ty)
		default:
			tx, ty := ebiten.TouchPosition(p.active)
			x, y := float64(tx)/scale, float64(ty)/scale
			if x != p.tx || y != p.ty {
				p.tx, p.ty = x, y
				p.emit(TouchMove, x, y)
			}
		}
		return
	}

	p.ids = inpututil.AppendJustPressedTouchIDs(p.ids[:0])
	if len(p.ids) == 0 || !focused {
		return
	}
	p.active = p.ids[0]
	p.touching = true
	tx, ty := ebiten.TouchPosition(p.active)
	p.tx, p.ty = float64(tx)/scale, float64(ty)/scale
	p.emit(TouchStart, p.tx, p.ty)
}
