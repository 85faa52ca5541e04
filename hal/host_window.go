//go:build cgo

package hal

import (
	"errors"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"globe/internal/buildinfo"
)

// WindowConfig controls the desktop window.
type WindowConfig struct {
	Title         string
	Width, Height int
	TPS           int
}

// RunWindow opens a resizable desktop window that shows the framebuffer and
// forwards keyboard, mouse and touch input. It blocks until the window closes
// or the app step returns ErrQuit.
func RunWindow(newApp func(HAL) func() error, cfg WindowConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 960
	}
	if cfg.Height <= 0 {
		cfg.Height = 640
	}
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}
	if cfg.Title == "" {
		cfg.Title = "Globe"
	}

	h := newHost(os.Stderr)
	step := newApp(h)

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle(cfg.Title + " (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type hostGame struct {
	h       *hostHAL
	fbImg   *ebiten.Image
	scratch []byte
	step    func() error
}

func (g *hostGame) Update() error {
	vp := g.h.vp
	g.h.kbd.poll()
	g.h.ptr.poll(vp.Scale, g.h.fb.width, g.h.fb.height)
	g.h.t.step(1)
	if g.step != nil {
		if err := g.step(); err != nil {
			if errors.Is(err, ErrQuit) {
				return ebiten.Termination
			}
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if fb.width == 0 || fb.height == 0 {
		return
	}
	if g.fbImg == nil || g.fbImg.Bounds().Dx() != fb.width || g.fbImg.Bounds().Dy() != fb.height {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	g.scratch = fb.snapshot(g.scratch)
	g.fbImg.WritePixels(g.scratch)
	screen.DrawImage(g.fbImg, nil)
}

// Layout sizes the screen in device pixels so the framebuffer maps 1:1 to
// the display, and keeps the logical viewport for the app.
func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := 1.0
	if m := ebiten.Monitor(); m != nil {
		scale = m.DeviceScaleFactor()
	}
	g.h.setViewport(Viewport{Width: outsideWidth, Height: outsideHeight, Scale: scale})
	return max(g.h.fb.width, 1), max(g.h.fb.height, 1)
}
