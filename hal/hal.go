package hal

import (
	"errors"
	"image"
	"io"
	"time"
)

// Logger writes newline-delimited log lines. It is also an io.Writer so a
// structured logger can use it as its sink.
type Logger interface {
	io.Writer
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// ErrQuit is returned by an app step to end the run loop cleanly.
var ErrQuit = errors.New("quit")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGBA8888 is 32bpp, premultiplied, R first.
	PixelFormatRGBA8888 PixelFormat = iota + 1
)

// Framebuffer is a pixel buffer plus a "present" hook. Its size follows the
// viewport and may change between steps.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	// Image exposes the buffer as an *image.RGBA sharing its pixels.
	Image() *image.RGBA
	ClearRGB(r, g, b uint8)
	Present() error
}

// Viewport is the logical size of the drawing surface and the device pixel
// ratio between logical units and framebuffer pixels.
type Viewport struct {
	Width, Height int
	Scale         float64
}

// Display provides access to the framebuffer.
type Display interface {
	Framebuffer() Framebuffer
	Viewport() Viewport
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyEscape
	KeyF1
)

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// PointerKind identifies a pointer or touch event.
type PointerKind uint8

const (
	PointerDown PointerKind = iota + 1
	PointerMove
	PointerUp
	PointerLeave
	TouchStart
	TouchMove
	TouchEnd
	TouchCancel
)

// PointerEvent is a mouse or touch event in logical surface coordinates.
type PointerEvent struct {
	Kind PointerKind
	X, Y float64
}

// Pointer provides mouse and touch events.
type Pointer interface {
	Events() <-chan PointerEvent
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
	Pointer() Pointer
}

// Time provides a base tick stream and the frame clock.
//
// Ticks are milliseconds of host time. Now is the wall clock in window mode
// and a simulated clock in headless mode.
type Time interface {
	Ticks() <-chan uint64
	Now() time.Time
}

// HAL provides the only contact point between the app and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	Time() Time
}
