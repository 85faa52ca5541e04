package hal

import (
	"image"
	"sync"
)

type hostFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	img    *image.RGBA
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	f := &hostFramebuffer{}
	f.resize(width, height)
	return f
}

func (f *hostFramebuffer) resize(width, height int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if f.img != nil && width == f.width && height == f.height {
		return
	}
	f.width = width
	f.height = height
	f.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

func (f *hostFramebuffer) Width() int          { return f.width }
func (f *hostFramebuffer) Height() int         { return f.height }
func (f *hostFramebuffer) Format() PixelFormat { return PixelFormatRGBA8888 }
func (f *hostFramebuffer) StrideBytes() int    { return f.img.Stride }
func (f *hostFramebuffer) Buffer() []byte      { return f.img.Pix }
func (f *hostFramebuffer) Image() *image.RGBA  { return f.img }
func (f *hostFramebuffer) Present() error      { return nil }

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	buf := f.img.Pix
	for i := 0; i+3 < len(buf); i += 4 {
		buf[i] = r
		buf[i+1] = g
		buf[i+2] = b
		buf[i+3] = 0xFF
	}
}

func (f *hostFramebuffer) snapshot(dst []byte) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cap(dst) < len(f.img.Pix) {
		dst = make([]byte, len(f.img.Pix))
	}
	dst = dst[:len(f.img.Pix)]
	copy(dst, f.img.Pix)
	return dst
}
