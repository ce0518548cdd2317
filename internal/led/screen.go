package led

import (
	"image"
	"image/color"
	"sync"

	"periph.io/x/conn/v3/display"
	"periph.io/x/extra/devices/screen"
)

// ScreenSink paints the ring as a row of ANSI blocks on the console, a
// no-hardware fallback for when no SPI port is present.
type ScreenSink struct {
	mu     sync.Mutex
	drawer display.Drawer
	img    *image.NRGBA
}

func NewScreenSink(count int) *ScreenSink {
	return &ScreenSink{
		drawer: screen.New(count),
		img:    image.NewNRGBA(image.Rect(0, 0, count, 1)),
	}
}

func (s *ScreenSink) SetLevel(id int, duty uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id < 0 || id >= s.img.Rect.Max.X {
		return
	}
	s.img.SetNRGBA(id, 0, color.NRGBA{R: duty, G: duty, B: duty, A: 255})
	_ = s.drawer.Draw(s.drawer.Bounds(), s.img, image.Point{})
}

func (s *ScreenSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawer.Halt()
}
