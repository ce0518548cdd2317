package led

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
)

const stripRefreshRate physic.Frequency = 800

// StripSink renders the ring onto an NRZ LED strip over SPI. Each channel id
// maps to one pixel; the duty cycle drives all three color channels, giving
// white light at the corrected level.
type StripSink struct {
	mu     sync.Mutex
	drawer display.Drawer
	img    *image.NRGBA
	port   spi.PortCloser
}

// NewStripSink opens an SPI port (e.g. "SPI0.0") and attaches an nrzled
// strip with count pixels.
func NewStripSink(port string, count int) (*StripSink, error) {
	p, err := spireg.Open(port)
	if err != nil {
		return nil, fmt.Errorf("open spi port %q: %w", port, err)
	}
	opts := nrzled.Opts{
		NumPixels: count,
		Channels:  3,
		Freq:      ((stripRefreshRate * 3) + 100) * physic.KiloHertz,
	}
	d, err := nrzled.NewSPI(p, &opts)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("nrzled: %w", err)
	}
	return &StripSink{
		drawer: d,
		img:    image.NewNRGBA(image.Rect(0, 0, count, 1)),
		port:   p,
	}, nil
}

func (s *StripSink) SetLevel(id int, duty uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id < 0 || id >= s.img.Rect.Max.X {
		return
	}
	s.img.SetNRGBA(id, 0, color.NRGBA{R: duty, G: duty, B: duty, A: 255})
	_ = s.drawer.Draw(s.drawer.Bounds(), s.img, image.Point{})
}

func (s *StripSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.drawer.Halt(); err != nil {
		s.port.Close()
		return err
	}
	return s.port.Close()
}
