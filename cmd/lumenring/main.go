// Command lumenring drives the circular LED lamp on real hardware: gpio PWM
// outputs (or an SPI strip), three setting buttons, selection indicator
// lights, and a textual command channel on stdin.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/coreman2200/funtimes-lumenring/internal/cluster"
	"github.com/coreman2200/funtimes-lumenring/internal/config"
	"github.com/coreman2200/funtimes-lumenring/internal/input"
	"github.com/coreman2200/funtimes-lumenring/internal/led"
	"github.com/coreman2200/funtimes-lumenring/internal/nonvol"
	"github.com/coreman2200/funtimes-lumenring/internal/panel"
	"github.com/coreman2200/funtimes-lumenring/internal/remote"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		sinkKind   = flag.String("sink", "", "sink override: gpio | spi | screen | sim")
		fps        = flag.Int("fps", 0, "tick rate override")
		storePath  = flag.String("store", "", "settings region file override")
		debug      = flag.Bool("debug", false, "verbose logging")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// ---- Config (flags overlay the file) ----
	cfg := config.Default()
	if c, err := config.Load(*configPath); err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with defaults")
	} else {
		cfg = c
	}
	if *sinkKind != "" {
		cfg.Sink = *sinkKind
	}
	if *fps > 0 {
		cfg.FPS = *fps
	}
	if *storePath != "" {
		cfg.Store.Path = *storePath
	}
	if cfg.Count == 0 {
		cfg.Count = len(cfg.Pins)
	}
	if cfg.FPS <= 0 {
		cfg.FPS = 60
	}

	needHW := cfg.Sink == "gpio" || cfg.Sink == "spi"
	if needHW {
		if _, err := host.Init(); err != nil {
			log.Fatal().Err(err).Msg("periph host init failed")
		}
	}

	sink, err := buildSink(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("sink", cfg.Sink).Msg("sink init failed")
	}
	defer sink.Close()

	region := nonvol.NewFileRegion(cfg.Store.Path)
	store := nonvol.NewValue[cluster.Settings](region, cfg.Store.Addr)

	outputs := make([]int, cfg.Count)
	for i := range outputs {
		outputs[i] = i
	}
	ring := cluster.New(outputs, sink, store,
		cluster.WithLogger(log.With().Str("comp", "cluster").Logger()))

	ctrl := buildPanel(cfg, ring, needHW)
	buttons := buildButtons(cfg, ctrl, needHW)

	// ---- Remote command channel on stdin ----
	dispatcher := remote.New(ring, log.With().Str("comp", "remote").Logger())
	go func() {
		if err := dispatcher.Run(os.Stdin, os.Stdout); err != nil {
			log.Warn().Err(err).Msg("remote channel closed")
		}
	}()

	// ---- Drive loop ----
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second / time.Duration(cfg.FPS))
	defer ticker.Stop()

	log.Info().Int("fps", cfg.FPS).Str("sink", cfg.Sink).Msg("running")
	for {
		select {
		case <-ticker.C:
			for _, b := range buttons {
				b.Poll()
			}
			ring.Poll()
		case s := <-sig:
			fmt.Printf("Got %s signal. Aborting...\n", s)
			ring.Shutdown()
			return
		case <-ctx.Done():
			ring.Shutdown()
			return
		}
	}
}

func buildSink(cfg *config.Config) (led.Sink, error) {
	switch cfg.Sink {
	case "gpio":
		return led.NewPWMSink(cfg.Pins, physic.Frequency(cfg.PWMHz)*physic.Hertz)
	case "spi":
		return led.NewStripSink(cfg.SPI.Port, cfg.Count)
	case "screen":
		return led.NewScreenSink(cfg.Count), nil
	case "sim":
		return led.NewRecorder(), nil
	}
	return nil, fmt.Errorf("unknown sink %q", cfg.Sink)
}

// buildPanel wires the selection indicators when hardware is present. A
// missing indicator pin downgrades to a warning; the panel still works.
func buildPanel(cfg *config.Config, ring *cluster.Cluster, hw bool) *panel.Panel {
	indicators := map[panel.Selection]panel.Indicator{}
	if hw {
		for sel, name := range map[panel.Selection]string{
			panel.SelectPattern:    cfg.Indicators.Pattern,
			panel.SelectBrightness: cfg.Indicators.Brightness,
			panel.SelectSpeed:      cfg.Indicators.Speed,
		} {
			ind, err := led.NewIndicator(name)
			if err != nil {
				log.Warn().Err(err).Stringer("selection", sel).Msg("indicator unavailable")
				continue
			}
			indicators[sel] = ind
		}
	}
	return panel.New(ring, indicators, log.With().Str("comp", "panel").Logger())
}

func buildButtons(cfg *config.Config, ctrl *panel.Panel, hw bool) []*input.Button {
	if !hw {
		return nil
	}
	hold := time.Duration(cfg.Buttons.HoldMs) * time.Millisecond
	var buttons []*input.Button
	add := func(name string, toggle input.ToggleFunc, opts ...input.ButtonOption) {
		p := gpioreg.ByName(name)
		if p == nil {
			log.Warn().Str("pin", name).Msg("button pin not found")
			return
		}
		if err := p.In(gpio.PullDown, gpio.NoEdge); err != nil {
			log.Warn().Err(err).Str("pin", name).Msg("button pin setup failed")
			return
		}
		buttons = append(buttons, input.NewButton(input.GPIOPin(p), toggle, opts...))
	}
	add(cfg.Buttons.Select,
		func(state bool, _ time.Duration) {
			if state {
				ctrl.Select()
			}
		},
		input.WithTimeout(hold, func(time.Duration) { ctrl.TogglePower() }))
	add(cfg.Buttons.Up, func(state bool, _ time.Duration) {
		if state {
			ctrl.Up()
		}
	})
	add(cfg.Buttons.Down, func(state bool, _ time.Duration) {
		if state {
			ctrl.Down()
		}
	})
	return buttons
}
