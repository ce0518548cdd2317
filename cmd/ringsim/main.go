// Command ringsim runs the pattern engine headless: an in-memory settings
// region, a recording sink, and a fixed random seed, printing one line per
// simulated tick. Useful for eyeballing a pattern before flashing hardware.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-lumenring/internal/cluster"
	"github.com/coreman2200/funtimes-lumenring/internal/led"
	"github.com/coreman2200/funtimes-lumenring/internal/nonvol"
	"github.com/coreman2200/funtimes-lumenring/internal/remote"
)

const levelRamp = " .:-=+*#%@"

func main() {
	var (
		leds        = flag.Int("leds", 6, "LEDs in the ring")
		fps         = flag.Int("fps", 30, "simulated ticks per second")
		seconds     = flag.Float64("seconds", 4, "simulated run time")
		pattern     = flag.Int("pattern", -1, "pattern index to force (-1 keeps the default)")
		seed        = flag.Int64("seed", 1, "random seed for the stateful patterns")
		interactive = flag.Bool("interactive", false, "read remote commands from stdin instead of simulating")
	)
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	store := nonvol.NewValue[cluster.Settings](nonvol.NewMemRegion(), 0)
	sink := led.NewRecorder()

	start := time.Unix(0, 0)
	now := start
	outputs := make([]int, *leds)
	for i := range outputs {
		outputs[i] = i
	}
	ring := cluster.New(outputs, sink, store,
		cluster.WithRand(rand.New(rand.NewSource(*seed))),
		cluster.WithClock(func() time.Time { return now }),
		cluster.WithLogger(log.Logger))

	if *pattern >= 0 {
		ring.SetPattern(*pattern)
	}

	if *interactive {
		d := remote.New(ring, log.Logger)
		if err := d.Run(os.Stdin, os.Stdout); err != nil {
			log.Fatal().Err(err).Msg("stdin closed")
		}
		return
	}

	dt := time.Second / time.Duration(*fps)
	frames := int(*seconds * float64(*fps))
	for frame := 0; frame < frames; frame++ {
		ring.Poll()
		printFrame(frame, ring, sink)
		now = now.Add(dt)
	}
}

func printFrame(frame int, ring *cluster.Cluster, sink *led.Recorder) {
	row := make([]byte, 0, 64)
	for _, l := range ring.Leds() {
		duty := sink.Level(l.Output)
		row = append(row, '[', levelRamp[int(duty)*(len(levelRamp)-1)/255], ']')
	}
	fmt.Printf("[frame %04d] %s pattern=%d\n", frame, row, ring.Pattern())
}
