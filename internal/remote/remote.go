// Package remote implements the textual command channel: a line-oriented
// parser/dispatcher over any reader/writer pair (serial port, stdin). Every
// command echoes the applied post-clamp value so the caller can mirror it.
package remote

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Commands is the settings mutation API the protocol drives.
type Commands interface {
	SetPattern(index int) int
	UpdatePattern(delta int) int
	SetBrightnessPercent(percent int) int
	UpdateBrightness(deltaSteps int) int
	SetSpeedPercent(percent int) int
	UpdateSpeed(deltaSteps int) int
	StartUp()
	Shutdown()

	Pattern() int
	BrightnessPercent() int
	SpeedPercent() int
	Running() bool
}

// Dispatcher parses command lines and applies them.
//
// Grammar, one command per line:
//
//	pattern [+|-|<index>]
//	bright  [+|-|<percent>]
//	speed   [+|-|<percent>]
//	on | off | status
type Dispatcher struct {
	cmds Commands
	log  zerolog.Logger
}

func New(cmds Commands, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{cmds: cmds, log: log}
}

// Run consumes r line by line until EOF, writing one reply per command.
func (d *Dispatcher) Run(r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if _, err := fmt.Fprintln(w, d.Dispatch(line)); err != nil {
			return err
		}
	}
	return sc.Err()
}

// Dispatch executes a single command line and returns the reply.
func (d *Dispatcher) Dispatch(line string) string {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return ""
	}
	d.log.Debug().Str("cmd", line).Msg("remote command")
	switch fields[0] {
	case "on":
		d.cmds.StartUp()
		return "ok on"
	case "off":
		d.cmds.Shutdown()
		return "ok off"
	case "status":
		return fmt.Sprintf("pattern %d bright %d speed %d running %t",
			d.cmds.Pattern(), d.cmds.BrightnessPercent(), d.cmds.SpeedPercent(), d.cmds.Running())
	case "pattern":
		return d.adjust(fields, "pattern", d.cmds.UpdatePattern, d.cmds.SetPattern)
	case "bright":
		return d.adjust(fields, "bright", d.cmds.UpdateBrightness, d.cmds.SetBrightnessPercent)
	case "speed":
		return d.adjust(fields, "speed", d.cmds.UpdateSpeed, d.cmds.SetSpeedPercent)
	}
	return fmt.Sprintf("err unknown command %q", fields[0])
}

func (d *Dispatcher) adjust(fields []string, name string, update, set func(int) int) string {
	if len(fields) < 2 {
		return fmt.Sprintf("err %s needs an argument", name)
	}
	switch fields[1] {
	case "+":
		return fmt.Sprintf("%s %d", name, update(1))
	case "-":
		return fmt.Sprintf("%s %d", name, update(-1))
	}
	v, err := strconv.Atoi(fields[1])
	if err != nil {
		return fmt.Sprintf("err bad %s value %q", name, fields[1])
	}
	return fmt.Sprintf("%s %d", name, set(v))
}
