// Package led holds the output side of the lamp: sinks that turn duty-cycle
// levels into light, and digital indicator pins for the control panel.
package led

import "sync"

// Sink drives duty-cycle levels onto output channels. Writes are
// fire-and-forget; a sink never reports back per write.
type Sink interface {
	SetLevel(id int, duty uint8)
	Close() error
}

// Recorder captures the levels written to it, for tests and the simulator.
type Recorder struct {
	mu     sync.Mutex
	levels map[int]uint8
	writes int
}

func NewRecorder() *Recorder {
	return &Recorder{levels: map[int]uint8{}}
}

func (r *Recorder) SetLevel(id int, duty uint8) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.levels[id] = duty
	r.writes++
}

func (r *Recorder) Close() error { return nil }

// Level returns the last duty written to a channel.
func (r *Recorder) Level(id int) uint8 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.levels[id]
}

// Writes returns the total number of SetLevel calls seen.
func (r *Recorder) Writes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

// Snapshot copies the current channel levels.
func (r *Recorder) Snapshot() map[int]uint8 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[int]uint8, len(r.levels))
	for k, v := range r.levels {
		out[k] = v
	}
	return out
}
