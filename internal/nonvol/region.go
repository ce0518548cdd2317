// Package nonvol provides key-addressed persistent byte storage: the Go
// stand-in for the lamp's EEPROM. A Region hands back raw bytes with no
// format negotiation; Value wraps one fixed-layout record at an address.
package nonvol

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

// Region is a raw byte-addressed persistent medium. Load returns whatever
// bytes are present; unwritten space reads as zeroes. Save offers no
// atomicity beyond the medium's own — a write torn by power loss is an
// accepted risk.
type Region interface {
	Load(addr, n int) ([]byte, error)
	Save(addr int, b []byte) error
}

// FileRegion stores the region in a flat file.
type FileRegion struct {
	mu   sync.Mutex
	path string
}

func NewFileRegion(path string) *FileRegion {
	return &FileRegion{path: path}
}

func (r *FileRegion) Load(addr, n int) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := make([]byte, n)
	f, err := os.Open(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return b, nil
	}
	if err != nil {
		return nil, fmt.Errorf("nonvol open: %w", err)
	}
	defer f.Close()
	if _, err := f.ReadAt(b, int64(addr)); err != nil && err != io.EOF {
		return nil, fmt.Errorf("nonvol read: %w", err)
	}
	return b, nil
}

func (r *FileRegion) Save(addr int, b []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("nonvol open: %w", err)
	}
	if _, err := f.WriteAt(b, int64(addr)); err != nil {
		f.Close()
		return fmt.Errorf("nonvol write: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("nonvol close: %w", err)
	}
	return nil
}

// MemRegion is an in-memory region for tests and the simulator.
type MemRegion struct {
	mu sync.Mutex
	b  []byte
}

func NewMemRegion() *MemRegion {
	return &MemRegion{}
}

func (r *MemRegion) Load(addr, n int) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := make([]byte, n)
	if addr < len(r.b) {
		copy(b, r.b[addr:])
	}
	return b, nil
}

func (r *MemRegion) Save(addr int, b []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if need := addr + len(b); need > len(r.b) {
		grown := make([]byte, need)
		copy(grown, r.b)
		r.b = grown
	}
	copy(r.b[addr:], b)
	return nil
}
