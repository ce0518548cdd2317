package nonvol

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Value reads and writes one fixed-layout record at a region address, like a
// typed EEPROM cell. The record type must have a fixed binary size (fixed
// width fields only); layout is little-endian.
type Value[T any] struct {
	region Region
	addr   int
	size   int
}

// NewValue binds a record type to an address within the region.
func NewValue[T any](region Region, addr int) *Value[T] {
	var zero T
	return &Value[T]{region: region, addr: addr, size: binary.Size(zero)}
}

// Load decodes whatever bytes are present at the address. Unwritten storage
// decodes as the zero record; the caller owns any validity sentinel.
func (v *Value[T]) Load() (T, error) {
	var out T
	b, err := v.region.Load(v.addr, v.size)
	if err != nil {
		return out, err
	}
	if err := binary.Read(bytes.NewReader(b), binary.LittleEndian, &out); err != nil {
		return out, fmt.Errorf("nonvol decode: %w", err)
	}
	return out, nil
}

// Save writes the record back unconditionally.
func (v *Value[T]) Save(val T) error {
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, val); err != nil {
		return fmt.Errorf("nonvol encode: %w", err)
	}
	return v.region.Save(v.addr, buf.Bytes())
}
