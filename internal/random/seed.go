// Package random provides the rule core's uniform random sources.
//
// New returns a source safe for concurrent use in which every call draws
// from a pooled generator, so concurrent triggers never share or correlate
// a stream. NewSeeded returns a reproducible source for tests and replays.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}
