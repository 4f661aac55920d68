package file

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"gopkg.in/yaml.v3"

	"thunderpunch/internal/domain/combat"
)

// Parse overlays the YAML document on the default tuning. Keys that are
// absent keep their defaults; unknown keys are an error.
func Parse(data []byte) (combat.Tuning, error) {
	t := combat.DefaultTuning()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil && !errors.Is(err, io.EOF) {
		return combat.Tuning{}, fmt.Errorf("decode tuning: %w", err)
	}
	if err := t.Validate(); err != nil {
		return combat.Tuning{}, err
	}
	return t, nil
}

func Load(path string) (combat.Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return combat.Tuning{}, fmt.Errorf("read tuning %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return combat.Tuning{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Store hands out the current tuning and lets a reload swap it atomically.
type Store struct {
	current atomic.Pointer[combat.Tuning]
}

func NewStore(t combat.Tuning) *Store {
	s := &Store{}
	s.Set(t)
	return s
}

func (s *Store) Tuning() combat.Tuning {
	return *s.current.Load()
}

func (s *Store) Set(t combat.Tuning) {
	s.current.Store(&t)
}
