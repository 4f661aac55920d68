package memory

import (
	"sync"

	"thunderpunch/internal/app/ports"
)

type Store struct {
	mu       sync.RWMutex
	outcomes map[string][]ports.OutcomeRecord
	capacity int
}

// NewStore keeps at most capacity outcomes per actor; zero means unbounded.
func NewStore(capacity int) *Store {
	return &Store{
		outcomes: make(map[string][]ports.OutcomeRecord),
		capacity: capacity,
	}
}
