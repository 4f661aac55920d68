package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"thunderpunch/internal/app/ports"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 200
)

var ErrInvalidQuery = errors.New("invalid outcome query")

type UseCase struct {
	Repo ports.OutcomeRepository
	Tx   ports.TxManager
	// Retain bounds the outcomes kept per actor; zero keeps everything.
	Retain int
	Now    func() time.Time
	NewID  func() string
}

func (u UseCase) Record(ctx context.Context, rec ports.OutcomeRecord) (ports.OutcomeRecord, error) {
	if rec.ID == "" {
		rec.ID = u.newID()
	}
	if rec.OccurredAt.IsZero() {
		rec.OccurredAt = u.now()
	}
	write := func(ctx context.Context) error {
		if err := u.Repo.Append(ctx, rec); err != nil {
			return err
		}
		if u.Retain <= 0 {
			return nil
		}
		if _, err := u.Repo.Prune(ctx, rec.ActorID, u.Retain); err != nil {
			return fmt.Errorf("prune outcomes: %w", err)
		}
		return nil
	}
	var err error
	if u.Tx != nil {
		err = u.Tx.RunInTx(ctx, write)
	} else {
		err = write(ctx)
	}
	if err != nil {
		return ports.OutcomeRecord{}, err
	}
	return rec, nil
}

// List returns the actor's outcomes newest first. An actor without outcomes
// yields an empty slice.
func (u UseCase) List(ctx context.Context, actorID string, limit int) ([]ports.OutcomeRecord, error) {
	actorID = strings.TrimSpace(actorID)
	if actorID == "" {
		return nil, ErrInvalidQuery
	}
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}
	items, err := u.Repo.ListByActor(ctx, actorID, limit)
	if errors.Is(err, ports.ErrNotFound) {
		return []ports.OutcomeRecord{}, nil
	}
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now().UTC()
	}
	return time.Now().UTC()
}

func (u UseCase) newID() string {
	if u.NewID != nil {
		return u.NewID()
	}
	return uuid.NewString()
}
