package ports

import (
	"context"
	"time"

	"thunderpunch/internal/domain/combat"
	"thunderpunch/internal/domain/effect"
)

type OutcomeRecord struct {
	ID         string
	Trigger    combat.Trigger
	ActorID    string
	TargetID   string
	Handled    bool
	Failure    string
	Effects    effect.Bundle
	OccurredAt time.Time
}

type OutcomeRepository interface {
	Append(ctx context.Context, rec OutcomeRecord) error
	// ListByActor returns newest first; ErrNotFound when the actor has none.
	ListByActor(ctx context.Context, actorID string, limit int) ([]OutcomeRecord, error)
	// Prune drops all but the actor's newest keep outcomes and reports how
	// many were removed.
	Prune(ctx context.Context, actorID string, keep int) (int, error)
}

// OutcomeRecorder stores a trigger outcome and returns it with its id and
// timestamp filled in.
type OutcomeRecorder interface {
	Record(ctx context.Context, rec OutcomeRecord) (OutcomeRecord, error)
}
