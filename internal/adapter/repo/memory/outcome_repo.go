package memory

import (
	"context"
	"slices"

	"thunderpunch/internal/app/ports"
)

type OutcomeRepo struct {
	store *Store
}

func NewOutcomeRepo(store *Store) OutcomeRepo {
	return OutcomeRepo{store: store}
}

func (r OutcomeRepo) Append(_ context.Context, rec ports.OutcomeRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	items := append(r.store.outcomes[rec.ActorID], rec)
	if c := r.store.capacity; c > 0 && len(items) > c {
		items = slices.Clone(items[len(items)-c:])
	}
	r.store.outcomes[rec.ActorID] = items
	return nil
}

func (r OutcomeRepo) Prune(_ context.Context, actorID string, keep int) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	items := r.store.outcomes[actorID]
	if keep < 0 || len(items) <= keep {
		return 0, nil
	}
	removed := len(items) - keep
	if keep == 0 {
		delete(r.store.outcomes, actorID)
		return removed, nil
	}
	r.store.outcomes[actorID] = slices.Clone(items[removed:])
	return removed, nil
}

func (r OutcomeRepo) ListByActor(_ context.Context, actorID string, limit int) ([]ports.OutcomeRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	items := r.store.outcomes[actorID]
	if len(items) == 0 {
		return nil, ports.ErrNotFound
	}
	out := make([]ports.OutcomeRecord, 0, min(len(items), max(limit, 0)))
	for i := len(items) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		out = append(out, items[i])
	}
	return out, nil
}
