package ports

import (
	"thunderpunch/internal/domain/combat"
	"thunderpunch/internal/domain/world"
)

type SpawnTimer interface {
	// EnableOnce arms the deferred spawn and reports whether this call won.
	EnableOnce(w World, playerID string, origin world.Vec3) bool
}

type TuningSource interface {
	Tuning() combat.Tuning
}
