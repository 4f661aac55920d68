package ports

import (
	"context"
	"time"

	"thunderpunch/internal/domain/world"
)

type EntityHit struct {
	EntityID string
	// Position is where the segment enters the entity.
	Position       world.Vec3
	EntityPosition world.Vec3
}

type SegmentQuery struct {
	Start         world.Vec3
	End           world.Vec3
	Exclude       string
	MaxDistanceSq float64
}

type BlockHit struct {
	Hit      bool
	Position world.Vec3
	Block    world.BlockPos
}

type WorldQueries interface {
	// EntityAttribute returns ErrNotFound when the entity lacks the attribute.
	EntityAttribute(ctx context.Context, entityID string, attr world.AttributeKind) (float64, error)
	// NearestLivingEntityOnSegment returns nil when nothing living and
	// non-spectating intersects the segment within MaxDistanceSq of Start.
	NearestLivingEntityOnSegment(ctx context.Context, q SegmentQuery) (*EntityHit, error)
	// BlockRaycast collides with block outline shapes and passes through
	// fluids.
	BlockRaycast(ctx context.Context, start, end world.Vec3) (BlockHit, error)
	GroundHeight(ctx context.Context, x, z float64) (float64, error)
	EntityPosition(ctx context.Context, entityID string) (world.Vec3, error)
}

type WorldMutations interface {
	ApplyDamage(ctx context.Context, entityID string, amount float64, source world.DamageSource, sourceID string) error
	ApplyKnockback(ctx context.Context, entityID string, strength, dx, dz float64) error
	CreateExplosion(ctx context.Context, pos world.Vec3, power float64, by world.Attribution) error
	SpawnEntity(ctx context.Context, req world.SpawnRequest) (string, error)
	SetBlockIfEmpty(ctx context.Context, pos world.BlockPos, block world.BlockKind) (bool, error)
	AddStatusEffect(ctx context.Context, entityID string, status world.StatusKind, durationTicks, amplifier int) error
	Heal(ctx context.Context, entityID string, amount float64) error
	SetHealth(ctx context.Context, entityID string, health float64) error
	AddVelocity(ctx context.Context, entityID string, dx, dy, dz float64) error
	AddHunger(ctx context.Context, entityID string, food int, saturation float64) error
	SetWorldTime(ctx context.Context, ticks int64) error
	SendMessage(ctx context.Context, entityID, text string) error
	PlaySound(ctx context.Context, sound world.SoundKind, pos world.Vec3, volume, pitch float64) error
	EmitParticles(ctx context.Context, particle world.ParticleKind, pos world.Vec3, count int, spread float64) error
}

// World is everything the rule core needs from its host simulation.
type World interface {
	WorldQueries
	WorldMutations
	Now() time.Time
	IsServerAuthoritative() bool
}
