package explosive

import (
	"context"
	"io"
	"log"
	"time"

	"thunderpunch/internal/app/ports"
	"thunderpunch/internal/domain/combat"
	"thunderpunch/internal/domain/world"
)

type fixedRandom struct {
	floats []float64
}

func (r *fixedRandom) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *fixedRandom) IntN(lo, _ int) int { return lo }

// aimWorld answers raycasts from fields and counts mutations.
type aimWorld struct {
	entity     *ports.EntityHit
	block      ports.BlockHit
	entityErr  error
	query      ports.SegmentQuery
	clientSide bool
	explodeErr error

	explosions int
	damage     int
	spawns     int
	sounds     int
	particles  int
}

func (w *aimWorld) EntityAttribute(context.Context, string, world.AttributeKind) (float64, error) {
	return 0, ports.ErrNotFound
}

func (w *aimWorld) NearestLivingEntityOnSegment(_ context.Context, q ports.SegmentQuery) (*ports.EntityHit, error) {
	w.query = q
	return w.entity, w.entityErr
}

func (w *aimWorld) BlockRaycast(context.Context, world.Vec3, world.Vec3) (ports.BlockHit, error) {
	return w.block, nil
}

func (w *aimWorld) GroundHeight(context.Context, float64, float64) (float64, error) { return 64, nil }

func (w *aimWorld) EntityPosition(context.Context, string) (world.Vec3, error) {
	return world.Vec3{}, ports.ErrNotFound
}

func (w *aimWorld) ApplyDamage(context.Context, string, float64, world.DamageSource, string) error {
	w.damage++
	return nil
}

func (w *aimWorld) ApplyKnockback(context.Context, string, float64, float64, float64) error {
	return nil
}

func (w *aimWorld) CreateExplosion(context.Context, world.Vec3, float64, world.Attribution) error {
	w.explosions++
	return w.explodeErr
}

func (w *aimWorld) SpawnEntity(context.Context, world.SpawnRequest) (string, error) {
	w.spawns++
	return "spawned", nil
}

func (w *aimWorld) SetBlockIfEmpty(context.Context, world.BlockPos, world.BlockKind) (bool, error) {
	return true, nil
}

func (w *aimWorld) AddStatusEffect(context.Context, string, world.StatusKind, int, int) error {
	return nil
}
func (w *aimWorld) Heal(context.Context, string, float64) error                          { return nil }
func (w *aimWorld) SetHealth(context.Context, string, float64) error                     { return nil }
func (w *aimWorld) AddVelocity(context.Context, string, float64, float64, float64) error { return nil }
func (w *aimWorld) AddHunger(context.Context, string, int, float64) error                { return nil }
func (w *aimWorld) SetWorldTime(context.Context, int64) error                            { return nil }
func (w *aimWorld) SendMessage(context.Context, string, string) error                    { return nil }

func (w *aimWorld) PlaySound(context.Context, world.SoundKind, world.Vec3, float64, float64) error {
	w.sounds++
	return nil
}

func (w *aimWorld) EmitParticles(context.Context, world.ParticleKind, world.Vec3, int, float64) error {
	w.particles++
	return nil
}

func (w *aimWorld) Now() time.Time { return time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC) }

func (w *aimWorld) IsServerAuthoritative() bool { return !w.clientSide }

func lookingNorth() combat.PlayerContext {
	return combat.PlayerContext{
		PlayerID:    "player-1",
		Position:    world.Vec3{0, 64, 0},
		EyePosition: world.Vec3{0, 65.62, 0},
		Look:        world.Vec3{0, 0, 2},
		HandEmpty:   true,
	}
}

func newTestUseCase(rnd *fixedRandom) UseCase {
	return UseCase{Random: rnd, Logger: log.New(io.Discard, "", 0)}
}
