package attack

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	"thunderpunch/internal/app/ports"
	"thunderpunch/internal/domain/combat"
	"thunderpunch/internal/domain/world"
)

// scriptedRandom replays floats in order and then returns fallback. IntN
// replays ints and then returns lo.
type scriptedRandom struct {
	floats   []float64
	ints     []int
	fallback float64
	intArgs  [][2]int
}

func (r *scriptedRandom) Float64() float64 {
	if len(r.floats) == 0 {
		return r.fallback
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRandom) IntN(lo, hi int) int {
	r.intArgs = append(r.intArgs, [2]int{lo, hi})
	if len(r.ints) == 0 {
		return lo
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v
}

// noRolls makes every probability roll fail.
func noRolls() *scriptedRandom {
	return &scriptedRandom{fallback: 0.99}
}

type stubSpawns struct {
	calls   int
	players []string
	win     bool
}

func (s *stubSpawns) EnableOnce(_ ports.World, playerID string, _ world.Vec3) bool {
	s.calls++
	s.players = append(s.players, playerID)
	return s.win
}

type stubMetrics struct {
	handled  map[combat.Trigger]int
	effects  int
	rejected int
	failures int
}

func (m *stubMetrics) RecordHandled(trigger combat.Trigger, effects int) {
	if m.handled == nil {
		m.handled = map[combat.Trigger]int{}
	}
	m.handled[trigger]++
	m.effects += effects
}
func (m *stubMetrics) RecordRejected(combat.Trigger) { m.rejected++ }
func (m *stubMetrics) RecordFailure(combat.Trigger)  { m.failures++ }

type stubJournal struct {
	records []ports.OutcomeRecord
	err     error
}

func (j *stubJournal) Record(_ context.Context, rec ports.OutcomeRecord) (ports.OutcomeRecord, error) {
	if j.err != nil {
		return ports.OutcomeRecord{}, j.err
	}
	rec.ID = "outcome-1"
	j.records = append(j.records, rec)
	return rec, nil
}

// recordingWorld answers queries from fields and records every mutation.
type recordingWorld struct {
	mu            sync.Mutex
	now           time.Time
	clientSide    bool
	attribute     float64
	attributeErr  error
	ground        float64
	groundErr     error
	damageErr     error
	damage        []float64
	knockbacks    int
	explosions    int
	spawned       []world.SpawnRequest
	blocks        []world.BlockPos
	statuses      []world.StatusKind
	messages      []string
	worldTicks    []int64
	heals         []float64
	healthSet     []float64
	velocities    int
	hunger        [][2]float64
	sounds        []world.SoundKind
	particleCalls int
}

func newRecordingWorld(now time.Time) *recordingWorld {
	return &recordingWorld{now: now, attributeErr: ports.ErrNotFound, ground: 64}
}

func (w *recordingWorld) EntityAttribute(context.Context, string, world.AttributeKind) (float64, error) {
	return w.attribute, w.attributeErr
}

func (w *recordingWorld) NearestLivingEntityOnSegment(context.Context, ports.SegmentQuery) (*ports.EntityHit, error) {
	return nil, nil
}

func (w *recordingWorld) BlockRaycast(context.Context, world.Vec3, world.Vec3) (ports.BlockHit, error) {
	return ports.BlockHit{}, nil
}

func (w *recordingWorld) GroundHeight(context.Context, float64, float64) (float64, error) {
	return w.ground, w.groundErr
}

func (w *recordingWorld) EntityPosition(context.Context, string) (world.Vec3, error) {
	return world.Vec3{}, ports.ErrNotFound
}

func (w *recordingWorld) ApplyDamage(_ context.Context, _ string, amount float64, _ world.DamageSource, _ string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.damageErr != nil {
		return w.damageErr
	}
	w.damage = append(w.damage, amount)
	return nil
}

func (w *recordingWorld) ApplyKnockback(context.Context, string, float64, float64, float64) error {
	w.knockbacks++
	return nil
}

func (w *recordingWorld) CreateExplosion(context.Context, world.Vec3, float64, world.Attribution) error {
	w.explosions++
	return nil
}

func (w *recordingWorld) SpawnEntity(_ context.Context, req world.SpawnRequest) (string, error) {
	w.spawned = append(w.spawned, req)
	return string(req.Creature), nil
}

func (w *recordingWorld) SetBlockIfEmpty(_ context.Context, pos world.BlockPos, _ world.BlockKind) (bool, error) {
	w.blocks = append(w.blocks, pos)
	return true, nil
}

func (w *recordingWorld) AddStatusEffect(_ context.Context, _ string, status world.StatusKind, _, _ int) error {
	w.statuses = append(w.statuses, status)
	return nil
}

func (w *recordingWorld) Heal(_ context.Context, _ string, amount float64) error {
	w.heals = append(w.heals, amount)
	return nil
}

func (w *recordingWorld) SetHealth(_ context.Context, _ string, health float64) error {
	w.healthSet = append(w.healthSet, health)
	return nil
}

func (w *recordingWorld) AddVelocity(context.Context, string, float64, float64, float64) error {
	w.velocities++
	return nil
}

func (w *recordingWorld) AddHunger(_ context.Context, _ string, food int, saturation float64) error {
	w.hunger = append(w.hunger, [2]float64{float64(food), saturation})
	return nil
}

func (w *recordingWorld) SetWorldTime(_ context.Context, ticks int64) error {
	w.worldTicks = append(w.worldTicks, ticks)
	return nil
}

func (w *recordingWorld) SendMessage(_ context.Context, _ string, text string) error {
	w.messages = append(w.messages, text)
	return nil
}

func (w *recordingWorld) PlaySound(_ context.Context, sound world.SoundKind, _ world.Vec3, _, _ float64) error {
	w.sounds = append(w.sounds, sound)
	return nil
}

func (w *recordingWorld) EmitParticles(context.Context, world.ParticleKind, world.Vec3, int, float64) error {
	w.particleCalls++
	return nil
}

func (w *recordingWorld) Now() time.Time { return w.now }

func (w *recordingWorld) IsServerAuthoritative() bool { return !w.clientSide }

// thursday is an ordinary date: not special, weekday rule blaze.
var thursday = time.Date(2026, time.January, 1, 9, 15, 30, 0, time.UTC)

func baseAttack() combat.AttackContext {
	return combat.AttackContext{
		AttackerID:       "player-1",
		TargetID:         "mob-1",
		WorldTick:        31,
		AttackerYaw:      0,
		AttackerPosition: world.Vec3{0, 64, 0},
		AttackerArmor:    5,
		TargetPosition:   world.Vec3{1.5, 64, 2.7},
		TargetLiving:     true,
		TargetHealth:     20,
	}
}

func newTestUseCase(rnd *scriptedRandom, spawns *stubSpawns) UseCase {
	return UseCase{
		Random: rnd,
		Tuning: combat.StaticTuning(combat.DefaultTuning()),
		Spawns: spawns,
		Logger: log.New(io.Discard, "", 0),
	}
}
