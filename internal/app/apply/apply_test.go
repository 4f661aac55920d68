package apply

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"thunderpunch/internal/app/ports"
	"thunderpunch/internal/domain/effect"
	"thunderpunch/internal/domain/world"
)

// callLog implements ports.WorldMutations and records one line per call.
type callLog struct {
	calls []string
	fail  map[string]error
}

func (c *callLog) record(name string, args ...any) error {
	c.calls = append(c.calls, fmt.Sprint(append([]any{name}, args...)...))
	return c.fail[name]
}

func (c *callLog) ApplyDamage(_ context.Context, id string, amount float64, source world.DamageSource, sourceID string) error {
	return c.record("damage", id, amount, source, sourceID)
}
func (c *callLog) ApplyKnockback(_ context.Context, id string, strength, dx, dz float64) error {
	return c.record("knockback", id, strength, dx, dz)
}
func (c *callLog) CreateExplosion(_ context.Context, pos world.Vec3, power float64, by world.Attribution) error {
	return c.record("explosion", pos, power, by.Kind)
}
func (c *callLog) SpawnEntity(_ context.Context, req world.SpawnRequest) (string, error) {
	return "e-1", c.record("spawn", req.Creature)
}
func (c *callLog) SetBlockIfEmpty(_ context.Context, pos world.BlockPos, block world.BlockKind) (bool, error) {
	return true, c.record("block", pos, block)
}
func (c *callLog) AddStatusEffect(_ context.Context, id string, status world.StatusKind, ticks, amp int) error {
	return c.record("status", id, status, ticks, amp)
}
func (c *callLog) Heal(_ context.Context, id string, amount float64) error {
	return c.record("heal", id, amount)
}
func (c *callLog) SetHealth(_ context.Context, id string, health float64) error {
	return c.record("set_health", id, health)
}
func (c *callLog) AddVelocity(_ context.Context, id string, dx, dy, dz float64) error {
	return c.record("velocity", id, dx, dy, dz)
}
func (c *callLog) AddHunger(_ context.Context, id string, food int, saturation float64) error {
	return c.record("hunger", id, food, saturation)
}
func (c *callLog) SetWorldTime(_ context.Context, ticks int64) error {
	return c.record("time", ticks)
}
func (c *callLog) SendMessage(_ context.Context, id, text string) error {
	return c.record("message", id, text)
}
func (c *callLog) PlaySound(_ context.Context, sound world.SoundKind, _ world.Vec3, volume, pitch float64) error {
	return c.record("sound", sound, volume, pitch)
}
func (c *callLog) EmitParticles(_ context.Context, particle world.ParticleKind, _ world.Vec3, count int, spread float64) error {
	return c.record("particles", particle, count, spread)
}

var _ ports.WorldMutations = (*callLog)(nil)

func TestApply_DispatchesEveryVariant(t *testing.T) {
	b := effect.Bundle{
		effect.Damage{Target: "m", Amount: 3, Source: world.DamagePlayerAttack, SourceID: "p"},
		effect.Knockback{Target: "m", Strength: 2.5, DirX: 0, DirZ: 1},
		effect.Explosion{Position: world.Vec3{1, 2, 3}, Power: 2, Attribution: world.Attribution{Kind: world.ExplosionNone}},
		effect.Spawn{SpawnRequest: world.SpawnRequest{Creature: world.EntityZombie}},
		effect.Status{Target: "p", Status: world.StatusResistance, DurationTicks: 600, Amplifier: 1},
		effect.WorldTime{Ticks: 6000},
		effect.Message{Target: "p", Text: "hi"},
		effect.Lightning{Position: world.Vec3{0, 64, 0}},
		effect.Sound{Sound: world.SoundThunder, Volume: 2, Pitch: 1},
		effect.Heal{Target: "p", Amount: 1.5},
		effect.SetHealth{Target: "p", Health: 20},
		effect.Velocity{Target: "p", DY: 0.2},
		effect.Hunger{Target: "p", Food: 1, Saturation: 1},
		effect.PlaceBlock{Position: world.BlockPos{1, 64, 1}, Block: world.BlockLava},
		effect.ParticleTrail{Start: world.Vec3{0, 0, 0}, End: world.Vec3{0, 0, 0.5}},
	}
	w := &callLog{}
	if err := Apply(context.Background(), w, b); err != nil {
		t.Fatalf("apply: %v", err)
	}
	want := []string{
		fmt.Sprint("damage", "m", 3.0, world.DamagePlayerAttack, "p"),
		fmt.Sprint("knockback", "m", 2.5, 0.0, 1.0),
		fmt.Sprint("explosion", world.Vec3{1, 2, 3}, 2.0, world.ExplosionNone),
		fmt.Sprint("spawn", world.EntityZombie),
		fmt.Sprint("status", "p", world.StatusResistance, 600, 1),
		fmt.Sprint("time", int64(6000)),
		fmt.Sprint("message", "p", "hi"),
		fmt.Sprint("spawn", world.EntityLightningBolt),
		fmt.Sprint("sound", world.SoundThunder, 2.0, 1.0),
		fmt.Sprint("heal", "p", 1.5),
		fmt.Sprint("set_health", "p", 20.0),
		fmt.Sprint("velocity", "p", 0.0, 0.2, 0.0),
		fmt.Sprint("hunger", "p", 1, 1.0),
		fmt.Sprint("block", world.BlockPos{1, 64, 1}, world.BlockLava),
		fmt.Sprint("particles", world.ParticleExplosion, 2, 0.1),
		fmt.Sprint("particles", world.ParticleFlame, 1, 0.05),
	}
	if !reflect.DeepEqual(w.calls, want) {
		t.Fatalf("expected calls\n%v\ngot\n%v", want, w.calls)
	}
}

func TestApply_TrailTagsEveryThirdSample(t *testing.T) {
	w := &callLog{}
	trail := effect.ParticleTrail{Start: world.Vec3{0, 0, 0}, End: world.Vec3{0, 0, 6}}
	if err := Apply(context.Background(), w, effect.Bundle{trail}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	var explosions, flames int
	for _, c := range w.calls {
		switch c {
		case fmt.Sprint("particles", world.ParticleExplosion, 2, 0.1):
			explosions++
		case fmt.Sprint("particles", world.ParticleFlame, 1, 0.05):
			flames++
		}
	}
	// samples at 0..5 with step 1; flames on 0 and 3.
	if explosions != 6 || flames != 2 {
		t.Fatalf("expected 6 explosion and 2 flame emissions, got %d and %d", explosions, flames)
	}
}

func TestApply_ContinuesPastFailures(t *testing.T) {
	heal := errors.New("heal refused")
	msg := errors.New("player offline")
	w := &callLog{fail: map[string]error{"heal": heal, "message": msg}}
	b := effect.Bundle{
		effect.Heal{Target: "p", Amount: 1},
		effect.WorldTime{Ticks: 1000},
		effect.Message{Target: "p", Text: "x"},
	}
	err := Apply(context.Background(), w, b)
	if !errors.Is(err, heal) || !errors.Is(err, msg) {
		t.Fatalf("expected both failures joined, got %v", err)
	}
	if len(w.calls) != 3 {
		t.Fatalf("expected all three effects attempted, got %v", w.calls)
	}
}

func TestApply_NilEffectIsUnknown(t *testing.T) {
	err := Apply(context.Background(), &callLog{}, effect.Bundle{nil})
	if !errors.Is(err, ErrUnknownEffect) {
		t.Fatalf("expected ErrUnknownEffect, got %v", err)
	}
}
