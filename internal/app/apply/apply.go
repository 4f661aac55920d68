package apply

import (
	"context"
	"errors"
	"fmt"

	"thunderpunch/internal/app/ports"
	"thunderpunch/internal/domain/effect"
	"thunderpunch/internal/domain/world"
)

const (
	trailExplosionCount  = 2
	trailExplosionSpread = 0.1
	trailFlameCount      = 1
	trailFlameSpread     = 0.05
)

var ErrUnknownEffect = errors.New("unknown effect")

// Apply hands every effect to the world in bundle order. A failing effect
// does not stop the rest; all failures are returned joined.
func Apply(ctx context.Context, w ports.WorldMutations, b effect.Bundle) error {
	var errs []error
	for i, e := range b {
		if err := applyOne(ctx, w, e); err != nil {
			errs = append(errs, fmt.Errorf("effect %d (%s): %w", i, kindOf(e), err))
		}
	}
	return errors.Join(errs...)
}

func kindOf(e effect.Effect) effect.Kind {
	if e == nil {
		return "nil"
	}
	return e.Kind()
}

func applyOne(ctx context.Context, w ports.WorldMutations, e effect.Effect) error {
	switch v := e.(type) {
	case effect.Damage:
		return w.ApplyDamage(ctx, v.Target, v.Amount, v.Source, v.SourceID)
	case effect.Knockback:
		return w.ApplyKnockback(ctx, v.Target, v.Strength, v.DirX, v.DirZ)
	case effect.Explosion:
		return w.CreateExplosion(ctx, v.Position, v.Power, v.Attribution)
	case effect.Spawn:
		_, err := w.SpawnEntity(ctx, v.SpawnRequest)
		return err
	case effect.Status:
		return w.AddStatusEffect(ctx, v.Target, v.Status, v.DurationTicks, v.Amplifier)
	case effect.WorldTime:
		return w.SetWorldTime(ctx, v.Ticks)
	case effect.Message:
		return w.SendMessage(ctx, v.Target, v.Text)
	case effect.Lightning:
		_, err := w.SpawnEntity(ctx, world.SpawnRequest{Creature: world.EntityLightningBolt, Position: v.Position})
		return err
	case effect.Sound:
		return w.PlaySound(ctx, v.Sound, v.Position, v.Volume, v.Pitch)
	case effect.Heal:
		return w.Heal(ctx, v.Target, v.Amount)
	case effect.SetHealth:
		return w.SetHealth(ctx, v.Target, v.Health)
	case effect.Velocity:
		return w.AddVelocity(ctx, v.Target, v.DX, v.DY, v.DZ)
	case effect.Hunger:
		return w.AddHunger(ctx, v.Target, v.Food, v.Saturation)
	case effect.PlaceBlock:
		_, err := w.SetBlockIfEmpty(ctx, v.Position, v.Block)
		return err
	case effect.ParticleTrail:
		return applyTrail(ctx, w, v)
	default:
		return ErrUnknownEffect
	}
}

func applyTrail(ctx context.Context, w ports.WorldMutations, t effect.ParticleTrail) error {
	for s := range t.Samples() {
		if err := w.EmitParticles(ctx, world.ParticleExplosion, s.Position, trailExplosionCount, trailExplosionSpread); err != nil {
			return err
		}
		if s.Flame {
			if err := w.EmitParticles(ctx, world.ParticleFlame, s.Position, trailFlameCount, trailFlameSpread); err != nil {
				return err
			}
		}
	}
	return nil
}
