package sandbox

import (
	"context"
	"errors"
	"fmt"
	"math"

	"thunderpunch/internal/domain/world"
)

// ApplyDamage and ApplyKnockback ignore entities that are already dead.
func (w *World) ApplyDamage(_ context.Context, entityID string, amount float64, source world.DamageSource, sourceID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	e, err := w.living(entityID)
	if errors.Is(err, ErrNotLiving) {
		return nil
	}
	if err != nil {
		return err
	}
	w.hurt(e, amount, fmt.Sprintf("%s by %s", source, sourceID))
	return nil
}

// hurt must be called with mu held.
func (w *World) hurt(e *Entity, amount float64, detail string) {
	e.Health = math.Max(0, e.Health-amount)
	w.record("damage", e.Position, fmt.Sprintf("%s took %.2f (%s)", e.ID, amount, detail))
	if e.Health == 0 {
		e.Living = false
		w.record("death", e.Position, e.ID)
	}
}

func (w *World) ApplyKnockback(_ context.Context, entityID string, strength, dx, dz float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	e, err := w.living(entityID)
	if errors.Is(err, ErrNotLiving) {
		return nil
	}
	if err != nil {
		return err
	}
	e.Velocity = e.Velocity.Add(world.Vec3{dx * strength, 0, dz * strength})
	return nil
}

// CreateExplosion hurts living entities within reach with linear falloff.
// A TNT explosion also clears solid blocks within the power radius.
func (w *World) CreateExplosion(_ context.Context, pos world.Vec3, power float64, by world.Attribution) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.record("explosion", pos, fmt.Sprintf("power %.2f %s by %q", power, by.Kind, by.SourceID))

	for _, e := range w.entities {
		if !e.Living || e.ID == by.SourceID {
			continue
		}
		dmg := world.ExplosionDamage(power, math.Sqrt(world.DistanceSq(pos, e.Position)))
		if dmg <= 0 {
			continue
		}
		w.hurt(e, dmg, "explosion")
	}

	if by.Kind != world.ExplosionTNT {
		return nil
	}
	r := int(math.Ceil(power))
	center := world.BlockPosOf(pos)
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			for dz := -r; dz <= r; dz++ {
				cell := center.Offset(dx, dy, dz)
				if world.DistanceSq(cell.Vec3(), center.Vec3()) > power*power {
					continue
				}
				if cell[1] < w.cfg.GroundLevel {
					w.blocks[cell] = world.BlockAir
				} else {
					delete(w.blocks, cell)
				}
			}
		}
	}
	return nil
}

func (w *World) SpawnEntity(_ context.Context, req world.SpawnRequest) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	id := w.cfg.NewID()
	w.record("spawn", req.Position, fmt.Sprintf("%s %s", req.Creature, id))
	if req.Creature == world.EntityLightningBolt {
		return id, nil
	}
	e := &Entity{
		ID:        id,
		Kind:      req.Creature,
		Position:  req.Position,
		Yaw:       req.Yaw,
		Health:    DefaultMaxHealth,
		MaxHealth: DefaultMaxHealth,
		Living:    true,
	}
	w.entities[id] = e
	w.cfg.Logger.Printf("sandbox: spawned %s %s at %v", req.Creature, id, req.Position)
	return id, nil
}

func (w *World) SetBlockIfEmpty(_ context.Context, pos world.BlockPos, block world.BlockKind) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.blockAt(pos) != world.BlockAir {
		return false, nil
	}
	w.blocks[pos] = block
	w.record("block", pos.Vec3(), string(block))
	return true, nil
}

func (w *World) AddStatusEffect(_ context.Context, entityID string, status world.StatusKind, durationTicks, amplifier int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	e, err := w.living(entityID)
	if err != nil {
		return err
	}
	if e.Statuses == nil {
		e.Statuses = make(map[world.StatusKind]StatusInstance)
	}
	if cur, ok := e.Statuses[status]; ok && cur.Amplifier > amplifier {
		return nil
	}
	e.Statuses[status] = StatusInstance{DurationTicks: durationTicks, Amplifier: amplifier}
	return nil
}

func (w *World) Heal(_ context.Context, entityID string, amount float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	e, err := w.living(entityID)
	if err != nil {
		return err
	}
	e.Health = math.Min(e.MaxHealth, e.Health+amount)
	return nil
}

func (w *World) SetHealth(_ context.Context, entityID string, health float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	e, err := w.living(entityID)
	if err != nil {
		return err
	}
	e.Health = math.Max(0, math.Min(e.MaxHealth, health))
	return nil
}

func (w *World) AddVelocity(_ context.Context, entityID string, dx, dy, dz float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	e, err := w.living(entityID)
	if err != nil {
		return err
	}
	e.Velocity = e.Velocity.Add(world.Vec3{dx, dy, dz})
	return nil
}

func (w *World) AddHunger(_ context.Context, entityID string, food int, saturation float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	e, err := w.living(entityID)
	if err != nil {
		return err
	}
	e.Food = min(maxFood, e.Food+food)
	e.Saturation = math.Min(float64(e.Food), e.Saturation+saturation)
	return nil
}

func (w *World) SetWorldTime(_ context.Context, ticks int64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.worldTime = ticks
	return nil
}

func (w *World) SendMessage(_ context.Context, entityID, text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	e, ok := w.entities[entityID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEntity, entityID)
	}
	e.Inbox = append(e.Inbox, text)
	return nil
}

func (w *World) PlaySound(_ context.Context, sound world.SoundKind, pos world.Vec3, volume, pitch float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.record("sound", pos, fmt.Sprintf("%s volume %.1f pitch %.1f", sound, volume, pitch))
	return nil
}

func (w *World) EmitParticles(_ context.Context, particle world.ParticleKind, pos world.Vec3, count int, spread float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.particles[particle] += count
	return nil
}

// living must be called with mu held.
func (w *World) living(entityID string) (*Entity, error) {
	e, ok := w.entities[entityID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntity, entityID)
	}
	if !e.Living {
		return nil, fmt.Errorf("%w: %s", ErrNotLiving, entityID)
	}
	return e, nil
}
