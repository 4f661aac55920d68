package sandbox

import (
	"fmt"

	"thunderpunch/internal/domain/combat"
	"thunderpunch/internal/domain/world"
)

// AttackContext snapshots attacker and target for one melee trigger and
// advances the tick counter.
func (w *World) AttackContext(attackerID, targetID string) (combat.AttackContext, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	a, ok := w.entities[attackerID]
	if !ok {
		return combat.AttackContext{}, fmt.Errorf("%w: %s", ErrUnknownEntity, attackerID)
	}
	t, ok := w.entities[targetID]
	if !ok {
		return combat.AttackContext{}, fmt.Errorf("%w: %s", ErrUnknownEntity, targetID)
	}
	w.tick++
	return combat.AttackContext{
		AttackerID:       a.ID,
		TargetID:         t.ID,
		WorldTick:        w.tick,
		AttackerYaw:      a.Yaw,
		AttackerPosition: a.Position,
		AttackerArmor:    a.Armor,
		TargetPosition:   t.Position,
		TargetLiving:     t.Living && !t.Spectator,
		TargetOnFire:     t.OnFire,
		TargetHealth:     t.Health,
	}, nil
}

func (w *World) PlayerContext(playerID string) (combat.PlayerContext, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	p, ok := w.entities[playerID]
	if !ok {
		return combat.PlayerContext{}, fmt.Errorf("%w: %s", ErrUnknownEntity, playerID)
	}
	return combat.PlayerContext{
		PlayerID:    p.ID,
		Position:    p.Position,
		EyePosition: p.eyePosition(),
		Look:        world.LookVector(p.Yaw, p.Pitch),
		HandEmpty:   p.HandEmpty,
		Sneaking:    p.Sneaking,
	}, nil
}
