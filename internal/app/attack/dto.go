package attack

import (
	"time"

	"thunderpunch/internal/app/ports"
	"thunderpunch/internal/app/spawn"
	"thunderpunch/internal/domain/combat"
	"thunderpunch/internal/domain/effect"
)

type Response struct {
	OutcomeID string        `json:"outcome_id,omitempty"`
	Handled   bool          `json:"handled"`
	Effects   effect.Bundle `json:"effects"`
	Failure   string        `json:"failure,omitempty"`
}

// Resolution is the working state threaded through the pipeline steps.
type Resolution struct {
	In         combat.AttackContext
	Tuning     combat.Tuning
	Now        time.Time
	Bundle     effect.Bundle
	BaseDamage float64
	// DamageDealt sums every Damage effect aimed at the target so far.
	DamageDealt float64
	// ExplosionDamage is what the rolled explosion deals at the target.
	ExplosionDamage float64

	rnd     ports.Random
	planner spawn.Planner
}

func (r *Resolution) add(e ...effect.Effect) {
	r.Bundle.Add(e...)
}
