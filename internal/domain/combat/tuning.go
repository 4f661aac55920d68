package combat

import (
	"errors"
	"fmt"
	"math"
)

const (
	DefensiveStatusTicks     = 600
	DefensiveStatusAmplifier = 1

	KnockbackStrength = 2.5

	ExplosionPower = 2.0

	FridayRegenerationTicks = 600
	WeekendHealth           = 20.0

	HungerTickInterval = 30

	ZombieMinDistance   = 2.0
	ZombieMaxDistance   = 6.0
	VillagerMinDistance = 3.0
	VillagerMaxDistance = 8.0
	CreeperMinDistance  = 8.0
	CreeperMaxDistance  = 20.0
	LavaSpread          = 3.0

	LaunchVelocityY = 0.2

	BuffStatusTicks = 200

	DefaultAttackAttribute = 1.0

	RaycastRange        = 500.0
	RaycastEntityDamage = 100.0
	RaycastPowerMin     = 5.0
	RaycastPowerMax     = 20.0
	RaycastKnockbackMin = 5.0
	RaycastKnockbackMax = 15.0

	SpecialDateModulus = 2011
	MaxYawDegrees      = 360.0
)

// Tuning holds the numbers operators may override. The rules that use them
// are fixed.
type Tuning struct {
	DamageMultiplier    float64 `yaml:"damage_multiplier" json:"damage_multiplier"`
	FireBonusMultiplier float64 `yaml:"fire_bonus_multiplier" json:"fire_bonus_multiplier"`
	ExplosionChance     float64 `yaml:"explosion_chance" json:"explosion_chance"`
	LavaChance          float64 `yaml:"lava_chance" json:"lava_chance"`
	HealChance          float64 `yaml:"heal_chance" json:"heal_chance"`
	HealMin             float64 `yaml:"heal_min" json:"heal_min"`
	HealMax             float64 `yaml:"heal_max" json:"heal_max"`
	LaunchChance        float64 `yaml:"launch_chance" json:"launch_chance"`
	NightVisionChance   float64 `yaml:"night_vision_chance" json:"night_vision_chance"`
	RegenerationChance  float64 `yaml:"regeneration_chance" json:"regeneration_chance"`
	HungerChance        float64 `yaml:"hunger_chance" json:"hunger_chance"`
	ZombieMinCount      int     `yaml:"zombie_min_count" json:"zombie_min_count"`
	ZombieMaxCount      int     `yaml:"zombie_max_count" json:"zombie_max_count"`
	CreeperDelayMin     int     `yaml:"creeper_delay_min_seconds" json:"creeper_delay_min_seconds"`
	CreeperDelayMax     int     `yaml:"creeper_delay_max_seconds" json:"creeper_delay_max_seconds"`
}

func DefaultTuning() Tuning {
	return Tuning{
		DamageMultiplier:    3.0,
		FireBonusMultiplier: 2.0,
		ExplosionChance:     0.13,
		LavaChance:          0.3,
		HealChance:          0.25,
		HealMin:             0.5,
		HealMax:             2.5,
		LaunchChance:        0.05,
		NightVisionChance:   0.05,
		RegenerationChance:  0.05,
		HungerChance:        0.01,
		ZombieMinCount:      1,
		ZombieMaxCount:      2,
		CreeperDelayMin:     40,
		CreeperDelayMax:     190,
	}
}

var ErrInvalidTuning = errors.New("invalid tuning")

func (t Tuning) Validate() error {
	chances := map[string]float64{
		"explosion_chance":    t.ExplosionChance,
		"lava_chance":         t.LavaChance,
		"heal_chance":         t.HealChance,
		"launch_chance":       t.LaunchChance,
		"night_vision_chance": t.NightVisionChance,
		"regeneration_chance": t.RegenerationChance,
		"hunger_chance":       t.HungerChance,
	}
	for name, p := range chances {
		if !(p >= 0 && p <= 1) {
			return fmt.Errorf("%w: %s=%v outside [0,1]", ErrInvalidTuning, name, p)
		}
	}
	if !finiteNonNegative(t.DamageMultiplier) || !finiteNonNegative(t.FireBonusMultiplier) {
		return fmt.Errorf("%w: damage multiplier must be finite and non-negative", ErrInvalidTuning)
	}
	if !finiteNonNegative(t.HealMin) || !finiteNonNegative(t.HealMax) {
		return fmt.Errorf("%w: heal range must be finite and non-negative", ErrInvalidTuning)
	}
	if t.HealMin > t.HealMax {
		return fmt.Errorf("%w: heal_min above heal_max", ErrInvalidTuning)
	}
	if t.ZombieMinCount < 0 || t.ZombieMinCount > t.ZombieMaxCount {
		return fmt.Errorf("%w: zombie count range %d..%d", ErrInvalidTuning, t.ZombieMinCount, t.ZombieMaxCount)
	}
	if t.CreeperDelayMin <= 0 || t.CreeperDelayMin > t.CreeperDelayMax {
		return fmt.Errorf("%w: creeper delay range %d..%d", ErrInvalidTuning, t.CreeperDelayMin, t.CreeperDelayMax)
	}
	return nil
}

func finiteNonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}

// StaticTuning serves a fixed Tuning.
type StaticTuning Tuning

func (s StaticTuning) Tuning() Tuning { return Tuning(s) }
