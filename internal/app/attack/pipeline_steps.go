package attack

import (
	"context"
	"errors"
	"math"

	"thunderpunch/internal/app/ports"
	"thunderpunch/internal/domain/combat"
	"thunderpunch/internal/domain/effect"
	"thunderpunch/internal/domain/world"
	"thunderpunch/internal/random"
)

type step struct {
	name string
	run  func(ctx context.Context, r *Resolution, w ports.World) error
}

func (u UseCase) steps() []step {
	return []step{
		{name: "defensive_buff", run: u.DefensiveBuff},
		{name: "damage", run: u.Damage},
		{name: "knockback", run: u.Knockback},
		{name: "fire_bonus", run: u.FireBonus},
		{name: "lightning", run: u.Lightning},
		{name: "explosion", run: u.ExplosionRoll},
		{name: "time_of_day", run: u.TimeOfDay},
		{name: "day_of_week", run: u.DayOfWeek},
		{name: "special_date", run: u.SpecialDate},
		{name: "hunger", run: u.HungerTick},
		{name: "bonus_spawns", run: u.BonusSpawns},
		{name: "random_buffs", run: u.RandomBuffs},
		{name: "kill_trigger", run: u.KillTrigger},
	}
}

func (u UseCase) DefensiveBuff(_ context.Context, r *Resolution, _ ports.World) error {
	if r.In.AttackerArmor == 0 {
		r.add(effect.Status{
			Target:        r.In.AttackerID,
			Status:        world.StatusResistance,
			DurationTicks: combat.DefensiveStatusTicks,
			Amplifier:     combat.DefensiveStatusAmplifier,
		})
	}
	return nil
}

func (u UseCase) Damage(ctx context.Context, r *Resolution, w ports.World) error {
	attr, err := w.EntityAttribute(ctx, r.In.AttackerID, world.AttributeAttackKnockback)
	switch {
	case errors.Is(err, ports.ErrNotFound):
		attr = combat.DefaultAttackAttribute
	case err != nil:
		return ports.WorldFailure("attacker attribute", err)
	}
	r.BaseDamage = attr * r.Tuning.DamageMultiplier
	r.dealDamage(r.BaseDamage)
	return nil
}

func (u UseCase) Knockback(_ context.Context, r *Resolution, _ ports.World) error {
	dx, dz := world.HorizontalLook(r.In.AttackerYaw)
	r.add(effect.Knockback{Target: r.In.TargetID, Strength: combat.KnockbackStrength, DirX: dx, DirZ: dz})
	return nil
}

func (u UseCase) FireBonus(_ context.Context, r *Resolution, _ ports.World) error {
	if !r.In.TargetOnFire {
		return nil
	}
	r.dealDamage(r.BaseDamage * r.Tuning.FireBonusMultiplier)
	return nil
}

func (u UseCase) Lightning(_ context.Context, r *Resolution, _ ports.World) error {
	r.add(effect.Lightning{Position: r.In.TargetPosition})
	return nil
}

func (u UseCase) ExplosionRoll(_ context.Context, r *Resolution, _ ports.World) error {
	if r.rnd.Float64() < r.Tuning.ExplosionChance {
		pos := world.BlockPosOf(r.In.TargetPosition).Vec3()
		r.add(effect.Explosion{
			Position:    pos,
			Power:       combat.ExplosionPower,
			Attribution: world.Attribution{Kind: world.ExplosionNone},
		})
		d := math.Sqrt(world.DistanceSq(pos, r.In.TargetPosition))
		r.ExplosionDamage = world.ExplosionDamage(combat.ExplosionPower, d)
	}
	return nil
}

func (u UseCase) TimeOfDay(_ context.Context, r *Resolution, _ ports.World) error {
	r.add(
		effect.Message{Target: r.In.AttackerID, Text: combat.Greeting(r.Now)},
		effect.WorldTime{Ticks: combat.DayPeriodAt(r.Now).WorldTicks()},
	)
	return nil
}

func (u UseCase) DayOfWeek(_ context.Context, r *Resolution, _ ports.World) error {
	rule, ok := combat.WeekdayRuleFor(combat.ISOWeekday(r.Now))
	if !ok {
		return nil
	}
	r.add(effect.Spawn{SpawnRequest: world.SpawnRequest{Creature: rule.Creature, Position: r.In.TargetPosition}})
	switch rule.Bonus {
	case combat.BonusRegeneration:
		r.add(effect.Status{
			Target:        r.In.AttackerID,
			Status:        world.StatusRegeneration,
			DurationTicks: combat.FridayRegenerationTicks,
		})
	case combat.BonusFullHeal:
		r.add(effect.SetHealth{Target: r.In.AttackerID, Health: combat.WeekendHealth})
	}
	return nil
}

func (u UseCase) SpecialDate(ctx context.Context, r *Resolution, w ports.World) error {
	if combat.IsSpecialDate(r.Now) {
		u.armCreeper(r, w)
		return nil
	}
	req, err := r.planner.Near(ctx, w, r.In.AttackerPosition, combat.VillagerMinDistance, combat.VillagerMaxDistance, world.EntityVillager, 0)
	if err != nil {
		return err
	}
	r.add(effect.Spawn{SpawnRequest: req})
	return nil
}

func (u UseCase) HungerTick(_ context.Context, r *Resolution, _ ports.World) error {
	if !combat.IsHungerTick(r.In.WorldTick) {
		return nil
	}
	food, saturation := combat.HungerRestore(r.Now)
	r.add(effect.Hunger{Target: r.In.AttackerID, Food: food, Saturation: saturation})
	return nil
}

func (u UseCase) BonusSpawns(ctx context.Context, r *Resolution, w ports.World) error {
	count := r.rnd.IntN(r.Tuning.ZombieMinCount, r.Tuning.ZombieMaxCount+1)
	for range count {
		yaw := r.planner.RandomYaw()
		req, err := r.planner.Near(ctx, w, r.In.AttackerPosition, combat.ZombieMinDistance, combat.ZombieMaxDistance, world.EntityZombie, yaw)
		if err != nil {
			return err
		}
		r.add(effect.Spawn{SpawnRequest: req})
	}

	if r.rnd.Float64() < r.Tuning.LavaChance {
		dx := random.Uniform(r.rnd, -combat.LavaSpread, combat.LavaSpread)
		dz := random.Uniform(r.rnd, -combat.LavaSpread, combat.LavaSpread)
		pos := r.In.AttackerPosition.Add(world.Vec3{dx, 0, dz})
		r.add(effect.PlaceBlock{Position: world.BlockPosOf(pos), Block: world.BlockLava})
	}
	return nil
}

func (u UseCase) RandomBuffs(_ context.Context, r *Resolution, _ ports.World) error {
	id := r.In.AttackerID
	if r.rnd.Float64() < r.Tuning.HealChance {
		r.add(effect.Heal{Target: id, Amount: random.Uniform(r.rnd, r.Tuning.HealMin, r.Tuning.HealMax)})
	}
	if r.rnd.Float64() < r.Tuning.LaunchChance {
		r.add(effect.Velocity{Target: id, DY: combat.LaunchVelocityY})
	}
	if r.rnd.Float64() < r.Tuning.NightVisionChance {
		r.add(effect.Status{Target: id, Status: world.StatusNightVision, DurationTicks: combat.BuffStatusTicks})
	}
	if r.rnd.Float64() < r.Tuning.RegenerationChance {
		r.add(effect.Status{Target: id, Status: world.StatusRegeneration, DurationTicks: combat.BuffStatusTicks})
	}
	if r.rnd.Float64() < r.Tuning.HungerChance {
		r.add(effect.Status{Target: id, Status: world.StatusHunger, DurationTicks: combat.BuffStatusTicks})
	}
	return nil
}

// KillTrigger arms the deferred creeper when the damage of this attack,
// including the explosion's share at the target, is enough to bring the
// target to zero health.
func (u UseCase) KillTrigger(_ context.Context, r *Resolution, w ports.World) error {
	if r.In.TargetHealth-r.DamageDealt-r.ExplosionDamage <= 0 {
		u.armCreeper(r, w)
	}
	return nil
}

func (u UseCase) armCreeper(r *Resolution, w ports.World) {
	if u.Spawns == nil {
		return
	}
	if u.Spawns.EnableOnce(w, r.In.AttackerID, r.In.AttackerPosition) {
		u.logger().Printf("creeper armed by %s", r.In.AttackerID)
	}
}

func (r *Resolution) dealDamage(amount float64) {
	r.add(effect.Damage{
		Target:   r.In.TargetID,
		Amount:   amount,
		Source:   world.DamagePlayerAttack,
		SourceID: r.In.AttackerID,
	})
	r.DamageDealt += amount
}
