package combat

import "thunderpunch/internal/domain/world"

// AttackContext is the immutable input of one melee resolution.
type AttackContext struct {
	AttackerID       string     `json:"attacker_id"`
	TargetID         string     `json:"target_id"`
	WorldTick        int64      `json:"world_tick"`
	AttackerYaw      float64    `json:"attacker_yaw"`
	AttackerPosition world.Vec3 `json:"attacker_position"`
	AttackerArmor    int        `json:"attacker_armor"`
	TargetPosition   world.Vec3 `json:"target_position"`
	TargetLiving     bool       `json:"target_living"`
	TargetOnFire     bool       `json:"target_on_fire"`
	TargetHealth     float64    `json:"target_health"`
}

// PlayerContext is the input of an empty-hand use trigger.
type PlayerContext struct {
	PlayerID    string     `json:"player_id"`
	Position    world.Vec3 `json:"position"`
	EyePosition world.Vec3 `json:"eye_position"`
	Look        world.Vec3 `json:"look"`
	HandEmpty   bool       `json:"hand_empty"`
	Sneaking    bool       `json:"sneaking"`
}

type Trigger string

const (
	TriggerMelee    Trigger = "melee"
	TriggerUseItem  Trigger = "use_item"
	TriggerUseBlock Trigger = "use_block"
)
