package world

type EntityKind string

const (
	EntityPlayer         EntityKind = "player"
	EntityCreeper        EntityKind = "creeper"
	EntityZombie         EntityKind = "zombie"
	EntityVillager       EntityKind = "villager"
	EntityOcelot         EntityKind = "ocelot"
	EntitySpider         EntityKind = "spider"
	EntityZombieVillager EntityKind = "zombie_villager"
	EntityBlaze          EntityKind = "blaze"
	EntityWitch          EntityKind = "witch"
	EntityWolf           EntityKind = "wolf"
	EntityLightningBolt  EntityKind = "lightning_bolt"
)

type BlockKind string

const (
	BlockAir   BlockKind = "air"
	BlockStone BlockKind = "stone"
	BlockLava  BlockKind = "lava"
	BlockWater BlockKind = "water"
)

// IsFluid reports blocks a raycast passes through.
func (b BlockKind) IsFluid() bool {
	return b == BlockLava || b == BlockWater
}

type StatusKind string

const (
	StatusResistance   StatusKind = "resistance"
	StatusRegeneration StatusKind = "regeneration"
	StatusNightVision  StatusKind = "night_vision"
	StatusHunger       StatusKind = "hunger"
)

type SoundKind string

const (
	SoundGenericExplode SoundKind = "entity.generic.explode"
	SoundThunder        SoundKind = "entity.lightning_bolt.thunder"
	SoundCreeperPrimed  SoundKind = "entity.creeper.primed"
)

type ParticleKind string

const (
	ParticleExplosion ParticleKind = "explosion"
	ParticleFlame     ParticleKind = "flame"
)

type AttributeKind string

const (
	AttributeAttackKnockback AttributeKind = "attack_knockback"
	AttributeMaxHealth       AttributeKind = "max_health"
)

type DamageSource string

const (
	DamagePlayerAttack DamageSource = "player_attack"
)

type ExplosionKind string

const (
	// ExplosionNone destroys nothing and credits nobody.
	ExplosionNone ExplosionKind = "none"
	ExplosionTNT  ExplosionKind = "tnt"
)

// Attribution names who caused an explosion.
type Attribution struct {
	SourceID string        `json:"source_id,omitempty"`
	Kind     ExplosionKind `json:"kind"`
}

// SpawnRequest describes one creature to place. Position.Y is resolved when
// the request is built and never re-queried.
type SpawnRequest struct {
	Creature EntityKind `json:"creature"`
	Position Vec3       `json:"position"`
	Yaw      float64    `json:"yaw"`
}
