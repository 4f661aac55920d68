package effect

import "thunderpunch/internal/domain/world"

type Kind string

const (
	KindDamage        Kind = "damage"
	KindKnockback     Kind = "knockback"
	KindExplosion     Kind = "explosion"
	KindSpawn         Kind = "spawn"
	KindStatus        Kind = "status"
	KindWorldTime     Kind = "world_time"
	KindMessage       Kind = "message"
	KindLightning     Kind = "lightning"
	KindSound         Kind = "sound"
	KindHeal          Kind = "heal"
	KindSetHealth     Kind = "set_health"
	KindVelocity      Kind = "velocity"
	KindHunger        Kind = "hunger"
	KindPlaceBlock    Kind = "place_block"
	KindParticleTrail Kind = "particle_trail"
)

// Effect is one declarative instruction for the host world. The set of
// implementations is closed to this package.
type Effect interface {
	Kind() Kind
	sealed()
}

type Damage struct {
	Target   string             `json:"target"`
	Amount   float64            `json:"amount"`
	Source   world.DamageSource `json:"source"`
	SourceID string             `json:"source_id,omitempty"`
}

// Knockback pushes Target along the horizontal direction (DirX, DirZ).
type Knockback struct {
	Target   string  `json:"target"`
	Strength float64 `json:"strength"`
	DirX     float64 `json:"dir_x"`
	DirZ     float64 `json:"dir_z"`
}

type Explosion struct {
	Position    world.Vec3        `json:"position"`
	Power       float64           `json:"power"`
	Attribution world.Attribution `json:"attribution"`
}

type Spawn struct {
	world.SpawnRequest
}

type Status struct {
	Target        string           `json:"target"`
	Status        world.StatusKind `json:"status"`
	DurationTicks int              `json:"duration_ticks"`
	Amplifier     int              `json:"amplifier"`
}

type WorldTime struct {
	Ticks int64 `json:"ticks"`
}

type Message struct {
	Target string `json:"target"`
	Text   string `json:"text"`
}

// Lightning is cosmetic; it never deals damage.
type Lightning struct {
	Position world.Vec3 `json:"position"`
}

type Sound struct {
	Sound    world.SoundKind `json:"sound"`
	Position world.Vec3      `json:"position"`
	Volume   float64         `json:"volume"`
	Pitch    float64         `json:"pitch"`
}

type Heal struct {
	Target string  `json:"target"`
	Amount float64 `json:"amount"`
}

type SetHealth struct {
	Target string  `json:"target"`
	Health float64 `json:"health"`
}

type Velocity struct {
	Target string  `json:"target"`
	DX     float64 `json:"dx"`
	DY     float64 `json:"dy"`
	DZ     float64 `json:"dz"`
}

type Hunger struct {
	Target     string  `json:"target"`
	Food       int     `json:"food"`
	Saturation float64 `json:"saturation"`
}

// PlaceBlock only takes effect when the target cell is empty.
type PlaceBlock struct {
	Position world.BlockPos  `json:"position"`
	Block    world.BlockKind `json:"block"`
}

func (Damage) Kind() Kind        { return KindDamage }
func (Knockback) Kind() Kind     { return KindKnockback }
func (Explosion) Kind() Kind     { return KindExplosion }
func (Spawn) Kind() Kind         { return KindSpawn }
func (Status) Kind() Kind        { return KindStatus }
func (WorldTime) Kind() Kind     { return KindWorldTime }
func (Message) Kind() Kind       { return KindMessage }
func (Lightning) Kind() Kind     { return KindLightning }
func (Sound) Kind() Kind         { return KindSound }
func (Heal) Kind() Kind          { return KindHeal }
func (SetHealth) Kind() Kind     { return KindSetHealth }
func (Velocity) Kind() Kind      { return KindVelocity }
func (Hunger) Kind() Kind        { return KindHunger }
func (PlaceBlock) Kind() Kind    { return KindPlaceBlock }
func (ParticleTrail) Kind() Kind { return KindParticleTrail }

func (Damage) sealed()        {}
func (Knockback) sealed()     {}
func (Explosion) sealed()     {}
func (Spawn) sealed()         {}
func (Status) sealed()        {}
func (WorldTime) sealed()     {}
func (Message) sealed()       {}
func (Lightning) sealed()     {}
func (Sound) sealed()         {}
func (Heal) sealed()          {}
func (SetHealth) sealed()     {}
func (Velocity) sealed()      {}
func (Hunger) sealed()        {}
func (PlaceBlock) sealed()    {}
func (ParticleTrail) sealed() {}
