package sandbox

import (
	"errors"
	"fmt"
	"log"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"thunderpunch/internal/domain/world"
)

const (
	DefaultGroundLevel = 64
	DefaultMaxHealth   = 20.0
	DefaultHitRadius   = 0.6
	DefaultEyeHeight   = 1.62
	maxFood            = 20
	eventLogSize       = 256
)

var (
	ErrUnknownEntity = errors.New("unknown entity")
	ErrDuplicateID   = errors.New("entity id already in use")
	ErrNotLiving     = errors.New("entity is not living")
)

type Config struct {
	// GroundLevel is the first air layer above the implicit stone floor.
	GroundLevel int
	ClientSide  bool
	Now         func() time.Time
	NewID       func() string
	Logger      *log.Logger
}

type StatusInstance struct {
	DurationTicks int `json:"duration_ticks"`
	Amplifier     int `json:"amplifier"`
}

type Entity struct {
	ID         string                              `json:"id"`
	Kind       world.EntityKind                    `json:"kind"`
	Position   world.Vec3                          `json:"position"`
	Yaw        float64                             `json:"yaw"`
	Pitch      float64                             `json:"pitch"`
	Health     float64                             `json:"health"`
	MaxHealth  float64                             `json:"max_health"`
	Living     bool                                `json:"living"`
	Spectator  bool                                `json:"spectator,omitempty"`
	OnFire     bool                                `json:"on_fire,omitempty"`
	Armor      int                                 `json:"armor"`
	HandEmpty  bool                                `json:"hand_empty"`
	Sneaking   bool                                `json:"sneaking,omitempty"`
	Food       int                                 `json:"food"`
	Saturation float64                             `json:"saturation"`
	Velocity   world.Vec3                          `json:"velocity"`
	Attributes map[world.AttributeKind]float64     `json:"attributes,omitempty"`
	Statuses   map[world.StatusKind]StatusInstance `json:"statuses,omitempty"`
	Inbox      []string                            `json:"inbox,omitempty"`
}

type Event struct {
	At       time.Time  `json:"at"`
	Kind     string     `json:"kind"`
	Position world.Vec3 `json:"position"`
	Detail   string     `json:"detail,omitempty"`
}

type Snapshot struct {
	WorldTime int64             `json:"world_time"`
	Tick      int64             `json:"tick"`
	Entities  []Entity          `json:"entities"`
	Blocks    map[string]string `json:"blocks"`
	Events    []Event           `json:"events"`
	Particles map[string]int    `json:"particles"`
}

// World is an in-memory host simulation. The deferred spawn callback runs
// on its own goroutine, so every access goes through mu.
type World struct {
	cfg Config

	mu        sync.RWMutex
	entities  map[string]*Entity
	blocks    map[world.BlockPos]world.BlockKind
	worldTime int64
	tick      int64
	events    []Event
	particles map[world.ParticleKind]int
}

func New(cfg Config) *World {
	if cfg.GroundLevel == 0 {
		cfg.GroundLevel = DefaultGroundLevel
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return &World{
		cfg:       cfg,
		entities:  make(map[string]*Entity),
		blocks:    make(map[world.BlockPos]world.BlockKind),
		particles: make(map[world.ParticleKind]int),
	}
}

// AddEntity places e in the world, filling health and food defaults.
func (w *World) AddEntity(e Entity) (Entity, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if e.ID == "" {
		e.ID = w.cfg.NewID()
	}
	if _, ok := w.entities[e.ID]; ok {
		return Entity{}, ErrDuplicateID
	}
	if e.MaxHealth <= 0 {
		e.MaxHealth = DefaultMaxHealth
	}
	if e.Health <= 0 {
		e.Health = e.MaxHealth
	}
	if e.Kind == world.EntityPlayer && e.Food == 0 {
		e.Food = maxFood
	}
	e.Living = e.Kind != world.EntityLightningBolt
	cp := e
	cp.Attributes = maps.Clone(e.Attributes)
	cp.Statuses = maps.Clone(e.Statuses)
	w.entities[e.ID] = &cp
	return cp.clone(), nil
}

func (w *World) Entity(id string) (Entity, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	e, ok := w.entities[id]
	if !ok {
		return Entity{}, false
	}
	return e.clone(), true
}

// UpdateEntity applies fn to a copy of the entity and stores the result.
func (w *World) UpdateEntity(id string, fn func(*Entity)) (Entity, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	e, ok := w.entities[id]
	if !ok {
		return Entity{}, ErrUnknownEntity
	}
	cp := e.clone()
	fn(&cp)
	cp.ID = id
	w.entities[id] = &cp
	return cp.clone(), nil
}

func (w *World) SetBlock(pos world.BlockPos, block world.BlockKind) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if block == world.BlockAir {
		delete(w.blocks, pos)
		return
	}
	w.blocks[pos] = block
}

// BlockAt reports the block in a cell, including the implicit stone floor.
func (w *World) BlockAt(pos world.BlockPos) world.BlockKind {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.blockAt(pos)
}

func (w *World) blockAt(pos world.BlockPos) world.BlockKind {
	if b, ok := w.blocks[pos]; ok {
		return b
	}
	if pos[1] < w.cfg.GroundLevel {
		return world.BlockStone
	}
	return world.BlockAir
}

func (w *World) Snapshot() Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	s := Snapshot{
		WorldTime: w.worldTime,
		Tick:      w.tick,
		Entities:  make([]Entity, 0, len(w.entities)),
		Blocks:    make(map[string]string, len(w.blocks)),
		Events:    slices.Clone(w.events),
		Particles: make(map[string]int, len(w.particles)),
	}
	for _, e := range w.entities {
		s.Entities = append(s.Entities, e.clone())
	}
	slices.SortFunc(s.Entities, func(a, b Entity) int { return strings.Compare(a.ID, b.ID) })
	for p, n := range w.particles {
		s.Particles[string(p)] = n
	}
	for pos, b := range w.blocks {
		s.Blocks[blockKey(pos)] = string(b)
	}
	return s
}

func (w *World) Now() time.Time { return w.cfg.Now() }

func (w *World) IsServerAuthoritative() bool { return !w.cfg.ClientSide }

// record must be called with mu held.
func (w *World) record(kind string, pos world.Vec3, detail string) {
	w.events = append(w.events, Event{At: w.cfg.Now(), Kind: kind, Position: pos, Detail: detail})
	if over := len(w.events) - eventLogSize; over > 0 {
		w.events = slices.Delete(w.events, 0, over)
	}
}

func (e *Entity) clone() Entity {
	cp := *e
	cp.Attributes = maps.Clone(e.Attributes)
	cp.Statuses = maps.Clone(e.Statuses)
	cp.Inbox = slices.Clone(e.Inbox)
	return cp
}

func (e *Entity) eyePosition() world.Vec3 {
	if e.Kind == world.EntityPlayer {
		return e.Position.Add(world.Vec3{0, DefaultEyeHeight, 0})
	}
	return e.Position
}

func blockKey(p world.BlockPos) string {
	return fmt.Sprintf("%d,%d,%d", p[0], p[1], p[2])
}
