package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"thunderpunch/internal/app/ports"
	"thunderpunch/internal/app/spawn"
	"thunderpunch/internal/domain/combat"
	"thunderpunch/internal/domain/world"
	"thunderpunch/internal/random"
)

const DefaultShutdownGrace = 5 * time.Second

var ErrShutdownTimeout = errors.New("spawn scheduler shutdown timed out")

type Timer interface {
	Stop() bool
}

type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type Config struct {
	Random    ports.Random
	Tuning    ports.TuningSource
	Logger    *log.Logger
	AfterFunc AfterFunc
	Now       func() time.Time
	Grace     time.Duration
}

type State struct {
	Armed  bool      `json:"armed"`
	FireAt time.Time `json:"fire_at,omitzero"`
	Closed bool      `json:"closed"`
}

// Scheduler runs at most one deferred creeper spawn at a time. It is owned
// by the composition root and shut down with it.
type Scheduler struct {
	cfg     Config
	planner spawn.Planner

	// mu serialises arming, disarming and shutdown so that the CAS and the
	// timer registration are observed together.
	mu     sync.Mutex
	armed  atomic.Bool
	closed bool
	timer  Timer
	fireAt time.Time

	inflight sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
}

func New(cfg Config) *Scheduler {
	if cfg.Random == nil {
		cfg.Random = random.New()
	}
	if cfg.Tuning == nil {
		cfg.Tuning = combat.StaticTuning(combat.DefaultTuning())
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.AfterFunc == nil {
		cfg.AfterFunc = realAfterFunc
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Grace <= 0 {
		cfg.Grace = DefaultShutdownGrace
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cfg:     cfg,
		planner: spawn.Planner{Random: cfg.Random},
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (s *Scheduler) EnableOnce(w ports.World, playerID string, origin world.Vec3) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	if !s.armed.CompareAndSwap(false, true) {
		return false
	}

	t := s.cfg.Tuning.Tuning()
	delay := time.Duration(s.cfg.Random.IntN(t.CreeperDelayMin, t.CreeperDelayMax+1)) * time.Second
	s.fireAt = s.cfg.Now().Add(delay)
	s.inflight.Add(1)
	s.timer = s.cfg.AfterFunc(delay, func() {
		s.fire(w, playerID, origin)
	})
	s.cfg.Logger.Printf("creeper scheduled to spawn in %d seconds", int(delay/time.Second))
	return true
}

func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{Armed: s.armed.Load(), FireAt: s.fireAt, Closed: s.closed}
}

func (s *Scheduler) fire(w ports.World, playerID string, origin world.Vec3) {
	defer s.inflight.Done()
	defer s.disarm()
	defer func() {
		if r := recover(); r != nil {
			s.cfg.Logger.Printf("error spawning creeper: panic: %v", r)
		}
	}()

	if !s.armed.Load() {
		return
	}
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		s.cfg.Logger.Printf("creeper spawn skipped: scheduler shut down")
		return
	}
	if !w.IsServerAuthoritative() {
		return
	}
	if err := s.spawnCreeper(s.ctx, w, playerID, origin); err != nil {
		s.cfg.Logger.Printf("error spawning creeper: %v", err)
	}
}

func (s *Scheduler) disarm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timer = nil
	s.fireAt = time.Time{}
	s.armed.Store(false)
}

func (s *Scheduler) spawnCreeper(ctx context.Context, w ports.World, playerID string, origin world.Vec3) error {
	center := origin
	if pos, err := w.EntityPosition(ctx, playerID); err == nil {
		center = pos
	}
	req, err := s.planner.Near(ctx, w, center, combat.CreeperMinDistance, combat.CreeperMaxDistance, world.EntityCreeper, s.planner.RandomYaw())
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := w.SpawnEntity(ctx, req); err != nil {
		return ports.WorldFailure("spawn creeper", err)
	}
	if err := w.PlaySound(ctx, world.SoundCreeperPrimed, center, 1.0, 1.0); err != nil {
		return ports.WorldFailure("creeper sound", err)
	}
	s.cfg.Logger.Printf("creeper spawned at %v", req.Position)
	return nil
}

// Shutdown stops accepting work, cancels a pending timer and waits for an
// in-flight spawn. Without a deadline on ctx it waits for the configured
// grace. On timeout the in-flight spawn is cancelled and left to finish as a
// no-op.
func (s *Scheduler) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	if s.timer != nil && s.timer.Stop() {
		s.timer = nil
		s.fireAt = time.Time{}
		s.armed.Store(false)
		s.inflight.Done()
	}
	s.mu.Unlock()

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Grace)
		defer cancel()
	}

	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.cancel()
		s.cfg.Logger.Printf("spawn scheduler shutdown complete")
		return nil
	case <-ctx.Done():
		s.cancel()
		s.cfg.Logger.Printf("forced shutdown of spawn scheduler")
		return fmt.Errorf("%w: %v", ErrShutdownTimeout, ctx.Err())
	}
}
