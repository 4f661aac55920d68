package scheduler

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"thunderpunch/internal/app/ports"
	"thunderpunch/internal/domain/world"
)

type fakeTimer struct {
	mu      sync.Mutex
	delay   time.Duration
	f       func()
	stopped bool
	started bool
}

func (t *fakeTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped || t.started {
		return false
	}
	t.stopped = true
	return true
}

// begin marks the timer as fired without running the callback yet.
func (t *fakeTimer) begin() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped || t.started {
		return false
	}
	t.started = true
	return true
}

func (t *fakeTimer) fire() {
	if t.begin() {
		t.f()
	}
}

type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{delay: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

func (c *fakeClock) last() *fakeTimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timers[len(c.timers)-1]
}

type recordingRandom struct {
	mu      sync.Mutex
	intArgs [][2]int
}

func (r *recordingRandom) Float64() float64 { return 0 }

func (r *recordingRandom) IntN(lo, hi int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intArgs = append(r.intArgs, [2]int{lo, hi})
	return lo
}

type stubWorld struct {
	ports.World
	mu           sync.Mutex
	clientSide   bool
	playerPos    world.Vec3
	positionErr  error
	spawnErr     error
	panicOnSpawn bool
	spawned      []world.SpawnRequest
	sounds       []world.SoundKind
	soundAt      []world.Vec3
	spawnEntered chan struct{}
	releaseSpawn chan struct{}
}

func (w *stubWorld) IsServerAuthoritative() bool { return !w.clientSide }

func (w *stubWorld) EntityPosition(context.Context, string) (world.Vec3, error) {
	return w.playerPos, w.positionErr
}

func (w *stubWorld) GroundHeight(context.Context, float64, float64) (float64, error) {
	return 64, nil
}

func (w *stubWorld) SpawnEntity(_ context.Context, req world.SpawnRequest) (string, error) {
	if w.spawnEntered != nil {
		close(w.spawnEntered)
		<-w.releaseSpawn
	}
	if w.panicOnSpawn {
		panic("spawn exploded")
	}
	if w.spawnErr != nil {
		return "", w.spawnErr
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.spawned = append(w.spawned, req)
	return "creeper-1", nil
}

func (w *stubWorld) PlaySound(_ context.Context, sound world.SoundKind, pos world.Vec3, _, _ float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.sounds = append(w.sounds, sound)
	w.soundAt = append(w.soundAt, pos)
	return nil
}

func (w *stubWorld) spawnCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.spawned)
}

var errSpawnRejected = errors.New("spawn rejected")

func newTestScheduler(clock *fakeClock, rnd *recordingRandom) *Scheduler {
	return New(Config{
		Random:    rnd,
		Logger:    log.New(io.Discard, "", 0),
		AfterFunc: clock.AfterFunc,
		Now:       func() time.Time { return time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC) },
	})
}
