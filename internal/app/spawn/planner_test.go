package spawn

import (
	"context"
	"errors"
	"math"
	"testing"

	"thunderpunch/internal/app/ports"
	"thunderpunch/internal/domain/world"
)

type scriptedRandom struct {
	floats []float64
}

func (r *scriptedRandom) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRandom) IntN(lo, _ int) int { return lo }

func TestSafePosition_SamplesRingAndQueriesGround(t *testing.T) {
	p := Planner{Random: &scriptedRandom{floats: []float64{0.5, 0.25}}}
	var gotX, gotZ float64
	pos, err := p.SafePosition(world.Vec3{10, 70, -4}, 2, 6, func(x, z float64) (float64, error) {
		gotX, gotZ = x, z
		return 64, nil
	})
	if err != nil {
		t.Fatalf("SafePosition error: %v", err)
	}
	// distance 4 at angle pi/2 lands straight along +z.
	if math.Abs(pos[0]-10) > 1e-9 || math.Abs(pos[2]-0) > 1e-9 {
		t.Fatalf("expected (10, 0) on the ring, got (%v, %v)", pos[0], pos[2])
	}
	if pos[1] != 64 {
		t.Fatalf("expected ground height 64, got %v", pos[1])
	}
	if gotX != pos[0] || gotZ != pos[2] {
		t.Fatalf("expected ground queried at the sampled column")
	}
}

func TestSafePosition_DistanceStaysInBounds(t *testing.T) {
	for _, f := range []float64{0, 0.3, 0.999999} {
		p := Planner{Random: &scriptedRandom{floats: []float64{f, 0.6}}}
		pos, err := p.SafePosition(world.Vec3{}, 8, 20, func(float64, float64) (float64, error) { return 0, nil })
		if err != nil {
			t.Fatalf("SafePosition error: %v", err)
		}
		d := math.Hypot(pos[0], pos[2])
		if d < 8-1e-9 || d > 20 {
			t.Fatalf("expected distance in [8,20], got %v", d)
		}
	}
}

func TestSafePosition_AcceptsOutOfBoundsHeight(t *testing.T) {
	p := Planner{Random: &scriptedRandom{}}
	pos, err := p.SafePosition(world.Vec3{}, 1, 2, func(float64, float64) (float64, error) { return -2048, nil })
	if err != nil {
		t.Fatalf("SafePosition error: %v", err)
	}
	if pos[1] != -2048 {
		t.Fatalf("expected height passed through, got %v", pos[1])
	}
}

type failingGround struct {
	ports.WorldQueries
	err error
}

func (f failingGround) GroundHeight(context.Context, float64, float64) (float64, error) {
	return 0, f.err
}

func TestNear_WrapsGroundFailure(t *testing.T) {
	boom := errors.New("chunk not loaded")
	p := Planner{Random: &scriptedRandom{}}
	_, err := p.Near(context.Background(), failingGround{err: boom}, world.Vec3{}, 2, 6, world.EntityZombie, 0)
	if !errors.Is(err, ports.ErrWorldQuery) || !errors.Is(err, boom) {
		t.Fatalf("expected world query failure wrapping cause, got %v", err)
	}
}

func TestBuildRequest_IsPureConstruction(t *testing.T) {
	req := BuildRequest("dragon", world.Vec3{1, 2, 3}, 90)
	if req.Creature != "dragon" || req.Position != (world.Vec3{1, 2, 3}) || req.Yaw != 90 {
		t.Fatalf("unexpected request %+v", req)
	}
}
