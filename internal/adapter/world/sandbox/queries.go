package sandbox

import (
	"context"
	"fmt"
	"math"

	"thunderpunch/internal/app/ports"
	"thunderpunch/internal/domain/world"
)

func (w *World) EntityAttribute(_ context.Context, entityID string, attr world.AttributeKind) (float64, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	e, ok := w.entities[entityID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownEntity, entityID)
	}
	v, ok := e.Attributes[attr]
	if !ok {
		return 0, ports.ErrNotFound
	}
	return v, nil
}

// NearestLivingEntityOnSegment treats every entity as a sphere of
// DefaultHitRadius around the middle of its body.
func (w *World) NearestLivingEntityOnSegment(_ context.Context, q ports.SegmentQuery) (*ports.EntityHit, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var best *ports.EntityHit
	bestSq := math.Inf(1)
	for id, e := range w.entities {
		if id == q.Exclude || !e.Living || e.Spectator {
			continue
		}
		center := e.Position.Add(world.Vec3{0, DefaultHitRadius, 0})
		entry, ok := segmentSphereEntry(q.Start, q.End, center, DefaultHitRadius)
		if !ok {
			continue
		}
		d := world.DistanceSq(q.Start, entry)
		if d > q.MaxDistanceSq || d >= bestSq {
			continue
		}
		bestSq = d
		best = &ports.EntityHit{EntityID: id, Position: entry, EntityPosition: e.Position}
	}
	return best, nil
}

// segmentSphereEntry returns the first point where the segment a-b enters
// the sphere, or a itself when a starts inside it.
func segmentSphereEntry(a, b, center world.Vec3, radius float64) (world.Vec3, bool) {
	d := b.Sub(a)
	f := a.Sub(center)
	qa := d.Dot(d)
	if qa == 0 {
		return a, f.Dot(f) <= radius*radius
	}
	qb := 2 * f.Dot(d)
	qc := f.Dot(f) - radius*radius
	if qc <= 0 {
		return a, true
	}
	disc := qb*qb - 4*qa*qc
	if disc < 0 {
		return world.Vec3{}, false
	}
	t := (-qb - math.Sqrt(disc)) / (2 * qa)
	if t < 0 || t > 1 {
		return world.Vec3{}, false
	}
	return a.Add(d.Mul(t)), true
}

// BlockRaycast walks the voxel grid from start to end and stops at the first
// solid cell. Air and fluids are passed through.
func (w *World) BlockRaycast(_ context.Context, start, end world.Vec3) (ports.BlockHit, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	d := end.Sub(start)
	length := d.Len()
	cell := world.BlockPosOf(start)
	if w.solid(cell) {
		return ports.BlockHit{Hit: true, Position: start, Block: cell}, nil
	}
	if length == 0 {
		return ports.BlockHit{}, nil
	}

	var step [3]int
	var tMax, tDelta [3]float64
	for i := range 3 {
		switch {
		case d[i] > 0:
			step[i] = 1
			tMax[i] = (float64(cell[i]+1) - start[i]) / d[i]
			tDelta[i] = 1 / d[i]
		case d[i] < 0:
			step[i] = -1
			tMax[i] = (float64(cell[i]) - start[i]) / d[i]
			tDelta[i] = -1 / d[i]
		default:
			tMax[i] = math.Inf(1)
			tDelta[i] = math.Inf(1)
		}
	}

	for {
		axis := 0
		if tMax[1] < tMax[axis] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}
		t := tMax[axis]
		if t > 1 {
			return ports.BlockHit{}, nil
		}
		cell[axis] += step[axis]
		tMax[axis] += tDelta[axis]
		if w.solid(cell) {
			return ports.BlockHit{Hit: true, Position: start.Add(d.Mul(t)), Block: cell}, nil
		}
	}
}

func (w *World) solid(pos world.BlockPos) bool {
	b := w.blockAt(pos)
	return b != world.BlockAir && !b.IsFluid()
}

// GroundHeight is the top of the highest solid block in the column at or
// above the stone floor.
func (w *World) GroundHeight(_ context.Context, x, z float64) (float64, error) {
	if math.IsNaN(x) || math.IsNaN(z) {
		return 0, fmt.Errorf("ground height at (%v, %v): invalid column", x, z)
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	col := world.BlockPosOf(world.Vec3{x, 0, z})
	top := w.cfg.GroundLevel
	for pos, b := range w.blocks {
		if pos[0] != col[0] || pos[2] != col[2] || b == world.BlockAir || b.IsFluid() {
			continue
		}
		if pos[1]+1 > top {
			top = pos[1] + 1
		}
	}
	return float64(top), nil
}

func (w *World) EntityPosition(_ context.Context, entityID string) (world.Vec3, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	e, ok := w.entities[entityID]
	if !ok {
		return world.Vec3{}, fmt.Errorf("%w: %s", ErrUnknownEntity, entityID)
	}
	return e.Position, nil
}
