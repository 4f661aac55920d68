package spawn

import (
	"context"
	"math"

	"thunderpunch/internal/app/ports"
	"thunderpunch/internal/domain/world"
	"thunderpunch/internal/random"
)

type GroundQuery func(x, z float64) (float64, error)

type Planner struct {
	Random ports.Random
}

// SafePosition samples a point on a ring around origin and drops it onto
// the ground. A failing or out-of-range ground query is passed through.
func (p Planner) SafePosition(origin world.Vec3, minDist, maxDist float64, ground GroundQuery) (world.Vec3, error) {
	distance := random.Uniform(p.Random, minDist, maxDist)
	angle := random.Uniform(p.Random, 0, 2*math.Pi)

	x := origin[0] + math.Cos(angle)*distance
	z := origin[2] + math.Sin(angle)*distance
	y, err := ground(x, z)
	if err != nil {
		return world.Vec3{}, err
	}
	return world.Vec3{x, y, z}, nil
}

func BuildRequest(kind world.EntityKind, pos world.Vec3, yaw float64) world.SpawnRequest {
	return world.SpawnRequest{Creature: kind, Position: pos, Yaw: yaw}
}

// Near plans one creature between minDist and maxDist of origin using the
// world's ground height.
func (p Planner) Near(ctx context.Context, w ports.WorldQueries, origin world.Vec3, minDist, maxDist float64, kind world.EntityKind, yaw float64) (world.SpawnRequest, error) {
	pos, err := p.SafePosition(origin, minDist, maxDist, func(x, z float64) (float64, error) {
		return w.GroundHeight(ctx, x, z)
	})
	if err != nil {
		return world.SpawnRequest{}, ports.WorldFailure("ground height", err)
	}
	return BuildRequest(kind, pos, yaw), nil
}

// RandomYaw samples a facing in [0,360).
func (p Planner) RandomYaw() float64 {
	return random.Uniform(p.Random, 0, 360)
}
