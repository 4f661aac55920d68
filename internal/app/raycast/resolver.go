package raycast

import (
	"context"

	"thunderpunch/internal/app/ports"
	"thunderpunch/internal/domain/world"
)

type Resolver struct{}

// Resolve casts from origin along direction. Any entity on the segment wins
// over blocks, even a block in front of it.
func (Resolver) Resolve(ctx context.Context, w ports.WorldQueries, casterID string, origin, direction world.Vec3, maxRange float64) (Hit, error) {
	end := origin.Add(direction.Mul(maxRange))

	entity, err := w.NearestLivingEntityOnSegment(ctx, ports.SegmentQuery{
		Start:         origin,
		End:           end,
		Exclude:       casterID,
		MaxDistanceSq: maxRange * maxRange,
	})
	if err != nil {
		return Hit{}, ports.WorldFailure("entity raycast", err)
	}
	if entity != nil {
		return EntityHit(entity.EntityID, entity.Position, entity.EntityPosition), nil
	}

	block, err := w.BlockRaycast(ctx, origin, end)
	if err != nil {
		return Hit{}, ports.WorldFailure("block raycast", err)
	}
	if block.Hit {
		return BlockHit(block.Position), nil
	}
	return Miss(end), nil
}
