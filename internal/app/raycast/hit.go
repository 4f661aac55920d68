package raycast

import "thunderpunch/internal/domain/world"

type HitKind string

const (
	HitEntity HitKind = "ENTITY"
	HitBlock  HitKind = "BLOCK"
	HitMiss   HitKind = "MISS"
)

// Hit is built only through EntityHit, BlockHit and Miss so that entityID
// is set exactly when Kind is HitEntity.
type Hit struct {
	Kind           HitKind
	Position       world.Vec3
	entityID       string
	entityPosition world.Vec3
}

func EntityHit(entityID string, pos, entityPos world.Vec3) Hit {
	return Hit{Kind: HitEntity, Position: pos, entityID: entityID, entityPosition: entityPos}
}

func BlockHit(pos world.Vec3) Hit {
	return Hit{Kind: HitBlock, Position: pos}
}

func Miss(end world.Vec3) Hit {
	return Hit{Kind: HitMiss, Position: end}
}

func (h Hit) Entity() (id string, pos world.Vec3, ok bool) {
	if h.Kind != HitEntity {
		return "", world.Vec3{}, false
	}
	return h.entityID, h.entityPosition, true
}
