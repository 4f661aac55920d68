package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type Vec3 = mgl64.Vec3

// BlockPos addresses a single voxel cell.
type BlockPos [3]int

func BlockPosOf(v Vec3) BlockPos {
	return BlockPos{int(math.Floor(v[0])), int(math.Floor(v[1])), int(math.Floor(v[2]))}
}

func (p BlockPos) Vec3() Vec3 {
	return Vec3{float64(p[0]), float64(p[1]), float64(p[2])}
}

func (p BlockPos) Offset(dx, dy, dz int) BlockPos {
	return BlockPos{p[0] + dx, p[1] + dy, p[2] + dz}
}

// HorizontalLook returns the unit XZ direction an entity faces at the given
// yaw. Yaw 0 faces +Z and yaw 90 faces -X.
func HorizontalLook(yawDegrees float64) (dx, dz float64) {
	rad := mgl64.DegToRad(yawDegrees)
	return -math.Sin(rad), math.Cos(rad)
}

// DistanceSq is the squared euclidean distance between a and b.
func DistanceSq(a, b Vec3) float64 {
	d := b.Sub(a)
	return d.Dot(d)
}

// LookVector is the unit view direction for a yaw and pitch in degrees.
// Positive pitch looks down.
func LookVector(yawDegrees, pitchDegrees float64) Vec3 {
	yaw, pitch := mgl64.DegToRad(yawDegrees), mgl64.DegToRad(pitchDegrees)
	return Vec3{
		-math.Sin(yaw) * math.Cos(pitch),
		-math.Sin(pitch),
		math.Cos(yaw) * math.Cos(pitch),
	}
}

// ExplosionReachPerPower is how many blocks an explosion reaches per unit
// of power.
const ExplosionReachPerPower = 2.0

// ExplosionDamage is the damage an explosion of the given power deals at
// distance d, falling off linearly to zero at the edge of its reach.
func ExplosionDamage(power, d float64) float64 {
	reach := power * ExplosionReachPerPower
	if d >= reach {
		return 0
	}
	return power * (1 - d/reach) * ExplosionReachPerPower
}
