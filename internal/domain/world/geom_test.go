package world

import (
	"math"
	"testing"
)

func TestBlockPosOf_Floors(t *testing.T) {
	got := BlockPosOf(Vec3{1.5, -0.2, -3.7})
	if got != (BlockPos{1, -1, -4}) {
		t.Fatalf("expected {1 -1 -4}, got %v", got)
	}
}

func TestHorizontalLook(t *testing.T) {
	cases := []struct {
		yaw    float64
		dx, dz float64
	}{
		{yaw: 0, dx: 0, dz: 1},
		{yaw: 90, dx: -1, dz: 0},
		{yaw: 180, dx: 0, dz: -1},
		{yaw: 270, dx: 1, dz: 0},
	}
	for _, tc := range cases {
		dx, dz := HorizontalLook(tc.yaw)
		if math.Abs(dx-tc.dx) > 1e-9 || math.Abs(dz-tc.dz) > 1e-9 {
			t.Fatalf("yaw %v: expected (%v, %v), got (%v, %v)", tc.yaw, tc.dx, tc.dz, dx, dz)
		}
	}
}

func TestLookVector_IsUnitAndPitchesDown(t *testing.T) {
	v := LookVector(45, 30)
	if math.Abs(v.Len()-1) > 1e-9 {
		t.Fatalf("expected unit vector, got length %v", v.Len())
	}
	if v[1] >= 0 {
		t.Fatalf("expected positive pitch to look down, got %v", v)
	}
	if down := LookVector(0, 90); math.Abs(down[1]+1) > 1e-9 {
		t.Fatalf("expected straight down at pitch 90, got %v", down)
	}
}

func TestExplosionDamage_FallsOffToReach(t *testing.T) {
	if got := ExplosionDamage(2, 0); got != 4 {
		t.Fatalf("expected 4 at the center, got %v", got)
	}
	if got := ExplosionDamage(2, 2); got != 2 {
		t.Fatalf("expected 2 halfway out, got %v", got)
	}
	if got := ExplosionDamage(2, 4); got != 0 {
		t.Fatalf("expected 0 at the edge of reach, got %v", got)
	}
}
