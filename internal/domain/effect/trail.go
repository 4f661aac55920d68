package effect

import (
	"iter"
	"math"

	"thunderpunch/internal/domain/world"
)

const (
	trailTargetSamples = 100
	trailFlameEvery    = 3
)

// ParticleTrail is a line of particles from Start to End. Samples are
// produced lazily so a long trail costs nothing until it is applied.
type ParticleTrail struct {
	Start world.Vec3 `json:"start"`
	End   world.Vec3 `json:"end"`
}

type TrailSample struct {
	Position world.Vec3
	Flame    bool
}

// Step is the spacing between samples: one block, or wider when the line is
// long enough that one-block spacing would exceed the target sample count.
func (t ParticleTrail) Step() float64 {
	return math.Max(1.0, t.Length()/trailTargetSamples)
}

func (t ParticleTrail) Length() float64 {
	return t.End.Sub(t.Start).Len()
}

func (t ParticleTrail) Samples() iter.Seq[TrailSample] {
	return func(yield func(TrailSample) bool) {
		dist := t.Length()
		if dist == 0 {
			return
		}
		dir := t.End.Sub(t.Start).Mul(1 / dist)
		step := t.Step()
		for i := 0; float64(i)*step < dist; i++ {
			s := TrailSample{
				Position: t.Start.Add(dir.Mul(float64(i) * step)),
				Flame:    i%trailFlameEvery == 0,
			}
			if !yield(s) {
				return
			}
		}
	}
}
