package ports

type Random interface {
	// Float64 returns a value in [0,1).
	Float64() float64
	// IntN returns a value in [lo,hi).
	IntN(lo, hi int) int
}
