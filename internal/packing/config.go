package packing

// Config holds the tunables spec.md §9 leaves open as "configurable,
// not hard policy": the soft-full finalize ratio and the remainder
// safety bound.
type Config struct {
	// SoftFullRatio finalizes an open truck once its weight reaches this
	// fraction of MaxWeight (spec default 0.98).
	SoftFullRatio float64
	// RemainderSafetyBound caps remainder-processing iterations (spec
	// default 100).
	RemainderSafetyBound int
}

func DefaultConfig() Config {
	return Config{SoftFullRatio: 0.98, RemainderSafetyBound: 100}
}
