package packing

// The Remainder Processor (spec §4.5) is not a separate pass over
// PackGroup's output: it is the iteration loop inside PackGroup itself,
// draining the worklist seeded by the first pass to a fixed point or the
// RemainderSafetyBound (Design Note 9: "model as a worklist, not
// recursion"). Running it to fixed point is idempotent by construction —
// a further call with an empty queue is a no-op.
