package api

// Finalizer is the cleanup capability for arena managed values. A
// shape needs the teardown walk if and only if its pointer type
// implements Finalizer. The capability is checked once per arena
// instantiation, never on individual allocations.
type Finalizer interface {
	// Finalize release resources held by the value. Invoked exactly
	// once for every live value when the owning arena is released.
	Finalize()
}

// Mallocer interface for region based memory management.
type Mallocer interface {
	// Release arena and all its resources. Typed arenas walk their
	// live values with Finalize() before memory is dropped. There is
	// no per-value free, Release is the only release point.
	Release()

	// Info of memory accounting for this arena.
	Info() (capacity, heap, alloc, overhead int64)

	// Utilization ratio between allocated bytes and heap bytes.
	Utilization() float64

	// Stats map for this arena, keys are documented with the
	// implementing type.
	Stats() map[string]interface{}
}
