// Functions and methods are not thread safe.

package arena

import "fmt"
import "unsafe"

import "github.com/bnclabs/goarena/api"
import s "github.com/prataprc/gosettings"
import humanize "github.com/dustin/go-humanize"

// typedchunk one contiguous run of slots for a fixed shape. written
// counts the slots carrying live values and drives the Finalize()
// walk, independently of what any single allocation call returned.
type typedchunk[T any] struct {
	slots   []T
	written int64
}

// TypedArena supplies memory for values of exactly one shape and
// guarantees the Finalize() routine of every live value runs exactly
// once when the arena is released. Shapes whose pointer type does not
// implement api.Finalizer skip the walk altogether, teardown is then
// a pure memory release.
type TypedArena[T any] struct {
	name   string
	chunks []*typedchunk[T] // oldest first, tail has the free slots
	curcap int64            // slot capacity for the next normal chunk

	// zero sized shapes need no storage, they share one sentinel
	// slot and are tracked by count alone.
	zval   T
	zcount int64

	// configuration, computed once at construction
	tsize     int64
	initelems int64
	maxelems  int64
	needfinal bool
	logprefix string
	setts     s.Settings

	// statistics
	nallocs  int64
	released bool
}

// NewTypedArena create an arena for shape T. Settings refer
// Defaultsettings().
func NewTypedArena[T any](name string, setts s.Settings) *TypedArena[T] {
	setts = make(s.Settings).Mixin(Defaultsettings(), setts)
	validatesettings(setts)
	ta := &TypedArena[T]{
		name:      name,
		setts:     setts,
		logprefix: fmt.Sprintf("TYPD [%s]", name),
	}
	ta.tsize = int64(unsafe.Sizeof(ta.zval))
	_, ta.needfinal = any(&ta.zval).(api.Finalizer)
	chunksize := setts.Int64("chunksize")
	chunkmax := setts.Int64("chunksize.max")
	if ta.tsize > 0 {
		ta.initelems = maxi64(1, chunksize/ta.tsize)
		ta.maxelems = maxi64(1, chunkmax/ta.tsize)
	}
	ta.curcap = ta.initelems
	debugf("%v created for %T, tsize:%v needfinal:%v\n",
		ta.logprefix, ta.zval, ta.tsize, ta.needfinal)
	return ta
}

//---- operations

// Alloc copy `value` into the arena and return a reference valid
// until the arena is released.
func (ta *TypedArena[T]) Alloc(value T) *T {
	if ta.released {
		panicerr("%v arena released", ta.logprefix)
	}
	ta.nallocs++
	if ta.tsize == 0 {
		ta.zcount++
		return &ta.zval
	}
	tail := ta.tail()
	if tail == nil || tail.written == int64(len(tail.slots)) {
		tail = ta.grow(1)
	}
	tail.slots[tail.written] = value
	tail.written++
	return &tail.slots[tail.written-1]
}

// Allocslice copy `values` into one contiguous run of slots and
// return the run, capped to its own length. An empty input returns a
// valid empty slice without growing any chunk.
func (ta *TypedArena[T]) Allocslice(values []T) []T {
	if ta.released {
		panicerr("%v arena released", ta.logprefix)
	}
	n := int64(len(values))
	if n == 0 {
		return []T{}
	}
	ta.nallocs++
	if ta.tsize == 0 {
		ta.zcount += n
		return make([]T, n)
	}
	tail := ta.tail()
	if tail == nil || tail.written+n > int64(len(tail.slots)) {
		// the run must stay contiguous. Start it in a chunk sized
		// for the whole run, the old tail's free slots stay unused.
		tail = ta.grow(n)
	}
	w := tail.written
	copy(tail.slots[w:w+n], values)
	tail.written += n
	return tail.slots[w : w+n : w+n]
}

// Allocfromiter drain a finite, non restartable producer into one
// contiguous run. Values are staged outside the arena until the
// producer ends, the run is then reserved in one shot so that it
// stays contiguous whatever the producer's length turns out to be.
func (ta *TypedArena[T]) Allocfromiter(next func() (T, bool)) []T {
	if ta.released {
		panicerr("%v arena released", ta.logprefix)
	}
	var staged []T
	for {
		value, ok := next()
		if ok == false {
			break
		}
		staged = append(staged, value)
	}
	return ta.Allocslice(staged)
}

// Release the arena. Shapes carrying the api.Finalizer capability
// have Finalize() invoked exactly once per live value, walking chunks
// oldest to newest, before memory is dropped.
func (ta *TypedArena[T]) Release() {
	if ta.released {
		panicerr("%v arena released", ta.logprefix)
	}
	if ta.needfinal {
		ta.finalize()
	}
	heap, _, alloc, _ := ta.Info()
	ta.chunks, ta.zcount, ta.released = nil, 0, true
	infof("%v released heap:%v alloc:%v\n", ta.logprefix,
		humanize.Bytes(uint64(heap)), humanize.Bytes(uint64(alloc)))
}

// Reset rewind the arena for reuse. The Finalize() walk runs as in
// Release, every chunk except the newest is dropped and the tail
// cursor rewound.
func (ta *TypedArena[T]) Reset() {
	if ta.released {
		panicerr("%v arena released", ta.logprefix)
	}
	if ta.needfinal {
		ta.finalize()
	}
	ta.zcount = 0
	if n := len(ta.chunks); n > 0 {
		tail := ta.chunks[n-1]
		tail.written = 0
		ta.chunks = []*typedchunk[T]{tail}
	}
}

//---- statistics

// Info implement api.Mallocer{} interface.
func (ta *TypedArena[T]) Info() (capacity, heap, alloc, overhead int64) {
	self := int64(unsafe.Sizeof(*ta))
	for _, ch := range ta.chunks {
		capacity += int64(len(ch.slots)) * ta.tsize
		alloc += ch.written * ta.tsize
		overhead += int64(unsafe.Sizeof(*ch))
	}
	return capacity, capacity, alloc, overhead + self
}

// Utilization implement api.Mallocer{} interface.
func (ta *TypedArena[T]) Utilization() float64 {
	capacity, _, alloc, _ := ta.Info()
	if capacity == 0 {
		return 0
	}
	return float64(alloc) / float64(capacity)
}

// Stats implement api.Mallocer{} interface. Keys: "n.allocs",
// "n.chunks", "capacity", "heap", "alloc", "overhead".
func (ta *TypedArena[T]) Stats() map[string]interface{} {
	capacity, heap, alloc, overhead := ta.Info()
	return map[string]interface{}{
		"n.allocs": ta.nallocs,
		"n.chunks": int64(len(ta.chunks)),
		"capacity": capacity,
		"heap":     heap,
		"alloc":    alloc,
		"overhead": overhead,
	}
}

//---- local functions

func (ta *TypedArena[T]) tail() *typedchunk[T] {
	if n := len(ta.chunks); n > 0 {
		return ta.chunks[n-1]
	}
	return nil
}

// grow append a chunk with at least `need` free slots. Normal chunks
// double until the configured clamp, an outsized run gets an exactly
// sized chunk that does not disturb the sizing of future chunks.
func (ta *TypedArena[T]) grow(need int64) *typedchunk[T] {
	if len(ta.chunks) > 0 {
		if newcap := ta.curcap * 2; newcap > ta.maxelems {
			ta.curcap = ta.maxelems
		} else {
			ta.curcap = newcap
		}
	}
	size := ta.curcap
	if need > size {
		size = need
	}
	ch := &typedchunk[T]{slots: make([]T, size)}
	ta.chunks = append(ta.chunks, ch)
	return ch
}

// finalize walk every chunk oldest to newest and run the cleanup
// routine on exactly the written slots of each. Zero sized shapes run
// it once per counted value against the sentinel.
func (ta *TypedArena[T]) finalize() {
	if ta.tsize == 0 {
		for i := int64(0); i < ta.zcount; i++ {
			any(&ta.zval).(api.Finalizer).Finalize()
		}
		return
	}
	for _, ch := range ta.chunks {
		for i := int64(0); i < ch.written; i++ {
			any(&ch.slots[i]).(api.Finalizer).Finalize()
		}
	}
}
