// Functions and methods are not thread safe.

package arena

import "fmt"
import "unsafe"

import "github.com/bnclabs/goarena/lib"
import s "github.com/prataprc/gosettings"
import humanize "github.com/dustin/go-humanize"

// RawArena supplies raw byte ranges of caller specified size and
// alignment. Contents are never inspected again, teardown is a pure
// memory release, which is what makes this arena the safe home for
// values that refer to each other cyclically or across arenas.
// Requests at or below the "small.threshold" are served from a
// dedicated chain of fixed size chunks so that a burst of tiny
// requests does not disturb the sizing of the main chain.
type RawArena struct {
	name      string
	main      *bytechain
	small     *bytechain
	threshold int64
	logprefix string
	setts     s.Settings
}

// NewRawArena create an arena for raw byte allocation. Settings refer
// Defaultsettings().
func NewRawArena(name string, setts s.Settings) *RawArena {
	setts = make(s.Settings).Mixin(Defaultsettings(), setts)
	validatesettings(setts)
	ra := &RawArena{
		name:      name,
		threshold: setts.Int64("small.threshold"),
		logprefix: fmt.Sprintf("RAWA [%s]", name),
		setts:     setts,
	}
	chunksize := setts.Int64("chunksize")
	chunkmax := setts.Int64("chunksize.max")
	smallsize := setts.Int64("small.chunksize")
	metrics := setts.Bool("metrics")
	ra.main = newbytechain("main", chunksize, chunkmax, metrics)
	ra.small = newbytechain("small", smallsize, smallsize, metrics)
	debugf("%v created\n", ra.logprefix)
	return ra
}

//---- operations

// Allocbytes return a byte range of exactly `size` bytes aligned to
// `align`, valid until the arena is released. Alignment must be a
// power of 2 and cannot exceed Maxalignment, violations panic rather
// than silently under align.
func (ra *RawArena) Allocbytes(size, align int64) []byte {
	if ra.main == nil {
		panicerr("%v arena released", ra.logprefix)
	} else if ispow2(align) == false {
		panicerr("%v alignment %v is not a power of 2", ra.logprefix, align)
	} else if align > Maxalignment {
		panicerr("%v alignment %v exceeds %v", ra.logprefix, align, Maxalignment)
	}
	if size <= ra.threshold {
		return ra.small.alloc(size, align)
	}
	return ra.main.alloc(size, align)
}

// Allocstring copy `str` into the arena and return it as a string
// valid until the arena is released.
func (ra *RawArena) Allocstring(str string) string {
	if len(str) == 0 {
		return ""
	}
	block := ra.Allocbytes(int64(len(str)), 1)
	copy(block, str)
	return lib.Bytes2str(block)
}

// Raw copy `value` into `ra` and return a reference valid until the
// arena is released. The shape must not hold the only reference to
// garbage collected memory, the collector does not see pointers
// stored inside raw chunks.
func Raw[T any](ra *RawArena, value T) *T {
	var zero T
	size, align := int64(unsafe.Sizeof(zero)), int64(unsafe.Alignof(zero))
	if size == 0 {
		return new(T) // zero sized shapes share the runtime sentinel
	}
	block := ra.Allocbytes(size, align)
	ptr := (*T)(unsafe.Pointer(unsafe.SliceData(block)))
	*ptr = value
	return ptr
}

// Rawslice copy `values` into one contiguous run inside `ra`. Same
// pointer caveat as Raw.
func Rawslice[T any](ra *RawArena, values []T) []T {
	n := int64(len(values))
	if n == 0 {
		return []T{}
	}
	var zero T
	size, align := int64(unsafe.Sizeof(zero)), int64(unsafe.Alignof(zero))
	if size == 0 {
		return make([]T, n)
	}
	block := ra.Allocbytes(size*n, align)
	out := unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(block))), n)
	copy(out, values)
	return out
}

// Release implement api.Mallocer{} interface. Contents are dropped
// without inspection, no cleanup routine ever runs on them.
func (ra *RawArena) Release() {
	if ra.main == nil {
		panicerr("%v arena released", ra.logprefix)
	}
	heap, _, alloc, _ := ra.Info()
	if ra.main.histogram != nil {
		infof("%v sizes %v\n", ra.logprefix, ra.main.histogram.Logstring())
	}
	ra.main.release()
	ra.small.release()
	ra.main, ra.small = nil, nil
	infof("%v released heap:%v alloc:%v\n", ra.logprefix,
		humanize.Bytes(uint64(heap)), humanize.Bytes(uint64(alloc)))
}

//---- statistics

// Info implement api.Mallocer{} interface.
func (ra *RawArena) Info() (capacity, heap, alloc, overhead int64) {
	if ra.main == nil {
		return 0, 0, 0, 0
	}
	c1, h1, a1, o1 := ra.main.info()
	c2, h2, a2, o2 := ra.small.info()
	self := int64(unsafe.Sizeof(*ra))
	return c1 + c2, h1 + h2, a1 + a2, o1 + o2 + self
}

// Utilization implement api.Mallocer{} interface.
func (ra *RawArena) Utilization() float64 {
	capacity, _, alloc, _ := ra.Info()
	if capacity == 0 {
		return 0
	}
	return float64(alloc) / float64(capacity)
}

// Stats implement api.Mallocer{} interface. Keys "main" and "small"
// carry per chain maps with "n.allocs", "allocated", "n.chunks" and
// the "sizes" summary.
func (ra *RawArena) Stats() map[string]interface{} {
	if ra.main == nil {
		return map[string]interface{}{}
	}
	return map[string]interface{}{
		"main":  ra.main.stats(),
		"small": ra.small.stats(),
	}
}
