// Functions and methods are not thread safe.

package arena

import "fmt"
import "reflect"

import "github.com/bnclabs/goarena/api"
import "github.com/bnclabs/goarena/lib"
import s "github.com/prataprc/gosettings"
import humanize "github.com/dustin/go-humanize"

// Arena composes one TypedArena per registered shape with a single
// shared RawArena and routes every allocation by shape: shapes
// carrying the api.Finalizer capability go to their own TypedArena,
// everything else, raw bytes and strings included, goes to the
// RawArena. The route for a shape is decided by its capability, once
// per generic instantiation, never by inspecting values.
type Arena struct {
	name      string
	raw       *RawArena
	typed     map[reflect.Type]api.Mallocer
	logprefix string
	setts     s.Settings
}

// NewArena create an aggregate arena. Settings refer
// Defaultsettings() and are shared by every sub-arena.
func NewArena(name string, setts s.Settings) *Arena {
	setts = make(s.Settings).Mixin(Defaultsettings(), setts)
	validatesettings(setts)
	a := &Arena{
		name:      name,
		raw:       NewRawArena(name, setts),
		typed:     make(map[reflect.Type]api.Mallocer),
		logprefix: fmt.Sprintf("ARNA [%s]", name),
		setts:     setts,
	}
	debugf("%v created\n", a.logprefix)
	return a
}

// Register shape T with the arena. Shapes carrying the api.Finalizer
// capability must be registered before their first allocation,
// allocating an unregistered one panics. Registering a shape that
// needs no cleanup is allowed and harmless, its typed arena just
// stays empty because dispatch prefers the raw arena.
func Register[T any](a *Arena) {
	if a.typed == nil {
		panicerr("%v arena released", a.logprefix)
	}
	t := reflect.TypeOf((*T)(nil)).Elem()
	if _, ok := a.typed[t]; ok {
		panicerr("%v shape %v already registered", a.logprefix, t)
	}
	a.typed[t] = NewTypedArena[T](a.name+"/"+t.String(), a.setts)
}

//---- operations

// Alloc copy `value` into `a`, dispatching on the shape's cleanup
// capability, and return a reference valid until the arena is
// released.
func Alloc[T any](a *Arena, value T) *T {
	if a.typed == nil {
		panicerr("%v arena released", a.logprefix)
	}
	if needsfinal[T]() {
		return typedfor[T](a).Alloc(value)
	}
	return Raw(a.raw, value)
}

// Allocslice copy `values` into one contiguous run inside `a`,
// dispatching on the shape's cleanup capability.
func Allocslice[T any](a *Arena, values []T) []T {
	if a.typed == nil {
		panicerr("%v arena released", a.logprefix)
	}
	if needsfinal[T]() {
		return typedfor[T](a).Allocslice(values)
	}
	return Rawslice(a.raw, values)
}

// Allocfromiter drain a finite, non restartable producer into one
// contiguous run inside `a`, dispatching on the shape's cleanup
// capability.
func Allocfromiter[T any](a *Arena, next func() (T, bool)) []T {
	if a.typed == nil {
		panicerr("%v arena released", a.logprefix)
	}
	if needsfinal[T]() {
		return typedfor[T](a).Allocfromiter(next)
	}
	var staged []T
	for {
		value, ok := next()
		if ok == false {
			break
		}
		staged = append(staged, value)
	}
	return Rawslice(a.raw, staged)
}

// Allocbytes refer RawArena.Allocbytes.
func (a *Arena) Allocbytes(size, align int64) []byte {
	if a.typed == nil {
		panicerr("%v arena released", a.logprefix)
	}
	return a.raw.Allocbytes(size, align)
}

// Allocstring refer RawArena.Allocstring.
func (a *Arena) Allocstring(str string) string {
	if a.typed == nil {
		panicerr("%v arena released", a.logprefix)
	}
	return a.raw.Allocstring(str)
}

// Release implement api.Mallocer{} interface. Typed sub-arenas run
// their Finalize() walks first, the raw arena then drops its memory
// without inspection.
func (a *Arena) Release() {
	if a.typed == nil {
		panicerr("%v arena released", a.logprefix)
	}
	for _, ta := range a.typed {
		ta.Release()
	}
	a.raw.Release()
	a.typed, a.raw = nil, nil
	infof("%v released\n", a.logprefix)
}

//---- statistics

// Info implement api.Mallocer{} interface, aggregated across every
// sub-arena.
func (a *Arena) Info() (capacity, heap, alloc, overhead int64) {
	if a.typed == nil {
		return 0, 0, 0, 0
	}
	capacity, heap, alloc, overhead = a.raw.Info()
	for _, ta := range a.typed {
		c, h, al, o := ta.Info()
		capacity, heap, alloc, overhead = capacity+c, heap+h, alloc+al, overhead+o
	}
	return
}

// Utilization implement api.Mallocer{} interface.
func (a *Arena) Utilization() float64 {
	capacity, _, alloc, _ := a.Info()
	if capacity == 0 {
		return 0
	}
	return float64(alloc) / float64(capacity)
}

// Stats implement api.Mallocer{} interface. The "raw" key carries the
// RawArena map, every registered shape contributes a key of its own.
func (a *Arena) Stats() map[string]interface{} {
	if a.typed == nil {
		return map[string]interface{}{}
	}
	stats := map[string]interface{}{"raw": a.raw.Stats()}
	for t, ta := range a.typed {
		stats[t.String()] = ta.Stats()
	}
	return stats
}

// Logstats print arena accounting through the configured logger.
func (a *Arena) Logstats() {
	capacity, heap, alloc, _ := a.Info()
	infof("%v capacity:%v heap:%v alloc:%v\n", a.logprefix,
		humanize.Bytes(uint64(capacity)), humanize.Bytes(uint64(heap)),
		humanize.Bytes(uint64(alloc)))
	debugf("%v stats %v\n", a.logprefix, lib.Prettystats(a.Stats(), false))
}

//---- local functions

// needsfinal is the static cleanup predicate for shape T.
func needsfinal[T any]() bool {
	_, ok := any((*T)(nil)).(api.Finalizer)
	return ok
}

func typedfor[T any](a *Arena) *TypedArena[T] {
	t := reflect.TypeOf((*T)(nil)).Elem()
	ta, ok := a.typed[t]
	if ok == false {
		panicerr("%v shape %v not registered", a.logprefix, t)
	}
	return ta.(*TypedArena[T])
}

var _ api.Mallocer = &Arena{}
var _ api.Mallocer = &RawArena{}
var _ api.Mallocer = &TypedArena[int64]{}
