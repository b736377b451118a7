package arena

import "fmt"
import "strings"
import "testing"

import s "github.com/prataprc/gosettings"

func TestArenaDispatch(t *testing.T) {
	closed := int64(0)
	a := NewArena("dispatch", nil)
	Register[resource](a)
	for i := 0; i < 10; i++ {
		ptr := Alloc(a, resource{id: int64(i), closed: &closed})
		if x, y := int64(i), ptr.id; x != y {
			t.Errorf("expected %v, got %v", x, y)
		}
	}
	// shapes without the cleanup capability route to the raw arena.
	for i := 0; i < 10; i++ {
		ptr := Alloc(a, node{key: int64(i), value: int64(i)})
		if x, y := int64(i), ptr.key; x != y {
			t.Errorf("expected %v, got %v", x, y)
		}
	}
	if x, y := int64(10), a.raw.small.nallocs+a.raw.main.nallocs; x != y {
		t.Errorf("expected %v raw allocations, got %v", x, y)
	}
	a.Release()
	if x, y := int64(10), closed; x != y {
		t.Errorf("expected %v finalized, got %v", x, y)
	}
}

func TestArenaUnregistered(t *testing.T) {
	a := NewArena("unregistered", nil)
	closed := int64(0)
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		Alloc(a, resource{id: 1, closed: &closed})
	}()
	a.Release()
}

func TestArenaDuplicate(t *testing.T) {
	a := NewArena("duplicate", nil)
	Register[resource](a)
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		Register[resource](a)
	}()
	a.Release()
}

func TestArenaNocleanup(t *testing.T) {
	a := NewArena("nocleanup", nil)
	Register[node](a) // allowed, though dispatch never uses it
	for i := 0; i < 100; i++ {
		Alloc(a, node{key: int64(i)})
	}
	if x, y := int64(0), typedfor[node](a).nallocs; x != y {
		t.Errorf("expected %v typed allocations, got %v", x, y)
	}
	a.Release()
}

func TestArenaAllocslice(t *testing.T) {
	closed := int64(0)
	a := NewArena("allocslice", nil)
	Register[resource](a)
	values := make([]resource, 7)
	for i := range values {
		values[i] = resource{id: int64(i), closed: &closed}
	}
	run := Allocslice(a, values)
	if x, y := 7, len(run); x != y {
		t.Fatalf("expected %v items, got %v", x, y)
	}
	nums := Allocslice(a, []int64{1, 2, 3})
	if x, y := 3, len(nums); x != y {
		t.Fatalf("expected %v items, got %v", x, y)
	}
	a.Release()
	if x, y := int64(7), closed; x != y {
		t.Errorf("expected %v finalized, got %v", x, y)
	}
}

func TestArenaAllocfromiter(t *testing.T) {
	closed := int64(0)
	a := NewArena("fromiter", nil)
	Register[resource](a)

	i := int64(0)
	next := func() (resource, bool) {
		if i < 100 {
			i++
			return resource{id: i, closed: &closed}, true
		}
		return resource{}, false
	}
	run := Allocfromiter(a, next)
	if x, y := 100, len(run); x != y {
		t.Fatalf("expected %v items, got %v", x, y)
	}

	j := int64(0)
	numbers := func() (int64, bool) {
		if j < 50 {
			j++
			return j * 7, true
		}
		return 0, false
	}
	nums := Allocfromiter(a, numbers)
	if x, y := 50, len(nums); x != y {
		t.Fatalf("expected %v items, got %v", x, y)
	}
	for k, v := range nums {
		if x := int64(k+1) * 7; x != v {
			t.Errorf("expected %v, got %v", x, v)
		}
	}
	a.Release()
	if x, y := int64(100), closed; x != y {
		t.Errorf("expected %v finalized, got %v", x, y)
	}
}

func TestArenaBytes(t *testing.T) {
	a := NewArena("bytes", nil)
	block := a.Allocbytes(1000, 64)
	if x, y := 1000, len(block); x != y {
		t.Errorf("expected %v bytes, got %v", x, y)
	}
	if str := a.Allocstring("hello world"); str != "hello world" {
		t.Errorf("expected %q, got %q", "hello world", str)
	}
	a.Release()
}

func TestArenaStats(t *testing.T) {
	closed := int64(0)
	setts := s.Settings{"metrics": true}
	a := NewArena("stats", setts)
	Register[resource](a)
	for i := 0; i < 100; i++ {
		Alloc(a, resource{id: int64(i), closed: &closed})
		Alloc(a, node{key: int64(i)})
	}
	capacity, heap, alloc, overhead := a.Info()
	if capacity != heap {
		t.Errorf("expected %v, got %v", capacity, heap)
	} else if alloc <= 0 || heap < alloc {
		t.Errorf("unexpected alloc %v for heap %v", alloc, heap)
	} else if overhead <= 0 {
		t.Errorf("unexpected overhead %v", overhead)
	}
	if u := a.Utilization(); u <= 0 || u > 1 {
		t.Errorf("unexpected utilization %v", u)
	}
	stats := a.Stats()
	if _, ok := stats["raw"]; ok == false {
		t.Errorf("expected raw stats")
	}
	found := false
	for key := range stats {
		if strings.Contains(key, "resource") {
			found = true
		}
	}
	if found == false {
		t.Errorf("expected resource stats in %v", stats)
	}
	a.Logstats()
	a.Release()
}

func TestArenaReleased(t *testing.T) {
	a := NewArena("released", nil)
	a.Release()
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		Alloc(a, node{key: 1})
	}()
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		Register[node](a)
	}()
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		a.Allocbytes(10, 8)
	}()
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		a.Release()
	}()
	capacity, heap, alloc, overhead := a.Info()
	if capacity != 0 || heap != 0 || alloc != 0 || overhead != 0 {
		t.Errorf("expected zeroed info, got %v %v %v %v",
			capacity, heap, alloc, overhead)
	}
}

func BenchmarkArenaAlloc(b *testing.B) {
	a := NewArena("bench", nil)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Alloc(a, node{key: int64(i), value: int64(i)})
	}
}

func BenchmarkArenaAllocfinal(b *testing.B) {
	closed := int64(0)
	a := NewArena("bench", nil)
	Register[resource](a)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Alloc(a, resource{id: int64(i), closed: &closed})
	}
}

var _ = fmt.Sprintf("dummy")
