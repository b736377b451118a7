// Functions and methods are not thread safe.

package arena

import "unsafe"

import "github.com/bnclabs/goarena/lib"

// rawchunk is one contiguous memory block owned by a chain, filled by
// bumping a cursor. Alignment is computed against the block's real
// base address, not the cursor value.
type rawchunk struct {
	buf    []byte
	offset int64
}

func newrawchunk(size int64) *rawchunk {
	ch := &rawchunk{buf: make([]byte, size)}
	initblock(ch.buf)
	return ch
}

func (ch *rawchunk) base() int64 {
	return int64(uintptr(unsafe.Pointer(unsafe.SliceData(ch.buf))))
}

// alloc bump allocate `size` bytes at `align` boundary, fails if the
// chunk does not have enough free space left.
func (ch *rawchunk) alloc(size, align int64) ([]byte, bool) {
	base := ch.base()
	off := alignup(base+ch.offset, align) - base
	if off+size > int64(len(ch.buf)) {
		return nil, false
	}
	ch.offset = off + size
	return ch.buf[off:ch.offset:ch.offset], true
}

// bytechain a growing sequence of rawchunks, oldest first. Only the
// tail chunk has free space, every chunk before it is considered full
// up to its cursor from the moment its successor was created.
type bytechain struct {
	name   string
	chunks []*rawchunk
	curcap int64 // capacity for the next normal chunk

	// configuration
	chunksize int64
	chunkmax  int64

	// statistics
	nallocs   int64
	allocated int64
	sizes     *lib.AverageInt64
	histogram *lib.HistogramInt64 // nil unless "metrics" is set
}

func newbytechain(name string, chunksize, chunkmax int64, metrics bool) *bytechain {
	bc := &bytechain{
		name: name, curcap: chunksize,
		chunksize: chunksize, chunkmax: chunkmax,
		sizes: &lib.AverageInt64{},
	}
	if metrics {
		bc.histogram = lib.NewhistorgramInt64(0, chunkmax, 128)
	}
	return bc
}

// shared marker for zero byte requests, never dereferenced.
var zerobytes = make([]byte, 0)

// alloc reserve `size` bytes at `align` boundary from the tail chunk,
// growing the chain when the tail is exhausted. Zero byte requests
// return a valid marker without moving the cursor or growing.
func (bc *bytechain) alloc(size, align int64) []byte {
	if size == 0 {
		return zerobytes
	}
	bc.nallocs++
	bc.allocated += size
	bc.sizes.Add(size)
	if bc.histogram != nil {
		bc.histogram.Add(size)
	}
	if n := len(bc.chunks); n > 0 {
		if block, ok := bc.chunks[n-1].alloc(size, align); ok {
			return block
		}
	}
	ch := bc.grow(size + align - 1)
	block, _ := ch.alloc(size, align)
	return block
}

// grow append a new tail chunk with space for at least `need` bytes.
// Normal chunks double in capacity until chunkmax, a request beyond
// that gets its own exactly sized chunk without disturbing the sizing
// of future chunks.
func (bc *bytechain) grow(need int64) *rawchunk {
	if len(bc.chunks) > 0 {
		if newcap := bc.curcap * 2; newcap > bc.chunkmax {
			bc.curcap = bc.chunkmax
		} else {
			bc.curcap = newcap
		}
	}
	size := bc.curcap
	if need > size {
		size = need // one-off oversized chunk
	}
	ch := newrawchunk(size)
	bc.chunks = append(bc.chunks, ch)
	return ch
}

func (bc *bytechain) info() (capacity, heap, alloc, overhead int64) {
	self := int64(unsafe.Sizeof(*bc))
	slicesz := int64(cap(bc.chunks)) * int64(unsafe.Sizeof(&rawchunk{}))
	for _, ch := range bc.chunks {
		capacity += int64(len(ch.buf))
		alloc += ch.offset
		overhead += int64(unsafe.Sizeof(*ch))
	}
	return capacity, capacity, alloc, overhead + self + slicesz
}

func (bc *bytechain) release() {
	bc.chunks = nil
}

func (bc *bytechain) stats() map[string]interface{} {
	m := map[string]interface{}{
		"n.allocs":  bc.nallocs,
		"allocated": bc.allocated,
		"n.chunks":  int64(len(bc.chunks)),
		"sizes":     bc.sizes.Stats(),
	}
	if bc.histogram != nil {
		m["histogram"] = bc.histogram.Fullstats()
	}
	return m
}
