package arena

import "github.com/cloudfoundry/gosigar"

import s "github.com/prataprc/gosettings"

// Alignment chunk base addresses and typed slots are at least this
// aligned.
const Alignment = int64(8)

// Minchunksize capacity of the first chunk in a chain. Can be used
// as default for config-parameter `chunksize`.
const Minchunksize = int64(4096)

// Maxchunksize clamp on the doubling growth policy. A single request
// larger than this gets its own exactly sized chunk. Can be used as
// default for config-parameter `chunksize.max`.
const Maxchunksize = int64(2 * 1024 * 1024)

// Maxalignment largest alignment honoured by RawArena.Allocbytes.
const Maxalignment = int64(512)

// Maxarenasize maximum size of a memory arena.
const Maxarenasize = int64(1024 * 1024 * 1024 * 1024) // 1TB

// Defaultsettings for arena instances.
//
// "chunksize" (int64, default: Minchunksize)
//		Capacity, in bytes, of the first chunk allocated by a chain.
//
// "chunksize.max" (int64, default: Maxchunksize)
//		Clamp on chunk doubling, capped to free system memory.
//
// "small.threshold" (int64, default: 128)
//		RawArena requests at or below this size are served from the
//		dedicated small-chunk chain.
//
// "small.chunksize" (int64, default: 4096)
//		Fixed capacity of chunks in the small-chunk chain.
//
// "metrics" (bool, default: false)
//		Track the allocation size histogram, logged on Release.
func Defaultsettings() s.Settings {
	setts := s.Settings{
		"chunksize":       Minchunksize,
		"chunksize.max":   Maxchunksize,
		"small.threshold": int64(128),
		"small.chunksize": int64(4096),
		"metrics":         false,
	}
	if _, _, free := getsysmem(); free > 0 && int64(free) < Maxchunksize {
		setts["chunksize.max"] = int64(free)
	}
	return setts
}

func validatesettings(setts s.Settings) {
	chunksize := setts.Int64("chunksize")
	chunkmax := setts.Int64("chunksize.max")
	threshold := setts.Int64("small.threshold")
	smallsize := setts.Int64("small.chunksize")
	if chunksize <= 0 {
		panicerr("settings chunksize (%v) should be positive", chunksize)
	} else if chunkmax < chunksize {
		panicerr("settings chunksize.max (%v) < chunksize (%v)",
			chunkmax, chunksize)
	} else if chunkmax > Maxarenasize {
		panicerr("settings chunksize.max (%v) exceeds %v",
			chunkmax, Maxarenasize)
	} else if threshold < 0 {
		panicerr("settings small.threshold (%v) should not be negative",
			threshold)
	} else if smallsize <= 0 {
		panicerr("settings small.chunksize (%v) should be positive",
			smallsize)
	} else if threshold > smallsize {
		panicerr("settings small.threshold (%v) > small.chunksize (%v)",
			threshold, smallsize)
	}
}

func getsysmem() (total, used, free uint64) {
	mem := sigar.Mem{}
	mem.Get()
	return mem.Total, mem.Used, mem.Free
}
