// Package arena supplies region based memory management for
// algorithms that allocate many values and release them together,
// with a limited scope:
//
//   - Types and Functions exported by this package are not thread
//     safe. An arena has a single owner, external synchronization is
//     the owner's business.
//   - Memory is allocated from the runtime in chunks, starting small
//     and doubling until a configured clamp. A chunk is given back
//     only when the whole arena is Released.
//   - There is no per-value free and no reuse of space inside a live
//     arena. The only release point is whole-arena Release(), which
//     for typed arenas also runs the Finalize() walk.
//   - Once allocated, values never move. References stay valid, and
//     their backing bytes untouched, until the owning arena is
//     released.
//
// Three arena kinds are supplied. TypedArena packs values of exactly
// one shape and guarantees the Finalize() routine of every live value
// runs exactly once on teardown. RawArena hands out raw byte ranges
// of caller specified size and alignment and never inspects the
// contents again, which is also what makes it the only legal home for
// cyclic or mutually referring values. Arena composes one TypedArena
// per registered shape with a shared RawArena and routes every
// allocation by the shape's cleanup capability.
package arena
