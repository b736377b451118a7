// Package goarena implement region based memory management and
// necessary tools and libraries.
//
// api:
//
// Interface specification to access goarena allocators, along with
// the Finalizer capability that decides which shapes need a cleanup
// walk on teardown.
//
// arena:
//
// TypedArena, RawArena and the aggregate Arena. Chunked bump
// allocation with doubling growth, whole arena teardown, and a
// cleanup walk for shapes that need one.
//
// lib:
//
// Convinience functions that can be used by other packages. Package
// shall not import packages other than golang's standard packages.
package goarena
