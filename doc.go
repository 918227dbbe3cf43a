// Package ktv implements a schema-driven binary serialization engine: a
// compact binary schema descriptor (see package schema) describes a set of
// named record types, and this package builds in-memory record instances
// from that schema, mutates their field values through typed accessors,
// and converts them to and from a positional big-endian wire format and an
// equivalent JSON representation.
//
// The engine is synchronous and single-threaded by design (no goroutines,
// no channels, no locking): a *Schema is safe for concurrent read-only use
// once loaded, but a *Record is a mutable owned tree and concurrent
// mutation of one Record from multiple goroutines is undefined.
package ktv
