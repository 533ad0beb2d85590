// Package mapping resolves logical search fields to physical columns.
//
// A Registry is a static table of field descriptors for one entity group
// (event fields, internal attendee fields, ...). A Resolver consults an
// ordered set of registries and returns one Mapping per registry that knows
// the field, so a field stored in two disjoint tables resolves to two
// mappings and the compiler renders an OR over both.
//
// Registries and codecs are immutable after construction and safe for
// unsynchronized concurrent reads.
package mapping
