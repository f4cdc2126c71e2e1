// Package schema provides the immutable value types describing the two sides
// of a mapping run: a source table and a target platform entity.
//
// Key types:
//   - Column: one attribute with its declared type, role flags and, for
//     target-side columns, a system-field Classification
//   - Schema: a named, ordered, case-insensitively unique collection of Columns
//   - Category: the closed system-field taxonomy
//
// Schemas are built once by ingestion (see Parse and LoadFile) and never
// mutated afterwards; every accessor hands out copies.
package schema
