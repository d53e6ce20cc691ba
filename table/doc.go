// Package table decodes and queries the section table of an executable
// binary.
//
// The section table is a contiguous array of fixed-size 40-byte records, one
// per section, holding the section's name, memory layout, file layout, and
// characteristics bitmask. Decoding is driven by a field-layout specification
// (see the spec package) instead of hard-coded struct offsets.
//
// # Lifecycle
//
// A Table moves through two phases. Construction validates the buffer length
// against the declared entry count and clones the buffer; Decode populates
// the ordered header sequence:
//
//	t, err := table.New(raw, entryCount, tableOffset)
//	if err != nil {
//	    return err
//	}
//	if err := t.Decode(); err != nil {
//	    return err
//	}
//
//	header, err := t.HeaderNamed(".text")
//
// Queries issued before a successful Decode fail with errs.ErrNotDecoded. A
// decode failure is terminal for the instance: no partial header list is ever
// exposed.
//
// # Concurrency
//
// Decode must not be called concurrently on one instance. After a successful
// Decode the table is immutable and safe for unrestricted concurrent reads.
//
// # Rendering
//
// Renderer produces a deterministic text report of every record, resolving
// the characteristics bitmask into flag names through a dictionary (see the
// flagdict package).
package table
