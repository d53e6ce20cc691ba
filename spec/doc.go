// Package spec loads and validates the field-layout specification that drives
// section table record decoding.
//
// A specification is an ordered list of fields, each naming a byte sub-range of
// one fixed-size record together with a display label. Field layout lives in a
// data resource rather than hard-coded struct offsets, so decoding logic never
// changes when the layout description does.
//
// # Resource Format
//
// One field per line, semicolon separated:
//
//	# comment lines and blank lines are ignored
//	key;label;offset;length
//
// The key NAME marks the single string-typed field; every other field is an
// unsigned little-endian integer. The default specification for the 40-byte
// section table record ships with the package:
//
//	s := spec.Default()
//	field, ok := s.Lookup("virtualSize")
//
// # Validation
//
// Load checks syntax only. Validate checks the layout against a concrete
// record size: every field must fit inside the record, fields must not
// overlap, and exactly one string field must exist. The split keeps Load
// reusable for any record size while bounds violations surface at decode time.
package spec
