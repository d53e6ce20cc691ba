// Package flagdict resolves bitmask values into human-readable flag names.
//
// A dictionary maps single-bit masks to names and descriptions. It is a pure
// lookup table consumed by the renderer for the characteristics field; it
// performs no decoding of its own. The default dictionary for section
// characteristics ships with the package:
//
//	flags := flagdict.Default().Resolve(0x60000020)
//	// IMAGE_SCN_CNT_CODE, IMAGE_SCN_MEM_EXECUTE, IMAGE_SCN_MEM_READ
package flagdict

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arloliu/sectable/errs"
)

// Flag is one named bit of a bitmask field.
type Flag struct {
	// Mask is the single-bit value identifying the flag.
	Mask uint64
	// Name is the short identifier, e.g. IMAGE_SCN_MEM_READ.
	Name string
	// Description is the long-form explanation of the flag.
	Description string
}

// Dict is an immutable, ordered flag dictionary.
//
// The zero value is usable and resolves nothing; obtain populated instances
// from Load or Default. A Dict is safe for concurrent use once created.
type Dict struct {
	flags []Flag
}

// Load parses a flag dictionary resource from r.
//
// Blank lines and lines starting with '#' are ignored. Every other line must
// hold exactly three semicolon-separated parts: mask;name;description, where
// mask is a hexadecimal value (0x prefix optional) with exactly one bit set.
// Flag order follows line order.
//
// Returns:
//   - *Dict: Parsed dictionary
//   - error: Read error, or an error wrapping errs.ErrFlagDictFormat with the
//     offending line number
func Load(r io.Reader) (*Dict, error) {
	d := &Dict{}

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		flag, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %s", errs.ErrFlagDictFormat, lineNum, err)
		}

		d.flags = append(d.flags, flag)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read flag dictionary: %w", err)
	}

	return d, nil
}

func parseLine(line string) (Flag, error) {
	parts := strings.Split(line, ";")
	if len(parts) != 3 {
		return Flag{}, fmt.Errorf("expected mask;name;description, got %d parts", len(parts))
	}

	maskStr := strings.TrimPrefix(strings.TrimSpace(parts[0]), "0x")
	mask, err := strconv.ParseUint(maskStr, 16, 64)
	if err != nil {
		return Flag{}, fmt.Errorf("invalid mask %q", parts[0])
	}
	if mask == 0 || mask&(mask-1) != 0 {
		return Flag{}, fmt.Errorf("mask 0x%x is not a single bit", mask)
	}

	name := strings.TrimSpace(parts[1])
	if name == "" {
		return Flag{}, fmt.Errorf("empty flag name")
	}

	return Flag{Mask: mask, Name: name, Description: strings.TrimSpace(parts[2])}, nil
}

// Resolve returns the flags whose mask bit is set in value, in dictionary
// order. Bits with no dictionary entry are ignored.
func (d *Dict) Resolve(value uint64) []Flag {
	var matched []Flag
	for _, f := range d.flags {
		if value&f.Mask != 0 {
			matched = append(matched, f)
		}
	}

	return matched
}

// Flags returns all flags in dictionary order. The returned slice is a copy.
func (d *Dict) Flags() []Flag {
	flags := make([]Flag, len(d.flags))
	copy(flags, d.flags)

	return flags
}

// Len returns the number of flags.
func (d *Dict) Len() int {
	return len(d.flags)
}
