package spec

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"
)

//go:embed sectiontable.spec
var defaultResource []byte

var (
	defaultOnce sync.Once
	defaultSpec *Spec
)

// Default returns the specification for the standard 40-byte section table
// entry, parsed from the embedded resource.
//
// The resource is parsed once; subsequent calls return the same instance.
// Default panics if the embedded resource fails to parse, which indicates a
// corrupted build rather than a runtime condition.
func Default() *Spec {
	defaultOnce.Do(func() {
		s, err := Load(bytes.NewReader(defaultResource))
		if err != nil {
			panic(fmt.Sprintf("embedded section table specification is invalid: %v", err))
		}
		defaultSpec = s
	})

	return defaultSpec
}
