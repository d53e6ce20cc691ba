package flagdict

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"
)

//go:embed sectioncharacteristics.flags
var defaultResource []byte

var (
	defaultOnce sync.Once
	defaultDict *Dict
)

// Default returns the section characteristics dictionary parsed from the
// embedded resource.
//
// The resource is parsed once; subsequent calls return the same instance.
// Default panics if the embedded resource fails to parse, which indicates a
// corrupted build rather than a runtime condition.
func Default() *Dict {
	defaultOnce.Do(func() {
		d, err := Load(bytes.NewReader(defaultResource))
		if err != nil {
			panic(fmt.Sprintf("embedded section characteristics dictionary is invalid: %v", err))
		}
		defaultDict = d
	})

	return defaultDict
}
