// Package constants holds the calculator's named physical and
// mathematical constants — phi, c, G, h and friends — as distinct from
// the single-glyph constants (π, e, i) the lexer recognizes directly.
// Grounded on the teacher's constants.go; kept as a package-level table
// loaded from JSON, with a built-in default set so the calculator is
// useful before any constants.json is ever loaded.
package constants

import (
	"encoding/json"
	"fmt"
	"os"

	"Axion/store"
)

// Table holds every currently known named constant.
var Table map[string]float64

// defaults seeds Table before any file is loaded: the physical
// constants the teacher's cmd help text already advertised (phi, c,
// G, h) but never actually wired into evaluation.
var defaults = map[string]float64{
	"phi": 1.618033988749895,
	"c":   299792458,
	"G":   6.6743e-11,
	"h":   6.62607015e-34,
}

func init() {
	Table = make(map[string]float64, len(defaults))
	for name, value := range defaults {
		Table[name] = value
	}
}

// Load merges file's JSON object of name→value pairs into Table,
// overriding any default or previously loaded value with the same
// name. A missing or malformed file is returned as an error, but
// Table keeps whatever it already held (the built-in defaults at
// minimum).
func Load(file string) error {
	f, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read constants file: %w", err)
	}
	var loaded map[string]float64
	if err := json.Unmarshal(f, &loaded); err != nil {
		return fmt.Errorf("failed to parse constants: %w", err)
	}
	for name, value := range loaded {
		Table[name] = value
	}
	return nil
}

// Get looks up a named constant.
func Get(name string) (float64, bool) {
	val, ok := Table[name]
	return val, ok
}

// SeedInto binds every known constant into st as a symbol, so
// expressions can reference phi, c, G, h, … the same way they
// reference any other variable.
func SeedInto(st *store.Store) {
	for name, value := range Table {
		st.SetSymbol(name, value)
	}
}
