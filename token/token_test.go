package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind_String(t *testing.T) {
	assert.Equal(t, "Plus", Plus.String())
	assert.Equal(t, "Number", Number.String())
	assert.Contains(t, Kind(999).String(), "Kind(")
}

func TestHasPrecedenceOver(t *testing.T) {
	assert.True(t, New(Times).HasPrecedenceOver(Plus))
	assert.False(t, New(Plus).HasPrecedenceOver(Times))
	assert.True(t, New(Power).HasPrecedenceOver(ImplicitTimes))
}

func TestIs(t *testing.T) {
	tok := New(Number)
	assert.True(t, tok.Is(Number))
	assert.False(t, tok.Is(Identifier))
}

// The Kind declaration order IS the precedence table (spec.md §3): any
// accidental reordering silently changes precedence everywhere, so pin
// down the relative order of the operators this package's callers rely
// on most.
func TestKindOrdering(t *testing.T) {
	assert.Less(t, int(EndOfStream), int(Equal))
	assert.Less(t, int(Equal), int(Store))
	assert.Less(t, int(Comma), int(Plus))
	assert.Less(t, int(Plus), int(Minus))
	assert.Less(t, int(Times), int(Slash))
	assert.Less(t, int(Slash), int(ImplicitTimes))
	assert.Less(t, int(ImplicitTimes), int(Power))
	assert.Less(t, int(Power), int(Bang))
}
