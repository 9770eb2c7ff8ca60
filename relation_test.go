package restfu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRel_Normalization(t *testing.T) {
	assert.Equal(t, Rel("next"), Rel("Next"))
	assert.Equal(t, Rel("next"), Rel(" NEXT "))
	assert.NotEqual(t, Rel("next"), Rel("prev"))
	assert.Equal(t, "next", Rel("Next").String())

	// Normalized relations hash identically, so they interchange as map keys.
	seen := map[LinkRelation]int{}
	seen[Rel("Self")]++
	seen[Rel("self")]++
	assert.Equal(t, 2, seen[Rel("SELF")])
}
