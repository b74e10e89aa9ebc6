package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeIndex_DirectAndTransitive(t *testing.T) {
	idx := NewTypeIndex()
	a := TypeDescriptor{ClassName: "A"}
	b := TypeDescriptor{ClassName: "B"}
	c := TypeDescriptor{ClassName: "C"}
	iface := TypeDescriptor{ClassName: "Runnable"}

	idx.Add(b, a, Extends)
	idx.Add(c, b, Extends)
	idx.Add(c, iface, Implements)

	assert.ElementsMatch(t, []string{"A"}, classNames(idx.Supertypes(b)))
	assert.ElementsMatch(t, []string{"B", "Runnable"}, classNames(idx.Supertypes(c)))
	assert.ElementsMatch(t, []string{"B", "C"}, classNames(idx.Subtypes(a)))

	assert.ElementsMatch(t, []string{"A", "B", "Runnable"}, classNames(idx.TransitiveSupertypes(c)))
	assert.ElementsMatch(t, []string{"B", "C"}, classNames(idx.TransitiveSubtypes(a)))
}

func TestTypeIndex_UnknownTypeHasNoRelations(t *testing.T) {
	idx := NewTypeIndex()
	assert.Empty(t, idx.Supertypes(TypeDescriptor{ClassName: "Ghost"}))
	assert.Empty(t, idx.TransitiveSubtypes(TypeDescriptor{ClassName: "Ghost"}))
}

func classNames(ts []TypeDescriptor) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.ClassName
	}
	return out
}
