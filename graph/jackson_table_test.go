package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJacksonTable_Field_RoundTrip(t *testing.T) {
	tbl := NewJacksonTable()
	_, ok := tbl.Field("com.acme.Dto", "secret")
	assert.False(t, ok)

	tbl.SetField("com.acme.Dto", "secret", JacksonInfo{IsIgnored: true})
	tbl.SetField("com.acme.Dto", "name", JacksonInfo{JSONName: "display_name"})

	info, ok := tbl.Field("com.acme.Dto", "secret")
	assert.True(t, ok)
	assert.True(t, info.IsIgnored)
	assert.Empty(t, info.JSONName)

	info, ok = tbl.Field("com.acme.Dto", "name")
	assert.True(t, ok)
	assert.False(t, info.IsIgnored)
	assert.Equal(t, "display_name", info.JSONName)
}

func TestJacksonTable_Getter_RoundTrip(t *testing.T) {
	tbl := NewJacksonTable()
	_, ok := tbl.Getter("com.acme.Dto", "getSecret")
	assert.False(t, ok)

	tbl.SetGetter("com.acme.Dto", "getSecret", JacksonInfo{IsIgnored: true})
	info, ok := tbl.Getter("com.acme.Dto", "getSecret")
	assert.True(t, ok)
	assert.True(t, info.IsIgnored)
}

// TestJacksonTable_FieldAndGetterKeysAreIndependent verifies a field and a
// getter of the same name on the same class are recorded separately -- the
// two maps never collide despite sharing the "class#member" key shape.
func TestJacksonTable_FieldAndGetterKeysAreIndependent(t *testing.T) {
	tbl := NewJacksonTable()
	tbl.SetField("com.acme.Dto", "value", JacksonInfo{JSONName: "field_name"})
	tbl.SetGetter("com.acme.Dto", "value", JacksonInfo{JSONName: "getter_name"})

	field, ok := tbl.Field("com.acme.Dto", "value")
	assert.True(t, ok)
	assert.Equal(t, "field_name", field.JSONName)

	getter, ok := tbl.Getter("com.acme.Dto", "value")
	assert.True(t, ok)
	assert.Equal(t, "getter_name", getter.JSONName)
}

// TestJacksonTable_DifferentClassesDoNotCollide verifies the "class#member"
// key distinguishes same-named members across distinct declaring classes.
func TestJacksonTable_DifferentClassesDoNotCollide(t *testing.T) {
	tbl := NewJacksonTable()
	tbl.SetField("com.acme.Dto", "id", JacksonInfo{IsIgnored: true})
	tbl.SetField("com.acme.Other", "id", JacksonInfo{IsIgnored: false})

	a, ok := tbl.Field("com.acme.Dto", "id")
	assert.True(t, ok)
	assert.True(t, a.IsIgnored)

	b, ok := tbl.Field("com.acme.Other", "id")
	assert.True(t, ok)
	assert.False(t, b.IsIgnored)
}
