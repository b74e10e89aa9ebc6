package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumTable_SetGet(t *testing.T) {
	tbl := NewEnumTable()
	tbl.Set("com.acme.Exp", "A", []interface{}{int32(1001)})

	args, ok := tbl.Get("com.acme.Exp", "A")
	require.True(t, ok)
	assert.Equal(t, []interface{}{int32(1001)}, args)

	_, ok = tbl.Get("com.acme.Exp", "B")
	assert.False(t, ok)
}

func TestJacksonTable_FieldAndGetter(t *testing.T) {
	tbl := NewJacksonTable()
	tbl.SetField("com.acme.Dto", "count", JacksonInfo{JSONName: "cnt"})
	tbl.SetGetter("com.acme.Dto", "getCount", JacksonInfo{IsIgnored: true})

	info, ok := tbl.Field("com.acme.Dto", "count")
	require.True(t, ok)
	assert.Equal(t, "cnt", info.JSONName)

	info, ok = tbl.Getter("com.acme.Dto", "getCount")
	require.True(t, ok)
	assert.True(t, info.IsIgnored)

	_, ok = tbl.Field("com.acme.Dto", "missing")
	assert.False(t, ok)
}
