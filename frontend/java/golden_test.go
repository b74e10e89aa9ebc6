package java

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/viant/vmgraph/config"
	"github.com/viant/vmgraph/graph"
)

// TestIngestSource_GoldenFixture_CrossFileCallSite bundles a small
// multi-file fixture as a txtar archive and ingests every file's source
// into one shared store, the shape a real batch run over a source tree
// takes.
func TestIngestSource_GoldenFixture_CrossFileCallSite(t *testing.T) {
	data, err := os.ReadFile("testdata/golden.txtar")
	require.NoError(t, err)
	archive := txtar.Parse(data)
	require.Len(t, archive.Files, 2)

	store := graph.NewStore()
	f := New(store, config.Default())
	for _, file := range archive.Files {
		require.NoError(t, f.IngestSource(file.Data))
	}

	endpoints := store.EndpointsMatching("", "")
	require.Len(t, endpoints, 1)
	assert.Equal(t, "/widgets/*", endpoints[0].Path)
	assert.Equal(t, "GET", endpoints[0].HTTPMethod)

	sites := callSitesNamed(store, "getOption")
	require.Len(t, sites, 1)
	require.Len(t, sites[0].ArgumentNodes, 1)
	n, ok := store.Node(sites[0].ArgumentNodes[0])
	require.True(t, ok)
	c, ok := n.(*graph.Constant)
	require.True(t, ok)
	assert.EqualValues(t, 1001, c.IntVal)

	methods := store.MethodsMatching(func(m graph.MethodDescriptor) bool { return m.Name == "getOption" })
	require.Len(t, methods, 1)
	assert.Equal(t, "com.acme.api.Service", methods[0].DeclaringClass.ClassName)
}
