package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/vmgraph/graph"
	"github.com/viant/vmgraph/slicer"
)

func mustAdd(t *testing.T, s *graph.Store, n graph.Node) {
	t.Helper()
	require.NoError(t, s.AddNode(n))
}

func mustEdge(t *testing.T, s *graph.Store, e graph.Edge) {
	t.Helper()
	require.NoError(t, s.AddEdge(e))
}

func strPtr(s string) *string { return &s }

func TestFindArgumentConstants_ConditionalBranches(t *testing.T) {
	// Scenario 5: if (flag) client.getOption(1001); else
	// client.getOption(1002); -- both constants surface at distinct call
	// sites.
	s := graph.NewStore()
	getOption := graph.MethodDescriptor{DeclaringClass: graph.TypeDescriptor{ClassName: "Client"}, Name: "getOption", ParameterTypes: []graph.TypeDescriptor{{ClassName: "int"}}}

	c1 := &graph.Constant{NID: 1, ConstKind: graph.ConstInt, IntVal: 1001}
	mustAdd(t, s, c1)
	cs1 := &graph.CallSite{NID: 2, Callee: getOption, ArgumentNodes: []graph.NodeID{c1.NID}}
	mustAdd(t, s, cs1)
	mustEdge(t, s, &graph.DataFlowEdge{FromID: c1.NID, ToID: cs1.NID, FlowKind: graph.ParameterPass})

	c2 := &graph.Constant{NID: 3, ConstKind: graph.ConstInt, IntVal: 1002}
	mustAdd(t, s, c2)
	cs2 := &graph.CallSite{NID: 4, Callee: getOption, ArgumentNodes: []graph.NodeID{c2.NID}}
	mustAdd(t, s, cs2)
	mustEdge(t, s, &graph.DataFlowEdge{FromID: c2.NID, ToID: cs2.NID, FlowKind: graph.ParameterPass})

	slc := slicer.New(s)
	results := FindArgumentConstants(s, slc, graph.MethodPattern{Class: strPtr("Client"), Name: strPtr("getOption")}, slicer.DefaultAnalysisConfig())

	require.Len(t, results, 2)
	values := []interface{}{results[0].Value, results[1].Value}
	assert.ElementsMatch(t, []interface{}{int32(1001), int32(1002)}, values)
}

func TestFindActualReturnTypes_RecoversPreciseTypeBehindObject(t *testing.T) {
	m := graph.MethodDescriptor{
		DeclaringClass: graph.TypeDescriptor{ClassName: "Factory"},
		Name:           "make",
		ReturnType:     graph.TypeDescriptor{ClassName: "java.lang.Object"},
	}
	s := graph.NewStore()
	ret := &graph.Return{NID: 1, OwningMethod: m}
	mustAdd(t, s, ret)

	local := &graph.Local{NID: 2, DeclaredType: graph.TypeDescriptor{ClassName: "com.acme.Widget"}, OwningMethod: m}
	mustAdd(t, s, local)
	mustEdge(t, s, &graph.DataFlowEdge{FromID: local.NID, ToID: ret.NID, FlowKind: graph.ReturnValue})

	out := FindActualReturnTypes(s, graph.MethodPattern{Name: strPtr("make")})
	require.Len(t, out, 1)
	assert.Equal(t, "java.lang.Object", out[0].DeclaredType.ClassName)
	require.Len(t, out[0].ActualTypes, 1)
	assert.Equal(t, "com.acme.Widget", out[0].ActualTypes[0].ClassName)
}

func TestFindActualReturnTypes_BoxedConstant(t *testing.T) {
	m := graph.MethodDescriptor{DeclaringClass: graph.TypeDescriptor{ClassName: "Factory"}, Name: "makeInt", ReturnType: graph.TypeDescriptor{ClassName: "java.lang.Object"}}
	s := graph.NewStore()
	ret := &graph.Return{NID: 1, OwningMethod: m}
	mustAdd(t, s, ret)
	c := &graph.Constant{NID: 2, ConstKind: graph.ConstInt, IntVal: 7}
	mustAdd(t, s, c)
	mustEdge(t, s, &graph.DataFlowEdge{FromID: c.NID, ToID: ret.NID, FlowKind: graph.ReturnValue})

	out := FindActualReturnTypes(s, graph.MethodPattern{Name: strPtr("makeInt")})
	require.Len(t, out, 1)
	require.Len(t, out[0].ActualTypes, 1)
	assert.Equal(t, "java.lang.Integer", out[0].ActualTypes[0].ClassName)
}

func TestFindFieldsOfType_MatchesByPrefixAndCompliance(t *testing.T) {
	s := graph.NewStore()
	f1 := &graph.Field{NID: 1, Descriptor: graph.FieldDescriptor{DeclaringClass: graph.TypeDescriptor{ClassName: "com.acme.Dto"}, Name: "widget", Type: graph.TypeDescriptor{ClassName: "com.acme.Widget"}}}
	mustAdd(t, s, f1)
	f2 := &graph.Field{NID: 2, Descriptor: graph.FieldDescriptor{DeclaringClass: graph.TypeDescriptor{ClassName: "com.acme.Dto"}, Name: "name", Type: graph.TypeDescriptor{ClassName: "java.lang.String"}}}
	mustAdd(t, s, f2)

	out := FindFieldsOfType(s, []string{"com.acme.*"}, nil)
	require.Len(t, out, 1)
	assert.Equal(t, "widget", out[0].Field.Name)
	assert.True(t, out[0].Compliant)

	compliance := func(store *graph.Store, field graph.FieldDescriptor) (bool, string) {
		return false, "missing @JsonIgnore"
	}
	out = FindFieldsOfType(s, []string{"com.acme.*"}, compliance)
	require.Len(t, out, 1)
	assert.False(t, out[0].Compliant)
	assert.Equal(t, "missing @JsonIgnore", out[0].Reason)
}
