package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMethodIndex_AddAndLookup(t *testing.T) {
	idx := NewMethodIndex()
	desc := MethodDescriptor{DeclaringClass: TypeDescriptor{ClassName: "Client"}, Name: "getOption", ParameterTypes: []TypeDescriptor{{ClassName: "int"}}}
	idx.AddMethod(desc)

	methods := idx.MethodsNamed("getOption")
	require.Len(t, methods, 1)
	assert.Equal(t, desc.Signature(), methods[0].Signature())

	assert.Empty(t, idx.MethodsNamed("missing"))
}

func TestMethodIndex_AttachAnnotations(t *testing.T) {
	idx := NewMethodIndex()
	desc := MethodDescriptor{DeclaringClass: TypeDescriptor{ClassName: "Client"}, Name: "getOption"}
	idx.AddMethod(desc)

	anns := []Annotation{{ClassName: "Cacheable"}}
	idx.AttachAnnotations(desc.Signature(), anns)

	methods := idx.Methods()
	require.Len(t, methods, 1)
	assert.Equal(t, anns, methods[0].Annotations)

	// no-op for an unregistered signature, must not panic.
	idx.AttachAnnotations("Unknown.missing()", anns)
}

func TestMethodIndex_CallSitesForCallee(t *testing.T) {
	idx := NewMethodIndex()
	callee := MethodDescriptor{DeclaringClass: TypeDescriptor{ClassName: "Client"}, Name: "getOption"}
	cs1 := &CallSite{NID: 1, Callee: callee}
	cs2 := &CallSite{NID: 2, Callee: MethodDescriptor{DeclaringClass: TypeDescriptor{ClassName: "Other"}, Name: "m"}}
	idx.AddCallSite(cs1)
	idx.AddCallSite(cs2)

	sites := idx.CallSitesForCallee(callee.Signature())
	require.Len(t, sites, 1)
	assert.Same(t, cs1, sites[0])

	assert.Len(t, idx.CallSites(), 2)
}
