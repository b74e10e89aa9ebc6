package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/vmgraph/graph"
)

func strPtr(s string) *string { return &s }

func TestMatch(t *testing.T) {
	getOption := graph.MethodDescriptor{
		DeclaringClass: graph.TypeDescriptor{ClassName: "com.acme.Client"},
		Name:           "getOption",
		ParameterTypes: []graph.TypeDescriptor{{ClassName: "int"}},
		ReturnType:     graph.TypeDescriptor{ClassName: "java.lang.String"},
	}

	tests := []struct {
		description string
		pattern     graph.MethodPattern
		expected    bool
	}{
		{"exact class and name", graph.MethodPattern{Class: strPtr("com.acme.Client"), Name: strPtr("getOption")}, true},
		{"wrong exact name", graph.MethodPattern{Name: strPtr("setOption")}, false},
		{"prefix wildcard class", graph.MethodPattern{Class: strPtr("com.acme.*")}, true},
		{"prefix wildcard name", graph.MethodPattern{Name: strPtr("get*")}, true},
		{"regex name", graph.MethodPattern{Name: strPtr("get.*"), UseRegex: true}, true},
		{"regex mismatch", graph.MethodPattern{Name: strPtr("set.*"), UseRegex: true}, false},
		{"matching parameter types", graph.MethodPattern{ParameterTypes: []string{"int"}}, true},
		{"wrong parameter arity", graph.MethodPattern{ParameterTypes: []string{"int", "int"}}, false},
		{"matching return type", graph.MethodPattern{ReturnType: strPtr("java.lang.String")}, true},
		{"wrong return type", graph.MethodPattern{ReturnType: strPtr("void")}, false},
		{"empty pattern matches anything", graph.MethodPattern{}, true},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, Match(getOption, tc.pattern))
		})
	}
}

func TestMatchType(t *testing.T) {
	assert.True(t, MatchType("com.acme.Widget", "com.acme.Widget"))
	assert.True(t, MatchType("com.acme.Widget", "com.acme.*"))
	assert.False(t, MatchType("com.acme.Widget", "com.other.*"))
	assert.False(t, MatchType("com.acme.Widget", "com.acme.Gadget"))
}
