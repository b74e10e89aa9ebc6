package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombinePaths(t *testing.T) {
	tests := []struct {
		description string
		class       string
		method      string
		expected    string
	}{
		{"both segments", "/api", "users", "/api/users"},
		{"both empty", "", "", "/"},
		{"trailing/leading slashes trimmed", "/api/", "/users", "/api/users"},
		{"empty class", "", "users", "/users"},
		{"empty method", "api", "", "/api"},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, CombinePaths(tc.class, tc.method))
		})
	}
}

func TestNormalizePathVariables(t *testing.T) {
	assert.Equal(t, "/users/*", NormalizePathVariables("/users/{id}"))
	assert.Equal(t, "/a/*/b/*", NormalizePathVariables("/a/{x}/b/{y}"))
	assert.Equal(t, "/plain", NormalizePathVariables("/plain"))
}

func TestMatchPath(t *testing.T) {
	tests := []struct {
		description string
		path        string
		pattern     string
		expected    bool
	}{
		{"single wildcard matches one segment", "/a/b", "/a/*", true},
		{"double wildcard matches one segment", "/a/b", "/a/**", true},
		{"single wildcard does not match two segments", "/a/b/c", "/a/*", false},
		{"double wildcard matches multiple segments", "/a/b/c", "/a/**", true},
		{"double wildcard backtracks to match suffix", "/a/b/c", "/a/**/c", true},
		{"double wildcard backtracks over zero segments", "/a/c", "/a/**/c", true},
		{"exact match", "/a/b", "/a/b", true},
		{"mismatched literal segment", "/a/b", "/a/x", false},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, MatchPath(tc.path, tc.pattern))
		})
	}
}

func TestEndpointTable_Endpoints_FiltersByMethodAndPath(t *testing.T) {
	tbl := NewEndpointTable()
	tbl.Add(EndpointInfo{Path: "/users/42", HTTPMethod: "GET", Handler: MethodDescriptor{Name: "getUser"}})
	tbl.Add(EndpointInfo{Path: "/users", HTTPMethod: "POST", Handler: MethodDescriptor{Name: "createUser"}})

	got := tbl.Endpoints("", "GET")
	assert.Len(t, got, 1)
	assert.Equal(t, "getUser", got[0].Handler.Name)

	got = tbl.Endpoints("/users/*", "")
	assert.Len(t, got, 1)
	assert.Equal(t, "getUser", got[0].Handler.Name)

	got = tbl.Endpoints("", "")
	assert.Len(t, got, 2)
}
