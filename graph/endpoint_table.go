package graph

import "strings"

// EndpointInfo captures one HTTP endpoint's normalized path, method, and
// the handler it maps to.
type EndpointInfo struct {
	Path       string
	HTTPMethod string // GET, POST, PUT, DELETE, PATCH, or "" for ANY
	Handler    MethodDescriptor
}

// EndpointTable holds every endpoint recorded by the endpoint extractor.
type EndpointTable struct {
	endpoints []EndpointInfo
}

// NewEndpointTable creates an empty endpoint table.
func NewEndpointTable() *EndpointTable {
	return &EndpointTable{}
}

// Add records an endpoint in insertion order.
func (t *EndpointTable) Add(info EndpointInfo) {
	t.endpoints = append(t.endpoints, info)
}

// Endpoints returns every endpoint matching the optional path pattern
// ("*" single-segment, "**" any-number-of-segments, backtracking) and/or
// HTTP method; either filter left empty matches any value.
func (t *EndpointTable) Endpoints(pathPattern, httpMethod string) []EndpointInfo {
	var out []EndpointInfo
	for _, e := range t.endpoints {
		if httpMethod != "" && !strings.EqualFold(e.HTTPMethod, httpMethod) {
			continue
		}
		if pathPattern != "" && !MatchPath(e.Path, pathPattern) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// CombinePaths concatenates a class-level and method-level path segment so
// that exactly one "/" separates non-empty segments, a leading "/" is
// always present, and an entirely empty result becomes "/".
func CombinePaths(class, method string) string {
	class = strings.Trim(class, "/")
	method = strings.Trim(method, "/")
	switch {
	case class == "" && method == "":
		return "/"
	case class == "":
		return "/" + method
	case method == "":
		return "/" + class
	default:
		return "/" + class + "/" + method
	}
}

// NormalizePathVariables rewrites "{var}" path-variable segments to "*".
func NormalizePathVariables(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			segments[i] = "*"
		}
	}
	return strings.Join(segments, "/")
}

// MatchPath matches a concrete path against a pattern supporting "*"
// (exactly one segment) and "**" (any number of segments, greedy with
// backtracking).
func MatchPath(path, pattern string) bool {
	pathSegs := splitPath(path)
	patSegs := splitPath(pattern)
	return matchSegments(pathSegs, patSegs)
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func matchSegments(path, pat []string) bool {
	if len(pat) == 0 {
		return len(path) == 0
	}
	head := pat[0]
	switch head {
	case "**":
		// Greedy with backtracking: try consuming as many path segments
		// as possible first, backing off until the remainder matches.
		for consume := len(path); consume >= 0; consume-- {
			if matchSegments(path[consume:], pat[1:]) {
				return true
			}
		}
		return false
	case "*":
		if len(path) == 0 {
			return false
		}
		return matchSegments(path[1:], pat[1:])
	default:
		if len(path) == 0 || path[0] != head {
			return false
		}
		return matchSegments(path[1:], pat[1:])
	}
}
