// Package pattern implements the wildcard/regex method-pattern matcher
// used to select call sites and methods by (class, name, parameter-types,
// return-type) shape.
package pattern

import (
	"regexp"
	"strings"

	"github.com/viant/vmgraph/graph"
)

// Match reports whether descriptor m satisfies pattern p. Any unset
// pattern field matches unconditionally.
func Match(m graph.MethodDescriptor, p graph.MethodPattern) bool {
	if p.Class != nil && !matchString(m.DeclaringClass.ClassName, *p.Class, p.UseRegex) {
		return false
	}
	if p.Name != nil && !matchString(m.Name, *p.Name, p.UseRegex) {
		return false
	}
	if p.ParameterTypes != nil {
		if len(p.ParameterTypes) != len(m.ParameterTypes) {
			return false
		}
		for i, want := range p.ParameterTypes {
			if m.ParameterTypes[i].ClassName != want {
				return false
			}
		}
	}
	if p.ReturnType != nil && m.ReturnType.ClassName != *p.ReturnType {
		return false
	}
	// Annotation filtering is advisory at the pattern-matcher level; the
	// endpoint extractor applies it directly against the richer
	// Annotation{ClassName,Values} records.
	return true
}

// matchString implements the class/name matching rule: regex mode
// anchors a regular expression, a trailing "*" is a prefix wildcard,
// otherwise exact equality is required.
func matchString(candidate, want string, useRegex bool) bool {
	if useRegex {
		re, err := regexp.Compile("^(?:" + want + ")$")
		if err != nil {
			return false
		}
		return re.MatchString(candidate)
	}
	if strings.HasSuffix(want, "*") {
		return strings.HasPrefix(candidate, strings.TrimSuffix(want, "*"))
	}
	return candidate == want
}

// MatchType reports whether a declared type's class name satisfies a
// findFieldsOfType-style pattern: exact match, or a trailing "*" prefix.
func MatchType(className, want string) bool {
	if strings.HasSuffix(want, "*") {
		return strings.HasPrefix(className, strings.TrimSuffix(want, "*"))
	}
	return className == want
}
