// Package query implements the external query surface described by the
// core's interface contract: findArgumentConstants, findActualReturnTypes,
// and findFieldsOfType, each a pure function of a frozen graph.
package query

import (
	"fmt"
	"strconv"

	"github.com/viant/vmgraph/graph"
	"github.com/viant/vmgraph/pattern"
	"github.com/viant/vmgraph/slicer"
)

// ArgumentConstant is one {call_site, argument_index, constant_node, path?}
// tuple.
type ArgumentConstant struct {
	CallSite      *graph.CallSite
	ArgumentIndex int
	Constant      *graph.Constant
	Path          []graph.NodeID
	Location      string
	Value         interface{}
}

// FindArgumentConstants backward-slices every argument of every call site
// whose callee matches p and reports each resolvable constant.
func FindArgumentConstants(store *graph.Store, slc *slicer.Slicer, p graph.MethodPattern, cfg slicer.AnalysisConfig) []ArgumentConstant {
	var out []ArgumentConstant
	sites := store.CallSitesMatching(func(m graph.MethodDescriptor) bool { return pattern.Match(m, p) })
	for _, cs := range sites {
		for idx, argNode := range cs.ArgumentNodes {
			result := slc.BackwardSlice(argNode, cfg)
			for i, c := range result.AllConstants(store) {
				var path []graph.NodeID
				if cfg.CollectPaths && i < len(result.Paths) {
					path = result.Paths[i]
				}
				out = append(out, ArgumentConstant{
					CallSite:      cs,
					ArgumentIndex: idx,
					Constant:      c,
					Path:          path,
					Location:      location(cs),
					Value:         c.Value(),
				})
			}
		}
	}
	return out
}

func location(cs *graph.CallSite) string {
	line := "?"
	if cs.Line != nil {
		line = strconv.Itoa(*cs.Line)
	}
	return fmt.Sprintf("%s:%s", cs.Caller.Signature(), line)
}

// ActualReturnTypes is one matched method's declared return type plus the
// deduplicated set of actual types recovered from its Return node's
// incoming dataflow.
type ActualReturnTypes struct {
	Method       graph.MethodDescriptor
	DeclaredType graph.TypeDescriptor
	ActualTypes  []graph.TypeDescriptor
}

// FindActualReturnTypes returns, per method matching p, the declared
// return type and the deduplicated actual types traced recursively from
// the Return node's incoming dataflow edges.
func FindActualReturnTypes(store *graph.Store, p graph.MethodPattern) []ActualReturnTypes {
	var out []ActualReturnTypes
	for _, m := range store.MethodsMatching(func(m graph.MethodDescriptor) bool { return pattern.Match(m, p) }) {
		retID, ok := store.ReturnNodeOf(m)
		if !ok {
			continue
		}
		actual := traceActualTypes(store, retID, map[graph.NodeID]bool{})
		out = append(out, ActualReturnTypes{
			Method:       m,
			DeclaredType: m.ReturnType,
			ActualTypes:  dedupTypes(actual),
		})
	}
	return out
}

func traceActualTypes(store *graph.Store, id graph.NodeID, visited map[graph.NodeID]bool) []graph.TypeDescriptor {
	if visited[id] {
		return nil
	}
	visited[id] = true

	var out []graph.TypeDescriptor
	for _, e := range store.IncomingDataFlow(id) {
		n, ok := store.Node(e.FromID)
		if !ok {
			continue
		}
		switch v := n.(type) {
		case *graph.Local:
			if v.DeclaredType.ClassName != "" && v.DeclaredType.ClassName != "java.lang.Object" {
				out = append(out, v.DeclaredType)
			} else {
				out = append(out, traceActualTypes(store, v.NID, visited)...)
			}
		case *graph.Field:
			out = append(out, v.Descriptor.Type)
		case *graph.CallSite:
			rt := v.Callee.ReturnType
			if rt.ClassName != "" && rt.ClassName != "java.lang.Object" && rt.ClassName != "void" {
				out = append(out, rt)
			}
		case *graph.Constant:
			out = append(out, boxedType(v))
		case *graph.Parameter:
			out = append(out, v.DeclaredType)
		default:
			out = append(out, traceActualTypes(store, e.FromID, visited)...)
		}
	}
	return out
}

func boxedType(c *graph.Constant) graph.TypeDescriptor {
	switch c.ConstKind {
	case graph.ConstInt:
		return graph.TypeDescriptor{ClassName: "java.lang.Integer"}
	case graph.ConstLong:
		return graph.TypeDescriptor{ClassName: "java.lang.Long"}
	case graph.ConstFloat:
		return graph.TypeDescriptor{ClassName: "java.lang.Float"}
	case graph.ConstDouble:
		return graph.TypeDescriptor{ClassName: "java.lang.Double"}
	case graph.ConstBool:
		return graph.TypeDescriptor{ClassName: "java.lang.Boolean"}
	case graph.ConstString:
		return graph.TypeDescriptor{ClassName: "java.lang.String"}
	case graph.ConstEnum:
		return graph.TypeDescriptor{ClassName: c.EnumType}
	default:
		return graph.TypeDescriptor{}
	}
}

func dedupTypes(ts []graph.TypeDescriptor) []graph.TypeDescriptor {
	seen := map[string]bool{}
	var out []graph.TypeDescriptor
	for _, t := range ts {
		if seen[t.String()] {
			continue
		}
		seen[t.String()] = true
		out = append(out, t)
	}
	return out
}

// CompliancePredicate flags a field as non-compliant for application-
// supplied reasons (e.g. missing a required annotation).
type CompliancePredicate func(store *graph.Store, field graph.FieldDescriptor) (compliant bool, reason string)

// FieldOfType is one field matching a type pattern, with an optional
// compliance annotation applied by the caller's predicate.
type FieldOfType struct {
	Field      graph.FieldDescriptor
	Compliant  bool
	Reason     string
}

// FindFieldsOfType returns fields whose declared type matches any of
// typePatterns (exact, or "*"-suffix prefix), optionally annotated via
// an application-supplied compliance predicate.
func FindFieldsOfType(store *graph.Store, typePatterns []string, compliance CompliancePredicate) []FieldOfType {
	var out []FieldOfType
	for _, n := range store.NodesOfKind(graph.KindField) {
		f := n.(*graph.Field)
		matched := false
		for _, want := range typePatterns {
			if pattern.MatchType(f.Descriptor.Type.ClassName, want) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		fo := FieldOfType{Field: f.Descriptor, Compliant: true}
		if compliance != nil {
			fo.Compliant, fo.Reason = compliance(store, f.Descriptor)
		}
		out = append(out, fo)
	}
	return out
}
