// Package reachability implements the branch reachability engine: it
// binds assumed call-site results, propagates them forward through
// dataflow to branch conditions, and computes dead branches, transitively
// dead call sites, and transitively dead methods by fixpoint closure.
package reachability

import (
	"regexp"
	"strings"

	"github.com/viant/vmgraph/graph"
	"github.com/viant/vmgraph/pattern"
	"github.com/viant/vmgraph/slicer"
)

// Assumption fixes the value produced by every call site whose callee
// matches MethodPattern and, if ArgumentIndex is set, whose backward
// slice at that argument index contains ArgumentValue as a constant.
type Assumption struct {
	MethodPattern    graph.MethodPattern
	ArgumentIndex    *int
	ArgumentValue    interface{}
	AssumedCallResult interface{}
}

// DeadBranchKind is which side of a condition was proven dead.
type DeadBranchKind int

const (
	DeadTrue DeadBranchKind = iota
	DeadFalse
)

// DeadBranch records one branch proven unreachable.
type DeadBranch struct {
	ConditionNode graph.NodeID
	DeadKind      DeadBranchKind
	OwningMethod  graph.MethodDescriptor
	DeadNodeIDs   []graph.NodeID
	DeadCallSites []*graph.CallSite
}

// DeadCodeResult is the output of one reachability run.
type DeadCodeResult struct {
	DeadBranches        []DeadBranch
	DeadMethods         []graph.MethodDescriptor
	DeadCallSites       []*graph.CallSite
	UnreferencedMethods []graph.MethodDescriptor
}

// Engine computes reachability results over a single frozen graph.
type Engine struct {
	store       *graph.Store
	slicer      *slicer.Slicer
	entryPoints []*regexp.Regexp
}

// New creates a reachability Engine. entryPointRegexes names additional
// live roots, per the configuration's entry_points[regex] option.
func New(store *graph.Store, slc *slicer.Slicer, entryPointRegexes []string) *Engine {
	e := &Engine{store: store, slicer: slc}
	for _, r := range entryPointRegexes {
		if re, err := regexp.Compile(r); err == nil {
			e.entryPoints = append(e.entryPoints, re)
		}
	}
	return e
}

// Run executes the full algorithm: bind assumptions, propagate values to
// conditions, mark dead branches, and compute the transitive closure of
// dead/unreferenced methods.
func (e *Engine) Run(assumptions []Assumption) DeadCodeResult {
	boundValues := e.bindAssumptions(assumptions)
	conditionValues := e.propagateToConditions(boundValues)
	deadBranches := e.markDeadBranches(conditionValues)
	return e.closeTransitively(deadBranches)
}

// bindAssumptions records (call_site_node, value) for every call site
// whose callee matches an assumption's method_pattern and, if specified,
// whose backward-slice at argument_index contains argument_value.
func (e *Engine) bindAssumptions(assumptions []Assumption) map[graph.NodeID]interface{} {
	bound := map[graph.NodeID]interface{}{}
	for _, a := range assumptions {
		sites := e.store.CallSitesMatching(func(m graph.MethodDescriptor) bool {
			return pattern.Match(m, a.MethodPattern)
		})
		for _, cs := range sites {
			if a.ArgumentIndex != nil {
				idx := *a.ArgumentIndex
				if idx < 0 || idx >= len(cs.ArgumentNodes) {
					continue
				}
				slice := e.slicer.BackwardSlice(cs.ArgumentNodes[idx], slicer.DefaultAnalysisConfig())
				if !containsValue(slice.DirectConstants(), a.ArgumentValue) {
					continue
				}
			}
			bound[cs.NID] = a.AssumedCallResult
		}
	}
	return bound
}

func containsValue(cs []*graph.Constant, want interface{}) bool {
	for _, c := range cs {
		if c.Value() == want {
			return true
		}
	}
	return false
}

// propagateToConditions forward-propagates bound call-site values through
// Assign/ParameterPass/ReturnValue/FieldLoad/FieldStore dataflow edges to
// reach the branch conditions they feed. Propagation stops at the first
// condition reached, or becomes indeterminate (omitted) at a phi with
// conflicting incoming values.
func (e *Engine) propagateToConditions(bound map[graph.NodeID]interface{}) map[graph.NodeID]interface{} {
	resolved := map[graph.NodeID]interface{}{}
	conflicted := map[graph.NodeID]bool{}

	visited := map[graph.NodeID]bool{}
	var queue []graph.NodeID
	for src, val := range bound {
		resolved[src] = val
		queue = append(queue, src)
		visited[src] = true
	}

	propagatable := map[graph.DataFlowKind]bool{
		graph.Assign:        true,
		graph.ParameterPass: true,
		graph.ReturnValue:   true,
		graph.FieldLoad:     true,
		graph.FieldStore:    true,
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		// A condition node keeps its value but forwards it no further.
		if _, isCondition := e.store.BranchScopeFor(cur); isCondition {
			continue
		}
		val := resolved[cur]

		for _, e2 := range e.store.OutgoingDataFlow(cur) {
			if !propagatable[e2.FlowKind] {
				continue
			}
			target := e2.ToID
			if conflicted[target] {
				continue
			}
			if existing, ok := resolved[target]; ok {
				if existing != val {
					conflicted[target] = true
					delete(resolved, target)
				}
				continue
			}
			resolved[target] = val
			if !visited[target] {
				visited[target] = true
				queue = append(queue, target)
			}
		}
	}

	// Of the resolved nodes, retain only those that are themselves
	// condition nodes, i.e. the source of a BranchTrue/BranchFalse pair;
	// the BFS above never forwards a value out of a condition node, so
	// propagation stops at the first condition it feeds.
	conditionValues := map[graph.NodeID]interface{}{}
	for id, val := range resolved {
		if _, ok := e.store.BranchScopeFor(id); ok {
			conditionValues[id] = val
		}
	}
	return conditionValues
}

// markDeadBranches evaluates each condition's BranchComparison against its
// determined incoming value and materialises the dead side, if decidable.
func (e *Engine) markDeadBranches(conditionValues map[graph.NodeID]interface{}) []DeadBranch {
	var out []DeadBranch
	for cond, val := range conditionValues {
		scope, ok := e.store.BranchScopeFor(cond)
		if !ok {
			continue
		}
		comparand, comparandOK := e.resolveComparand(scope.Comparison.Comparand)
		if !comparandOK {
			continue
		}
		take, decidable := evalComparison(scope.Comparison, val, comparand)
		if !decidable {
			continue
		}

		var kind DeadBranchKind
		var deadSet map[graph.NodeID]struct{}
		if take {
			kind = DeadFalse
			deadSet = scope.FalseBranchNodes
		} else {
			kind = DeadTrue
			deadSet = scope.TrueBranchNodes
		}

		db := DeadBranch{
			ConditionNode: cond,
			DeadKind:      kind,
			OwningMethod:  scope.OwningMethod,
		}
		for id := range deadSet {
			db.DeadNodeIDs = append(db.DeadNodeIDs, id)
			if n, ok := e.store.Node(id); ok {
				if cs, ok := n.(*graph.CallSite); ok {
					db.DeadCallSites = append(db.DeadCallSites, cs)
				}
			}
		}
		out = append(out, db)
	}
	return out
}

// resolveComparand backward-slices the comparand node to a literal
// constant value, when one and constant are produced by the graph's
// frozen dataflow; a comparand is of compatible primitive kind only if
// exactly one direct constant resolves.
func (e *Engine) resolveComparand(comparand graph.NodeID) (interface{}, bool) {
	if comparand == 0 {
		return nil, false
	}
	slice := e.slicer.BackwardSlice(comparand, slicer.DefaultAnalysisConfig())
	cs := slice.DirectConstants()
	if len(cs) != 1 {
		return nil, false
	}
	return cs[0].Value(), true
}

// evalComparison reports whether the branch's condition is decidable and,
// if so, whether the true edge is taken. Indeterminate unless both the
// incoming value and comparand resolve to comparable primitive kinds.
func evalComparison(cmp graph.Comparison, incoming interface{}, comparand interface{}) (take bool, decidable bool) {
	left, ok := toOrderable(incoming)
	if !ok {
		return false, false
	}
	right, ok := toOrderable(comparand)
	if !ok {
		return false, false
	}

	switch cmp.Op {
	case graph.EQ:
		return left == right, true
	case graph.NE:
		return left != right, true
	case graph.LT:
		return left < right, true
	case graph.GE:
		return left >= right, true
	case graph.GT:
		return left > right, true
	case graph.LE:
		return left <= right, true
	default:
		return false, false
	}
}

func toOrderable(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// closeTransitively computes unreferenced and transitively dead methods
// to fixpoint, per the monotone-non-decreasing dead set over a finite
// method universe.
func (e *Engine) closeTransitively(deadBranches []DeadBranch) DeadCodeResult {
	deadCallSiteIDs := map[graph.NodeID]bool{}
	var deadCallSites []*graph.CallSite
	for _, db := range deadBranches {
		for _, cs := range db.DeadCallSites {
			if !deadCallSiteIDs[cs.NID] {
				deadCallSiteIDs[cs.NID] = true
				deadCallSites = append(deadCallSites, cs)
			}
		}
	}

	allMethods := e.store.Methods.Methods()
	liveRoots := map[string]bool{}
	for _, m := range allMethods {
		if isSynthetic(m) || isConstructor(m) {
			liveRoots[m.Signature()] = true
			continue
		}
		for _, re := range e.entryPoints {
			if re.MatchString(m.Signature()) || re.MatchString(m.Name) {
				liveRoots[m.Signature()] = true
			}
		}
	}

	dead := map[string]bool{}
	changed := true
	for changed {
		changed = false
		for _, m := range allMethods {
			sig := m.Signature()
			if dead[sig] || liveRoots[sig] {
				continue
			}
			if allCallersSuppressed(e.store, m, deadCallSiteIDs, dead) {
				dead[sig] = true
				changed = true
			}
		}
	}

	// A method is dead_methods (has callers, all of them suppressed by a
	// dead branch or themselves dead) XOR unreferenced_methods (has no
	// caller at all) -- never both, per the invariant that these sets are
	// disjoint: allCallersSuppressed is false whenever a method has zero
	// callers, so hasNoCallers and dead[sig] can never both hold.
	unreferencedSet := map[string]bool{}
	var deadMethods, unreferenced []graph.MethodDescriptor
	for _, m := range allMethods {
		sig := m.Signature()
		switch {
		case dead[sig]:
			deadMethods = append(deadMethods, m)
		case !liveRoots[sig] && hasNoCallers(e.store, m):
			unreferenced = append(unreferenced, m)
			unreferencedSet[sig] = true
		}
	}

	// Constructors were given blanket liveRoots immunity above so they
	// never cascade deadness into what they call; demote that immunity now
	// for any constructor whose entire owning class has no other live
	// method, reporting it dead or unreferenced like any other method.
	for _, m := range allMethods {
		if !isConstructor(m) || classHasLiveMethod(m.DeclaringClass.ClassName, allMethods, dead, unreferencedSet) {
			continue
		}
		if hasNoCallers(e.store, m) {
			unreferenced = append(unreferenced, m)
		} else if allCallersSuppressed(e.store, m, deadCallSiteIDs, dead) {
			deadMethods = append(deadMethods, m)
		}
	}

	return DeadCodeResult{
		DeadBranches:        deadBranches,
		DeadMethods:         deadMethods,
		DeadCallSites:       deadCallSites,
		UnreferencedMethods: unreferenced,
	}
}

// classHasLiveMethod reports whether class has at least one non-constructor
// method that is neither dead nor unreferenced. A class with no
// non-constructor methods at all is treated as having one, conservatively
// exempting its constructor rather than guessing at class-level liveness
// from nothing.
func classHasLiveMethod(class string, allMethods []graph.MethodDescriptor, dead, unreferenced map[string]bool) bool {
	seenOther := false
	for _, m := range allMethods {
		if m.DeclaringClass.ClassName != class || isConstructor(m) {
			continue
		}
		seenOther = true
		sig := m.Signature()
		if !dead[sig] && !unreferenced[sig] {
			return true
		}
	}
	return !seenOther
}

// hasNoCallers reports whether m is never named as a callee by any call
// site in the graph -- distinct from being transitively dead, which
// requires at least one (now-suppressed) caller to exist.
func hasNoCallers(store *graph.Store, m graph.MethodDescriptor) bool {
	return len(store.Methods.CallSitesForCallee(m.Signature())) == 0
}

// allCallersSuppressed reports whether m has at least one caller and every
// one of them either lies in a dead branch scope (deadCallSiteIDs) or
// belongs to a method that is itself (transitively) dead. A method with no
// callers at all is never "suppressed" -- it is unreferenced instead.
func allCallersSuppressed(store *graph.Store, m graph.MethodDescriptor, deadCallSiteIDs map[graph.NodeID]bool, dead map[string]bool) bool {
	callers := store.Methods.CallSitesForCallee(m.Signature())
	if len(callers) == 0 {
		return false
	}
	for _, cs := range callers {
		if deadCallSiteIDs[cs.NID] {
			continue
		}
		if dead[cs.Caller.Signature()] {
			continue
		}
		return false
	}
	return true
}

var syntheticNamePrefixes = []string{"lambda$"}

func isSynthetic(m graph.MethodDescriptor) bool {
	if strings.Contains(m.Name, "$") {
		return true
	}
	for _, p := range syntheticNamePrefixes {
		if strings.HasPrefix(m.Name, p) {
			return true
		}
	}
	if m.Name == "values" || m.Name == "valueOf" {
		return true
	}
	return false
}

func isConstructor(m graph.MethodDescriptor) bool {
	return m.Name == "<init>" || m.Name == "<clinit>"
}
