package graph

// BranchScope is the derived partition of nodes in a method that are
// reachable only if a given branch of a condition is taken.
type BranchScope struct {
	ConditionNode   NodeID
	OwningMethod    MethodDescriptor
	Comparison      Comparison
	TrueBranchNodes map[NodeID]struct{}
	FalseBranchNodes map[NodeID]struct{}
}

// scopeBuilder computes BranchScopes lazily on first request and caches
// them, keyed by condition node.
type scopeBuilder struct {
	store *Store
	built bool
	byCondition map[NodeID]*BranchScope
	all []*BranchScope
}

func newScopeBuilder(s *Store) *scopeBuilder {
	return &scopeBuilder{store: s, byCondition: map[NodeID]*BranchScope{}}
}

func (b *scopeBuilder) ensureBuilt() {
	if b.built {
		return
	}
	b.built = true

	// Group outgoing BranchTrue/BranchFalse edges by condition node.
	type pair struct {
		trueEdge, falseEdge *ControlFlowEdge
	}
	pairs := map[NodeID]*pair{}
	for id := range b.store.nodes {
		for _, e := range b.store.outAdj[id] {
			cf, ok := e.(*ControlFlowEdge)
			if !ok {
				continue
			}
			if cf.FlowKind != BranchTrue && cf.FlowKind != BranchFalse {
				continue
			}
			p := pairs[cf.FromID]
			if p == nil {
				p = &pair{}
				pairs[cf.FromID] = p
			}
			if cf.FlowKind == BranchTrue {
				p.trueEdge = cf
			} else {
				p.falseEdge = cf
			}
		}
	}

	for cond, p := range pairs {
		scope := &BranchScope{
			ConditionNode:    cond,
			TrueBranchNodes:  map[NodeID]struct{}{},
			FalseBranchNodes: map[NodeID]struct{}{},
		}
		if p.trueEdge != nil && p.trueEdge.Comparison != nil {
			scope.Comparison = *p.trueEdge.Comparison
		} else if p.falseEdge != nil && p.falseEdge.Comparison != nil {
			scope.Comparison = *p.falseEdge.Comparison
		}
		if m, ok := b.store.ownerOf(cond); ok {
			scope.OwningMethod = m
		}

		var trueReach, falseReach map[NodeID]struct{}
		if p.trueEdge != nil {
			trueReach = b.store.reachableControlFlow(p.trueEdge.ToID, scope.OwningMethod)
		}
		if p.falseEdge != nil {
			falseReach = b.store.reachableControlFlow(p.falseEdge.ToID, scope.OwningMethod)
		}
		for id := range trueReach {
			if _, inFalse := falseReach[id]; !inFalse {
				scope.TrueBranchNodes[id] = struct{}{}
			}
		}
		for id := range falseReach {
			if _, inTrue := trueReach[id]; !inTrue {
				scope.FalseBranchNodes[id] = struct{}{}
			}
		}

		b.byCondition[cond] = scope
		b.all = append(b.all, scope)
	}
}

// All returns every derived BranchScope.
func (b *scopeBuilder) All() []*BranchScope {
	b.ensureBuilt()
	return b.all
}

// For returns the BranchScope derived for a specific condition node, if any.
func (b *scopeBuilder) For(condition NodeID) (*BranchScope, bool) {
	b.ensureBuilt()
	s, ok := b.byCondition[condition]
	return s, ok
}

// reachableControlFlow floods forward from start over
// Sequential/SwitchCase/SwitchDefault/Exception/ReturnFlow/BranchTrue/
// BranchFalse edges, restricted (when owner is non-zero) to nodes owned
// by the same method -- a documented simplification of full control-
// dependence analysis (see DESIGN.md).
func (s *Store) reachableControlFlow(start NodeID, owner MethodDescriptor) map[NodeID]struct{} {
	visited := map[NodeID]struct{}{}
	if start == 0 {
		return visited
	}
	queue := []NodeID{start}
	visited[start] = struct{}{}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range s.outAdj[cur] {
			cf, ok := e.(*ControlFlowEdge)
			if !ok {
				continue
			}
			if cf.ToID == 0 {
				continue
			}
			if m, ok := s.ownerOf(cf.ToID); ok && owner.Name != "" && m.Signature() != owner.Signature() {
				continue
			}
			if _, seen := visited[cf.ToID]; seen {
				continue
			}
			visited[cf.ToID] = struct{}{}
			queue = append(queue, cf.ToID)
		}
	}
	return visited
}

// ownerOf returns the owning method of a node, for the variants that carry
// one (Local, Parameter, Return, CallSite). Field and Constant nodes have
// no single owning method and report ok=false.
func (s *Store) ownerOf(id NodeID) (MethodDescriptor, bool) {
	n, ok := s.nodes[id]
	if !ok {
		return MethodDescriptor{}, false
	}
	switch v := n.(type) {
	case *Local:
		return v.OwningMethod, true
	case *Parameter:
		return v.OwningMethod, true
	case *Return:
		return v.OwningMethod, true
	case *CallSite:
		return v.Caller, true
	default:
		return MethodDescriptor{}, false
	}
}
