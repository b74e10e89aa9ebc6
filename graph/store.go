// Package graph implements the Program Graph: a typed node/edge store
// with interned integer node identifiers, type-indexed iteration, and the
// specialized indices (call sites, type hierarchy, endpoints, enum
// constant values, branch scopes) described by the framework's core.
package graph

import (
	"fmt"
)

// Store is the node/edge graph store. It starts out mutable (the builder
// phase) and transitions to a read-only frozen graph on Build(); callers
// are responsible for serializing builder calls -- the store itself does
// not take a lock during the build phase.
type Store struct {
	frozen bool

	nodes     map[NodeID]Node
	byKind    map[NodeKind][]Node

	outAdj map[NodeID][]Edge
	inAdj  map[NodeID][]Edge

	scalarIntern map[scalarKey]NodeID
	enumIntern   map[uint64]NodeID

	Types     *TypeIndex
	Methods   *MethodIndex
	Enums     *EnumTable
	Endpoints *EndpointTable
	Jackson   *JacksonTable

	classAnnotations map[string][]Annotation
	fieldAnnotations map[string][]Annotation

	scopes *scopeBuilder
}

// NewStore creates an empty, mutable graph store.
func NewStore() *Store {
	s := &Store{
		nodes:        map[NodeID]Node{},
		byKind:       map[NodeKind][]Node{},
		outAdj:       map[NodeID][]Edge{},
		inAdj:        map[NodeID][]Edge{},
		scalarIntern: map[scalarKey]NodeID{},
		enumIntern:   map[uint64]NodeID{},
		Types:        NewTypeIndex(),
		Methods:      NewMethodIndex(),
		Enums:        NewEnumTable(),
		Endpoints:    NewEndpointTable(),
		Jackson:      NewJacksonTable(),
		classAnnotations: map[string][]Annotation{},
		fieldAnnotations: map[string][]Annotation{},
	}
	s.scopes = newScopeBuilder(s)
	return s
}

// ---------------------------------------------------------------------
// Builder contract (pre-freeze)
// ---------------------------------------------------------------------

// AddNode registers a node. Duplicate NodeIDs are rejected.
func (s *Store) AddNode(n Node) error {
	if s.frozen {
		return ErrFrozen
	}
	if n.ID() == 0 {
		return fmt.Errorf("%w: node has zero id", ErrInconsistentGraph)
	}
	if _, exists := s.nodes[n.ID()]; exists {
		return fmt.Errorf("%w: duplicate node id %d", ErrInconsistentGraph, n.ID())
	}
	s.nodes[n.ID()] = n
	s.byKind[n.Kind()] = append(s.byKind[n.Kind()], n)

	if c, ok := n.(*Constant); ok {
		s.internConstant(c)
	}
	if cs, ok := n.(*CallSite); ok {
		s.Methods.AddCallSite(cs)
	}
	return nil
}

func (s *Store) internConstant(c *Constant) {
	if key, ok := scalarInternKey(c); ok {
		if _, exists := s.scalarIntern[key]; !exists {
			s.scalarIntern[key] = c.NID
		}
		return
	}
	if c.ConstKind == ConstEnum {
		fp := enumArgsFingerprint(c.EnumType, c.EnumName, c.EnumArgs)
		if _, exists := s.enumIntern[fp]; !exists {
			s.enumIntern[fp] = c.NID
		}
	}
}

// InternedScalar returns the NodeID of a previously-added scalar constant
// node with the same (kind, value) pair, if one exists.
func (s *Store) InternedScalar(c *Constant) (NodeID, bool) {
	key, ok := scalarInternKey(c)
	if !ok {
		return 0, false
	}
	id, exists := s.scalarIntern[key]
	return id, exists
}

// AddEdge registers an edge. Both endpoints must already exist in the node
// store, except a CallEdge's ToID of 0, which explicitly denotes an
// external/unresolved callee.
func (s *Store) AddEdge(e Edge) error {
	if s.frozen {
		return ErrFrozen
	}
	if _, ok := s.nodes[e.From()]; !ok {
		return fmt.Errorf("%w: edge source %d", ErrUnknownNode, e.From())
	}
	if e.To() != 0 || e.EdgeKind() != KindCallEdge {
		if _, ok := s.nodes[e.To()]; !ok {
			return fmt.Errorf("%w: edge target %d", ErrUnknownNode, e.To())
		}
	}
	s.outAdj[e.From()] = append(s.outAdj[e.From()], e)
	if e.To() != 0 {
		s.inAdj[e.To()] = append(s.inAdj[e.To()], e)
	}
	return nil
}

// AddMethod registers a declared method descriptor.
func (s *Store) AddMethod(desc MethodDescriptor) error {
	if s.frozen {
		return ErrFrozen
	}
	s.Methods.AddMethod(desc)
	return nil
}

// AddTypeRelation records a direct Extends/Implements relation.
func (s *Store) AddTypeRelation(sub, sup TypeDescriptor, kind TypeRelKind) error {
	if s.frozen {
		return ErrFrozen
	}
	s.Types.Add(sub, sup, kind)
	return nil
}

// AddEndpoint records an HTTP endpoint.
func (s *Store) AddEndpoint(info EndpointInfo) error {
	if s.frozen {
		return ErrFrozen
	}
	s.Endpoints.Add(info)
	return nil
}

// AddEnumValues records the constructor-argument tuple for an enum constant.
func (s *Store) AddEnumValues(enumClass, enumName string, args []interface{}) error {
	if s.frozen {
		return ErrFrozen
	}
	s.Enums.Set(enumClass, enumName, args)
	return nil
}

// AddJacksonField records JSON-binding info for a declared field.
func (s *Store) AddJacksonField(class, field string, info JacksonInfo) error {
	if s.frozen {
		return ErrFrozen
	}
	s.Jackson.SetField(class, field, info)
	return nil
}

// AddJacksonGetter records JSON-binding info for a getter method.
func (s *Store) AddJacksonGetter(class, method string, info JacksonInfo) error {
	if s.frozen {
		return ErrFrozen
	}
	s.Jackson.SetGetter(class, method, info)
	return nil
}

// AddClassAnnotations records the annotations present on a declared class.
func (s *Store) AddClassAnnotations(class string, anns []Annotation) error {
	if s.frozen {
		return ErrFrozen
	}
	s.classAnnotations[class] = append(s.classAnnotations[class], anns...)
	return nil
}

// AddFieldAnnotations records the annotations present on a declared field.
func (s *Store) AddFieldAnnotations(field FieldDescriptor, anns []Annotation) error {
	if s.frozen {
		return ErrFrozen
	}
	s.fieldAnnotations[field.Signature()] = append(s.fieldAnnotations[field.Signature()], anns...)
	return nil
}

// AddMethodAnnotations attaches annotations to an already-registered
// method, matched by signature; it is a no-op if the method has not been
// added yet (callers are expected to call AddMethod first).
func (s *Store) AddMethodAnnotations(method MethodDescriptor, anns []Annotation) error {
	if s.frozen {
		return ErrFrozen
	}
	s.Methods.AttachAnnotations(method.Signature(), anns)
	return nil
}

// Build transitions the store to frozen: no edge/node may be added after
// the first query, and no builder call succeeds beyond this point.
func (s *Store) Build() (*Store, error) {
	if s.frozen {
		return s, nil
	}
	s.frozen = true
	return s, nil
}

// Frozen reports whether Build() has been called.
func (s *Store) Frozen() bool { return s.frozen }

// ---------------------------------------------------------------------
// Query operations
// ---------------------------------------------------------------------

// Node looks up a node by ID.
func (s *Store) Node(id NodeID) (Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// NodesOfKind returns every node of the given kind, in insertion order.
func (s *Store) NodesOfKind(kind NodeKind) []Node {
	return s.byKind[kind]
}

// Outgoing returns every edge leaving id, in insertion order.
func (s *Store) Outgoing(id NodeID) []Edge {
	return s.outAdj[id]
}

// Incoming returns every edge entering id, in insertion order.
func (s *Store) Incoming(id NodeID) []Edge {
	return s.inAdj[id]
}

// OutgoingDataFlow returns the outgoing DataFlowEdges of id.
func (s *Store) OutgoingDataFlow(id NodeID) []*DataFlowEdge {
	var out []*DataFlowEdge
	for _, e := range s.outAdj[id] {
		if d, ok := e.(*DataFlowEdge); ok {
			out = append(out, d)
		}
	}
	return out
}

// IncomingDataFlow returns the incoming DataFlowEdges of id.
func (s *Store) IncomingDataFlow(id NodeID) []*DataFlowEdge {
	var out []*DataFlowEdge
	for _, e := range s.inAdj[id] {
		if d, ok := e.(*DataFlowEdge); ok {
			out = append(out, d)
		}
	}
	return out
}

// OutgoingControlFlow returns the outgoing ControlFlowEdges of id.
func (s *Store) OutgoingControlFlow(id NodeID) []*ControlFlowEdge {
	var out []*ControlFlowEdge
	for _, e := range s.outAdj[id] {
		if c, ok := e.(*ControlFlowEdge); ok {
			out = append(out, c)
		}
	}
	return out
}

// OutgoingCall returns the outgoing CallEdges of id.
func (s *Store) OutgoingCall(id NodeID) []*CallEdge {
	var out []*CallEdge
	for _, e := range s.outAdj[id] {
		if c, ok := e.(*CallEdge); ok {
			out = append(out, c)
		}
	}
	return out
}

// Supertypes returns the direct supertypes/interfaces of typ.
func (s *Store) Supertypes(typ TypeDescriptor) []TypeDescriptor { return s.Types.Supertypes(typ) }

// Subtypes returns the direct subtypes of typ.
func (s *Store) Subtypes(typ TypeDescriptor) []TypeDescriptor { return s.Types.Subtypes(typ) }

// TransitiveSupertypes returns every supertype reachable transitively.
func (s *Store) TransitiveSupertypes(typ TypeDescriptor) []TypeDescriptor {
	return s.Types.TransitiveSupertypes(typ)
}

// TransitiveSubtypes returns every subtype reachable transitively.
func (s *Store) TransitiveSubtypes(typ TypeDescriptor) []TypeDescriptor {
	return s.Types.TransitiveSubtypes(typ)
}

// ClassAnnotations returns the recorded annotations for a declared class.
func (s *Store) ClassAnnotations(class string) []Annotation {
	return s.classAnnotations[class]
}

// FieldAnnotations returns the recorded annotations for a declared field.
func (s *Store) FieldAnnotations(field FieldDescriptor) []Annotation {
	return s.fieldAnnotations[field.Signature()]
}

// MethodsMatching returns every registered method satisfying pattern.
func (s *Store) MethodsMatching(match func(MethodDescriptor) bool) []MethodDescriptor {
	var out []MethodDescriptor
	for _, m := range s.Methods.Methods() {
		if match(m) {
			out = append(out, m)
		}
	}
	return out
}

// CallSitesMatching returns every registered call site whose callee
// satisfies pattern.
func (s *Store) CallSitesMatching(match func(MethodDescriptor) bool) []*CallSite {
	var out []*CallSite
	for _, cs := range s.Methods.CallSites() {
		if match(cs.Callee) {
			out = append(out, cs)
		}
	}
	return out
}

// EnumValues returns the recorded constructor arguments for an enum
// constant, or (nil, false) if unrecorded.
func (s *Store) EnumValues(enumClass, enumName string) ([]interface{}, bool) {
	return s.Enums.Get(enumClass, enumName)
}

// EndpointsMatching returns endpoints matching the optional path pattern/
// HTTP method (either left empty matches any value).
func (s *Store) EndpointsMatching(pathPattern, httpMethod string) []EndpointInfo {
	return s.Endpoints.Endpoints(pathPattern, httpMethod)
}

// JacksonFieldInfo returns JSON-binding info for a declared field.
func (s *Store) JacksonFieldInfo(class, field string) (JacksonInfo, bool) {
	return s.Jackson.Field(class, field)
}

// JacksonGetterInfo returns JSON-binding info for a getter method.
func (s *Store) JacksonGetterInfo(class, method string) (JacksonInfo, bool) {
	return s.Jackson.Getter(class, method)
}

// BranchScopes returns every derived BranchScope, building them lazily on
// first request.
func (s *Store) BranchScopes() []*BranchScope {
	return s.scopes.All()
}

// BranchScopeFor returns the BranchScope for a specific condition node.
func (s *Store) BranchScopeFor(condition NodeID) (*BranchScope, bool) {
	return s.scopes.For(condition)
}

// ReturnNodeOf looks up the Return node declared for a method, if present
// in the graph (scanning Return nodes -- a method universe is typically
// small enough that a linear scan is not a concern; callers that need
// this hot can cache the result).
func (s *Store) ReturnNodeOf(method MethodDescriptor) (NodeID, bool) {
	for _, n := range s.byKind[KindReturn] {
		r := n.(*Return)
		if r.OwningMethod.Signature() == method.Signature() {
			return r.NID, true
		}
	}
	return 0, false
}
