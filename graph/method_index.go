package graph

// MethodIndex holds the registered methods and call sites in insertion
// order, with hash-indexed lookup of methods by exact name and of call
// sites by callee signature. Pattern matching (wildcards, regex,
// parameter/return filtering) is not done here: Store.MethodsMatching and
// Store.CallSitesMatching apply a predicate over the full ordered lists.
type MethodIndex struct {
	methods          []MethodDescriptor
	byExactName      map[string][]int
	indexBySignature map[string]int

	callSites         []*CallSite
	callSitesByCallee map[string][]int
}

// NewMethodIndex creates an empty method/call-site index.
func NewMethodIndex() *MethodIndex {
	return &MethodIndex{
		byExactName:       map[string][]int{},
		indexBySignature:  map[string]int{},
		callSitesByCallee: map[string][]int{},
	}
}

// AddMethod registers a declared method in insertion order.
func (m *MethodIndex) AddMethod(desc MethodDescriptor) {
	idx := len(m.methods)
	m.methods = append(m.methods, desc)
	m.byExactName[desc.Name] = append(m.byExactName[desc.Name], idx)
	m.indexBySignature[desc.Signature()] = idx
}

// AttachAnnotations merges anns onto an already-registered method found by
// canonical signature; a no-op if no such method is registered.
func (m *MethodIndex) AttachAnnotations(signature string, anns []Annotation) {
	idx, ok := m.indexBySignature[signature]
	if !ok {
		return
	}
	m.methods[idx].Annotations = append(m.methods[idx].Annotations, anns...)
}

// Methods returns every registered method, in insertion order.
func (m *MethodIndex) Methods() []MethodDescriptor {
	return m.methods
}

// MethodsNamed returns the registered methods with the given exact name.
func (m *MethodIndex) MethodsNamed(name string) []MethodDescriptor {
	idxs := m.byExactName[name]
	out := make([]MethodDescriptor, len(idxs))
	for i, idx := range idxs {
		out[i] = m.methods[idx]
	}
	return out
}

// AddCallSite registers a call site in insertion order.
func (m *MethodIndex) AddCallSite(cs *CallSite) {
	idx := len(m.callSites)
	m.callSites = append(m.callSites, cs)
	sig := cs.Callee.Signature()
	m.callSitesByCallee[sig] = append(m.callSitesByCallee[sig], idx)
}

// CallSites returns every registered call site, in insertion order.
func (m *MethodIndex) CallSites() []*CallSite {
	return m.callSites
}

// CallSitesForCallee returns call sites whose callee has the given
// canonical signature.
func (m *MethodIndex) CallSitesForCallee(signature string) []*CallSite {
	idxs := m.callSitesByCallee[signature]
	out := make([]*CallSite, len(idxs))
	for i, idx := range idxs {
		out[i] = m.callSites[idx]
	}
	return out
}
