package graph

// TypeIndex maps each declared type to its direct supertypes/interfaces
// and exposes BFS-based transitive walkers. Direct relations are kept in
// insertion order for deterministic iteration, alongside a name-keyed map
// for O(1) membership checks -- the same fieldMap/methodMap shape the
// rest of this module uses for its other descriptor-indexed tables.
type TypeIndex struct {
	directSuper map[string][]typeRel
	directSub   map[string][]typeRel
}

type typeRel struct {
	Type TypeDescriptor
	Kind TypeRelKind
}

// NewTypeIndex creates an empty type hierarchy index.
func NewTypeIndex() *TypeIndex {
	return &TypeIndex{
		directSuper: map[string][]typeRel{},
		directSub:   map[string][]typeRel{},
	}
}

// Add records sub as a direct subtype of sup via kind (Extends/Implements).
func (t *TypeIndex) Add(sub, sup TypeDescriptor, kind TypeRelKind) {
	t.directSuper[sub.ClassName] = append(t.directSuper[sub.ClassName], typeRel{Type: sup, Kind: kind})
	t.directSub[sup.ClassName] = append(t.directSub[sup.ClassName], typeRel{Type: sub, Kind: kind})
}

// Supertypes returns the direct supertypes/interfaces of typ.
func (t *TypeIndex) Supertypes(typ TypeDescriptor) []TypeDescriptor {
	rels := t.directSuper[typ.ClassName]
	out := make([]TypeDescriptor, len(rels))
	for i, r := range rels {
		out[i] = r.Type
	}
	return out
}

// Subtypes returns the direct subtypes of typ.
func (t *TypeIndex) Subtypes(typ TypeDescriptor) []TypeDescriptor {
	rels := t.directSub[typ.ClassName]
	out := make([]TypeDescriptor, len(rels))
	for i, r := range rels {
		out[i] = r.Type
	}
	return out
}

// TransitiveSupertypes returns every supertype reachable by repeatedly
// following Extends/Implements edges, deduplicated, in BFS discovery order.
func (t *TypeIndex) TransitiveSupertypes(typ TypeDescriptor) []TypeDescriptor {
	return t.walk(typ, t.directSuper)
}

// TransitiveSubtypes returns every subtype reachable transitively,
// deduplicated, in BFS discovery order.
func (t *TypeIndex) TransitiveSubtypes(typ TypeDescriptor) []TypeDescriptor {
	return t.walk(typ, t.directSub)
}

func (t *TypeIndex) walk(start TypeDescriptor, adj map[string][]typeRel) []TypeDescriptor {
	visited := map[string]bool{start.ClassName: true}
	queue := []TypeDescriptor{start}
	var out []TypeDescriptor
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, rel := range adj[cur.ClassName] {
			if visited[rel.Type.ClassName] {
				continue
			}
			visited[rel.Type.ClassName] = true
			out = append(out, rel.Type)
			queue = append(queue, rel.Type)
		}
	}
	return out
}
