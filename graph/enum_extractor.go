package graph

// ExtractEnumConstants derives enumClass's constant constructor-argument
// table from an already-lowered <clinit> method body: starting
// at the method's entry node, walk the ControlFlow{Sequential} chain in
// program order maintaining two maps -- value-of-local (a Local resolved
// to a constant or enum-reference value) and alias-of-local (a Local that
// is the direct target of a fresh `<init>` allocation, aliasing itself as
// its own allocation root). On each FieldStore into one of enumClass's own
// static fields, the stored local is resolved through alias-of-local to
// its allocation root; the root's `<init>` call site's argument list has
// its leading (name, ordinal) pair dropped per the bytecode enum
// constructor convention, and the remaining arguments -- each resolved
// through value-of-local or as a direct constant/enum reference -- are
// recorded as that field's constructor arguments.
//
// ExtractEnumConstants reads the graph's nodes and edges and records its
// results through Store.AddEnumValues, so it has an effect only before
// Build(); on a frozen store nothing is recorded. Calling it more than
// once for the same class simply re-derives and overwrites the same
// entries, so callers may re-run it idempotently.
func ExtractEnumConstants(store *Store, enumClass string) error {
	clinit := MethodDescriptor{DeclaringClass: TypeDescriptor{ClassName: enumClass}, Name: "<clinit>"}
	entry, ok := methodEntryNode(store, clinit)
	if !ok {
		return nil
	}

	valueOf := map[NodeID]interface{}{}
	aliasOf := map[NodeID]NodeID{}

	for cur := entry; cur != 0; cur = nextSequential(store, cur) {
		if local, ok := store.Node(cur); ok {
			if l, isLocal := local.(*Local); isLocal {
				trackLocalValue(store, l.NID, valueOf, aliasOf)
			}
		}
		recordFieldStores(store, cur, enumClass, aliasOf, valueOf)
	}
	return nil
}

// methodEntryNode finds m's entry node: the Local/CallSite owned by m with
// no incoming Sequential control-flow edge. A method's node universe is
// typically small enough that the linear scan is not a concern (see
// Store.ReturnNodeOf, which takes the same approach).
func methodEntryNode(store *Store, m MethodDescriptor) (NodeID, bool) {
	var candidates []NodeID
	for _, n := range store.byKind[KindLocal] {
		if n.(*Local).OwningMethod.Signature() == m.Signature() {
			candidates = append(candidates, n.ID())
		}
	}
	for _, n := range store.byKind[KindCallSite] {
		if n.(*CallSite).Caller.Signature() == m.Signature() {
			candidates = append(candidates, n.ID())
		}
	}
	for _, id := range candidates {
		seq := false
		for _, e := range store.Incoming(id) {
			if cf, ok := e.(*ControlFlowEdge); ok && cf.FlowKind == Sequential {
				seq = true
				break
			}
		}
		if !seq {
			return id, true
		}
	}
	return 0, false
}

func nextSequential(store *Store, id NodeID) NodeID {
	for _, e := range store.OutgoingControlFlow(id) {
		if e.FlowKind == Sequential {
			return e.ToID
		}
	}
	return 0
}

// trackLocalValue updates value-of-local/alias-of-local for a Local
// assigned via its single incoming Assign edge: a fresh allocation (a
// CallSite whose callee is "<init>") makes the local its own alias root;
// assigning from a Local that is itself already an alias root (e.g.
// `tmp2 = tmp1;` after `tmp1 = new Exp(...);`) propagates that same root
// through, rather than losing it; anything else resolvable is recorded by
// value instead.
func trackLocalValue(store *Store, id NodeID, valueOf map[NodeID]interface{}, aliasOf map[NodeID]NodeID) {
	for _, e := range store.IncomingDataFlow(id) {
		if e.FlowKind != Assign {
			continue
		}
		if src, ok := store.Node(e.FromID); ok {
			if cs, isCall := src.(*CallSite); isCall && cs.Callee.Name == "<init>" {
				aliasOf[id] = id
				return
			}
			if l, isLocal := src.(*Local); isLocal {
				if root, aliased := aliasOf[l.NID]; aliased {
					aliasOf[id] = root
					return
				}
			}
		}
		if v, ok := resolveNodeValue(store, e.FromID, valueOf); ok {
			valueOf[id] = v
		}
		return
	}
}

// recordFieldStores records, for each FieldStore edge leaving cur into one
// of enumClass's own static fields, that field's resolved constructor
// arguments.
func recordFieldStores(store *Store, cur NodeID, enumClass string, aliasOf map[NodeID]NodeID, valueOf map[NodeID]interface{}) {
	for _, e := range store.OutgoingDataFlow(cur) {
		if e.FlowKind != FieldStore {
			continue
		}
		target, ok := store.Node(e.ToID)
		if !ok {
			continue
		}
		field, isField := target.(*Field)
		if !isField || field.Descriptor.DeclaringClass.ClassName != enumClass {
			continue
		}
		root := cur
		if r, aliased := aliasOf[cur]; aliased {
			root = r
		}
		if args, ok := constructorArgs(store, root, valueOf); ok {
			store.AddEnumValues(enumClass, field.Descriptor.Name, args)
		}
	}
}

// resolveNodeValue resolves a node to the literal/reference value it
// carries: a Constant's own scalar value, a previously-tracked Local's
// value-of-local entry, or an EnumValueReference for a Field standing in
// for another enum constant's backing field.
func resolveNodeValue(store *Store, id NodeID, valueOf map[NodeID]interface{}) (interface{}, bool) {
	n, ok := store.Node(id)
	if !ok {
		return nil, false
	}
	switch v := n.(type) {
	case *Constant:
		return v.Value(), true
	case *Local:
		val, ok := valueOf[v.NID]
		return val, ok
	case *Field:
		return EnumValueReference{EnumType: v.Descriptor.DeclaringClass.ClassName, EnumName: v.Descriptor.Name}, true
	default:
		return nil, false
	}
}

// constructorArgs resolves root's `<init>` call site (found via root's
// incoming Assign edge) argument list, dropping the bytecode-convention
// leading (name, ordinal) pair, and resolves each remaining argument via
// resolveNodeValue.
func constructorArgs(store *Store, root NodeID, valueOf map[NodeID]interface{}) ([]interface{}, bool) {
	for _, e := range store.IncomingDataFlow(root) {
		if e.FlowKind != Assign {
			continue
		}
		n, ok := store.Node(e.FromID)
		if !ok {
			continue
		}
		cs, isCall := n.(*CallSite)
		if !isCall || cs.Callee.Name != "<init>" {
			continue
		}
		if len(cs.ArgumentNodes) < 2 {
			return nil, false
		}
		var args []interface{}
		for _, argID := range cs.ArgumentNodes[2:] {
			v, _ := resolveNodeValue(store, argID, valueOf)
			args = append(args, v)
		}
		return args, true
	}
	return nil, false
}
