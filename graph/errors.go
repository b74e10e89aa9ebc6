package graph

import "errors"

// ErrFrozen is returned by builder methods invoked after Build().
var ErrFrozen = errors.New("graph: store is frozen")

// ErrInconsistentGraph is returned when AddNode would leave the graph
// inconsistent: a duplicate node ID, or the reserved zero ID.
var ErrInconsistentGraph = errors.New("graph: inconsistent graph")

// ErrUnknownNode is returned when an edge references a NodeID that has
// not been added to the store.
var ErrUnknownNode = errors.New("graph: unknown node")
