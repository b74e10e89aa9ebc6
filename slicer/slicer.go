// Package slicer implements the backward dataflow/slicing engine: a
// memoised reverse traversal over DataFlow edges that collects constants,
// records propagation paths, and treats boxing/unboxing, field loads,
// enum constant initialisation, and cross-method return values as
// pass-through, per the frontend's DataFlow{Assign} lowering contract.
package slicer

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/viant/vmgraph/graph"
)

// AnalysisConfig bounds and shapes one backward-slice computation.
type AnalysisConfig struct {
	MaxDepth            uint32
	TraverseMethodCalls bool
	CollectPaths        bool
}

// DefaultAnalysisConfig returns the permissive default: unbounded depth,
// following calls into callees, without path recording (paths are the
// more expensive option and are opt-in).
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{MaxDepth: ^uint32(0), TraverseMethodCalls: true, CollectPaths: false}
}

func (c AnalysisConfig) fingerprint() string {
	return fmt.Sprintf("%d|%v|%v", c.MaxDepth, c.TraverseMethodCalls, c.CollectPaths)
}

// Result is the outcome of one backward slice, rooted at a seed NodeID.
type Result struct {
	Seed      graph.NodeID
	direct    []*graph.Constant
	derived   []*graph.Constant
	Paths     [][]graph.NodeID
}

// DirectConstants returns constant nodes reached directly by reverse
// dataflow traversal, ordered by first-visit time.
func (r *Result) DirectConstants() []*graph.Constant { return r.direct }

// AllConstants returns direct constants, then derived constants (those
// resolved through a field's static initialiser), then constants obtained
// by resolving any EnumValueReference found among a direct enum
// constant's constructor arguments through the enum index, flattened in.
func (r *Result) AllConstants(store *graph.Store) []*graph.Constant {
	out := append([]*graph.Constant{}, r.direct...)
	out = append(out, r.derived...)
	for _, c := range r.direct {
		if c.ConstKind != graph.ConstEnum {
			continue
		}
		for _, arg := range c.EnumArgs {
			ref, ok := arg.(graph.EnumValueReference)
			if !ok {
				continue
			}
			if args, found := store.EnumValues(ref.EnumType, ref.EnumName); found {
				out = append(out, &graph.Constant{
					ConstKind: graph.ConstEnum,
					EnumType:  ref.EnumType,
					EnumName:  ref.EnumName,
					EnumArgs:  args,
				})
			}
		}
	}
	return out
}

// filterByKind returns the constants in cs whose ConstKind is kind.
func filterByKind(cs []*graph.Constant, kind graph.ConstantKind) []*graph.Constant {
	var out []*graph.Constant
	for _, c := range cs {
		if c.ConstKind == kind {
			out = append(out, c)
		}
	}
	return out
}

// IntConstants returns the int-valued constants among direct constants.
func (r *Result) IntConstants() []*graph.Constant { return filterByKind(r.direct, graph.ConstInt) }

// LongConstants returns the long-valued constants among direct constants.
func (r *Result) LongConstants() []*graph.Constant { return filterByKind(r.direct, graph.ConstLong) }

// StringConstants returns the string-valued constants among direct constants.
func (r *Result) StringConstants() []*graph.Constant {
	return filterByKind(r.direct, graph.ConstString)
}

// BoolConstants returns the bool-valued constants among direct constants.
func (r *Result) BoolConstants() []*graph.Constant { return filterByKind(r.direct, graph.ConstBool) }

type cacheKey struct {
	graphGen uint64
	seed     graph.NodeID
	cfg      string
}

// Slicer computes and memoises backward slices over a single frozen
// graph. Its cache is bound to the Slicer instance's lifetime, which
// callers should scope to one graph -- there is no cross-graph cache
// reuse, matching the "cache invalidated only when the graph is
// discarded" memoisation contract.
type Slicer struct {
	store *graph.Store
	// graphGen distinguishes this Slicer's bound graph in the cache key;
	// it has no meaning beyond identity since a Slicer is always created
	// for exactly one Store.
	graphGen uint64

	group singleflight.Group

	mu    sync.RWMutex
	cache map[cacheKey]*Result
}

var slicerGenCounter uint64
var slicerGenMu sync.Mutex

func nextGraphGen() uint64 {
	slicerGenMu.Lock()
	defer slicerGenMu.Unlock()
	slicerGenCounter++
	return slicerGenCounter
}

// New creates a Slicer bound to a single frozen Store.
func New(store *graph.Store) *Slicer {
	return &Slicer{
		store:    store,
		graphGen: nextGraphGen(),
		cache:    map[cacheKey]*Result{},
	}
}

// BackwardSlice computes (or returns the memoised) backward slice from seed.
func (s *Slicer) BackwardSlice(seed graph.NodeID, cfg AnalysisConfig) *Result {
	key := cacheKey{graphGen: s.graphGen, seed: seed, cfg: cfg.fingerprint()}

	s.mu.RLock()
	if r, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return r
	}
	s.mu.RUnlock()

	flightKey := fmt.Sprintf("%d|%s", seed, cfg.fingerprint())
	v, _, _ := s.group.Do(flightKey, func() (interface{}, error) {
		s.mu.RLock()
		if r, ok := s.cache[key]; ok {
			s.mu.RUnlock()
			return r, nil
		}
		s.mu.RUnlock()

		r := s.compute(seed, cfg)

		s.mu.Lock()
		s.cache[key] = r
		s.mu.Unlock()
		return r, nil
	})
	return v.(*Result)
}

type frontierEntry struct {
	id   graph.NodeID
	path []graph.NodeID
}

// compute performs the reverse BFS over incoming dataflow edges described
// by the algorithm: ConstantNode contributes directly; Field contributes
// via its static initialiser (if resolvable as a constant) as a derived
// constant; Local/Parameter/Return continue backward; CallSite either
// continues into the callee's Return node (if traverse_method_calls) or
// stops, contributing nothing beyond its coarse return type.
func (s *Slicer) compute(seed graph.NodeID, cfg AnalysisConfig) *Result {
	result := &Result{Seed: seed}

	visited := map[graph.NodeID]bool{seed: true}
	depth := map[graph.NodeID]uint32{seed: 0}
	queue := []frontierEntry{{id: seed, path: []graph.NodeID{seed}}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		curDepth := depth[cur.id]
		if curDepth >= cfg.MaxDepth {
			continue
		}

		n, ok := s.store.Node(cur.id)
		if !ok {
			continue
		}

		switch v := n.(type) {
		case *graph.Constant:
			result.direct = append(result.direct, v)
			if cfg.CollectPaths {
				result.Paths = append(result.Paths, reversePath(cur.path))
			}
			continue
		case *graph.CallSite:
			if !cfg.TraverseMethodCalls {
				continue
			}
			retID, found := s.store.ReturnNodeOf(v.Callee)
			if !found {
				continue
			}
			s.enqueue(retID, cur, visited, depth, &queue)
			continue
		case *graph.Field:
			if c, ok := s.resolveFieldConstant(v.ID()); ok {
				result.derived = append(result.derived, c)
			}
			continue
		}

		// Local/Parameter/Return: follow incoming dataflow edges backward.
		for _, e := range s.store.IncomingDataFlow(cur.id) {
			s.enqueue(e.FromID, cur, visited, depth, &queue)
		}
	}

	return result
}

// resolveFieldConstant follows a field's recorded static-initialiser
// store backward through plain dataflow, independent of the primary
// traversal's visited/depth bookkeeping, and reports the constant it
// resolves to, if any. A constant reached this way is a derived
// constant, never a direct one: the field node itself stands between
// the seed and the value.
func (s *Slicer) resolveFieldConstant(field graph.NodeID) (*graph.Constant, bool) {
	visited := map[graph.NodeID]bool{field: true}
	queue := []graph.NodeID{field}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range s.store.IncomingDataFlow(cur) {
			if cur == field && e.FlowKind != graph.FieldStore {
				continue
			}
			if visited[e.FromID] {
				continue
			}
			visited[e.FromID] = true
			n, ok := s.store.Node(e.FromID)
			if !ok {
				continue
			}
			if c, ok := n.(*graph.Constant); ok {
				return c, true
			}
			if _, isCall := n.(*graph.CallSite); isCall {
				continue
			}
			queue = append(queue, e.FromID)
		}
	}
	return nil, false
}

func (s *Slicer) enqueue(next graph.NodeID, cur frontierEntry, visited map[graph.NodeID]bool, depth map[graph.NodeID]uint32, queue *[]frontierEntry) {
	if next == 0 || visited[next] {
		return
	}
	visited[next] = true
	depth[next] = depth[cur.id] + 1
	path := append(append([]graph.NodeID{}, cur.path...), next)
	*queue = append(*queue, frontierEntry{id: next, path: path})
}

func reversePath(p []graph.NodeID) []graph.NodeID {
	out := make([]graph.NodeID, len(p))
	for i, id := range p {
		out[len(p)-1-i] = id
	}
	return out
}
