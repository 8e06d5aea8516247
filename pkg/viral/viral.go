// Package viral simulates discrete-generation content propagation over the
// followers view of a follows graph.
//
// A share starts at one account and spreads breadth-first to followers.
// Trend setters are subject to a saturation gate: once more than 20% of a
// trend setter's followers have already viewed the content, that account
// stops sharing entirely. Each growth step of the cumulative visited set is
// reported as a generation snapshot, up to a configurable limit.
//
// The simulation is fully deterministic given the graph, the start vertex,
// and the trend-setter set: no decay, no re-exposure after suppression, no
// randomization.
package viral

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/matzehuels/trendspot/pkg/digraph"
	"github.com/matzehuels/trendspot/pkg/rank"
)

// Sentinel errors for simulation runs.
var (
	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = errors.New("viral: graph is nil")

	// ErrStartVertexNotFound is returned when the start ID is absent. The
	// check happens before traversal begins, so a bad start never fails
	// deep inside the walk.
	ErrStartVertexNotFound = errors.New("viral: start vertex not found")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("viral: invalid option supplied")
)

// Default limits for a simulation run.
const (
	// DefaultMaxGenerations bounds the number of emitted snapshots.
	DefaultMaxGenerations = 10

	// DefaultMaxVisited is the hard safety cutoff on processed vertices,
	// bounding cost on very large graphs.
	DefaultMaxVisited = 100000

	// SaturationFraction is the share of a trend setter's followers that
	// may have viewed the content before the setter stops sharing.
	SaturationFraction = 0.2
)

// Generation is one reported stage of the simulation: the cumulative set of
// visited accounts after a growth step. Members lists vertex IDs in visit
// order; Graph is a detached induced subgraph over them.
type Generation struct {
	Index   int
	Members []int
	Graph   *digraph.Graph
}

// Option configures a simulation via functional arguments. Invalid options
// are recorded and surfaced as ErrOptionViolation when Spread runs.
type Option func(*options)

type options struct {
	maxDepth       int // 0 = unbounded
	maxGenerations int
	maxVisited     int
	onGeneration   func(gen Generation)
	err            error
}

func defaultOptions() options {
	return options{
		maxGenerations: DefaultMaxGenerations,
		maxVisited:     DefaultMaxVisited,
	}
}

// WithMaxDepth bounds the traversal depth; items queued deeper than d are
// discarded when dequeued. The start vertex has depth 0 and its followers
// depth 1. d == 0 disables the bound; d < 0 is an option violation.
func WithMaxDepth(d int) Option {
	return func(o *options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.maxDepth = d
	}
}

// WithMaxGenerations bounds the number of emitted snapshots; the run ends
// once the bound is reached. n <= 0 is an option violation.
func WithMaxGenerations(n int) Option {
	return func(o *options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: MaxGenerations must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.maxGenerations = n
	}
}

// WithMaxVisited overrides the safety cutoff on processed vertices.
// n <= 0 is an option violation.
func WithMaxVisited(n int) Option {
	return func(o *options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: MaxVisited must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.maxVisited = n
	}
}

// WithOnGeneration registers a callback invoked as each generation is
// emitted, before the run continues.
func WithOnGeneration(fn func(gen Generation)) Option {
	return func(o *options) {
		if fn != nil {
			o.onGeneration = fn
		}
	}
}

// queueItem pairs a vertex ID with its BFS depth.
type queueItem struct {
	id    int
	depth int
}

// walker encapsulates mutable simulation state. Queued, viewed, and visited
// membership are hash-set backed so per-step cost is independent of queue
// length.
type walker struct {
	graph   *digraph.Graph
	setters rank.Set
	opts    options

	queue       []queueItem
	queued      map[int]bool
	viewed      map[int]bool
	visited     map[int]bool
	visitOrder  []int
	generations []Generation
	emittedSize int
}

// Spread runs the propagation simulation from start and returns the emitted
// generation snapshots. setters may be nil, in which case no vertex is
// saturation-gated. Returns ErrStartVertexNotFound if start is absent.
func Spread(g *digraph.Graph, start int, setters rank.Set, opts ...Option) ([]Generation, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !g.HasVertex(start) {
		return nil, ErrStartVertexNotFound
	}

	w := &walker{
		graph:   g,
		setters: setters,
		opts:    o,
		queued:  make(map[int]bool),
		viewed:  make(map[int]bool),
		visited: make(map[int]bool),
	}
	w.seed(start)
	w.loop()
	return w.generations, nil
}

// seed queues the start vertex and all of its followers, marking each
// viewed as it is enqueued.
func (w *walker) seed(start int) {
	w.enqueue(start, 0)
	w.viewed[start] = true
	for _, f := range w.graph.Followers(start) {
		if !w.queued[f] {
			w.enqueue(f, 1)
		}
		w.viewed[f] = true
	}
}

func (w *walker) enqueue(id, depth int) {
	w.queued[id] = true
	w.queue = append(w.queue, queueItem{id: id, depth: depth})
}

// loop processes the queue FIFO until it empties, the generation limit is
// reached, or the visited safety valve trips.
func (w *walker) loop() {
	for len(w.queue) > 0 {
		if len(w.visited) >= w.opts.maxVisited {
			return
		}
		item := w.queue[0]
		w.queue = w.queue[1:]

		if w.opts.maxDepth > 0 && item.depth > w.opts.maxDepth {
			// Depth-bounded variant: deeper items are discarded.
			continue
		}
		if w.visited[item.id] {
			continue
		}

		w.share(item)
		w.visited[item.id] = true
		w.visitOrder = append(w.visitOrder, item.id)

		if len(w.visited) != w.emittedSize {
			w.emit()
			if len(w.generations) >= w.opts.maxGenerations {
				return
			}
		}
	}
}

// share applies the sharing rule for the dequeued vertex: unless the
// saturation gate trips, every follower is marked viewed and the not yet
// queued ones are enqueued one level deeper.
func (w *walker) share(item queueItem) {
	followers := w.graph.Followers(item.id)
	if w.setters.Contains(item.id) && w.saturated(followers) {
		// All-or-nothing gate: a saturated trend setter shares with no one.
		return
	}
	for _, f := range followers {
		if !w.queued[f] {
			w.enqueue(f, item.depth+1)
		}
		w.viewed[f] = true
	}
}

// saturated scans followers in order, counting how many have already viewed
// the content; it reports true as soon as the running count exceeds
// ceil(SaturationFraction * len(followers)).
func (w *walker) saturated(followers []int) bool {
	limit := int(math.Ceil(SaturationFraction * float64(len(followers))))
	count := 0
	for _, f := range followers {
		if w.viewed[f] {
			count++
			if count > limit {
				return true
			}
		}
	}
	return false
}

// emit appends a generation snapshot over the current visited set.
func (w *walker) emit() {
	gen := Generation{
		Index:   len(w.generations) + 1,
		Members: slices.Clone(w.visitOrder),
		Graph:   w.graph.Induced(w.visitOrder),
	}
	w.generations = append(w.generations, gen)
	w.emittedSize = len(w.visited)
	if w.opts.onGeneration != nil {
		w.opts.onGeneration(gen)
	}
}
