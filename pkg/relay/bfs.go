package relay

import (
	"github.com/matzehuels/signaltower/pkg/city"
	"github.com/matzehuels/signaltower/pkg/errors"
)

// Option configures a BFS run via functional arguments.
type Option func(*BFSOptions)

// BFSOptions holds parameters and callbacks for a BFS run.
type BFSOptions struct {
	// Target, when set, stops the search once that tower is dequeued.
	Target    city.Coord
	hasTarget bool

	// OnDequeue is called for each tower as it is taken from the queue,
	// with its hop depth from the start.
	OnDequeue func(t city.Coord, depth int)
}

// DefaultOptions returns BFSOptions with no target and a no-op hook.
func DefaultOptions() BFSOptions {
	return BFSOptions{
		OnDequeue: func(city.Coord, int) {},
	}
}

// WithTarget stops the search as soon as t is dequeued.
func WithTarget(t city.Coord) Option {
	return func(o *BFSOptions) {
		o.Target = t
		o.hasTarget = true
	}
}

// WithOnDequeue registers a callback invoked for every dequeued tower.
func WithOnDequeue(fn func(t city.Coord, depth int)) Option {
	return func(o *BFSOptions) {
		if fn != nil {
			o.OnDequeue = fn
		}
	}
}

// Result holds the outcome of a BFS run:
//   - Order: towers in dequeue order.
//   - Depth: hop count from the start for every discovered tower.
//   - Parent: BFS-tree predecessor for every discovered tower but the start.
type Result struct {
	Start  city.Coord
	Order  []city.Coord
	Depth  map[city.Coord]int
	Parent map[city.Coord]city.Coord
}

// Reached reports whether t was discovered.
func (r *Result) Reached(t city.Coord) bool {
	_, ok := r.Depth[t]
	return ok
}

// PathTo walks parent links back from dest and returns the path start → dest.
// The boolean is false, and the path empty, when dest was not discovered.
func (r *Result) PathTo(dest city.Coord) ([]city.Coord, bool) {
	if !r.Reached(dest) {
		return []city.Coord{}, false
	}
	path := []city.Coord{}
	for cur := dest; ; {
		path = append(path, cur)
		prev, ok := r.Parent[cur]
		if !ok {
			break
		}
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	if path[0] != r.Start {
		return []city.Coord{}, false
	}
	return path, true
}

// queueItem pairs a node position with its BFS depth.
type queueItem struct {
	node  int
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	graph   *RangeGraph
	opts    BFSOptions
	queue   []queueItem
	visited []bool
	res     *Result
}

// BFS runs breadth-first search from start.
// Returns INVALID_ARGUMENT if start is not a node.
func (g *RangeGraph) BFS(start city.Coord, opts ...Option) (*Result, error) {
	s, ok := g.index[start]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "start tower %s not among towers", start)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	n := len(g.nodes)
	w := &walker{
		graph:   g,
		opts:    o,
		queue:   make([]queueItem, 0, n),
		visited: make([]bool, n),
		res: &Result{
			Start:  start,
			Order:  make([]city.Coord, 0, n),
			Depth:  make(map[city.Coord]int, n),
			Parent: make(map[city.Coord]city.Coord, n),
		},
	}
	w.enqueue(s, 0, -1)
	w.loop()
	return w.res, nil
}

// enqueue marks node visited at depth d and records its parent.
func (w *walker) enqueue(node, d, parent int) {
	w.visited[node] = true
	id := w.graph.nodes[node]
	w.res.Depth[id] = d
	if parent >= 0 {
		w.res.Parent[id] = w.graph.nodes[parent]
	}
	w.queue = append(w.queue, queueItem{node: node, depth: d})
}

// loop processes the queue until it is empty or the target is dequeued.
func (w *walker) loop() {
	for len(w.queue) > 0 {
		item := w.queue[0]
		w.queue = w.queue[1:]

		id := w.graph.nodes[item.node]
		w.res.Order = append(w.res.Order, id)
		w.opts.OnDequeue(id, item.depth)
		if w.opts.hasTarget && id == w.opts.Target {
			return
		}
		for _, nbr := range w.graph.adj[item.node] {
			if !w.visited[nbr] {
				w.enqueue(nbr, item.depth+1, item.node)
			}
		}
	}
}
