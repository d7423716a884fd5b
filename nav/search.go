package nav

import (
	"container/heap"

	"github.com/jakecoffman/cp"
)

// backtrackEpsilon is how close the back-tracked path must come to the start.
const backtrackEpsilon = 0.1

// cell is a grid offset from the search origin in whole steps. Keying on
// integer offsets keeps repeated float additions from splitting one cell
// into several.
type cell struct {
	x int
	y int
}

var cellNeighbors = [...]cell{
	{x: 1, y: 0},
	{x: -1, y: 0},
	{x: 0, y: 1},
	{x: 0, y: -1},
}

// Search finds a unit-grid route from 'from' to 'to' with greedy best-first
// search. Nodes are ordered by straight-line distance to 'to' only; ties
// pop in insertion order. Each neighbour must be free of static geometry
// for the footprint. The returned path starts at 'from' and ends at the
// first popped node within GoalTolerance of 'to'. ok is false when the
// frontier runs dry or MaxExpansions is exceeded.
func Search(q SpatialQuery, from, to cp.Vector, p Params) ([]cp.Vector, bool) {
	p = p.WithDefaults()
	if q == nil {
		return nil, false
	}

	point := func(c cell) cp.Vector {
		return cp.Vector{
			X: from.X + float64(c.x)*p.StepSize,
			Y: from.Y + float64(c.y)*p.StepSize,
		}
	}

	closed := make(map[cell]cell)
	open := &frontier{}
	heap.Init(open)

	seq := 0
	push := func(node, parent cell) {
		heap.Push(open, &frontierItem{
			node:     node,
			parent:   parent,
			priority: point(node).Distance(to),
			seq:      seq,
		})
		seq++
	}

	origin := cell{}
	push(origin, origin)

	expansions := 0
	for open.Len() > 0 {
		item := heap.Pop(open).(*frontierItem)
		if _, seen := closed[item.node]; seen {
			continue
		}
		closed[item.node] = item.parent

		pos := point(item.node)
		if pos.Distance(to) <= p.GoalTolerance {
			return backtrack(item.node, closed, point, from), true
		}

		expansions++
		if expansions > p.MaxExpansions {
			return nil, false
		}

		for _, d := range cellNeighbors {
			n := cell{x: item.node.x + d.x, y: item.node.y + d.y}
			if _, seen := closed[n]; seen {
				continue
			}
			if q.OverlapsAny(point(n), p.Footprint, StaticOnly()) {
				continue
			}
			push(n, item.node)
		}
	}

	return nil, false
}

func backtrack(goal cell, closed map[cell]cell, point func(cell) cp.Vector, from cp.Vector) []cp.Vector {
	path := []cp.Vector{point(goal)}
	cur := goal
	for point(cur).Distance(from) > backtrackEpsilon {
		parent, ok := closed[cur]
		if !ok || parent == cur {
			break
		}
		cur = parent
		path = append(path, point(cur))
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type frontierItem struct {
	node     cell
	parent   cell
	priority float64
	seq      int
	index    int
}

// frontier is a min-heap on priority, then insertion order.
type frontier []*frontierItem

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	if f[i].priority != f[j].priority {
		return f[i].priority < f[j].priority
	}
	return f[i].seq < f[j].seq
}
func (f frontier) Swap(i, j int) {
	f[i], f[j] = f[j], f[i]
	f[i].index = i
	f[j].index = j
}
func (f *frontier) Push(x any) {
	item := x.(*frontierItem)
	item.index = len(*f)
	*f = append(*f, item)
}
func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*f = old[:n-1]
	return item
}
