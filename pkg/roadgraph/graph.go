// Package roadgraph is a directed multigraph over lane ids, supporting
// Dijkstra shortest-path search and induced-subgraph extraction.
package roadgraph

import (
	"container/heap"
	"sort"
)

// LaneID identifies a lane within the graph.
type LaneID = uint64

// Connection is a directed edge from one lane to a successor lane,
// carrying the traversal cost.
type Connection struct {
	FromID LaneID
	ToID   LaneID
	Weight float64
}

type connectionKey struct {
	from LaneID
	to   LaneID
}

// RoadGraph is a directed multigraph keyed by lane id; at most one
// Connection exists per ordered (from,to) pair.
type RoadGraph struct {
	toSuccessors   map[LaneID]map[LaneID]struct{}
	toPredecessors map[LaneID]map[LaneID]struct{}
	allConnections map[connectionKey]Connection
}

// New builds an empty graph.
func New() *RoadGraph {
	return &RoadGraph{
		toSuccessors:   make(map[LaneID]map[LaneID]struct{}),
		toPredecessors: make(map[LaneID]map[LaneID]struct{}),
		allConnections: make(map[connectionKey]Connection),
	}
}

// AddConnection mirrors connection into the successor/predecessor
// indices and records it in allConnections, overwriting any existing
// connection for the same ordered pair (idempotent on an identical
// repeat).
func (g *RoadGraph) AddConnection(connection Connection) {
	if g.toSuccessors[connection.FromID] == nil {
		g.toSuccessors[connection.FromID] = make(map[LaneID]struct{})
	}
	g.toSuccessors[connection.FromID][connection.ToID] = struct{}{}

	if g.toPredecessors[connection.ToID] == nil {
		g.toPredecessors[connection.ToID] = make(map[LaneID]struct{})
	}
	g.toPredecessors[connection.ToID][connection.FromID] = struct{}{}

	g.allConnections[connectionKey{connection.FromID, connection.ToID}] = connection
}

// FindConnection looks up the connection from→to, if any.
func (g *RoadGraph) FindConnection(from, to LaneID) (Connection, bool) {
	c, ok := g.allConnections[connectionKey{from, to}]
	return c, ok
}

// Successors returns the set of lane ids reachable from lane in one
// hop, in no particular order.
func (g *RoadGraph) Successors(lane LaneID) []LaneID {
	return keys(g.toSuccessors[lane])
}

// Predecessors returns the set of lane ids that connect directly into
// lane, in no particular order.
func (g *RoadGraph) Predecessors(lane LaneID) []LaneID {
	return keys(g.toPredecessors[lane])
}

func keys(m map[LaneID]struct{}) []LaneID {
	out := make([]LaneID, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// sortedKeys returns m's keys in ascending order, giving Dijkstra a
// deterministic relaxation order in place of true insertion order.
func sortedKeys(m map[LaneID]struct{}) []LaneID {
	out := keys(m)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// pqItem is one entry in the Dijkstra frontier.
type pqItem struct {
	cost  float64
	lane  LaneID
	index int
}

// laneHeap is a min-heap over pqItem ordered by accumulated cost, then
// by lane id to make tie-breaking deterministic.
type laneHeap []*pqItem

func (h laneHeap) Len() int { return len(h) }
func (h laneHeap) Less(i, j int) bool {
	if h[i].cost != h[j].cost {
		return h[i].cost < h[j].cost
	}
	return h[i].lane < h[j].lane
}
func (h laneHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *laneHeap) Push(x any) {
	item := x.(*pqItem)
	item.index = len(*h)
	*h = append(*h, item)
}
func (h *laneHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	item.index = -1
	*h = old[:n-1]
	return item
}

// GetBestPath runs Dijkstra from `from` to `to`, relaxing successors
// with each connection's weight. Returns the reconstructed path
// starting at from and ending at to, or nil if to is unreachable.
func (g *RoadGraph) GetBestPath(from, to LaneID) []LaneID {
	shortest := map[LaneID]float64{from: 0.0}
	previous := map[LaneID]LaneID{}
	visited := map[LaneID]struct{}{}

	pq := &laneHeap{}
	heap.Init(pq)
	heap.Push(pq, &pqItem{cost: 0.0, lane: from})

	for pq.Len() > 0 {
		current := heap.Pop(pq).(*pqItem)
		if _, seen := visited[current.lane]; seen {
			continue
		}
		visited[current.lane] = struct{}{}

		if current.lane == to {
			return reconstructPath(from, to, previous)
		}

		for _, successor := range sortedKeys(g.toSuccessors[current.lane]) {
			connection, ok := g.FindConnection(current.lane, successor)
			if !ok {
				continue
			}
			newCost := current.cost + connection.Weight
			if existing, ok := shortest[successor]; !ok || newCost < existing {
				shortest[successor] = newCost
				previous[successor] = current.lane
				heap.Push(pq, &pqItem{cost: newCost, lane: successor})
			}
		}
	}

	return nil
}

func reconstructPath(from, to LaneID, previous map[LaneID]LaneID) []LaneID {
	path := []LaneID{to}
	current := to
	for current != from {
		prev, ok := previous[current]
		if !ok {
			return nil
		}
		current = prev
		path = append(path, current)
	}

	// path was built backward from `to`; reverse it in place.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// CreateSubgraph returns the induced subgraph whose connections have
// both endpoints in laneIDs.
func (g *RoadGraph) CreateSubgraph(laneIDs []LaneID) *RoadGraph {
	allowed := make(map[LaneID]struct{}, len(laneIDs))
	for _, id := range laneIDs {
		allowed[id] = struct{}{}
	}

	sub := New()
	for _, connection := range g.allConnections {
		_, fromOK := allowed[connection.FromID]
		_, toOK := allowed[connection.ToID]
		if fromOK && toOK {
			sub.AddConnection(connection)
		}
	}
	return sub
}
