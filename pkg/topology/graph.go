package topology

import "sort"

// Graph is a query-only view over a Topology's spaces and edges: neighbor
// lookups, connected pairs, and connected components. It treats both
// adjacency and connection edges as adjacency for reachability purposes,
// since a door connection always implies a shared wall.
type Graph struct {
	topo      *Topology
	adjacency map[string]map[string]bool
}

// NewGraph builds a Graph over topo's spaces and edges. topo is not
// retained by reference for mutation; building the adjacency index is
// O(spaces + edges).
func NewGraph(topo *Topology) *Graph {
	adj := make(map[string]map[string]bool, len(topo.Spaces))
	for _, s := range topo.Spaces {
		adj[s.ID] = make(map[string]bool)
	}
	addEdge := func(a, b string) {
		if adj[a] == nil {
			adj[a] = make(map[string]bool)
		}
		if adj[b] == nil {
			adj[b] = make(map[string]bool)
		}
		adj[a][b] = true
		adj[b][a] = true
	}
	for _, e := range topo.Adjacencies {
		addEdge(e.A, e.B)
	}
	for _, e := range topo.Connections {
		addEdge(e.A, e.B)
	}
	return &Graph{topo: topo, adjacency: adj}
}

// Spaces returns every space in the topology.
func (g *Graph) Spaces() []Space { return g.topo.Spaces }

// Storeys returns every storey in the topology.
func (g *Graph) Storeys() []Storey { return g.topo.Storeys }

// Neighbors returns the set of space IDs adjacent to (or connected to) id.
func (g *Graph) Neighbors(id string) []string {
	set := g.adjacency[id]
	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// ConnectedPairs returns every door-connection edge as an (A, B) pair,
// sorted for deterministic iteration.
func (g *Graph) ConnectedPairs() [][2]string {
	pairs := make([][2]string, 0, len(g.topo.Connections))
	for _, e := range g.topo.Connections {
		pairs = append(pairs, [2]string{e.A, e.B})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})
	return pairs
}

// Components returns the connected components of the adjacency+connection
// graph, each as a sorted slice of space IDs, via breadth-first search from
// every unvisited space in ID order (making the result deterministic
// regardless of map iteration order).
func (g *Graph) Components() [][]string {
	ids := make([]string, 0, len(g.topo.Spaces))
	for _, s := range g.topo.Spaces {
		ids = append(ids, s.ID)
	}
	sort.Strings(ids)

	visited := make(map[string]bool, len(ids))
	var components [][]string

	for _, start := range ids {
		if visited[start] {
			continue
		}
		queue := []string{start}
		visited[start] = true
		var component []string
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			component = append(component, cur)
			for _, n := range g.Neighbors(cur) {
				if !visited[n] {
					visited[n] = true
					queue = append(queue, n)
				}
			}
		}
		sort.Strings(component)
		components = append(components, component)
	}

	return components
}

// Reachable returns the set of space IDs reachable from start, including
// start itself. Empty if start is not a known space.
func (g *Graph) Reachable(start string) map[string]bool {
	reachable := make(map[string]bool)
	if _, ok := g.adjacency[start]; !ok {
		return reachable
	}
	queue := []string{start}
	reachable[start] = true
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for n := range g.adjacency[cur] {
			if !reachable[n] {
				reachable[n] = true
				queue = append(queue, n)
			}
		}
	}
	return reachable
}
