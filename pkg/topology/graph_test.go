package topology

import "testing"

func threeSpaceTopology() *Topology {
	return &Topology{
		Storeys: []Storey{{ID: "s0"}},
		Spaces: []Space{
			{ID: "a", StoreyID: "s0"},
			{ID: "b", StoreyID: "s0"},
			{ID: "c", StoreyID: "s0"},
		},
		Adjacencies: []Edge{NewEdge(EdgeAdjacency, "a", "b")},
		Connections: []Edge{NewEdge(EdgeConnection, "b", "c")},
	}
}

func TestGraphNeighbors(t *testing.T) {
	g := NewGraph(threeSpaceTopology())

	n := g.Neighbors("b")
	if len(n) != 2 || n[0] != "a" || n[1] != "c" {
		t.Errorf("expected b's neighbors to be [a c], got %v", n)
	}
}

func TestGraphComponentsSingleComponent(t *testing.T) {
	g := NewGraph(threeSpaceTopology())

	comps := g.Components()
	if len(comps) != 1 {
		t.Fatalf("expected 1 connected component, got %d: %v", len(comps), comps)
	}
	if len(comps[0]) != 3 {
		t.Errorf("expected component of size 3, got %d", len(comps[0]))
	}
}

func TestGraphComponentsDisconnected(t *testing.T) {
	topo := &Topology{
		Spaces: []Space{{ID: "a"}, {ID: "b"}, {ID: "isolated"}},
		Adjacencies: []Edge{
			NewEdge(EdgeAdjacency, "a", "b"),
		},
	}
	g := NewGraph(topo)

	comps := g.Components()
	if len(comps) != 2 {
		t.Fatalf("expected 2 connected components, got %d: %v", len(comps), comps)
	}
}

func TestGraphConnectedPairs(t *testing.T) {
	g := NewGraph(threeSpaceTopology())
	pairs := g.ConnectedPairs()
	if len(pairs) != 1 || pairs[0] != [2]string{"b", "c"} {
		t.Errorf("expected connected pair (b, c), got %v", pairs)
	}
}

func TestGraphReachable(t *testing.T) {
	g := NewGraph(threeSpaceTopology())
	reachable := g.Reachable("a")
	if len(reachable) != 3 {
		t.Errorf("expected all 3 spaces reachable from a, got %d", len(reachable))
	}
	if !reachable["c"] {
		t.Errorf("expected c reachable from a via b")
	}
}
