package topology

import (
	"fmt"
	"sort"

	"github.com/archtopo/rdf2ifc/pkg/diag"
	"github.com/archtopo/rdf2ifc/pkg/vocab"
)

// Validate checks a Topology for the structural problems a malformed or
// partial RDF graph can produce: duplicate IDs, edges naming an unknown
// space, unknown storey references, unnamed spaces, spaces with no target
// area, and orphan spaces. It never rewrites the topology and returns only
// the diagnostics found.
func Validate(topo *Topology) diag.List {
	var diags diag.List

	diags = append(diags, checkDuplicateIDs(topo)...)
	diags = append(diags, checkEdgeEndpoints(topo)...)
	diags = append(diags, checkStoreyRefs(topo)...)
	diags = append(diags, checkMissingFields(topo)...)
	diags = append(diags, checkOrphanSpaces(topo)...)

	return diags
}

func checkDuplicateIDs(topo *Topology) diag.List {
	var diags diag.List

	storeySeen := make(map[string]bool)
	for _, st := range topo.Storeys {
		if storeySeen[st.ID] {
			diags = append(diags, diag.Error("TOPOLOGY_DUPLICATE_STOREY_ID",
				fmt.Sprintf("storey id %q appears more than once", st.ID), st.ID))
		}
		storeySeen[st.ID] = true
	}

	spaceSeen := make(map[string]bool)
	for _, sp := range topo.Spaces {
		if spaceSeen[sp.ID] {
			diags = append(diags, diag.Error("TOPOLOGY_DUPLICATE_SPACE_ID",
				fmt.Sprintf("space id %q appears more than once", sp.ID), sp.ID))
		}
		spaceSeen[sp.ID] = true
	}

	return diags
}

func checkEdgeEndpoints(topo *Topology) diag.List {
	var diags diag.List

	known := make(map[string]bool, len(topo.Spaces))
	for _, sp := range topo.Spaces {
		known[sp.ID] = true
	}

	check := func(edges []Edge, kind string) {
		for _, e := range edges {
			if !known[e.A] {
				diags = append(diags, diag.Error("TOPOLOGY_UNKNOWN_EDGE_ENDPOINT",
					fmt.Sprintf("%s edge references unknown space %q", kind, e.A), e.A, e.B))
			}
			if !known[e.B] {
				diags = append(diags, diag.Error("TOPOLOGY_UNKNOWN_EDGE_ENDPOINT",
					fmt.Sprintf("%s edge references unknown space %q", kind, e.B), e.A, e.B))
			}
		}
	}
	check(topo.Adjacencies, "adjacency")
	check(topo.Connections, "connection")

	return diags
}

// checkStoreyRefs flags spaces whose StoreyID names no storey in the
// topology. The extractor can never produce this (it synthesizes the
// default storey when containment is unresolvable), so a hit here means a
// hand-assembled or corrupted topology.
func checkStoreyRefs(topo *Topology) diag.List {
	known := make(map[string]bool, len(topo.Storeys))
	for _, st := range topo.Storeys {
		known[st.ID] = true
	}

	var diags diag.List
	for _, sp := range topo.Spaces {
		if sp.StoreyID == "" || known[sp.StoreyID] {
			continue
		}
		diags = append(diags, diag.Error("TOPOLOGY_UNKNOWN_STOREY",
			fmt.Sprintf("space %q references unknown storey %q", sp.ID, sp.StoreyID), sp.ID, sp.StoreyID))
	}
	return diags
}

func checkMissingFields(topo *Topology) diag.List {
	var diags diag.List
	for _, sp := range topo.Spaces {
		if sp.Name == "" {
			diags = append(diags, diag.Warning("TOPOLOGY_SPACE_NO_NAME",
				fmt.Sprintf("space %q has no name; a synthetic label will be assigned downstream", sp.ID), sp.ID))
		}
		if !sp.HasTargetArea {
			diags = append(diags, diag.Warning("TOPOLOGY_SPACE_NO_TARGET_AREA",
				fmt.Sprintf("space %q has no target area; the configured default will be used", sp.ID), sp.ID))
		}
	}
	return diags
}

// checkOrphanSpaces flags spaces with no adjacency and no connection edge at
// all: not an error (a single-room building is valid), but worth surfacing
// since it is frequently a sign the source graph is missing adjacency
// triples rather than a true single-space building.
func checkOrphanSpaces(topo *Topology) diag.List {
	var diags diag.List
	if len(topo.Spaces) <= 1 {
		return diags
	}

	touched := make(map[string]bool)
	for _, e := range topo.Adjacencies {
		touched[e.A] = true
		touched[e.B] = true
	}
	for _, e := range topo.Connections {
		touched[e.A] = true
		touched[e.B] = true
	}

	var orphans []string
	for _, sp := range topo.Spaces {
		if !touched[sp.ID] {
			orphans = append(orphans, sp.ID)
		}
	}
	sort.Strings(orphans)
	for _, id := range orphans {
		diags = append(diags, diag.Warning("TOPOLOGY_ORPHAN_SPACE",
			fmt.Sprintf("space %q has no adjacency or connection edges", id), id))
	}
	return diags
}

// ValidateContainment walks the raw containment triples in store (using
// reg's registered containment properties) for cycles, independent of the
// already-flattened Topology. A well-formed RDF graph never contains a
// storey nested inside a space that is itself on that storey; this check
// exists because nothing about the Topology's flat StoreyID field can
// detect such a cycle after the fact.
func ValidateContainment(store TripleStore, reg *vocab.Registry) diag.List {
	adj := make(map[string][]string)
	for _, predicate := range reg.URIs(vocab.RoleContainmentProperty) {
		for _, t := range store.TriplesWithPredicate(predicate) {
			adj[t.Subject] = append(adj[t.Subject], t.Object)
		}
	}

	var diags diag.List
	visited := make(map[string]bool)
	recStack := make(map[string]bool)

	var nodes []string
	for n := range adj {
		nodes = append(nodes, n)
	}
	sort.Strings(nodes)

	var dfs func(node string, path []string) []string
	dfs = func(node string, path []string) []string {
		visited[node] = true
		recStack[node] = true
		path = append(path, node)

		neighbors := append([]string(nil), adj[node]...)
		sort.Strings(neighbors)
		for _, next := range neighbors {
			if recStack[next] {
				return append(append([]string(nil), path...), next)
			}
			if !visited[next] {
				if cycle := dfs(next, path); cycle != nil {
					return cycle
				}
			}
		}

		recStack[node] = false
		return nil
	}

	for _, n := range nodes {
		if visited[n] {
			continue
		}
		if cycle := dfs(n, nil); cycle != nil {
			diags = append(diags, diag.Error("TOPOLOGY_CYCLIC_CONTAINMENT",
				fmt.Sprintf("containment cycle detected: %v", cycle), cycle...))
		}
	}

	return diags
}
