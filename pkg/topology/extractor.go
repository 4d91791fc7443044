package topology

import (
	"fmt"
	"sort"

	"github.com/archtopo/rdf2ifc/pkg/diag"
	"github.com/archtopo/rdf2ifc/pkg/vocab"
)

// Extract reads storeys, spaces, adjacency edges, and connection edges out
// of store using the class/property URIs registered in reg. It never
// returns an error by itself: extraction problems are reported as
// diag.Diagnostic entries, and it is the caller's responsibility (normally
// pkg/pipeline) to decide whether any ERROR entry is fatal. This mirrors
// the uniform result-plus-diagnostics shape used by every other stage.
func Extract(store TripleStore, reg *vocab.Registry) (*Topology, diag.List) {
	var diags diag.List

	storeys, storeyDiags := extractStoreys(store, reg)
	diags = append(diags, storeyDiags...)

	spaces, spaceDiags := extractSpaces(store, reg, storeys)
	diags = append(diags, spaceDiags...)

	storeys = ensureDefaultStorey(storeys, spaces)

	adjacencies := extractEdges(store, reg, vocab.RoleAdjacencyProperty, EdgeAdjacency)
	connections := extractEdges(store, reg, vocab.RoleConnectionProperty, EdgeConnection)

	topo := &Topology{
		Storeys:     storeys,
		Spaces:      spaces,
		Adjacencies: adjacencies,
		Connections: connections,
	}
	return topo, diags
}

func extractStoreys(store TripleStore, reg *vocab.Registry) ([]Storey, diag.List) {
	var diags diag.List
	seen := make(map[string]bool)
	var storeys []Storey

	for _, classURI := range reg.URIs(vocab.RoleStoreyClass) {
		for _, subject := range store.SubjectsOfType(classURI) {
			if seen[subject] {
				continue
			}
			seen[subject] = true

			st := Storey{ID: subject}
			if name := firstObject(store, reg, subject, vocab.RoleNameProperty); name != "" {
				st.Name = name
			}
			if elev, ok := firstFloat(store, reg, subject, vocab.RoleElevationProperty); ok {
				st.Elevation = elev
			}
			storeys = append(storeys, st)
		}
	}

	sort.Slice(storeys, func(i, j int) bool {
		if storeys[i].Elevation != storeys[j].Elevation {
			return storeys[i].Elevation < storeys[j].Elevation
		}
		return storeys[i].ID < storeys[j].ID
	})
	for i := range storeys {
		storeys[i].Order = i
	}

	return storeys, diags
}

func extractSpaces(store TripleStore, reg *vocab.Registry, storeys []Storey) ([]Space, diag.List) {
	var diags diag.List
	seen := make(map[string]bool)
	var spaces []Space

	storeyOf := buildStoreyMembership(store, reg, storeys)

	for _, classURI := range reg.URIs(vocab.RoleSpaceClass) {
		for _, subject := range store.SubjectsOfType(classURI) {
			if seen[subject] {
				continue
			}
			seen[subject] = true

			sp := Space{ID: subject}
			if name := firstObject(store, reg, subject, vocab.RoleNameProperty); name != "" {
				sp.Name = name
			}
			if area, ok := firstFloat(store, reg, subject, vocab.RoleAreaTargetProperty); ok {
				sp.TargetArea = area
				sp.HasTargetArea = true
			}

			if storeyID, ok := storeyOf[subject]; ok {
				sp.StoreyID = storeyID
			} else {
				sp.StoreyID = DefaultStoreyID
				diags = append(diags, diag.Warning(
					"TOPOLOGY_SPACE_NO_STOREY",
					fmt.Sprintf("space %q has no resolvable storey; assigned to synthetic default storey", subject),
					subject,
				))
			}

			spaces = append(spaces, sp)
		}
	}

	sort.Slice(spaces, func(i, j int) bool { return spaces[i].ID < spaces[j].ID })
	return spaces, diags
}

// ensureDefaultStorey appends the synthetic default storey (elevation 0)
// when any space was assigned to it, so downstream stages (including the
// export adapter, which walks the storey list) treat it like any extracted
// storey. Order indices are reassigned so they stay elevation-ascending.
func ensureDefaultStorey(storeys []Storey, spaces []Space) []Storey {
	needed := false
	for _, sp := range spaces {
		if sp.StoreyID == DefaultStoreyID {
			needed = true
			break
		}
	}
	if !needed {
		return storeys
	}
	for _, st := range storeys {
		if st.ID == DefaultStoreyID {
			return storeys
		}
	}

	storeys = append(storeys, Storey{ID: DefaultStoreyID})
	sort.Slice(storeys, func(i, j int) bool {
		if storeys[i].Elevation != storeys[j].Elevation {
			return storeys[i].Elevation < storeys[j].Elevation
		}
		return storeys[i].ID < storeys[j].ID
	})
	for i := range storeys {
		storeys[i].Order = i
	}
	return storeys
}

// buildStoreyMembership resolves each space's storey by checking
// containment properties in both directions: a storey subject that lists
// the space as object (storey "has space" space), and a space subject that
// lists a storey as object (space "on storey" storey).
func buildStoreyMembership(store TripleStore, reg *vocab.Registry, storeys []Storey) map[string]string {
	storeyIDs := make(map[string]bool, len(storeys))
	for _, st := range storeys {
		storeyIDs[st.ID] = true
	}

	membership := make(map[string]string)
	for _, predicate := range reg.URIs(vocab.RoleContainmentProperty) {
		for _, t := range store.TriplesWithPredicate(predicate) {
			switch {
			case storeyIDs[t.Subject]:
				// storey -> space
				if _, exists := membership[t.Object]; !exists {
					membership[t.Object] = t.Subject
				}
			case storeyIDs[t.Object]:
				// space -> storey
				if _, exists := membership[t.Subject]; !exists {
					membership[t.Subject] = t.Object
				}
			}
		}
	}
	return membership
}

func extractEdges(store TripleStore, reg *vocab.Registry, role vocab.Role, kind EdgeKind) []Edge {
	seen := make(map[Edge]bool)
	var edges []Edge
	for _, predicate := range reg.URIs(role) {
		for _, t := range store.TriplesWithPredicate(predicate) {
			if t.Subject == t.Object {
				continue
			}
			e := NewEdge(kind, t.Subject, t.Object)
			if !seen[e] {
				seen[e] = true
				edges = append(edges, e)
			}
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].A != edges[j].A {
			return edges[i].A < edges[j].A
		}
		return edges[i].B < edges[j].B
	})
	return edges
}

func firstObject(store TripleStore, reg *vocab.Registry, subject string, role vocab.Role) string {
	for _, predicate := range reg.URIs(role) {
		if objs := store.Objects(subject, predicate); len(objs) > 0 {
			return objs[0]
		}
	}
	return ""
}

func firstFloat(store TripleStore, reg *vocab.Registry, subject string, role vocab.Role) (float64, bool) {
	for _, predicate := range reg.URIs(role) {
		for _, obj := range store.Objects(subject, predicate) {
			var f float64
			if _, err := fmt.Sscanf(obj, "%g", &f); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}
