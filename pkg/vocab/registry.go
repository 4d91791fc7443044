// Package vocab holds the read-only table of recognized RDF class and
// property URIs. It is the single place new vocabularies are registered;
// no other package hard-codes a namespace string.
package vocab

// Vocabulary names a supported RDF ontology.
type Vocabulary string

const (
	// BOT is the W3C Building Topology Ontology.
	BOT Vocabulary = "bot"
	// Brick is the Brick Schema for built-environment metadata.
	Brick Vocabulary = "brick"
	// SBCO is the Simple Building Component Ontology.
	SBCO Vocabulary = "sbco"
	// Internal is this pipeline's own fallback vocabulary, used by fixtures
	// and tests that don't want to depend on an external ontology.
	Internal Vocabulary = "internal"
)

// Role identifies which part of the topology a URI describes.
type Role int

const (
	RoleSpaceClass Role = iota
	RoleStoreyClass
	RoleAdjacencyProperty
	RoleConnectionProperty
	RoleContainmentProperty
	RoleNameProperty
	RoleAreaTargetProperty
	RoleElevationProperty
	RoleEquipmentClass
	RolePointClass
)

// Registry is a read-only table of URI sets grouped by role. Zero value is
// an empty registry; use Default() for the four built-in vocabularies.
type Registry struct {
	uris map[Role]map[string]Vocabulary
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{uris: make(map[Role]map[string]Vocabulary)}
}

// Add registers a URI under the given role and vocabulary. Safe to call
// repeatedly with the same URI; later calls are no-ops once it exists.
func (r *Registry) Add(role Role, vocabulary Vocabulary, uri string) {
	if r.uris[role] == nil {
		r.uris[role] = make(map[string]Vocabulary)
	}
	if _, exists := r.uris[role][uri]; !exists {
		r.uris[role][uri] = vocabulary
	}
}

// Has reports whether uri is registered under role, across any enabled
// vocabulary.
func (r *Registry) Has(role Role, uri string) bool {
	_, ok := r.uris[role][uri]
	return ok
}

// VocabularyOf returns the vocabulary that registered uri under role, and
// whether it was found at all.
func (r *Registry) VocabularyOf(role Role, uri string) (Vocabulary, bool) {
	v, ok := r.uris[role][uri]
	return v, ok
}

// URIs returns every URI registered under role, across all vocabularies, in
// no particular order. Used by the extractor to scan a triple store for any
// recognized class/property regardless of which ontology produced it.
func (r *Registry) URIs(role Role) []string {
	byURI := r.uris[role]
	out := make([]string, 0, len(byURI))
	for uri := range byURI {
		out = append(out, uri)
	}
	return out
}

// VocabularyDescriptor summarizes one vocabulary's footprint in the
// registry, for debug/introspection output only.
type VocabularyDescriptor struct {
	Name      Vocabulary
	RoleCount map[Role]int
}

// Describe returns a per-vocabulary summary of registered URI counts by
// role. It adds no extraction behavior; it exists purely so callers (tests,
// a future CLI flag) can introspect what's loaded.
func (r *Registry) Describe() []VocabularyDescriptor {
	counts := make(map[Vocabulary]map[Role]int)
	for role, byURI := range r.uris {
		for _, v := range byURI {
			if counts[v] == nil {
				counts[v] = make(map[Role]int)
			}
			counts[v][role]++
		}
	}
	descs := make([]VocabularyDescriptor, 0, len(counts))
	for v, rc := range counts {
		descs = append(descs, VocabularyDescriptor{Name: v, RoleCount: rc})
	}
	return descs
}

// Default returns the built-in registry covering BOT, Brick, SBCO, and the
// Internal fallback vocabulary. Callers needing custom or additional
// vocabularies should start from NewRegistry and Add their own URIs.
func Default() *Registry {
	r := NewRegistry()

	// BOT - Building Topology Ontology (https://w3id.org/bot#)
	r.Add(RoleSpaceClass, BOT, "https://w3id.org/bot#Space")
	r.Add(RoleSpaceClass, BOT, "https://w3id.org/bot#Zone")
	r.Add(RoleStoreyClass, BOT, "https://w3id.org/bot#Storey")
	r.Add(RoleContainmentProperty, BOT, "https://w3id.org/bot#hasSpace")
	r.Add(RoleContainmentProperty, BOT, "https://w3id.org/bot#hasStorey")
	r.Add(RoleAdjacencyProperty, BOT, "https://w3id.org/bot#adjacentZone")
	r.Add(RoleConnectionProperty, BOT, "https://w3id.org/bot#connectsTo")
	r.Add(RoleEquipmentClass, BOT, "https://w3id.org/bot#Element")

	// Brick (https://brickschema.org/schema/Brick#)
	r.Add(RoleSpaceClass, Brick, "https://brickschema.org/schema/Brick#Room")
	r.Add(RoleSpaceClass, Brick, "https://brickschema.org/schema/Brick#Space")
	r.Add(RoleStoreyClass, Brick, "https://brickschema.org/schema/Brick#Floor")
	r.Add(RoleContainmentProperty, Brick, "https://brickschema.org/schema/Brick#isLocationOf")
	r.Add(RoleContainmentProperty, Brick, "https://brickschema.org/schema/Brick#hasLocation")
	r.Add(RoleAdjacencyProperty, Brick, "https://brickschema.org/schema/Brick#isAdjacentTo")
	r.Add(RoleConnectionProperty, Brick, "https://brickschema.org/schema/Brick#hasDoor")
	r.Add(RoleEquipmentClass, Brick, "https://brickschema.org/schema/Brick#Equipment")
	r.Add(RolePointClass, Brick, "https://brickschema.org/schema/Brick#Point")

	// SBCO - Simple Building Component Ontology (our house namespace)
	r.Add(RoleSpaceClass, SBCO, "https://w3id.org/sbco#Room")
	r.Add(RoleStoreyClass, SBCO, "https://w3id.org/sbco#Level")
	r.Add(RoleContainmentProperty, SBCO, "https://w3id.org/sbco#onLevel")
	r.Add(RoleAdjacencyProperty, SBCO, "https://w3id.org/sbco#sharesWallWith")
	r.Add(RoleConnectionProperty, SBCO, "https://w3id.org/sbco#hasDoorTo")
	r.Add(RoleNameProperty, SBCO, "https://w3id.org/sbco#label")
	r.Add(RoleAreaTargetProperty, SBCO, "https://w3id.org/sbco#targetArea")
	r.Add(RoleElevationProperty, SBCO, "https://w3id.org/sbco#elevation")

	// Internal fallback, used by fixtures/tests
	r.Add(RoleSpaceClass, Internal, "internal:Space")
	r.Add(RoleStoreyClass, Internal, "internal:Storey")
	r.Add(RoleContainmentProperty, Internal, "internal:storey")
	r.Add(RoleContainmentProperty, Internal, "internal:spaces")
	r.Add(RoleAdjacencyProperty, Internal, "internal:adjacentTo")
	r.Add(RoleConnectionProperty, Internal, "internal:connectsTo")
	r.Add(RoleNameProperty, Internal, "internal:name")
	r.Add(RoleAreaTargetProperty, Internal, "internal:targetArea")
	r.Add(RoleElevationProperty, Internal, "internal:elevation")
	r.Add(RoleNameProperty, BOT, "http://www.w3.org/2000/01/rdf-schema#label")
	r.Add(RoleNameProperty, Brick, "http://www.w3.org/2000/01/rdf-schema#label")

	return r
}
