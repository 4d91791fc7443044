package topology

// RDFType is the rdf:type predicate URI, used by every vocabulary to
// declare a resource's class.
const RDFType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"

// Triple is a single subject-predicate-object statement.
type Triple struct {
	Subject   string
	Predicate string
	Object    string
}

// TripleStore is the narrow read interface the extractor needs from an RDF
// graph. Parsing Turtle/RDF-XML/JSON-LD into a queryable store is out of
// scope for this module; callers own a concrete implementation (e.g.
// backed by an RDF library) and pass it in here. MemoryStore below is the in-memory, test-oriented implementation
// used throughout this module's own test suite.
type TripleStore interface {
	// SubjectsOfType returns every subject whose rdf:type includes classURI.
	SubjectsOfType(classURI string) []string
	// Objects returns every object of (subject, predicate) triples.
	Objects(subject, predicate string) []string
	// TriplesWithPredicate returns every triple using the given predicate,
	// regardless of subject. Used to discover adjacency/connection edges,
	// which are not anchored to a known subject the way storeys/spaces are.
	TriplesWithPredicate(predicate string) []Triple
}

// MemoryStore is a simple in-memory TripleStore, suitable for tests and for
// small fixtures assembled programmatically.
type MemoryStore struct {
	triples []Triple
}

// NewMemoryStore builds an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Add appends a triple to the store.
func (m *MemoryStore) Add(subject, predicate, object string) {
	m.triples = append(m.triples, Triple{Subject: subject, Predicate: predicate, Object: object})
}

// AddType is shorthand for Add(subject, RDFType, classURI).
func (m *MemoryStore) AddType(subject, classURI string) {
	m.Add(subject, RDFType, classURI)
}

func (m *MemoryStore) SubjectsOfType(classURI string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range m.triples {
		if t.Predicate == RDFType && t.Object == classURI && !seen[t.Subject] {
			seen[t.Subject] = true
			out = append(out, t.Subject)
		}
	}
	return out
}

func (m *MemoryStore) Objects(subject, predicate string) []string {
	var out []string
	for _, t := range m.triples {
		if t.Subject == subject && t.Predicate == predicate {
			out = append(out, t.Object)
		}
	}
	return out
}

func (m *MemoryStore) TriplesWithPredicate(predicate string) []Triple {
	var out []Triple
	for _, t := range m.triples {
		if t.Predicate == predicate {
			out = append(out, t)
		}
	}
	return out
}
