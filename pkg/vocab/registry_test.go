package vocab

import "testing"

func TestDefaultRegistryRecognizesEachVocabulary(t *testing.T) {
	r := Default()

	cases := []struct {
		role Role
		uri  string
		want Vocabulary
	}{
		{RoleSpaceClass, "https://w3id.org/bot#Space", BOT},
		{RoleSpaceClass, "https://brickschema.org/schema/Brick#Room", Brick},
		{RoleStoreyClass, "https://w3id.org/sbco#Level", SBCO},
		{RoleSpaceClass, "internal:Space", Internal},
	}
	for _, c := range cases {
		if !r.Has(c.role, c.uri) {
			t.Errorf("expected %q to be registered under role %v", c.uri, c.role)
			continue
		}
		got, ok := r.VocabularyOf(c.role, c.uri)
		if !ok || got != c.want {
			t.Errorf("VocabularyOf(%v, %q) = %v, %v; want %v, true", c.role, c.uri, got, ok, c.want)
		}
	}
}

func TestRegistryAddIsIdempotent(t *testing.T) {
	r := NewRegistry()
	r.Add(RoleSpaceClass, BOT, "urn:example:Space")
	r.Add(RoleSpaceClass, Brick, "urn:example:Space") // should not overwrite

	got, _ := r.VocabularyOf(RoleSpaceClass, "urn:example:Space")
	if got != BOT {
		t.Errorf("expected the first registration to win, got %v", got)
	}
}

func TestURIsReturnsEveryVocabularyForARole(t *testing.T) {
	r := Default()
	uris := r.URIs(RoleSpaceClass)
	if len(uris) < 4 {
		t.Errorf("expected at least 4 registered space-class URIs across vocabularies, got %d", len(uris))
	}
}

func TestDescribeCountsRolesPerVocabulary(t *testing.T) {
	r := Default()
	descs := r.Describe()
	if len(descs) != 4 {
		t.Fatalf("expected 4 vocabularies described (BOT, Brick, SBCO, Internal), got %d", len(descs))
	}
	for _, d := range descs {
		if len(d.RoleCount) == 0 {
			t.Errorf("vocabulary %v has no role counts", d.Name)
		}
	}
}
