package catalog

import "testing"

func TestDefault_ParsesEmbeddedCatalog(t *testing.T) {
	c := Default()

	if c.IsEmpty() {
		t.Fatal("embedded default catalog must not be empty")
	}

	wantSymptoms := []string{"cardiac", "neurological", "respiratory", "bleeding", "trauma"}
	if len(c.Symptoms) != len(wantSymptoms) {
		t.Fatalf("expected %d symptom categories, got %d", len(wantSymptoms), len(c.Symptoms))
	}
	for i, name := range wantSymptoms {
		if c.Symptoms[i].Name != name {
			t.Errorf("symptom[%d] = %q, want %q", i, c.Symptoms[i].Name, name)
		}
	}

	wantContexts := []string{"sudden", "worsening", "exertion", "duration"}
	for i, name := range wantContexts {
		if c.Contexts[i].Name != name {
			t.Errorf("context[%d] = %q, want %q", i, c.Contexts[i].Name, name)
		}
	}
}

func TestDefault_MultilingualCoverage(t *testing.T) {
	c := Default()

	cardiac, ok := c.Symptom("cardiac")
	if !ok {
		t.Fatal("cardiac category missing")
	}

	langs := map[string]bool{}
	for _, p := range cardiac {
		langs[p.Language()] = true
	}
	for _, want := range []string{"en", "hi", "te"} {
		if !langs[want] {
			t.Errorf("cardiac category missing %s phrases", want)
		}
	}
}

func TestDefault_SameSnapshotEveryCall(t *testing.T) {
	if Default() != Default() {
		t.Error("Default must return one shared snapshot")
	}
}
