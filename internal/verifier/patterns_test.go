package verifier

import "testing"

func TestGenerateCandidates_OrderIsStable(t *testing.T) {
	v := New()
	candidates := v.GenerateCandidates("Jane", "Doe", "Example.com")

	want := []string{
		"jane.doe@example.com",
		"janedoe@example.com",
		"jdoe@example.com",
		"jane_doe@example.com",
		"jane@example.com",
		"j.doe@example.com",
		"janed@example.com",
		"doe.jane@example.com",
		"doe@example.com",
		"jane-doe@example.com",
	}
	if len(candidates) != len(want) {
		t.Fatalf("expected %d candidates, got %d", len(want), len(candidates))
	}
	for i, w := range want {
		if candidates[i].Email != w {
			t.Errorf("index %d: got %s, want %s", i, candidates[i].Email, w)
		}
	}
}

func TestGenerateCandidates_MostLikelyFirst(t *testing.T) {
	v := New()
	candidates := v.GenerateCandidates("jane", "doe", "example.com")
	if candidates[0].Pattern != "first.last" {
		t.Errorf("first.last must lead the sequence, got %s", candidates[0].Pattern)
	}
}

func TestGenerateCandidates_DropsDuplicates(t *testing.T) {
	v := New()
	// first == last makes "first" and "last" collide, among others.
	candidates := v.GenerateCandidates("kim", "kim", "example.com")

	seen := make(map[string]bool)
	for _, c := range candidates {
		if seen[c.Email] {
			t.Errorf("duplicate candidate %s", c.Email)
		}
		seen[c.Email] = true
	}
}

func TestGenerateCandidates_EmptyInputs(t *testing.T) {
	v := New()
	for _, tc := range [][3]string{
		{"", "doe", "example.com"},
		{"jane", "", "example.com"},
		{"jane", "doe", ""},
		{"  ", "doe", "example.com"},
	} {
		if got := v.GenerateCandidates(tc[0], tc[1], tc[2]); len(got) != 0 {
			t.Errorf("GenerateCandidates(%q, %q, %q) = %d candidates, want 0", tc[0], tc[1], tc[2], len(got))
		}
	}
}

func TestGenerateCandidates_NormalizesNames(t *testing.T) {
	v := New()
	candidates := v.GenerateCandidates(" Mary Jane ", "O'Brien", "example.com")
	if candidates[0].Email != "maryjane.obrien@example.com" {
		t.Errorf("expected normalized names, got %s", candidates[0].Email)
	}
}
