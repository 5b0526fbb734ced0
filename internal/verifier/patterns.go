package verifier

import (
	"fmt"
	"strings"

	"github.com/lookingup/lookingup-api/internal/domain"
)

// candidatePatterns lists the name-combination templates tried during email
// discovery, most likely first. The order is load-bearing: discovery walks it
// front to back and ties between equally-confident candidates resolve to the
// earlier pattern.
var candidatePatterns = []struct {
	name   string
	format func(first, last string) string
}{
	{"first.last", func(f, l string) string { return f + "." + l }},
	{"firstlast", func(f, l string) string { return f + l }},
	{"flast", func(f, l string) string { return f[:1] + l }},
	{"first_last", func(f, l string) string { return f + "_" + l }},
	{"first", func(f, l string) string { return f }},
	{"f.last", func(f, l string) string { return f[:1] + "." + l }},
	{"firstl", func(f, l string) string { return f + l[:1] }},
	{"last.first", func(f, l string) string { return l + "." + f }},
	{"last", func(f, l string) string { return l }},
	{"first-last", func(f, l string) string { return f + "-" + l }},
}

// GenerateCandidates produces address guesses for a person at a domain in
// likelihood order. Names are lowercased and stripped of spaces; empty names
// yield no candidates. Duplicate addresses (e.g. when first == last) are
// dropped, keeping the earliest pattern.
func (v *Verifier) GenerateCandidates(firstName, lastName, domainName string) []domain.Candidate {
	first := normalizeName(firstName)
	last := normalizeName(lastName)
	domainName = strings.ToLower(strings.TrimSpace(domainName))
	if first == "" || last == "" || domainName == "" {
		return nil
	}

	seen := make(map[string]bool, len(candidatePatterns))
	candidates := make([]domain.Candidate, 0, len(candidatePatterns))
	for _, p := range candidatePatterns {
		email := fmt.Sprintf("%s@%s", p.format(first, last), domainName)
		if seen[email] {
			continue
		}
		seen[email] = true
		candidates = append(candidates, domain.Candidate{Email: email, Pattern: p.name})
	}
	return candidates
}

func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "")
	name = strings.ReplaceAll(name, "'", "")
	return name
}
