package verification

import (
	"context"

	"github.com/lookingup/lookingup-api/internal/domain"
)

// Verifier is the deliverability engine consumed by this service.
type Verifier interface {
	// Verify runs the checks selected by opts against one address.
	Verify(ctx context.Context, email string, opts domain.VerifyOptions) (*domain.VerificationResult, error)

	// GenerateCandidates produces address guesses for a person at a domain,
	// ordered by pattern likelihood. Order is significant.
	GenerateCandidates(firstName, lastName, domain string) []domain.Candidate
}
