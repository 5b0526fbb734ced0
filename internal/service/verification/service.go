package verification

import (
	"context"
	"fmt"

	"github.com/lookingup/lookingup-api/internal/domain"
	"github.com/lookingup/lookingup-api/internal/pkg/logger"
)

// Meter records completed operations. Satisfied by *usage.Service.
type Meter interface {
	Record(ctx context.Context, userID, keyID string, op domain.Operation, itemCount int, success bool) error
	Increment(ctx context.Context, userID string, deltas domain.UsageDeltas) error
}

// Service orchestrates verification and discovery for authenticated callers.
type Service struct {
	verifier Verifier
	meter    Meter
}

// NewService creates a verification service over the given engine and meter.
func NewService(verifier Verifier, meter Meter) *Service {
	return &Service{verifier: verifier, meter: meter}
}

// Verify checks a single address and meters one "verify" operation.
func (s *Service) Verify(ctx context.Context, auth *domain.AuthContext, email string, opts domain.VerifyOptions) (*domain.VerificationResult, error) {
	result, err := s.verifier.Verify(ctx, email, opts)
	if err != nil {
		return nil, fmt.Errorf("verify %s: %w", email, err)
	}

	s.meterUsage(ctx, auth, domain.OpVerify, 1, domain.UsageDeltas{Verify: 1})
	return result, nil
}

// VerifyBulk checks up to MaxBulkEmails addresses strictly in input order,
// producing exactly one result per input index. The size cap is enforced
// before any engine call or usage write. There is no per-item isolation: the
// first engine failure aborts the remaining batch and fails the whole call.
func (s *Service) VerifyBulk(ctx context.Context, auth *domain.AuthContext, emails []string, opts domain.VerifyOptions) ([]domain.VerificationResult, error) {
	if len(emails) > MaxBulkEmails {
		return nil, ErrBatchTooLarge
	}

	results := make([]domain.VerificationResult, 0, len(emails))
	for _, email := range emails {
		result, err := s.verifier.Verify(ctx, email, opts)
		if err != nil {
			return nil, fmt.Errorf("verify %s: %w", email, err)
		}
		results = append(results, *result)
	}

	s.meterUsage(ctx, auth, domain.OpBulkVerify, len(emails), domain.UsageDeltas{Verify: len(emails)})
	return results, nil
}

// Find guesses a person's address by probing generated candidates in order,
// SMTP and catch-all checks enabled. A definitively SMTP-verified candidate
// wins immediately and stops the probe; otherwise the candidate with the
// strictly highest confidence score wins, earliest seen on ties. An empty
// candidate sequence fails with ErrNotFound.
func (s *Service) Find(ctx context.Context, auth *domain.AuthContext, firstName, lastName, domainName string) (*domain.VerificationResult, error) {
	candidates := s.verifier.GenerateCandidates(firstName, lastName, domainName)

	var best *domain.VerificationResult
	for _, c := range candidates {
		result, err := s.verifier.Verify(ctx, c.Email, domain.VerifyOptions{CheckSMTP: true, CheckCatchAll: true})
		if err != nil {
			return nil, fmt.Errorf("probe %s: %w", c.Email, err)
		}

		if result.SMTPVerified != nil && *result.SMTPVerified {
			best = result
			break
		}

		if best == nil || result.ConfidenceScore > best.ConfidenceScore {
			best = result
		}
	}

	if best == nil {
		return nil, ErrNotFound
	}

	s.meterUsage(ctx, auth, domain.OpFind, 1, domain.UsageDeltas{Find: 1})
	return best, nil
}

// meterUsage records the audit entry and counter increment for a completed
// operation. Failures here must not undo a result already produced, but they
// are a billing-accuracy gap, so they log at ERROR.
func (s *Service) meterUsage(ctx context.Context, auth *domain.AuthContext, op domain.Operation, itemCount int, deltas domain.UsageDeltas) {
	if err := s.meter.Record(ctx, auth.UserID, auth.KeyID, op, itemCount, true); err != nil {
		logger.Error("usage audit write failed", "user_id", auth.UserID, "operation", string(op), "error", err)
	}
	if err := s.meter.Increment(ctx, auth.UserID, deltas); err != nil {
		logger.Error("usage counter increment failed", "user_id", auth.UserID, "operation", string(op), "error", err)
	}
}
