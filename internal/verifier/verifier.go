// Package verifier implements the email deliverability engine: syntax, DNS,
// MX, SMTP and catch-all checks, provider classification, and the candidate
// pattern generator used by email discovery.
package verifier

import (
	"context"
	"net"
	"regexp"
	"strings"
	"time"

	"github.com/lookingup/lookingup-api/internal/domain"
)

// emailRegex accepts the practical subset of RFC 5322 addresses the rest of
// the pipeline can act on.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Verifier runs deliverability checks against live DNS and SMTP. Safe for
// concurrent use.
type Verifier struct {
	resolver      *net.Resolver
	dialer        *net.Dialer
	lookupTimeout time.Duration
	smtpTimeout   time.Duration
	heloDomain    string
	probeSender   string
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithHELODomain sets the domain announced in the SMTP HELO and the sender
// used for RCPT probes.
func WithHELODomain(domain string) Option {
	return func(v *Verifier) {
		v.heloDomain = domain
		v.probeSender = "verify@" + domain
	}
}

// WithTimeouts overrides the per-lookup DNS timeout and the overall SMTP
// conversation timeout.
func WithTimeouts(lookup, smtp time.Duration) Option {
	return func(v *Verifier) {
		v.lookupTimeout = lookup
		v.smtpTimeout = smtp
	}
}

// New creates a verifier with production defaults.
func New(opts ...Option) *Verifier {
	v := &Verifier{
		resolver:      &net.Resolver{},
		dialer:        &net.Dialer{Timeout: 10 * time.Second},
		lookupTimeout: 5 * time.Second,
		smtpTimeout:   15 * time.Second,
		heloDomain:    "lookingup.online",
		probeSender:   "verify@lookingup.online",
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify checks one address. Syntax and DNS checks always run; SMTP and
// catch-all probes run only when requested and only once DNS shows a
// deliverable path. Per-check timeouts bound each network step so one slow
// mail server cannot stall a whole batch indefinitely.
func (v *Verifier) Verify(ctx context.Context, email string, opts domain.VerifyOptions) (*domain.VerificationResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	result := &domain.VerificationResult{
		Email:   email,
		Status:  domain.VerificationUnknown,
		Details: []string{},
	}

	if !emailRegex.MatchString(email) {
		result.Status = domain.VerificationInvalid
		result.Details = append(result.Details, "Invalid email syntax")
		result.ConfidenceScore = score(result)
		return result, nil
	}
	result.SyntaxValid = true

	localPart, domainPart, _ := strings.Cut(email, "@")
	result.IsDisposable = disposableDomains[domainPart]
	result.IsRoleBased = roleAccounts[localPart]
	result.IsFreeProvider = freeProviders[domainPart]
	if result.IsDisposable {
		result.Details = append(result.Details, "Disposable email provider")
	}
	if result.IsRoleBased {
		result.Details = append(result.Details, "Role-based address")
	}
	if result.IsFreeProvider {
		result.Details = append(result.Details, "Free email provider")
	}

	mxHosts := v.lookupMX(ctx, domainPart)
	if len(mxHosts) > 0 {
		result.DomainExists = true
		result.MXRecordsExist = true
	} else if v.domainResolves(ctx, domainPart) {
		result.DomainExists = true
		result.Details = append(result.Details, "Domain has no MX records")
	} else {
		result.Status = domain.VerificationInvalid
		result.Details = append(result.Details, "Domain does not exist")
		result.ConfidenceScore = score(result)
		return result, nil
	}

	if opts.CheckSMTP && result.MXRecordsExist {
		verified, err := v.smtpProbe(ctx, mxHosts[0], email)
		if err != nil {
			result.Details = append(result.Details, "SMTP check inconclusive: "+probeDetail(err))
		} else {
			result.SMTPVerified = &verified
			if verified {
				result.Details = append(result.Details, "Mailbox accepts mail")
			} else {
				result.Details = append(result.Details, "Mailbox rejected")
			}
		}
	}

	if opts.CheckCatchAll && result.MXRecordsExist {
		if catchAll, err := v.catchAllProbe(ctx, mxHosts[0], domainPart); err == nil {
			result.IsCatchAll = &catchAll
			if catchAll {
				result.Details = append(result.Details, "Domain accepts all addresses (catch-all)")
			}
		}
	}

	result.ConfidenceScore = score(result)
	result.Status = statusFor(result)
	result.Deliverable = result.Status == domain.VerificationValid ||
		(result.Status == domain.VerificationRisky && result.MXRecordsExist)
	return result, nil
}

// lookupMX returns the domain's MX hosts ordered by preference.
func (v *Verifier) lookupMX(ctx context.Context, domainPart string) []string {
	ctx, cancel := context.WithTimeout(ctx, v.lookupTimeout)
	defer cancel()

	records, err := v.resolver.LookupMX(ctx, domainPart)
	if err != nil {
		return nil
	}
	hosts := make([]string, 0, len(records))
	for _, r := range records {
		hosts = append(hosts, strings.TrimSuffix(r.Host, "."))
	}
	return hosts
}

func (v *Verifier) domainResolves(ctx context.Context, domainPart string) bool {
	ctx, cancel := context.WithTimeout(ctx, v.lookupTimeout)
	defer cancel()

	addrs, err := v.resolver.LookupHost(ctx, domainPart)
	return err == nil && len(addrs) > 0
}

// score derives the integer confidence score from check outcomes. Additive
// signals, capped to [0, 100].
func score(r *domain.VerificationResult) int {
	s := 0
	if r.SyntaxValid {
		s += 20
	}
	if r.DomainExists {
		s += 20
	}
	if r.MXRecordsExist {
		s += 25
	}
	if r.SMTPVerified != nil {
		if *r.SMTPVerified {
			s += 35
		} else {
			s -= 50
		}
	}
	if r.IsCatchAll != nil && *r.IsCatchAll {
		s -= 15
	}
	if r.IsDisposable {
		s -= 40
	}
	if r.IsRoleBased {
		s -= 10
	}
	if s < 0 {
		s = 0
	}
	if s > 100 {
		s = 100
	}
	return s
}

// statusFor maps check outcomes to the summary status.
func statusFor(r *domain.VerificationResult) domain.VerificationStatus {
	if !r.SyntaxValid || !r.DomainExists {
		return domain.VerificationInvalid
	}
	if r.SMTPVerified != nil && !*r.SMTPVerified {
		return domain.VerificationInvalid
	}
	if r.SMTPVerified != nil && *r.SMTPVerified {
		if (r.IsCatchAll != nil && *r.IsCatchAll) || r.IsDisposable {
			return domain.VerificationRisky
		}
		return domain.VerificationValid
	}
	if r.IsDisposable {
		return domain.VerificationRisky
	}
	if r.MXRecordsExist {
		return domain.VerificationRisky
	}
	return domain.VerificationUnknown
}
