package domain

// VerificationStatus summarizes a deliverability verdict.
type VerificationStatus string

const (
	VerificationValid   VerificationStatus = "valid"
	VerificationRisky   VerificationStatus = "risky"
	VerificationInvalid VerificationStatus = "invalid"
	VerificationUnknown VerificationStatus = "unknown"
)

// VerificationResult is the full outcome of checking one email address.
// SMTPVerified and IsCatchAll are tri-state: nil means the check was skipped
// or could not be completed.
type VerificationResult struct {
	Email           string             `json:"email"`
	Status          VerificationStatus `json:"status"`
	Deliverable     bool               `json:"deliverable"`
	ConfidenceScore int                `json:"confidence_score"`
	SyntaxValid     bool               `json:"syntax_valid"`
	DomainExists    bool               `json:"domain_exists"`
	MXRecordsExist  bool               `json:"mx_records_exist"`
	SMTPVerified    *bool              `json:"smtp_verified"`
	IsCatchAll      *bool              `json:"is_catch_all"`
	IsDisposable    bool               `json:"is_disposable"`
	IsRoleBased     bool               `json:"is_role_based"`
	IsFreeProvider  bool               `json:"is_free_provider"`
	Details         []string           `json:"details"`
}

// Candidate is one generated guess at a person's address. Candidates arrive in
// likelihood order and that order must be preserved by consumers.
type Candidate struct {
	Email   string `json:"email"`
	Pattern string `json:"pattern"`
}

// VerifyOptions control which expensive checks run during verification.
type VerifyOptions struct {
	CheckSMTP     bool
	CheckCatchAll bool
}
