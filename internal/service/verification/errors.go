package verification

import "errors"

// MaxBulkEmails caps one bulk request. Enforced before any engine call or
// usage write.
const MaxBulkEmails = 1000

// Sentinel errors for the verification service layer.
var (
	ErrBatchTooLarge = errors.New("maximum 1000 emails per request")
	ErrNotFound      = errors.New("could not find email")
)
