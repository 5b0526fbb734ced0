package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/lookingup/lookingup-api/internal/domain"
	"github.com/lookingup/lookingup-api/internal/pkg/httputil"
	"github.com/lookingup/lookingup-api/internal/service/verification"
)

// Version is reported by the root endpoint and the identity header.
const Version = "1.0.0"

// Handlers holds the dependencies for all API endpoints.
type Handlers struct {
	verification *verification.Service
	usage        UsageReader
	ratePerMin   int
}

// UsageReader answers daily usage queries. Satisfied by *usage.Service.
type UsageReader interface {
	Today(ctx context.Context, userID string) (*domain.UsageRecord, error)
}

// NewHandlers creates the endpoint handler set.
func NewHandlers(verificationSvc *verification.Service, usageSvc UsageReader, ratePerMin int) *Handlers {
	return &Handlers{verification: verificationSvc, usage: usageSvc, ratePerMin: ratePerMin}
}

// Root is the unauthenticated service info endpoint.
func (h *Handlers) Root(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, map[string]string{
		"message": "LookingUp API v" + Version,
		"docs":    "/docs",
		"status":  "operational",
	})
}

type verifyRequest struct {
	Email         string `json:"email"`
	CheckSMTP     *bool  `json:"check_smtp"`
	CheckCatchAll *bool  `json:"check_catch_all"`
}

type verifyBulkRequest struct {
	Emails        []string `json:"emails"`
	CheckSMTP     *bool    `json:"check_smtp"`
	CheckCatchAll *bool    `json:"check_catch_all"`
}

type findRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Domain    string `json:"domain"`
}

// optionsFrom applies the request's check flags; both default to true.
func optionsFrom(checkSMTP, checkCatchAll *bool) domain.VerifyOptions {
	opts := domain.VerifyOptions{CheckSMTP: true, CheckCatchAll: true}
	if checkSMTP != nil {
		opts.CheckSMTP = *checkSMTP
	}
	if checkCatchAll != nil {
		opts.CheckCatchAll = *checkCatchAll
	}
	return opts
}

// Verify handles POST /verify.
func (h *Handlers) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		httputil.BadRequest(w, "email is required")
		return
	}

	result, err := h.verification.Verify(r.Context(), AuthContextFrom(r.Context()), req.Email, optionsFrom(req.CheckSMTP, req.CheckCatchAll))
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, result)
}

// VerifyBulk handles POST /verify/bulk.
func (h *Handlers) VerifyBulk(w http.ResponseWriter, r *http.Request) {
	var req verifyBulkRequest
	if !httputil.Decode(w, r, &req) {
		return
	}

	results, err := h.verification.VerifyBulk(r.Context(), AuthContextFrom(r.Context()), req.Emails, optionsFrom(req.CheckSMTP, req.CheckCatchAll))
	if err != nil {
		if errors.Is(err, verification.ErrBatchTooLarge) {
			httputil.BadRequest(w, "Maximum 1000 emails per request")
			return
		}
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, results)
}

// Find handles POST /find.
func (h *Handlers) Find(w http.ResponseWriter, r *http.Request) {
	var req findRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" || strings.TrimSpace(req.Domain) == "" {
		httputil.BadRequest(w, "first_name, last_name and domain are required")
		return
	}

	result, err := h.verification.Find(r.Context(), AuthContextFrom(r.Context()), req.FirstName, req.LastName, req.Domain)
	if err != nil {
		if errors.Is(err, verification.ErrNotFound) {
			httputil.NotFound(w, "Could not find email")
			return
		}
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, result)
}
