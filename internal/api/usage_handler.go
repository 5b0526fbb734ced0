package api

import (
	"fmt"
	"net/http"

	"github.com/lookingup/lookingup-api/internal/domain"
	"github.com/lookingup/lookingup-api/internal/pkg/httputil"
)

type usageResponse struct {
	Plan   string      `json:"plan"`
	Status string      `json:"status"`
	Today  usageToday  `json:"today"`
	Limits usageLimits `json:"limits"`
}

type usageToday struct {
	Verifications int `json:"verifications"`
	Finds         int `json:"finds"`
	Total         int `json:"total"`
}

type usageLimits struct {
	DailyLimit string `json:"daily_limit"`
	RateLimit  string `json:"rate_limit"`
}

// Usage handles GET /usage: the caller's plan, today's counters, and limits.
// A user with no activity today gets zero counters, never a missing object.
func (h *Handlers) Usage(w http.ResponseWriter, r *http.Request) {
	ac := AuthContextFrom(r.Context())

	record, err := h.usage.Today(r.Context(), ac.UserID)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}

	dailyLimit := "unlimited"
	if ac.Subscription.Plan == domain.PlanFree {
		dailyLimit = "100"
	}

	httputil.OK(w, usageResponse{
		Plan:   string(ac.Subscription.Plan),
		Status: string(ac.Subscription.Status),
		Today: usageToday{
			Verifications: record.VerifyCount,
			Finds:         record.FindCount,
			Total:         record.TotalCount,
		},
		Limits: usageLimits{
			DailyLimit: dailyLimit,
			RateLimit:  fmt.Sprintf("%d requests/minute", h.ratePerMin),
		},
	})
}
