package verification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/lookingup/lookingup-api/internal/domain"
)

// fakeVerifier returns scripted results per email and counts calls.
type fakeVerifier struct {
	results    map[string]*domain.VerificationResult
	candidates []domain.Candidate
	calls      []string
	failOn     string
}

func (f *fakeVerifier) Verify(_ context.Context, email string, _ domain.VerifyOptions) (*domain.VerificationResult, error) {
	f.calls = append(f.calls, email)
	if f.failOn != "" && email == f.failOn {
		return nil, errors.New("engine failure")
	}
	if r, ok := f.results[email]; ok {
		cp := *r
		return &cp, nil
	}
	return &domain.VerificationResult{Email: email, Status: domain.VerificationUnknown}, nil
}

func (f *fakeVerifier) GenerateCandidates(_, _, _ string) []domain.Candidate {
	return f.candidates
}

// fakeMeter records metering calls in memory.
type fakeMeter struct {
	records    []domain.AuditEntry
	increments []domain.UsageDeltas
	recordErr  error
}

func (f *fakeMeter) Record(_ context.Context, userID, keyID string, op domain.Operation, itemCount int, success bool) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	f.records = append(f.records, domain.AuditEntry{UserID: userID, KeyID: keyID, Operation: op, ItemCount: itemCount, Success: success})
	return nil
}

func (f *fakeMeter) Increment(_ context.Context, userID string, deltas domain.UsageDeltas) error {
	f.increments = append(f.increments, deltas)
	return nil
}

var testAuth = &domain.AuthContext{
	UserID:       "user-001",
	KeyID:        "key-001",
	Subscription: domain.Subscription{Plan: domain.PlanPro, Status: domain.StatusActive},
}

func boolPtr(b bool) *bool { return &b }

func scored(email string, score int, smtpVerified *bool) *domain.VerificationResult {
	return &domain.VerificationResult{Email: email, ConfidenceScore: score, SMTPVerified: smtpVerified}
}

func TestVerify_MetersOneOperation(t *testing.T) {
	fv := &fakeVerifier{results: map[string]*domain.VerificationResult{}}
	meter := &fakeMeter{}
	svc := NewService(fv, meter)

	result, err := svc.Verify(context.Background(), testAuth, "a@example.com", domain.VerifyOptions{})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if result.Email != "a@example.com" {
		t.Errorf("wrong result: %+v", result)
	}
	if len(meter.records) != 1 || meter.records[0].Operation != domain.OpVerify || meter.records[0].ItemCount != 1 {
		t.Errorf("expected one verify audit entry, got %+v", meter.records)
	}
	if len(meter.increments) != 1 || meter.increments[0].Verify != 1 || meter.increments[0].Find != 0 {
		t.Errorf("expected verify counter +1, got %+v", meter.increments)
	}
}

func TestVerify_MeterFailureDoesNotFailCall(t *testing.T) {
	fv := &fakeVerifier{}
	meter := &fakeMeter{recordErr: errors.New("insert failed")}
	svc := NewService(fv, meter)

	if _, err := svc.Verify(context.Background(), testAuth, "a@example.com", domain.VerifyOptions{}); err != nil {
		t.Fatalf("metering failure must not fail the operation: %v", err)
	}
}

func TestVerifyBulk_PreservesInputOrder(t *testing.T) {
	emails := []string{"c@x.com", "a@x.com", "b@x.com"}
	fv := &fakeVerifier{}
	meter := &fakeMeter{}
	svc := NewService(fv, meter)

	results, err := svc.VerifyBulk(context.Background(), testAuth, emails, domain.VerifyOptions{})
	if err != nil {
		t.Fatalf("VerifyBulk: %v", err)
	}
	if len(results) != len(emails) {
		t.Fatalf("expected %d results, got %d", len(emails), len(results))
	}
	for i, email := range emails {
		if results[i].Email != email {
			t.Errorf("index %d: got %s, want %s", i, results[i].Email, email)
		}
	}
	if len(meter.records) != 1 || meter.records[0].Operation != domain.OpBulkVerify || meter.records[0].ItemCount != 3 {
		t.Errorf("expected one bulk_verify entry with count 3, got %+v", meter.records)
	}
	if meter.increments[0].Verify != 3 {
		t.Errorf("expected verify counter +3, got %+v", meter.increments)
	}
}

func TestVerifyBulk_OverLimitRejectedBeforeAnyWork(t *testing.T) {
	emails := make([]string, MaxBulkEmails+1)
	for i := range emails {
		emails[i] = fmt.Sprintf("u%d@example.com", i)
	}
	fv := &fakeVerifier{}
	meter := &fakeMeter{}
	svc := NewService(fv, meter)

	_, err := svc.VerifyBulk(context.Background(), testAuth, emails, domain.VerifyOptions{})
	if !errors.Is(err, ErrBatchTooLarge) {
		t.Fatalf("expected ErrBatchTooLarge, got %v", err)
	}
	if len(fv.calls) != 0 {
		t.Errorf("expected zero engine calls, got %d", len(fv.calls))
	}
	if len(meter.records)+len(meter.increments) != 0 {
		t.Error("expected no usage recorded for a rejected batch")
	}
}

func TestVerifyBulk_AtLimitAccepted(t *testing.T) {
	emails := make([]string, MaxBulkEmails)
	for i := range emails {
		emails[i] = fmt.Sprintf("u%d@example.com", i)
	}
	svc := NewService(&fakeVerifier{}, &fakeMeter{})

	results, err := svc.VerifyBulk(context.Background(), testAuth, emails, domain.VerifyOptions{})
	if err != nil {
		t.Fatalf("VerifyBulk at limit: %v", err)
	}
	if len(results) != MaxBulkEmails {
		t.Errorf("expected %d results, got %d", MaxBulkEmails, len(results))
	}
}

func TestVerifyBulk_AbortsOnFirstFailure(t *testing.T) {
	fv := &fakeVerifier{failOn: "b@x.com"}
	meter := &fakeMeter{}
	svc := NewService(fv, meter)

	_, err := svc.VerifyBulk(context.Background(), testAuth, []string{"a@x.com", "b@x.com", "c@x.com"}, domain.VerifyOptions{})
	if err == nil {
		t.Fatal("expected batch to fail")
	}
	if !strings.Contains(err.Error(), "b@x.com") {
		t.Errorf("error should name the failing address: %v", err)
	}
	// a and b probed, c never reached
	if len(fv.calls) != 2 {
		t.Errorf("expected 2 engine calls before abort, got %d", len(fv.calls))
	}
	if len(meter.records) != 0 {
		t.Error("a failed batch must not be metered")
	}
}

func TestVerifyBulk_EmptyListAllowed(t *testing.T) {
	fv := &fakeVerifier{}
	meter := &fakeMeter{}
	svc := NewService(fv, meter)

	results, err := svc.VerifyBulk(context.Background(), testAuth, nil, domain.VerifyOptions{})
	if err != nil {
		t.Fatalf("VerifyBulk(empty): %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected empty result list, got %d", len(results))
	}
	if len(fv.calls) != 0 {
		t.Error("expected zero engine calls")
	}
	if len(meter.records) != 1 || meter.records[0].ItemCount != 0 {
		t.Errorf("expected one audit entry with count 0, got %+v", meter.records)
	}
	if meter.increments[0].Verify != 0 {
		t.Errorf("expected zero-delta increment, got %+v", meter.increments)
	}
}

func candidatesFor(emails ...string) []domain.Candidate {
	out := make([]domain.Candidate, len(emails))
	for i, e := range emails {
		out[i] = domain.Candidate{Email: e}
	}
	return out
}

func TestFind_HighestConfidenceWins(t *testing.T) {
	fv := &fakeVerifier{
		candidates: candidatesFor("a@x.com", "b@x.com", "c@x.com"),
		results: map[string]*domain.VerificationResult{
			"a@x.com": scored("a@x.com", 80, nil),
			"b@x.com": scored("b@x.com", 90, nil),
			"c@x.com": scored("c@x.com", 85, nil),
		},
	}
	meter := &fakeMeter{}
	svc := NewService(fv, meter)

	result, err := svc.Find(context.Background(), testAuth, "jane", "doe", "x.com")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if result.Email != "b@x.com" {
		t.Errorf("expected highest-scoring candidate b@x.com, got %s", result.Email)
	}
	if len(meter.records) != 1 || meter.records[0].Operation != domain.OpFind || meter.records[0].ItemCount != 1 {
		t.Errorf("expected one find audit entry, got %+v", meter.records)
	}
	if meter.increments[0].Find != 1 || meter.increments[0].Verify != 0 {
		t.Errorf("expected find counter +1, got %+v", meter.increments)
	}
}

func TestFind_EqualScoresKeepEarliest(t *testing.T) {
	fv := &fakeVerifier{
		candidates: candidatesFor("a@x.com", "b@x.com"),
		results: map[string]*domain.VerificationResult{
			"a@x.com": scored("a@x.com", 70, nil),
			"b@x.com": scored("b@x.com", 70, nil),
		},
	}
	svc := NewService(fv, &fakeMeter{})

	result, err := svc.Find(context.Background(), testAuth, "jane", "doe", "x.com")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if result.Email != "a@x.com" {
		t.Errorf("tie must keep the earliest candidate, got %s", result.Email)
	}
}

func TestFind_SMTPConfirmedStopsProbing(t *testing.T) {
	fv := &fakeVerifier{
		candidates: candidatesFor("a@x.com", "b@x.com", "c@x.com"),
		results: map[string]*domain.VerificationResult{
			"a@x.com": scored("a@x.com", 50, boolPtr(true)),
			"b@x.com": scored("b@x.com", 99, nil), // higher score, must not matter
		},
	}
	svc := NewService(fv, &fakeMeter{})

	result, err := svc.Find(context.Background(), testAuth, "jane", "doe", "x.com")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if result.Email != "a@x.com" {
		t.Errorf("SMTP-confirmed candidate must win immediately, got %s", result.Email)
	}
	if len(fv.calls) != 1 {
		t.Errorf("no candidate after the confirmed hit may be probed, got %d calls", len(fv.calls))
	}
}

func TestFind_SMTPFalseDoesNotShortCircuit(t *testing.T) {
	fv := &fakeVerifier{
		candidates: candidatesFor("a@x.com", "b@x.com"),
		results: map[string]*domain.VerificationResult{
			"a@x.com": scored("a@x.com", 40, boolPtr(false)),
			"b@x.com": scored("b@x.com", 60, nil),
		},
	}
	svc := NewService(fv, &fakeMeter{})

	result, err := svc.Find(context.Background(), testAuth, "jane", "doe", "x.com")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if result.Email != "b@x.com" {
		t.Errorf("definitively-false smtp must not stop the probe, got %s", result.Email)
	}
	if len(fv.calls) != 2 {
		t.Errorf("expected both candidates probed, got %d", len(fv.calls))
	}
}

func TestFind_EmptyCandidatesNotFound(t *testing.T) {
	fv := &fakeVerifier{}
	meter := &fakeMeter{}
	svc := NewService(fv, meter)

	_, err := svc.Find(context.Background(), testAuth, "jane", "doe", "x.com")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(meter.records)+len(meter.increments) != 0 {
		t.Error("a not-found discovery must not be metered")
	}
}

func TestFind_ProbeErrorAborts(t *testing.T) {
	fv := &fakeVerifier{
		candidates: candidatesFor("a@x.com", "b@x.com"),
		failOn:     "b@x.com",
	}
	meter := &fakeMeter{}
	svc := NewService(fv, meter)

	_, err := svc.Find(context.Background(), testAuth, "jane", "doe", "x.com")
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected engine error, got %v", err)
	}
	if len(meter.records) != 0 {
		t.Error("a failed discovery must not be metered")
	}
}
