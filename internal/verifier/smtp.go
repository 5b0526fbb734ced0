package verifier

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"net/smtp"
	"net/textproto"
	"strings"
	"time"
)

// errMailboxRejected marks a definitive 5xx RCPT rejection, as opposed to a
// connection problem or a 4xx greylist deferral.
var errMailboxRejected = errors.New("mailbox rejected")

// smtpProbe asks the MX host whether it accepts mail for the address.
// Returns (true, nil) on RCPT acceptance, (false, nil) on a definitive 5xx
// rejection, and an error for everything inconclusive (timeouts, greylisting,
// blocked port 25).
func (v *Verifier) smtpProbe(ctx context.Context, mxHost, email string) (bool, error) {
	err := v.rcptCheck(ctx, mxHost, email)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, errMailboxRejected) {
		return false, nil
	}
	return false, err
}

// catchAllProbe tests whether the domain accepts a localpart that cannot
// exist. Acceptance means RCPT results are meaningless for this domain.
func (v *Verifier) catchAllProbe(ctx context.Context, mxHost, domainPart string) (bool, error) {
	probe := fmt.Sprintf("ca-probe-%08x@%s", rand.Uint32(), domainPart)
	err := v.rcptCheck(ctx, mxHost, probe)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, errMailboxRejected) {
		return false, nil
	}
	return false, err
}

// rcptCheck runs one HELO/MAIL/RCPT conversation against the MX host. The
// whole conversation is bounded by the configured SMTP timeout via a
// connection deadline.
func (v *Verifier) rcptCheck(ctx context.Context, mxHost, email string) error {
	conn, err := v.dialer.DialContext(ctx, "tcp", net.JoinHostPort(mxHost, "25"))
	if err != nil {
		return fmt.Errorf("dial %s: %w", mxHost, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(v.smtpTimeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	conn.SetDeadline(deadline)

	client, err := smtp.NewClient(conn, mxHost)
	if err != nil {
		return fmt.Errorf("smtp greeting: %w", err)
	}
	defer client.Close()

	if err := client.Hello(v.heloDomain); err != nil {
		return fmt.Errorf("helo: %w", err)
	}
	if err := client.Mail(v.probeSender); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := client.Rcpt(email); err != nil {
		var tpErr *textproto.Error
		if errors.As(err, &tpErr) && tpErr.Code >= 500 {
			return fmt.Errorf("%w: %d", errMailboxRejected, tpErr.Code)
		}
		return fmt.Errorf("rcpt to: %w", err)
	}
	client.Quit()
	return nil
}

// probeDetail reduces an SMTP error to a short diagnostic safe to return to
// callers (no hostnames or raw server banners).
func probeDetail(err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline"):
		return "connection timed out"
	case strings.Contains(msg, "refused"):
		return "connection refused"
	case strings.Contains(msg, "greeting") || strings.Contains(msg, "helo"):
		return "server rejected session"
	default:
		return "server did not give a definitive answer"
	}
}
