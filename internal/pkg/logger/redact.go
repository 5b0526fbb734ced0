package logger

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// redactValue masks sensitive content before it reaches a log line.
// Credential-like fields are fully masked; email fields keep a two-character
// hint. Emails embedded in generic fields are masked in place.
func redactValue(key, val string) string {
	k := strings.ToLower(key)
	if strings.Contains(k, "key") || strings.Contains(k, "credential") || strings.Contains(k, "secret") || strings.Contains(k, "token") {
		return RedactSecret(val)
	}
	if strings.Contains(k, "email") || strings.Contains(k, "candidate") {
		return RedactEmail(val)
	}
	return emailRegex.ReplaceAllStringFunc(val, RedactEmail)
}

// RedactEmail masks an email address for safe logging.
// "john.doe@example.com" → "jo***@example.com"
// Short local parts (≤2 chars) are fully masked: "ab@example.com" → "***@example.com"
func RedactEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return "***@***"
	}
	name := parts[0]
	if len(name) > 2 {
		return name[:2] + "***@" + parts[1]
	}
	return "***@" + parts[1]
}

// RedactSecret masks a credential, keeping only a short prefix so operators
// can correlate against the stored key prefix.
func RedactSecret(s string) string {
	if len(s) <= 8 {
		return "***"
	}
	return s[:8] + "***"
}
