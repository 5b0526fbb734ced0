// Package httputil provides the standard JSON response envelope and request
// decoding helpers shared by every HTTP handler. All error responses use the
// ErrorResponse shape; 5xx responses never include internal error text.
package httputil
