package apperrors

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"

	"google.golang.org/api/googleapi"
)

// Classify maps a raw transport/API failure into the closed error taxonomy.
// The HTTP status code takes priority; message substrings are the fallback
// when no status is present. The operation name is preserved on the result.
func Classify(op string, err error) *AppError {
	if err == nil {
		return nil
	}

	// Already classified, just keep the original operation name.
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Op == "" {
			appErr.Op = op
		}
		return appErr
	}

	status := statusOf(err)
	msg := err.Error()
	lower := strings.ToLower(msg)

	switch {
	case status == 401 || status == 403:
		return &AppError{Code: CodeAuth, Message: msg, Status: status, Retryable: false, Op: op, Err: err}
	case status == 429 || strings.Contains(lower, "quota") || strings.Contains(lower, "rate limit"):
		return &AppError{Code: CodeRateLimit, Message: msg, Status: status, Retryable: true, Op: op, Err: err}
	case status >= 500:
		return &AppError{Code: CodeNetwork, Message: msg, Status: status, Retryable: true, Op: op, Err: err}
	case status == 400 || errors.Is(err, ErrValidation) || strings.Contains(lower, "invalid"):
		return &AppError{Code: CodeValidation, Message: msg, Status: status, Retryable: false, Op: op, Err: err}
	case status == 0 && isNetworkErr(err, lower):
		return &AppError{Code: CodeNetwork, Message: msg, Retryable: true, Op: op, Err: err}
	}

	return &AppError{
		Code:      CodeUnknown,
		Message:   msg,
		Status:    status,
		Retryable: status >= 500,
		Op:        op,
		Err:       err,
	}
}

// IsRetryable reports whether err is classified as safe to retry.
func IsRetryable(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Retryable
	}
	return false
}

// IsRateLimit reports whether err is a rate-limit/quota classification.
func IsRateLimit(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == CodeRateLimit
	}
	return false
}

func statusOf(err error) int {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return 0
}

func isNetworkErr(err error, lower string) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	return strings.Contains(lower, "timeout") ||
		strings.Contains(lower, "connection refused") ||
		strings.Contains(lower, "connection reset") ||
		strings.Contains(lower, "no such host")
}
