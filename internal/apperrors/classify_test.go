package apperrors_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/devenkhatri/billing-monk-sub000/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func TestClassify_StatusCodes(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  apperrors.Code
		retryable bool
	}{
		{"unauthorized", &googleapi.Error{Code: 401, Message: "unauthorized"}, apperrors.CodeAuth, false},
		{"forbidden", &googleapi.Error{Code: 403, Message: "forbidden"}, apperrors.CodeAuth, false},
		{"too many requests", &googleapi.Error{Code: 429, Message: "slow down"}, apperrors.CodeRateLimit, true},
		{"server error", &googleapi.Error{Code: 500, Message: "boom"}, apperrors.CodeNetwork, true},
		{"bad gateway", &googleapi.Error{Code: 502, Message: "bad gateway"}, apperrors.CodeNetwork, true},
		{"bad request", &googleapi.Error{Code: 400, Message: "bad range"}, apperrors.CodeValidation, false},
		{"teapot", &googleapi.Error{Code: 418, Message: "teapot"}, apperrors.CodeUnknown, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			appErr := apperrors.Classify("values.get", tc.err)
			require.NotNil(t, appErr)
			assert.Equal(t, tc.wantCode, appErr.Code)
			assert.Equal(t, tc.retryable, appErr.Retryable)
			assert.Equal(t, "values.get", appErr.Op)
		})
	}
}

func TestClassify_MessageFallback(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  apperrors.Code
		retryable bool
	}{
		{"quota text", errors.New("user rate limit quota exceeded"), apperrors.CodeRateLimit, true},
		{"timeout text", errors.New("dial tcp: i/o timeout"), apperrors.CodeNetwork, true},
		{"refused", errors.New("connection refused"), apperrors.CodeNetwork, true},
		{"deadline", context.DeadlineExceeded, apperrors.CodeNetwork, true},
		{"invalid text", errors.New("invalid cell reference"), apperrors.CodeValidation, false},
		{"unknown", errors.New("something odd happened"), apperrors.CodeUnknown, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			appErr := apperrors.Classify("values.update", tc.err)
			require.NotNil(t, appErr)
			assert.Equal(t, tc.wantCode, appErr.Code)
			assert.Equal(t, tc.retryable, appErr.Retryable)
		})
	}
}

func TestClassify_PreservesExistingClassification(t *testing.T) {
	orig := apperrors.Classify("values.get", &googleapi.Error{Code: 429, Message: "quota"})
	wrapped := fmt.Errorf("outer context: %w", orig)

	got := apperrors.Classify("values.append", wrapped)
	assert.Equal(t, apperrors.CodeRateLimit, got.Code)
	assert.Equal(t, "values.get", got.Op)
	assert.True(t, got.Retryable)
}

func TestClassify_Nil(t *testing.T) {
	assert.Nil(t, apperrors.Classify("noop", nil))
}

func TestAppError_Unwrap(t *testing.T) {
	cause := &googleapi.Error{Code: 401, Message: "expired token"}
	appErr := apperrors.Classify("sheets.get", cause)

	var gerr *googleapi.Error
	require.True(t, errors.As(appErr, &gerr))
	assert.Equal(t, 401, gerr.Code)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, apperrors.IsRetryable(apperrors.Classify("op", errors.New("timeout"))))
	assert.False(t, apperrors.IsRetryable(apperrors.Classify("op", errors.New("invalid value"))))
	assert.False(t, apperrors.IsRetryable(errors.New("unclassified")))
}
