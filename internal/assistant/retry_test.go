package assistant

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRetryableError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"rate limit", errors.New("Rate limit exceeded"), true},
		{"quota", errors.New("quota exceeded for project"), true},
		{"http 429", errors.New("googleapi: Error 429"), true},
		{"http 503", errors.New("503 Service Unavailable"), true},
		{"timeout", errors.New("request timeout"), true},
		{"connection reset", errors.New("connection reset by peer"), true},
		{"invalid api key", errors.New("API key not valid"), false},
		{"bad request", errors.New("400 invalid argument"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, retryableError(tt.err))
		})
	}
}

func TestDefaultRetryConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultRetryConfig()
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Less(t, cfg.InitialInterval, cfg.MaxInterval)
}
