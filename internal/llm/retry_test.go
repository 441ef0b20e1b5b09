package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteWithRetry_NonRetryableFailsImmediately(t *testing.T) {
	calls := 0
	_, err := completeWithRetry(context.Background(), "test", func() (string, error) {
		calls++
		return "", errors.New("schema violation")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls, "non-retryable errors must not be retried")
}

func TestCompleteWithRetry_RateLimitedRetries(t *testing.T) {
	calls := 0
	ctx, cancel := context.WithCancel(context.Background())

	_, err := completeWithRetry(ctx, "test", func() (string, error) {
		calls++
		if calls == 2 {
			// Cut the backoff short; two attempts prove the retry path.
			cancel()
		}
		return "", fmt.Errorf("%w: status 429", ErrRateLimited)
	})

	require.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestClient_Classifies429AsRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, APIKey: "test"})
	_, err := client.complete(context.Background(), "hello")
	assert.True(t, errors.Is(err, ErrRateLimited))
}

func TestClient_CompleteParsesChoice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices": [{"message": {"content": "hello back"}}]}`)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, APIKey: "test"})
	got, err := client.Complete(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello back", got)
}

func TestIsQuotaMessage(t *testing.T) {
	assert.True(t, isQuotaMessage("You exceeded your current quota"))
	assert.True(t, isQuotaMessage("Rate limit reached for requests"))
	assert.False(t, isQuotaMessage("invalid api key"))
}
