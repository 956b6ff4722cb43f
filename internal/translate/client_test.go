package translate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doctrans/doctrans/internal/domain"
	"github.com/doctrans/doctrans/internal/observability"
)

func newTestClient(endpoint string) *Client {
	return NewClient(observability.Nop(), WithEndpoint(endpoint))
}

func TestClientTranslate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "gtx", r.URL.Query().Get("client"))
		assert.Equal(t, "auto", r.URL.Query().Get("sl"))
		assert.Equal(t, "fr", r.URL.Query().Get("tl"))
		assert.Equal(t, "t", r.URL.Query().Get("dt"))
		assert.Equal(t, "hello world", r.URL.Query().Get("q"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[[["bonjour le monde","hello world",null,null,10]],null,"en"]`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	out, err := c.Translate(context.Background(), "hello world", SourceAuto, "fr")
	require.NoError(t, err)
	assert.Equal(t, "bonjour le monde", out)
}

func TestClientTranslate_MultipleSegmentsConcatenated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[[["First sentence. ","...",null,null,10],["Second sentence.","...",null,null,10]],null,"en"]`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	out, err := c.Translate(context.Background(), "some text", SourceAuto, "de")
	require.NoError(t, err)
	assert.Equal(t, "First sentence. Second sentence.", out)
}

func TestClientTranslate_EmptyTextShortCircuits(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	out, err := c.Translate(context.Background(), "", SourceAuto, "fr")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Zero(t, hits.Load())
}

func TestClientTranslate_EmptySourceDefaultsToAuto(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "auto", r.URL.Query().Get("sl"))
		w.Write([]byte(`[[["hola","hi",null,null,10]]]`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	out, err := c.Translate(context.Background(), "hi", "", "es")
	require.NoError(t, err)
	assert.Equal(t, "hola", out)
}

func TestClientTranslate_RetriesTransientFailure(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`[[["ok","ok",null,null,10]]]`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	out, err := c.Translate(context.Background(), "ok", SourceAuto, "fr")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, int32(2), hits.Load())
}

func TestClientTranslate_NonRetryableStatusFailsImmediately(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`bad request`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Translate(context.Background(), "text", SourceAuto, "fr")
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeTranslation, domain.TypeOf(err))
	assert.Contains(t, err.Error(), "400")
	assert.Equal(t, int32(1), hits.Load(), "a 400 must not be retried")
}

func TestClientTranslate_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`[[["late","late",null,null,10]]]`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	c := newTestClient(srv.URL)
	_, err := c.Translate(ctx, "text", SourceAuto, "fr")
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeTranslation, domain.TypeOf(err))
}

func TestClientTranslate_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"an array"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Translate(context.Background(), "text", SourceAuto, "fr")
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeTranslation, domain.TypeOf(err))
}

func TestShouldRetry(t *testing.T) {
	retryable := []int{429, 500, 502, 503, 504}
	for _, code := range retryable {
		assert.True(t, shouldRetry(code), "status %d must be retryable", code)
	}
	for _, code := range []int{200, 400, 401, 403, 404, 422} {
		assert.False(t, shouldRetry(code), "status %d must not be retryable", code)
	}
}

func TestCalculateBackoff(t *testing.T) {
	cfg := DefaultRetryConfig()
	assert.Equal(t, 1*time.Second, calculateBackoff(0, cfg))
	assert.Equal(t, 2*time.Second, calculateBackoff(1, cfg))
	assert.Equal(t, 4*time.Second, calculateBackoff(2, cfg))
	assert.Equal(t, cfg.MaxBackoff, calculateBackoff(10, cfg), "backoff must be capped")
}
