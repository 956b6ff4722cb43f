// Package translate drives the external translation service over length-
// bounded text chunks and reassembles the results in input order.
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/doctrans/doctrans/internal/domain"
	"github.com/doctrans/doctrans/internal/observability"
)

// defaultEndpoint is the unauthenticated Google translate web endpoint.
const defaultEndpoint = "https://translate.googleapis.com/translate_a/single"

// SourceAuto lets the service detect the source language.
const SourceAuto = "auto"

const defaultTimeout = 60 * time.Second

// Client is a Translator backed by the Google translate web endpoint. It is
// stateless and safe for concurrent use.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *observability.Logger
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithEndpoint overrides the translate endpoint URL. Used in tests.
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a translation client.
func NewClient(logger *observability.Logger, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:   defaultEndpoint,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger.WithComponent("translate"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Translate sends one chunk of text to the translation service and returns
// the translated text. Transient failures are retried with exponential
// backoff before the call is reported as failed.
func (c *Client) Translate(ctx context.Context, text, source, target string) (string, error) {
	if text == "" {
		return "", nil
	}
	if source == "" {
		source = SourceAuto
	}

	query := url.Values{}
	query.Set("client", "gtx")
	query.Set("sl", source)
	query.Set("tl", target)
	query.Set("dt", "t")
	query.Set("q", text)
	requestURL := c.endpoint + "?" + query.Encode()

	resp, err := c.retryWithBackoff(ctx, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return c.httpClient.Do(req)
	})
	if err != nil {
		return "", domain.TranslationError("failed to reach translation service", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", domain.TranslationError(fmt.Sprintf("translation service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", domain.TranslationError("failed to read translation response", err)
	}

	translated, err := parseResponse(body)
	if err != nil {
		return "", domain.TranslationError("failed to parse translation response", err)
	}
	return translated, nil
}

// parseResponse decodes the endpoint's nested-array payload. The first
// element is a list of sentence segments whose first element each is the
// translated text.
func parseResponse(body []byte) (string, error) {
	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("unexpected response shape: %w", err)
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("empty response")
	}

	var segments []json.RawMessage
	if err := json.Unmarshal(payload[0], &segments); err != nil {
		return "", fmt.Errorf("unexpected segment list: %w", err)
	}

	var b strings.Builder
	for _, seg := range segments {
		var parts []json.RawMessage
		if err := json.Unmarshal(seg, &parts); err != nil {
			return "", fmt.Errorf("unexpected segment shape: %w", err)
		}
		if len(parts) == 0 {
			continue
		}
		var piece string
		if err := json.Unmarshal(parts[0], &piece); err != nil {
			// Segments without a leading string carry no translation.
			continue
		}
		b.WriteString(piece)
	}

	return b.String(), nil
}
