package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"adaptlearn/internal/config"
)

// Gateway issues a single prompt-completion request to the generative-text
// API and returns the raw response text. No retry logic lives here; failures
// surface verbatim for the retry loop to classify.
type Gateway interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrorKind classifies a transport failure at the gateway boundary so the
// retryability decision is a function over an enum rather than substring
// matching against third-party message text.
type ErrorKind string

const (
	KindTimeout     ErrorKind = "timeout"
	KindRateLimited ErrorKind = "rate_limited"
	KindUnavailable ErrorKind = "unavailable"
	KindOther       ErrorKind = "other"
)

// TransportError is a failed gateway call.
type TransportError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("gateway: %s (status %d)", e.Message, e.StatusCode)
	}
	return "gateway: " + e.Message
}

// Retryable reports whether another attempt may succeed. Timeouts,
// rate limits and overload are transient; everything else is terminal.
func (e *TransportError) Retryable() bool {
	return e.Kind != KindOther
}

var statusKinds = map[int]ErrorKind{
	http.StatusRequestTimeout:     KindTimeout,
	http.StatusTooManyRequests:    KindRateLimited,
	http.StatusServiceUnavailable: KindUnavailable,
	http.StatusGatewayTimeout:     KindTimeout,
}

// classify maps a status code and provider message onto an ErrorKind.
// The triggering conditions are timeout, overload, rate limit and the
// status codes 408, 429, 503 and 504.
func classify(status int, message string) ErrorKind {
	if kind, ok := statusKinds[status]; ok {
		return kind
	}
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "timeout"):
		return KindTimeout
	case strings.Contains(lower, "rate limit"):
		return KindRateLimited
	case strings.Contains(lower, "service unavailable"), strings.Contains(lower, "overloaded"):
		return KindUnavailable
	}
	return KindOther
}

// HTTPGateway calls an OpenAI-compatible chat-completions endpoint with
// bearer authentication. The credential is injected at construction and
// never re-read.
type HTTPGateway struct {
	cfg    *config.AIConfig
	client *http.Client
}

// NewHTTPGateway creates a gateway from the given AI configuration.
func NewHTTPGateway(cfg *config.AIConfig) *HTTPGateway {
	return &HTTPGateway{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends one prompt and returns the completion text.
func (g *HTTPGateway) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:    g.cfg.Model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", &TransportError{Kind: KindOther, Message: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.CompletionsEndpoint(), bytes.NewReader(body))
	if err != nil {
		return "", &TransportError{Kind: KindOther, Message: err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		kind := KindOther
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			kind = KindTimeout
		}
		return "", &TransportError{Kind: kind, Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Kind: KindOther, Message: err.Error()}
	}

	if resp.StatusCode != http.StatusOK {
		msg := "API request failed: " + resp.Status
		return "", &TransportError{
			Kind:       classify(resp.StatusCode, msg),
			StatusCode: resp.StatusCode,
			Message:    msg,
		}
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", &TransportError{Kind: KindOther, Message: "malformed completion envelope: " + err.Error()}
	}
	if len(parsed.Choices) == 0 {
		return "", &TransportError{Kind: KindOther, Message: "no choices in completion response"}
	}
	return parsed.Choices[0].Message.Content, nil
}
