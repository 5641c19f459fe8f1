package genai

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxAnswerRunes bounds free-text answers before they are returned.
// Truncation is silent and applied uniformly.
const maxAnswerRunes = 1000

// ErrMissingParams is returned when a caller-supplied precondition is
// violated. It is surfaced synchronously, before any network activity, and
// never retried.
var ErrMissingParams = errors.New("missing required parameters")

// Service is the question-generation facade. It owns the retry loop that
// drives gateway attempts through sanitization and structural validation.
// Each call runs as one sequential attempt chain with no shared mutable
// state, so independent calls may run concurrently.
type Service struct {
	gateway Gateway
	policy  RetryPolicy

	// sleep and jitter are injection points for tests.
	sleep  func(ctx context.Context, d time.Duration) error
	jitter func() time.Duration
}

// NewService creates the facade around an injected gateway.
func NewService(gateway Gateway) *Service {
	return &Service{
		gateway: gateway,
		policy:  DefaultRetryPolicy(),
		sleep:   sleepContext,
		jitter:  randomJitter,
	}
}

// randomJitter returns a uniformly random delay in [0, 1s) added to each
// backoff to avoid synchronized retry storms across concurrent callers.
func randomJitter() time.Duration {
	return time.Duration(rand.Int63n(int64(time.Second)))
}

// sleepContext waits for d or until ctx is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// GenerateQuestions builds the structured prompt for one (subject, topic,
// difficulty) exam and drives retries until a validated result or a terminal
// failure. The returned error is ErrMissingParams for precondition
// violations and *GenerationError once retries are exhausted or a
// non-retryable transport error is hit.
func (s *Service) GenerateQuestions(ctx context.Context, subject, topic, difficulty string, policy *RetryPolicy) (*GenerationResult, error) {
	if subject == "" || topic == "" || difficulty == "" {
		return nil, ErrMissingParams
	}
	p := s.policy
	if policy != nil {
		p = *policy
	}

	var result *GenerationResult
	err := s.withRetry(ctx, p, questionPrompt(subject, topic, difficulty), jsonReminder, func(raw string) error {
		parsed, err := parseResult(Sanitize(raw))
		if err != nil {
			return err
		}
		result = parsed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AskAboutSubject answers a free-text question about a subject through the
// same retry machinery, without a JSON stage: success is receiving non-empty
// text. Answers are silently truncated to a fixed maximum length.
func (s *Service) AskAboutSubject(ctx context.Context, subject, question string, policy *RetryPolicy) (string, error) {
	if subject == "" || question == "" {
		return "", ErrMissingParams
	}
	p := s.policy
	if policy != nil {
		p = *policy
	}

	var answer string
	err := s.withRetry(ctx, p, askPrompt(subject, question), plainReminder, func(raw string) error {
		text := strings.TrimSpace(raw)
		if text == "" {
			return &ValidationError{Message: "empty answer text"}
		}
		answer = text
		return nil
	})
	if err != nil {
		return "", err
	}
	return truncate(answer, maxAnswerRunes), nil
}

// withRetry drives gateway attempts under the policy. The prompt for each
// attempt is rebuilt from an ordered segment list: the base prompt plus one
// compliance reminder per failed attempt, so attempt n's prompt is a pure
// function of n. accept consumes a raw response and reports whether the
// attempt succeeded; its errors are treated as retryable generator noise.
func (s *Service) withRetry(ctx context.Context, p RetryPolicy, basePrompt, reminder string, accept func(raw string) error) error {
	callID := uuid.NewString()[:8]
	segments := []string{basePrompt}
	var lastErr error

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		raw, err := s.gateway.Complete(ctx, strings.Join(segments, "\n\n"))
		if err == nil {
			if err = accept(raw); err == nil {
				return nil
			}
		}
		lastErr = err

		if ctx.Err() != nil {
			return &GenerationError{Attempts: attempt, Cause: ctx.Err()}
		}
		if !retryable(err) || attempt == p.MaxAttempts {
			return &GenerationError{Attempts: attempt, Cause: lastErr}
		}

		delay := p.Delay(attempt, s.jitter())
		log.Printf("genai: call %s attempt %d/%d failed (%v), retrying in %s",
			callID, attempt, p.MaxAttempts, err, delay.Round(time.Millisecond))
		if err := s.sleep(ctx, delay); err != nil {
			return &GenerationError{Attempts: attempt, Cause: lastErr}
		}
		segments = append(segments, reminder)
	}

	return &GenerationError{Attempts: p.MaxAttempts, Cause: lastErr}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
