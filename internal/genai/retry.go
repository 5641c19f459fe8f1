package genai

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// RetryPolicy bounds the retry loop around generation attempts.
type RetryPolicy struct {
	MaxAttempts   int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// DefaultRetryPolicy returns the tuned production policy. Generative
// endpoints exhibit bursty transient overload rather than hard outages, so a
// gentle multiplier with a high attempt ceiling recovers more calls than
// fewer attempts with aggressive doubling.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:   8,
		InitialDelay:  2 * time.Second,
		MaxDelay:      60 * time.Second,
		BackoffFactor: 1.5,
	}
}

// Delay computes the backoff before the attempt following attempt n
// (1-indexed): min(initial×factor^(n-1) + jitter, max).
func (p RetryPolicy) Delay(attempt int, jitter time.Duration) time.Duration {
	backoff := float64(p.InitialDelay) * math.Pow(p.BackoffFactor, float64(attempt-1))
	d := time.Duration(backoff) + jitter
	if d > p.MaxDelay {
		return p.MaxDelay
	}
	return d
}

// retryable reports whether another attempt may succeed after err. Parse and
// validation defects are always retryable; transport errors defer to the
// kind classified at the gateway boundary.
func retryable(err error) bool {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Retryable()
	}
	return true
}

// GenerationError is the terminal failure surfaced once the retry loop gives
// up, either because attempts ran out or a non-retryable transport error was
// hit. Cause is always the last concrete underlying error, never a synthesized
// generic message, so callers can tell "service down" from "generator keeps
// producing malformed output".
type GenerationError struct {
	Attempts int
	Cause    error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed after %d attempt(s): %v", e.Attempts, e.Cause)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
