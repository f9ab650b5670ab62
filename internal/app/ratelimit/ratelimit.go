package ratelimit

import (
	"errors"
	"net/http"
	"strconv"
)

const (
	RemainingHeader = "X-Rate-Limit-Remaining"
	ResetHeader     = "X-Rate-Limit-Reset"

	defaultRemaining    = 40
	defaultResetSeconds = 60
)

var ErrNegativeLimit = errors.New("rate limit values must be non-negative")
var ErrMissingHeaders = errors.New("response carries no rate limit headers")

// Tracker mirrors the upstream request budget as reported by response
// headers. Not safe for concurrent use; callers sharing a client across
// goroutines must serialize access themselves.
type Tracker struct {
	remaining    int
	resetSeconds int
}

func NewTracker() *Tracker {
	return &Tracker{remaining: defaultRemaining, resetSeconds: defaultResetSeconds}
}

func (t *Tracker) AtMax() bool {
	return t.remaining <= 0
}

func (t *Tracker) Remaining() int {
	return t.remaining
}

func (t *Tracker) ResetSeconds() int {
	return t.resetSeconds
}

func (t *Tracker) Update(remaining int, resetSeconds int) error {
	if remaining < 0 || resetSeconds < 0 {
		return ErrNegativeLimit
	}
	t.remaining = remaining
	t.resetSeconds = resetSeconds
	return nil
}

// UpdateFromHeaders ingests the budget reported by a successful response.
func (t *Tracker) UpdateFromHeaders(headers http.Header) error {
	remainingValue := headers.Get(RemainingHeader)
	resetValue := headers.Get(ResetHeader)
	if remainingValue == "" || resetValue == "" {
		return ErrMissingHeaders
	}
	remaining, err := strconv.Atoi(remainingValue)
	if err != nil {
		return err
	}
	resetSeconds, err := strconv.Atoi(resetValue)
	if err != nil {
		return err
	}
	return t.Update(remaining, resetSeconds)
}
