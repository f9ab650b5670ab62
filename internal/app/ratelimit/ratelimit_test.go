package ratelimit

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTracker_DefaultBudget(t *testing.T) {
	tracker := NewTracker()
	assert.Equal(t, 40, tracker.Remaining())
	assert.Equal(t, 60, tracker.ResetSeconds())
	assert.False(t, tracker.AtMax())
}

func TestTracker_AtMax(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.Update(0, 17))
	assert.True(t, tracker.AtMax())

	require.NoError(t, tracker.Update(1, 17))
	assert.False(t, tracker.AtMax())
}

func TestTracker_UpdateOverwritesBothFields(t *testing.T) {
	tracker := NewTracker()
	require.NoError(t, tracker.Update(12, 34))
	assert.Equal(t, 12, tracker.Remaining())
	assert.Equal(t, 34, tracker.ResetSeconds())
}

func TestTracker_UpdateRejectsNegativeValues(t *testing.T) {
	tracker := NewTracker()

	assert.ErrorIs(t, tracker.Update(-1, 10), ErrNegativeLimit)
	assert.ErrorIs(t, tracker.Update(10, -1), ErrNegativeLimit)

	// A rejected update leaves the budget untouched.
	assert.Equal(t, 40, tracker.Remaining())
	assert.Equal(t, 60, tracker.ResetSeconds())
}

func TestTracker_UpdateFromHeaders(t *testing.T) {
	tracker := NewTracker()
	headers := http.Header{}
	headers.Set(RemainingHeader, "7")
	headers.Set(ResetHeader, "21")

	require.NoError(t, tracker.UpdateFromHeaders(headers))
	assert.Equal(t, 7, tracker.Remaining())
	assert.Equal(t, 21, tracker.ResetSeconds())
}

func TestTracker_UpdateFromHeaders_Missing(t *testing.T) {
	tracker := NewTracker()
	assert.ErrorIs(t, tracker.UpdateFromHeaders(http.Header{}), ErrMissingHeaders)
	assert.Equal(t, 40, tracker.Remaining())
}

func TestTracker_UpdateFromHeaders_NonNumeric(t *testing.T) {
	tracker := NewTracker()
	headers := http.Header{}
	headers.Set(RemainingHeader, "lots")
	headers.Set(ResetHeader, "21")

	assert.Error(t, tracker.UpdateFromHeaders(headers))
	assert.Equal(t, 40, tracker.Remaining())
}
