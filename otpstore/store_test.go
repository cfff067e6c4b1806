package otpstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore returns a store without a running sweeper and a movable clock.
func newTestStore() (*Store, *time.Time) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	clock := &base
	s := &Store{
		entries: make(map[key]*Entry),
		now:     func() time.Time { return *clock },
		done:    make(chan struct{}),
	}
	return s, clock
}

func TestVerifySuccessReturnsToken(t *testing.T) {
	s, _ := newTestStore()
	s.Put("student", "a@x.edu", "123456", 7)

	token, remaining, err := s.Verify("student", "a@x.edu", "123456")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, MaxAttempts, remaining)

	// Entry stays live until the reset consumes it.
	assert.Equal(t, 1, s.Len())
}

func TestVerifyUnknownKey(t *testing.T) {
	s, _ := newTestStore()

	_, _, err := s.Verify("student", "nobody@x.edu", "123456")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPutReplacesPriorEntry(t *testing.T) {
	s, _ := newTestStore()
	s.Put("student", "a@x.edu", "111111", 7)
	s.Put("student", "a@x.edu", "222222", 7)

	// The first code is no longer valid and counts as a failed attempt.
	_, remaining, err := s.Verify("student", "a@x.edu", "111111")
	assert.ErrorIs(t, err, ErrInvalidCode)
	assert.Equal(t, 2, remaining)

	_, _, err = s.Verify("student", "a@x.edu", "222222")
	assert.NoError(t, err)
}

func TestVerifyExpiryBoundary(t *testing.T) {
	s, clock := newTestStore()
	expiresAt := s.Put("student", "a@x.edu", "123456", 7)

	// Just before expiry the correct code still works.
	*clock = expiresAt.Add(-time.Second)
	_, _, err := s.Verify("student", "a@x.edu", "123456")
	require.NoError(t, err)

	s.Put("student", "a@x.edu", "654321", 7)

	// Just past expiry the entry is dropped.
	*clock = expiresAt.Add(TTL).Add(time.Second)
	_, _, err = s.Verify("student", "a@x.edu", "654321")
	assert.ErrorIs(t, err, ErrExpired)
	assert.Equal(t, 0, s.Len())

	// A retry after the lazy delete reports NotFound.
	_, _, err = s.Verify("student", "a@x.edu", "654321")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAttemptExhaustion(t *testing.T) {
	s, _ := newTestStore()
	s.Put("faculty", "f@x.edu", "123456", 9)

	for i := 1; i <= MaxAttempts; i++ {
		_, remaining, err := s.Verify("faculty", "f@x.edu", "000000")
		assert.ErrorIs(t, err, ErrInvalidCode)
		assert.Equal(t, MaxAttempts-i, remaining)
	}

	// Even the correct code fails once attempts are exhausted.
	_, _, err := s.Verify("faculty", "f@x.edu", "123456")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConsumeTokenBinding(t *testing.T) {
	s, _ := newTestStore()
	s.Put("admin", "adm@x.edu", "123456", 3)

	// Not verified yet: any token fails.
	_, err := s.Consume("admin", "adm@x.edu", "whatever")
	assert.ErrorIs(t, err, ErrInvalidToken)

	token, _, err := s.Verify("admin", "adm@x.edu", "123456")
	require.NoError(t, err)

	// Wrong token fails and keeps the entry.
	_, err = s.Consume("admin", "adm@x.edu", token+"x")
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Equal(t, 1, s.Len())

	userID, err := s.Consume("admin", "adm@x.edu", token)
	require.NoError(t, err)
	assert.Equal(t, uint(3), userID)
	assert.Equal(t, 0, s.Len())

	// Single use: the same token cannot be replayed.
	_, err = s.Consume("admin", "adm@x.edu", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestKeysAreRoleScoped(t *testing.T) {
	s, _ := newTestStore()
	s.Put("student", "same@x.edu", "111111", 1)
	s.Put("faculty", "same@x.edu", "222222", 2)

	_, _, err := s.Verify("student", "same@x.edu", "111111")
	assert.NoError(t, err)
	_, _, err = s.Verify("faculty", "same@x.edu", "222222")
	assert.NoError(t, err)
}

func TestSweepDropsOnlyExpiredEntries(t *testing.T) {
	s, clock := newTestStore()
	s.Put("student", "old@x.edu", "111111", 1)

	*clock = clock.Add(TTL / 2)
	s.Put("student", "fresh@x.edu", "222222", 2)

	*clock = clock.Add(TTL/2 + time.Second)
	s.Sweep()

	assert.Equal(t, 1, s.Len())
	_, _, err := s.Verify("student", "old@x.edu", "111111")
	assert.ErrorIs(t, err, ErrNotFound)
	_, _, err = s.Verify("student", "fresh@x.edu", "222222")
	assert.NoError(t, err)
}

func TestStopTerminatesSweeper(t *testing.T) {
	s := New()
	s.Stop()

	// Stopping must not affect live entries.
	s.Put("student", "a@x.edu", "123456", 7)
	assert.Equal(t, 1, s.Len())
}
