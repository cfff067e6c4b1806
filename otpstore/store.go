package otpstore

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Verification failures surfaced to controllers.
var (
	ErrNotFound        = errors.New("no OTP found for this account")
	ErrExpired         = errors.New("OTP has expired")
	ErrTooManyAttempts = errors.New("too many failed attempts")
	ErrInvalidCode     = errors.New("invalid OTP")
	ErrInvalidToken    = errors.New("invalid or expired reset token")
)

const (
	// TTL is how long a code stays valid after issue.
	TTL = 10 * time.Minute
	// SweepInterval is how often expired entries are purged in the background.
	SweepInterval = 5 * time.Minute
	// MaxAttempts is the number of wrong codes tolerated before the entry is dropped.
	MaxAttempts = 3
)

type key struct {
	role  string
	email string
}

// Entry is one live OTP issued for a (role, email) pair.
type Entry struct {
	Code       string
	UserID     uint
	ExpiresAt  time.Time
	Attempts   int
	Verified   bool
	ResetToken string
}

// Store keeps live OTP entries in memory, at most one per (role, email) key.
// Handlers run concurrently under fiber, so all access goes through the mutex.
// The background sweeper is a safety net for codes that are requested but
// never verified; Verify and Consume also drop expired entries lazily.
type Store struct {
	mu      sync.Mutex
	entries map[key]*Entry

	now  func() time.Time // swapped out in tests
	done chan struct{}
}

// New creates a store and starts its background sweeper.
// Call Stop on shutdown.
func New() *Store {
	s := &Store{
		entries: make(map[key]*Entry),
		now:     time.Now,
		done:    make(chan struct{}),
	}

	go s.sweepLoop()

	return s
}

// Stop terminates the background sweeper.
func (s *Store) Stop() {
	close(s.done)
}

func (s *Store) sweepLoop() {
	ticker := time.NewTicker(SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep()
		case <-s.done:
			return
		}
	}
}

// Sweep deletes every entry past its expiry instant.
func (s *Store) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, e := range s.entries {
		if now.After(e.ExpiresAt) {
			delete(s.entries, k)
		}
	}
}

// Put stores a fresh entry for the key, unconditionally replacing any prior
// entry. Only the newest code for a key is ever valid. Returns the expiry.
func (s *Store) Put(role, email, code string, userID uint) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt := s.now().Add(TTL)
	s.entries[key{role, email}] = &Entry{
		Code:      code,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}

	return expiresAt
}

// Verify checks a submitted code against the live entry for the key.
// On success it marks the entry verified, attaches a single-use reset token
// and returns it; the entry stays live until Consume or expiry. On a wrong
// code it returns ErrInvalidCode and the number of attempts remaining; the
// entry is dropped once attempts are exhausted.
func (s *Store) Verify(role, email, code string) (string, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key{role, email}
	e, ok := s.entries[k]
	if !ok {
		return "", 0, ErrNotFound
	}

	if s.now().After(e.ExpiresAt) {
		delete(s.entries, k)
		return "", 0, ErrExpired
	}

	if e.Attempts >= MaxAttempts {
		delete(s.entries, k)
		return "", 0, ErrTooManyAttempts
	}

	if code != e.Code {
		e.Attempts++
		remaining := MaxAttempts - e.Attempts
		if remaining <= 0 {
			delete(s.entries, k)
		}
		return "", remaining, ErrInvalidCode
	}

	e.Verified = true
	e.ResetToken = uuid.NewString()

	return e.ResetToken, MaxAttempts - e.Attempts, nil
}

// Consume validates a reset token issued by Verify and deletes the entry,
// returning the owning user's id. The token is single-use: a second call
// with the same token fails with ErrInvalidToken.
func (s *Store) Consume(role, email, token string) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key{role, email}
	e, ok := s.entries[k]
	if !ok {
		return 0, ErrInvalidToken
	}

	if s.now().After(e.ExpiresAt) {
		delete(s.entries, k)
		return 0, ErrInvalidToken
	}

	if !e.Verified || e.ResetToken == "" || e.ResetToken != token {
		return 0, ErrInvalidToken
	}

	delete(s.entries, k)
	return e.UserID, nil
}

// Len reports the number of live entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
