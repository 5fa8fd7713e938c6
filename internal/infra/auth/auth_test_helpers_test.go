package auth

import (
	"time"

	"recycle/config"
)

// testClock is a manually advanced clock for deterministic expiry tests.
type testClock struct {
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:           4,
			MaxFailedAttempts:    5,
			LockoutDuration:      15 * time.Minute,
			SessionTTL:           24 * time.Hour,
			ConfirmationTokenTTL: 24 * time.Hour,
		},
	}
	cfg.SecretKey.Session = "session-secret-for-tests"
	cfg.SecretKey.Confirmation = "confirmation-secret-for-tests"

	return cfg
}
