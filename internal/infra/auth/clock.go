// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"recycle/internal/domain/service"
)

type systemClock struct{}

// NewSystemClock returns a Clock backed by the wall clock.
func NewSystemClock() service.Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}
