// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import "time"

// Clock abstracts time so lockout windows and audit stamps are testable.
// Production code uses the system clock; tests substitute a fixed one.
type Clock interface {
	Now() time.Time
}
