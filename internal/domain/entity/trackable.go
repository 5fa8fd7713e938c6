// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"errors"
	"time"
)

// ErrInvalidState is returned when a trackable record is stamped out of order,
// e.g. StampCreate called twice. This is a programming error, not a user-facing
// condition; callers should treat it as fatal.
var ErrInvalidState = errors.New("trackable record is in an invalid state for this operation")

// Trackable is the audit and soft-delete attribute bundle embedded in every
// persisted entity. Creation, modification and deletion are recorded with the
// acting principal and a caller-supplied timestamp; rows are never removed,
// only marked deleted.
type Trackable struct {
	CreatedAt  time.Time // When the record was first persisted.
	CreatedBy  string    // Principal that created the record.
	ModifiedAt time.Time // Refreshed on every write.
	ModifiedBy string    // Principal that performed the last write.
	DeletedAt  *time.Time // Non-nil means the record is logically deleted.
	DeletedBy  *string    // Principal that deleted the record.
}

// StampCreate records the creation provenance. It must be called exactly once,
// before the record is first persisted; a second call returns ErrInvalidState.
func (t *Trackable) StampCreate(actor string, now time.Time) error {
	if !t.CreatedAt.IsZero() {
		return ErrInvalidState
	}

	t.CreatedAt = now
	t.CreatedBy = actor
	t.ModifiedAt = now
	t.ModifiedBy = actor

	return nil
}

// StampModify refreshes the modification provenance. Every write to the record
// must go through this before persisting.
func (t *Trackable) StampModify(actor string, now time.Time) {
	t.ModifiedAt = now
	t.ModifiedBy = actor
}

// MarkDeleted logically deletes the record. The row stays in storage and is
// hidden from every default read path; it also counts as a modification.
func (t *Trackable) MarkDeleted(actor string, now time.Time) {
	t.DeletedAt = &now
	t.DeletedBy = &actor
	t.StampModify(actor, now)
}

// IsDeleted reports whether the record has been logically deleted.
func (t *Trackable) IsDeleted() bool {
	return t.DeletedAt != nil
}
