// Package model contains the GORM persistence models mirroring the database schema.
package model

import "time"

// TrackableColumns is the audit/soft-delete column bundle embedded in every
// persisted table. DeletedAt is deliberately a plain *time.Time rather than
// gorm.DeletedAt: filtering of deleted rows is done explicitly by the
// repository layer, not by ORM magic, so the contract stays visible.
type TrackableColumns struct {
	CreatedAt  time.Time  `gorm:"not null"`
	CreatedBy  string     `gorm:"type:varchar(100);not null"`
	ModifiedAt time.Time  `gorm:"not null"`
	ModifiedBy string     `gorm:"type:varchar(100);not null"`
	DeletedAt  *time.Time `gorm:"index"`
	DeletedBy  *string    `gorm:"type:varchar(100)"`
}
