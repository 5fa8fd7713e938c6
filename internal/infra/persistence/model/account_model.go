package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'accounts' table. The normalized email is unique
// among non-deleted rows only (partial index), so a logically deleted account
// never blocks re-registration of its address.
type AccountModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Username        string    `gorm:"type:varchar(100);not null"`
	Email           string    `gorm:"type:varchar(255);not null"`
	NormalizedEmail string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_accounts_normalized_email,where:deleted_at IS NULL"`
	PasswordHash    string    `gorm:"type:varchar(255);not null"`
	EmailConfirmed  bool      `gorm:"not null;default:false"`

	FailedLoginCount int        `gorm:"not null;default:0"`
	LockoutEndsAt    *time.Time

	TrackableColumns `gorm:"embedded"`
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}
