package model

import (
	"github.com/google/uuid"
)

// ProductModel mirrors the 'products' table.
type ProductModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name        string    `gorm:"type:varchar(255);not null"`
	EAN         string    `gorm:"type:varchar(64);column:ean"`
	Description string    `gorm:"type:text"`
	IsVerified  bool      `gorm:"not null;default:false"`
	PicturePath string    `gorm:"type:varchar(512)"`

	// The FK cascade is the only place a hard delete ever happens: if a
	// product row is destroyed by the storage engine, its parts go with it.
	Parts []PartModel `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`

	TrackableColumns `gorm:"embedded"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// PartModel mirrors the 'parts' table.
type PartModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(255);not null"`

	TrackableColumns `gorm:"embedded"`
}

// TableName explicitly sets the table name for GORM.
func (PartModel) TableName() string {
	return "parts"
}
