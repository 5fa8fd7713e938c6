package entity

import (
	"github.com/google/uuid"
)

// Product is a catalog entry describing a recyclable item. It is the in-repo
// consumer of the Trackable contract: every write is stamped and deletes are
// logical, so the catalog gets audited soft-delete for free.
type Product struct {
	ID          uuid.UUID
	Name        string
	EAN         string // Barcode; stored as text because leading zeros matter.
	Description string
	IsVerified  bool
	PicturePath string

	Parts []*Part // Child rows; hard-removed by the store's FK cascade only.

	Trackable
}

// Part is a disassemblable component of a product, mapping it to the material
// it should be sorted as.
type Part struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Name      string

	Trackable
}
