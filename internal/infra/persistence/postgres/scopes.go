package postgres

import "gorm.io/gorm"

// excludeDeleted hides logically deleted rows. Every default lookup and
// listing in this package is composed with it inside the repository, never at
// call sites, so a "deleted but still visible" bug cannot be introduced by
// forgetting a filter.
func excludeDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("deleted_at IS NULL")
}
