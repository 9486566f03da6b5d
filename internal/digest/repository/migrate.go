package repository

import (
	"dfo-news-digest/internal/entity"

	"gorm.io/gorm"
)

// AutoMigrate creates the digest tables from the entity models. Used for the embedded sqlite store;
// postgres deployments run the SQL migrations instead.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(entity.Models()...)
}
