package database

import (
	"github.com/VettaLabs/ThesisGate/pkg/domain/review"
	"gorm.io/gorm"
)

func init() {
	RegisterMigration(Migration{
		ID:   "20250812_001",
		Name: "create reviews table",
		Up: func(db *gorm.DB) error {
			return db.AutoMigrate(&review.Review{})
		},
	})
	RegisterMigration(Migration{
		ID:   "20250812_002",
		Name: "index reviews by status",
		Up: func(db *gorm.DB) error {
			return db.Exec(
				"CREATE INDEX IF NOT EXISTS idx_reviews_status_created ON reviews (status, created_at DESC)",
			).Error
		},
	})
}
