package repository

import (
	"time"

	"gorm.io/gorm"

	"sweeply/internal/models"
)

// APILogRepository writes request audit rows.
type APILogRepository struct {
	db *gorm.DB
}

func NewAPILogRepository(db *gorm.DB) *APILogRepository {
	return &APILogRepository{db: db}
}

// Create inserts one audit row.
func (r *APILogRepository) Create(log *models.APILog) error {
	return r.db.Create(log).Error
}

// PruneOlderThan removes audit rows past the retention cutoff.
func (r *APILogRepository) PruneOlderThan(cutoff time.Time) (int64, error) {
	res := r.db.Where("created_at < ?", cutoff).Delete(&models.APILog{})
	return res.RowsAffected, res.Error
}
