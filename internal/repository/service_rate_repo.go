package repository

import (
	"gorm.io/gorm"

	"sweeply/internal/models"
)

// ServiceRateRepository reads the seeded pricing catalog.
type ServiceRateRepository struct {
	db *gorm.DB
}

func NewServiceRateRepository(db *gorm.DB) *ServiceRateRepository {
	return &ServiceRateRepository{db: db}
}

// Find returns the rate row for a service/property type pair.
func (r *ServiceRateRepository) Find(serviceType, propertyType string) (*models.ServiceRate, error) {
	var rate models.ServiceRate
	err := r.db.Where("service_type = ? AND property_type = ?", serviceType, propertyType).
		First(&rate).Error
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

// FindAll returns the whole catalog.
func (r *ServiceRateRepository) FindAll() ([]models.ServiceRate, error) {
	var rates []models.ServiceRate
	err := r.db.Order("service_type ASC, property_type ASC").Find(&rates).Error
	return rates, err
}
