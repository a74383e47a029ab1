package bootstrap

import (
	"fmt"

	"gorm.io/gorm"

	"sweeply/internal/models"
)

// MigrateAndSeed ensures required tables exist and inserts baseline rows for the rate catalog.
func MigrateAndSeed(db *gorm.DB) error {
	if err := db.AutoMigrate(allModels()...); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	if err := seedDefaults(db); err != nil {
		return fmt.Errorf("seed defaults failed: %w", err)
	}
	return nil
}

func allModels() []interface{} {
	return []interface{}{
		// Core entities
		&models.Account{},
		&models.Client{},
		&models.Job{},
		&models.JobLineItem{},
		&models.Invoice{},
		// Pricing / support tables
		&models.ServiceRate{},
		&models.APILog{},
	}
}

func seedDefaults(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		return ensureDefaultRates(tx)
	})
}

func ensureDefaultRates(tx *gorm.DB) error {
	defaults := []models.ServiceRate{
		{ServiceType: "standard", PropertyType: models.PropertyResidential, BaseRate: 80, PerBedroom: 20, PerBathroom: 15},
		{ServiceType: "standard", PropertyType: models.PropertyCommercial, BaseRate: 150, PerBedroom: 0, PerBathroom: 25},
		{ServiceType: "deep", PropertyType: models.PropertyResidential, BaseRate: 140, PerBedroom: 35, PerBathroom: 25},
		{ServiceType: "deep", PropertyType: models.PropertyCommercial, BaseRate: 250, PerBedroom: 0, PerBathroom: 40},
		{ServiceType: "move_out", PropertyType: models.PropertyResidential, BaseRate: 180, PerBedroom: 40, PerBathroom: 30},
	}

	for _, rate := range defaults {
		var count int64
		if err := tx.Model(&models.ServiceRate{}).
			Where("service_type = ? AND property_type = ?", rate.ServiceType, rate.PropertyType).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		row := rate
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}
