package repository

import (
	"gorm.io/gorm"

	"sweeply/internal/models"
)

// AccountRepository handles account database operations.
type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create creates a new account.
func (r *AccountRepository) Create(account *models.Account) error {
	return r.db.Create(account).Error
}

// FindByID returns an account by ID.
func (r *AccountRepository) FindByID(id string) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("id = ?", id).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByEmail returns an account by email.
func (r *AccountRepository) FindByEmail(email string) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("email = ?", email).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// Update updates account fields.
func (r *AccountRepository) Update(id string, updates map[string]interface{}) error {
	return r.db.Model(&models.Account{}).Where("id = ?", id).Updates(updates).Error
}
