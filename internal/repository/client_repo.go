package repository

import (
	"gorm.io/gorm"

	"sweeply/internal/models"
)

// ClientRepository handles client database operations.
type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// FindAll returns an account's clients with pagination and search.
func (r *ClientRepository) FindAll(accountID string, limit, page int, query string) ([]models.Client, int64, error) {
	var clients []models.Client
	var total int64

	db := r.db.Model(&models.Client{}).Where("account_id = ?", accountID)

	if query != "" {
		search := "%" + query + "%"
		db = db.Where("name LIKE ? OR email LIKE ? OR phone LIKE ? OR address LIKE ?",
			search, search, search, search)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 50
	}
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	if err := db.Limit(limit).Offset(offset).Order("name ASC").Find(&clients).Error; err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}

// FindByID returns a client scoped to the owning account.
func (r *ClientRepository) FindByID(accountID, id string) (*models.Client, error) {
	var client models.Client
	if err := r.db.Where("account_id = ? AND id = ?", accountID, id).First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// Create creates a new client.
func (r *ClientRepository) Create(client *models.Client) error {
	return r.db.Create(client).Error
}

// Update updates client fields.
func (r *ClientRepository) Update(accountID, id string, updates map[string]interface{}) error {
	return r.db.Model(&models.Client{}).
		Where("account_id = ? AND id = ?", accountID, id).
		Updates(updates).Error
}

// Delete deletes a client.
func (r *ClientRepository) Delete(accountID, id string) error {
	return r.db.Where("account_id = ? AND id = ?", accountID, id).Delete(&models.Client{}).Error
}
