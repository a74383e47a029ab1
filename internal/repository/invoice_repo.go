package repository

import (
	"time"

	"gorm.io/gorm"

	"sweeply/internal/models"
)

// InvoiceRepository handles invoice database operations.
type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// FindAll returns an account's invoices with pagination.
func (r *InvoiceRepository) FindAll(accountID string, limit, page int, status string) ([]models.Invoice, int64, error) {
	var invoices []models.Invoice
	var total int64

	db := r.db.Model(&models.Invoice{}).Where("account_id = ?", accountID)
	if status != "" {
		db = db.Where("status = ?", status)
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

	if err := db.Limit(limit).Offset(offset).Order("issued_at DESC").Find(&invoices).Error; err != nil {
		return nil, 0, err
	}
	return invoices, total, nil
}

// FindByID returns an invoice scoped to the owning account.
func (r *InvoiceRepository) FindByID(accountID, id string) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.db.Where("account_id = ? AND id = ?", accountID, id).First(&invoice).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

// FindByJobID returns the invoice already generated for a job, if any.
func (r *InvoiceRepository) FindByJobID(accountID, jobID string) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.db.Where("account_id = ? AND job_id = ?", accountID, jobID).First(&invoice).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

// Create creates a new invoice.
func (r *InvoiceRepository) Create(invoice *models.Invoice) error {
	return r.db.Create(invoice).Error
}

// Update updates invoice fields.
func (r *InvoiceRepository) Update(accountID, id string, updates map[string]interface{}) error {
	return r.db.Model(&models.Invoice{}).
		Where("account_id = ? AND id = ?", accountID, id).
		Updates(updates).Error
}

// MarkOverdue flips sent invoices past their due date to overdue.
// Runs across all accounts from the maintenance scheduler.
func (r *InvoiceRepository) MarkOverdue(today time.Time) (int64, error) {
	res := r.db.Model(&models.Invoice{}).
		Where("status = ? AND due_at < ?", models.InvoiceStatusSent, today).
		Update("status", models.InvoiceStatusOverdue)
	return res.RowsAffected, res.Error
}
