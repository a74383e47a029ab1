package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"sweeply/internal/models"
	"sweeply/internal/pkg/utils"
	"sweeply/internal/recurrence"
)

// Invoices fall due this many days after issue.
const invoiceDueDays = 14

// InvoiceStore is the persistence surface the invoice service needs.
// *repository.InvoiceRepository satisfies it.
type InvoiceStore interface {
	Create(invoice *models.Invoice) error
	FindByID(accountID, id string) (*models.Invoice, error)
	FindByJobID(accountID, jobID string) (*models.Invoice, error)
	Update(accountID, id string, updates map[string]interface{}) error
	MarkOverdue(today time.Time) (int64, error)
}

// InvoiceService generates invoices from completed jobs.
type InvoiceService struct {
	invoices InvoiceStore
	jobs     JobStore
	logger   *zap.Logger
	now      func() time.Time
}

func NewInvoiceService(invoices InvoiceStore, jobs JobStore, logger *zap.Logger) *InvoiceService {
	return &InvoiceService{
		invoices: invoices,
		jobs:     jobs,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock overrides the service's clock for tests.
func (s *InvoiceService) WithClock(now func() time.Time) *InvoiceService {
	s.now = now
	return s
}

// GenerateFromJob creates a draft invoice for a completed job. The amount
// is the actual price when recorded, the estimate otherwise.
func (s *InvoiceService) GenerateFromJob(accountID, jobID string) (*models.Invoice, error) {
	job, err := s.jobs.FindByID(accountID, jobID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}
	if job.Status != models.JobStatusCompleted {
		return nil, ErrJobNotCompleted
	}
	if existing, err := s.invoices.FindByJobID(accountID, jobID); err == nil && existing != nil {
		return nil, ErrAlreadyInvoiced
	}

	amount := job.EstimatedPrice
	if job.ActualPrice != nil {
		amount = *job.ActualPrice
	}

	today := recurrence.DateOf(s.now())
	invoice := &models.Invoice{
		ID:        utils.GenerateUUID(),
		AccountID: accountID,
		ClientID:  job.ClientID,
		JobID:     job.ID,
		Number:    utils.GenerateInvoiceNumber(),
		Amount:    amount,
		Status:    models.InvoiceStatusDraft,
		IssuedAt:  today,
		DueAt:     today.AddDate(0, 0, invoiceDueDays),
	}
	if err := s.invoices.Create(invoice); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}
	return invoice, nil
}

// MarkPaid records payment of an invoice.
func (s *InvoiceService) MarkPaid(accountID, id string) (*models.Invoice, error) {
	if _, err := s.invoices.FindByID(accountID, id); err != nil {
		return nil, fmt.Errorf("invoice not found: %s", id)
	}
	updates := map[string]interface{}{
		"status":  models.InvoiceStatusPaid,
		"paid_at": recurrence.DateOf(s.now()),
	}
	if err := s.invoices.Update(accountID, id, updates); err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}
	return s.invoices.FindByID(accountID, id)
}

// MarkOverdueInvoices flips sent invoices past due to overdue. Runs from
// the maintenance scheduler.
func (s *InvoiceService) MarkOverdueInvoices() {
	n, err := s.invoices.MarkOverdue(recurrence.DateOf(s.now()))
	if err != nil {
		s.logger.Error("Failed to mark overdue invoices", zap.Error(err))
		return
	}
	if n > 0 {
		s.logger.Info("Marked invoices overdue", zap.Int64("count", n))
	}
}
