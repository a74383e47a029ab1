package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"sweeply/internal/service"
)

// InvoiceHandler handles invoice endpoints.
type InvoiceHandler struct {
	repos    *Repos
	invoices *service.InvoiceService
	logger   *zap.Logger
}

func NewInvoiceHandler(repos *Repos, invoices *service.InvoiceService, logger *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{repos: repos, invoices: invoices, logger: logger}
}

// List returns the account's invoices.
// GET /api/v1/invoices
func (h *InvoiceHandler) List(c echo.Context) error {
	limit := queryInt(c, "limit", 50)
	page := queryInt(c, "page", 1)

	invoices, total, err := h.repos.Invoice.FindAll(accountID(c), limit, page, c.QueryParam("status"))
	if err != nil {
		h.logger.Error("Failed to list invoices", zap.Error(err))
		return errorResponse(c, http.StatusInternalServerError, "Failed to fetch invoices")
	}
	return successResponse(c, "Successful", paginatedResponse(invoices, total, page, limit))
}

// Get returns one invoice.
// GET /api/v1/invoices/:id
func (h *InvoiceHandler) Get(c echo.Context) error {
	invoice, err := h.repos.Invoice.FindByID(accountID(c), c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusNotFound, "Invoice not found")
	}
	return successResponse(c, "Successful", invoice)
}

// GenerateFromJob creates a draft invoice for a completed job.
// POST /api/v1/invoices/from-job/:job_id
func (h *InvoiceHandler) GenerateFromJob(c echo.Context) error {
	invoice, err := h.invoices.GenerateFromJob(accountID(c), c.Param("job_id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrJobNotFound):
			return errorResponse(c, http.StatusNotFound, "Job not found")
		case errors.Is(err, service.ErrJobNotCompleted):
			return errorResponse(c, http.StatusBadRequest, "Only completed jobs can be invoiced")
		case errors.Is(err, service.ErrAlreadyInvoiced):
			return errorResponse(c, http.StatusConflict, "Job is already invoiced")
		}
		h.logger.Error("Failed to generate invoice", zap.Error(err))
		return errorResponse(c, http.StatusInternalServerError, "Failed to generate invoice")
	}
	return successResponse(c, "Invoice created", invoice)
}

// MarkPaid records payment of an invoice.
// POST /api/v1/invoices/:id/pay
func (h *InvoiceHandler) MarkPaid(c echo.Context) error {
	invoice, err := h.invoices.MarkPaid(accountID(c), c.Param("id"))
	if err != nil {
		h.logger.Error("Failed to mark invoice paid", zap.Error(err))
		return errorResponse(c, http.StatusNotFound, "Invoice not found")
	}
	return successResponse(c, "Invoice paid", invoice)
}

// Send marks a draft invoice as sent.
// POST /api/v1/invoices/:id/send
func (h *InvoiceHandler) Send(c echo.Context) error {
	id := c.Param("id")
	if _, err := h.repos.Invoice.FindByID(accountID(c), id); err != nil {
		return errorResponse(c, http.StatusNotFound, "Invoice not found")
	}
	if err := h.repos.Invoice.Update(accountID(c), id, map[string]interface{}{"status": "sent"}); err != nil {
		h.logger.Error("Failed to send invoice", zap.Error(err))
		return errorResponse(c, http.StatusInternalServerError, "Failed to send invoice")
	}
	invoice, err := h.repos.Invoice.FindByID(accountID(c), id)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "Failed to fetch updated invoice")
	}
	return successResponse(c, "Invoice sent", invoice)
}
