package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"sweeply/internal/models"
	"sweeply/internal/service"
)

// EstimateHandler exposes the pricing calculator.
type EstimateHandler struct {
	repos     *Repos
	estimator *service.Estimator
	logger    *zap.Logger
}

func NewEstimateHandler(repos *Repos, estimator *service.Estimator, logger *zap.Logger) *EstimateHandler {
	return &EstimateHandler{repos: repos, estimator: estimator, logger: logger}
}

// Quote prices a prospective booking.
// POST /api/v1/estimates
func (h *EstimateHandler) Quote(c echo.Context) error {
	var req models.EstimateRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "Invalid request body")
	}

	estimate, err := h.estimator.Quote(req)
	if err != nil {
		if errors.Is(err, service.ErrRateNotFound) {
			return errorResponse(c, http.StatusBadRequest, "No rate configured for this service")
		}
		h.logger.Error("Failed to compute estimate", zap.Error(err))
		return errorResponse(c, http.StatusInternalServerError, "Failed to compute estimate")
	}
	return successResponse(c, "Successful", estimate)
}

// Rates lists the pricing catalog.
// GET /api/v1/estimates/rates
func (h *EstimateHandler) Rates(c echo.Context) error {
	rates, err := h.repos.ServiceRate.FindAll()
	if err != nil {
		h.logger.Error("Failed to list rates", zap.Error(err))
		return errorResponse(c, http.StatusInternalServerError, "Failed to fetch rates")
	}
	return successResponse(c, "Successful", rates)
}
