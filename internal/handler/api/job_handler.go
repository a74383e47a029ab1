package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"sweeply/internal/models"
	"sweeply/internal/pkg/utils"
	"sweeply/internal/repository"
	"sweeply/internal/service"
)

// JobHandler handles job and recurring-series API endpoints.
type JobHandler struct {
	series *service.SeriesManager
	logger *zap.Logger
}

func NewJobHandler(series *service.SeriesManager, logger *zap.Logger) *JobHandler {
	return &JobHandler{series: series, logger: logger}
}

// List returns the account's jobs. Instances are excluded unless
// include_instances=true (calendar views).
// GET /api/v1/jobs
func (h *JobHandler) List(c echo.Context) error {
	filters := repository.JobFilters{
		Status:           c.QueryParam("status"),
		ClientID:         c.QueryParam("client_id"),
		IncludeInstances: c.QueryParam("include_instances") == "true",
		Limit:            queryInt(c, "limit", 50),
		Page:             queryInt(c, "page", 1),
	}
	if from := c.QueryParam("date_from"); from != "" {
		d, err := utils.ParseDate(from)
		if err != nil {
			return errorResponse(c, http.StatusBadRequest, "Invalid date_from")
		}
		filters.DateFrom = d
	}
	if to := c.QueryParam("date_to"); to != "" {
		d, err := utils.ParseDate(to)
		if err != nil {
			return errorResponse(c, http.StatusBadRequest, "Invalid date_to")
		}
		filters.DateTo = d
	}

	jobs, total, err := h.series.ListJobs(accountID(c), filters)
	if err != nil {
		h.logger.Error("Failed to list jobs", zap.Error(err))
		return errorResponse(c, http.StatusInternalServerError, "Failed to fetch jobs")
	}
	return successResponse(c, "Successful", paginatedResponse(jobs, total, filters.Page, filters.Limit))
}

// Get returns one job.
// GET /api/v1/jobs/:id
func (h *JobHandler) Get(c echo.Context) error {
	job, err := h.series.GetJob(accountID(c), c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusNotFound, "Job not found")
	}
	return successResponse(c, "Successful", job)
}

// Create creates a standalone job.
// POST /api/v1/jobs
func (h *JobHandler) Create(c echo.Context) error {
	var in models.CreateJobInput
	if err := c.Bind(&in); err != nil {
		return errorResponse(c, http.StatusBadRequest, "Invalid request body")
	}

	job, err := h.series.CreateJob(accountID(c), in)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			return errorResponse(c, http.StatusUnauthorized, "Authentication required")
		}
		h.logger.Error("Failed to create job", zap.Error(err))
		return errorResponse(c, http.StatusBadRequest, "Failed to create job: "+err.Error())
	}
	return successResponse(c, "Job created", job)
}

// CreateRecurring creates a recurring parent and its near-term instances.
// POST /api/v1/jobs/recurring
func (h *JobHandler) CreateRecurring(c echo.Context) error {
	var in models.CreateRecurringJobInput
	if err := c.Bind(&in); err != nil {
		return errorResponse(c, http.StatusBadRequest, "Invalid request body")
	}

	parent, err := h.series.CreateRecurringJob(accountID(c), in)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			return errorResponse(c, http.StatusUnauthorized, "Authentication required")
		}
		h.logger.Error("Failed to create recurring job", zap.Error(err))
		return errorResponse(c, http.StatusBadRequest, "Failed to create recurring job: "+err.Error())
	}
	return successResponse(c, "Recurring job created", parent)
}

// Update patches one job, or the whole series when apply_to_series is set.
// PATCH /api/v1/jobs/:id
func (h *JobHandler) Update(c echo.Context) error {
	var req models.UpdateJobRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "Invalid request body")
	}
	if len(req.Patch) == 0 {
		return errorResponse(c, http.StatusBadRequest, "Patch is required")
	}

	rows, err := h.series.UpdateRecurring(accountID(c), c.Param("id"), req.Patch, req.ApplyToSeries)
	if err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			return errorResponse(c, http.StatusNotFound, "Job not found")
		}
		if errors.Is(err, service.ErrEmptyPatch) {
			return errorResponse(c, http.StatusBadRequest, "Patch contains no updatable fields")
		}
		h.logger.Error("Failed to update job", zap.Error(err))
		return errorResponse(c, http.StatusInternalServerError, "Failed to update job")
	}
	if !req.ApplyToSeries && len(rows) == 1 {
		return successResponse(c, "Job updated", rows[0])
	}
	return successResponse(c, "Series updated", rows)
}

// UpdateStatus transitions a job's status.
// PATCH /api/v1/jobs/:id/status
func (h *JobHandler) UpdateStatus(c echo.Context) error {
	var req models.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "Invalid request body")
	}

	switch req.Status {
	case models.JobStatusScheduled, models.JobStatusInProgress, models.JobStatusCompleted, models.JobStatusCancelled:
	default:
		return errorResponse(c, http.StatusBadRequest, "Unknown status: "+req.Status)
	}

	job, err := h.series.UpdateStatus(accountID(c), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			return errorResponse(c, http.StatusNotFound, "Job not found")
		}
		h.logger.Error("Failed to update job status", zap.Error(err))
		return errorResponse(c, http.StatusInternalServerError, "Failed to update job status")
	}
	return successResponse(c, "Status updated", job)
}

// CancelSeries cancels all future instances of a series and stops
// recurrence on the parent.
// POST /api/v1/jobs/:id/cancel-series
func (h *JobHandler) CancelSeries(c echo.Context) error {
	if err := h.series.CancelSeries(accountID(c), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			return errorResponse(c, http.StatusNotFound, "Job not found")
		}
		h.logger.Error("Failed to cancel series", zap.Error(err))
		return errorResponse(c, http.StatusInternalServerError, "Failed to cancel recurring series")
	}
	return successResponse(c, "Series cancelled", nil)
}

// Conflicts returns jobs that would clash with a candidate slot.
// Advisory: the caller may still book.
// GET /api/v1/jobs/conflicts?date=YYYY-MM-DD&time=HH:MM&exclude_id=...
func (h *JobHandler) Conflicts(c echo.Context) error {
	date, err := utils.ParseDate(c.QueryParam("date"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "A valid date is required")
	}

	var timeOfDay *string
	if v := c.QueryParam("time"); v != "" {
		timeOfDay = &v
	}

	conflicts, err := h.series.CheckConflicts(accountID(c), date, timeOfDay, c.QueryParam("exclude_id"))
	if err != nil {
		h.logger.Error("Failed to check conflicts", zap.Error(err))
		return errorResponse(c, http.StatusInternalServerError, "Failed to check conflicts")
	}
	return successResponse(c, "Successful", map[string]interface{}{
		"conflicts":    conflicts,
		"has_conflict": len(conflicts) > 0,
	})
}
