package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"sweeply/internal/middleware"
	"sweeply/internal/models"
	"sweeply/internal/repository"
	"sweeply/internal/service"
)

// Response helpers shared by all handlers.
func successResponse(c echo.Context, msg string, obj interface{}) error {
	return c.JSON(http.StatusOK, models.APIResponse{
		Status: true,
		Msg:    msg,
		Obj:    obj,
	})
}

func errorResponse(c echo.Context, code int, msg string) error {
	return c.JSON(code, models.APIResponse{
		Status: false,
		Msg:    msg,
		Obj:    nil,
	})
}

func paginatedResponse(data interface{}, total int64, page, limit int) models.PaginatedResponse {
	return models.PaginatedResponse{
		Data:       data,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		limit = 50
	}
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	if pages == 0 {
		pages = 1
	}
	return pages
}

// accountID pulls the authenticated account from the request context.
func accountID(c echo.Context) string {
	return middleware.AccountID(c)
}

// queryInt reads an integer query parameter with a default.
func queryInt(c echo.Context, name string, defaultVal int) int {
	v := c.QueryParam(name)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return n
}

// Repos bundles the repositories handlers read from directly.
type Repos struct {
	Account     *repository.AccountRepository
	Client      *repository.ClientRepository
	Job         *repository.JobRepository
	Invoice     *repository.InvoiceRepository
	ServiceRate *repository.ServiceRateRepository
}

// Services bundles the domain services behind the handlers.
type Services struct {
	Series    *service.SeriesManager
	Invoices  *service.InvoiceService
	Estimator *service.Estimator
}
