package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"sweeply/internal/models"
	"sweeply/internal/pkg/utils"
)

// ClientHandler handles client CRUD endpoints.
type ClientHandler struct {
	repos  *Repos
	logger *zap.Logger
}

func NewClientHandler(repos *Repos, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{repos: repos, logger: logger}
}

// List returns the account's clients.
// GET /api/v1/clients
func (h *ClientHandler) List(c echo.Context) error {
	limit := queryInt(c, "limit", 50)
	page := queryInt(c, "page", 1)

	clients, total, err := h.repos.Client.FindAll(accountID(c), limit, page, c.QueryParam("q"))
	if err != nil {
		h.logger.Error("Failed to list clients", zap.Error(err))
		return errorResponse(c, http.StatusInternalServerError, "Failed to fetch clients")
	}
	return successResponse(c, "Successful", paginatedResponse(clients, total, page, limit))
}

// Get returns one client.
// GET /api/v1/clients/:id
func (h *ClientHandler) Get(c echo.Context) error {
	client, err := h.repos.Client.FindByID(accountID(c), c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusNotFound, "Client not found")
	}
	return successResponse(c, "Successful", client)
}

// Create creates a client.
// POST /api/v1/clients
func (h *ClientHandler) Create(c echo.Context) error {
	var client models.Client
	if err := c.Bind(&client); err != nil {
		return errorResponse(c, http.StatusBadRequest, "Invalid request body")
	}
	if client.Name == "" {
		return errorResponse(c, http.StatusBadRequest, "Name is required")
	}

	client.ID = utils.GenerateUUID()
	client.AccountID = accountID(c)
	if client.PropertyType == "" {
		client.PropertyType = models.PropertyResidential
	}

	if err := h.repos.Client.Create(&client); err != nil {
		h.logger.Error("Failed to create client", zap.Error(err))
		return errorResponse(c, http.StatusInternalServerError, "Failed to create client")
	}
	return successResponse(c, "Client created", client)
}

// Update patches a client.
// PATCH /api/v1/clients/:id
func (h *ClientHandler) Update(c echo.Context) error {
	var patch map[string]interface{}
	if err := c.Bind(&patch); err != nil {
		return errorResponse(c, http.StatusBadRequest, "Invalid request body")
	}
	// Ownership and identity are immutable.
	delete(patch, "id")
	delete(patch, "account_id")

	id := c.Param("id")
	if _, err := h.repos.Client.FindByID(accountID(c), id); err != nil {
		return errorResponse(c, http.StatusNotFound, "Client not found")
	}
	if err := h.repos.Client.Update(accountID(c), id, patch); err != nil {
		h.logger.Error("Failed to update client", zap.Error(err))
		return errorResponse(c, http.StatusInternalServerError, "Failed to update client")
	}

	client, err := h.repos.Client.FindByID(accountID(c), id)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "Failed to fetch updated client")
	}
	return successResponse(c, "Client updated", client)
}

// Delete removes a client.
// DELETE /api/v1/clients/:id
func (h *ClientHandler) Delete(c echo.Context) error {
	if _, err := h.repos.Client.FindByID(accountID(c), c.Param("id")); err != nil {
		return errorResponse(c, http.StatusNotFound, "Client not found")
	}
	if err := h.repos.Client.Delete(accountID(c), c.Param("id")); err != nil {
		h.logger.Error("Failed to delete client", zap.Error(err))
		return errorResponse(c, http.StatusInternalServerError, "Failed to delete client")
	}
	return successResponse(c, "Client deleted", nil)
}
