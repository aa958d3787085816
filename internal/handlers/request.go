package handlers

import (
	"strconv"

	"github.com/devjyoon/nearmarket/internal/config"
	"github.com/devjyoon/nearmarket/internal/database"
	"github.com/devjyoon/nearmarket/internal/services"
	"github.com/gofiber/fiber/v2"
)

type RequestHandler struct {
	service         *services.RequestService
	defaultRadiusKm float64
}

func NewRequestHandler(db *database.DB, cfg *config.Config) *RequestHandler {
	return &RequestHandler{
		service:         services.NewRequestService(db, cfg.MaxLimit),
		defaultRadiusKm: cfg.DefaultRadiusKm,
	}
}

func SetupRequestRoutes(router fiber.Router, db *database.DB, cfg *config.Config) {
	h := NewRequestHandler(db, cfg)

	router.Get("/", h.List)
	router.Get("/:id", h.Get)
}

// List godoc
// @Summary Search open requests near a point
// @Tags requests
// @Produce json
// @Param lat query number false "User latitude"
// @Param lng query number false "User longitude"
// @Param radius_km query number false "Search radius in km (default 50, <=0 disables the radius cut)"
// @Param category_id query int false "Filter by category"
// @Param limit query int false "Items per page (default 20)"
// @Param page query int false "Page number"
// @Param offset query int false "Row offset (overrides page)"
// @Success 200 {object} services.RequestSearchResponse
// @Failure 400 {object} ErrorResponse
// @Router /requests [get]
func (h *RequestHandler) List(c *fiber.Ctx) error {
	filter, err := parseSearchFilter(c, h.defaultRadiusKm)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	response, err := h.service.Search(filter)
	if err != nil {
		return searchError(c, err)
	}

	return c.JSON(response)
}

// Get godoc
// @Summary Get request by ID
// @Tags requests
// @Produce json
// @Param id path int true "Request ID"
// @Success 200 {object} models.Request
// @Router /requests/{id} [get]
func (h *RequestHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid request ID"})
	}

	request, err := h.service.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "Request not found"})
	}

	return c.JSON(request)
}
