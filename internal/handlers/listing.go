package handlers

import (
	"strconv"

	"github.com/devjyoon/nearmarket/internal/config"
	"github.com/devjyoon/nearmarket/internal/database"
	"github.com/devjyoon/nearmarket/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ListingHandler struct {
	service         *services.ListingService
	defaultRadiusKm float64
}

func NewListingHandler(db *database.DB, cfg *config.Config) *ListingHandler {
	return &ListingHandler{
		service:         services.NewListingService(db, cfg.MaxLimit),
		defaultRadiusKm: cfg.DefaultRadiusKm,
	}
}

func SetupListingRoutes(router fiber.Router, db *database.DB, cfg *config.Config) {
	h := NewListingHandler(db, cfg)

	router.Get("/", h.List)
	router.Get("/:id", h.Get)
}

// List godoc
// @Summary Search listings near a point
// @Tags listings
// @Produce json
// @Param lat query number false "User latitude"
// @Param lng query number false "User longitude"
// @Param radius_km query number false "Search radius in km (default 50, <=0 disables the radius cut)"
// @Param category_id query int false "Filter by category"
// @Param limit query int false "Items per page (default 20)"
// @Param page query int false "Page number"
// @Param offset query int false "Row offset (overrides page)"
// @Success 200 {object} services.ListingSearchResponse
// @Failure 400 {object} ErrorResponse
// @Router /listings [get]
func (h *ListingHandler) List(c *fiber.Ctx) error {
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
// @Summary Get listing by ID
// @Tags listings
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {object} models.Listing
// @Router /listings/{id} [get]
func (h *ListingHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid listing ID"})
	}

	listing, err := h.service.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "Listing not found"})
	}

	return c.JSON(listing)
}

// parseSearchFilter 쿼리 파라미터를 공통 검색 필터로 변환한다.
// lat/lng는 파라미터 유무 자체가 의미를 가지므로 (지오 필터 요청 여부)
// 0 기본값이 아니라 포인터로 전달한다.
func parseSearchFilter(c *fiber.Ctx, defaultRadiusKm float64) (*services.SearchFilter, error) {
	filter := &services.SearchFilter{}

	if v := c.Query("lat"); v != "" {
		lat, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "invalid lat")
		}
		filter.Lat = &lat
	}
	if v := c.Query("lng"); v != "" {
		lng, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "invalid lng")
		}
		filter.Lng = &lng
	}

	radius := defaultRadiusKm
	if v := c.Query("radius_km"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "invalid radius_km")
		}
		radius = r
	}
	filter.RadiusKm = &radius

	categoryID, _ := strconv.Atoi(c.Query("category_id", "0"))
	filter.CategoryID = uint(categoryID)

	filter.Limit, _ = strconv.Atoi(c.Query("limit", "0"))
	filter.Page, _ = strconv.Atoi(c.Query("page", "0"))
	filter.Offset, _ = strconv.Atoi(c.Query("offset", "0"))

	return filter, nil
}
