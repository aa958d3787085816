package handlers

import (
	"errors"
	"strconv"

	"github.com/devjyoon/nearmarket/internal/config"
	"github.com/devjyoon/nearmarket/internal/database"
	"github.com/devjyoon/nearmarket/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type LeaderboardHandler struct {
	service *services.LeaderboardService
}

func NewLeaderboardHandler(db *database.DB, cfg *config.Config) *LeaderboardHandler {
	return &LeaderboardHandler{
		service: services.NewLeaderboardService(db, cfg.LeaderboardTopN),
	}
}

func SetupLeaderboardRoutes(router fiber.Router, db *database.DB, cfg *config.Config) {
	h := NewLeaderboardHandler(db, cfg)

	router.Get("/", h.Top)
	router.Get("/users/:id", h.UserRank)
}

// Top godoc
// @Summary Read the cached leaderboard
// @Description 마지막 갱신 시점 기준의 랭킹을 반환한다 (실시간 아님)
// @Tags leaderboard
// @Produce json
// @Param limit query int false "Number of rows (default 10)"
// @Success 200 {array} models.LeaderboardRank
// @Router /leaderboard [get]
func (h *LeaderboardHandler) Top(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "0"))

	ranks, err := h.service.Top(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: err.Error()})
	}
	return c.JSON(ranks)
}

// UserRank godoc
// @Summary Get one user's cached rank
// @Tags leaderboard
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.LeaderboardRank
// @Failure 404 {object} ErrorResponse
// @Router /leaderboard/users/{id} [get]
func (h *LeaderboardHandler) UserRank(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid user ID"})
	}

	rank, err := h.service.UserRank(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "User not ranked"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: err.Error()})
	}
	return c.JSON(rank)
}
