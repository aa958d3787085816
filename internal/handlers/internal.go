package handlers

import (
	"time"

	"github.com/devjyoon/nearmarket/internal/config"
	"github.com/devjyoon/nearmarket/internal/database"
	"github.com/devjyoon/nearmarket/internal/logger"
	"github.com/devjyoon/nearmarket/internal/models"
	"github.com/devjyoon/nearmarket/internal/services"
	"github.com/gofiber/fiber/v2"
)

type InternalHandler struct {
	cfg         *config.Config
	leaderboard *services.LeaderboardService
}

func NewInternalHandler(db *database.DB, cfg *config.Config) *InternalHandler {
	return &InternalHandler{
		cfg:         cfg,
		leaderboard: services.NewLeaderboardService(db, cfg.LeaderboardTopN),
	}
}

func SetupInternalRoutes(router fiber.Router, db *database.DB, cfg *config.Config) {
	h := NewInternalHandler(db, cfg)

	// 내부 API (배치 러너용) - API Key 인증 필요
	router.Post("/leaderboard/refresh", h.RefreshLeaderboard)
}

// RefreshLeaderboardResponse 랭킹 갱신 응답
type RefreshLeaderboardResponse struct {
	Success        bool                     `json:"success"`
	UsersProcessed int                      `json:"users_processed"`
	Top            []models.LeaderboardRank `json:"top,omitempty"`
	RefreshedAt    *time.Time               `json:"refreshed_at,omitempty"`
	Error          string                   `json:"error,omitempty"`
	Timestamp      *time.Time               `json:"timestamp,omitempty"`
}

// RefreshLeaderboard godoc
// @Summary Rebuild the leaderboard rank cache
// @Description 외부 스케줄러(배치 러너)가 주기적으로 호출한다
// @Tags internal
// @Produce json
// @Param X-API-Key header string true "Internal API Key"
// @Success 200 {object} RefreshLeaderboardResponse
// @Failure 500 {object} RefreshLeaderboardResponse
// @Router /internal/leaderboard/refresh [post]
func (h *InternalHandler) RefreshLeaderboard(c *fiber.Ctx) error {
	// API Key 검증
	apiKey := c.Get("X-API-Key")
	if apiKey == "" || apiKey != h.cfg.InternalAPIKey {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or missing API key",
		})
	}

	log := logger.GetLogger("internal.leaderboard")

	report, err := h.leaderboard.Refresh(c.Context())
	if err != nil {
		// 실패해도 이전 랭킹이 유효하므로 조용히 넘기지 않고 보고만 한다
		log.Errorf("leaderboard refresh failed: %v", err)
		now := time.Now().UTC()
		return c.Status(fiber.StatusInternalServerError).JSON(RefreshLeaderboardResponse{
			Success:   false,
			Error:     err.Error(),
			Timestamp: &now,
		})
	}

	log.Infof("leaderboard refreshed: users=%d", report.UsersProcessed)

	return c.JSON(RefreshLeaderboardResponse{
		Success:        true,
		UsersProcessed: report.UsersProcessed,
		Top:            report.Top,
		RefreshedAt:    &report.RefreshedAt,
	})
}
