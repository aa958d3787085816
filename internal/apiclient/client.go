package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/devjyoon/nearmarket/internal/config"
	"github.com/devjyoon/nearmarket/internal/logger"
	"github.com/devjyoon/nearmarket/internal/models"
)

// Client API 서버의 내부 엔드포인트 클라이언트 (배치 러너 전용)
type Client struct {
	baseURL    string
	apiKey     string
	enabled    bool
	httpClient *http.Client
}

// NewClient 새 클라이언트 생성
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.ServerAPI.BaseURL,
		apiKey:  cfg.ServerAPI.APIKey,
		enabled: cfg.ServerAPI.Enabled,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// RefreshLeaderboardResponse 랭킹 갱신 응답
type RefreshLeaderboardResponse struct {
	Success        bool                     `json:"success"`
	UsersProcessed int                      `json:"users_processed"`
	Top            []models.LeaderboardRank `json:"top,omitempty"`
	RefreshedAt    *time.Time               `json:"refreshed_at,omitempty"`
	Error          string                   `json:"error,omitempty"`
}

// RefreshLeaderboard 서버에 랭킹 재계산을 요청한다.
// 랭킹 계산 로직은 서버 한 곳에만 존재하고, 배치 러너는 트리거만 담당한다.
func (c *Client) RefreshLeaderboard(ctx context.Context) (*RefreshLeaderboardResponse, error) {
	log := logger.GetLogger("apiclient")

	if !c.enabled {
		log.Info("[ServerAPI] Server API 연동이 비활성화되어 있습니다")
		return nil, nil
	}
	if c.baseURL == "" {
		return nil, fmt.Errorf("server API base URL이 설정되지 않았습니다")
	}

	url := fmt.Sprintf("%s/v1/internal/leaderboard/refresh", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return nil, fmt.Errorf("HTTP 요청 생성 실패: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP 요청 실패: %w", err)
	}
	defer resp.Body.Close()

	var result RefreshLeaderboardResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("응답 JSON 파싱 실패: %w", err)
	}

	if resp.StatusCode != http.StatusOK || !result.Success {
		return &result, fmt.Errorf("leaderboard refresh 실패: status=%d error=%s", resp.StatusCode, result.Error)
	}

	log.Infof("[ServerAPI] 랭킹 갱신 완료: users=%d", result.UsersProcessed)
	return &result, nil
}
