package services

import (
	"context"
	"fmt"
	"time"

	"github.com/devjyoon/nearmarket/internal/database"
	"github.com/devjyoon/nearmarket/internal/models"
	"gorm.io/gorm"
)

type LeaderboardService struct {
	db   *database.DB
	topN int
}

func NewLeaderboardService(db *database.DB, topN int) *LeaderboardService {
	if topN <= 0 {
		topN = 10
	}
	return &LeaderboardService{db: db, topN: topN}
}

// RefreshReport 랭킹 재계산 결과 요약
type RefreshReport struct {
	UsersProcessed int                      `json:"users_processed"`
	Top            []models.LeaderboardRank `json:"top"`
	RefreshedAt    time.Time                `json:"refreshed_at"`
}

// Refresh rebuilds the leaderboard_ranks table from user_points in one
// atomic transaction. 쓰기마다 랭킹을 갱신하는 대신 스케줄러가 주기적으로
// 전체를 재계산한다. 실패 시 트랜잭션이 롤백되어 이전 랭킹이 그대로 남는다.
//
// 순위 규칙: points 내림차순, 동점은 user_id 오름차순 (먼저 가입한 쪽이 위).
// 랭크는 1..N 연속 순번이며 points가 0 이하인 유저는 제외된다.
func (s *LeaderboardService) Refresh(ctx context.Context) (*RefreshReport, error) {
	refreshedAt := time.Now().UTC()
	var report *RefreshReport

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var balances []models.UserPoints
		err := tx.Where("points > 0").
			Order("points DESC, user_id ASC").
			Find(&balances).Error
		if err != nil {
			return fmt.Errorf("read user_points: %w", err)
		}

		ranks := computeRanks(balances, refreshedAt)

		// 전체 교체: 절반만 갱신된 랭킹이 보이지 않도록 DELETE + INSERT를
		// 한 트랜잭션으로 묶는다
		if err := tx.Exec("DELETE FROM leaderboard_ranks").Error; err != nil {
			return fmt.Errorf("clear leaderboard_ranks: %w", err)
		}
		if len(ranks) > 0 {
			if err := tx.CreateInBatches(ranks, 500).Error; err != nil {
				return fmt.Errorf("insert leaderboard_ranks: %w", err)
			}
		}

		top := ranks
		if len(top) > s.topN {
			top = top[:s.topN]
		}
		report = &RefreshReport{
			UsersProcessed: len(ranks),
			Top:            top,
			RefreshedAt:    refreshedAt,
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("leaderboard refresh failed: %w", err)
	}
	return report, nil
}

// computeRanks assigns contiguous 1..N ranks to balances already ordered
// by (points DESC, user_id ASC).
func computeRanks(balances []models.UserPoints, refreshedAt time.Time) []models.LeaderboardRank {
	ranks := make([]models.LeaderboardRank, 0, len(balances))
	for i, b := range balances {
		ranks = append(ranks, models.LeaderboardRank{
			UserID:      b.UserID,
			Points:      b.Points,
			Rank:        i + 1,
			RefreshedAt: refreshedAt,
		})
	}
	return ranks
}

// Top returns the first limit rows of the cached ranking
func (s *LeaderboardService) Top(limit int) ([]models.LeaderboardRank, error) {
	if limit <= 0 {
		limit = s.topN
	}
	var ranks []models.LeaderboardRank
	err := s.db.Order("rank ASC").Limit(limit).Find(&ranks).Error
	if err != nil {
		return nil, err
	}
	return ranks, nil
}

// UserRank returns one user's cached rank, or gorm.ErrRecordNotFound
// when the user had no positive balance at the last refresh
func (s *LeaderboardService) UserRank(userID uint) (*models.LeaderboardRank, error) {
	var rank models.LeaderboardRank
	err := s.db.Where("user_id = ?", userID).First(&rank).Error
	if err != nil {
		return nil, err
	}
	return &rank, nil
}
