package models

import "time"

// UserPoints is the source-of-truth balance table.
// 리워드 시스템이 소유하는 테이블로, 이 서비스는 읽기만 한다.
// DB: user_points
type UserPoints struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"column:user_id;not null;uniqueIndex:user_points_user_id_key" json:"user_id"`
	Points    int64     `gorm:"column:points;not null;default:0" json:"points"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (UserPoints) TableName() string {
	return "user_points"
}

// LeaderboardRank is the materialized rank cache, rebuilt wholesale by
// the refresh job. Ranks are a contiguous 1..N sequence over users with
// a positive balance at refresh time.
// DB: leaderboard_ranks
type LeaderboardRank struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"column:user_id;not null;uniqueIndex:leaderboard_ranks_user_id_key" json:"user_id"`
	Points      int64     `gorm:"column:points;not null" json:"points"`
	Rank        int       `gorm:"column:rank;not null;index:idx_lb_rank" json:"rank"`
	RefreshedAt time.Time `gorm:"column:refreshed_at;not null" json:"refreshed_at"`
}

func (LeaderboardRank) TableName() string {
	return "leaderboard_ranks"
}
