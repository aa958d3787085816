package services

import (
	"testing"
	"time"

	"github.com/devjyoon/nearmarket/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeRanksContiguous(t *testing.T) {
	refreshedAt := time.Now().UTC()

	// points DESC, user_id ASC로 읽힌 잔액 (0점 유저는 쿼리 단계에서 제외됨)
	balances := []models.UserPoints{
		{UserID: 7, Points: 500},
		{UserID: 2, Points: 300},
		{UserID: 9, Points: 300},
		{UserID: 4, Points: 100},
	}

	ranks := computeRanks(balances, refreshedAt)
	require.Len(t, ranks, 4)

	// 1..N 연속 순번, 빈 자리도 중복도 없어야 한다
	for i, r := range ranks {
		assert.Equal(t, i+1, r.Rank)
		assert.Equal(t, refreshedAt, r.RefreshedAt)
	}

	// 동점(300)은 user_id 오름차순: 2가 9보다 위
	assert.Equal(t, uint(7), ranks[0].UserID)
	assert.Equal(t, uint(2), ranks[1].UserID)
	assert.Equal(t, uint(9), ranks[2].UserID)
	assert.Equal(t, uint(4), ranks[3].UserID)

	assert.Equal(t, int64(500), ranks[0].Points)
	assert.Equal(t, int64(100), ranks[3].Points)
}

func TestComputeRanksEmpty(t *testing.T) {
	ranks := computeRanks(nil, time.Now())
	assert.Empty(t, ranks)
}
