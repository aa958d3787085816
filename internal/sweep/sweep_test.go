package sweep

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/devjyoon/nearmarket/internal/db"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepUnknownClass(t *testing.T) {
	s := New(nil, 100)
	_, err := s.sweep(context.Background(), Class("bogus"), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown resource class")
}

func TestClassesCoverEveryTable(t *testing.T) {
	classes := Classes()
	assert.Len(t, classes, 5)

	// 만료 기반 클래스는 모두 테이블 매핑이 있어야 한다
	for _, c := range classes {
		if c == ClassMedia {
			continue
		}
		_, ok := expiryTables[c]
		assert.True(t, ok, "class %s has no table mapping", c)
	}
}

// testDB 로컬 DB가 구성되어 있을 때만 연결한다 (CI에서는 스킵)
func testDB(t *testing.T) *db.DB {
	t.Helper()
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set, skipping live DB test")
	}
	database, err := db.New(os.Getenv("DATABASE_URL"))
	if err != nil {
		t.Skipf("DB connect failed: %v", err)
	}
	t.Cleanup(database.Close)
	return database
}

func TestSweepVerificationsIdempotent(t *testing.T) {
	database := testDB(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 1초 전에 만료된 코드와 아직 유효한 코드를 하나씩 넣는다
	phone := fmt.Sprintf("test-%s", uuid.NewString()[:8])
	_, err := database.Pool.Exec(ctx, `
		INSERT INTO verification_codes (phone, code, is_verified, expires_at, attempts, created_at)
		VALUES ($1, '123456', false, $2, 0, now()),
		       ($1, '654321', false, $3, 0, now())
	`, phone, time.Now().Add(-time.Second), time.Now().Add(time.Hour))
	require.NoError(t, err)

	defer func() {
		_, _ = database.Pool.Exec(context.Background(),
			`DELETE FROM verification_codes WHERE phone = $1`, phone)
	}()

	s := New(database, 100)

	deleted, err := s.Sweep(ctx, ClassVerifications)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, deleted, int64(1))

	// 바로 다시 돌리면 0건이어야 한다 (멱등성)
	deleted, err = s.Sweep(ctx, ClassVerifications)
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)

	// 유효한 코드는 남아 있어야 한다
	var remaining int
	err = database.Pool.QueryRow(ctx,
		`SELECT count(*) FROM verification_codes WHERE phone = $1`, phone).Scan(&remaining)
	require.NoError(t, err)
	assert.Equal(t, 1, remaining)
}
