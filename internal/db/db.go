package db

import (
	"context"
	"fmt"
	"time"

	"github.com/devjyoon/nearmarket/internal/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB 배치 러너용 데이터베이스 연결 풀
type DB struct {
	Pool *pgxpool.Pool
}

// New 새로운 DB 연결 생성
func New(databaseURL string) (*DB, error) {
	log := logger.GetLogger("db")

	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// 배치 작업은 동시성이 낮으므로 풀을 작게 유지한다
	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// 연결 테스트
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("Database connection established")

	return &DB{Pool: pool}, nil
}

// Close 데이터베이스 연결 종료
func (db *DB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}
