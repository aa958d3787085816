package sweep

import (
	"context"
	"fmt"
	"time"

	"github.com/devjyoon/nearmarket/internal/db"
	"github.com/devjyoon/nearmarket/internal/logger"
	"github.com/devjyoon/nearmarket/internal/telemetry"
	"golang.org/x/sync/errgroup"
)

// Class 보존 기간 정리 대상 리소스 클래스
type Class string

const (
	ClassListings      Class = "listings"
	ClassRequests      Class = "requests"
	ClassVerifications Class = "verifications"
	ClassGeocodeCache  Class = "geocode_cache"
	ClassMedia         Class = "media"
)

// Classes returns every sweepable class
func Classes() []Class {
	return []Class{
		ClassListings,
		ClassRequests,
		ClassVerifications,
		ClassGeocodeCache,
		ClassMedia,
	}
}

// expiryTables 만료 시각 기반으로 정리하는 클래스별 테이블.
// expires_at이 NULL인 행은 시간 제한이 없는 행이므로 절대 삭제하지 않는다.
var expiryTables = map[Class]string{
	ClassListings:      "listings",
	ClassRequests:      "requests",
	ClassVerifications: "verification_codes",
	ClassGeocodeCache:  "geocode_cache",
}

// Sweeper 만료/고아 레코드 정리기
type Sweeper struct {
	database  *db.DB
	batchSize int
}

// New 새로운 Sweeper 생성
func New(database *db.DB, batchSize int) *Sweeper {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &Sweeper{database: database, batchSize: batchSize}
}

// Sweep deletes the dead rows of one class and returns how many went.
// 큰 테이블에서 락을 오래 잡지 않도록 배치 단위로 지우며, 각 배치는
// 독립적으로 커밋된다. 같은 입력으로 두 번 돌리면 두 번째는 0건을 지운다.
func (s *Sweeper) Sweep(ctx context.Context, class Class) (int64, error) {
	log := logger.GetLogger("sweep." + string(class))
	start := time.Now()

	deleted, err := s.sweep(ctx, class, time.Now())

	telemetry.RecordSweep(ctx, string(class), deleted, time.Since(start), err != nil)

	if err != nil {
		return deleted, fmt.Errorf("sweep %s: %w", class, err)
	}

	if deleted == 0 {
		log.Info("삭제할 만료 레코드가 없습니다.")
	} else {
		log.Infof("삭제 완료: %d건 정리됨 (%.2fs)", deleted, time.Since(start).Seconds())
	}
	return deleted, nil
}

func (s *Sweeper) sweep(ctx context.Context, class Class, now time.Time) (int64, error) {
	if class == ClassMedia {
		return s.sweepOrphanedMedia(ctx)
	}

	table, ok := expiryTables[class]
	if !ok {
		return 0, fmt.Errorf("unknown resource class %q", class)
	}
	return s.sweepExpired(ctx, table, now)
}

// sweepExpired 만료 시각이 지난 행을 배치 단위로 삭제한다
func (s *Sweeper) sweepExpired(ctx context.Context, table string, now time.Time) (int64, error) {
	// table 값은 expiryTables의 상수만 들어온다
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id IN (
			SELECT id FROM %s
			WHERE expires_at IS NOT NULL
			  AND expires_at <= $1
			LIMIT $2
		)
	`, table, table)

	var total int64
	for {
		result, err := s.database.Pool.Exec(ctx, query, now, s.batchSize)
		if err != nil {
			return total, err
		}
		affected := result.RowsAffected()
		total += affected
		if affected < int64(s.batchSize) {
			return total, nil
		}
	}
}

// sweepOrphanedMedia 소유 리스팅이 사라진 미디어 참조를 삭제한다
func (s *Sweeper) sweepOrphanedMedia(ctx context.Context) (int64, error) {
	query := `
		DELETE FROM media_assets
		WHERE id IN (
			SELECT m.id FROM media_assets m
			WHERE m.listing_id IS NOT NULL
			  AND NOT EXISTS (SELECT 1 FROM listings l WHERE l.id = m.listing_id)
			LIMIT $1
		)
	`

	var total int64
	for {
		result, err := s.database.Pool.Exec(ctx, query, s.batchSize)
		if err != nil {
			return total, err
		}
		affected := result.RowsAffected()
		total += affected
		if affected < int64(s.batchSize) {
			return total, nil
		}
	}
}

// Result 클래스 하나의 정리 결과
type Result struct {
	Class    Class         `json:"class"`
	Deleted  int64         `json:"deleted"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// SweepAll runs every class concurrently. 한 클래스의 실패가 다른 클래스를
// 중단시키지 않는다: 에러는 결과에 모아서 돌려준다.
func (s *Sweeper) SweepAll(ctx context.Context) []Result {
	results := make([]Result, len(Classes()))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(3)

	for i, class := range Classes() {
		i, class := i, class
		g.Go(func() error {
			start := time.Now()
			deleted, err := s.Sweep(ctx, class)
			results[i] = Result{
				Class:    class,
				Deleted:  deleted,
				Duration: time.Since(start),
				Err:      err,
			}
			// 실패를 그룹 에러로 올리면 나머지 클래스가 취소되므로 올리지 않는다
			return nil
		})
	}
	_ = g.Wait()

	return results
}
