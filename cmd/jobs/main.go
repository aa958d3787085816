package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/devjyoon/nearmarket/internal/apiclient"
	"github.com/devjyoon/nearmarket/internal/config"
	"github.com/devjyoon/nearmarket/internal/db"
	"github.com/devjyoon/nearmarket/internal/logger"
	"github.com/devjyoon/nearmarket/internal/sweep"
	"github.com/devjyoon/nearmarket/internal/telemetry"
	"github.com/google/uuid"
)

// jobs 배치 러너. 외부 스케줄러(cron / k8s CronJob)가 잡 이름을 지정해
// 호출하고, 동시에 같은 잡이 두 개 돌지 않는 것은 스케줄러가 보장한다.
//
// 사용 예:
//
//	jobs -job=sweep-listings      (daily)
//	jobs -job=sweep-all           (daily)
//	jobs -job=refresh-leaderboard (6시간 주기)
func main() {
	// 로거 초기화
	if err := logger.Init(); err != nil {
		panic(err)
	}
	defer logger.Sync()

	log := logger.GetLogger("jobs")

	jobName := flag.String("job", "", "실행할 잡 이름")
	flag.Parse()

	// positional argument도 지원
	if *jobName == "" && flag.NArg() > 0 {
		*jobName = flag.Arg(0)
	}
	if *jobName == "" {
		log.Error("잡 이름을 지정해주세요. 예: jobs -job=sweep-all")
		os.Exit(1)
	}

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	// Telemetry 초기화 (없어도 계속 실행)
	meterShutdown, err := telemetry.InitMeter(ctx, "nearmarket-jobs", cfg.SigNozEndpoint)
	if err != nil {
		log.Warnf("Telemetry 초기화 실패 (계속 실행): %v", err)
		meterShutdown = func(context.Context) error { return nil }
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := meterShutdown(shutdownCtx); err != nil {
			log.Warnf("Telemetry shutdown 실패: %v", err)
		}
	}()

	runID := uuid.NewString()
	log = log.With("run_id", runID, "job", *jobName)
	log.Info("잡 실행 시작")

	start := time.Now()
	if err := run(ctx, cfg, *jobName); err != nil {
		// 스케줄러가 알림을 걸 수 있도록 비정상 종료 코드로 보고한다
		log.Errorf("잡 실패 (%.2fs): %v", time.Since(start).Seconds(), err)
		logger.Sync()
		os.Exit(1)
	}
	log.Infof("잡 완료 (%.2fs)", time.Since(start).Seconds())
}

func run(ctx context.Context, cfg *config.Config, jobName string) error {
	// refresh-leaderboard는 DB 직결 없이 서버 내부 API만 호출한다
	if jobName == "refresh-leaderboard" {
		return refreshLeaderboard(ctx, cfg)
	}

	database, err := db.New(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	sweeper := sweep.New(database, cfg.SweepBatchSize)

	switch jobName {
	case "sweep-listings":
		_, err = sweeper.Sweep(ctx, sweep.ClassListings)
	case "sweep-requests":
		_, err = sweeper.Sweep(ctx, sweep.ClassRequests)
	case "sweep-verifications":
		_, err = sweeper.Sweep(ctx, sweep.ClassVerifications)
	case "sweep-geocache":
		_, err = sweeper.Sweep(ctx, sweep.ClassGeocodeCache)
	case "sweep-media":
		_, err = sweeper.Sweep(ctx, sweep.ClassMedia)
	case "sweep-all":
		err = sweepAll(ctx, sweeper)
	default:
		return fmt.Errorf("알 수 없는 잡 이름: %s", jobName)
	}
	return err
}

// sweepAll 모든 클래스를 정리하고 클래스별 결과를 보고한다
func sweepAll(ctx context.Context, sweeper *sweep.Sweeper) error {
	log := logger.GetLogger("jobs.sweep")
	results := sweeper.SweepAll(ctx)

	var failed int
	for _, r := range results {
		if r.Err != nil {
			// 한 클래스의 실패는 다른 클래스에 영향을 주지 않는다
			failed++
			log.Errorf("sweep %s 실패: %v", r.Class, r.Err)
			continue
		}
		log.Infof("sweep %s: %d건 삭제 (%.2fs)", r.Class, r.Deleted, r.Duration.Seconds())
	}

	if failed > 0 {
		return fmt.Errorf("sweep-all: %d개 클래스 실패", failed)
	}
	return nil
}

func refreshLeaderboard(ctx context.Context, cfg *config.Config) error {
	log := logger.GetLogger("jobs.leaderboard")
	start := time.Now()

	client := apiclient.NewClient(cfg)
	result, err := client.RefreshLeaderboard(ctx)

	telemetry.RecordRefresh(ctx, time.Since(start), err != nil)

	if err != nil {
		return err
	}
	if result == nil {
		log.Warn("Server API 연동이 꺼져 있어 랭킹 갱신을 건너뜁니다")
		return nil
	}

	log.Infof("랭킹 갱신 완료: users=%d, top=%d명", result.UsersProcessed, len(result.Top))
	return nil
}
