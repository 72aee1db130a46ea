package main

import (
	"flag"
	"fmt"
	"os"
	"syscall"

	"github.com/balju-mate/internal/app"
	"github.com/balju-mate/internal/config"
	"github.com/balju-mate/internal/logger"
	"github.com/balju-mate/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset     = "\033[0m"
	ansiBold      = "\033[1m"
	ansiDim       = "\033[2m"
	ansiGreen     = "\033[32m"
	ansiBlue      = "\033[34m"
	ansiCyan      = "\033[36m"
	ansiBrightMag = "\033[95m"
)

func main() {
	printStartupBanner()

	// 설정 로드
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	// 데이터베이스 초기화
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("데이터베이스 초기화 실패: %v", err)
	}

	// 테이블 자동 마이그레이션
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("데이터베이스 마이그레이션 실패: %v", err)
	}

	// 매장 기본 설정 행 초기화
	if err := models.InitDefaultSettings(os.Getenv("BM_STORE_NAME")); err != nil {
		stdLog.Printf("경고: 매장 기본 설정 초기화 실패: %v", err)
	}

	// Gin 모드 설정
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 명령행 인자 처리
	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "기동 모드: all (기본), api, worker")
	flag.Parse()

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		stdLog.Fatalf("서비스 실행 실패: %v", err)
	}
}

func printStartupBanner() {
	fmt.Println(ansiBrightMag + "╔══════════════════════════════════════════════════════════════════════╗" + ansiReset)
	fmt.Println(ansiBrightMag + "║                       🛒 BaljuMate API 시작 중                       ║" + ansiReset)
	fmt.Println(ansiBrightMag + "╚══════════════════════════════════════════════════════════════════════╝" + ansiReset)
	fmt.Println(ansiCyan + "██████╗  █████╗ ██╗          ██╗██╗   ██╗     ███╗   ███╗ █████╗ ████████╗███████╗" + ansiReset)
	fmt.Println(ansiCyan + "██╔══██╗██╔══██╗██║          ██║██║   ██║     ████╗ ████║██╔══██╗╚══██╔══╝██╔════╝" + ansiReset)
	fmt.Println(ansiCyan + "██████╔╝███████║██║          ██║██║   ██║     ██╔████╔██║███████║   ██║   █████╗  " + ansiReset)
	fmt.Println(ansiCyan + "██╔══██╗██╔══██║██║     ██   ██║██║   ██║     ██║╚██╔╝██║██╔══██║   ██║   ██╔══╝  " + ansiReset)
	fmt.Println(ansiCyan + "██████╔╝██║  ██║███████╗╚█████╔╝╚██████╔╝     ██║ ╚═╝ ██║██║  ██║   ██║   ███████╗" + ansiReset)
	fmt.Println(ansiCyan + "╚═════╝ ╚═╝  ╚═╝╚══════╝ ╚════╝  ╚═════╝      ╚═╝     ╚═╝╚═╝  ╚═╝   ╚═╝   ╚══════╝" + ansiReset)
	fmt.Println(ansiGreen + ansiBold + "동네 마트 발주 도우미" + ansiReset)
	fmt.Println(ansiBlue + "• Repo: https://github.com/balju-mate" + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------------------" + ansiReset)
}
