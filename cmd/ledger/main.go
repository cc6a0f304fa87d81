package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/wyfcoding/banking/internal/ledger/application"
	"github.com/wyfcoding/banking/internal/ledger/infrastructure/persistence/memory"
	"github.com/wyfcoding/banking/internal/ledger/infrastructure/security"
	httpserver "github.com/wyfcoding/banking/internal/ledger/interfaces/http"
	"github.com/wyfcoding/banking/pkg/config"
	"github.com/wyfcoding/banking/pkg/logger"
	"github.com/wyfcoding/banking/pkg/metrics"
	"github.com/wyfcoding/banking/pkg/middleware"
)

var configPath = flag.String("config", "configs/config.toml", "config file path")

func main() {
	flag.Parse()

	// 1. 初始化配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// 2. 初始化日志
	if _, err := logger.Init(cfg.Logger); err != nil {
		panic(fmt.Sprintf("failed to init logger: %v", err))
	}

	// 3. 初始化指标
	metricsImpl := metrics.New(cfg.ServiceName)
	if err := metricsImpl.Register(); err != nil {
		slog.Error("failed to register metrics", "error", err)
		os.Exit(1)
	}

	// 4. 初始化基础设施
	accountRepo := memory.NewAccountRepository()
	hasher := security.NewBcryptHasher(cfg.Ledger.BcryptCost)
	sessions := application.NewSessionManager(time.Duration(cfg.Session.TTLMinutes) * time.Minute)

	// 5. 初始化应用服务
	commandSvc := application.NewLedgerCommandService(accountRepo, hasher, sessions)
	querySvc := application.NewLedgerQueryService(accountRepo, sessions)
	ledgerSvc := application.NewLedgerService(commandSvc, querySvc)

	// 6. 初始化接口层
	gin.SetMode(gin.ReleaseMode)
	if cfg.Environment == "dev" {
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.GinLoggingMiddleware())
	r.Use(middleware.GinMetricsMiddleware(metricsImpl))

	handler := httpserver.NewLedgerHandler(ledgerSvc, metricsImpl, cfg.Ledger.MinAccountsForTransfer)
	handler.RegisterRoutes(r)

	// 7. 启动服务
	g, ctx := errgroup.WithContext(context.Background())

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	g.Go(func() error {
		slog.Info("HTTP server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	if cfg.Metrics.Enabled {
		go func() {
			if err := metrics.StartHTTPServer(cfg.Metrics.Port, cfg.Metrics.Path); err != nil {
				slog.Error("metrics server exited", "error", err)
			}
		}()
	}

	// 8. 优雅关闭
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
			slog.Info("shutting down server...")
		case <-ctx.Done():
			slog.Info("context cancelled, shutting down...")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server exited with error", "error", err)
	}
}
