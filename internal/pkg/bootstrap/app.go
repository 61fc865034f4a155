// internal/pkg/bootstrap/app.go
package bootstrap

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"artisan/internal/pkg/logger"
	"artisan/internal/tracing"
)

type AppCtx struct {
	Mux *http.ServeMux
}

// AppInfo 包含启动服务所需的特定信息。
type AppInfo struct {
	ServiceName      string
	Port             int
	RegisterHandlers func(appCtx AppCtx) // 允许调用方注册自己的 HTTP 路由
}

// StartService 封装通用的启动和优雅关停逻辑。
func StartService(info AppInfo) {
	// 1. Tracer
	tp, err := tracing.InitTracerProvider(info.ServiceName, GetCurrentConfig().Infra.Jaeger.Endpoint)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("failed to initialize tracer provider")
	}

	// 2. 创建 HTTP Server 并注册路由
	mux := http.NewServeMux()
	if info.RegisterHandlers != nil {
		info.RegisterHandlers(AppCtx{Mux: mux})
	}
	server := &http.Server{Addr: ":" + strconv.Itoa(info.Port), Handler: mux}

	// 3. 服务主循环 + 信号监听
	g, gctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		logger.Logger.Info().Str("addr", server.Addr).Msgf("%s listening", info.ServiceName)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
		case <-gctx.Done():
			return nil
		}
		logger.Logger.Info().Msgf("shutting down %s...", info.ServiceName)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// 先停 Tracer，确保缓冲中的 Span 全部发出
		if err := tp.Shutdown(ctx); err != nil {
			logger.Logger.Warn().Err(err).Msg("error shutting down tracer provider")
		}
		return server.Shutdown(ctx)
	})

	if err := g.Wait(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("service terminated abnormally")
	}
	logger.Logger.Info().Msgf("%s gracefully shut down", info.ServiceName)
}
