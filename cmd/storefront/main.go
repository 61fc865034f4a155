// cmd/storefront/main.go
package main

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"artisan/internal/pkg/bootstrap"
	"artisan/internal/pkg/httpclient"
	"artisan/internal/pkg/logger"
	"artisan/internal/pkg/mq"
	redispkg "artisan/internal/pkg/redis"
	authapp "artisan/internal/service/auth/application"
	authadapter "artisan/internal/service/auth/infrastructure/adapter"
	authifaces "artisan/internal/service/auth/interfaces"
	authport "artisan/internal/service/auth/port"
	cartapp "artisan/internal/service/cart/application"
	cartadapter "artisan/internal/service/cart/infrastructure/adapter"
	cartifaces "artisan/internal/service/cart/interfaces"
	cartport "artisan/internal/service/cart/port"
	catalogapp "artisan/internal/service/catalog/application"
	"artisan/internal/service/catalog/infrastructure"
	catalogifaces "artisan/internal/service/catalog/interfaces"
	catalogport "artisan/internal/service/catalog/port"
	checkoutapp "artisan/internal/service/checkout/application"
	checkoutadapter "artisan/internal/service/checkout/infrastructure/adapter"
	checkoutifaces "artisan/internal/service/checkout/interfaces"
	checkoutport "artisan/internal/service/checkout/port"
)

const serviceName = "storefront"

func main() {
	bootstrap.Init()
	cfg := bootstrap.GetCurrentConfig()
	logger.Init(cfg.App.ServiceName)

	bootstrap.StartService(bootstrap.AppInfo{
		ServiceName: cfg.App.ServiceName,
		Port:        cfg.App.Port,
		RegisterHandlers: func(appCtx bootstrap.AppCtx) {
			registerHandlers(appCtx, cfg)
		},
	})
}

func registerHandlers(appCtx bootstrap.AppCtx, cfg bootstrap.Config) {
	ctx := context.Background()
	tracer := otel.Tracer(serviceName)

	// 存储后端：能连上 Redis 就用 Redis（购物车跨会话、会话、订单留存），
	// 否则整体退回进程内实现，店面照常工作，只是不跨进程
	var (
		cartPersistence cartport.Persistence
		sessionStore    authport.SessionStore
		orderRepo       checkoutport.OrderRepository
	)
	if cfg.Infra.Redis.Addr != "" {
		rdb, err := redispkg.NewClient(cfg.Infra.Redis.Addr, cfg.Infra.Redis.Password, cfg.Infra.Redis.DB)
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("redis unavailable, falling back to in-memory storage")
		} else {
			cartPersistence = cartadapter.NewRedisPersistence(rdb, cfg.App.CartStorageKey)
			sessionStore = authadapter.NewRedisSessionStore(rdb)
			orderRepo = checkoutadapter.NewRedisOrderRepository(rdb)
		}
	}
	if cartPersistence == nil {
		cartPersistence = cartadapter.NewMemoryPersistence()
		sessionStore = authadapter.NewMemorySessionStore()
		orderRepo = checkoutadapter.NewMemoryOrderRepository()
	}

	// 购物车：恢复上次会话的状态，变更快照推给 WebSocket Hub
	store := cartapp.NewStore(ctx, cartPersistence)
	hub := cartifaces.NewHub()
	go hub.Run(ctx)
	store.Subscribe(hub.Publish)

	authService := authapp.NewService(sessionStore)
	authMiddleware := authifaces.NewMiddleware(authService)

	// 商品目录数据源：MySQL > 远端 REST API > 内置种子数据
	var (
		reader catalogport.Reader
		writer catalogport.Repository
	)
	switch {
	case cfg.Infra.Mysql.DSN != "":
		db, err := gorm.Open(mysql.Open(cfg.Infra.Mysql.DSN), &gorm.Config{})
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("mysql unavailable, falling back to seeded catalog")
		} else {
			repo, err := infrastructure.NewGormProductRepository(db)
			if err != nil {
				logger.Logger.Warn().Err(err).Msg("product table migration failed, falling back to seeded catalog")
			} else {
				reader, writer = repo, repo
			}
		}
	case cfg.Infra.CatalogAPI.BaseURL != "":
		// 远端目录只读，管理面板接口此时不可用
		reader = infrastructure.NewRemoteProductRepository(httpclient.NewClient(tracer), cfg.Infra.CatalogAPI.BaseURL)
	}
	if reader == nil {
		repo := infrastructure.NewSeededProductRepository()
		reader, writer = repo, repo
	}
	catalogService := catalogapp.NewService(reader, writer, tracer)

	// 结账：模拟网关 + 可选的订单事件广播
	gateway := checkoutadapter.NewSimulatedGateway(
		time.Duration(cfg.Checkout.SubmitLatencyMs)*time.Millisecond,
		cfg.Checkout.FailureRate,
	)
	var events checkoutport.EventProducer
	if cfg.App.FeatureFlags.EnableOrderEvents && len(cfg.Infra.Kafka.Brokers) > 0 {
		kafkaWriter := mq.NewWriter(cfg.Infra.Kafka.Brokers, cfg.Infra.Kafka.OrderTopic)
		events = checkoutadapter.NewKafkaEventProducer(kafkaWriter)
	}
	checkoutService := checkoutapp.NewService(store, gateway, orderRepo, events, tracer)

	cartifaces.NewCartHandler(store, hub).RegisterRoutes(appCtx.Mux)
	authifaces.NewAuthHandler(authService).RegisterRoutes(appCtx.Mux)
	catalogifaces.NewProductHandler(catalogService, authMiddleware).RegisterRoutes(appCtx.Mux)
	checkoutifaces.NewCheckoutHandler(checkoutService, authMiddleware).RegisterRoutes(appCtx.Mux)
}
