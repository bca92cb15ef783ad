package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	apporder "github.com/xiebiao/backoffice/internal/application/order"
	"github.com/xiebiao/backoffice/internal/domain/catalog"
	"github.com/xiebiao/backoffice/internal/domain/notification"
	"github.com/xiebiao/backoffice/internal/domain/order"
	"github.com/xiebiao/backoffice/internal/infrastructure/config"
	"github.com/xiebiao/backoffice/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/backoffice/internal/interface/http/middleware"
	"github.com/xiebiao/backoffice/pkg/jwt"
)

// App 组装完成的应用
type App struct {
	Server  *http.Server
	Limiter *middleware.RateLimiter // 未启用限流时为nil
}

// ========================================
// 自定义Provider
// ========================================
// 构造函数的参数需要从Config中提取时，写一个provideXxx交给wire

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expire)
}

func provideOrderCache(cfg *config.Config, client *goredis.Client) *redis.OrderCache {
	return redis.NewOrderCache(client, cfg.Redis.OrderTTL)
}

// provideStatusChanger 状态策略和取消回补库存由配置决定
func provideStatusChanger(
	cfg *config.Config,
	orderRepo order.Repository,
	variantRepo catalog.Repository,
	notifRepo notification.Repository,
	cache apporder.OrderCache,
	txManager apporder.TxManager,
) *apporder.StatusChanger {
	return apporder.NewStatusChanger(
		orderRepo,
		variantRepo,
		notifRepo,
		cache,
		txManager,
		order.NewStatusPolicy(cfg.Order.StatusPolicy),
		cfg.Order.RestockOnCancel,
	)
}

func provideRateLimiter(cfg *config.Config) *middleware.RateLimiter {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	return middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, 5*time.Minute)
}

func provideHTTPServer(cfg *config.Config, engine *gin.Engine) *http.Server {
	return &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
