// Package http 组装Gin路由
package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xiebiao/backoffice/internal/infrastructure/config"
	"github.com/xiebiao/backoffice/internal/interface/http/handler"
	"github.com/xiebiao/backoffice/internal/interface/http/middleware"
	"github.com/xiebiao/backoffice/pkg/metrics"
	"github.com/xiebiao/backoffice/pkg/response"
)

// Handlers 路由需要的全部处理器
type Handlers struct {
	Order        *handler.OrderHandler
	Cart         *handler.CartHandler
	Discount     *handler.DiscountHandler
	Notification *handler.NotificationHandler
}

// NewRouter 创建Gin引擎并注册路由
// limiter为nil表示不限流
func NewRouter(
	cfg *config.Config,
	h Handlers,
	auth *middleware.AuthMiddleware,
	limiter *middleware.RateLimiter,
) *gin.Engine {
	switch cfg.Server.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.Logger(),
		middleware.Metrics(),
		middleware.CORS(cfg.CORS),
	)

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong", "status": "healthy"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	if cfg.Server.Mode != gin.ReleaseMode {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")
	v1.Use(auth.RequireAuth())
	if limiter != nil {
		v1.Use(limiter.Middleware())
	}

	orders := v1.Group("/orders")
	{
		orders.POST("", h.Order.CreateOrder)
		orders.GET("/user/:user_id", h.Order.ListUserOrders)
		orders.GET("/:id", h.Order.GetOrder)
		orders.GET("/:id/lines", h.Order.ListOrderLines)
		orders.PUT("/:id/status", h.Order.UpdateStatus)
		orders.POST("/:id/cancel", h.Order.CancelOrder)
		orders.DELETE("/:id", h.Order.DeleteOrder)
	}

	carts := v1.Group("/carts")
	{
		carts.POST("", h.Cart.AddLine)
		carts.POST("/update", h.Cart.UpdateLine)
		carts.POST("/delete", h.Cart.RemoveVariant)
		carts.GET("/total", h.Cart.TotalQuantity)
		carts.GET("/:user_id", h.Cart.ListCart)
	}

	discounts := v1.Group("/discounts")
	{
		discounts.GET("", h.Discount.List)
		discounts.POST("", h.Discount.Create)
		discounts.GET("/code/:code", h.Discount.FindByCode)
		discounts.DELETE("/:id", h.Discount.Delete)
	}

	notifications := v1.Group("/notifications")
	{
		notifications.GET("", h.Notification.List)
		notifications.DELETE("", h.Notification.Clear)
		notifications.GET("/checkout", h.Notification.CheckoutBadge)
		notifications.DELETE("/checkout", h.Notification.ClearCheckout)
	}

	return r
}
