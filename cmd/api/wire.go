//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 修改后运行 `wire gen ./cmd/api` 重新生成wire_gen.go
// 自定义Provider放在providers.go：本文件带wireinject标签，生成的代码看不到这里定义的函数

package main

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	appcart "github.com/xiebiao/backoffice/internal/application/cart"
	appdiscount "github.com/xiebiao/backoffice/internal/application/discount"
	appnotification "github.com/xiebiao/backoffice/internal/application/notification"
	apporder "github.com/xiebiao/backoffice/internal/application/order"
	"github.com/xiebiao/backoffice/internal/domain/cart"
	"github.com/xiebiao/backoffice/internal/domain/discount"
	"github.com/xiebiao/backoffice/internal/infrastructure/config"
	"github.com/xiebiao/backoffice/internal/infrastructure/messaging"
	"github.com/xiebiao/backoffice/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/backoffice/internal/infrastructure/persistence/redis"
	httpapi "github.com/xiebiao/backoffice/internal/interface/http"
	"github.com/xiebiao/backoffice/internal/interface/http/handler"
	"github.com/xiebiao/backoffice/internal/interface/http/middleware"
)

// infrastructureSet 数据库、Redis、事件广播
var infrastructureSet = wire.NewSet(
	mysql.NewDB,
	redis.NewClient,
	provideOrderCache,
	wire.Bind(new(apporder.OrderCache), new(*redis.OrderCache)),
	mysql.NewTxManager,
	wire.Bind(new(apporder.TxManager), new(*mysql.TxManager)),
	messaging.NewEventPublisher,
)

var repositorySet = wire.NewSet(
	mysql.NewOrderRepository,
	mysql.NewVariantRepository,
	mysql.NewCartRepository,
	mysql.NewDiscountRepository,
	mysql.NewNotificationRepository,
)

var domainSet = wire.NewSet(
	cart.NewService,
	discount.NewService,
)

var applicationSet = wire.NewSet(
	apporder.NewCreateOrderUseCase,
	provideStatusChanger,
	apporder.NewUpdateStatusUseCase,
	apporder.NewCancelOrderUseCase,
	apporder.NewGetOrderUseCase,
	apporder.NewListUserOrdersUseCase,
	apporder.NewListOrderLinesUseCase,
	apporder.NewDeleteOrderUseCase,

	appcart.NewAddToCartUseCase,
	appcart.NewUpdateCartLineUseCase,
	appcart.NewRemoveFromCartUseCase,
	appcart.NewListCartUseCase,
	appcart.NewTotalQuantityUseCase,

	appdiscount.NewCreateDiscountUseCase,
	appdiscount.NewListDiscountsUseCase,
	appdiscount.NewFindDiscountUseCase,
	appdiscount.NewDeleteDiscountUseCase,

	appnotification.NewNotificationUseCase,
)

var interfaceSet = wire.NewSet(
	provideJWTManager,
	middleware.NewAuthMiddleware,
	provideRateLimiter,
	handler.NewBroadcaster,
	handler.NewOrderHandler,
	handler.NewCartHandler,
	handler.NewDiscountHandler,
	handler.NewNotificationHandler,
	wire.Struct(new(httpapi.Handlers), "*"),
	httpapi.NewRouter,
	provideHTTPServer,
)

// InitializeApp 组装整个应用
// cleanup按创建的逆序关闭MQ、Redis、MySQL
func InitializeApp(cfg *config.Config, log *zap.Logger) (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		interfaceSet,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}
