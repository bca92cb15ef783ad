package order

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/backoffice/internal/domain/cart"
	"github.com/xiebiao/backoffice/internal/domain/catalog"
	"github.com/xiebiao/backoffice/internal/domain/discount"
	"github.com/xiebiao/backoffice/internal/domain/event"
	"github.com/xiebiao/backoffice/internal/domain/notification"
	"github.com/xiebiao/backoffice/internal/domain/order"
	"github.com/xiebiao/backoffice/pkg/logger"
	"github.com/xiebiao/backoffice/pkg/metrics"
	"github.com/xiebiao/backoffice/pkg/tracing"
)

// CreateOrderUseCase 结算用例：购物车 → 订单
type CreateOrderUseCase struct {
	orderRepo   order.Repository
	variantRepo catalog.Repository
	cartRepo    cart.Repository
	notifRepo   notification.Repository
	discounts   discount.Service
	txManager   TxManager
}

// NewCreateOrderUseCase 创建结算用例
func NewCreateOrderUseCase(
	orderRepo order.Repository,
	variantRepo catalog.Repository,
	cartRepo cart.Repository,
	notifRepo notification.Repository,
	discounts discount.Service,
	txManager TxManager,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		orderRepo:   orderRepo,
		variantRepo: variantRepo,
		cartRepo:    cartRepo,
		notifRepo:   notifRepo,
		discounts:   discounts,
		txManager:   txManager,
	}
}

// CreateOrderRequest 结算请求
type CreateOrderRequest struct {
	UserID       string
	Note         string
	Address      order.ShippingAddress
	DiscountCode string // 可选
	TotalAmount  int64  // 客户端看到的金额，0表示不校验
}

// CreateOrderResponse 结算结果
// 返回的订单不带明细，明细通过ListOrderLines查询
type CreateOrderResponse struct {
	Order     *order.Order
	LineCount int
	Event     *event.Event
}

// Execute 执行结算
//
// 整个流程在一个事务里：
//  1. 锁定购物车，校验优惠码
//  2. 服务端计算金额，与客户端金额比对
//  3. 写订单头和下单通知
//  4. 按规格ID升序加锁并扣减库存（固定加锁顺序，避免两个结算互相等待）
//  5. 批量写明细，清空购物车
//
// 任一步失败整体回滚：不会出现订单已建而购物车未清、或库存已扣而订单不存在的情况
func (uc *CreateOrderUseCase) Execute(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error) {
	start := time.Now()
	metrics.OrdersInProgress.Inc()
	defer metrics.OrdersInProgress.Dec()

	ctx, span := tracing.StartSpan(ctx, tracerName, "CreateOrder")
	defer span.End()

	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return nil, order.ErrMissingUser
	}
	span.SetAttributes(attribute.String("order.user_id", userID))

	var (
		created *order.Order
		lines   []order.Line
	)
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		cartLines, err := uc.cartRepo.LockByUser(txCtx, userID)
		if err != nil {
			return err
		}

		var (
			code     string
			discAmnt int64
		)
		if c := strings.TrimSpace(req.DiscountCode); c != "" {
			d, err := uc.discounts.FindByCode(txCtx, c)
			if err != nil {
				return err
			}
			code, discAmnt = d.Code, d.Amount
		}

		// 明细是购物车的价格快照，金额按明细合计
		lines = make([]order.Line, 0, len(cartLines))
		for _, cl := range cartLines {
			lines = append(lines, order.NewLine(0, cl.VariantID, cl.Quantity, cl.UnitPrice, cl.Color, cl.Size))
		}

		o := order.NewOrder(userID, req.Note, req.Address)
		o.DiscountCode = code
		o.ApplyTotal(order.Subtotal(lines), discAmnt)
		if req.TotalAmount != 0 && req.TotalAmount != o.Total {
			return order.ErrTotalMismatch
		}

		if err := uc.orderRepo.Create(txCtx, o); err != nil {
			return err
		}
		if err := uc.notifRepo.CreateCheckout(txCtx, &notification.Checkout{OrderID: o.ID}); err != nil {
			return err
		}

		if err := uc.reserveStock(txCtx, cartLines); err != nil {
			return err
		}

		for i := range lines {
			lines[i].OrderID = o.ID
		}
		if err := uc.orderRepo.CreateLines(txCtx, lines); err != nil {
			return err
		}

		// 删除行数与读到的不一致说明购物车在结算期间被改动过，整单回滚
		removed, err := uc.cartRepo.DeleteByUser(txCtx, userID)
		if err != nil {
			return err
		}
		if removed != int64(len(cartLines)) {
			return cart.ErrCartChanged
		}

		created = o
		return nil
	})
	metrics.ObserveSince(metrics.OrderCreationDuration, start)

	if err != nil {
		metrics.OrdersFailedTotal.WithLabelValues(failureReason(err)).Inc()
		tracing.RecordError(span, err)
		logger.Ctx(ctx).Warn("结算失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	metrics.OrdersCreatedTotal.Inc()
	metrics.OrderLinesCreatedTotal.Add(float64(len(lines)))
	span.SetAttributes(
		attribute.Int64("order.id", int64(created.ID)),
		attribute.Int("order.lines", len(lines)),
	)
	logger.Ctx(ctx).Info("结算成功",
		zap.Uint("order_id", created.ID),
		zap.String("user_id", userID),
		zap.Int("lines", len(lines)),
		zap.Int64("total", created.Total),
	)

	return &CreateOrderResponse{
		Order:     created,
		LineCount: len(lines),
		Event:     event.Changed(event.EntityOrder, event.ActionAdd, created.ID),
	}, nil
}

// reserveStock 锁定并扣减购物车涉及的全部规格
func (uc *CreateOrderUseCase) reserveStock(ctx context.Context, cartLines []*cart.Line) error {
	need := make(stockNeed, len(cartLines))
	for _, cl := range cartLines {
		need.add(cl.VariantID, cl.Quantity)
	}
	return need.reserve(ctx, uc.variantRepo)
}

// failureReason 结算失败原因（指标标签）
func failureReason(err error) string {
	switch {
	case errors.Is(err, catalog.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, catalog.ErrVariantNotFound):
		return "variant_not_found"
	case errors.Is(err, order.ErrTotalMismatch):
		return "total_mismatch"
	case errors.Is(err, discount.ErrDiscountNotFound):
		return "discount_not_found"
	case errors.Is(err, cart.ErrCartChanged):
		return "cart_changed"
	default:
		return "other"
	}
}
