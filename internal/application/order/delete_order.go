package order

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/xiebiao/backoffice/internal/domain/event"
	"github.com/xiebiao/backoffice/internal/domain/notification"
	"github.com/xiebiao/backoffice/internal/domain/order"
	"github.com/xiebiao/backoffice/pkg/logger"
)

// DeleteOrderUseCase 删除订单
// 明细和下单通知随订单一起删除；库存不回补，需要回补的应先取消再删除
type DeleteOrderUseCase struct {
	orderRepo order.Repository
	notifRepo notification.Repository
	cache     OrderCache
	txManager TxManager
}

// NewDeleteOrderUseCase 创建删除订单用例
func NewDeleteOrderUseCase(
	orderRepo order.Repository,
	notifRepo notification.Repository,
	cache OrderCache,
	txManager TxManager,
) *DeleteOrderUseCase {
	return &DeleteOrderUseCase{
		orderRepo: orderRepo,
		notifRepo: notifRepo,
		cache:     cache,
		txManager: txManager,
	}
}

// DeleteOrderRequest 删除请求
type DeleteOrderRequest struct {
	OrderID uint
}

// DeleteOrderResponse 删除结果
type DeleteOrderResponse struct {
	Event *event.Event
}

// Execute 执行删除，订单不存在返回ErrOrderNotFound
func (uc *DeleteOrderUseCase) Execute(ctx context.Context, req DeleteOrderRequest) (*DeleteOrderResponse, error) {
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if err := uc.orderRepo.Delete(txCtx, req.OrderID); err != nil {
			return err
		}
		// 角标不能指向已删除的订单
		if _, err := uc.notifRepo.DeleteCheckoutByOrder(txCtx, req.OrderID); err != nil {
			return err
		}
		return uc.notifRepo.Create(txCtx, &notification.Notification{
			Subject: fmt.Sprintf("订单 #%d", req.OrderID),
			Kind:    notification.KindDelete,
		})
	})
	if err != nil {
		return nil, err
	}

	invalidate(ctx, uc.cache, req.OrderID)
	logger.Ctx(ctx).Info("订单已删除", zap.Uint("order_id", req.OrderID))

	return &DeleteOrderResponse{
		Event: event.Changed(event.EntityOrder, event.ActionDelete, req.OrderID),
	}, nil
}
