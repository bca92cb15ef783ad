package order

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/backoffice/internal/domain/catalog"
	"github.com/xiebiao/backoffice/internal/domain/event"
	"github.com/xiebiao/backoffice/internal/domain/notification"
	"github.com/xiebiao/backoffice/internal/domain/order"
	"github.com/xiebiao/backoffice/pkg/logger"
	"github.com/xiebiao/backoffice/pkg/metrics"
	"github.com/xiebiao/backoffice/pkg/tracing"
)

// StatusChanger 修改订单状态的公共流程，UpdateStatus和CancelOrder共用
//
// 库存规则（restock开启时）：
// - 进入已取消：回补全部明细的库存
// - 离开已取消：重新扣减库存，库存不足时整体失败
// 状态不变时什么也不写，也不产生事件
type StatusChanger struct {
	orderRepo   order.Repository
	variantRepo catalog.Repository
	notifRepo   notification.Repository
	cache       OrderCache
	txManager   TxManager
	policy      order.StatusPolicy
	restock     bool
}

// NewStatusChanger 创建状态变更流程
func NewStatusChanger(
	orderRepo order.Repository,
	variantRepo catalog.Repository,
	notifRepo notification.Repository,
	cache OrderCache,
	txManager TxManager,
	policy order.StatusPolicy,
	restock bool,
) *StatusChanger {
	return &StatusChanger{
		orderRepo:   orderRepo,
		variantRepo: variantRepo,
		notifRepo:   notifRepo,
		cache:       cache,
		txManager:   txManager,
		policy:      policy,
		restock:     restock,
	}
}

// change 返回最新订单以及状态是否发生了变化
func (s *StatusChanger) change(ctx context.Context, id uint, target order.Status) (*order.Order, bool, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "ChangeOrderStatus")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("order.id", int64(id)),
		attribute.String("order.target_status", statusLabel(target)),
	)

	var (
		result  *order.Order
		from    order.Status
		changed bool
	)
	err := s.txManager.Transaction(ctx, func(txCtx context.Context) error {
		o, err := s.orderRepo.LockByID(txCtx, id)
		if err != nil {
			return err
		}
		from = o.Status
		wasCancelled := o.IsCancelled()

		if err := s.policy.SetStatus(o, target); err != nil {
			return err
		}
		result = o
		if o.Status == from {
			return nil
		}

		if s.restock {
			if err := s.syncStock(txCtx, o.ID, wasCancelled, o.IsCancelled()); err != nil {
				return err
			}
		}

		if err := s.orderRepo.UpdateStatus(txCtx, o.ID, o.Status, o.UpdatedAt); err != nil {
			return err
		}
		if err := s.notifRepo.Create(txCtx, &notification.Notification{
			Subject: fmt.Sprintf("订单 #%d", o.ID),
			Kind:    notification.KindEdit,
		}); err != nil {
			return err
		}
		changed = true
		return nil
	})
	if err != nil {
		tracing.RecordError(span, err)
		return nil, false, err
	}

	if changed {
		metrics.OrderStatusChangesTotal.WithLabelValues(statusLabel(result.Status)).Inc()
		invalidate(ctx, s.cache, result.ID)
		logger.Ctx(ctx).Info("订单状态变更",
			zap.Uint("order_id", result.ID),
			zap.Stringer("from", from),
			zap.Stringer("to", result.Status),
		)
	}
	return result, changed, nil
}

// syncStock 根据状态变化调整库存
// 进入已取消时回补，离开已取消时重新扣减，其余变化不动库存
func (s *StatusChanger) syncStock(ctx context.Context, orderID uint, wasCancelled, nowCancelled bool) error {
	if wasCancelled == nowCancelled {
		return nil
	}

	lines, err := s.orderRepo.ListLines(ctx, orderID)
	if err != nil {
		return err
	}

	need := make(stockNeed, len(lines))
	for _, l := range lines {
		need.add(l.VariantID, l.Quantity)
	}
	if wasCancelled {
		return need.reserve(ctx, s.variantRepo)
	}

	for _, id := range need.sortedIDs() {
		err := s.variantRepo.AdjustStock(ctx, id, need[id])
		if errors.Is(err, catalog.ErrVariantNotFound) {
			// 规格已下架，没有可回补的库存
			logger.Ctx(ctx).Warn("回补库存时规格不存在",
				zap.Uint("order_id", orderID),
				zap.Uint("variant_id", id),
			)
			continue
		}
		if err != nil {
			return err
		}
		metrics.StockRestoredTotal.Add(float64(need[id]))
	}
	return nil
}

// invalidate 删除详情缓存，失败只记日志（缓存有TTL兜底）
func invalidate(ctx context.Context, cache OrderCache, id uint) {
	if err := cache.Invalidate(ctx, id); err != nil {
		logger.Ctx(ctx).Warn("删除订单缓存失败", zap.Uint("order_id", id), zap.Error(err))
	}
}

// UpdateStatusUseCase 修改订单状态（后台管理员）
type UpdateStatusUseCase struct {
	changer *StatusChanger
}

// NewUpdateStatusUseCase 创建修改状态用例
func NewUpdateStatusUseCase(changer *StatusChanger) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{changer: changer}
}

// UpdateStatusRequest 修改状态请求
type UpdateStatusRequest struct {
	OrderID uint
	Status  int
}

// UpdateStatusResponse 修改状态结果，状态未变化时Event为nil
type UpdateStatusResponse struct {
	Order *order.Order
	Event *event.Event
}

// Execute 执行修改状态
// 未知状态值直接拒绝，不读数据库
func (uc *UpdateStatusUseCase) Execute(ctx context.Context, req UpdateStatusRequest) (*UpdateStatusResponse, error) {
	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	o, changed, err := uc.changer.change(ctx, req.OrderID, target)
	if err != nil {
		return nil, err
	}

	resp := &UpdateStatusResponse{Order: o}
	if changed {
		resp.Event = event.Changed(event.EntityOrder, event.ActionEdit, o.ID)
	}
	return resp, nil
}

// CancelOrderUseCase 取消订单
// 重复取消是幂等的：返回已取消的订单，不产生事件
type CancelOrderUseCase struct {
	changer *StatusChanger
}

// NewCancelOrderUseCase 创建取消订单用例
func NewCancelOrderUseCase(changer *StatusChanger) *CancelOrderUseCase {
	return &CancelOrderUseCase{changer: changer}
}

// CancelOrderRequest 取消订单请求
type CancelOrderRequest struct {
	OrderID uint
}

// CancelOrderResponse 取消结果
type CancelOrderResponse struct {
	Order *order.Order
	Event *event.Event
}

// Execute 执行取消
func (uc *CancelOrderUseCase) Execute(ctx context.Context, req CancelOrderRequest) (*CancelOrderResponse, error) {
	o, changed, err := uc.changer.change(ctx, req.OrderID, order.StatusCancelled)
	if err != nil {
		return nil, err
	}

	resp := &CancelOrderResponse{Order: o}
	if changed {
		resp.Event = event.Changed(event.EntityOrder, event.ActionEdit, o.ID)
	}
	return resp, nil
}
