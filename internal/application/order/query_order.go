package order

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/backoffice/internal/domain/order"
	"github.com/xiebiao/backoffice/pkg/logger"
)

// GetOrderUseCase 订单详情（先读缓存）
type GetOrderUseCase struct {
	orderRepo order.Repository
	cache     OrderCache
}

// NewGetOrderUseCase 创建订单详情用例
func NewGetOrderUseCase(orderRepo order.Repository, cache OrderCache) *GetOrderUseCase {
	return &GetOrderUseCase{orderRepo: orderRepo, cache: cache}
}

// GetOrderRequest 详情请求
type GetOrderRequest struct {
	OrderID uint
}

// GetOrderResponse 详情结果
type GetOrderResponse struct {
	Order *order.Order
}

// Execute 查询订单详情，不存在返回ErrOrderNotFound
// 缓存故障时直接查库
func (uc *GetOrderUseCase) Execute(ctx context.Context, req GetOrderRequest) (*GetOrderResponse, error) {
	cached, err := uc.cache.Get(ctx, req.OrderID)
	if err != nil {
		logger.Ctx(ctx).Warn("读取订单缓存失败", zap.Uint("order_id", req.OrderID), zap.Error(err))
	}
	if cached != nil {
		return &GetOrderResponse{Order: cached}, nil
	}

	o, err := uc.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if err := uc.cache.Set(ctx, o); err != nil {
		logger.Ctx(ctx).Warn("写入订单缓存失败", zap.Uint("order_id", o.ID), zap.Error(err))
	}
	return &GetOrderResponse{Order: o}, nil
}

// ListUserOrdersUseCase 用户的订单列表
type ListUserOrdersUseCase struct {
	orderRepo order.Repository
}

// NewListUserOrdersUseCase 创建订单列表用例
func NewListUserOrdersUseCase(orderRepo order.Repository) *ListUserOrdersUseCase {
	return &ListUserOrdersUseCase{orderRepo: orderRepo}
}

// ListUserOrdersRequest 列表请求
type ListUserOrdersRequest struct {
	UserID string
}

// ListUserOrdersResponse 列表结果（新订单在前，可能为空）
type ListUserOrdersResponse struct {
	Orders []*order.Order
}

// Execute 查询用户订单
func (uc *ListUserOrdersUseCase) Execute(ctx context.Context, req ListUserOrdersRequest) (*ListUserOrdersResponse, error) {
	orders, err := uc.orderRepo.ListByUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	return &ListUserOrdersResponse{Orders: orders}, nil
}

// ListOrderLinesUseCase 订单明细展示
type ListOrderLinesUseCase struct {
	orderRepo order.Repository
}

// NewListOrderLinesUseCase 创建明细查询用例
func NewListOrderLinesUseCase(orderRepo order.Repository) *ListOrderLinesUseCase {
	return &ListOrderLinesUseCase{orderRepo: orderRepo}
}

// ListOrderLinesRequest 明细请求
type ListOrderLinesRequest struct {
	OrderID uint
}

// ListOrderLinesResponse 明细结果
type ListOrderLinesResponse struct {
	Items []order.LineItemView
}

// Execute 查询明细
// 订单不存在返回ErrOrderNotFound；订单存在但没有明细返回空列表（空购物车结算的订单）
func (uc *ListOrderLinesUseCase) Execute(ctx context.Context, req ListOrderLinesRequest) (*ListOrderLinesResponse, error) {
	if _, err := uc.orderRepo.FindByID(ctx, req.OrderID); err != nil {
		return nil, err
	}
	items, err := uc.orderRepo.ListLineItems(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	return &ListOrderLinesResponse{Items: items}, nil
}
