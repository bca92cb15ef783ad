// Package cart 购物车用例
package cart

import (
	"context"

	"github.com/xiebiao/backoffice/internal/domain/cart"
	"github.com/xiebiao/backoffice/internal/domain/catalog"
	"github.com/xiebiao/backoffice/internal/domain/event"
)

// AddToCartUseCase 加入购物车（同一自然键合并数量）
type AddToCartUseCase struct {
	carts    cart.Service
	variants catalog.Repository
}

// NewAddToCartUseCase 创建加入购物车用例
func NewAddToCartUseCase(carts cart.Service, variants catalog.Repository) *AddToCartUseCase {
	return &AddToCartUseCase{carts: carts, variants: variants}
}

// AddToCartRequest 加入购物车请求
type AddToCartRequest struct {
	UserID    string
	VariantID uint
	Quantity  int
	UnitPrice int64
	Color     string
	Size      string
}

// AddToCartResponse 加入结果
type AddToCartResponse struct {
	Line   cart.LineView
	Merged bool // 与已有行合并
	Event  *event.Event
}

// Execute 加入购物车
// 规格必须存在；库存在结算时才校验
func (uc *AddToCartUseCase) Execute(ctx context.Context, req AddToCartRequest) (*AddToCartResponse, error) {
	if _, err := uc.variants.FindVariant(ctx, req.VariantID); err != nil {
		return nil, err
	}

	line, merged, err := uc.carts.AddOrMerge(ctx, cart.AddParams{
		UserID:    req.UserID,
		VariantID: req.VariantID,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
		Color:     req.Color,
		Size:      req.Size,
	})
	if err != nil {
		return nil, err
	}

	action := event.ActionAdd
	if merged {
		action = event.ActionEdit
	}
	return &AddToCartResponse{
		Line:   line.View(),
		Merged: merged,
		Event:  event.Changed(event.EntityCart, action, line.ID),
	}, nil
}

// UpdateCartLineUseCase 修改购物车数量
type UpdateCartLineUseCase struct {
	carts cart.Service
}

// NewUpdateCartLineUseCase 创建修改数量用例
func NewUpdateCartLineUseCase(carts cart.Service) *UpdateCartLineUseCase {
	return &UpdateCartLineUseCase{carts: carts}
}

// UpdateCartLineRequest 修改数量请求
type UpdateCartLineRequest struct {
	UserID   string
	LineID   uint
	Quantity int
}

// UpdateCartLineResponse 修改结果，数量<=0时行被删除，Line为nil
type UpdateCartLineResponse struct {
	Line    *cart.LineView
	Removed bool
	Event   *event.Event
}

// Execute 修改数量
func (uc *UpdateCartLineUseCase) Execute(ctx context.Context, req UpdateCartLineRequest) (*UpdateCartLineResponse, error) {
	line, err := uc.carts.UpdateQuantity(ctx, req.UserID, req.LineID, req.Quantity)
	if err != nil {
		return nil, err
	}

	if line == nil {
		return &UpdateCartLineResponse{
			Removed: true,
			Event:   event.Changed(event.EntityCart, event.ActionDelete, req.LineID),
		}, nil
	}

	view := line.View()
	return &UpdateCartLineResponse{
		Line:  &view,
		Event: event.Changed(event.EntityCart, event.ActionEdit, line.ID),
	}, nil
}

// RemoveFromCartUseCase 按规格删除
type RemoveFromCartUseCase struct {
	carts cart.Service
}

// NewRemoveFromCartUseCase 创建删除用例
func NewRemoveFromCartUseCase(carts cart.Service) *RemoveFromCartUseCase {
	return &RemoveFromCartUseCase{carts: carts}
}

// RemoveFromCartRequest 删除请求
type RemoveFromCartRequest struct {
	UserID    string
	VariantID uint
}

// RemoveFromCartResponse 删除结果，没有删除任何行时Event为nil
type RemoveFromCartResponse struct {
	Removed int64
	Event   *event.Event
}

// Execute 删除用户购物车中该规格的所有行
func (uc *RemoveFromCartUseCase) Execute(ctx context.Context, req RemoveFromCartRequest) (*RemoveFromCartResponse, error) {
	n, err := uc.carts.Remove(ctx, req.UserID, req.VariantID)
	if err != nil {
		return nil, err
	}

	resp := &RemoveFromCartResponse{Removed: n}
	if n > 0 {
		resp.Event = event.Changed(event.EntityCart, event.ActionDelete, req.VariantID)
	}
	return resp, nil
}

// ListCartUseCase 查询购物车
type ListCartUseCase struct {
	carts cart.Service
}

// NewListCartUseCase 创建查询用例
func NewListCartUseCase(carts cart.Service) *ListCartUseCase {
	return &ListCartUseCase{carts: carts}
}

// ListCartRequest 查询请求
type ListCartRequest struct {
	UserID string
}

// ListCartResponse 购物车内容
type ListCartResponse struct {
	Lines    []cart.LineView
	Quantity int   // 件数
	Subtotal int64 // 合计金额
}

// Execute 查询购物车
func (uc *ListCartUseCase) Execute(ctx context.Context, req ListCartRequest) (*ListCartResponse, error) {
	lines, err := uc.carts.ListByUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	resp := &ListCartResponse{Lines: make([]cart.LineView, 0, len(lines))}
	for _, l := range lines {
		v := l.View()
		resp.Lines = append(resp.Lines, v)
		resp.Quantity += v.Quantity
		resp.Subtotal += v.LineTotal
	}
	return resp, nil
}

// TotalQuantityUseCase 全部购物车件数合计
type TotalQuantityUseCase struct {
	carts cart.Service
}

// NewTotalQuantityUseCase 创建件数统计用例
func NewTotalQuantityUseCase(carts cart.Service) *TotalQuantityUseCase {
	return &TotalQuantityUseCase{carts: carts}
}

// TotalQuantityResponse 件数合计
type TotalQuantityResponse struct {
	Total int64
}

// Execute 统计件数
func (uc *TotalQuantityUseCase) Execute(ctx context.Context) (*TotalQuantityResponse, error) {
	total, err := uc.carts.TotalQuantity(ctx)
	if err != nil {
		return nil, err
	}
	return &TotalQuantityResponse{Total: total}, nil
}
