// Package discount 优惠码用例
package discount

import (
	"context"

	"github.com/xiebiao/backoffice/internal/domain/discount"
	"github.com/xiebiao/backoffice/internal/domain/event"
)

// CreateDiscountUseCase 生成优惠码
type CreateDiscountUseCase struct {
	discounts discount.Service
}

// NewCreateDiscountUseCase 创建生成优惠码用例
func NewCreateDiscountUseCase(discounts discount.Service) *CreateDiscountUseCase {
	return &CreateDiscountUseCase{discounts: discounts}
}

// CreateDiscountRequest 生成请求
type CreateDiscountRequest struct {
	Amount int64
}

// CreateDiscountResponse 生成结果
type CreateDiscountResponse struct {
	Code  *discount.Code
	Event *event.Event
}

// Execute 生成随机码并保存
func (uc *CreateDiscountUseCase) Execute(ctx context.Context, req CreateDiscountRequest) (*CreateDiscountResponse, error) {
	c, err := uc.discounts.Create(ctx, req.Amount)
	if err != nil {
		return nil, err
	}
	return &CreateDiscountResponse{
		Code:  c,
		Event: event.Changed(event.EntityDiscount, event.ActionAdd, c.ID),
	}, nil
}

// ListDiscountsUseCase 优惠码列表
type ListDiscountsUseCase struct {
	discounts discount.Service
}

// NewListDiscountsUseCase 创建列表用例
func NewListDiscountsUseCase(discounts discount.Service) *ListDiscountsUseCase {
	return &ListDiscountsUseCase{discounts: discounts}
}

// Execute 查询全部优惠码
func (uc *ListDiscountsUseCase) Execute(ctx context.Context) ([]*discount.Code, error) {
	return uc.discounts.List(ctx)
}

// FindDiscountUseCase 按码查询（结算前校验优惠码）
type FindDiscountUseCase struct {
	discounts discount.Service
}

// NewFindDiscountUseCase 创建查询用例
func NewFindDiscountUseCase(discounts discount.Service) *FindDiscountUseCase {
	return &FindDiscountUseCase{discounts: discounts}
}

// Execute 查询优惠码，不存在返回ErrDiscountNotFound
func (uc *FindDiscountUseCase) Execute(ctx context.Context, code string) (*discount.Code, error) {
	return uc.discounts.FindByCode(ctx, code)
}

// DeleteDiscountUseCase 删除优惠码
type DeleteDiscountUseCase struct {
	discounts discount.Service
}

// NewDeleteDiscountUseCase 创建删除用例
func NewDeleteDiscountUseCase(discounts discount.Service) *DeleteDiscountUseCase {
	return &DeleteDiscountUseCase{discounts: discounts}
}

// DeleteDiscountRequest 删除请求
type DeleteDiscountRequest struct {
	ID uint
}

// DeleteDiscountResponse 删除结果
type DeleteDiscountResponse struct {
	Event *event.Event
}

// Execute 删除，不存在返回ErrDiscountNotFound
func (uc *DeleteDiscountUseCase) Execute(ctx context.Context, req DeleteDiscountRequest) (*DeleteDiscountResponse, error) {
	if err := uc.discounts.Delete(ctx, req.ID); err != nil {
		return nil, err
	}
	return &DeleteDiscountResponse{
		Event: event.Changed(event.EntityDiscount, event.ActionDelete, req.ID),
	}, nil
}
