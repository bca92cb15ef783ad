package dto

import "github.com/xiebiao/backoffice/internal/domain/discount"

// CreateDiscountRequest 生成优惠码
type CreateDiscountRequest struct {
	Amount int64 `json:"amount" binding:"required,min=1,max=99999999" example:"1500"` // 优惠金额(分)
}

// DiscountResponse 优惠码
type DiscountResponse struct {
	ID         uint   `json:"id" example:"1"`
	Code       string `json:"code" example:"WELCOME8"`
	Amount     int64  `json:"amount" example:"1500"`
	AmountYuan string `json:"amount_yuan" example:"15.00"`
	CreatedAt  string `json:"created_at" example:"2024-01-15 10:30:00"`
}

// ToDiscountResponse 领域实体 → 响应
func ToDiscountResponse(c *discount.Code) DiscountResponse {
	return DiscountResponse{
		ID:         c.ID,
		Code:       c.Code,
		Amount:     c.Amount,
		AmountYuan: yuan(c.Amount),
		CreatedAt:  c.CreatedAt.Format(timeLayout),
	}
}

// ToDiscountList 优惠码列表
func ToDiscountList(codes []*discount.Code) []DiscountResponse {
	out := make([]DiscountResponse, 0, len(codes))
	for _, c := range codes {
		out = append(out, ToDiscountResponse(c))
	}
	return out
}
