package dto

import (
	"github.com/xiebiao/backoffice/internal/domain/order"
)

// CreateOrderRequest 结算请求
// user_id为空时使用Token中的操作员身份
type CreateOrderRequest struct {
	UserID       string `json:"user_id" binding:"max=64" example:"u-1001"`
	Note         string `json:"note" binding:"max=500" example:"工作日送货"`
	Region       string `json:"region" binding:"required,max=100" example:"浙江省"`
	District     string `json:"district" binding:"required,max=100" example:"西湖区"`
	Ward         string `json:"ward" binding:"max=100" example:"文新街道"`
	Street       string `json:"street" binding:"required,max=255" example:"文三路100号"`
	DiscountCode string `json:"discount_code" binding:"omitempty,max=32" example:"WELCOME8"`
	TotalAmount  int64  `json:"total_amount" binding:"min=0" example:"11800"` // 客户端看到的实付金额(分)，0表示不校验
}

// CreateOrderResponse 结算结果
type CreateOrderResponse struct {
	Order     OrderResponse `json:"order"`
	LineCount int           `json:"line_count" example:"2"`
}

// UpdateStatusRequest 修改订单状态
// 0待确认 1已确认 2已取消
type UpdateStatusRequest struct {
	Status *int `json:"status" binding:"required" example:"1"`
}

// AddressResponse 收货地址
type AddressResponse struct {
	Region   string `json:"region" example:"浙江省"`
	District string `json:"district" example:"西湖区"`
	Ward     string `json:"ward" example:"文新街道"`
	Street   string `json:"street" example:"文三路100号"`
}

// OrderResponse 订单详情
type OrderResponse struct {
	ID           uint            `json:"id" example:"12"`
	UserID       string          `json:"user_id" example:"u-1001"`
	Note         string          `json:"note"`
	Address      AddressResponse `json:"address"`
	DiscountCode string          `json:"discount_code,omitempty" example:"WELCOME8"`
	Discount     int64           `json:"discount" example:"1500"`
	Total        int64           `json:"total" example:"11800"`
	TotalYuan    string          `json:"total_yuan" example:"118.00"`
	Status       int             `json:"status" example:"0"`
	StatusText   string          `json:"status_text" example:"待确认"`
	CreatedAt    string          `json:"created_at" example:"2024-01-15 10:30:00"`
	UpdatedAt    string          `json:"updated_at" example:"2024-01-15 10:30:00"`
}

// ToOrderResponse 领域实体 → 响应
func ToOrderResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:     o.ID,
		UserID: o.UserID,
		Note:   o.Note,
		Address: AddressResponse{
			Region:   o.Address.Region,
			District: o.Address.District,
			Ward:     o.Address.Ward,
			Street:   o.Address.Street,
		},
		DiscountCode: o.DiscountCode,
		Discount:     o.Discount,
		Total:        o.Total,
		TotalYuan:    yuan(o.Total),
		Status:       int(o.Status),
		StatusText:   o.Status.String(),
		CreatedAt:    o.CreatedAt.Format(timeLayout),
		UpdatedAt:    o.UpdatedAt.Format(timeLayout),
	}
}

// ToOrderList 订单列表
func ToOrderList(orders []*order.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToOrderResponse(o))
	}
	return out
}

// OrderLinesResponse 订单明细（含商品名称和规格文字）
type OrderLinesResponse struct {
	OrderID uint                 `json:"order_id" example:"12"`
	Items   []order.LineItemView `json:"items"`
}
