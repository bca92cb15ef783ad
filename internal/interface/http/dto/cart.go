package dto

import "github.com/xiebiao/backoffice/internal/domain/cart"

// AddToCartRequest 加入购物车
type AddToCartRequest struct {
	UserID    string `json:"user_id" binding:"max=64" example:"u-1001"`
	VariantID uint   `json:"variant_id" binding:"required,min=1" example:"3"`
	Quantity  int    `json:"quantity" binding:"required,min=1,max=999" example:"2"`
	UnitPrice int64  `json:"unit_price" binding:"min=0" example:"5900"` // 单价(分)
	Color     string `json:"color" binding:"max=50" example:"黑色"`
	Size      string `json:"size" binding:"max=50" example:"XL"`
}

// AddToCartResponse 加入结果
type AddToCartResponse struct {
	Line   cart.LineView `json:"line"`
	Merged bool          `json:"merged" example:"false"` // 是否与已有行合并
}

// UpdateCartLineRequest 修改数量，<=0表示删除该行
type UpdateCartLineRequest struct {
	UserID   string `json:"user_id" binding:"max=64" example:"u-1001"`
	LineID   uint   `json:"line_id" binding:"required,min=1" example:"5"`
	Quantity *int   `json:"quantity" binding:"required" example:"3"`
}

// RemoveFromCartRequest 按规格删除
type RemoveFromCartRequest struct {
	UserID    string `json:"user_id" binding:"max=64" example:"u-1001"`
	VariantID uint   `json:"variant_id" binding:"required,min=1" example:"3"`
}

// UpdateCartLineResponse 修改结果
type UpdateCartLineResponse struct {
	Line    *cart.LineView `json:"line,omitempty"`
	Removed bool           `json:"removed"`
}

// RemoveFromCartResponse 删除结果
type RemoveFromCartResponse struct {
	Removed int64 `json:"removed" example:"1"`
}

// CartResponse 购物车内容
type CartResponse struct {
	UserID       string          `json:"user_id" example:"u-1001"`
	Lines        []cart.LineView `json:"lines"`
	Quantity     int             `json:"quantity" example:"3"`
	Subtotal     int64           `json:"subtotal" example:"17700"`
	SubtotalYuan string          `json:"subtotal_yuan" example:"177.00"`
}

// NewCartResponse 组装购物车响应
func NewCartResponse(userID string, lines []cart.LineView, quantity int, subtotal int64) CartResponse {
	if lines == nil {
		lines = []cart.LineView{}
	}
	return CartResponse{
		UserID:       userID,
		Lines:        lines,
		Quantity:     quantity,
		Subtotal:     subtotal,
		SubtotalYuan: yuan(subtotal),
	}
}

// CartTotalResponse 全部购物车件数
type CartTotalResponse struct {
	Total int64 `json:"total" example:"42"`
}
