package order

import (
	"time"
)

// Status 订单状态
// 取值与历史数据保持一致：0待确认 1已确认(处理中) 2已取消
type Status int

const (
	StatusPending   Status = 0 // 待确认
	StatusConfirmed Status = 1 // 已确认/处理中
	StatusCancelled Status = 2 // 已取消
)

// String 实现Stringer接口(方便日志输出)
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "待确认"
	case StatusConfirmed:
		return "已确认"
	case StatusCancelled:
		return "已取消"
	default:
		return "未知状态"
	}
}

// IsValid 是否为已知状态
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// ParseStatus 校验客户端传入的状态值
func ParseStatus(v int) (Status, error) {
	s := Status(v)
	if !s.IsValid() {
		return 0, ErrInvalidStatus
	}
	return s, nil
}

// ShippingAddress 收货地址（省/区/街道/详细地址）
type ShippingAddress struct {
	Region   string
	District string
	Ward     string
	Street   string
}

// Order 订单实体(聚合根)
// Lines不随订单一起加载，需要通过ListLines/ListLineItems单独查询
type Order struct {
	ID           uint
	UserID       string // 下单用户（外部身份服务的用户标识）
	Note         string
	Address      ShippingAddress
	DiscountCode string // 使用的优惠码，可为空
	Discount     int64  // 优惠金额
	Total        int64  // 实付金额 = 明细合计 - 优惠金额（不小于0）
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewOrder 创建新订单(工厂方法)，初始状态为Pending
func NewOrder(userID, note string, addr ShippingAddress) *Order {
	now := time.Now()
	return &Order{
		UserID:    userID,
		Note:      note,
		Address:   addr,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsCancelled 是否已取消
func (o *Order) IsCancelled() bool {
	return o.Status == StatusCancelled
}

// ApplyTotal 根据明细合计和优惠金额计算实付金额
func (o *Order) ApplyTotal(subtotal, discount int64) {
	o.Discount = discount
	o.Total = subtotal - discount
	if o.Total < 0 {
		o.Total = 0
	}
}

// Line 订单明细
// 下单时从购物车复制数量、单价和颜色/尺码文字，之后不再变化，
// 历史订单不受商品改价或规格变更影响
type Line struct {
	ID        uint
	OrderID   uint
	VariantID uint
	Quantity  int
	UnitPrice int64
	Total     int64 // Quantity × UnitPrice
	Color     string
	Size      string
}

// NewLine 创建订单明细并计算小计
func NewLine(orderID, variantID uint, quantity int, unitPrice int64, color, size string) Line {
	return Line{
		OrderID:   orderID,
		VariantID: variantID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Total:     int64(quantity) * unitPrice,
		Color:     color,
		Size:      size,
	}
}

// Subtotal 明细合计
func Subtotal(lines []Line) int64 {
	var sum int64
	for _, l := range lines {
		sum += l.Total
	}
	return sum
}

// LineItemView 订单明细展示投影（明细 ⋈ 规格 ⋈ 商品 ⋈ 尺码 ⋈ 颜色）
type LineItemView struct {
	LineID      uint   `json:"line_id"`
	VariantID   uint   `json:"variant_id"`
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitPrice   int64  `json:"unit_price"`
	Quantity    int    `json:"quantity"`
	LineTotal   int64  `json:"line_total"`
	Color       string `json:"color"`
	Size        string `json:"size"`
}
