// Package notification 后台通知
//
// 两类记录：
// - Notification：通用变更流水（新增/修改/删除了什么），按ID倒序展示
// - Checkout：每产生一笔新订单记一条，驱动后台"新订单"角标
package notification

import (
	"context"
	"time"
)

// Kind 变更类型
type Kind string

const (
	KindAdd    Kind = "Add"
	KindEdit   Kind = "Edit"
	KindDelete Kind = "Delete"
)

// Notification 通用通知
type Notification struct {
	ID        uint
	Subject   string // 主题，如"订单 #12"
	Kind      Kind
	CreatedAt time.Time
}

// Checkout 新订单通知
type Checkout struct {
	ID        uint
	OrderID   uint
	CreatedAt time.Time
}

// CheckoutBadge 新订单角标
type CheckoutBadge struct {
	Count         int64 `json:"count"`
	LatestOrderID uint  `json:"latest_order_id,omitempty"`
}

// Repository 通知仓储（只追加，可整体清空）
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	CreateCheckout(ctx context.Context, c *Checkout) error

	// List 最近的通知（ID倒序），limit<=0表示不限制
	List(ctx context.Context, limit int) ([]*Notification, error)
	DeleteAll(ctx context.Context) (int64, error)

	// CheckoutBadge 新订单通知数量及最新的订单ID
	CheckoutBadge(ctx context.Context) (*CheckoutBadge, error)
	DeleteAllCheckout(ctx context.Context) (int64, error)

	// DeleteCheckoutByOrder 删除某订单的下单通知（订单被删除时）
	DeleteCheckoutByOrder(ctx context.Context, orderID uint) (int64, error)
}
