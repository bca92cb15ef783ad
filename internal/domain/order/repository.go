package order

import (
	"context"
	"time"
)

// Repository 订单仓储接口
// 由domain层定义接口，infrastructure层实现；事务通过context传递
type Repository interface {
	// Create 创建订单（不含明细），回填ID
	Create(ctx context.Context, order *Order) error

	// CreateLines 批量写入订单明细，回填ID
	CreateLines(ctx context.Context, lines []Line) error

	// FindByID 根据ID查找订单，不存在返回ErrOrderNotFound
	FindByID(ctx context.Context, id uint) (*Order, error)

	// LockByID 查找并锁定订单行（SELECT ... FOR UPDATE），用于状态变更
	LockByID(ctx context.Context, id uint) (*Order, error)

	// ListByUser 查询用户的全部订单（新订单在前）
	ListByUser(ctx context.Context, userID string) ([]*Order, error)

	// ListLines 查询订单明细
	ListLines(ctx context.Context, orderID uint) ([]Line, error)

	// ListLineItems 查询订单明细展示投影
	ListLineItems(ctx context.Context, orderID uint) ([]LineItemView, error)

	// UpdateStatus 更新订单状态
	UpdateStatus(ctx context.Context, id uint, status Status, updatedAt time.Time) error

	// Delete 删除订单及其全部明细，不存在返回ErrOrderNotFound
	Delete(ctx context.Context, id uint) error
}
