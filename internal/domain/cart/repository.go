package cart

import "context"

// Repository 购物车仓储
type Repository interface {
	// FindByKey 按自然键查找，不存在返回ErrLineNotFound
	FindByKey(ctx context.Context, key Key) (*Line, error)

	// FindByID 按ID查找，不存在返回ErrLineNotFound
	FindByID(ctx context.Context, id uint) (*Line, error)

	// Create 新增一行，自然键冲突返回ErrDuplicateLine
	Create(ctx context.Context, line *Line) error

	// IncrementQuantity 原子增加数量（quantity = quantity + delta）
	IncrementQuantity(ctx context.Context, id uint, delta int) error

	// SetQuantity 设置数量
	SetQuantity(ctx context.Context, id uint, quantity int) error

	// DeleteByID 删除一行
	DeleteByID(ctx context.Context, id uint) error

	// DeleteByUserAndVariant 删除用户某规格的全部行，返回删除行数
	DeleteByUserAndVariant(ctx context.Context, userID string, variantID uint) (int64, error)

	// DeleteByUser 清空用户购物车，返回删除行数
	DeleteByUser(ctx context.Context, userID string) (int64, error)

	// LockByUser 查询并锁定用户购物车（SELECT ... FOR UPDATE），结算时使用
	// 同一用户的并发结算在这里排队，后到的事务读到的是已清空的购物车
	LockByUser(ctx context.Context, userID string) ([]*Line, error)

	// ListByUser 查询用户购物车（按加入顺序）
	ListByUser(ctx context.Context, userID string) ([]*Line, error)

	// SumQuantity 全部购物车的商品件数合计
	SumQuantity(ctx context.Context) (int64, error)
}
