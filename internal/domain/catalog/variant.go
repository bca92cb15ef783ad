// Package catalog 商品目录（只读协作方）
// 订单引擎只关心商品规格(SKU = 商品 × 尺码 × 颜色)及其库存
package catalog

import (
	"context"

	apperrors "github.com/xiebiao/backoffice/pkg/errors"
)

// Variant 商品规格
type Variant struct {
	ID        uint
	ProductID uint
	SizeID    uint
	ColorID   uint
	Stock     int // 现有库存，不允许为负
}

// HasStock 库存是否足够
func (v *Variant) HasStock(quantity int) bool {
	return v.Stock >= quantity
}

var (
	// ErrVariantNotFound 商品规格不存在（购物车或订单明细引用了已删除的规格）
	ErrVariantNotFound = apperrors.New(apperrors.ErrCodeVariantNotFound, "商品规格不存在")

	// ErrInsufficientStock 库存不足
	ErrInsufficientStock = apperrors.New(apperrors.ErrCodeInsufficientStock, "库存不足")
)

// Repository 商品规格仓储
// 说明：库存变动必须在事务中调用（通过context传递事务）
type Repository interface {
	// FindVariant 查询规格
	FindVariant(ctx context.Context, id uint) (*Variant, error)

	// LockVariant 查询并加行锁（SELECT ... FOR UPDATE）
	LockVariant(ctx context.Context, id uint) (*Variant, error)

	// AdjustStock 调整库存，delta为负表示扣减
	// 扣减后库存为负时返回ErrInsufficientStock，规格不存在返回ErrVariantNotFound
	AdjustStock(ctx context.Context, id uint, delta int) error
}
