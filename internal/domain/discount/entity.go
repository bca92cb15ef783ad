package discount

import (
	"context"
	"time"

	apperrors "github.com/xiebiao/backoffice/pkg/errors"
)

// Code 优惠码，创建后不可修改，只能删除
type Code struct {
	ID        uint
	Code      string
	Amount    int64 // 优惠金额
	CreatedAt time.Time
}

var (
	ErrDiscountNotFound = apperrors.New(apperrors.ErrCodeDiscountNotFound, "优惠码不存在")
	ErrDuplicateCode    = apperrors.New(apperrors.ErrCodeDuplicateEntry, "优惠码已存在")
	ErrInvalidAmount    = apperrors.New(apperrors.ErrCodeInvalidParams, "优惠金额必须大于0")
	ErrCodeGenerate     = apperrors.New(apperrors.ErrCodeInternal, "优惠码生成失败")
)

// Repository 优惠码仓储
type Repository interface {
	// Create 保存优惠码，code冲突返回ErrDuplicateCode
	Create(ctx context.Context, c *Code) error

	// List 全部优惠码（新的在前）
	List(ctx context.Context) ([]*Code, error)

	// FindByCode 按码查找，不存在返回ErrDiscountNotFound
	FindByCode(ctx context.Context, code string) (*Code, error)

	// Delete 删除，不存在返回ErrDiscountNotFound
	Delete(ctx context.Context, id uint) error
}
