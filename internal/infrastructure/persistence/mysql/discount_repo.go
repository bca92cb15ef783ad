package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/backoffice/internal/domain/discount"
	apperrors "github.com/xiebiao/backoffice/pkg/errors"
)

type discountRepository struct {
	db *gorm.DB
}

// NewDiscountRepository 创建优惠码仓储
func NewDiscountRepository(db *gorm.DB) discount.Repository {
	return &discountRepository{db: db}
}

// Create 保存优惠码，唯一索引冲突时返回ErrDuplicateCode由上层重新生成
func (r *discountRepository) Create(ctx context.Context, c *discount.Code) error {
	model := &DiscountCodeModel{Code: c.Code, Amount: c.Amount}
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return discount.ErrDuplicateCode
		}
		return apperrors.Wrap(err, "创建优惠码失败")
	}
	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	return nil
}

func (r *discountRepository) List(ctx context.Context) ([]*discount.Code, error) {
	var models []DiscountCodeModel
	if err := dbFromContext(ctx, r.db).Order("id DESC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询优惠码失败")
	}

	codes := make([]*discount.Code, len(models))
	for i := range models {
		codes[i] = toDiscountEntity(&models[i])
	}
	return codes, nil
}

func (r *discountRepository) FindByCode(ctx context.Context, code string) (*discount.Code, error) {
	var model DiscountCodeModel
	if err := dbFromContext(ctx, r.db).Where("code = ?", code).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, discount.ErrDiscountNotFound
		}
		return nil, apperrors.Wrap(err, "查询优惠码失败")
	}
	return toDiscountEntity(&model), nil
}

func (r *discountRepository) Delete(ctx context.Context, id uint) error {
	result := dbFromContext(ctx, r.db).Delete(&DiscountCodeModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除优惠码失败")
	}
	if result.RowsAffected == 0 {
		return discount.ErrDiscountNotFound
	}
	return nil
}

func toDiscountEntity(m *DiscountCodeModel) *discount.Code {
	return &discount.Code{
		ID:        m.ID,
		Code:      m.Code,
		Amount:    m.Amount,
		CreatedAt: m.CreatedAt,
	}
}
