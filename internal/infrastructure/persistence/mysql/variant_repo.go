package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/backoffice/internal/domain/catalog"
	apperrors "github.com/xiebiao/backoffice/pkg/errors"
)

// variantRepository 商品规格仓储实现(MySQL)
type variantRepository struct {
	db *gorm.DB
}

// NewVariantRepository 创建商品规格仓储
func NewVariantRepository(db *gorm.DB) catalog.Repository {
	return &variantRepository{db: db}
}

// FindVariant 查询规格
func (r *variantRepository) FindVariant(ctx context.Context, id uint) (*catalog.Variant, error) {
	var model VariantModel
	if err := dbFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrVariantNotFound
		}
		return nil, apperrors.Wrap(err, "查询商品规格失败")
	}
	return toVariantEntity(&model), nil
}

// LockVariant 查询并加行锁
// SELECT * FROM variants WHERE id = ? FOR UPDATE
// 同一规格的并发下单在这里串行化，锁在事务结束时释放
func (r *variantRepository) LockVariant(ctx context.Context, id uint) (*catalog.Variant, error) {
	var model VariantModel
	err := dbFromContext(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrVariantNotFound
		}
		return nil, apperrors.Wrap(err, "锁定商品规格失败")
	}
	return toVariantEntity(&model), nil
}

// AdjustStock 调整库存
// UPDATE variants SET stock = stock + ? WHERE id = ? AND stock + ? >= 0
// 条件写在WHERE里，即使调用方忘记加锁库存也不会变成负数
func (r *variantRepository) AdjustStock(ctx context.Context, id uint, delta int) error {
	db := dbFromContext(ctx, r.db)
	result := db.Model(&VariantModel{}).
		Where("id = ?", id).
		Where("stock + ? >= 0", delta).
		Update("stock", gorm.Expr("stock + ?", delta))
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新库存失败")
	}

	if result.RowsAffected == 0 {
		// 区分规格不存在和库存不足
		var model VariantModel
		if err := db.Select("id").First(&model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return catalog.ErrVariantNotFound
			}
			return apperrors.Wrap(err, "查询商品规格失败")
		}
		return catalog.ErrInsufficientStock
	}
	return nil
}

func toVariantEntity(m *VariantModel) *catalog.Variant {
	return &catalog.Variant{
		ID:        m.ID,
		ProductID: m.ProductID,
		SizeID:    m.SizeID,
		ColorID:   m.ColorID,
		Stock:     m.Stock,
	}
}
