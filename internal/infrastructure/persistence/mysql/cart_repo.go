package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/backoffice/internal/domain/cart"
	apperrors "github.com/xiebiao/backoffice/pkg/errors"
)

// cartRepository 购物车仓储实现(MySQL)
// (user_id, variant_id, color, size) 上有唯一索引，合并逻辑依赖它兜底
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepository{db: db}
}

// FindByKey 按自然键查找
func (r *cartRepository) FindByKey(ctx context.Context, key cart.Key) (*cart.Line, error) {
	var model CartLineModel
	err := dbFromContext(ctx, r.db).
		Where("user_id = ? AND variant_id = ? AND color = ? AND size = ?",
			key.UserID, key.VariantID, key.Color, key.Size).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.ErrLineNotFound
		}
		return nil, apperrors.Wrap(err, "查询购物车失败")
	}
	return toCartLineEntity(&model), nil
}

// FindByID 按ID查找
func (r *cartRepository) FindByID(ctx context.Context, id uint) (*cart.Line, error) {
	var model CartLineModel
	if err := dbFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.ErrLineNotFound
		}
		return nil, apperrors.Wrap(err, "查询购物车失败")
	}
	return toCartLineEntity(&model), nil
}

// Create 新增一行
func (r *cartRepository) Create(ctx context.Context, line *cart.Line) error {
	model := toCartLineModel(line)
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return cart.ErrDuplicateLine
		}
		return apperrors.Wrap(err, "加入购物车失败")
	}
	line.ID = model.ID
	line.CreatedAt = model.CreatedAt
	line.UpdatedAt = model.UpdatedAt
	return nil
}

// IncrementQuantity 原子累加数量
// UPDATE cart_lines SET quantity = quantity + ? WHERE id = ?
func (r *cartRepository) IncrementQuantity(ctx context.Context, id uint, delta int) error {
	result := dbFromContext(ctx, r.db).
		Model(&CartLineModel{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新购物车数量失败")
	}
	if result.RowsAffected == 0 {
		return cart.ErrLineNotFound
	}
	return nil
}

// SetQuantity 设置数量
func (r *cartRepository) SetQuantity(ctx context.Context, id uint, quantity int) error {
	result := dbFromContext(ctx, r.db).
		Model(&CartLineModel{}).
		Where("id = ?", id).
		Update("quantity", quantity)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新购物车数量失败")
	}
	if result.RowsAffected == 0 {
		return cart.ErrLineNotFound
	}
	return nil
}

// DeleteByID 删除一行
func (r *cartRepository) DeleteByID(ctx context.Context, id uint) error {
	result := dbFromContext(ctx, r.db).Delete(&CartLineModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除购物车明细失败")
	}
	if result.RowsAffected == 0 {
		return cart.ErrLineNotFound
	}
	return nil
}

// DeleteByUserAndVariant 删除用户某规格的全部行（不区分颜色尺码）
func (r *cartRepository) DeleteByUserAndVariant(ctx context.Context, userID string, variantID uint) (int64, error) {
	result := dbFromContext(ctx, r.db).
		Where("user_id = ? AND variant_id = ?", userID, variantID).
		Delete(&CartLineModel{})
	if result.Error != nil {
		return 0, apperrors.Wrap(result.Error, "删除购物车明细失败")
	}
	return result.RowsAffected, nil
}

// DeleteByUser 清空用户购物车
func (r *cartRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	result := dbFromContext(ctx, r.db).
		Where("user_id = ?", userID).
		Delete(&CartLineModel{})
	if result.Error != nil {
		return 0, apperrors.Wrap(result.Error, "清空购物车失败")
	}
	return result.RowsAffected, nil
}

// LockByUser 锁定用户购物车的全部行
// user_id 上有索引（唯一键的最左列），只锁该用户的行
func (r *cartRepository) LockByUser(ctx context.Context, userID string) ([]*cart.Line, error) {
	var models []CartLineModel
	err := dbFromContext(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		Order("id").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "锁定购物车失败")
	}

	lines := make([]*cart.Line, len(models))
	for i := range models {
		lines[i] = toCartLineEntity(&models[i])
	}
	return lines, nil
}

// ListByUser 查询用户购物车
func (r *cartRepository) ListByUser(ctx context.Context, userID string) ([]*cart.Line, error) {
	var models []CartLineModel
	err := dbFromContext(ctx, r.db).
		Where("user_id = ?", userID).
		Order("id").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询购物车失败")
	}

	lines := make([]*cart.Line, len(models))
	for i := range models {
		lines[i] = toCartLineEntity(&models[i])
	}
	return lines, nil
}

// SumQuantity 全部购物车件数合计
// SELECT COALESCE(SUM(quantity), 0) FROM cart_lines
func (r *cartRepository) SumQuantity(ctx context.Context) (int64, error) {
	var total int64
	err := dbFromContext(ctx, r.db).
		Model(&CartLineModel{}).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计购物车件数失败")
	}
	return total, nil
}

func toCartLineModel(l *cart.Line) *CartLineModel {
	return &CartLineModel{
		ID:        l.ID,
		UserID:    l.UserID,
		VariantID: l.VariantID,
		Color:     l.Color,
		Size:      l.Size,
		Quantity:  l.Quantity,
		UnitPrice: l.UnitPrice,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func toCartLineEntity(m *CartLineModel) *cart.Line {
	return &cart.Line{
		ID:        m.ID,
		UserID:    m.UserID,
		VariantID: m.VariantID,
		Quantity:  m.Quantity,
		UnitPrice: m.UnitPrice,
		Color:     m.Color,
		Size:      m.Size,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
