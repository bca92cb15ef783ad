package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/backoffice/internal/domain/order"
	apperrors "github.com/xiebiao/backoffice/pkg/errors"
)

// orderRepository 订单仓储实现(MySQL)
// 1. 订单头和明细分开写入，明细批量INSERT
// 2. 查询订单不预加载明细，明细通过ListLines/ListLineItems按需查询
// 3. 事务通过context传递
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 创建订单头
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	model := toOrderModel(o)
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建订单失败")
	}
	o.ID = model.ID
	o.CreatedAt = model.CreatedAt
	o.UpdatedAt = model.UpdatedAt
	return nil
}

// CreateLines 批量写入明细
// INSERT INTO order_lines (...) VALUES (...), (...)
func (r *orderRepository) CreateLines(ctx context.Context, lines []order.Line) error {
	if len(lines) == 0 {
		return nil
	}
	models := make([]OrderLineModel, len(lines))
	for i, l := range lines {
		models[i] = toOrderLineModel(l)
	}
	if err := dbFromContext(ctx, r.db).Create(&models).Error; err != nil {
		return apperrors.Wrap(err, "创建订单明细失败")
	}
	for i := range lines {
		lines[i].ID = models[i].ID
	}
	return nil
}

// FindByID 根据ID查找订单
func (r *orderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	var model OrderModel
	if err := dbFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return toOrderEntity(&model), nil
}

// LockByID 查找并锁定订单
// 状态变更与库存回补在同一事务里完成，锁住订单行防止并发重复回补
func (r *orderRepository) LockByID(ctx context.Context, id uint) (*order.Order, error) {
	var model OrderModel
	err := dbFromContext(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "锁定订单失败")
	}
	return toOrderEntity(&model), nil
}

// ListByUser 查询用户的订单
func (r *orderRepository) ListByUser(ctx context.Context, userID string) ([]*order.Order, error) {
	var models []OrderModel
	err := dbFromContext(ctx, r.db).
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询订单列表失败")
	}

	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = toOrderEntity(&models[i])
	}
	return orders, nil
}

// ListLines 查询订单明细
func (r *orderRepository) ListLines(ctx context.Context, orderID uint) ([]order.Line, error) {
	var models []OrderLineModel
	err := dbFromContext(ctx, r.db).
		Where("order_id = ?", orderID).
		Order("id").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询订单明细失败")
	}

	lines := make([]order.Line, len(models))
	for i := range models {
		lines[i] = toOrderLineEntity(&models[i])
	}
	return lines, nil
}

// lineItemColumns 明细展示投影的列
// 规格或商品已被删除时用LEFT JOIN保留明细，商品名为空；颜色/尺码优先使用下单时的快照
const lineItemColumns = "ol.id AS line_id, ol.variant_id, " +
	"COALESCE(v.product_id, 0) AS product_id, COALESCE(p.name, '') AS product_name, " +
	"ol.unit_price, ol.quantity, ol.line_total, " +
	"COALESCE(NULLIF(ol.color, ''), c.name, '') AS color, " +
	"COALESCE(NULLIF(ol.size, ''), s.name, '') AS size"

// ListLineItems 查询明细展示投影
func (r *orderRepository) ListLineItems(ctx context.Context, orderID uint) ([]order.LineItemView, error) {
	var items []order.LineItemView
	err := dbFromContext(ctx, r.db).
		Table("order_lines AS ol").
		Select(lineItemColumns).
		Joins("LEFT JOIN variants v ON v.id = ol.variant_id").
		Joins("LEFT JOIN products p ON p.id = v.product_id").
		Joins("LEFT JOIN colors c ON c.id = v.color_id").
		Joins("LEFT JOIN sizes s ON s.id = v.size_id").
		Where("ol.order_id = ?", orderID).
		Order("ol.id").
		Scan(&items).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询订单明细失败")
	}
	if items == nil {
		items = []order.LineItemView{}
	}
	return items, nil
}

// UpdateStatus 更新订单状态
func (r *orderRepository) UpdateStatus(ctx context.Context, id uint, status order.Status, updatedAt time.Time) error {
	result := dbFromContext(ctx, r.db).
		Model(&OrderModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     int(status),
			"updated_at": updatedAt,
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新订单状态失败")
	}
	if result.RowsAffected == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

// Delete 删除订单及明细
// 两条DELETE需要在调用方开启的事务中执行，库存不回补
func (r *orderRepository) Delete(ctx context.Context, id uint) error {
	db := dbFromContext(ctx, r.db)

	if err := db.Where("order_id = ?", id).Delete(&OrderLineModel{}).Error; err != nil {
		return apperrors.Wrap(err, "删除订单明细失败")
	}

	result := db.Delete(&OrderModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除订单失败")
	}
	if result.RowsAffected == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

// =========================================
// 模型转换
// =========================================

func toOrderModel(o *order.Order) *OrderModel {
	return &OrderModel{
		ID:           o.ID,
		UserID:       o.UserID,
		Note:         o.Note,
		Region:       o.Address.Region,
		District:     o.Address.District,
		Ward:         o.Address.Ward,
		Street:       o.Address.Street,
		DiscountCode: o.DiscountCode,
		Discount:     o.Discount,
		Total:        o.Total,
		Status:       int(o.Status),
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

func toOrderEntity(m *OrderModel) *order.Order {
	return &order.Order{
		ID:     m.ID,
		UserID: m.UserID,
		Note:   m.Note,
		Address: order.ShippingAddress{
			Region:   m.Region,
			District: m.District,
			Ward:     m.Ward,
			Street:   m.Street,
		},
		DiscountCode: m.DiscountCode,
		Discount:     m.Discount,
		Total:        m.Total,
		Status:       order.Status(m.Status),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toOrderLineModel(l order.Line) OrderLineModel {
	return OrderLineModel{
		ID:        l.ID,
		OrderID:   l.OrderID,
		VariantID: l.VariantID,
		Quantity:  l.Quantity,
		UnitPrice: l.UnitPrice,
		LineTotal: l.Total,
		Color:     l.Color,
		Size:      l.Size,
	}
}

func toOrderLineEntity(m *OrderLineModel) order.Line {
	return order.Line{
		ID:        m.ID,
		OrderID:   m.OrderID,
		VariantID: m.VariantID,
		Quantity:  m.Quantity,
		UnitPrice: m.UnitPrice,
		Total:     m.LineTotal,
		Color:     m.Color,
		Size:      m.Size,
	}
}
