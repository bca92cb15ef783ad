package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/backoffice/internal/domain/notification"
	apperrors "github.com/xiebiao/backoffice/pkg/errors"
)

// notificationRepository 通知仓储实现(MySQL)
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建通知仓储
func NewNotificationRepository(db *gorm.DB) notification.Repository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	model := &NotificationModel{Subject: n.Subject, Kind: string(n.Kind)}
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "写入通知失败")
	}
	n.ID = model.ID
	n.CreatedAt = model.CreatedAt
	return nil
}

func (r *notificationRepository) CreateCheckout(ctx context.Context, c *notification.Checkout) error {
	model := &CheckoutNotificationModel{OrderID: c.OrderID}
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "写入下单通知失败")
	}
	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	return nil
}

// List 最近的通知
func (r *notificationRepository) List(ctx context.Context, limit int) ([]*notification.Notification, error) {
	query := dbFromContext(ctx, r.db).Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var models []NotificationModel
	if err := query.Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询通知失败")
	}

	out := make([]*notification.Notification, len(models))
	for i, m := range models {
		out[i] = &notification.Notification{
			ID:        m.ID,
			Subject:   m.Subject,
			Kind:      notification.Kind(m.Kind),
			CreatedAt: m.CreatedAt,
		}
	}
	return out, nil
}

// DeleteAll 清空通知
// GORM默认拒绝不带条件的DELETE，这里显式开启AllowGlobalUpdate
func (r *notificationRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := dbFromContext(ctx, r.db).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&NotificationModel{})
	if result.Error != nil {
		return 0, apperrors.Wrap(result.Error, "清空通知失败")
	}
	return result.RowsAffected, nil
}

// CheckoutBadge 新订单角标
// SELECT COUNT(*), COALESCE(MAX(order_id), 0) FROM checkout_notifications
func (r *notificationRepository) CheckoutBadge(ctx context.Context) (*notification.CheckoutBadge, error) {
	var row struct {
		Count         int64
		LatestOrderID uint
	}
	err := dbFromContext(ctx, r.db).
		Model(&CheckoutNotificationModel{}).
		Select("COUNT(*) AS count, COALESCE(MAX(order_id), 0) AS latest_order_id").
		Scan(&row).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询下单通知失败")
	}
	return &notification.CheckoutBadge{Count: row.Count, LatestOrderID: row.LatestOrderID}, nil
}

func (r *notificationRepository) DeleteAllCheckout(ctx context.Context) (int64, error) {
	result := dbFromContext(ctx, r.db).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&CheckoutNotificationModel{})
	if result.Error != nil {
		return 0, apperrors.Wrap(result.Error, "清空下单通知失败")
	}
	return result.RowsAffected, nil
}

func (r *notificationRepository) DeleteCheckoutByOrder(ctx context.Context, orderID uint) (int64, error) {
	result := dbFromContext(ctx, r.db).
		Where("order_id = ?", orderID).
		Delete(&CheckoutNotificationModel{})
	if result.Error != nil {
		return 0, apperrors.Wrap(result.Error, "删除下单通知失败")
	}
	return result.RowsAffected, nil
}
