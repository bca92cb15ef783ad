// Package notification 后台通知用例
// 清空通知不产生变更事件：通知本身就是变更流水
package notification

import (
	"context"

	"github.com/xiebiao/backoffice/internal/domain/notification"
)

// DefaultListLimit 通知列表默认条数
const DefaultListLimit = 50

// NotificationUseCase 通知查询与清空
type NotificationUseCase struct {
	repo notification.Repository
}

// NewNotificationUseCase 创建通知用例
func NewNotificationUseCase(repo notification.Repository) *NotificationUseCase {
	return &NotificationUseCase{repo: repo}
}

// List 最近的通知，limit<=0时使用默认条数
func (uc *NotificationUseCase) List(ctx context.Context, limit int) ([]*notification.Notification, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return uc.repo.List(ctx, limit)
}

// Clear 清空通知，返回删除条数
func (uc *NotificationUseCase) Clear(ctx context.Context) (int64, error) {
	return uc.repo.DeleteAll(ctx)
}

// CheckoutBadge 新订单角标
func (uc *NotificationUseCase) CheckoutBadge(ctx context.Context) (*notification.CheckoutBadge, error) {
	return uc.repo.CheckoutBadge(ctx)
}

// ClearCheckout 已读全部新订单
func (uc *NotificationUseCase) ClearCheckout(ctx context.Context) (int64, error) {
	return uc.repo.DeleteAllCheckout(ctx)
}
