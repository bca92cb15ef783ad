// Package order 订单用例：结算、状态变更、查询、删除
//
// 每个修改了持久化状态的用例都在响应中返回*event.Event，
// 由接口层在事务提交后交给event.Publisher广播；无变化的操作返回nil事件。
package order

import (
	"context"

	"github.com/xiebiao/backoffice/internal/domain/order"
)

const tracerName = "backoffice/application/order"

// TxManager 事务管理（*mysql.TxManager实现）
// fn中的ctx携带事务，仓储方法必须使用它
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// OrderCache 订单详情缓存（*redis.OrderCache实现）
// 未命中时Get返回(nil, nil)
type OrderCache interface {
	Get(ctx context.Context, id uint) (*order.Order, error)
	Set(ctx context.Context, o *order.Order) error
	Invalidate(ctx context.Context, id uint) error
}

// statusLabel 指标标签使用的状态名
func statusLabel(s order.Status) string {
	switch s {
	case order.StatusPending:
		return "pending"
	case order.StatusConfirmed:
		return "confirmed"
	case order.StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}
