// Package event 数据变更事件
//
// 用例不直接持有推送通道：每个改变了持久化状态的操作在响应中返回一个Event，
// 由接口层在事务提交后交给Publisher广播。订阅方收到后自行重新拉取数据。
package event

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Kind 事件类型
type Kind string

const (
	// KindDataChanged 通用"数据已变更"信号
	KindDataChanged Kind = "data_changed"
)

// Action 变更动作
type Action string

const (
	ActionAdd    Action = "add"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Entity 变更的实体
type Entity string

const (
	EntityOrder    Entity = "order"
	EntityCart     Entity = "cart"
	EntityDiscount Entity = "discount"
)

// Event 变更事件
type Event struct {
	ID         string    `json:"id"`
	Kind       Kind      `json:"kind"`
	Entity     Entity    `json:"entity"`
	Action     Action    `json:"action"`
	EntityID   uint      `json:"entity_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Changed 创建一个data_changed事件
func Changed(entity Entity, action Action, id uint) *Event {
	return &Event{
		ID:         uuid.NewString(),
		Kind:       KindDataChanged,
		Entity:     entity,
		Action:     action,
		EntityID:   id,
		OccurredAt: time.Now(),
	}
}

// RoutingKey 消息路由键，如 order.add
func (e Event) RoutingKey() string {
	return string(e.Entity) + "." + string(e.Action)
}

// Publisher 事件发布接口（发布订阅通道的抽象）
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// PublisherFunc 函数适配器
type PublisherFunc func(ctx context.Context, e Event) error

// Publish 实现Publisher
func (f PublisherFunc) Publish(ctx context.Context, e Event) error {
	return f(ctx, e)
}
