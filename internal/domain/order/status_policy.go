package order

import "time"

// StatusPolicy 订单状态变更的唯一入口
// 后台管理员需要直接改状态，默认使用宽松策略；需要收紧时替换为StrictPolicy，调用方无需改动
type StatusPolicy interface {
	SetStatus(o *Order, target Status) error
}

// NewStatusPolicy 按名称创建策略：permissive | strict
func NewStatusPolicy(name string) StatusPolicy {
	if name == "strict" {
		return StrictPolicy{}
	}
	return PermissivePolicy{}
}

// PermissivePolicy 任意已知状态之间均可转换
type PermissivePolicy struct{}

// SetStatus 实现StatusPolicy
func (PermissivePolicy) SetStatus(o *Order, target Status) error {
	if !target.IsValid() {
		return ErrInvalidStatus
	}
	apply(o, target)
	return nil
}

// StrictPolicy 只允许 待确认→已确认/已取消、已确认→已取消
// 状态不变视为成功（重复取消是幂等的）
type StrictPolicy struct{}

var strictTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled},
	StatusCancelled: {},
}

// SetStatus 实现StatusPolicy
func (StrictPolicy) SetStatus(o *Order, target Status) error {
	if !target.IsValid() {
		return ErrInvalidStatus
	}
	if o.Status == target {
		return nil
	}
	for _, allowed := range strictTransitions[o.Status] {
		if allowed == target {
			apply(o, target)
			return nil
		}
	}
	return ErrInvalidStatusTransition
}

func apply(o *Order, target Status) {
	if o.Status == target {
		return
	}
	o.Status = target
	o.UpdatedAt = time.Now()
}
