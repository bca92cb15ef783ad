package order

import (
	apperrors "github.com/xiebiao/backoffice/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = apperrors.New(apperrors.ErrCodeOrderNotFound, "订单不存在")

	// ErrInvalidStatus 未知的订单状态值
	ErrInvalidStatus = apperrors.New(apperrors.ErrCodeInvalidOrderStatus, "订单状态值不合法")

	// ErrInvalidStatusTransition 当前策略不允许的状态转换
	ErrInvalidStatusTransition = apperrors.New(apperrors.ErrCodeInvalidOrderStatus, "订单状态不允许此操作")

	// ErrTotalMismatch 客户端金额与服务端计算不一致
	ErrTotalMismatch = apperrors.New(apperrors.ErrCodeTotalMismatch, "订单金额与购物车不一致，请刷新后重试")

	// ErrMissingUser 未指定下单用户
	ErrMissingUser = apperrors.New(apperrors.ErrCodeInvalidParams, "下单用户不能为空")
)
