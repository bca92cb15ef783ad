package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xiebiao/backoffice/internal/domain/event"
	"github.com/xiebiao/backoffice/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/backoffice/pkg/errors"
	"github.com/xiebiao/backoffice/pkg/logger"
	"github.com/xiebiao/backoffice/pkg/response"
)

// Broadcaster 在用例成功（事务已提交）后广播变更事件
// 广播失败只记日志，不影响本次请求的结果
type Broadcaster struct {
	pub event.Publisher
}

// NewBroadcaster 创建广播器
func NewBroadcaster(pub event.Publisher) *Broadcaster {
	return &Broadcaster{pub: pub}
}

// Send e为nil表示没有状态变化，不广播
func (b *Broadcaster) Send(c *gin.Context, e *event.Event) {
	if e == nil || b.pub == nil {
		return
	}
	ctx := c.Request.Context()
	if err := b.pub.Publish(ctx, *e); err != nil {
		logger.Ctx(ctx).Warn("变更广播失败",
			zap.String("routing_key", e.RoutingKey()),
			zap.Uint("entity_id", e.EntityID),
			zap.Error(err),
		)
	}
}

// pathID 解析路径中的正整数ID，失败时已写入错误响应
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: 无效的"+name)
		return 0, false
	}
	return uint(id), true
}

// userOrOperator 未显式指定用户时使用Token中的身份
func userOrOperator(c *gin.Context, userID string) string {
	if userID != "" {
		return userID
	}
	return middleware.GetUserID(c)
}

func bindError(c *gin.Context, err error) {
	response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: "+err.Error())
}
