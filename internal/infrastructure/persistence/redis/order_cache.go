package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/backoffice/internal/domain/order"
	apperrors "github.com/xiebiao/backoffice/pkg/errors"
	"github.com/xiebiao/backoffice/pkg/metrics"
)

// OrderCache 订单详情缓存
// Key: order:detail:{id}，值为订单JSON
// 任何修改订单的操作都要调用Invalidate，缓存只是读优化，读写失败不影响主流程
type OrderCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewOrderCache 创建订单缓存
func NewOrderCache(client redis.Cmdable, ttl time.Duration) *OrderCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &OrderCache{client: client, ttl: ttl}
}

func orderKey(id uint) string {
	return fmt.Sprintf("order:detail:%d", id)
}

// Get 读取缓存，未命中返回(nil, nil)
func (c *OrderCache) Get(ctx context.Context, id uint) (*order.Order, error) {
	data, err := c.client.Get(ctx, orderKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.CacheRequestsTotal.WithLabelValues("order", "miss").Inc()
			return nil, nil
		}
		metrics.CacheRequestsTotal.WithLabelValues("order", "error").Inc()
		return nil, apperrors.WithCode(err, apperrors.ErrCodeRedisError, "读取订单缓存失败")
	}

	var o order.Order
	if err := json.Unmarshal(data, &o); err != nil {
		// 旧格式的数据直接丢弃
		metrics.CacheRequestsTotal.WithLabelValues("order", "miss").Inc()
		_ = c.client.Del(ctx, orderKey(id)).Err()
		return nil, nil
	}
	metrics.CacheRequestsTotal.WithLabelValues("order", "hit").Inc()
	return &o, nil
}

// Set 写入缓存
func (c *OrderCache) Set(ctx context.Context, o *order.Order) error {
	data, err := json.Marshal(o)
	if err != nil {
		return apperrors.Wrap(err, "序列化订单失败")
	}
	if err := c.client.Set(ctx, orderKey(o.ID), data, c.ttl).Err(); err != nil {
		return apperrors.WithCode(err, apperrors.ErrCodeRedisError, "写入订单缓存失败")
	}
	return nil
}

// Invalidate 删除缓存
func (c *OrderCache) Invalidate(ctx context.Context, id uint) error {
	if err := c.client.Del(ctx, orderKey(id)).Err(); err != nil {
		return apperrors.WithCode(err, apperrors.ErrCodeRedisError, "删除订单缓存失败")
	}
	return nil
}
