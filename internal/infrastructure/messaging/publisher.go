// Package messaging 变更事件的广播实现
//
// 用例返回的event.Event在这里被投递出去：
// - BrokerPublisher：发布到RabbitMQ fanout交换机，熔断器保护
// - LogPublisher：只写日志，MQ未启用时使用
// - Fanout：依次投递给多个Publisher
package messaging

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/backoffice/internal/domain/event"
	"github.com/xiebiao/backoffice/internal/infrastructure/config"
	"github.com/xiebiao/backoffice/pkg/circuitbreaker"
	"github.com/xiebiao/backoffice/pkg/metrics"
	"github.com/xiebiao/backoffice/pkg/mq"
)

// broker 消息队列发布接口（*mq.Publisher实现）
type broker interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// BrokerPublisher 通过消息队列广播事件
type BrokerPublisher struct {
	broker  broker
	breaker *circuitbreaker.CircuitBreaker
	timeout time.Duration
	log     *zap.Logger
}

// NewBrokerPublisher 创建广播发布者
// 连续失败cfg.BreakerFailures次后熔断，cfg.BreakerOpenDelay后半开探测
func NewBrokerPublisher(b broker, cfg config.MQConfig, log *zap.Logger) *BrokerPublisher {
	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = 5
	}
	breaker := circuitbreaker.New("mq-publisher", circuitbreaker.Config{
		Timeout: cfg.BreakerOpenDelay,
		ReadyToTrip: func(c circuitbreaker.Counts) bool {
			return c.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
			log.Warn("熔断器状态变化",
				zap.String("name", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
		},
	})
	metrics.CircuitBreakerState.WithLabelValues(breaker.Name()).Set(float64(circuitbreaker.StateClosed))

	timeout := cfg.PublishTimeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &BrokerPublisher{broker: b, breaker: breaker, timeout: timeout, log: log}
}

// Publish 实现event.Publisher
func (p *BrokerPublisher) Publish(ctx context.Context, e event.Event) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err := p.breaker.Execute(ctx, func(ctx context.Context) error {
		return p.broker.Publish(ctx, e.RoutingKey(), e)
	})

	switch {
	case err == nil:
		metrics.CircuitBreakerRequests.WithLabelValues(p.breaker.Name(), "success").Inc()
		metrics.EventsPublishedTotal.WithLabelValues("broker", "success").Inc()
	case errors.Is(err, circuitbreaker.ErrOpenState):
		metrics.CircuitBreakerRequests.WithLabelValues(p.breaker.Name(), "rejected").Inc()
		metrics.EventsPublishedTotal.WithLabelValues("broker", "rejected").Inc()
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(p.breaker.Name(), "failure").Inc()
		metrics.EventsPublishedTotal.WithLabelValues("broker", "failure").Inc()
	}
	return err
}

// State 熔断器当前状态
func (p *BrokerPublisher) State() circuitbreaker.State {
	return p.breaker.State()
}

// LogPublisher 只记录日志
type LogPublisher struct {
	log *zap.Logger
}

// NewLogPublisher 创建日志发布者
func NewLogPublisher(log *zap.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

// Publish 实现event.Publisher
func (p *LogPublisher) Publish(_ context.Context, e event.Event) error {
	p.log.Info("数据变更",
		zap.String("event_id", e.ID),
		zap.String("kind", string(e.Kind)),
		zap.String("routing_key", e.RoutingKey()),
		zap.Uint("entity_id", e.EntityID),
	)
	metrics.EventsPublishedTotal.WithLabelValues("log", "success").Inc()
	return nil
}

// Fanout 依次投递给全部Publisher，一个失败不影响其他的
type Fanout []event.Publisher

// Publish 实现event.Publisher，返回合并后的错误
func (f Fanout) Publish(ctx context.Context, e event.Event) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewEventPublisher 按配置组装事件发布者
// MQ未启用或连接失败时退化为只写日志，广播是尽力而为的，不阻止服务启动
func NewEventPublisher(cfg *config.Config, log *zap.Logger) (event.Publisher, func()) {
	logPub := NewLogPublisher(log)
	if !cfg.MQ.Enabled {
		return logPub, func() {}
	}

	pub, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType)
	if err != nil {
		log.Warn("连接RabbitMQ失败，事件只写日志", zap.Error(err))
		return logPub, func() {}
	}
	log.Info("RabbitMQ连接成功", zap.String("exchange", pub.Exchange()))

	cleanup := func() {
		if err := pub.Close(); err != nil {
			log.Warn("关闭RabbitMQ连接失败", zap.Error(err))
		}
	}
	return Fanout{logPub, NewBrokerPublisher(pub, cfg.MQ, log)}, cleanup
}
