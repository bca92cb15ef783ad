package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

var errBroker = errors.New("broker down")

// fakeClock 可控时钟
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestBreaker(cfg Config) (*CircuitBreaker, *fakeClock) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	cb := New("test", cfg)
	cb.now = clock.Now
	cb.toNewGeneration(clock.Now())
	return cb, clock
}

func fail(context.Context) error    { return errBroker }
func succeed(context.Context) error { return nil }

// TestTripAfterConsecutiveFailures 连续失败达到阈值后打开
func TestTripAfterConsecutiveFailures(t *testing.T) {
	cb, _ := newTestBreaker(Config{
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 3 },
	})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := cb.Execute(ctx, fail); !errors.Is(err, errBroker) {
			t.Fatalf("第%d次调用应返回原始错误, got=%v", i+1, err)
		}
	}

	if cb.State() != StateOpen {
		t.Fatalf("熔断器应为OPEN, got=%s", cb.State())
	}

	called := false
	err := cb.Execute(ctx, func(context.Context) error {
		called = true
		return nil
	})
	if !errors.Is(err, ErrOpenState) {
		t.Fatalf("OPEN状态应快速失败, got=%v", err)
	}
	if called {
		t.Fatal("OPEN状态不应执行fn")
	}
}

// TestHalfOpenRecovery 超时后半开，探测成功则关闭
func TestHalfOpenRecovery(t *testing.T) {
	var transitions []string
	cb, clock := newTestBreaker(Config{
		Timeout:     10 * time.Second,
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 1 },
		OnStateChange: func(_ string, from, to State) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})
	ctx := context.Background()

	_ = cb.Execute(ctx, fail)
	clock.Advance(11 * time.Second)

	if cb.State() != StateHalfOpen {
		t.Fatalf("超时后应为HALF_OPEN, got=%s", cb.State())
	}
	if err := cb.Execute(ctx, succeed); err != nil {
		t.Fatalf("探测请求应放行, got=%v", err)
	}
	if cb.State() != StateClosed {
		t.Fatalf("探测成功后应为CLOSED, got=%s", cb.State())
	}

	want := []string{"CLOSED->OPEN", "OPEN->HALF_OPEN", "HALF_OPEN->CLOSED"}
	if len(transitions) != len(want) {
		t.Fatalf("状态变化记录错误: %v", transitions)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Fatalf("状态变化记录错误: %v", transitions)
		}
	}
}

// TestHalfOpenFailure 半开状态探测失败重新打开
func TestHalfOpenFailure(t *testing.T) {
	cb, clock := newTestBreaker(Config{
		Timeout:     time.Second,
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 1 },
	})
	ctx := context.Background()

	_ = cb.Execute(ctx, fail)
	clock.Advance(2 * time.Second)
	_ = cb.Execute(ctx, fail)

	if cb.State() != StateOpen {
		t.Fatalf("探测失败后应为OPEN, got=%s", cb.State())
	}
}

// TestCanceledContextNotCounted 调用方取消不计入失败
func TestCanceledContextNotCounted(t *testing.T) {
	cb, _ := newTestBreaker(Config{
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 1 },
	})

	err := cb.Execute(context.Background(), func(context.Context) error { return context.Canceled })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("应返回context.Canceled, got=%v", err)
	}
	if cb.State() != StateClosed {
		t.Fatalf("取消不应触发熔断, got=%s", cb.State())
	}
}

// TestIntervalResetsCounts 统计窗口到期后清零
func TestIntervalResetsCounts(t *testing.T) {
	cb, clock := newTestBreaker(Config{
		Interval:    time.Minute,
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 2 },
	})
	ctx := context.Background()

	_ = cb.Execute(ctx, fail)
	clock.Advance(2 * time.Minute)
	_ = cb.Execute(ctx, fail)

	if cb.State() != StateClosed {
		t.Fatalf("跨窗口的失败不应累计, got=%s", cb.State())
	}
	if got := cb.Counts().ConsecutiveFailures; got != 1 {
		t.Fatalf("连续失败数应为1, got=%d", got)
	}
}
