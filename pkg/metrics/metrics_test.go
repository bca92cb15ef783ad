package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// TestCounter 测试Counter指标
func TestCounter(t *testing.T) {
	before := getCounterValue(t, OrdersCreatedTotal)

	OrdersCreatedTotal.Inc()
	OrdersCreatedTotal.Inc()
	OrdersCreatedTotal.Inc()

	if got := getCounterValue(t, OrdersCreatedTotal) - before; got != 3 {
		t.Errorf("Counter增量错误: expected=3, got=%f", got)
	}
}

// TestCounterVec 测试按标签区分的Counter
func TestCounterVec(t *testing.T) {
	stock := OrdersFailedTotal.WithLabelValues("insufficient_stock")
	other := OrdersFailedTotal.WithLabelValues("other")
	beforeStock := getCounterValue(t, stock)
	beforeOther := getCounterValue(t, other)

	stock.Inc()
	stock.Inc()
	other.Inc()

	if got := getCounterValue(t, stock) - beforeStock; got != 2 {
		t.Errorf("insufficient_stock计数错误: expected=2, got=%f", got)
	}
	if got := getCounterValue(t, other) - beforeOther; got != 1 {
		t.Errorf("other计数错误: expected=1, got=%f", got)
	}
}

// TestGauge 测试Gauge指标
func TestGauge(t *testing.T) {
	OrdersInProgress.Set(0)

	OrdersInProgress.Inc()
	OrdersInProgress.Inc()
	OrdersInProgress.Dec()

	if got := getGaugeValue(t, OrdersInProgress); got != 1 {
		t.Errorf("Gauge值错误: expected=1, got=%f", got)
	}
	OrdersInProgress.Set(0)
}

// TestObserveSince 测试耗时统计
func TestObserveSince(t *testing.T) {
	before := getHistogramCount(t, OrderCreationDuration)

	ObserveSince(OrderCreationDuration, time.Now().Add(-50*time.Millisecond))

	if got := getHistogramCount(t, OrderCreationDuration) - before; got != 1 {
		t.Errorf("Histogram观测次数错误: expected=1, got=%d", got)
	}
}

// TestHandler 测试/metrics输出
func TestHandler(t *testing.T) {
	OrdersCreatedTotal.Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("状态码错误: %d", rec.Code)
	}
	body := rec.Body.String()
	for _, name := range []string{"orders_created_total", "go_goroutines"} {
		if !strings.Contains(body, name) {
			t.Errorf("/metrics缺少指标 %s", name)
		}
	}
}

func getCounterValue(t *testing.T, counter prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("读取Counter值失败: %v", err)
	}
	return metric.Counter.GetValue()
}

func getGaugeValue(t *testing.T, gauge prometheus.Gauge) float64 {
	t.Helper()
	var metric dto.Metric
	if err := gauge.Write(&metric); err != nil {
		t.Fatalf("读取Gauge值失败: %v", err)
	}
	return metric.Gauge.GetValue()
}

func getHistogramCount(t *testing.T, histogram prometheus.Histogram) uint64 {
	t.Helper()
	var metric dto.Metric
	if err := histogram.Write(&metric); err != nil {
		t.Fatalf("读取Histogram值失败: %v", err)
	}
	return metric.Histogram.GetSampleCount()
}
