package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/backoffice/internal/domain/catalog"
	"github.com/xiebiao/backoffice/internal/domain/event"
	"github.com/xiebiao/backoffice/internal/domain/notification"
	"github.com/xiebiao/backoffice/internal/domain/order"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type apiResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// do 发送请求并解析统一响应
func do(t *testing.T, r http.Handler, method, path string, body interface{}) (int, apiResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

// withOperator 模拟RequireAuth写入的身份
func withOperator(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

// recorder 记录广播的事件
type recorder struct {
	mu     sync.Mutex
	events []event.Event
	err    error
}

func (r *recorder) Publish(_ context.Context, e event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return r.err
}

func (r *recorder) keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.RoutingKey())
	}
	return out
}

// ========== 订单相关的内存实现 ==========

type orderStub struct {
	orders map[uint]*order.Order
	items  map[uint][]order.LineItemView
}

func newOrderStub(orders ...*order.Order) *orderStub {
	s := &orderStub{orders: map[uint]*order.Order{}, items: map[uint][]order.LineItemView{}}
	for _, o := range orders {
		s.orders[o.ID] = o
	}
	return s
}

func (s *orderStub) Create(_ context.Context, o *order.Order) error {
	o.ID = uint(len(s.orders) + 1)
	s.orders[o.ID] = o
	return nil
}

func (s *orderStub) CreateLines(context.Context, []order.Line) error { return nil }

func (s *orderStub) FindByID(_ context.Context, id uint) (*order.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (s *orderStub) LockByID(ctx context.Context, id uint) (*order.Order, error) {
	return s.FindByID(ctx, id)
}

func (s *orderStub) ListByUser(_ context.Context, userID string) ([]*order.Order, error) {
	var out []*order.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *orderStub) ListLines(context.Context, uint) ([]order.Line, error) { return nil, nil }

func (s *orderStub) ListLineItems(_ context.Context, id uint) ([]order.LineItemView, error) {
	items := s.items[id]
	if items == nil {
		items = []order.LineItemView{}
	}
	return items, nil
}

func (s *orderStub) UpdateStatus(_ context.Context, id uint, status order.Status, updatedAt time.Time) error {
	o, ok := s.orders[id]
	if !ok {
		return order.ErrOrderNotFound
	}
	o.Status = status
	o.UpdatedAt = updatedAt
	return nil
}

func (s *orderStub) Delete(_ context.Context, id uint) error {
	if _, ok := s.orders[id]; !ok {
		return order.ErrOrderNotFound
	}
	delete(s.orders, id)
	return nil
}

type nopCache struct{}

func (nopCache) Get(context.Context, uint) (*order.Order, error) { return nil, nil }
func (nopCache) Set(context.Context, *order.Order) error         { return nil }
func (nopCache) Invalidate(context.Context, uint) error          { return nil }

type passTx struct{}

func (passTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type variantStub struct {
	stock map[uint]int
}

func (v *variantStub) FindVariant(_ context.Context, id uint) (*catalog.Variant, error) {
	s, ok := v.stock[id]
	if !ok {
		return nil, catalog.ErrVariantNotFound
	}
	return &catalog.Variant{ID: id, Stock: s}, nil
}

func (v *variantStub) LockVariant(ctx context.Context, id uint) (*catalog.Variant, error) {
	return v.FindVariant(ctx, id)
}

func (v *variantStub) AdjustStock(_ context.Context, id uint, delta int) error {
	s, ok := v.stock[id]
	if !ok {
		return catalog.ErrVariantNotFound
	}
	if s+delta < 0 {
		return catalog.ErrInsufficientStock
	}
	v.stock[id] = s + delta
	return nil
}

type notifStub struct {
	notifs    []*notification.Notification
	checkouts []notification.Checkout
}

func (n *notifStub) Create(_ context.Context, x *notification.Notification) error {
	x.ID = uint(len(n.notifs) + 1)
	n.notifs = append(n.notifs, x)
	return nil
}

func (n *notifStub) CreateCheckout(_ context.Context, c *notification.Checkout) error {
	n.checkouts = append(n.checkouts, *c)
	return nil
}

func (n *notifStub) List(context.Context, int) ([]*notification.Notification, error) {
	return n.notifs, nil
}

func (n *notifStub) DeleteAll(context.Context) (int64, error) {
	c := int64(len(n.notifs))
	n.notifs = nil
	return c, nil
}

func (n *notifStub) CheckoutBadge(context.Context) (*notification.CheckoutBadge, error) {
	b := &notification.CheckoutBadge{Count: int64(len(n.checkouts))}
	if len(n.checkouts) > 0 {
		b.LatestOrderID = n.checkouts[len(n.checkouts)-1].OrderID
	}
	return b, nil
}

func (n *notifStub) DeleteCheckoutByOrder(context.Context, uint) (int64, error) {
	return 0, nil
}

func (n *notifStub) DeleteAllCheckout(context.Context) (int64, error) {
	c := int64(len(n.checkouts))
	n.checkouts = nil
	return c, nil
}
