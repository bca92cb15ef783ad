package order

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/xiebiao/backoffice/internal/domain/cart"
	"github.com/xiebiao/backoffice/internal/domain/catalog"
	"github.com/xiebiao/backoffice/internal/domain/discount"
	"github.com/xiebiao/backoffice/internal/domain/notification"
	"github.com/xiebiao/backoffice/internal/domain/order"
)

// memStore 内存数据库，事务回滚通过快照实现
type memStore struct {
	mu sync.Mutex

	nextID    uint
	orders    map[uint]order.Order
	lines     map[uint]order.Line
	variants  map[uint]catalog.Variant
	carts     map[uint]cart.Line
	checkouts []notification.Checkout
	notifs    []notification.Notification
	discounts map[string]discount.Code

	locked []uint // LockVariant调用顺序
}

func newMemStore() *memStore {
	return &memStore{
		orders:    map[uint]order.Order{},
		lines:     map[uint]order.Line{},
		variants:  map[uint]catalog.Variant{},
		carts:     map[uint]cart.Line{},
		discounts: map[string]discount.Code{},
	}
}

func (s *memStore) id() uint {
	s.nextID++
	return s.nextID
}

func (s *memStore) snapshot() *memStore {
	cp := newMemStore()
	cp.nextID = s.nextID
	for k, v := range s.orders {
		cp.orders[k] = v
	}
	for k, v := range s.lines {
		cp.lines[k] = v
	}
	for k, v := range s.variants {
		cp.variants[k] = v
	}
	for k, v := range s.carts {
		cp.carts[k] = v
	}
	for k, v := range s.discounts {
		cp.discounts[k] = v
	}
	cp.checkouts = append(cp.checkouts, s.checkouts...)
	cp.notifs = append(cp.notifs, s.notifs...)
	return cp
}

func (s *memStore) restore(snap *memStore) {
	s.nextID = snap.nextID
	s.orders = snap.orders
	s.lines = snap.lines
	s.variants = snap.variants
	s.carts = snap.carts
	s.discounts = snap.discounts
	s.checkouts = snap.checkouts
	s.notifs = snap.notifs
}

func (s *memStore) addVariant(id uint, stock int) {
	s.variants[id] = catalog.Variant{ID: id, ProductID: 1, Stock: stock}
}

func (s *memStore) addCartLine(userID string, variantID uint, qty int, price int64, color, size string) {
	id := s.id()
	s.carts[id] = cart.Line{ID: id, UserID: userID, VariantID: variantID, Quantity: qty, UnitPrice: price, Color: color, Size: size}
}

func (s *memStore) stock(id uint) int {
	return s.variants[id].Stock
}

func (s *memStore) linesOf(orderID uint) []order.Line {
	var out []order.Line
	for _, l := range s.lines {
		if l.OrderID == orderID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *memStore) cartOf(userID string) []cart.Line {
	var out []cart.Line
	for _, l := range s.carts {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out
}

// ===== TxManager =====

type fakeTx struct {
	store   *memStore
	commits int
}

func (t *fakeTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.store.mu.Lock()
	snap := t.store.snapshot()
	t.store.mu.Unlock()

	if err := fn(ctx); err != nil {
		t.store.mu.Lock()
		t.store.restore(snap)
		t.store.mu.Unlock()
		return err
	}
	t.commits++
	return nil
}

// ===== order.Repository =====

type memOrders struct{ s *memStore }

func (r memOrders) Create(_ context.Context, o *order.Order) error {
	o.ID = r.s.id()
	r.s.orders[o.ID] = *o
	return nil
}

func (r memOrders) CreateLines(_ context.Context, lines []order.Line) error {
	for i := range lines {
		lines[i].ID = r.s.id()
		r.s.lines[lines[i].ID] = lines[i]
	}
	return nil
}

func (r memOrders) FindByID(_ context.Context, id uint) (*order.Order, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	return &o, nil
}

func (r memOrders) LockByID(ctx context.Context, id uint) (*order.Order, error) {
	return r.FindByID(ctx, id)
}

func (r memOrders) ListByUser(_ context.Context, userID string) ([]*order.Order, error) {
	out := []*order.Order{}
	for _, o := range r.s.orders {
		if o.UserID == userID {
			o := o
			out = append(out, &o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r memOrders) ListLines(_ context.Context, orderID uint) ([]order.Line, error) {
	return r.s.linesOf(orderID), nil
}

func (r memOrders) ListLineItems(_ context.Context, orderID uint) ([]order.LineItemView, error) {
	items := []order.LineItemView{}
	for _, l := range r.s.linesOf(orderID) {
		items = append(items, order.LineItemView{
			LineID:    l.ID,
			VariantID: l.VariantID,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			LineTotal: l.Total,
			Color:     l.Color,
			Size:      l.Size,
		})
	}
	return items, nil
}

func (r memOrders) UpdateStatus(_ context.Context, id uint, status order.Status, updatedAt time.Time) error {
	o, ok := r.s.orders[id]
	if !ok {
		return order.ErrOrderNotFound
	}
	o.Status = status
	o.UpdatedAt = updatedAt
	r.s.orders[id] = o
	return nil
}

func (r memOrders) Delete(_ context.Context, id uint) error {
	for lid, l := range r.s.lines {
		if l.OrderID == id {
			delete(r.s.lines, lid)
		}
	}
	if _, ok := r.s.orders[id]; !ok {
		return order.ErrOrderNotFound
	}
	delete(r.s.orders, id)
	return nil
}

// ===== catalog.Repository =====

type memVariants struct{ s *memStore }

func (r memVariants) FindVariant(_ context.Context, id uint) (*catalog.Variant, error) {
	v, ok := r.s.variants[id]
	if !ok {
		return nil, catalog.ErrVariantNotFound
	}
	return &v, nil
}

func (r memVariants) LockVariant(ctx context.Context, id uint) (*catalog.Variant, error) {
	r.s.locked = append(r.s.locked, id)
	return r.FindVariant(ctx, id)
}

func (r memVariants) AdjustStock(_ context.Context, id uint, delta int) error {
	v, ok := r.s.variants[id]
	if !ok {
		return catalog.ErrVariantNotFound
	}
	if v.Stock+delta < 0 {
		return catalog.ErrInsufficientStock
	}
	v.Stock += delta
	r.s.variants[id] = v
	return nil
}

// ===== cart.Repository =====

type memCarts struct{ s *memStore }

func (r memCarts) FindByKey(_ context.Context, key cart.Key) (*cart.Line, error) {
	for _, l := range r.s.carts {
		if l.Key() == key {
			l := l
			return &l, nil
		}
	}
	return nil, cart.ErrLineNotFound
}

func (r memCarts) FindByID(_ context.Context, id uint) (*cart.Line, error) {
	l, ok := r.s.carts[id]
	if !ok {
		return nil, cart.ErrLineNotFound
	}
	return &l, nil
}

func (r memCarts) Create(ctx context.Context, line *cart.Line) error {
	if _, err := r.FindByKey(ctx, line.Key()); err == nil {
		return cart.ErrDuplicateLine
	}
	line.ID = r.s.id()
	r.s.carts[line.ID] = *line
	return nil
}

func (r memCarts) IncrementQuantity(_ context.Context, id uint, delta int) error {
	l, ok := r.s.carts[id]
	if !ok {
		return cart.ErrLineNotFound
	}
	l.Quantity += delta
	r.s.carts[id] = l
	return nil
}

func (r memCarts) SetQuantity(_ context.Context, id uint, quantity int) error {
	l, ok := r.s.carts[id]
	if !ok {
		return cart.ErrLineNotFound
	}
	l.Quantity = quantity
	r.s.carts[id] = l
	return nil
}

func (r memCarts) DeleteByID(_ context.Context, id uint) error {
	if _, ok := r.s.carts[id]; !ok {
		return cart.ErrLineNotFound
	}
	delete(r.s.carts, id)
	return nil
}

func (r memCarts) DeleteByUserAndVariant(_ context.Context, userID string, variantID uint) (int64, error) {
	var n int64
	for id, l := range r.s.carts {
		if l.UserID == userID && l.VariantID == variantID {
			delete(r.s.carts, id)
			n++
		}
	}
	return n, nil
}

func (r memCarts) DeleteByUser(_ context.Context, userID string) (int64, error) {
	var n int64
	for id, l := range r.s.carts {
		if l.UserID == userID {
			delete(r.s.carts, id)
			n++
		}
	}
	return n, nil
}

func (r memCarts) LockByUser(ctx context.Context, userID string) ([]*cart.Line, error) {
	return r.ListByUser(ctx, userID)
}

func (r memCarts) ListByUser(_ context.Context, userID string) ([]*cart.Line, error) {
	var out []*cart.Line
	for _, l := range r.s.carts {
		if l.UserID == userID {
			l := l
			out = append(out, &l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memCarts) SumQuantity(context.Context) (int64, error) {
	var n int64
	for _, l := range r.s.carts {
		n += int64(l.Quantity)
	}
	return n, nil
}

// staleCarts 返回固定的购物车快照，模拟在另一个结算提交前读到的数据
type staleCarts struct {
	memCarts
	snapshot []*cart.Line
}

func (r staleCarts) LockByUser(context.Context, string) ([]*cart.Line, error) {
	return r.snapshot, nil
}

// ===== notification.Repository =====

type memNotifs struct{ s *memStore }

func (r memNotifs) Create(_ context.Context, n *notification.Notification) error {
	n.ID = r.s.id()
	r.s.notifs = append(r.s.notifs, *n)
	return nil
}

func (r memNotifs) CreateCheckout(_ context.Context, c *notification.Checkout) error {
	c.ID = r.s.id()
	r.s.checkouts = append(r.s.checkouts, *c)
	return nil
}

func (r memNotifs) List(context.Context, int) ([]*notification.Notification, error) {
	out := make([]*notification.Notification, len(r.s.notifs))
	for i := range r.s.notifs {
		out[i] = &r.s.notifs[i]
	}
	return out, nil
}

func (r memNotifs) DeleteAll(context.Context) (int64, error) {
	n := int64(len(r.s.notifs))
	r.s.notifs = nil
	return n, nil
}

func (r memNotifs) CheckoutBadge(context.Context) (*notification.CheckoutBadge, error) {
	b := &notification.CheckoutBadge{Count: int64(len(r.s.checkouts))}
	for _, c := range r.s.checkouts {
		if c.OrderID > b.LatestOrderID {
			b.LatestOrderID = c.OrderID
		}
	}
	return b, nil
}

func (r memNotifs) DeleteCheckoutByOrder(_ context.Context, orderID uint) (int64, error) {
	var n int64
	kept := make([]notification.Checkout, 0, len(r.s.checkouts))
	for _, c := range r.s.checkouts {
		if c.OrderID == orderID {
			n++
			continue
		}
		kept = append(kept, c)
	}
	r.s.checkouts = kept
	return n, nil
}

func (r memNotifs) DeleteAllCheckout(context.Context) (int64, error) {
	n := int64(len(r.s.checkouts))
	r.s.checkouts = nil
	return n, nil
}

// ===== discount.Service =====

type memDiscounts struct{ s *memStore }

func (r memDiscounts) Create(_ context.Context, amount int64) (*discount.Code, error) {
	return nil, discount.ErrCodeGenerate
}

func (r memDiscounts) List(context.Context) ([]*discount.Code, error) {
	return nil, nil
}

func (r memDiscounts) FindByCode(_ context.Context, code string) (*discount.Code, error) {
	d, ok := r.s.discounts[code]
	if !ok {
		return nil, discount.ErrDiscountNotFound
	}
	return &d, nil
}

func (r memDiscounts) Delete(context.Context, uint) error {
	return nil
}

// ===== OrderCache =====

type memCache struct {
	items       map[uint]order.Order
	gets, hits  int
	invalidated []uint
}

func newMemCache() *memCache {
	return &memCache{items: map[uint]order.Order{}}
}

func (c *memCache) Get(_ context.Context, id uint) (*order.Order, error) {
	c.gets++
	o, ok := c.items[id]
	if !ok {
		return nil, nil
	}
	c.hits++
	return &o, nil
}

func (c *memCache) Set(_ context.Context, o *order.Order) error {
	c.items[o.ID] = *o
	return nil
}

func (c *memCache) Invalidate(_ context.Context, id uint) error {
	delete(c.items, id)
	c.invalidated = append(c.invalidated, id)
	return nil
}
