package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/backoffice/internal/domain/cart"
	"github.com/xiebiao/backoffice/internal/domain/catalog"
	"github.com/xiebiao/backoffice/internal/domain/event"
)

// stubService 按测试需要返回固定结果
type stubService struct {
	line    *cart.Line
	merged  bool
	removed int64
	lines   []*cart.Line
	total   int64
	err     error

	added cart.AddParams
}

func (s *stubService) AddOrMerge(_ context.Context, p cart.AddParams) (*cart.Line, bool, error) {
	s.added = p
	return s.line, s.merged, s.err
}

func (s *stubService) UpdateQuantity(context.Context, string, uint, int) (*cart.Line, error) {
	return s.line, s.err
}

func (s *stubService) Remove(context.Context, string, uint) (int64, error) {
	return s.removed, s.err
}

func (s *stubService) ListByUser(context.Context, string) ([]*cart.Line, error) {
	return s.lines, s.err
}

func (s *stubService) TotalQuantity(context.Context) (int64, error) {
	return s.total, s.err
}

type stubVariants struct {
	known map[uint]bool
}

func (v stubVariants) FindVariant(_ context.Context, id uint) (*catalog.Variant, error) {
	if !v.known[id] {
		return nil, catalog.ErrVariantNotFound
	}
	return &catalog.Variant{ID: id, Stock: 10}, nil
}

func (v stubVariants) LockVariant(ctx context.Context, id uint) (*catalog.Variant, error) {
	return v.FindVariant(ctx, id)
}

func (v stubVariants) AdjustStock(context.Context, uint, int) error {
	return nil
}

func TestAddToCart(t *testing.T) {
	ctx := context.Background()
	variants := stubVariants{known: map[uint]bool{1: true}}

	t.Run("新增一行", func(t *testing.T) {
		svc := &stubService{line: &cart.Line{ID: 5, UserID: "u1", VariantID: 1, Quantity: 2, UnitPrice: 300}}
		uc := NewAddToCartUseCase(svc, variants)

		resp, err := uc.Execute(ctx, AddToCartRequest{UserID: "u1", VariantID: 1, Quantity: 2, UnitPrice: 300, Color: "红"})
		require.NoError(t, err)
		assert.False(t, resp.Merged)
		assert.Equal(t, int64(600), resp.Line.LineTotal)
		assert.Equal(t, event.ActionAdd, resp.Event.Action)
		assert.Equal(t, "红", svc.added.Color)
	})

	t.Run("合并", func(t *testing.T) {
		svc := &stubService{line: &cart.Line{ID: 5, VariantID: 1, Quantity: 4}, merged: true}
		uc := NewAddToCartUseCase(svc, variants)

		resp, err := uc.Execute(ctx, AddToCartRequest{UserID: "u1", VariantID: 1, Quantity: 3})
		require.NoError(t, err)
		assert.True(t, resp.Merged)
		assert.Equal(t, 4, resp.Line.Quantity)
		assert.Equal(t, event.ActionEdit, resp.Event.Action)
	})

	t.Run("规格不存在", func(t *testing.T) {
		svc := &stubService{}
		uc := NewAddToCartUseCase(svc, variants)

		_, err := uc.Execute(ctx, AddToCartRequest{UserID: "u1", VariantID: 2, Quantity: 1})
		assert.ErrorIs(t, err, catalog.ErrVariantNotFound)
		assert.Empty(t, svc.added.UserID, "不会写购物车")
	})
}

func TestUpdateCartLine(t *testing.T) {
	ctx := context.Background()

	removed, err := NewUpdateCartLineUseCase(&stubService{}).Execute(ctx, UpdateCartLineRequest{UserID: "u1", LineID: 9, Quantity: 0})
	require.NoError(t, err)
	assert.True(t, removed.Removed)
	assert.Nil(t, removed.Line)
	assert.Equal(t, event.ActionDelete, removed.Event.Action)

	updated, err := NewUpdateCartLineUseCase(&stubService{line: &cart.Line{ID: 9, Quantity: 6, UnitPrice: 10}}).
		Execute(ctx, UpdateCartLineRequest{UserID: "u1", LineID: 9, Quantity: 6})
	require.NoError(t, err)
	require.NotNil(t, updated.Line)
	assert.Equal(t, 6, updated.Line.Quantity)
	assert.Equal(t, event.ActionEdit, updated.Event.Action)

	_, err = NewUpdateCartLineUseCase(&stubService{err: cart.ErrLineNotFound}).
		Execute(ctx, UpdateCartLineRequest{UserID: "u1", LineID: 1, Quantity: 1})
	assert.ErrorIs(t, err, cart.ErrLineNotFound)
}

func TestRemoveFromCart(t *testing.T) {
	ctx := context.Background()

	resp, err := NewRemoveFromCartUseCase(&stubService{removed: 2}).Execute(ctx, RemoveFromCartRequest{UserID: "u1", VariantID: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Removed)
	assert.NotNil(t, resp.Event)

	none, err := NewRemoveFromCartUseCase(&stubService{}).Execute(ctx, RemoveFromCartRequest{UserID: "u1", VariantID: 3})
	require.NoError(t, err)
	assert.Nil(t, none.Event, "没有删除任何行时不广播")
}

func TestListCartAndTotal(t *testing.T) {
	ctx := context.Background()
	svc := &stubService{
		lines: []*cart.Line{
			{ID: 1, VariantID: 1, Quantity: 2, UnitPrice: 100},
			{ID: 2, VariantID: 2, Quantity: 1, UnitPrice: 250},
		},
		total: 42,
	}

	list, err := NewListCartUseCase(svc).Execute(ctx, ListCartRequest{UserID: "u1"})
	require.NoError(t, err)
	assert.Len(t, list.Lines, 2)
	assert.Equal(t, 3, list.Quantity)
	assert.Equal(t, int64(450), list.Subtotal)

	total, err := NewTotalQuantityUseCase(svc).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(42), total.Total)
}
