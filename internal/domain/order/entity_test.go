package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, v := range []int{0, 1, 2} {
		s, err := ParseStatus(v)
		require.NoError(t, err)
		assert.Equal(t, Status(v), s)
	}

	for _, v := range []int{-1, 3, 99} {
		_, err := ParseStatus(v)
		assert.ErrorIs(t, err, ErrInvalidStatus, "value=%d", v)
	}
}

func TestNewLineComputesTotal(t *testing.T) {
	line := NewLine(1, 10, 2, 50000, "红", "M")
	assert.Equal(t, int64(100000), line.Total)

	lines := []Line{line, NewLine(1, 11, 3, 1000, "", "")}
	assert.Equal(t, int64(103000), Subtotal(lines))
}

func TestApplyTotal(t *testing.T) {
	o := NewOrder("u1", "", ShippingAddress{})
	assert.Equal(t, StatusPending, o.Status)

	o.ApplyTotal(100000, 20000)
	assert.Equal(t, int64(80000), o.Total)

	o.ApplyTotal(1000, 5000)
	assert.Equal(t, int64(0), o.Total, "优惠超过合计时实付为0")
	assert.Equal(t, int64(5000), o.Discount)
}

func TestPermissivePolicy(t *testing.T) {
	p := PermissivePolicy{}
	o := NewOrder("u1", "", ShippingAddress{})

	// 任意已知状态之间都可以转换，包括从已取消恢复
	for _, target := range []Status{StatusCancelled, StatusPending, StatusConfirmed, StatusPending} {
		require.NoError(t, p.SetStatus(o, target))
		assert.Equal(t, target, o.Status)
	}

	assert.ErrorIs(t, p.SetStatus(o, Status(7)), ErrInvalidStatus)
	assert.Equal(t, StatusPending, o.Status, "非法状态不修改订单")
}

func TestStrictPolicy(t *testing.T) {
	p := StrictPolicy{}

	o := NewOrder("u1", "", ShippingAddress{})
	require.NoError(t, p.SetStatus(o, StatusConfirmed))
	require.NoError(t, p.SetStatus(o, StatusCancelled))
	require.NoError(t, p.SetStatus(o, StatusCancelled), "重复取消是幂等的")

	assert.ErrorIs(t, p.SetStatus(o, StatusPending), ErrInvalidStatusTransition)
	assert.ErrorIs(t, p.SetStatus(o, Status(-1)), ErrInvalidStatus)
}

func TestNewStatusPolicy(t *testing.T) {
	assert.IsType(t, StrictPolicy{}, NewStatusPolicy("strict"))
	assert.IsType(t, PermissivePolicy{}, NewStatusPolicy("permissive"))
	assert.IsType(t, PermissivePolicy{}, NewStatusPolicy(""))
}
