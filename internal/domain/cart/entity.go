package cart

import (
	"time"

	apperrors "github.com/xiebiao/backoffice/pkg/errors"
)

// Line 购物车明细
// 同一用户的(规格, 颜色, 尺码)组合最多一行，数量始终>=1
type Line struct {
	ID        uint
	UserID    string
	VariantID uint
	Quantity  int
	UnitPrice int64  // 加入购物车时的单价快照
	Color     string // 冗余的颜色文字，便于展示
	Size      string // 冗余的尺码文字
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Key 购物车行的自然键
type Key struct {
	UserID    string
	VariantID uint
	Color     string
	Size      string
}

// Key 返回自然键
func (l *Line) Key() Key {
	return Key{UserID: l.UserID, VariantID: l.VariantID, Color: l.Color, Size: l.Size}
}

// Total 小计
func (l *Line) Total() int64 {
	return int64(l.Quantity) * l.UnitPrice
}

// 购物车领域错误
var (
	ErrLineNotFound    = apperrors.New(apperrors.ErrCodeCartLineNotFound, "购物车明细不存在")
	ErrDuplicateLine   = apperrors.New(apperrors.ErrCodeDuplicateEntry, "购物车明细已存在")
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "购买数量必须大于0")
	ErrInvalidPrice    = apperrors.New(apperrors.ErrCodeInvalidParams, "单价不能为负数")
	ErrMissingUser     = apperrors.New(apperrors.ErrCodeInvalidParams, "用户不能为空")
	ErrCartChanged     = apperrors.New(apperrors.ErrCodeCartChanged, "购物车已变化，请刷新后重试")
)

// LineView 购物车明细展示投影
type LineView struct {
	ID        uint   `json:"id"`
	VariantID uint   `json:"variant_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	LineTotal int64  `json:"line_total"`
	Color     string `json:"color"`
	Size      string `json:"size"`
}

// View 转换为展示投影
func (l *Line) View() LineView {
	return LineView{
		ID:        l.ID,
		VariantID: l.VariantID,
		Quantity:  l.Quantity,
		UnitPrice: l.UnitPrice,
		LineTotal: l.Total(),
		Color:     l.Color,
		Size:      l.Size,
	}
}
