package order

import (
	"context"
	"sort"

	"github.com/xiebiao/backoffice/internal/domain/catalog"
)

// stockNeed 规格ID → 件数
// 同一规格可能出现在多行（颜色/尺码文字不同），合并后只加锁一次
type stockNeed map[uint]int

func (n stockNeed) add(variantID uint, quantity int) {
	n[variantID] += quantity
}

// sortedIDs 按ID升序返回，所有加锁路径都按这个顺序，避免两个事务互相等待
func (n stockNeed) sortedIDs() []uint {
	ids := make([]uint, 0, len(n))
	for id := range n {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// reserve 按ID升序锁定规格并扣减库存，必须在事务中调用
func (n stockNeed) reserve(ctx context.Context, variants catalog.Repository) error {
	for _, id := range n.sortedIDs() {
		v, err := variants.LockVariant(ctx, id)
		if err != nil {
			return err
		}
		if !v.HasStock(n[id]) {
			return catalog.ErrInsufficientStock
		}
		if err := variants.AdjustStock(ctx, id, -n[id]); err != nil {
			return err
		}
	}
	return nil
}
