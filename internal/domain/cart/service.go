package cart

import (
	"context"
	"errors"
	"strings"
)

// AddParams 加入购物车参数
type AddParams struct {
	UserID    string
	VariantID uint
	Quantity  int
	UnitPrice int64
	Color     string
	Size      string
}

// Service 购物车领域服务
type Service interface {
	// AddOrMerge 自然键已存在时累加数量，否则新增一行
	// 返回最新的行以及是否发生了合并
	AddOrMerge(ctx context.Context, p AddParams) (*Line, bool, error)

	// UpdateQuantity 设置数量；quantity<=0时删除该行并返回(nil, nil)
	UpdateQuantity(ctx context.Context, userID string, lineID uint, quantity int) (*Line, error)

	// Remove 删除用户某规格的全部行
	Remove(ctx context.Context, userID string, variantID uint) (int64, error)

	// ListByUser 查询用户购物车
	ListByUser(ctx context.Context, userID string) ([]*Line, error)

	// TotalQuantity 全部购物车的件数合计（报表用，不区分用户）
	TotalQuantity(ctx context.Context) (int64, error)
}

type service struct {
	repo Repository
}

// NewService 创建购物车领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// AddOrMerge 加入购物车
func (s *service) AddOrMerge(ctx context.Context, p AddParams) (*Line, bool, error) {
	// 1. 参数校验
	p.UserID = strings.TrimSpace(p.UserID)
	if p.UserID == "" {
		return nil, false, ErrMissingUser
	}
	if p.Quantity <= 0 {
		return nil, false, ErrInvalidQuantity
	}
	if p.UnitPrice < 0 {
		return nil, false, ErrInvalidPrice
	}

	key := Key{UserID: p.UserID, VariantID: p.VariantID, Color: p.Color, Size: p.Size}

	// 2. 已存在则累加
	merged, err := s.increment(ctx, key, p.Quantity)
	if err == nil {
		return merged, true, nil
	}
	if !errors.Is(err, ErrLineNotFound) {
		return nil, false, err
	}

	// 3. 不存在则新增
	line := &Line{
		UserID:    p.UserID,
		VariantID: p.VariantID,
		Quantity:  p.Quantity,
		UnitPrice: p.UnitPrice,
		Color:     p.Color,
		Size:      p.Size,
	}
	err = s.repo.Create(ctx, line)
	if err == nil {
		return line, false, nil
	}

	// 4. 并发请求抢先插入了同一自然键，退化为累加
	if errors.Is(err, ErrDuplicateLine) {
		merged, err := s.increment(ctx, key, p.Quantity)
		if err != nil {
			return nil, false, err
		}
		return merged, true, nil
	}
	return nil, false, err
}

func (s *service) increment(ctx context.Context, key Key, delta int) (*Line, error) {
	existing, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if err := s.repo.IncrementQuantity(ctx, existing.ID, delta); err != nil {
		return nil, err
	}
	existing.Quantity += delta
	return existing, nil
}

// UpdateQuantity 修改数量
func (s *service) UpdateQuantity(ctx context.Context, userID string, lineID uint, quantity int) (*Line, error) {
	line, err := s.repo.FindByID(ctx, lineID)
	if err != nil {
		return nil, err
	}
	// 不允许修改他人的购物车
	if line.UserID != userID {
		return nil, ErrLineNotFound
	}

	if quantity <= 0 {
		if err := s.repo.DeleteByID(ctx, lineID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	if err := s.repo.SetQuantity(ctx, lineID, quantity); err != nil {
		return nil, err
	}
	line.Quantity = quantity
	return line, nil
}

// Remove 删除规格
func (s *service) Remove(ctx context.Context, userID string, variantID uint) (int64, error) {
	if strings.TrimSpace(userID) == "" {
		return 0, ErrMissingUser
	}
	return s.repo.DeleteByUserAndVariant(ctx, userID, variantID)
}

// ListByUser 查询购物车
func (s *service) ListByUser(ctx context.Context, userID string) ([]*Line, error) {
	return s.repo.ListByUser(ctx, userID)
}

// TotalQuantity 件数合计
func (s *service) TotalQuantity(ctx context.Context) (int64, error) {
	return s.repo.SumQuantity(ctx)
}
