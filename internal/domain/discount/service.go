package discount

import (
	"context"
	"errors"
	"strings"
)

// maxGenerateAttempts 随机码冲突时的重试次数
const maxGenerateAttempts = 3

// Service 优惠码领域服务
type Service interface {
	Create(ctx context.Context, amount int64) (*Code, error)
	List(ctx context.Context) ([]*Code, error)
	FindByCode(ctx context.Context, code string) (*Code, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo     Repository
	generate Generator
}

// NewService 创建优惠码服务
func NewService(repo Repository) Service {
	return NewServiceWithGenerator(repo, RandomCode)
}

// NewServiceWithGenerator 指定生成函数（测试用）
func NewServiceWithGenerator(repo Repository, gen Generator) Service {
	return &service{repo: repo, generate: gen}
}

// Create 生成随机码并保存
func (s *service) Create(ctx context.Context, amount int64) (*Code, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		code, err := s.generate()
		if err != nil {
			return nil, ErrCodeGenerate
		}

		c := &Code{Code: code, Amount: amount}
		err = s.repo.Create(ctx, c)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, ErrDuplicateCode) {
			return nil, err
		}
	}
	return nil, ErrCodeGenerate
}

// List 全部优惠码
func (s *service) List(ctx context.Context) ([]*Code, error) {
	return s.repo.List(ctx)
}

// FindByCode 按码查找（不区分大小写）
func (s *service) FindByCode(ctx context.Context, code string) (*Code, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, ErrDiscountNotFound
	}
	return s.repo.FindByCode(ctx, code)
}

// Delete 删除优惠码
func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
