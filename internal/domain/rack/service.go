package rack

import (
	"context"
)

// Service 货架领域服务
type Service interface {
	CreateRack(ctx context.Context, name string, length, width, height, maxLoad float64) (*Rack, error)
	GetRack(ctx context.Context, id uint) (*Rack, error)
	UpdateRack(ctx context.Context, id uint, name string, isActive *bool) (*Rack, error)
	ListRacks(ctx context.Context, activeOnly bool) ([]*Rack, error)
}

type service struct {
	repo Repository
}

// NewService 创建货架领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateRack(ctx context.Context, name string, length, width, height, maxLoad float64) (*Rack, error) {
	r, err := NewRack(name, length, width, height, maxLoad)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) GetRack(ctx context.Context, id uint) (*Rack, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateRack 修改名称或启停状态
// 尺寸与承重不开放修改:已有上架记录是按原尺寸校验通过的
func (s *service) UpdateRack(ctx context.Context, id uint, name string, isActive *bool) (*Rack, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.Rename(name)
	if isActive != nil {
		r.SetActive(*isActive)
	}

	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) ListRacks(ctx context.Context, activeOnly bool) ([]*Rack, error) {
	return s.repo.List(ctx, activeOnly)
}
