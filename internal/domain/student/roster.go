package student

import (
	"context"
)

// Roster 学生名册领域服务
// 设计说明:
// 1. Roster独占学生记录及其在借集合
// 2. 在借集合只由流通服务通过AddBorrowed/RemoveBorrowed修改
type Roster interface {
	// Register 注册学生
	// 默认模式:学号重复时覆盖(在借集合被清空)
	// 严格模式:学号重复返回ErrDuplicateID
	Register(ctx context.Context, id int, name string) (*Student, error)

	// GetStudent 根据学号查询
	GetStudent(ctx context.Context, id int) (*Student, error)

	// AddBorrowed 记录借阅
	AddBorrowed(ctx context.Context, studentID, bookID int) error

	// RemoveBorrowed 移除借阅记录,未借阅返回ErrNotBorrowed
	RemoveBorrowed(ctx context.Context, studentID, bookID int) error
}

// Option 名册配置项
type Option func(*roster)

// WithStrictIDs 开启严格模式
func WithStrictIDs(strict bool) Option {
	return func(r *roster) {
		r.strict = strict
	}
}

type roster struct {
	repo   Repository
	strict bool
}

// NewRoster 创建名册服务
func NewRoster(repo Repository, opts ...Option) Roster {
	r := &roster{repo: repo}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register 注册学生
func (r *roster) Register(ctx context.Context, id int, name string) (*Student, error) {
	if r.strict {
		exists, err := r.repo.Exists(ctx, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrDuplicateID
		}
	}

	s := NewStudent(id, name)
	if _, err := r.repo.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// GetStudent 根据学号查询
func (r *roster) GetStudent(ctx context.Context, id int) (*Student, error) {
	return r.repo.FindByID(ctx, id)
}

// AddBorrowed 记录借阅
func (r *roster) AddBorrowed(ctx context.Context, studentID, bookID int) error {
	s, err := r.repo.FindByID(ctx, studentID)
	if err != nil {
		return err
	}
	s.AddBorrowed(bookID)
	return r.repo.Update(ctx, s)
}

// RemoveBorrowed 移除借阅记录
func (r *roster) RemoveBorrowed(ctx context.Context, studentID, bookID int) error {
	s, err := r.repo.FindByID(ctx, studentID)
	if err != nil {
		return err
	}
	if err := s.RemoveBorrowed(bookID); err != nil {
		return err
	}
	return r.repo.Update(ctx, s)
}
