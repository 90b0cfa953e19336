package memory

import (
	"context"
	"sync"

	"github.com/xiebiao/library/internal/domain/student"
)

// studentRepository 学生仓储实现(内存)
type studentRepository struct {
	mu       sync.RWMutex
	students map[int]*student.Student
}

// NewStudentRepository 创建学生仓储
func NewStudentRepository() student.Repository {
	return &studentRepository{students: make(map[int]*student.Student)}
}

// Save 保存学生(覆盖同ID)
func (r *studentRepository) Save(ctx context.Context, s *student.Student) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, existed := r.students[s.ID]
	r.students[s.ID] = s.Clone()
	return existed, nil
}

// FindByID 根据学号查找
func (r *studentRepository) FindByID(ctx context.Context, id int) (*student.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.students[id]
	if !ok {
		return nil, student.ErrStudentNotFound
	}
	return s.Clone(), nil
}

// Exists 判断学号是否存在
func (r *studentRepository) Exists(ctx context.Context, id int) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.students[id]
	return ok, nil
}

// Update 更新学生
func (r *studentRepository) Update(ctx context.Context, s *student.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.students[s.ID]; !ok {
		return student.ErrStudentNotFound
	}
	r.students[s.ID] = s.Clone()
	return nil
}

// Count 已注册学生数
func (r *studentRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.students), nil
}
