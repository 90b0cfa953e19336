package student

import (
	"context"
)

// Repository 学生仓储接口
// 具体实现在infrastructure/persistence/memory,返回值均为副本
type Repository interface {
	// Save 保存学生,同ID整体覆盖,existed表示是否发生了覆盖
	Save(ctx context.Context, student *Student) (existed bool, err error)

	// FindByID 根据学号查找,不存在返回ErrStudentNotFound
	FindByID(ctx context.Context, id int) (*Student, error)

	// Exists 判断学号是否存在
	Exists(ctx context.Context, id int) (bool, error)

	// Update 更新学生(必须已存在)
	Update(ctx context.Context, student *Student) error

	// Count 已注册学生数
	Count(ctx context.Context) (int, error)
}
