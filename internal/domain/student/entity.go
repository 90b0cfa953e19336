package student

import (
	"time"
)

// Student 学生实体(聚合根)
// 设计说明:
// 1. ID由调用方指定(学号)
// 2. Borrowed按借阅顺序记录当前在借的图书ID
// 3. 同一本书重复借阅会出现多次,归还时每次移除一条
type Student struct {
	ID           int
	Name         string
	Borrowed     []int // 在借图书ID
	RegisteredAt time.Time
	UpdatedAt    time.Time
}

// NewStudent 创建新学生(工厂方法)
func NewStudent(id int, name string) *Student {
	now := time.Now()
	return &Student{
		ID:           id,
		Name:         name,
		Borrowed:     []int{},
		RegisteredAt: now,
		UpdatedAt:    now,
	}
}

// HasBorrowed 是否在借该书
func (s *Student) HasBorrowed(bookID int) bool {
	for _, id := range s.Borrowed {
		if id == bookID {
			return true
		}
	}
	return false
}

// AddBorrowed 记录一次借阅(领域行为)
func (s *Student) AddBorrowed(bookID int) {
	s.Borrowed = append(s.Borrowed, bookID)
	s.UpdatedAt = time.Now()
}

// RemoveBorrowed 移除一条在借记录(领域行为)
// 业务规则:未借阅的书不能归还
func (s *Student) RemoveBorrowed(bookID int) error {
	for i, id := range s.Borrowed {
		if id == bookID {
			s.Borrowed = append(s.Borrowed[:i], s.Borrowed[i+1:]...)
			s.UpdatedAt = time.Now()
			return nil
		}
	}
	return ErrNotBorrowed
}

// Clone 深拷贝(Borrowed切片也复制)
func (s *Student) Clone() *Student {
	c := *s
	c.Borrowed = make([]int, len(s.Borrowed))
	copy(c.Borrowed, s.Borrowed)
	return &c
}
