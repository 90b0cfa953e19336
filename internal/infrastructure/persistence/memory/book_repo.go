package memory

import (
	"context"
	"sync"

	"github.com/xiebiao/library/internal/domain/book"
)

// bookRepository 图书仓储实现(内存)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. map存储,读写都复制实体,调用方拿到的是快照
// 3. 进程退出即丢失,不做持久化
type bookRepository struct {
	mu    sync.RWMutex
	books map[int]*book.Book
}

// NewBookRepository 创建图书仓储
func NewBookRepository() book.Repository {
	return &bookRepository{books: make(map[int]*book.Book)}
}

// Save 保存图书(覆盖同ID)
func (r *bookRepository) Save(ctx context.Context, b *book.Book) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, existed := r.books[b.ID]
	r.books[b.ID] = b.Clone()
	return existed, nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id int) (*book.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return b.Clone(), nil
}

// Exists 判断ID是否存在
func (r *bookRepository) Exists(ctx context.Context, id int) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.books[id]
	return ok, nil
}

// List 返回全部图书(map遍历顺序,不保证稳定)
func (r *bookRepository) List(ctx context.Context) ([]*book.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	books := make([]*book.Book, 0, len(r.books))
	for _, b := range r.books {
		books = append(books, b.Clone())
	}
	return books, nil
}

// UpdateQuantity 调整可借册数
func (r *bookRepository) UpdateQuantity(ctx context.Context, id int, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.books[id]
	if !ok {
		return book.ErrBookNotFound
	}
	b.AdjustQuantity(delta)
	return nil
}

// Count 图书种数
func (r *bookRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.books), nil
}
