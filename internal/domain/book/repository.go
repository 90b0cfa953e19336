package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现(当前只有内存实现)
// 2. 返回的*Book都是副本,修改副本不影响仓储
type Repository interface {
	// Save 保存图书,ID已存在时整体覆盖,existed表示是否发生了覆盖
	Save(ctx context.Context, book *Book) (existed bool, err error)

	// FindByID 根据ID查找图书,不存在返回ErrBookNotFound
	FindByID(ctx context.Context, id int) (*Book, error)

	// Exists 判断ID是否存在
	Exists(ctx context.Context, id int) (bool, error)

	// List 返回全部图书,顺序不保证
	List(ctx context.Context) ([]*Book, error)

	// UpdateQuantity 原子地调整可借册数,delta可正可负
	UpdateQuantity(ctx context.Context, id int, delta int) error

	// Count 图书种数
	Count(ctx context.Context) (int, error)
}

// GenreLinker 推荐图的连边接口
// 由recommend.Graph实现,Catalog上架时调用,避免book包反向依赖recommend包
type GenreLinker interface {
	Link(a, b int)
}
