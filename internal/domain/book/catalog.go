package book

import (
	"context"
	"errors"
	"strings"
)

// Catalog 馆藏领域服务接口
// 设计说明:
// 1. Catalog独占图书记录以及作者/类型两个索引
// 2. 上架时按类型给推荐图连边(通过GenreLinker,不依赖recommend包)
// 3. 自身不加锁,并发由上层Session串行化
type Catalog interface {
	// AddBook 上架图书
	// 默认模式:ID重复时整体覆盖,旧索引条目保留
	// 严格模式:ID重复返回ErrDuplicateID
	AddBook(ctx context.Context, book *Book) error

	// GetBook 根据ID获取图书
	GetBook(ctx context.Context, id int) (*Book, error)

	// ListAvailable 列出可借图书(Quantity>0),顺序不保证
	ListAvailable(ctx context.Context) ([]*Book, error)

	// SearchByTitle 按书名子串搜索(不区分大小写),无结果返回空切片
	SearchByTitle(ctx context.Context, query string) ([]*Book, error)

	// AdjustQuantity 调整可借册数
	// 不校验结果是否为负,由调用方保证前置条件
	AdjustQuantity(ctx context.Context, id int, delta int) error

	// BooksByAuthor 按作者索引查询,按上架顺序返回
	BooksByAuthor(ctx context.Context, author string) ([]*Book, error)

	// BooksByGenre 按类型索引查询,按上架顺序返回
	BooksByGenre(ctx context.Context, genre string) ([]*Book, error)
}

// Option 馆藏配置项
type Option func(*catalog)

// WithStrictIDs 开启严格模式:重复ID返回ErrDuplicateID而不是覆盖
func WithStrictIDs(strict bool) Option {
	return func(c *catalog) {
		c.strict = strict
	}
}

// catalog 领域服务实现
type catalog struct {
	repo    Repository
	authors *Index
	genres  *Index
	linker  GenreLinker
	strict  bool
}

// NewCatalog 创建馆藏服务
func NewCatalog(repo Repository, linker GenreLinker, opts ...Option) Catalog {
	c := &catalog{
		repo:    repo,
		authors: NewIndex(),
		genres:  NewIndex(),
		linker:  linker,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AddBook 上架图书
func (c *catalog) AddBook(ctx context.Context, b *Book) error {
	// 1. 参数校验
	if err := b.Validate(); err != nil {
		return err
	}

	// 2. 严格模式下拒绝重复ID
	if c.strict {
		exists, err := c.repo.Exists(ctx, b.ID)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateID
		}
	}

	// 3. 持久化(默认模式下覆盖)
	if _, err := c.repo.Save(ctx, b); err != nil {
		return err
	}

	// 4. 追加索引
	c.authors.Add(b.Author, b.ID)
	c.genres.Add(b.Genre, b.ID)

	// 5. 与同类型的已有图书双向连边
	// 每次上架都扫描整个类型索引,所以同类型图书最终形成完全图
	for _, other := range c.genres.Lookup(b.Genre) {
		if other != b.ID {
			c.linker.Link(b.ID, other)
		}
	}

	return nil
}

// GetBook 根据ID获取图书
func (c *catalog) GetBook(ctx context.Context, id int) (*Book, error) {
	return c.repo.FindByID(ctx, id)
}

// ListAvailable 列出可借图书
func (c *catalog) ListAvailable(ctx context.Context) ([]*Book, error) {
	books, err := c.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	available := make([]*Book, 0, len(books))
	for _, b := range books {
		if b.IsAvailable() {
			available = append(available, b)
		}
	}
	return available, nil
}

// SearchByTitle 按书名子串搜索
func (c *catalog) SearchByTitle(ctx context.Context, query string) ([]*Book, error) {
	books, err := c.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	matched := make([]*Book, 0)
	for _, b := range books {
		if strings.Contains(strings.ToLower(b.Title), needle) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

// AdjustQuantity 调整可借册数
func (c *catalog) AdjustQuantity(ctx context.Context, id int, delta int) error {
	return c.repo.UpdateQuantity(ctx, id, delta)
}

// BooksByAuthor 按作者查询
func (c *catalog) BooksByAuthor(ctx context.Context, author string) ([]*Book, error) {
	return c.resolve(ctx, c.authors.Lookup(author), func(b *Book) bool { return b.Author == author })
}

// BooksByGenre 按类型查询
func (c *catalog) BooksByGenre(ctx context.Context, genre string) ([]*Book, error) {
	return c.resolve(ctx, c.genres.Lookup(genre), func(b *Book) bool { return b.Genre == genre })
}

// resolve 把索引中的ID解析为图书
// 覆盖上架会在索引里留下旧条目,这里按当前记录过滤并去重
func (c *catalog) resolve(ctx context.Context, ids []int, keep func(*Book) bool) ([]*Book, error) {
	seen := make(map[int]struct{}, len(ids))
	books := make([]*Book, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		b, err := c.repo.FindByID(ctx, id)
		if errors.Is(err, ErrBookNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if keep(b) {
			books = append(books, b)
		}
	}
	return books, nil
}
