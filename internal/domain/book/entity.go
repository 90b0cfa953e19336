package book

import (
	"time"
)

// Book 图书实体(聚合根)
// 设计说明:
// 1. ID由调用方指定(馆藏编号),不是自增主键
// 2. Quantity是当前可借册数,借出-1、归还+1,不单独记录总册数
// 3. 上架后只有Quantity会变化,其余字段只在重复ID覆盖时整体替换
type Book struct {
	ID        int
	Title     string  // 书名
	Author    string  // 作者
	Genre     string  // 类型(推荐图按类型连边)
	Rating    float64 // 评分(0-5)
	Quantity  int     // 可借册数
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBook 创建新图书(工厂方法)
func NewBook(id int, title, author, genre string, rating float64, quantity int) *Book {
	now := time.Now()
	return &Book{
		ID:        id,
		Title:     title,
		Author:    author,
		Genre:     genre,
		Rating:    rating,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsAvailable 是否还有可借副本
func (b *Book) IsAvailable() bool {
	return b.Quantity > 0
}

// Validate 校验上架参数
// 业务规则:评分0-5,册数不能为负
func (b *Book) Validate() error {
	if b.Rating < 0 || b.Rating > 5 {
		return ErrInvalidRating
	}
	if b.Quantity < 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// AdjustQuantity 调整可借册数
// 不检查结果是否为负:借出前由流通服务保证Quantity>0
func (b *Book) AdjustQuantity(delta int) {
	b.Quantity += delta
	b.UpdatedAt = time.Now()
}

// Clone 返回副本,仓储对外只暴露副本
func (b *Book) Clone() *Book {
	c := *b
	return &c
}
