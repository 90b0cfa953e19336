package recommend

import (
	"context"
	"errors"

	"github.com/xiebiao/library/internal/domain/book"
)

// BookFinder 推荐引擎读取图书当前状态的接口,由book.Catalog满足
type BookFinder interface {
	GetBook(ctx context.Context, id int) (*book.Book, error)
}

// Engine 推荐引擎
type Engine interface {
	// Recommend 从bookID出发按广度优先遍历推荐图
	// 返回所有可达且当前可借的图书,按发现顺序排列,不包含起点本身
	Recommend(ctx context.Context, bookID int) ([]*book.Book, error)
}

type engine struct {
	graph *Graph
	books BookFinder
}

// NewEngine 创建推荐引擎
func NewEngine(graph *Graph, books BookFinder) Engine {
	return &engine{graph: graph, books: books}
}

// Recommend 广度优先遍历
// 规则:
// 1. 起点不在图中返回ErrNoRecommendations
// 2. 每个新发现的邻居都标记visited并入队,不论是否可借
// 3. 只有Quantity>0的邻居才进入结果
// 4. 图中存在但目录里找不到的ID视为不可借,仍继续遍历
func (e *engine) Recommend(ctx context.Context, bookID int) ([]*book.Book, error) {
	if !e.graph.Has(bookID) {
		return nil, ErrNoRecommendations
	}

	visited := map[int]struct{}{bookID: {}}
	queue := []int{bookID}
	result := make([]*book.Book, 0)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		neighbors, _ := e.graph.Neighbors(current)
		for _, next := range neighbors {
			if _, seen := visited[next]; seen {
				continue
			}
			visited[next] = struct{}{}
			queue = append(queue, next)

			b, err := e.books.GetBook(ctx, next)
			if errors.Is(err, book.ErrBookNotFound) {
				continue
			}
			if err != nil {
				return nil, err
			}
			if b.IsAvailable() {
				result = append(result, b)
			}
		}
	}

	return result, nil
}
