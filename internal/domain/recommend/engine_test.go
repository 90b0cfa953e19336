package recommend_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/recommend"
	"github.com/xiebiao/library/internal/infrastructure/persistence/memory"
)

type fixture struct {
	catalog book.Catalog
	graph   *recommend.Graph
	engine  recommend.Engine
}

func newFixture() *fixture {
	graph := recommend.NewGraph()
	catalog := book.NewCatalog(memory.NewBookRepository(), graph)
	return &fixture{
		catalog: catalog,
		graph:   graph,
		engine:  recommend.NewEngine(graph, catalog),
	}
}

func (f *fixture) add(t *testing.T, id int, genre string, quantity int) {
	t.Helper()
	require.NoError(t, f.catalog.AddBook(context.Background(),
		book.NewBook(id, "title", "author", genre, 4, quantity)))
}

func ids(books []*book.Book) []int {
	out := make([]int, 0, len(books))
	for _, b := range books {
		out = append(out, b.ID)
	}
	return out
}

// TestRecommend_NotInGraph 测试没有同类型图书时报错
func TestRecommend_NotInGraph(t *testing.T) {
	f := newFixture()
	f.add(t, 1, "SciFi", 1)

	_, err := f.engine.Recommend(context.Background(), 1)
	assert.ErrorIs(t, err, recommend.ErrNoRecommendations)

	_, err = f.engine.Recommend(context.Background(), 404)
	assert.ErrorIs(t, err, recommend.ErrNoRecommendations)
}

// TestRecommend_ZeroQuantityNeighbor Dune/Foundation场景:邻居零册被过滤
func TestRecommend_ZeroQuantityNeighbor(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	require.NoError(t, f.catalog.AddBook(ctx, book.NewBook(1, "Dune", "Herbert", "SciFi", 4.5, 2)))
	require.NoError(t, f.catalog.AddBook(ctx, book.NewBook(2, "Foundation", "Asimov", "SciFi", 4.8, 0)))

	n, ok := f.graph.Neighbors(1)
	require.True(t, ok)
	assert.Equal(t, []int{2}, n)

	books, err := f.engine.Recommend(ctx, 1)
	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)
}

// TestRecommend_Order 测试结果按发现顺序且不含起点
func TestRecommend_Order(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.add(t, 1, "SciFi", 1)
	f.add(t, 2, "SciFi", 1)
	f.add(t, 3, "SciFi", 0)
	f.add(t, 4, "SciFi", 3)
	f.add(t, 5, "Classic", 1)

	books, err := f.engine.Recommend(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, ids(books))

	books, err = f.engine.Recommend(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 4}, ids(books), "零册起点也可以推荐")
}

// TestRecommend_MultiHop 测试多跳可达
// 推荐图只由类型连边,这里直接构造图来验证广度优先的层序
func TestRecommend_MultiHop(t *testing.T) {
	ctx := context.Background()
	graph := recommend.NewGraph()
	catalog := book.NewCatalog(memory.NewBookRepository(), recommend.NewGraph())
	for id, qty := range map[int]int{1: 1, 2: 0, 3: 1, 4: 1, 5: 1} {
		require.NoError(t, catalog.AddBook(ctx, book.NewBook(id, "t", "a", "g", 3, qty)))
	}

	// 1 - 2 - 3 - 5
	//  \
	//   4
	graph.Link(1, 2)
	graph.Link(1, 4)
	graph.Link(2, 3)
	graph.Link(3, 5)
	graph.Link(3, 1)

	engine := recommend.NewEngine(graph, catalog)
	books, err := engine.Recommend(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 3, 5}, ids(books), "2不可借但仍作为中转节点")
}

// TestRecommend_UnknownNeighbor 测试目录中不存在的邻居视为不可借并继续遍历
func TestRecommend_UnknownNeighbor(t *testing.T) {
	ctx := context.Background()
	graph := recommend.NewGraph()
	catalog := book.NewCatalog(memory.NewBookRepository(), recommend.NewGraph())
	require.NoError(t, catalog.AddBook(ctx, book.NewBook(1, "t", "a", "g", 3, 1)))
	require.NoError(t, catalog.AddBook(ctx, book.NewBook(3, "t", "a", "g", 3, 1)))

	graph.Link(1, 2)
	graph.Link(2, 3)

	books, err := recommend.NewEngine(graph, catalog).Recommend(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, ids(books))
}

// TestGraph 测试邻接表
func TestGraph(t *testing.T) {
	g := recommend.NewGraph()
	assert.False(t, g.Has(1))

	_, ok := g.Neighbors(1)
	assert.False(t, ok)

	g.Link(1, 2)
	g.Link(1, 3)
	assert.Equal(t, 3, g.Len())

	n, ok := g.Neighbors(1)
	require.True(t, ok)
	assert.Equal(t, []int{2, 3}, n)

	n[0] = 99
	again, _ := g.Neighbors(1)
	assert.Equal(t, []int{2, 3}, again, "Neighbors返回副本")
}
