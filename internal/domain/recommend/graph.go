package recommend

// Graph 推荐图:同类型图书之间的无向邻接表
// 设计说明:
// 1. 只在上架时由Catalog通过Link连边,不会删边
// 2. 图书只有在至少有一个同类型邻居时才会出现在图中
// 3. 覆盖上架会重复连边,邻接列表中可能出现重复ID,遍历时由visited去重
type Graph struct {
	adj map[int][]int
}

// NewGraph 创建空图
func NewGraph() *Graph {
	return &Graph{adj: make(map[int][]int)}
}

// Link 连接a、b两个节点(双向)
func (g *Graph) Link(a, b int) {
	g.adj[a] = append(g.adj[a], b)
	g.adj[b] = append(g.adj[b], a)
}

// Neighbors 返回节点的邻居副本,ok表示节点是否在图中
func (g *Graph) Neighbors(id int) ([]int, bool) {
	ids, ok := g.adj[id]
	if !ok {
		return nil, false
	}
	out := make([]int, len(ids))
	copy(out, ids)
	return out, true
}

// Has 节点是否在图中
func (g *Graph) Has(id int) bool {
	_, ok := g.adj[id]
	return ok
}

// Len 图中节点数
func (g *Graph) Len() int {
	return len(g.adj)
}
