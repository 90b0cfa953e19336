package book

// Index 属性索引(作者→图书ID、类型→图书ID)
// 每个key下的ID按上架顺序排列;只追加,从不重建。
// 覆盖同一ID时旧key下的条目不会被清理,同一key下也可能出现重复ID。
type Index struct {
	entries map[string][]int
}

// NewIndex 创建空索引
func NewIndex() *Index {
	return &Index{entries: make(map[string][]int)}
}

// Add 在key下追加一个图书ID
func (idx *Index) Add(key string, id int) {
	idx.entries[key] = append(idx.entries[key], id)
}

// Lookup 返回key下的ID副本
func (idx *Index) Lookup(key string) []int {
	ids := idx.entries[key]
	out := make([]int, len(ids))
	copy(out, ids)
	return out
}

// Keys 索引中key的数量
func (idx *Index) Keys() int {
	return len(idx.entries)
}
