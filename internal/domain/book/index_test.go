package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndex(t *testing.T) {
	idx := NewIndex()
	idx.Add("SciFi", 1)
	idx.Add("SciFi", 2)
	idx.Add("SciFi", 1)
	idx.Add("Classic", 3)

	assert.Equal(t, []int{1, 2, 1}, idx.Lookup("SciFi"))
	assert.Equal(t, 2, idx.Keys())
	assert.Empty(t, idx.Lookup("Poetry"))

	got := idx.Lookup("Classic")
	got[0] = 99
	assert.Equal(t, []int{3}, idx.Lookup("Classic"), "Lookup返回副本")
}
