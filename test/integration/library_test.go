package integration

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBorrowReturnFlow 借书、还书对册数和在借集合的影响
func TestBorrowReturnFlow(t *testing.T) {
	base := BaseURL(t)
	bookID, studentID := UniqueID(), UniqueID()
	AddTestBook(t, base, bookID, "Integration Dune", UniqueGenre("scifi"), 1)
	RegisterTestStudent(t, base, studentID, "Alice")

	circ := map[string]interface{}{"student_id": studentID, "book_id": bookID}

	t.Run("借书成功", func(t *testing.T) {
		resp := PostJSON(t, base+"/circulation/borrow", circ)
		require.Equal(t, 0, resp.Code, resp.Message)

		b := Decode[BookData](t, GetJSON(t, fmt.Sprintf("%s/books/%d", base, bookID)))
		assert.Equal(t, 0, b.Quantity)

		s := Decode[StudentData](t, GetJSON(t, fmt.Sprintf("%s/students/%d", base, studentID)))
		assert.Equal(t, []int{bookID}, s.Borrowed)
	})

	t.Run("已全部借出", func(t *testing.T) {
		resp := PostJSON(t, base+"/circulation/borrow", circ)
		assert.Equal(t, 40001, resp.Code)
	})

	t.Run("还书成功", func(t *testing.T) {
		resp := PostJSON(t, base+"/circulation/return", circ)
		require.Equal(t, 0, resp.Code, resp.Message)

		b := Decode[BookData](t, GetJSON(t, fmt.Sprintf("%s/books/%d", base, bookID)))
		assert.Equal(t, 1, b.Quantity)
	})

	t.Run("重复还书", func(t *testing.T) {
		resp := PostJSON(t, base+"/circulation/return", circ)
		assert.Equal(t, 40006, resp.Code)
	})

	t.Run("学生不存在", func(t *testing.T) {
		resp := PostJSON(t, base+"/circulation/borrow", map[string]interface{}{
			"student_id": UniqueID(), "book_id": bookID,
		})
		assert.Equal(t, 40401, resp.Code)
	})
}

// TestRecommendations 同类图书推荐跳过已借完的图书
func TestRecommendations(t *testing.T) {
	base := BaseURL(t)
	genre := UniqueGenre("scifi")
	dune, foundation, hyperion := UniqueID(), UniqueID(), UniqueID()
	AddTestBook(t, base, dune, "Dune", genre, 2)
	AddTestBook(t, base, foundation, "Foundation", genre, 0)
	AddTestBook(t, base, hyperion, "Hyperion", genre, 1)

	resp := GetJSON(t, fmt.Sprintf("%s/books/%d/recommendations", base, dune))
	require.Equal(t, 0, resp.Code, resp.Message)

	list := Decode[BookListData](t, resp)
	require.Len(t, list.List, 1)
	assert.Equal(t, hyperion, list.List[0].ID)

	t.Run("没有同类图书", func(t *testing.T) {
		lonely := UniqueID()
		AddTestBook(t, base, lonely, "Emma", UniqueGenre("classic"), 1)

		resp := GetJSON(t, fmt.Sprintf("%s/books/%d/recommendations", base, lonely))
		assert.Equal(t, 40400, resp.Code)
	})
}

// TestSearchByTitle 书名搜索不区分大小写
func TestSearchByTitle(t *testing.T) {
	base := BaseURL(t)
	id := UniqueID()
	title := fmt.Sprintf("Integration Search %d", id)
	AddTestBook(t, base, id, title, UniqueGenre("misc"), 1)

	resp := GetJSON(t, fmt.Sprintf("%s/books?title=integration+SEARCH+%d", base, id))
	require.Equal(t, 0, resp.Code, resp.Message)

	list := Decode[BookListData](t, resp)
	require.Len(t, list.List, 1)
	assert.Equal(t, title, list.List[0].Title)
}
