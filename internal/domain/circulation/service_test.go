package circulation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/circulation"
	"github.com/xiebiao/library/internal/domain/recommend"
	"github.com/xiebiao/library/internal/domain/student"
	"github.com/xiebiao/library/internal/infrastructure/persistence/memory"
)

type fixture struct {
	catalog book.Catalog
	roster  student.Roster
	history *circulation.HistoryLog
	svc     circulation.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	catalog := book.NewCatalog(memory.NewBookRepository(), recommend.NewGraph())
	roster := student.NewRoster(memory.NewStudentRepository())
	history := circulation.NewHistoryLog()

	require.NoError(t, catalog.AddBook(ctx, book.NewBook(1, "Dune", "Herbert", "SciFi", 4.5, 2)))
	require.NoError(t, catalog.AddBook(ctx, book.NewBook(2, "Foundation", "Asimov", "SciFi", 4.8, 0)))
	require.NoError(t, catalog.AddBook(ctx, book.NewBook(3, "Emma", "Austen", "Classic", 4.0, 1)))
	_, err := roster.Register(ctx, 100, "Alice")
	require.NoError(t, err)

	return &fixture{
		catalog: catalog,
		roster:  roster,
		history: history,
		svc:     circulation.NewService(catalog, roster, history),
	}
}

func (f *fixture) quantity(t *testing.T, id int) int {
	t.Helper()
	b, err := f.catalog.GetBook(context.Background(), id)
	require.NoError(t, err)
	return b.Quantity
}

func (f *fixture) borrowed(t *testing.T, id int) []int {
	t.Helper()
	s, err := f.roster.GetStudent(context.Background(), id)
	require.NoError(t, err)
	return s.Borrowed
}

// TestBorrowReturn Alice场景:借出再归还恢复原状
func TestBorrowReturn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.svc.Borrow(ctx, 100, 1))
	assert.Equal(t, 1, f.quantity(t, 1))
	assert.Equal(t, []int{1}, f.borrowed(t, 100))

	history, err := f.svc.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 1, history[0].ID)

	require.NoError(t, f.svc.Return(ctx, 100, 1))
	assert.Equal(t, 2, f.quantity(t, 1))
	assert.Empty(t, f.borrowed(t, 100))
	assert.Equal(t, 1, f.history.Len(), "还书不影响历史")
}

// TestBorrow_Errors 测试借书失败的校验顺序,且失败不修改状态
func TestBorrow_Errors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	t.Run("学生未注册", func(t *testing.T) {
		err := f.svc.Borrow(ctx, 999, 1)
		assert.ErrorIs(t, err, student.ErrStudentNotFound)
		assert.Equal(t, 2, f.quantity(t, 1))
		assert.Equal(t, 0, f.history.Len())
	})

	t.Run("学生与图书都不存在时先报学生", func(t *testing.T) {
		err := f.svc.Borrow(ctx, 999, 404)
		assert.ErrorIs(t, err, student.ErrStudentNotFound)
	})

	t.Run("图书不存在", func(t *testing.T) {
		err := f.svc.Borrow(ctx, 100, 404)
		assert.ErrorIs(t, err, book.ErrBookNotFound)
		assert.Empty(t, f.borrowed(t, 100))
	})

	t.Run("已全部借出", func(t *testing.T) {
		err := f.svc.Borrow(ctx, 100, 2)
		assert.ErrorIs(t, err, circulation.ErrUnavailable)
		assert.Equal(t, 0, f.quantity(t, 2))
		assert.Empty(t, f.borrowed(t, 100))
		assert.Equal(t, 0, f.history.Len())
	})
}

// TestBorrow_LastCopy 测试最后一册借出后不可再借,归还后恢复
func TestBorrow_LastCopy(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.svc.Borrow(ctx, 100, 3))
	assert.Equal(t, 0, f.quantity(t, 3))
	assert.ErrorIs(t, f.svc.Borrow(ctx, 100, 3), circulation.ErrUnavailable)

	available, err := f.catalog.ListAvailable(ctx)
	require.NoError(t, err)
	assert.NotContains(t, availableIDs(available), 3)

	t.Run("还书后重新可借", func(t *testing.T) {
		require.NoError(t, f.svc.Return(ctx, 100, 3))
		assert.Equal(t, 1, f.quantity(t, 3))

		available, err := f.catalog.ListAvailable(ctx)
		require.NoError(t, err)
		assert.Contains(t, availableIDs(available), 3)
	})
}

func availableIDs(books []*book.Book) []int {
	ids := make([]int, 0, len(books))
	for _, b := range books {
		ids = append(ids, b.ID)
	}
	return ids
}

// TestBorrow_SameBookTwice 测试同一本书可以借两次
func TestBorrow_SameBookTwice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.svc.Borrow(ctx, 100, 1))
	require.NoError(t, f.svc.Borrow(ctx, 100, 1))
	assert.Equal(t, 0, f.quantity(t, 1))
	assert.Equal(t, []int{1, 1}, f.borrowed(t, 100))

	require.NoError(t, f.svc.Return(ctx, 100, 1))
	assert.Equal(t, []int{1}, f.borrowed(t, 100))
	assert.Equal(t, 1, f.quantity(t, 1))
}

// TestReturn_Errors 测试还书失败
func TestReturn_Errors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	t.Run("学生未注册", func(t *testing.T) {
		assert.ErrorIs(t, f.svc.Return(ctx, 999, 1), student.ErrStudentNotFound)
	})

	t.Run("未借阅", func(t *testing.T) {
		assert.ErrorIs(t, f.svc.Return(ctx, 100, 1), student.ErrNotBorrowed)
		assert.Equal(t, 2, f.quantity(t, 1))
	})

	t.Run("未知图书ID", func(t *testing.T) {
		assert.ErrorIs(t, f.svc.Return(ctx, 100, 404), student.ErrNotBorrowed)
	})
}

// TestHistory_Order 测试历史最新的在前
func TestHistory_Order(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	empty, err := f.svc.History(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, f.catalog.AddBook(ctx, book.NewBook(2, "Foundation", "Asimov", "SciFi", 4.8, 1)))
	require.NoError(t, f.svc.Borrow(ctx, 100, 1))
	require.NoError(t, f.svc.Borrow(ctx, 100, 2))
	require.NoError(t, f.svc.Borrow(ctx, 100, 3))
	require.NoError(t, f.svc.Return(ctx, 100, 2))

	books, err := f.svc.History(ctx)
	require.NoError(t, err)
	got := make([]int, 0, len(books))
	for _, b := range books {
		got = append(got, b.ID)
	}
	assert.Equal(t, []int{3, 2, 1}, got)

	events := f.svc.Events(ctx)
	require.Len(t, events, 3)
	assert.Equal(t, 3, events[0].BookID)
	assert.Equal(t, 100, events[0].StudentID)
	assert.False(t, events[0].BorrowedAt.Before(events[2].BorrowedAt))
}

// TestHistoryLog 测试历史日志
func TestHistoryLog(t *testing.T) {
	h := circulation.NewHistoryLog()
	assert.Empty(t, h.Entries())

	h.Append(circulation.Event{BookID: 1})
	h.Append(circulation.Event{BookID: 2})

	entries := h.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, 2, entries[0].BookID)
	assert.Equal(t, 1, entries[1].BookID)
	assert.Equal(t, 2, h.Len())
}

// flakyRoster AddBorrowed总是失败
type flakyRoster struct {
	student.Roster
	err error
}

func (r flakyRoster) AddBorrowed(context.Context, int, int) error { return r.err }

// TestBorrow_CompensatesQuantity 记入在借失败时回补册数且不写历史
func TestBorrow_CompensatesQuantity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	boom := errors.New("roster unavailable")

	svc := circulation.NewService(f.catalog, flakyRoster{Roster: f.roster, err: boom}, f.history)

	err := svc.Borrow(ctx, 100, 1)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, f.quantity(t, 1))
	assert.Empty(t, f.borrowed(t, 100))
	assert.Equal(t, 0, f.history.Len())
}

// TestBorrowReturn_CanceledContext 已取消的ctx不影响借还结果
func TestBorrowReturn_CanceledContext(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, f.svc.Borrow(ctx, 100, 1))
	assert.Equal(t, 1, f.quantity(t, 1))
	assert.Equal(t, []int{1}, f.borrowed(t, 100))
	assert.Equal(t, 1, f.history.Len())

	require.NoError(t, f.svc.Return(ctx, 100, 1))
	assert.Equal(t, 2, f.quantity(t, 1))
	assert.Empty(t, f.borrowed(t, 100))
}
