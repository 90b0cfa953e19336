package circulation

import (
	"context"
	"errors"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/student"
	"github.com/xiebiao/library/pkg/saga"
)

// Service 流通领域服务(借书/还书)
// 设计说明:
// 1. 每个(学生,图书)对隐含一个状态机:可借 -> 借出 -> 归还 -> 可借
// 2. 校验全部通过后才修改状态,任何失败都不留下部分修改
// 3. 历史只在借书成功时追加,还书不影响历史
type Service interface {
	// Borrow 借书
	// 校验顺序:学生不存在 -> 图书不存在 -> 已全部借出
	Borrow(ctx context.Context, studentID, bookID int) error

	// Return 还书
	// 校验顺序:学生不存在 -> 未借阅该书
	Return(ctx context.Context, studentID, bookID int) error

	// History 借阅历史对应的图书,最新的在前,已不在目录中的ID跳过
	History(ctx context.Context) ([]*book.Book, error)

	// Events 原始借阅记录,最新的在前
	Events(ctx context.Context) []Event
}

type service struct {
	catalog book.Catalog
	roster  student.Roster
	history *HistoryLog
	now     func() time.Time
}

// NewService 创建流通服务
func NewService(catalog book.Catalog, roster student.Roster, history *HistoryLog) Service {
	return &service{
		catalog: catalog,
		roster:  roster,
		history: history,
		now:     time.Now,
	}
}

// Borrow 借书
func (s *service) Borrow(ctx context.Context, studentID, bookID int) error {
	// 1. 学生必须已注册
	if _, err := s.roster.GetStudent(ctx, studentID); err != nil {
		return err
	}

	// 2. 图书必须存在且有余量
	b, err := s.catalog.GetBook(ctx, bookID)
	if err != nil {
		return err
	}
	if !b.IsAvailable() {
		return ErrUnavailable
	}

	// 3. 扣减册数 -> 记入在借 -> 追加历史,中途失败逆序补偿
	// 校验通过后不再响应取消,避免调用方断开导致借书被回滚
	return saga.New("borrow").
		AddStep("扣减册数",
			func(ctx context.Context) error { return s.catalog.AdjustQuantity(ctx, bookID, -1) },
			func(ctx context.Context) error { return s.catalog.AdjustQuantity(ctx, bookID, 1) },
		).
		AddStep("记入在借",
			func(ctx context.Context) error { return s.roster.AddBorrowed(ctx, studentID, bookID) },
			func(ctx context.Context) error { return s.roster.RemoveBorrowed(ctx, studentID, bookID) },
		).
		AddStep("记录历史",
			func(context.Context) error {
				s.history.Append(Event{BookID: bookID, StudentID: studentID, BorrowedAt: s.now()})
				return nil
			},
			nil,
		).
		Execute(context.WithoutCancel(ctx))
}

// Return 还书
func (s *service) Return(ctx context.Context, studentID, bookID int) error {
	// 1. 学生必须已注册
	st, err := s.roster.GetStudent(ctx, studentID)
	if err != nil {
		return err
	}

	// 2. 必须在借(未知图书ID同样落在这里)
	if !st.HasBorrowed(bookID) {
		return student.ErrNotBorrowed
	}

	// 3. 移出在借集合 -> 回补册数,回补失败时恢复在借记录
	// 同样不响应取消
	return saga.New("return").
		AddStep("移出在借",
			func(ctx context.Context) error { return s.roster.RemoveBorrowed(ctx, studentID, bookID) },
			func(ctx context.Context) error { return s.roster.AddBorrowed(ctx, studentID, bookID) },
		).
		AddStep("回补册数",
			func(ctx context.Context) error { return s.catalog.AdjustQuantity(ctx, bookID, 1) },
			nil,
		).
		Execute(context.WithoutCancel(ctx))
}

// History 借阅历史
func (s *service) History(ctx context.Context) ([]*book.Book, error) {
	events := s.history.Entries()
	books := make([]*book.Book, 0, len(events))
	for _, e := range events {
		b, err := s.catalog.GetBook(ctx, e.BookID)
		if errors.Is(err, book.ErrBookNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, nil
}

// Events 原始借阅记录
func (s *service) Events(ctx context.Context) []Event {
	return s.history.Entries()
}
