package library

import (
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/circulation"
	"github.com/xiebiao/library/internal/domain/student"
)

const timeLayout = "2006-01-02 15:04:05"

// AddBookRequest 上架请求DTO
type AddBookRequest struct {
	ID       int
	Title    string
	Author   string
	Genre    string
	Rating   float64
	Quantity int
}

// RegisterStudentRequest 注册请求DTO
type RegisterStudentRequest struct {
	ID   int
	Name string
}

// BookDTO 图书响应DTO
type BookDTO struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	Genre    string  `json:"genre"`
	Rating   float64 `json:"rating"`
	Quantity int     `json:"quantity"`
}

// StudentDTO 学生响应DTO
type StudentDTO struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Borrowed     []int  `json:"borrowed"`
	RegisteredAt string `json:"registered_at"`
}

// HistoryEntryDTO 借阅记录DTO
// Title为空表示该图书已不在目录中
type HistoryEntryDTO struct {
	BookID     int    `json:"book_id"`
	Title      string `json:"title,omitempty"`
	StudentID  int    `json:"student_id"`
	BorrowedAt string `json:"borrowed_at"`
}

func toBookDTO(b *book.Book) *BookDTO {
	return &BookDTO{
		ID:       b.ID,
		Title:    b.Title,
		Author:   b.Author,
		Genre:    b.Genre,
		Rating:   b.Rating,
		Quantity: b.Quantity,
	}
}

func toBookDTOs(books []*book.Book) []*BookDTO {
	out := make([]*BookDTO, 0, len(books))
	for _, b := range books {
		out = append(out, toBookDTO(b))
	}
	return out
}

func toStudentDTO(s *student.Student) *StudentDTO {
	borrowed := make([]int, len(s.Borrowed))
	copy(borrowed, s.Borrowed)
	return &StudentDTO{
		ID:           s.ID,
		Name:         s.Name,
		Borrowed:     borrowed,
		RegisteredAt: s.RegisteredAt.Format(timeLayout),
	}
}

func toHistoryEntryDTO(e circulation.Event, title string) *HistoryEntryDTO {
	return &HistoryEntryDTO{
		BookID:     e.BookID,
		Title:      title,
		StudentID:  e.StudentID,
		BorrowedAt: e.BorrowedAt.Format(timeLayout),
	}
}

// CirculationEvent 借还事件(发布到消息队列)
type CirculationEvent struct {
	Action     string    `json:"action"` // borrowed | returned
	StudentID  int       `json:"student_id"`
	BookID     int       `json:"book_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// 事件动作
const (
	ActionBorrowed = "borrowed"
	ActionReturned = "returned"
)
