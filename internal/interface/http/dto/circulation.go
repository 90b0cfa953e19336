package dto

import (
	"github.com/xiebiao/library/internal/application/library"
)

// CirculationRequest HTTP借书/还书请求
type CirculationRequest struct {
	StudentID *int `json:"student_id" binding:"required" example:"100"`
	BookID    *int `json:"book_id" binding:"required" example:"1"`
}

// CirculationResponse HTTP借书/还书响应
type CirculationResponse struct {
	StudentID int           `json:"student_id" example:"100"`
	Book      *BookResponse `json:"book"`
}

// HistoryRequest HTTP借阅历史请求
type HistoryRequest struct {
	Detail bool `form:"detail" example:"false"` // true时返回带学号和时间的原始记录
}

// HistoryEntryResponse 借阅记录
type HistoryEntryResponse struct {
	BookID     int    `json:"book_id" example:"1"`
	Title      string `json:"title,omitempty" example:"Dune"`
	StudentID  int    `json:"student_id" example:"100"`
	BorrowedAt string `json:"borrowed_at" example:"2024-01-15 10:30:00"`
}

// HistoryListResponse 借阅记录列表
type HistoryListResponse struct {
	List  []*HistoryEntryResponse `json:"list"`
	Total int                     `json:"total" example:"1"`
}

// NewHistoryListResponse 应用层DTO转HTTP响应
func NewHistoryListResponse(entries []*library.HistoryEntryDTO) *HistoryListResponse {
	list := make([]*HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		list = append(list, &HistoryEntryResponse{
			BookID:     e.BookID,
			Title:      e.Title,
			StudentID:  e.StudentID,
			BorrowedAt: e.BorrowedAt,
		})
	}
	return &HistoryListResponse{List: list, Total: len(list)}
}
