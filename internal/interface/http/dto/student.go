package dto

import (
	"github.com/xiebiao/library/internal/application/library"
)

// RegisterStudentRequest HTTP注册请求
type RegisterStudentRequest struct {
	ID   *int   `json:"id" binding:"required" example:"100"`
	Name string `json:"name" binding:"required,max=100" example:"Alice"`
}

// StudentResponse HTTP学生响应
type StudentResponse struct {
	ID           int    `json:"id" example:"100"`
	Name         string `json:"name" example:"Alice"`
	Borrowed     []int  `json:"borrowed"`
	RegisteredAt string `json:"registered_at" example:"2024-01-15 10:30:00"`
}

// NewStudentResponse 应用层DTO转HTTP响应
func NewStudentResponse(s *library.StudentDTO) *StudentResponse {
	return &StudentResponse{
		ID:           s.ID,
		Name:         s.Name,
		Borrowed:     s.Borrowed,
		RegisteredAt: s.RegisteredAt,
	}
}
