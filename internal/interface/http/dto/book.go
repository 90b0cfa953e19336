package dto

import (
	"github.com/xiebiao/library/internal/application/library"
)

// AddBookRequest HTTP上架请求
// id用指针区分"未传"和0
type AddBookRequest struct {
	ID       *int    `json:"id" binding:"required" example:"1"`
	Title    string  `json:"title" binding:"required,max=200" example:"Dune"`
	Author   string  `json:"author" binding:"required,max=100" example:"Frank Herbert"`
	Genre    string  `json:"genre" binding:"required,max=50" example:"SciFi"`
	Rating   float64 `json:"rating" binding:"min=0,max=5" example:"4.5"`
	Quantity int     `json:"quantity" binding:"min=0" example:"2"`
}

// ListBooksRequest HTTP图书列表请求
// title为空时列出可借图书,否则按书名搜索(包含零册图书)
type ListBooksRequest struct {
	Title string `form:"title" binding:"omitempty,max=200" example:"dune"`
}

// IDParam 路径中的数字ID
type IDParam struct {
	ID int `uri:"id"`
}

// BookResponse HTTP图书响应
type BookResponse struct {
	ID        int     `json:"id" example:"1"`
	Title     string  `json:"title" example:"Dune"`
	Author    string  `json:"author" example:"Frank Herbert"`
	Genre     string  `json:"genre" example:"SciFi"`
	Rating    float64 `json:"rating" example:"4.5"`
	Quantity  int     `json:"quantity" example:"2"`
	Available bool    `json:"available" example:"true"`
}

// BookListResponse HTTP图书列表响应
type BookListResponse struct {
	List  []*BookResponse `json:"list"`
	Total int             `json:"total" example:"1"`
}

// NewBookResponse 应用层DTO转HTTP响应
func NewBookResponse(b *library.BookDTO) *BookResponse {
	return &BookResponse{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Genre:     b.Genre,
		Rating:    b.Rating,
		Quantity:  b.Quantity,
		Available: b.Quantity > 0,
	}
}

// NewBookListResponse 列表响应,空列表返回[]而不是null
func NewBookListResponse(books []*library.BookDTO) *BookListResponse {
	list := make([]*BookResponse, 0, len(books))
	for _, b := range books {
		list = append(list, NewBookResponse(b))
	}
	return &BookListResponse{List: list, Total: len(list)}
}
