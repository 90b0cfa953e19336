package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/internal/application/library"
	"github.com/xiebiao/library/internal/interface/http/dto"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	session *library.Session
}

// NewBookHandler 创建图书处理器
func NewBookHandler(session *library.Session) *BookHandler {
	return &BookHandler{session: session}
}

// AddBook 上架图书
// @Summary      上架图书
// @Description  编号重复时默认覆盖原记录,严格模式下返回40009
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        request body dto.AddBookRequest true "图书信息"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      200 {object} response.Response "40900参数错误 / 40009编号已存在"
// @Router       /api/v1/books [post]
func (h *BookHandler) AddBook(c *gin.Context) {
	// 1. 参数绑定与验证
	var req dto.AddBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	// 2. 调用应用层
	result, err := h.session.AddBook(c.Request.Context(), library.AddBookRequest{
		ID:       *req.ID,
		Title:    req.Title,
		Author:   req.Author,
		Genre:    req.Genre,
		Rating:   req.Rating,
		Quantity: req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.NewBookResponse(result))
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  不带title时列出可借图书(按编号排序);带title时按书名子串搜索,不区分大小写
// @Tags         图书
// @Produce      json
// @Param        title query string false "书名关键字,不带该参数时列出可借图书"
// @Success      200 {object} response.Response{data=dto.BookListResponse}
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var req dto.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	var (
		books []*library.BookDTO
		err   error
	)
	// 带title参数(即使为空)时搜索,空关键字匹配全部图书,包括已借完的
	if _, search := c.GetQuery("title"); search {
		books, err = h.session.SearchByTitle(c.Request.Context(), req.Title)
	} else {
		books, err = h.session.ListAvailable(c.Request.Context())
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.NewBookListResponse(books))
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书编号"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      200 {object} response.Response "40402图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	result, err := h.session.GetBook(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.NewBookResponse(result))
}

// BooksByAuthor 按作者查询
// @Summary      按作者查询
// @Tags         图书
// @Produce      json
// @Param        author path string true "作者"
// @Success      200 {object} response.Response{data=dto.BookListResponse}
// @Router       /api/v1/authors/{author}/books [get]
func (h *BookHandler) BooksByAuthor(c *gin.Context) {
	books, err := h.session.BooksByAuthor(c.Request.Context(), c.Param("author"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewBookListResponse(books))
}

// BooksByGenre 按类型查询
// @Summary      按类型查询
// @Tags         图书
// @Produce      json
// @Param        genre path string true "类型"
// @Success      200 {object} response.Response{data=dto.BookListResponse}
// @Router       /api/v1/genres/{genre}/books [get]
func (h *BookHandler) BooksByGenre(c *gin.Context) {
	books, err := h.session.BooksByGenre(c.Request.Context(), c.Param("genre"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewBookListResponse(books))
}

// bindID 解析路径中的id,失败时直接写出错误响应
func bindID(c *gin.Context) (int, bool) {
	var p dto.IDParam
	if err := c.ShouldBindUri(&p); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "无效的编号: "+c.Param("id"))
		return 0, false
	}
	return p.ID, true
}
