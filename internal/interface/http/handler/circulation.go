package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/internal/application/library"
	"github.com/xiebiao/library/internal/interface/http/dto"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// CirculationHandler 借还HTTP处理器
type CirculationHandler struct {
	session *library.Session
}

// NewCirculationHandler 创建借还处理器
func NewCirculationHandler(session *library.Session) *CirculationHandler {
	return &CirculationHandler{session: session}
}

// Borrow 借书
// @Summary      借书
// @Tags         借还
// @Accept       json
// @Produce      json
// @Param        request body dto.CirculationRequest true "学号和图书编号"
// @Success      200 {object} response.Response{data=dto.CirculationResponse}
// @Failure      200 {object} response.Response "40401学生不存在 / 40402图书不存在 / 40001已全部借出"
// @Router       /api/v1/circulation/borrow [post]
func (h *CirculationHandler) Borrow(c *gin.Context) {
	h.handle(c, h.session.Borrow)
}

// Return 还书
// @Summary      还书
// @Tags         借还
// @Accept       json
// @Produce      json
// @Param        request body dto.CirculationRequest true "学号和图书编号"
// @Success      200 {object} response.Response{data=dto.CirculationResponse}
// @Failure      200 {object} response.Response "40401学生不存在 / 40006未借阅此书"
// @Router       /api/v1/circulation/return [post]
func (h *CirculationHandler) Return(c *gin.Context) {
	h.handle(c, h.session.Return)
}

// handle 借书和还书共用的绑定与响应流程
// 成功后返回图书的最新状态
func (h *CirculationHandler) handle(c *gin.Context, action func(ctx context.Context, studentID, bookID int) error) {
	var req dto.CirculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	ctx := c.Request.Context()
	if err := action(ctx, *req.StudentID, *req.BookID); err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.session.GetBook(ctx, *req.BookID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.CirculationResponse{
		StudentID: *req.StudentID,
		Book:      dto.NewBookResponse(b),
	})
}

// History 借阅历史
// @Summary      借阅历史
// @Description  最新的在前;默认返回图书列表(已不在目录中的跳过),detail=true返回带学号和时间的原始记录
// @Tags         借还
// @Produce      json
// @Param        detail query bool false "是否返回原始记录"
// @Success      200 {object} response.Response{data=dto.BookListResponse}
// @Router       /api/v1/circulation/history [get]
func (h *CirculationHandler) History(c *gin.Context) {
	var req dto.HistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	if req.Detail {
		entries, err := h.session.Events(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, dto.NewHistoryListResponse(entries))
		return
	}

	books, err := h.session.History(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewBookListResponse(books))
}
