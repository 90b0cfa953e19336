package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/internal/application/library"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/pkg/response"
)

// RecommendHandler 推荐HTTP处理器
type RecommendHandler struct {
	session *library.Session
}

// NewRecommendHandler 创建推荐处理器
func NewRecommendHandler(session *library.Session) *RecommendHandler {
	return &RecommendHandler{session: session}
}

// Recommend 同类推荐
// @Summary      同类推荐
// @Description  从该书出发按类型关联做广度优先遍历,返回所有可借的关联图书(按发现顺序,不含自身)
// @Tags         推荐
// @Produce      json
// @Param        id path int true "图书编号"
// @Success      200 {object} response.Response{data=dto.BookListResponse}
// @Failure      200 {object} response.Response "40400没有可推荐的图书"
// @Router       /api/v1/books/{id}/recommendations [get]
func (h *RecommendHandler) Recommend(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	books, err := h.session.Recommend(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.NewBookListResponse(books))
}
