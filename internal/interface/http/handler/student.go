package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/internal/application/library"
	"github.com/xiebiao/library/internal/interface/http/dto"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// StudentHandler 学生HTTP处理器
type StudentHandler struct {
	session *library.Session
}

// NewStudentHandler 创建学生处理器
func NewStudentHandler(session *library.Session) *StudentHandler {
	return &StudentHandler{session: session}
}

// Register 注册学生
// @Summary      注册学生
// @Description  学号重复时默认覆盖(在借记录清空),严格模式下返回40009
// @Tags         学生
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterStudentRequest true "学生信息"
// @Success      200 {object} response.Response{data=dto.StudentResponse}
// @Router       /api/v1/students [post]
func (h *StudentHandler) Register(c *gin.Context) {
	var req dto.RegisterStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.session.RegisterStudent(c.Request.Context(), library.RegisterStudentRequest{
		ID:   *req.ID,
		Name: req.Name,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.NewStudentResponse(result))
}

// GetStudent 学生详情
// @Summary      学生详情
// @Description  包含当前在借图书编号
// @Tags         学生
// @Produce      json
// @Param        id path int true "学号"
// @Success      200 {object} response.Response{data=dto.StudentResponse}
// @Failure      200 {object} response.Response "40401学生不存在"
// @Router       /api/v1/students/{id} [get]
func (h *StudentHandler) GetStudent(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	result, err := h.session.GetStudent(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.NewStudentResponse(result))
}
