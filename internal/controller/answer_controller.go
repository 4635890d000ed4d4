package controller

import (
	"ai_tutor_backend/internal/service"
	"ai_tutor_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type AnswerController struct {
	Service *service.AnswerService
}

func NewAnswerController(s *service.AnswerService) *AnswerController {
	return &AnswerController{Service: s}
}

type SubmitAnswerRequest struct {
	QuestionID      uint   `json:"questionId" binding:"required"`
	UserAnswer      string `json:"userAnswer" binding:"required"`
	DeferEvaluation bool   `json:"deferEvaluation"`
}

// @Summary 提交作答
// @Description 延迟评估时返回 200 和占位评估；否则返回 202 和临时视图，真实评估在后台完成
// @Tags 作答
// @Accept json
// @Produce json
// @Param request body SubmitAnswerRequest true "作答内容"
// @Success 200 {object} util.Response
// @Success 202 {object} util.Response
// @Router /api/answers [post]
func (c *AnswerController) Submit(ctx *gin.Context) {
	var req SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	answer, persisted, err := c.Service.Submit(ctx.Request.Context(), req.QuestionID, req.UserAnswer, req.DeferEvaluation)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	if persisted {
		util.Success(ctx, answer)
		return
	}
	util.Accepted(ctx, answer)
}
