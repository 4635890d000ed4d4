package controller

import (
	"ai_tutor_backend/internal/service"
	"ai_tutor_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	Service *service.QuestionService
}

func NewQuestionController(s *service.QuestionService) *QuestionController {
	return &QuestionController{Service: s}
}

type GenerateQuestionsRequest struct {
	SessionID uint   `json:"sessionId" binding:"required"`
	Topic     string `json:"topic" binding:"required"`
}

// @Summary 生成测验题目
// @Description topic 尾部可附加 [Education: <level>, Difficulty: <level>] 元数据
// @Tags 题目
// @Accept json
// @Produce json
// @Param request body GenerateQuestionsRequest true "生成参数"
// @Success 200 {object} util.Response
// @Router /api/questions/generate [post]
func (c *QuestionController) Generate(ctx *gin.Context) {
	var req GenerateQuestionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	questions, err := c.Service.Generate(ctx.Request.Context(), req.SessionID, req.Topic)
	if err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"questions": questions})
}

// @Summary 获取会话的题目及作答
// @Tags 题目
// @Produce json
// @Param id path int true "会话ID"
// @Success 200 {object} util.Response
// @Router /api/sessions/{id}/questions-with-answers [get]
func (c *QuestionController) QuestionsWithAnswers(ctx *gin.Context) {
	sessionID := util.MustParseUint(ctx.Param("id"))

	qwa, err := c.Service.QuestionsWithAnswers(sessionID)
	if err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"questionsWithAnswers": qwa})
}
