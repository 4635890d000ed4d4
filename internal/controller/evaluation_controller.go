package controller

import (
	"ai_tutor_backend/internal/service"
	"ai_tutor_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type EvaluationController struct {
	Service *service.EvaluationService
}

func NewEvaluationController(s *service.EvaluationService) *EvaluationController {
	return &EvaluationController{Service: s}
}

// @Summary 整卷评估
// @Description 一次模型调用评估会话内全部作答；模型失败时返回合成的中性评估，接口不报错
// @Tags 评估
// @Produce json
// @Param id path int true "会话ID"
// @Success 200 {object} util.Response
// @Router /api/sessions/{id}/evaluate-all-answers [post]
func (c *EvaluationController) EvaluateAll(ctx *gin.Context) {
	sessionID := util.MustParseUint(ctx.Param("id"))

	eval, err := c.Service.EvaluateAll(ctx.Request.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrNoAnswers):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"success":    true,
		"message":    "All answers evaluated",
		"evaluation": eval,
	})
}

// @Summary 完整测试结果
// @Description 返回题目+作答+总分+反馈；AI 失败时内部已降级为兜底结果
// @Tags 评估
// @Produce json
// @Param id path int true "会话ID"
// @Success 200 {object} util.Response
// @Router /api/sessions/{id}/evaluate [post]
func (c *EvaluationController) Evaluate(ctx *gin.Context) {
	sessionID := util.MustParseUint(ctx.Param("id"))

	result, err := c.Service.EvaluateSession(ctx.Request.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrNoAnswers):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// @Summary 获取标准答案
// @Description 每道题各一次模型调用，单题失败替换为致歉文案，接口整体不失败
// @Tags 评估
// @Produce json
// @Param id path int true "会话ID"
// @Success 200 {object} util.Response
// @Router /api/sessions/{id}/correct-answers [get]
func (c *EvaluationController) CorrectAnswers(ctx *gin.Context) {
	sessionID := util.MustParseUint(ctx.Param("id"))

	answers, err := c.Service.CorrectAnswers(ctx.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"success": true,
		"answers": answers,
	})
}
