package controller

import (
	"ai_tutor_backend/internal/service"
	"ai_tutor_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TeachingController struct {
	Service *service.TeachingService
}

func NewTeachingController(s *service.TeachingService) *TeachingController {
	return &TeachingController{Service: s}
}

type TeachingRequest struct {
	Topic    string `json:"topic" binding:"required"`
	Question string `json:"question" binding:"required"`
}

// @Summary 教学讲解
// @Description AI 失败时返回友好占位文案，不报错
// @Tags 教学
// @Accept json
// @Produce json
// @Param request body TeachingRequest true "主题和问题"
// @Success 200 {object} util.Response
// @Router /api/teaching [post]
func (c *TeachingController) Teach(ctx *gin.Context) {
	var req TeachingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp := c.Service.Teach(ctx.Request.Context(), req.Topic, req.Question)
	util.Success(ctx, resp)
}

// @Summary 流式教学讲解
// @Description SSE 通道实时推送模型输出
// @Tags 教学
// @Accept json
// @Produce text/event-stream
// @Param request body TeachingRequest true "主题和问题"
// @Router /api/teaching/stream [post]
func (c *TeachingController) TeachStream(ctx *gin.Context) {
	var req TeachingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	stream, errChan := c.Service.TeachStream(ctx.Request.Context(), req.Topic, req.Question)

	ctx.Header("Content-Type", "text/event-stream")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")
	ctx.Header("Transfer-Encoding", "chunked")

	for content := range stream {
		ctx.SSEvent("message", content)
		ctx.Writer.Flush()
	}

	if err := <-errChan; err != nil {
		ctx.SSEvent("error", err.Error())
		ctx.Writer.Flush()
	}

	ctx.SSEvent("end", "done")
	ctx.Writer.Flush()
}

type StudyBreakRequest struct {
	SessionTime   int    `json:"sessionTime" binding:"required"`
	Topic         string `json:"topic" binding:"required"`
	LastBreakType string `json:"lastBreakType"`
}

// @Summary 休息建议
// @Tags 教学
// @Accept json
// @Produce json
// @Param request body StudyBreakRequest true "学习时长和主题"
// @Success 200 {object} util.Response
// @Router /api/study-break [post]
func (c *TeachingController) StudyBreak(ctx *gin.Context) {
	var req StudyBreakRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	recommendation := c.Service.StudyBreak(ctx.Request.Context(), req.SessionTime, req.Topic, req.LastBreakType)
	util.Success(ctx, gin.H{
		"success":        true,
		"recommendation": recommendation,
	})
}
