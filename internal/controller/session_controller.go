package controller

import (
	"ai_tutor_backend/internal/service"
	"ai_tutor_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	Service *service.SessionService
}

func NewSessionController(s *service.SessionService) *SessionController {
	return &SessionController{Service: s}
}

type CreateSessionRequest struct {
	UserID uint   `json:"userId" binding:"required"`
	Topic  string `json:"topic" binding:"required"`
	Stage  string `json:"stage"`
}

// @Summary 创建学习会话
// @Tags 会话
// @Accept json
// @Produce json
// @Param request body CreateSessionRequest true "会话参数"
// @Success 201 {object} util.Response
// @Router /api/sessions [post]
func (c *SessionController) Create(ctx *gin.Context) {
	var req CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.Service.Create(req.UserID, req.Topic, req.Stage)
	if err != nil {
		if errors.Is(err, util.ErrInvalidStage) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, session)
}

// @Summary 获取会话及其知识域
// @Tags 会话
// @Produce json
// @Param id path int true "会话ID"
// @Success 200 {object} util.Response
// @Router /api/sessions/{id} [get]
func (c *SessionController) Get(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	detail, err := c.Service.Get(id)
	if err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, detail)
}

type UpdateStageRequest struct {
	Stage string `json:"stage" binding:"required"`
}

// @Summary 更新会话阶段
// @Tags 会话
// @Accept json
// @Produce json
// @Param id path int true "会话ID"
// @Param request body UpdateStageRequest true "目标阶段"
// @Success 200 {object} util.Response
// @Router /api/sessions/{id}/stage [patch]
func (c *SessionController) UpdateStage(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req UpdateStageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.Service.UpdateStage(id, req.Stage)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidStage):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrSessionNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, session)
}
