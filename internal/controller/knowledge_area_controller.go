package controller

import (
	"ai_tutor_backend/internal/service"
	"ai_tutor_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type KnowledgeAreaController struct {
	Service *service.KnowledgeService
}

func NewKnowledgeAreaController(s *service.KnowledgeService) *KnowledgeAreaController {
	return &KnowledgeAreaController{Service: s}
}

type CreateKnowledgeAreaRequest struct {
	SessionID   uint   `json:"sessionId" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Proficiency int    `json:"proficiency"`
}

// @Summary 创建知识域
// @Tags 知识域
// @Accept json
// @Produce json
// @Param request body CreateKnowledgeAreaRequest true "知识域参数"
// @Success 201 {object} util.Response
// @Router /api/knowledge-areas [post]
func (c *KnowledgeAreaController) Create(ctx *gin.Context) {
	var req CreateKnowledgeAreaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	area, err := c.Service.CreateArea(req.SessionID, req.Name, req.Proficiency)
	if err != nil {
		if errors.Is(err, util.ErrInvalidProficiency) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, area)
}

type UpdateProficiencyRequest struct {
	Proficiency *int `json:"proficiency" binding:"required"`
}

// @Summary 更新知识域掌握度
// @Tags 知识域
// @Accept json
// @Produce json
// @Param id path int true "知识域ID"
// @Param request body UpdateProficiencyRequest true "掌握度 0-100"
// @Success 200 {object} util.Response
// @Router /api/knowledge-areas/{id} [patch]
func (c *KnowledgeAreaController) UpdateProficiency(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req UpdateProficiencyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	area, err := c.Service.UpdateProficiency(id, *req.Proficiency)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidProficiency):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrKnowledgeAreaNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, area)
}
