package controller

import (
	"ai_tutor_backend/internal/service"
	"ai_tutor_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type NotesController struct {
	Service *service.NotesService
}

func NewNotesController(s *service.NotesService) *NotesController {
	return &NotesController{Service: s}
}

type GenerateNotesRequest struct {
	Topic     string   `json:"topic" binding:"required"`
	WeakAreas []string `json:"weakAreas"`
}

// @Summary 生成学习笔记
// @Description Markdown 笔记，AI 失败时保存占位文案
// @Tags 笔记
// @Accept json
// @Produce json
// @Param request body GenerateNotesRequest true "主题和薄弱知识域"
// @Success 200 {object} util.Response
// @Router /api/notes/generate [post]
func (c *NotesController) Generate(ctx *gin.Context) {
	var req GenerateNotesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	note, err := c.Service.Generate(ctx.Request.Context(), req.Topic, req.WeakAreas)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"notes": note})
}

// @Summary 获取已保存的笔记
// @Tags 笔记
// @Produce json
// @Param id path int true "笔记ID"
// @Success 200 {object} util.Response
// @Router /api/notes/{id} [get]
func (c *NotesController) Get(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	note, err := c.Service.Get(id)
	if err != nil {
		if errors.Is(err, util.ErrNoteNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, note)
}
