package app

import (
	"ai_tutor_backend/docs"
	"ai_tutor_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		// 会话
		api.POST("/sessions", c.session.Create)
		api.GET("/sessions/:id", c.session.Get)
		api.PATCH("/sessions/:id/stage", c.session.UpdateStage)

		// 题目与作答
		api.POST("/questions/generate", c.question.Generate)
		api.GET("/sessions/:id/questions-with-answers", c.question.QuestionsWithAnswers)
		api.POST("/answers", c.answer.Submit)

		// 评估
		api.POST("/sessions/:id/evaluate-all-answers", c.evaluation.EvaluateAll)
		api.POST("/sessions/:id/evaluate", c.evaluation.Evaluate)
		api.GET("/sessions/:id/correct-answers", c.evaluation.CorrectAnswers)

		// 教学与笔记
		api.POST("/teaching", c.teaching.Teach)
		api.POST("/teaching/stream", c.teaching.TeachStream)
		api.POST("/study-break", c.teaching.StudyBreak)
		api.POST("/notes/generate", c.notes.Generate)
		api.GET("/notes/:id", c.notes.Get)

		// 知识域
		api.POST("/knowledge-areas", c.area.Create)
		api.PATCH("/knowledge-areas/:id", c.area.UpdateProficiency)
	}
}
