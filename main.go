// @title AI Tutor 后端 API
// @version 1.0
// @description AI 辅导学习应用的后端服务：出题、评估、教学对话与学习笔记。

// @host localhost:8080
// @BasePath /api

package main

import (
	"ai_tutor_backend/internal/app"
	"ai_tutor_backend/internal/config"
	"ai_tutor_backend/pkg/configwatcher"
	"ai_tutor_backend/pkg/logger"
	"log"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	go configwatcher.WatchConfig("configs/config.yaml", application.ApplyConfig)

	application.Run()
}
