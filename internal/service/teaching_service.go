package service

import (
	"ai_tutor_backend/pkg/logger"
	"context"
	"fmt"

	"go.uber.org/zap"
)

const teachingUnavailable = "I'm having trouble reaching the tutoring service right now. " +
	"Please try again in a moment — your question deserves a proper answer."

// TeachingResponse 讲解正文和可选的追问
type TeachingResponse struct {
	Text              string   `json:"text"`
	FollowUpQuestions []string `json:"followUpQuestions,omitempty"`
}

// TeachingService 教学对话与休息建议。两者都属于交互流程，
// AI 失败一律转成友好的占位内容而不是错误。
type TeachingService struct {
	gateway *AIGateway
}

func NewTeachingService(gateway *AIGateway) *TeachingService {
	return &TeachingService{gateway: gateway}
}

// Teach 同一 (topic, question) 在 TTL 内只会真正调用一次模型
func (s *TeachingService) Teach(ctx context.Context, topic, question string) *TeachingResponse {
	key := CacheKey("teach", topic, question)
	prompt := buildTeachingPrompt(topic, question)

	raw, err := s.gateway.Generate(ctx, "teach", key, tutorSystemPrompt, prompt)
	if err != nil {
		logger.Log.Warn("teaching call failed, returning placeholder",
			zap.String("topic", topic),
			zap.Error(err))
		return &TeachingResponse{Text: teachingUnavailable}
	}

	text, followUps := parseTeachingReply(raw)
	return &TeachingResponse{Text: text, FollowUpQuestions: followUps}
}

// TeachStream 流式教学，直接透传模型输出，不经过缓存
func (s *TeachingService) TeachStream(ctx context.Context, topic, question string) (<-chan string, <-chan error) {
	return s.gateway.Stream(ctx, "teach_stream", tutorSystemPrompt, buildTeachingPrompt(topic, question))
}

// StudyBreak 生成休息建议，失败时给固定的轻量活动
func (s *TeachingService) StudyBreak(ctx context.Context, sessionMinutes int, topic, lastBreakType string) StudyBreakRecommendation {
	key := CacheKey("study-break", fmt.Sprint(sessionMinutes), topic, lastBreakType)
	prompt := buildStudyBreakPrompt(sessionMinutes, topic, lastBreakType)

	raw, err := s.gateway.Generate(ctx, "study_break", key, tutorSystemPrompt, prompt)
	if err != nil {
		logger.Log.Warn("study break call failed, returning default recommendation", zap.Error(err))
		raw = ""
	}
	return parseStudyBreak(raw)
}
