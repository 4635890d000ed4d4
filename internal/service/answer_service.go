package service

import (
	"ai_tutor_backend/internal/model"
	"ai_tutor_backend/internal/util"
	"ai_tutor_backend/pkg/logger"
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// EvaluatingFeedback 快路径立即返回的占位反馈，真实评估在后台完成
	EvaluatingFeedback = "Evaluating your answer..."
	// PendingFeedback 延迟评估模式下落库的占位反馈
	PendingFeedback = "Pending evaluation at test completion"
)

// AnswerService 两段式作答提交：要么快速确认 + 后台评估，
// 要么只落占位结果、把评估整体推迟到交卷
type AnswerService struct {
	questions QuestionStore
	answers   AnswerStore
	gateway   *AIGateway
}

func NewAnswerService(questions QuestionStore, answers AnswerStore, gateway *AIGateway) *AnswerService {
	return &AnswerService{
		questions: questions,
		answers:   answers,
		gateway:   gateway,
	}
}

// Submit 提交作答。persisted 指示返回的 Answer 是否已落库：
// deferEvaluation 时立即落占位记录并返回 true；否则返回临时视图（ID 为 0
// 的哨兵值）和 false，评估在后台 goroutine 中完成后覆盖写入。
// 同一 questionId 的再次提交覆盖旧记录，不会产生重复行。
func (s *AnswerService) Submit(ctx context.Context, questionID uint, userAnswer string, deferEvaluation bool) (*model.Answer, bool, error) {
	question, err := s.questions.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, util.ErrQuestionNotFound
		}
		return nil, false, err
	}

	if deferEvaluation {
		answer := &model.Answer{
			QuestionID: questionID,
			UserAnswer: userAnswer,
			Evaluation: model.EvaluationResult{
				Correctness: 0,
				Feedback:    PendingFeedback,
				Strengths:   model.StringList{},
				Weaknesses:  model.StringList{},
			},
		}
		if err := s.answers.Upsert(answer); err != nil {
			return nil, false, err
		}
		return answer, true, nil
	}

	// 先把临时视图还给前端保持界面响应，真实评估异步进行
	temp := &model.Answer{
		QuestionID: questionID,
		UserAnswer: userAnswer,
		Evaluation: model.EvaluationResult{
			Correctness: 0,
			Feedback:    EvaluatingFeedback,
			Strengths:   model.StringList{},
			Weaknesses:  model.StringList{},
		},
	}

	go s.evaluateAndPersist(question, userAnswer)

	return temp, false, nil
}

// evaluateAndPersist 在请求返回之后独立运行，错误只记日志：
// 客户端已经拿到临时响应，真实结果靠后续重新拉取会话数据呈现
func (s *AnswerService) evaluateAndPersist(question *model.Question, userAnswer string) {
	ctx := context.Background()

	key := CacheKey("evaluate", question.Text, userAnswer)
	prompt := buildEvaluationPrompt(question.Text, userAnswer)

	raw, err := s.gateway.Generate(ctx, "evaluate_answer", key, tutorSystemPrompt, prompt)

	evaluation := fallbackEvaluation()
	if err != nil {
		logger.Log.Warn("answer evaluation call failed, storing neutral fallback",
			zap.Uint("questionId", question.ID),
			zap.Error(err))
	} else {
		evaluation = parseEvaluation(raw)
	}

	answer := &model.Answer{
		QuestionID: question.ID,
		UserAnswer: userAnswer,
		Evaluation: evaluation,
	}
	if err := s.answers.Upsert(answer); err != nil {
		logger.Log.Error("failed to persist evaluated answer",
			zap.Uint("questionId", question.ID),
			zap.Error(err))
	}
}
