package service

import (
	"ai_tutor_backend/internal/model"
	"ai_tutor_backend/internal/util"
	"ai_tutor_backend/pkg/logger"
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EvaluationService 交卷后的整体评估。对终端用户永不硬失败：
// 只要会话里有至少一份作答，评估要么来自模型，要么是合成的中性兜底。
type EvaluationService struct {
	sessions    SessionStore
	questions   QuestionStore
	answers     AnswerStore
	evaluations EvaluationStore
	knowledge   *KnowledgeService
	gateway     *AIGateway
}

func NewEvaluationService(
	sessions SessionStore,
	questions QuestionStore,
	answers AnswerStore,
	evaluations EvaluationStore,
	knowledge *KnowledgeService,
	gateway *AIGateway,
) *EvaluationService {
	return &EvaluationService{
		sessions:    sessions,
		questions:   questions,
		answers:     answers,
		evaluations: evaluations,
		knowledge:   knowledge,
		gateway:     gateway,
	}
}

// EvaluateAll 一次性评估会话内的全部作答，并把会话级结果落为独立实体
func (s *EvaluationService) EvaluateAll(ctx context.Context, sessionID uint) (*model.SessionEvaluation, error) {
	session, err := s.sessions.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}

	questions, err := s.questions.FindBySessionID(sessionID)
	if err != nil {
		return nil, err
	}
	answers, err := s.answers.FindBySessionID(sessionID)
	if err != nil {
		return nil, err
	}

	answerByQuestion := make(map[uint]*model.Answer, len(answers))
	for i := range answers {
		answerByQuestion[answers[i].QuestionID] = &answers[i]
	}

	var answered []model.Question
	var pairs []QuestionAnswerPair
	for _, q := range questions {
		if a, ok := answerByQuestion[q.ID]; ok {
			answered = append(answered, q)
			pairs = append(pairs, QuestionAnswerPair{Question: q.Text, Answer: a.UserAnswer})
		}
	}
	if len(answered) == 0 {
		return nil, util.ErrNoAnswers
	}

	key := CacheKey("batch-evaluate", fmt.Sprint(sessionID), answersFingerprint(answered, answerByQuestion))
	prompt := buildBatchEvaluationPrompt(session.Topic, pairs)

	var batch BatchEvaluation
	ok := false
	raw, err := s.gateway.Generate(ctx, "evaluate_batch", key, tutorSystemPrompt, prompt)
	if err != nil {
		logger.Log.Warn("batch evaluation call failed, synthesizing neutral result",
			zap.Uint("sessionId", sessionID),
			zap.Error(err))
	} else {
		batch, ok = parseBatchEvaluation(raw)
		if !ok {
			logger.Log.Warn("batch evaluation reply unparseable, synthesizing neutral result",
				zap.Uint("sessionId", sessionID))
		}
	}
	if !ok {
		batch = s.synthesizeBatch(session.Topic, answers)
	}

	s.applyIndividualResults(answered, answerByQuestion, batch)

	eval := &model.SessionEvaluation{
		SessionID:        sessionID,
		TotalScore:       util.Clamp(batch.TotalScore),
		Feedback:         batch.Feedback,
		Strengths:        model.StringList(batch.Strengths),
		Weaknesses:       model.StringList(batch.Weaknesses),
		RecommendedAreas: model.StringList(batch.RecommendedAreas),
	}
	if err := s.evaluations.Upsert(eval); err != nil {
		logger.Log.Error("failed to persist session evaluation", zap.Uint("sessionId", sessionID), zap.Error(err))
	}

	if _, err := s.knowledge.DeriveFromQuestions(sessionID, session.Topic, questions, eval.TotalScore); err != nil {
		logger.Log.Error("failed to derive knowledge areas", zap.Uint("sessionId", sessionID), zap.Error(err))
	}

	return eval, nil
}

// applyIndividualResults 扇出更新每道已答题：模型给了单题分就用单题分，
// 否则共用总分并提示查看整体评估。单条写失败不阻塞其余更新，仅记日志。
func (s *EvaluationService) applyIndividualResults(answered []model.Question, answerByQuestion map[uint]*model.Answer, batch BatchEvaluation) {
	var wg sync.WaitGroup
	for i, q := range answered {
		score := batch.TotalScore
		feedback := "See overall evaluation for details"
		if i < len(batch.IndividualScores) {
			score = util.Clamp(int(batch.IndividualScores[i]))
			feedback = fmt.Sprintf("Scored %d/100 in the overall test evaluation", score)
		}

		answer := answerByQuestion[q.ID]
		updated := &model.Answer{
			QuestionID: q.ID,
			UserAnswer: answer.UserAnswer,
			Evaluation: model.EvaluationResult{
				Correctness: util.Clamp(score),
				Feedback:    feedback,
				Strengths:   model.StringList(batch.Strengths),
				Weaknesses:  model.StringList(batch.Weaknesses),
			},
		}

		wg.Add(1)
		go func(a *model.Answer) {
			defer wg.Done()
			if err := s.answers.Upsert(a); err != nil {
				logger.Log.Error("failed to update answer after batch evaluation",
					zap.Uint("questionId", a.QuestionID),
					zap.Error(err))
			}
		}(updated)
	}
	wg.Wait()
}

// synthesizeBatch 模型不可用时的合成评估：有历史单题分取均值，否则给中性 60 分
func (s *EvaluationService) synthesizeBatch(topic string, answers []model.Answer) BatchEvaluation {
	total := 0
	count := 0
	for _, a := range answers {
		if a.Evaluation.Feedback != PendingFeedback && a.Evaluation.Feedback != EvaluatingFeedback {
			total += a.Evaluation.Correctness
			count++
		}
	}

	score := 60
	if count > 0 {
		score = total / count
	}

	return BatchEvaluation{
		TotalScore: util.Clamp(score),
		Feedback:   "Your test has been received. Detailed AI feedback is temporarily unavailable.",
		Strengths:  []string{"Completed the full test"},
		Weaknesses: []string{"Detailed evaluation could not be generated"},
		RecommendedAreas: []string{
			fmt.Sprintf("Review core concepts of %s", topic),
		},
	}
}

// answersFingerprint 作答集合的指纹，任何一题的内容变化都会改变缓存键
func answersFingerprint(answered []model.Question, answerByQuestion map[uint]*model.Answer) string {
	parts := make([]string, 0, len(answered))
	for _, q := range answered {
		a := answerByQuestion[q.ID]
		parts = append(parts, fmt.Sprintf("%d:%s", q.ID, a.UserAnswer))
	}
	return CacheKey(parts...)
}

// TestResult 整卷评估的完整视图
type TestResult struct {
	SessionID        uint             `json:"sessionId"`
	Topic            string           `json:"topic"`
	Questions        []model.Question `json:"questions"`
	Answers          []model.Answer   `json:"answers"`
	Score            int              `json:"score"`
	Feedback         string           `json:"feedback"`
	Strengths        []string         `json:"strengths"`
	Weaknesses       []string         `json:"weaknesses"`
	RecommendedAreas []string         `json:"recommendedAreas"`
}

// EvaluateSession 返回题目+作答+评分的完整结果；AI 失败时内部已降级，不外抛
func (s *EvaluationService) EvaluateSession(ctx context.Context, sessionID uint) (*TestResult, error) {
	eval, err := s.EvaluateAll(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.FindByID(sessionID)
	if err != nil {
		return nil, err
	}
	questions, err := s.questions.FindBySessionID(sessionID)
	if err != nil {
		return nil, err
	}
	answers, err := s.answers.FindBySessionID(sessionID)
	if err != nil {
		return nil, err
	}

	return &TestResult{
		SessionID:        sessionID,
		Topic:            session.Topic,
		Questions:        questions,
		Answers:          answers,
		Score:            eval.TotalScore,
		Feedback:         eval.Feedback,
		Strengths:        eval.Strengths,
		Weaknesses:       eval.Weaknesses,
		RecommendedAreas: eval.RecommendedAreas,
	}, nil
}

// CorrectAnswer 单题的标准答案
type CorrectAnswer struct {
	QuestionID    uint   `json:"questionId"`
	CorrectAnswer string `json:"correctAnswer"`
}

const correctAnswerUnavailable = "Sorry, the correct answer could not be generated for this question right now."

// CorrectAnswers 为会话内每道题各发起一次模型调用（并发扇出）。
// 单题失败只换成致歉文案，接口整体不失败。
func (s *EvaluationService) CorrectAnswers(ctx context.Context, sessionID uint) ([]CorrectAnswer, error) {
	if _, err := s.sessions.FindByID(sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}

	questions, err := s.questions.FindBySessionID(sessionID)
	if err != nil {
		return nil, err
	}

	results := make([]CorrectAnswer, len(questions))
	var wg sync.WaitGroup
	for i, q := range questions {
		wg.Add(1)
		go func(i int, q model.Question) {
			defer wg.Done()

			key := CacheKey("correct-answer", q.Text)
			reply, err := s.gateway.Generate(ctx, "correct_answer", key, tutorSystemPrompt, buildCorrectAnswerPrompt(q.Text))
			if err != nil {
				logger.Log.Warn("correct answer generation failed",
					zap.Uint("questionId", q.ID),
					zap.Error(err))
				reply = correctAnswerUnavailable
			}
			results[i] = CorrectAnswer{QuestionID: q.ID, CorrectAnswer: reply}
		}(i, q)
	}
	wg.Wait()

	return results, nil
}
