package service

import (
	"ai_tutor_backend/internal/model"
	"ai_tutor_backend/internal/util"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

// topic 尾部可携带元数据："Algebra [Education: Beginner, Difficulty: Standard]"
var topicMetaPattern = regexp.MustCompile(`\s*\[Education:\s*([^,\]]+),\s*Difficulty:\s*([^\]]+)\]\s*$`)

// ParseTopicMeta 拆出裸主题和教育程度/难度档位，提示词里只用裸主题
func ParseTopicMeta(raw string) (topic, education, difficulty string) {
	topic = strings.TrimSpace(raw)
	m := topicMetaPattern.FindStringSubmatch(topic)
	if m == nil {
		return topic, "", ""
	}
	return strings.TrimSpace(topicMetaPattern.ReplaceAllString(topic, "")),
		strings.TrimSpace(m[1]),
		strings.TrimSpace(m[2])
}

type QuestionService struct {
	sessions      SessionStore
	questions     QuestionStore
	answers       AnswerStore
	gateway       *AIGateway
	questionCount int
}

func NewQuestionService(sessions SessionStore, questions QuestionStore, answers AnswerStore, gateway *AIGateway, questionCount int) *QuestionService {
	return &QuestionService{
		sessions:      sessions,
		questions:     questions,
		answers:       answers,
		gateway:       gateway,
		questionCount: questionCount,
	}
}

// Generate 为会话生成一批新题目，避开已出过的题
func (s *QuestionService) Generate(ctx context.Context, sessionID uint, rawTopic string) ([]model.Question, error) {
	if _, err := s.sessions.FindByID(sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}

	topic, education, difficulty := ParseTopicMeta(rawTopic)

	existing, err := s.questions.FindBySessionID(sessionID)
	if err != nil {
		return nil, err
	}
	existingTexts := make([]string, 0, len(existing))
	for _, q := range existing {
		existingTexts = append(existingTexts, q.Text)
	}

	key := CacheKey(append([]string{"questions", topic, education, difficulty}, existingTexts...)...)
	prompt := buildQuestionPrompt(topic, existingTexts, education, difficulty, s.questionCount)

	raw, err := s.gateway.Generate(ctx, "generate_questions", key, tutorSystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("question generation failed: %w", err)
	}

	generated := parseGeneratedQuestions(raw, existingTexts, s.questionCount)
	if len(generated) == 0 {
		return nil, fmt.Errorf("AI returned no usable questions")
	}

	batch := make([]model.Question, 0, len(generated))
	for _, g := range generated {
		batch = append(batch, model.Question{
			SessionID:  sessionID,
			Text:       g.Question,
			Difficulty: g.Difficulty,
		})
	}
	return s.questions.CreateBatch(batch)
}

// QuestionWithAnswer 题目及其当前作答（可能还没有）
type QuestionWithAnswer struct {
	Question model.Question `json:"question"`
	Answer   *model.Answer  `json:"answer,omitempty"`
}

func (s *QuestionService) QuestionsWithAnswers(sessionID uint) ([]QuestionWithAnswer, error) {
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
	answers, err := s.answers.FindBySessionID(sessionID)
	if err != nil {
		return nil, err
	}

	byQuestion := make(map[uint]*model.Answer, len(answers))
	for i := range answers {
		byQuestion[answers[i].QuestionID] = &answers[i]
	}

	out := make([]QuestionWithAnswer, 0, len(questions))
	for _, q := range questions {
		out = append(out, QuestionWithAnswer{
			Question: q,
			Answer:   byQuestion[q.ID],
		})
	}
	return out, nil
}
