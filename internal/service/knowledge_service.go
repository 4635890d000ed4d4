package service

import (
	"ai_tutor_backend/internal/model"
	"ai_tutor_backend/internal/util"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// AreaMatcher 从题目文本推导知识域名称。推导只是启发式，
// 所以做成可替换的策略而不是固定行为。
type AreaMatcher func(questionText string) []string

// defaultAreaKeywords 关键词白名单 -> 知识域名称
var defaultAreaKeywords = map[string]string{
	"equation":    "Equations",
	"fraction":    "Fractions",
	"algebra":     "Algebra",
	"geometry":    "Geometry",
	"calculus":    "Calculus",
	"function":    "Functions",
	"probability": "Probability",
	"statistic":   "Statistics",
	"grammar":     "Grammar",
	"vocabulary":  "Vocabulary",
	"history":     "History",
	"biology":     "Biology",
	"chemistry":   "Chemistry",
	"physics":     "Physics",
	"programming": "Programming",
	"variable":    "Variables",
}

// KeywordAreaMatcher 基于关键词白名单的默认匹配器
func KeywordAreaMatcher(keywords map[string]string) AreaMatcher {
	return func(questionText string) []string {
		lower := strings.ToLower(questionText)
		var names []string
		for keyword, name := range keywords {
			if strings.Contains(lower, keyword) {
				names = append(names, name)
			}
		}
		return names
	}
}

type KnowledgeService struct {
	areas   KnowledgeAreaStore
	matcher AreaMatcher
}

func NewKnowledgeService(areas KnowledgeAreaStore, matcher AreaMatcher) *KnowledgeService {
	if matcher == nil {
		matcher = KeywordAreaMatcher(defaultAreaKeywords)
	}
	return &KnowledgeService{areas: areas, matcher: matcher}
}

// DeriveFromQuestions 测试完成后从题目文本推导知识域并建档，
// 掌握度以本次评估分数作为初值；一个名字也匹配不到时退化为主题本身
func (s *KnowledgeService) DeriveFromQuestions(sessionID uint, topic string, questions []model.Question, proficiency int) ([]model.KnowledgeArea, error) {
	existing, err := s.areas.FindBySessionID(sessionID)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(existing))
	for _, a := range existing {
		known[a.Name] = true
	}

	var names []string
	seen := make(map[string]bool)
	for _, q := range questions {
		for _, name := range s.matcher(q.Text) {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	if len(names) == 0 && topic != "" {
		names = []string{topic}
	}

	var created []model.KnowledgeArea
	for _, name := range names {
		if known[name] {
			continue
		}
		area := model.KnowledgeArea{
			SessionID:   sessionID,
			Name:        name,
			Proficiency: util.Clamp(proficiency),
		}
		if err := s.areas.Create(&area); err != nil {
			return created, err
		}
		created = append(created, area)
	}
	return created, nil
}

func (s *KnowledgeService) CreateArea(sessionID uint, name string, proficiency int) (*model.KnowledgeArea, error) {
	if proficiency < 0 || proficiency > 100 {
		return nil, util.ErrInvalidProficiency
	}
	area := &model.KnowledgeArea{
		SessionID:   sessionID,
		Name:        name,
		Proficiency: proficiency,
	}
	if err := s.areas.Create(area); err != nil {
		return nil, err
	}
	return area, nil
}

func (s *KnowledgeService) UpdateProficiency(id uint, proficiency int) (*model.KnowledgeArea, error) {
	if proficiency < 0 || proficiency > 100 {
		return nil, util.ErrInvalidProficiency
	}
	area, err := s.areas.UpdateProficiency(id, proficiency)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrKnowledgeAreaNotFound
	}
	return area, err
}
