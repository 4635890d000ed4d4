package service

import (
	"ai_tutor_backend/internal/model"
	"ai_tutor_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

type SessionService struct {
	sessions    SessionStore
	areas       KnowledgeAreaStore
	evaluations EvaluationStore
}

func NewSessionService(sessions SessionStore, areas KnowledgeAreaStore, evaluations EvaluationStore) *SessionService {
	return &SessionService{
		sessions:    sessions,
		areas:       areas,
		evaluations: evaluations,
	}
}

// SessionDetail 会话及其附属数据
type SessionDetail struct {
	Session        *model.Session           `json:"session"`
	KnowledgeAreas []model.KnowledgeArea    `json:"knowledgeAreas"`
	Evaluation     *model.SessionEvaluation `json:"evaluation,omitempty"`
}

func (s *SessionService) Create(userID uint, topic, stage string) (*model.Session, error) {
	if stage == "" {
		stage = model.StageAnalysis
	}
	if !model.ValidStage(stage) {
		return nil, util.ErrInvalidStage
	}

	session := &model.Session{
		UserID: userID,
		Topic:  topic,
		Stage:  stage,
	}
	if err := s.sessions.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SessionService) Get(id uint) (*SessionDetail, error) {
	session, err := s.sessions.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	areas, err := s.areas.FindBySessionID(id)
	if err != nil {
		return nil, err
	}

	detail := &SessionDetail{
		Session:        session,
		KnowledgeAreas: areas,
	}

	// 整体评估可能还不存在，属于正常情况
	if eval, err := s.evaluations.FindBySessionID(id); err == nil {
		detail.Evaluation = eval
	}

	return detail, nil
}

func (s *SessionService) UpdateStage(id uint, stage string) (*model.Session, error) {
	if !model.ValidStage(stage) {
		return nil, util.ErrInvalidStage
	}

	session, err := s.sessions.UpdateStage(id, stage)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSessionNotFound
	}
	return session, err
}
