package service

import "ai_tutor_backend/internal/model"

// 各服务依赖的存储面，由 repository 包的 GORM 实现满足；
// 测试里用内存假实现替换

type SessionStore interface {
	Create(session *model.Session) error
	FindByID(id uint) (*model.Session, error)
	UpdateStage(id uint, stage string) (*model.Session, error)
}

type QuestionStore interface {
	CreateBatch(questions []model.Question) ([]model.Question, error)
	FindByID(id uint) (*model.Question, error)
	FindBySessionID(sessionID uint) ([]model.Question, error)
}

type AnswerStore interface {
	Upsert(answer *model.Answer) error
	FindByQuestionID(questionID uint) (*model.Answer, error)
	FindBySessionID(sessionID uint) ([]model.Answer, error)
}

type KnowledgeAreaStore interface {
	Create(area *model.KnowledgeArea) error
	FindBySessionID(sessionID uint) ([]model.KnowledgeArea, error)
	UpdateProficiency(id uint, proficiency int) (*model.KnowledgeArea, error)
}

type EvaluationStore interface {
	Upsert(eval *model.SessionEvaluation) error
	FindBySessionID(sessionID uint) (*model.SessionEvaluation, error)
}

type NoteStore interface {
	Create(note *model.StudyNote) error
	FindByID(id uint) (*model.StudyNote, error)
}
