package repository

import (
	"ai_tutor_backend/internal/model"
	"errors"

	"gorm.io/gorm"
)

type SessionEvaluationRepository struct {
	DB *gorm.DB
}

func NewSessionEvaluationRepository(db *gorm.DB) *SessionEvaluationRepository {
	return &SessionEvaluationRepository{DB: db}
}

// Upsert 每个会话至多一份整体评估，重复评估覆盖旧结果
func (r *SessionEvaluationRepository) Upsert(eval *model.SessionEvaluation) error {
	var existing model.SessionEvaluation
	err := r.DB.Where("session_id = ?", eval.SessionID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.DB.Create(eval).Error
	}
	if err != nil {
		return err
	}

	existing.TotalScore = eval.TotalScore
	existing.Feedback = eval.Feedback
	existing.Strengths = eval.Strengths
	existing.Weaknesses = eval.Weaknesses
	existing.RecommendedAreas = eval.RecommendedAreas
	if err := r.DB.Save(&existing).Error; err != nil {
		return err
	}
	*eval = existing
	return nil
}

func (r *SessionEvaluationRepository) FindBySessionID(sessionID uint) (*model.SessionEvaluation, error) {
	var eval model.SessionEvaluation
	err := r.DB.Where("session_id = ?", sessionID).First(&eval).Error
	if err != nil {
		return nil, err
	}
	return &eval, nil
}
