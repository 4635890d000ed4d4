package repository

import (
	"ai_tutor_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) CreateBatch(questions []model.Question) ([]model.Question, error) {
	if len(questions) == 0 {
		return questions, nil
	}
	err := r.DB.Create(&questions).Error
	return questions, err
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.First(&q, id).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuestionRepository) FindBySessionID(sessionID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("session_id = ?", sessionID).Order("id asc").Find(&questions).Error
	return questions, err
}
