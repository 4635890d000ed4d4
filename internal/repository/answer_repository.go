package repository

import (
	"ai_tutor_backend/internal/model"
	"errors"

	"gorm.io/gorm"
)

type AnswerRepository struct {
	DB *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) *AnswerRepository {
	return &AnswerRepository{DB: db}
}

// Upsert 按 questionId 一对一覆盖写入，后到的提交更新已有记录
func (r *AnswerRepository) Upsert(answer *model.Answer) error {
	var existing model.Answer
	err := r.DB.Where("question_id = ?", answer.QuestionID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.DB.Create(answer).Error
	}
	if err != nil {
		return err
	}

	existing.UserAnswer = answer.UserAnswer
	existing.Evaluation = answer.Evaluation
	if err := r.DB.Save(&existing).Error; err != nil {
		return err
	}
	*answer = existing
	return nil
}

func (r *AnswerRepository) FindByQuestionID(questionID uint) (*model.Answer, error) {
	var answer model.Answer
	err := r.DB.Where("question_id = ?", questionID).First(&answer).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *AnswerRepository) FindBySessionID(sessionID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.DB.
		Joins("JOIN questions ON questions.id = answers.question_id").
		Where("questions.session_id = ?", sessionID).
		Order("answers.question_id asc").
		Find(&answers).Error
	return answers, err
}
