package repository

import (
	"ai_tutor_backend/internal/model"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(session *model.Session) error {
	return r.DB.Create(session).Error
}

func (r *SessionRepository) FindByID(id uint) (*model.Session, error) {
	var session model.Session
	err := r.DB.First(&session, id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) UpdateStage(id uint, stage string) (*model.Session, error) {
	var session model.Session
	if err := r.DB.First(&session, id).Error; err != nil {
		return nil, err
	}
	session.Stage = stage
	if err := r.DB.Save(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}
