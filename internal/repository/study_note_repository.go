package repository

import (
	"ai_tutor_backend/internal/model"

	"gorm.io/gorm"
)

type StudyNoteRepository struct {
	DB *gorm.DB
}

func NewStudyNoteRepository(db *gorm.DB) *StudyNoteRepository {
	return &StudyNoteRepository{DB: db}
}

func (r *StudyNoteRepository) Create(note *model.StudyNote) error {
	return r.DB.Create(note).Error
}

func (r *StudyNoteRepository) FindByID(id uint) (*model.StudyNote, error) {
	var note model.StudyNote
	err := r.DB.First(&note, id).Error
	if err != nil {
		return nil, err
	}
	return &note, nil
}
