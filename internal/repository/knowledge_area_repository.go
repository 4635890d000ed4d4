package repository

import (
	"ai_tutor_backend/internal/model"

	"gorm.io/gorm"
)

type KnowledgeAreaRepository struct {
	DB *gorm.DB
}

func NewKnowledgeAreaRepository(db *gorm.DB) *KnowledgeAreaRepository {
	return &KnowledgeAreaRepository{DB: db}
}

func (r *KnowledgeAreaRepository) Create(area *model.KnowledgeArea) error {
	return r.DB.Create(area).Error
}

func (r *KnowledgeAreaRepository) FindBySessionID(sessionID uint) ([]model.KnowledgeArea, error) {
	var areas []model.KnowledgeArea
	err := r.DB.Where("session_id = ?", sessionID).Order("id asc").Find(&areas).Error
	return areas, err
}

func (r *KnowledgeAreaRepository) UpdateProficiency(id uint, proficiency int) (*model.KnowledgeArea, error) {
	var area model.KnowledgeArea
	if err := r.DB.First(&area, id).Error; err != nil {
		return nil, err
	}
	area.Proficiency = proficiency
	if err := r.DB.Save(&area).Error; err != nil {
		return nil, err
	}
	return &area, nil
}
