package model

// KnowledgeArea 主题下的子技能及其掌握度
type KnowledgeArea struct {
	BaseModel
	SessionID   uint   `gorm:"index" json:"sessionId"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Proficiency int    `gorm:"default:0" json:"proficiency"` // 0-100
}

func (KnowledgeArea) TableName() string {
	return "knowledge_areas"
}
