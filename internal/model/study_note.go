package model

// StudyNote AI 生成的学习笔记，正文同时以 Markdown 文件形式导出到对象存储
type StudyNote struct {
	BaseModel
	Topic     string     `gorm:"size:255;not null" json:"topic"`
	WeakAreas StringList `gorm:"type:text" json:"weakAreas"`
	Content   string     `gorm:"type:text" json:"content"`
	ObjectKey string     `gorm:"size:255" json:"objectKey,omitempty"`
}

func (StudyNote) TableName() string {
	return "study_notes"
}
