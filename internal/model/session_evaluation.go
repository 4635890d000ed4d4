package model

// SessionEvaluation 整份测试的一次性评估，按 sessionId 一对一挂载，
// 不再借用某个 Answer 的字段传递会话级数据
type SessionEvaluation struct {
	BaseModel
	SessionID        uint       `gorm:"uniqueIndex" json:"sessionId"`
	TotalScore       int        `json:"totalScore"`
	Feedback         string     `gorm:"type:text" json:"feedback"`
	Strengths        StringList `gorm:"type:text" json:"strengths"`
	Weaknesses       StringList `gorm:"type:text" json:"weaknesses"`
	RecommendedAreas StringList `gorm:"type:text" json:"recommendedAreas"`
}

func (SessionEvaluation) TableName() string {
	return "session_evaluations"
}
