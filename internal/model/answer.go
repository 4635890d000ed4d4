package model

// EvaluationResult 单题评估结果
type EvaluationResult struct {
	Correctness int        `gorm:"default:0" json:"correctness"`
	Feedback    string     `gorm:"type:text" json:"feedback"`
	Strengths   StringList `gorm:"type:text" json:"strengths"`
	Weaknesses  StringList `gorm:"type:text" json:"weaknesses"`
}

// Answer 与 Question 一对一，后到的提交覆盖已有记录而非追加
type Answer struct {
	BaseModel
	QuestionID uint             `gorm:"uniqueIndex" json:"questionId"`
	UserAnswer string           `gorm:"type:text" json:"userAnswer"`
	Evaluation EvaluationResult `gorm:"embedded;embeddedPrefix:eval_" json:"evaluation"`
}

func (Answer) TableName() string {
	return "answers"
}
