package model

// 学习会话阶段
const (
	StageAnalysis = "analysis"
	StageFeedback = "feedback"
	StageTeaching = "teaching"
	StageRetest   = "retest"
)

// Session 一个用户在某主题上的完整学习交互
type Session struct {
	BaseModel
	UserID uint   `gorm:"index" json:"userId"`
	Topic  string `gorm:"size:255;not null" json:"topic"`
	Stage  string `gorm:"size:20;not null;default:'analysis'" json:"stage"`
}

func (Session) TableName() string {
	return "sessions"
}

func ValidStage(stage string) bool {
	switch stage {
	case StageAnalysis, StageFeedback, StageTeaching, StageRetest:
		return true
	}
	return false
}
