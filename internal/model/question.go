package model

// 题目难度
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Question 批量生成，创建后不再变更
type Question struct {
	BaseModel
	SessionID  uint   `gorm:"index" json:"sessionId"`
	Text       string `gorm:"type:text;not null" json:"text"`
	Difficulty string `gorm:"size:10;not null" json:"difficulty"`
}

func (Question) TableName() string {
	return "questions"
}

func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}
