package model

type QuestionType string

const (
	MultipleChoice QuestionType = "MC"
	OpenEnded      QuestionType = "OE"
)

// swagger:model AssessmentQuestion
type AssessmentQuestion struct {
	BaseModel
	Level   Level        `gorm:"size:1;not null;index" json:"level"`
	Type    QuestionType `gorm:"size:2;not null" json:"type"`
	Text    string       `gorm:"type:text;not null" json:"text"`
	Choices []Choice     `gorm:"foreignKey:QuestionID" json:"choices,omitempty"`
}

func (AssessmentQuestion) TableName() string {
	return "assessment_questions"
}

// swagger:model Choice
type Choice struct {
	BaseModel
	QuestionID uint   `gorm:"index;not null" json:"questionId"`
	Text       string `gorm:"size:255;not null" json:"text"`
	// IsCorrect is only ever serialized on the admin surface; learner
	// endpoints return ChoiceView projections without it.
	IsCorrect bool `gorm:"default:false" json:"isCorrect"`
	Position  int  `gorm:"default:0" json:"position"`
}

func (Choice) TableName() string {
	return "choices"
}
