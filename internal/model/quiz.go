package model

import "time"

type Quiz struct {
	UUIDBase
	Title       string     `gorm:"size:200;not null" json:"title"`
	Content     string     `gorm:"type:text" json:"content"`
	ClassroomID string     `gorm:"index;type:varchar(36);not null" json:"classroom_id"`
	Classroom   *Classroom `gorm:"foreignKey:ClassroomID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	LastUpdated time.Time  `gorm:"autoUpdateTime" json:"last_updated"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

type Question struct {
	UUIDBase
	Description string   `gorm:"type:text;not null" json:"description"`
	QuizID      string   `gorm:"index;type:varchar(36);not null" json:"quiz_id"`
	Quiz        *Quiz    `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"-"`
	Answers     []Answer `gorm:"foreignKey:QuestionID" json:"-"`
}

func (Question) TableName() string {
	return "questions"
}

type Answer struct {
	UUIDBase
	Description string    `gorm:"type:text;not null" json:"description"`
	IsValid     bool      `gorm:"not null" json:"is_valid"`
	QuestionID  string    `gorm:"index;type:varchar(36);not null" json:"question_id"`
	Question    *Question `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Answer) TableName() string {
	return "answers"
}

// StudentAnswer is the choice a student picked for one question. QuestionID
// duplicates Answer.QuestionID so the database can reject a second answer
// to the same question.
type StudentAnswer struct {
	BaseModel
	StudentID  string          `gorm:"type:varchar(36);not null;uniqueIndex:idx_student_answer;uniqueIndex:idx_student_question" json:"student_id"`
	Student    *StudentProfile `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
	AnswerID   string          `gorm:"type:varchar(36);not null;uniqueIndex:idx_student_answer;index" json:"answer_id"`
	Answer     *Answer         `gorm:"foreignKey:AnswerID;constraint:OnDelete:CASCADE" json:"-"`
	QuestionID string          `gorm:"type:varchar(36);not null;uniqueIndex:idx_student_question;index" json:"question_id"`
	Question   *Question       `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt  time.Time       `json:"created_at"`
}

func (StudentAnswer) TableName() string {
	return "student_answers"
}

type StudentQuiz struct {
	BaseModel
	StudentID  string          `gorm:"type:varchar(36);not null;uniqueIndex:idx_student_quiz" json:"student_id"`
	Student    *StudentProfile `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
	QuizID     string          `gorm:"type:varchar(36);not null;uniqueIndex:idx_student_quiz;index" json:"quiz_id"`
	Quiz       *Quiz           `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"-"`
	Mark       float64         `gorm:"type:decimal(5,2);not null" json:"mark"`
	AnsweredAt time.Time       `gorm:"autoCreateTime;index" json:"answered_at"`
}

func (StudentQuiz) TableName() string {
	return "student_quizzes"
}
