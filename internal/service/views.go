package service

import (
	"quiz_room_hub/internal/model"
	"time"
)

// StudentBrief identifies a student inside enrollment and gradebook replies.
type StudentBrief struct {
	ID        string `json:"id"`
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func NewStudentBrief(p *model.StudentProfile) *StudentBrief {
	if p == nil {
		return nil
	}
	return &StudentBrief{
		ID:        p.ID,
		UserID:    p.UserID,
		Email:     p.User.Email,
		FirstName: p.User.FirstName,
		LastName:  p.User.LastName,
	}
}

type EnrollmentView struct {
	ID        uint             `json:"id"`
	Student   *StudentBrief    `json:"student"`
	Classroom *model.Classroom `json:"classroom"`
	JoinedAt  time.Time        `json:"joined_at"`
}

func NewEnrollmentView(e *model.StudentClassroom) EnrollmentView {
	return EnrollmentView{
		ID:        e.ID,
		Student:   NewStudentBrief(e.Student),
		Classroom: e.Classroom,
		JoinedAt:  e.JoinedAt,
	}
}

type AnswerView struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	IsValid     *bool  `json:"is_valid,omitempty"`
	QuestionID  string `json:"question_id"`
}

// NewAnswerView hides is_valid unless withValidity is set.
func NewAnswerView(a *model.Answer, withValidity bool) AnswerView {
	view := AnswerView{
		ID:          a.ID,
		Description: a.Description,
		QuestionID:  a.QuestionID,
	}
	if withValidity {
		valid := a.IsValid
		view.IsValid = &valid
	}
	return view
}

type QuestionView struct {
	ID          string       `json:"id"`
	Description string       `json:"description"`
	QuizID      string       `json:"quiz_id"`
	Answers     []AnswerView `json:"answers"`
}

func NewQuestionView(q *model.Question, withValidity bool) QuestionView {
	answers := make([]AnswerView, 0, len(q.Answers))
	for i := range q.Answers {
		answers = append(answers, NewAnswerView(&q.Answers[i], withValidity))
	}
	return QuestionView{
		ID:          q.ID,
		Description: q.Description,
		QuizID:      q.QuizID,
		Answers:     answers,
	}
}

type StudentAnswerView struct {
	ID       uint          `json:"id"`
	Student  *StudentBrief `json:"student"`
	Question QuestionView  `json:"question"`
	Answer   AnswerView    `json:"answer"`
}

type StudentQuizView struct {
	ID         uint          `json:"id"`
	Student    *StudentBrief `json:"student"`
	Quiz       *model.Quiz   `json:"quiz,omitempty"`
	Mark       float64       `json:"mark"`
	AnsweredAt time.Time     `json:"answered_at"`
}

func NewStudentQuizView(sq *model.StudentQuiz) StudentQuizView {
	return StudentQuizView{
		ID:         sq.ID,
		Student:    NewStudentBrief(sq.Student),
		Quiz:       sq.Quiz,
		Mark:       sq.Mark,
		AnsweredAt: sq.AnsweredAt,
	}
}
