package repository

import (
	"quiz_room_hub/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) CreateStudentAnswer(sa *model.StudentAnswer) error {
	return r.DB.Create(sa).Error
}

func (r *SubmissionRepository) HasAnswered(studentID, questionID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.StudentAnswer{}).
		Where("student_id = ? AND question_id = ?", studentID, questionID).
		Count(&count).Error
	return count > 0, err
}

// CountCorrectAnswers counts the student's answers to questions of quizID
// whose chosen answer is valid.
func (r *SubmissionRepository) CountCorrectAnswers(studentID, quizID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.StudentAnswer{}).
		Joins("JOIN answers ON answers.id = student_answers.answer_id").
		Joins("JOIN questions ON questions.id = answers.question_id").
		Where("student_answers.student_id = ? AND questions.quiz_id = ? AND answers.is_valid = ?", studentID, quizID, true).
		Count(&count).Error
	return count, err
}

func (r *SubmissionRepository) HasSubmitted(studentID, quizID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.StudentQuiz{}).
		Where("student_id = ? AND quiz_id = ?", studentID, quizID).
		Count(&count).Error
	return count > 0, err
}

func (r *SubmissionRepository) CreateStudentQuiz(sq *model.StudentQuiz) error {
	return r.DB.Create(sq).Error
}

// ListStudentQuizzes returns marks for quizID, best first. An empty
// studentID returns every student's mark.
func (r *SubmissionRepository) ListStudentQuizzes(quizID, studentID string, offset, limit int) ([]model.StudentQuiz, int64, error) {
	var results []model.StudentQuiz
	var total int64

	query := r.DB.Model(&model.StudentQuiz{}).Where("quiz_id = ?", quizID)
	if studentID != "" {
		query = query.Where("student_id = ?", studentID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Preload("Student.User").Order("mark DESC").Order("answered_at DESC")
	if limit > 0 {
		query = query.Offset(offset).Limit(limit)
	}
	err := query.Find(&results).Error
	return results, total, err
}
