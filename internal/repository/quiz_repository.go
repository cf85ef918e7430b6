package repository

import (
	"quiz_room_hub/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) FindByID(id string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Where("id = ?", id).First(&quiz).Error
	return &quiz, err
}

func (r *QuizRepository) ListByTeacher(teacherID string, offset, limit int) ([]model.Quiz, int64, error) {
	query := r.DB.Model(&model.Quiz{}).
		Where("classroom_id IN (?)", r.DB.Model(&model.Classroom{}).Select("id").Where("teacher_id = ?", teacherID))
	return r.list(query, offset, limit)
}

func (r *QuizRepository) ListByClassroom(classroomID string, offset, limit int) ([]model.Quiz, int64, error) {
	query := r.DB.Model(&model.Quiz{}).Where("classroom_id = ?", classroomID)
	return r.list(query, offset, limit)
}

func (r *QuizRepository) list(query *gorm.DB, offset, limit int) ([]model.Quiz, int64, error) {
	var quizzes []model.Quiz
	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&quizzes).Error
	return quizzes, total, err
}

func (r *QuizRepository) Update(quiz *model.Quiz) error {
	return r.DB.Model(quiz).Select("title", "content").Updates(quiz).Error
}

// Delete removes the quiz with its questions, answers and submissions.
func (r *QuizRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return deleteQuizzesTx(tx, []string{id})
	})
}

func (r *QuizRepository) CountQuestions(quizID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Where("quiz_id = ?", quizID).Count(&count).Error
	return count, err
}

func (r *QuizRepository) CreateQuestion(question *model.Question) error {
	return r.DB.Create(question).Error
}

// FindQuestion only matches a question that belongs to quizID.
func (r *QuizRepository) FindQuestion(id, quizID string) (*model.Question, error) {
	var question model.Question
	err := r.DB.Preload("Answers", func(db *gorm.DB) *gorm.DB {
		return db.Order("description")
	}).Where("id = ? AND quiz_id = ?", id, quizID).First(&question).Error
	return &question, err
}

func (r *QuizRepository) ListQuestions(quizID string, offset, limit int) ([]model.Question, int64, error) {
	var questions []model.Question
	var total int64

	query := r.DB.Model(&model.Question{}).Where("quiz_id = ?", quizID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Answers", func(db *gorm.DB) *gorm.DB {
		return db.Order("description")
	}).Order("id").Offset(offset).Limit(limit).Find(&questions).Error
	return questions, total, err
}

func (r *QuizRepository) UpdateQuestion(question *model.Question) error {
	return r.DB.Model(question).Select("description").Updates(question).Error
}

func (r *QuizRepository) DeleteQuestion(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return deleteQuestionsTx(tx, []string{id})
	})
}

func (r *QuizRepository) CreateAnswer(answer *model.Answer) error {
	return r.DB.Create(answer).Error
}

// FindAnswer only matches an answer that belongs to questionID.
func (r *QuizRepository) FindAnswer(id, questionID string) (*model.Answer, error) {
	var answer model.Answer
	err := r.DB.Where("id = ? AND question_id = ?", id, questionID).First(&answer).Error
	return &answer, err
}

func (r *QuizRepository) ListAnswers(questionID string, offset, limit int) ([]model.Answer, int64, error) {
	var answers []model.Answer
	var total int64

	query := r.DB.Model(&model.Answer{}).Where("question_id = ?", questionID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("description").Offset(offset).Limit(limit).Find(&answers).Error
	return answers, total, err
}

func (r *QuizRepository) UpdateAnswer(answer *model.Answer) error {
	return r.DB.Model(answer).Select("description", "is_valid").Updates(answer).Error
}

func (r *QuizRepository) DeleteAnswer(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return deleteAnswersTx(tx, []string{id})
	})
}
