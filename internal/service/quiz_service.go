package service

import (
	"errors"
	"quiz_room_hub/internal/model"
	"quiz_room_hub/internal/repository"
	"quiz_room_hub/internal/util"

	"gorm.io/gorm"
)

const msgClassroomDoesNotExistNoDot = "Classroom does not exist"

type QuizService struct {
	QuizRepo      *repository.QuizRepository
	ClassroomRepo *repository.ClassroomRepository
	Perm          *PermissionService
}

func NewQuizService(quizRepo *repository.QuizRepository, classroomRepo *repository.ClassroomRepository, perm *PermissionService) *QuizService {
	return &QuizService{
		QuizRepo:      quizRepo,
		ClassroomRepo: classroomRepo,
		Perm:          perm,
	}
}

type QuizInput struct {
	ID          util.ReadOnly `json:"id"`
	CreatedAt   util.ReadOnly `json:"created_at"`
	LastUpdated util.ReadOnly `json:"last_updated"`
	ClassroomID *string       `json:"classroom_id" validate:"required,uuid"`
	Title       *string       `json:"title" validate:"required,notblank,max=200"`
	Content     *string       `json:"content"`
}

type QuizUpdateInput struct {
	ID          util.ReadOnly `json:"id"`
	CreatedAt   util.ReadOnly `json:"created_at"`
	LastUpdated util.ReadOnly `json:"last_updated"`
	ClassroomID util.ReadOnly `json:"classroom_id"`
	Title       *string       `json:"title" validate:"required,notblank,max=200"`
	Content     *string       `json:"content"`
}

type QuestionInput struct {
	ID          util.ReadOnly `json:"id"`
	QuizID      util.ReadOnly `json:"quiz_id"`
	Answers     util.ReadOnly `json:"answers"`
	Description *string       `json:"description" validate:"required,notblank"`
}

type AnswerInput struct {
	ID          util.ReadOnly `json:"id"`
	QuestionID  util.ReadOnly `json:"question_id"`
	Description *string       `json:"description" validate:"required,notblank"`
	IsValid     *bool         `json:"is_valid" validate:"required"`
}

// quizContext is a quiz together with its classroom, which decides access.
type quizContext struct {
	Quiz      *model.Quiz
	Classroom *model.Classroom
}

func (s *QuizService) loadQuiz(quizID string) (*quizContext, error) {
	if !model.IsUUID(quizID) {
		return nil, util.ErrNotFound
	}
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		return nil, notFound(err)
	}
	classroom, err := s.ClassroomRepo.FindByID(quiz.ClassroomID)
	if err != nil {
		return nil, notFound(err)
	}
	return &quizContext{Quiz: quiz, Classroom: classroom}, nil
}

func (s *QuizService) loadQuestion(qc *quizContext, questionID string) (*model.Question, error) {
	if !model.IsUUID(questionID) {
		return nil, util.ErrNotFound
	}
	question, err := s.QuizRepo.FindQuestion(questionID, qc.Quiz.ID)
	if err != nil {
		return nil, notFound(err)
	}
	return question, nil
}

func (s *QuizService) CreateQuiz(userID uint, in *QuizInput) (*model.Quiz, error) {
	classroom, err := s.ClassroomRepo.FindByID(*in.ClassroomID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NewNonFieldError(msgClassroomDoesNotExistNoDot)
	}
	if err != nil {
		return nil, err
	}
	if err := s.Perm.RequireOwner(classroom, userID); err != nil {
		return nil, err
	}

	quiz := &model.Quiz{
		Title:       *in.Title,
		Content:     deref(in.Content),
		ClassroomID: classroom.ID,
	}
	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

// ListQuizzes returns the quizzes of every classroom the teacher owns.
func (s *QuizService) ListQuizzes(userID uint, p util.Pagination) (*util.PageResponse, error) {
	teacher, err := s.Perm.TeacherOf(userID)
	if err != nil {
		return nil, err
	}
	quizzes, total, err := s.QuizRepo.ListByTeacher(teacher.ID, p.Offset(), p.Limit)
	if err != nil {
		return nil, err
	}
	resp := util.NewPageResponse(quizzes, total, p)
	return &resp, nil
}

func (s *QuizService) ListClassroomQuizzes(userID uint, classroomID string, p util.Pagination) (*util.PageResponse, error) {
	if !model.IsUUID(classroomID) {
		return nil, util.ErrNotFound
	}
	classroom, err := s.ClassroomRepo.FindByID(classroomID)
	if err != nil {
		return nil, notFound(err)
	}
	if err := s.Perm.RequireMember(classroom, userID); err != nil {
		return nil, err
	}
	quizzes, total, err := s.QuizRepo.ListByClassroom(classroom.ID, p.Offset(), p.Limit)
	if err != nil {
		return nil, err
	}
	resp := util.NewPageResponse(quizzes, total, p)
	return &resp, nil
}

func (s *QuizService) GetQuiz(userID uint, quizID string) (*model.Quiz, error) {
	qc, err := s.loadQuiz(quizID)
	if err != nil {
		return nil, err
	}
	if err := s.Perm.RequireMember(qc.Classroom, userID); err != nil {
		return nil, err
	}
	return qc.Quiz, nil
}

func (s *QuizService) UpdateQuiz(userID uint, quizID string, in *QuizUpdateInput) (*model.Quiz, error) {
	qc, err := s.loadQuiz(quizID)
	if err != nil {
		return nil, err
	}
	if err := s.Perm.RequireOwner(qc.Classroom, userID); err != nil {
		return nil, err
	}

	qc.Quiz.Title = *in.Title
	qc.Quiz.Content = deref(in.Content)
	if err := s.QuizRepo.Update(qc.Quiz); err != nil {
		return nil, err
	}
	return qc.Quiz, nil
}

func (s *QuizService) DeleteQuiz(userID uint, quizID string) error {
	qc, err := s.loadQuiz(quizID)
	if err != nil {
		return err
	}
	if err := s.Perm.RequireOwner(qc.Classroom, userID); err != nil {
		return err
	}
	return s.QuizRepo.Delete(qc.Quiz.ID)
}

func (s *QuizService) CreateQuestion(userID uint, quizID string, in *QuestionInput) (*QuestionView, error) {
	qc, err := s.loadQuiz(quizID)
	if err != nil {
		return nil, err
	}
	if err := s.Perm.RequireOwner(qc.Classroom, userID); err != nil {
		return nil, err
	}

	question := &model.Question{Description: *in.Description, QuizID: qc.Quiz.ID}
	if err := s.QuizRepo.CreateQuestion(question); err != nil {
		return nil, err
	}
	view := NewQuestionView(question, true)
	return &view, nil
}

// ListQuestions shows each question with its choices. Only the classroom
// owner sees which choices are valid.
func (s *QuizService) ListQuestions(userID uint, quizID string, p util.Pagination) (*util.PageResponse, error) {
	qc, err := s.loadQuiz(quizID)
	if err != nil {
		return nil, err
	}
	if err := s.Perm.RequireMember(qc.Classroom, userID); err != nil {
		return nil, err
	}
	owner, err := s.Perm.IsOwner(qc.Classroom, userID)
	if err != nil {
		return nil, err
	}

	questions, total, err := s.QuizRepo.ListQuestions(qc.Quiz.ID, p.Offset(), p.Limit)
	if err != nil {
		return nil, err
	}
	views := make([]QuestionView, 0, len(questions))
	for i := range questions {
		views = append(views, NewQuestionView(&questions[i], owner))
	}
	resp := util.NewPageResponse(views, total, p)
	return &resp, nil
}

func (s *QuizService) GetQuestion(userID uint, quizID, questionID string) (*QuestionView, error) {
	qc, err := s.loadQuiz(quizID)
	if err != nil {
		return nil, err
	}
	question, err := s.loadQuestion(qc, questionID)
	if err != nil {
		return nil, err
	}
	if err := s.Perm.RequireMember(qc.Classroom, userID); err != nil {
		return nil, err
	}
	owner, err := s.Perm.IsOwner(qc.Classroom, userID)
	if err != nil {
		return nil, err
	}
	view := NewQuestionView(question, owner)
	return &view, nil
}

func (s *QuizService) UpdateQuestion(userID uint, quizID, questionID string, in *QuestionInput) (*QuestionView, error) {
	qc, err := s.loadQuiz(quizID)
	if err != nil {
		return nil, err
	}
	question, err := s.loadQuestion(qc, questionID)
	if err != nil {
		return nil, err
	}
	if err := s.Perm.RequireOwner(qc.Classroom, userID); err != nil {
		return nil, err
	}

	question.Description = *in.Description
	if err := s.QuizRepo.UpdateQuestion(question); err != nil {
		return nil, err
	}
	view := NewQuestionView(question, true)
	return &view, nil
}

func (s *QuizService) DeleteQuestion(userID uint, quizID, questionID string) error {
	qc, err := s.loadQuiz(quizID)
	if err != nil {
		return err
	}
	question, err := s.loadQuestion(qc, questionID)
	if err != nil {
		return err
	}
	if err := s.Perm.RequireOwner(qc.Classroom, userID); err != nil {
		return err
	}
	return s.QuizRepo.DeleteQuestion(question.ID)
}

// ownedQuestion resolves a question route for the classroom owner.
func (s *QuizService) ownedQuestion(userID uint, quizID, questionID string) (*model.Question, error) {
	qc, err := s.loadQuiz(quizID)
	if err != nil {
		return nil, err
	}
	question, err := s.loadQuestion(qc, questionID)
	if err != nil {
		return nil, err
	}
	if err := s.Perm.RequireOwner(qc.Classroom, userID); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuizService) loadAnswer(question *model.Question, answerID string) (*model.Answer, error) {
	if !model.IsUUID(answerID) {
		return nil, util.ErrNotFound
	}
	answer, err := s.QuizRepo.FindAnswer(answerID, question.ID)
	if err != nil {
		return nil, notFound(err)
	}
	return answer, nil
}

func (s *QuizService) CreateAnswer(userID uint, quizID, questionID string, in *AnswerInput) (*model.Answer, error) {
	question, err := s.ownedQuestion(userID, quizID, questionID)
	if err != nil {
		return nil, err
	}

	answer := &model.Answer{
		Description: *in.Description,
		IsValid:     *in.IsValid,
		QuestionID:  question.ID,
	}
	if err := s.QuizRepo.CreateAnswer(answer); err != nil {
		return nil, err
	}
	return answer, nil
}

func (s *QuizService) ListAnswers(userID uint, quizID, questionID string, p util.Pagination) (*util.PageResponse, error) {
	question, err := s.ownedQuestion(userID, quizID, questionID)
	if err != nil {
		return nil, err
	}
	answers, total, err := s.QuizRepo.ListAnswers(question.ID, p.Offset(), p.Limit)
	if err != nil {
		return nil, err
	}
	resp := util.NewPageResponse(answers, total, p)
	return &resp, nil
}

func (s *QuizService) GetAnswer(userID uint, quizID, questionID, answerID string) (*model.Answer, error) {
	question, err := s.ownedQuestion(userID, quizID, questionID)
	if err != nil {
		return nil, err
	}
	return s.loadAnswer(question, answerID)
}

func (s *QuizService) UpdateAnswer(userID uint, quizID, questionID, answerID string, in *AnswerInput) (*model.Answer, error) {
	question, err := s.ownedQuestion(userID, quizID, questionID)
	if err != nil {
		return nil, err
	}
	answer, err := s.loadAnswer(question, answerID)
	if err != nil {
		return nil, err
	}

	answer.Description = *in.Description
	answer.IsValid = *in.IsValid
	if err := s.QuizRepo.UpdateAnswer(answer); err != nil {
		return nil, err
	}
	return answer, nil
}

func (s *QuizService) DeleteAnswer(userID uint, quizID, questionID, answerID string) error {
	question, err := s.ownedQuestion(userID, quizID, questionID)
	if err != nil {
		return err
	}
	answer, err := s.loadAnswer(question, answerID)
	if err != nil {
		return err
	}
	return s.QuizRepo.DeleteAnswer(answer.ID)
}
