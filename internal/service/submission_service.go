package service

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"quiz_room_hub/internal/model"
	"quiz_room_hub/internal/repository"
	"quiz_room_hub/internal/util"
	"quiz_room_hub/pkg/logger"
	"quiz_room_hub/pkg/monitoring"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	msgQuizDoesNotExist     = "Quiz does not exist."
	msgQuestionDoesNotExist = "Question does not exist."
	msgAnswerDoesNotExist   = "Answer does not exist."
	msgAlreadyAnswered      = "Student cannot answer the same question again."
	msgQuizAlreadySubmitted = "Quiz has already been submitted."
	msgQuizNoQuestions      = "Quiz has no questions."
	msgStudentSubmitted     = "Student has already submitted this quiz."

	gradebookSheet = "Marks"
)

type SubmissionService struct {
	SubmissionRepo *repository.SubmissionRepository
	QuizRepo       *repository.QuizRepository
	ClassroomRepo  *repository.ClassroomRepository
	Perm           *PermissionService
}

func NewSubmissionService(
	submissionRepo *repository.SubmissionRepository,
	quizRepo *repository.QuizRepository,
	classroomRepo *repository.ClassroomRepository,
	perm *PermissionService,
) *SubmissionService {
	return &SubmissionService{
		SubmissionRepo: submissionRepo,
		QuizRepo:       quizRepo,
		ClassroomRepo:  classroomRepo,
		Perm:           perm,
	}
}

type StudentAnswerInput struct {
	QuestionID *string `json:"question_id" validate:"required,uuid"`
	AnswerID   *string `json:"answer_id" validate:"required,uuid"`
}

// Grade is the percentage of correct answers rounded half-to-even to two
// decimals.
func Grade(correct, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return math.RoundToEven(float64(correct)/float64(total)*100*100) / 100
}

// quizForMember loads a quiz for a route where an unknown quiz is a
// validation error rather than a 404.
func (s *SubmissionService) quizForMember(userID uint, quizID string) (*model.Quiz, *model.Classroom, error) {
	var quiz *model.Quiz
	err := gorm.ErrRecordNotFound
	if model.IsUUID(quizID) {
		quiz, err = s.QuizRepo.FindByID(quizID)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, util.NewNonFieldError(msgQuizDoesNotExist)
	}
	if err != nil {
		return nil, nil, err
	}

	classroom, err := s.ClassroomRepo.FindByID(quiz.ClassroomID)
	if err != nil {
		return nil, nil, notFound(err)
	}
	if err := s.Perm.RequireMember(classroom, userID); err != nil {
		return nil, nil, err
	}
	return quiz, classroom, nil
}

// SubmitAnswer records the student's choice for one question of the quiz.
func (s *SubmissionService) SubmitAnswer(userID uint, quizID string, in *StudentAnswerInput) (*StudentAnswerView, error) {
	student, err := s.Perm.StudentOf(userID)
	if err != nil {
		return nil, err
	}
	quiz, _, err := s.quizForMember(userID, quizID)
	if err != nil {
		return nil, err
	}

	question, err := s.QuizRepo.FindQuestion(*in.QuestionID, quiz.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NewNonFieldError(msgQuestionDoesNotExist)
	}
	if err != nil {
		return nil, err
	}
	answer, err := s.QuizRepo.FindAnswer(*in.AnswerID, question.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NewNonFieldError(msgAnswerDoesNotExist)
	}
	if err != nil {
		return nil, err
	}

	submitted, err := s.SubmissionRepo.HasSubmitted(student.ID, quiz.ID)
	if err != nil {
		return nil, err
	}
	if submitted {
		return nil, util.NewNonFieldError(msgQuizAlreadySubmitted)
	}

	answered, err := s.SubmissionRepo.HasAnswered(student.ID, question.ID)
	if err != nil {
		return nil, err
	}
	if answered {
		return nil, util.NewNonFieldError(msgAlreadyAnswered)
	}

	sa := &model.StudentAnswer{StudentID: student.ID, AnswerID: answer.ID, QuestionID: question.ID}
	if err := s.SubmissionRepo.CreateStudentAnswer(sa); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.NewNonFieldError(msgAlreadyAnswered)
		}
		return nil, err
	}

	return &StudentAnswerView{
		ID:       sa.ID,
		Student:  NewStudentBrief(student),
		Question: NewQuestionView(question, false),
		Answer:   NewAnswerView(answer, false),
	}, nil
}

// SubmitQuiz grades the student's answers and stores the mark once.
func (s *SubmissionService) SubmitQuiz(userID uint, quizID string) (*StudentQuizView, error) {
	student, err := s.Perm.StudentOf(userID)
	if err != nil {
		return nil, err
	}
	quiz, _, err := s.quizForMember(userID, quizID)
	if err != nil {
		return nil, err
	}

	submitted, err := s.SubmissionRepo.HasSubmitted(student.ID, quiz.ID)
	if err != nil {
		return nil, err
	}
	if submitted {
		return nil, util.NewNonFieldError(msgStudentSubmitted)
	}

	total, err := s.QuizRepo.CountQuestions(quiz.ID)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, util.NewNonFieldError(msgQuizNoQuestions)
	}

	correct, err := s.SubmissionRepo.CountCorrectAnswers(student.ID, quiz.ID)
	if err != nil {
		return nil, err
	}

	sq := &model.StudentQuiz{
		StudentID: student.ID,
		QuizID:    quiz.ID,
		Mark:      Grade(correct, total),
	}
	if err := s.SubmissionRepo.CreateStudentQuiz(sq); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.NewNonFieldError(msgStudentSubmitted)
		}
		return nil, err
	}
	monitoring.QuizSubmissions.Inc()

	logger.Log.Info("Quiz submitted",
		zap.String("quiz_id", quiz.ID),
		zap.String("student_id", student.ID),
		zap.Float64("mark", sq.Mark),
	)

	sq.Student = student
	sq.Quiz = quiz
	view := NewStudentQuizView(sq)
	return &view, nil
}

// ListStudentQuizzes shows a student their own mark and the classroom owner
// every mark for the quiz.
func (s *SubmissionService) ListStudentQuizzes(userID uint, quizID string, p util.Pagination) (*util.PageResponse, error) {
	quiz, classroom, err := s.quizForMember(userID, quizID)
	if err != nil {
		return nil, err
	}

	owner, err := s.Perm.IsOwner(classroom, userID)
	if err != nil {
		return nil, err
	}
	studentID := ""
	if !owner {
		student, err := s.Perm.StudentOf(userID)
		if err != nil {
			return nil, err
		}
		studentID = student.ID
	}

	results, total, err := s.SubmissionRepo.ListStudentQuizzes(quiz.ID, studentID, p.Offset(), p.Limit)
	if err != nil {
		return nil, err
	}
	views := make([]StudentQuizView, 0, len(results))
	for i := range results {
		views = append(views, NewStudentQuizView(&results[i]))
	}
	resp := util.NewPageResponse(views, total, p)
	return &resp, nil
}

// ExportMarks renders the quiz gradebook as an xlsx file for the owner.
func (s *SubmissionService) ExportMarks(userID uint, quizID string) (*model.Quiz, []byte, error) {
	if !model.IsUUID(quizID) {
		return nil, nil, util.ErrNotFound
	}
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		return nil, nil, notFound(err)
	}
	classroom, err := s.ClassroomRepo.FindByID(quiz.ClassroomID)
	if err != nil {
		return nil, nil, notFound(err)
	}
	if err := s.Perm.RequireOwner(classroom, userID); err != nil {
		return nil, nil, err
	}

	results, _, err := s.SubmissionRepo.ListStudentQuizzes(quiz.ID, "", 0, 0)
	if err != nil {
		return nil, nil, err
	}

	data, err := buildGradebook(results)
	if err != nil {
		return nil, nil, err
	}
	return quiz, data, nil
}

func buildGradebook(results []model.StudentQuiz) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.Log.Warn("Error closing gradebook", zap.Error(err))
		}
	}()

	if err := f.SetSheetName("Sheet1", gradebookSheet); err != nil {
		return nil, err
	}

	header := []interface{}{"Email", "First name", "Last name", "Mark", "Answered at"}
	if err := f.SetSheetRow(gradebookSheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, r := range results {
		var email, first, last string
		if r.Student != nil {
			email, first, last = r.Student.User.Email, r.Student.User.FirstName, r.Student.User.LastName
		}
		row := []interface{}{email, first, last, r.Mark, r.AnsweredAt.UTC().Format("2006-01-02 15:04:05")}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(gradebookSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write gradebook: %w", err)
	}
	return buf.Bytes(), nil
}
