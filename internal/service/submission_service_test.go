package service

import (
	"bytes"
	"testing"

	"quiz_room_hub/internal/model"
	"quiz_room_hub/internal/testutil"
	"quiz_room_hub/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestGrade(t *testing.T) {
	tests := []struct {
		correct, total int64
		want           float64
	}{
		{0, 3, 0},
		{1, 3, 33.33},
		{2, 3, 66.67},
		{3, 3, 100},
		{1, 8, 12.5},
		{5, 7, 71.43},
		{0, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Grade(tt.correct, tt.total), "%d/%d", tt.correct, tt.total)
	}
}

type quizSetup struct {
	owner, student, outsider *model.User
	quiz                     *model.Quiz
	valid, invalid           []model.Answer
}

func newQuizSetup(t *testing.T, f *fixture, questions int) *quizSetup {
	t.Helper()
	owner, ownerProfile := testutil.CreateTeacher(t, f.db, "owner@example.com")
	studentUser, student := testutil.CreateStudent(t, f.db, "student@example.com")
	outsider, _ := testutil.CreateStudent(t, f.db, "outsider@example.com")
	classroom := testutil.CreateClassroom(t, f.db, ownerProfile, "Algebra")
	testutil.Enroll(t, f.db, student, classroom)
	quiz, valid, invalid := testutil.CreateQuiz(t, f.db, classroom, questions)
	return &quizSetup{owner: owner, student: studentUser, outsider: outsider, quiz: quiz, valid: valid, invalid: invalid}
}

func answerInput(a model.Answer) *StudentAnswerInput {
	return &StudentAnswerInput{QuestionID: strPtr(a.QuestionID), AnswerID: strPtr(a.ID)}
}

func TestSubmitQuizGradesAnswers(t *testing.T) {
	f := newFixture(t)
	s := newQuizSetup(t, f, 3)

	view, err := f.submission.SubmitAnswer(s.student.ID, s.quiz.ID, answerInput(s.valid[0]))
	require.NoError(t, err)
	assert.Nil(t, view.Answer.IsValid)
	_, err = f.submission.SubmitAnswer(s.student.ID, s.quiz.ID, answerInput(s.invalid[1]))
	require.NoError(t, err)
	_, err = f.submission.SubmitAnswer(s.student.ID, s.quiz.ID, answerInput(s.valid[2]))
	require.NoError(t, err)

	result, err := f.submission.SubmitQuiz(s.student.ID, s.quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, 66.67, result.Mark)

	_, err = f.submission.SubmitQuiz(s.student.ID, s.quiz.ID)
	requireFieldError(t, err, util.NonFieldErrorsKey, msgStudentSubmitted)
}

func TestSubmitAnswerRules(t *testing.T) {
	f := newFixture(t)
	s := newQuizSetup(t, f, 2)

	_, err := f.submission.SubmitAnswer(s.owner.ID, s.quiz.ID, answerInput(s.valid[0]))
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = f.submission.SubmitAnswer(s.outsider.ID, s.quiz.ID, answerInput(s.valid[0]))
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = f.submission.SubmitAnswer(s.student.ID, model.GenerateUUID(), answerInput(s.valid[0]))
	requireFieldError(t, err, util.NonFieldErrorsKey, msgQuizDoesNotExist)

	_, err = f.submission.SubmitAnswer(s.student.ID, s.quiz.ID, &StudentAnswerInput{
		QuestionID: strPtr(model.GenerateUUID()), AnswerID: strPtr(s.valid[0].ID),
	})
	requireFieldError(t, err, util.NonFieldErrorsKey, msgQuestionDoesNotExist)

	// answer from another question of the same quiz
	_, err = f.submission.SubmitAnswer(s.student.ID, s.quiz.ID, &StudentAnswerInput{
		QuestionID: strPtr(s.valid[0].QuestionID), AnswerID: strPtr(s.valid[1].ID),
	})
	requireFieldError(t, err, util.NonFieldErrorsKey, msgAnswerDoesNotExist)

	_, err = f.submission.SubmitAnswer(s.student.ID, s.quiz.ID, answerInput(s.valid[0]))
	require.NoError(t, err)
	_, err = f.submission.SubmitAnswer(s.student.ID, s.quiz.ID, answerInput(s.invalid[0]))
	requireFieldError(t, err, util.NonFieldErrorsKey, msgAlreadyAnswered)

	_, err = f.submission.SubmitQuiz(s.student.ID, s.quiz.ID)
	require.NoError(t, err)
	_, err = f.submission.SubmitAnswer(s.student.ID, s.quiz.ID, answerInput(s.valid[1]))
	requireFieldError(t, err, util.NonFieldErrorsKey, msgQuizAlreadySubmitted)
}

func TestSubmitQuizWithoutQuestions(t *testing.T) {
	f := newFixture(t)
	s := newQuizSetup(t, f, 0)

	_, err := f.submission.SubmitQuiz(s.student.ID, s.quiz.ID)
	requireFieldError(t, err, util.NonFieldErrorsKey, msgQuizNoQuestions)
}

func TestListStudentQuizzesScopesByRole(t *testing.T) {
	f := newFixture(t)
	s := newQuizSetup(t, f, 1)
	second, secondProfile := testutil.CreateStudent(t, f.db, "second@example.com")
	var classroom model.Classroom
	require.NoError(t, f.db.First(&classroom, "id = ?", s.quiz.ClassroomID).Error)
	testutil.Enroll(t, f.db, secondProfile, &classroom)

	_, err := f.submission.SubmitAnswer(s.student.ID, s.quiz.ID, answerInput(s.valid[0]))
	require.NoError(t, err)
	_, err = f.submission.SubmitQuiz(s.student.ID, s.quiz.ID)
	require.NoError(t, err)
	_, err = f.submission.SubmitQuiz(second.ID, s.quiz.ID)
	require.NoError(t, err)

	page, err := f.submission.ListStudentQuizzes(s.owner.ID, s.quiz.ID, firstPage)
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)
	views := page.List.([]StudentQuizView)
	assert.Equal(t, 100.0, views[0].Mark)
	assert.Equal(t, 0.0, views[1].Mark)

	page, err = f.submission.ListStudentQuizzes(second.ID, s.quiz.ID, firstPage)
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
	assert.Equal(t, "second@example.com", page.List.([]StudentQuizView)[0].Student.Email)

	_, err = f.submission.ListStudentQuizzes(s.outsider.ID, s.quiz.ID, firstPage)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestExportMarks(t *testing.T) {
	f := newFixture(t)
	s := newQuizSetup(t, f, 2)

	_, err := f.submission.SubmitAnswer(s.student.ID, s.quiz.ID, answerInput(s.valid[0]))
	require.NoError(t, err)
	_, err = f.submission.SubmitQuiz(s.student.ID, s.quiz.ID)
	require.NoError(t, err)

	_, _, err = f.submission.ExportMarks(s.student.ID, s.quiz.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	quiz, data, err := f.submission.ExportMarks(s.owner.ID, s.quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, s.quiz.ID, quiz.ID)

	book, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer book.Close()
	rows, err := book.GetRows(gradebookSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Email", "First name", "Last name", "Mark", "Answered at"}, rows[0])
	assert.Equal(t, "student@example.com", rows[1][0])
	assert.Equal(t, "50", rows[1][3])
}
