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

func TestClassroomLifecycle(t *testing.T) {
	f := newFixture(t)
	owner, _ := testutil.CreateTeacher(t, f.db, "owner@example.com")
	other, _ := testutil.CreateTeacher(t, f.db, "other@example.com")
	student, _ := testutil.CreateStudent(t, f.db, "student@example.com")

	_, err := f.classroom.Create(student.ID, &ClassroomInput{Name: strPtr("Nope")})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	classroom, err := f.classroom.Create(owner.ID, &ClassroomInput{Name: strPtr("  Algebra  "), Description: strPtr("Week 1")})
	require.NoError(t, err)
	assert.Equal(t, "Algebra", classroom.Name)
	assert.True(t, model.IsUUID(classroom.ID))

	page, err := f.classroom.List(owner.ID, firstPage)
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
	page, err = f.classroom.List(other.ID, firstPage)
	require.NoError(t, err)
	assert.EqualValues(t, 0, page.Total)

	_, err = f.classroom.Get(other.ID, classroom.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
	_, err = f.classroom.Get(owner.ID, model.GenerateUUID())
	assert.ErrorIs(t, err, util.ErrNotFound)
	_, err = f.classroom.Get(owner.ID, "not-a-uuid")
	assert.ErrorIs(t, err, util.ErrNotFound)

	updated, err := f.classroom.Update(owner.ID, classroom.ID, &ClassroomInput{Name: strPtr("Geometry")})
	require.NoError(t, err)
	assert.Equal(t, "Geometry", updated.Name)
	assert.Empty(t, updated.Description)

	_, err = f.classroom.Update(other.ID, classroom.ID, &ClassroomInput{Name: strPtr("Hijack")})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestCreateEnrollment(t *testing.T) {
	f := newFixture(t)
	owner, ownerProfile := testutil.CreateTeacher(t, f.db, "owner@example.com")
	other, _ := testutil.CreateTeacher(t, f.db, "other@example.com")
	studentUser, student := testutil.CreateStudent(t, f.db, "student@example.com")
	classroom := testutil.CreateClassroom(t, f.db, ownerProfile, "Algebra")

	_, err := f.classroom.CreateEnrollment(owner.ID, &EnrollmentInput{ClassroomID: strPtr(classroom.ID)})
	requireFieldError(t, err, "student_id", msgStudentIDRequired)

	_, err = f.classroom.CreateEnrollment(owner.ID, &EnrollmentInput{
		ClassroomID: strPtr(model.GenerateUUID()), StudentID: strPtr(student.ID),
	})
	requireFieldError(t, err, util.NonFieldErrorsKey, msgClassroomMissing)

	_, err = f.classroom.CreateEnrollment(owner.ID, &EnrollmentInput{
		ClassroomID: strPtr(classroom.ID), StudentID: strPtr(model.GenerateUUID()),
	})
	requireFieldError(t, err, util.NonFieldErrorsKey, msgStudentMissing)

	_, err = f.classroom.CreateEnrollment(other.ID, &EnrollmentInput{
		ClassroomID: strPtr(classroom.ID), StudentID: strPtr(student.ID),
	})
	requireFieldError(t, err, util.NonFieldErrorsKey, msgNotValidClassroom)

	view, err := f.classroom.CreateEnrollment(owner.ID, &EnrollmentInput{
		ClassroomID: strPtr(classroom.ID), StudentID: strPtr(student.ID),
	})
	require.NoError(t, err)
	assert.Equal(t, student.ID, view.Student.ID)
	assert.Equal(t, classroom.ID, view.Classroom.ID)

	// students enroll themselves and student_id is ignored
	_, err = f.classroom.CreateEnrollment(studentUser.ID, &EnrollmentInput{
		ClassroomID: strPtr(classroom.ID), StudentID: strPtr(model.GenerateUUID()),
	})
	requireFieldError(t, err, util.NonFieldErrorsKey, msgAlreadyEnrolled)

	staff := testutil.CreateStaff(t, f.db, "staff@example.com")
	_, err = f.classroom.CreateEnrollment(staff.ID, &EnrollmentInput{ClassroomID: strPtr(classroom.ID)})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestEnrollmentAccess(t *testing.T) {
	f := newFixture(t)
	owner, ownerProfile := testutil.CreateTeacher(t, f.db, "owner@example.com")
	studentUser, student := testutil.CreateStudent(t, f.db, "student@example.com")
	outsider, _ := testutil.CreateStudent(t, f.db, "outsider@example.com")
	classroom := testutil.CreateClassroom(t, f.db, ownerProfile, "Algebra")
	testutil.Enroll(t, f.db, student, classroom)

	page, err := f.classroom.ListEnrollments(studentUser.ID, firstPage)
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
	page, err = f.classroom.ListEnrollments(owner.ID, firstPage)
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
	page, err = f.classroom.ListEnrollments(outsider.ID, firstPage)
	require.NoError(t, err)
	assert.EqualValues(t, 0, page.Total)

	view, err := f.classroom.GetEnrollment(studentUser.ID, student.ID, classroom.ID)
	require.NoError(t, err)
	assert.Equal(t, "student@example.com", view.Student.Email)

	_, err = f.classroom.GetEnrollment(outsider.ID, student.ID, classroom.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	err = f.classroom.DeleteEnrollment(studentUser.ID, student.ID, classroom.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
	require.NoError(t, f.classroom.DeleteEnrollment(owner.ID, student.ID, classroom.ID))

	_, err = f.classroom.GetEnrollment(owner.ID, student.ID, classroom.ID)
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestDeleteClassroomCascades(t *testing.T) {
	f := newFixture(t)
	owner, ownerProfile := testutil.CreateTeacher(t, f.db, "owner@example.com")
	studentUser, student := testutil.CreateStudent(t, f.db, "student@example.com")
	classroom := testutil.CreateClassroom(t, f.db, ownerProfile, "Algebra")
	keep := testutil.CreateClassroom(t, f.db, ownerProfile, "Kept")
	testutil.Enroll(t, f.db, student, classroom)
	testutil.Enroll(t, f.db, student, keep)

	post, err := f.post.CreatePost(owner.ID, classroom.ID, &PostInput{Title: strPtr("Hello"), Content: strPtr("World")})
	require.NoError(t, err)
	_, err = f.post.CreateComment(studentUser.ID, classroom.ID, post.ID, &CommentInput{Content: strPtr("Hi")})
	require.NoError(t, err)

	quiz, valid, _ := testutil.CreateQuiz(t, f.db, classroom, 2)
	_, err = f.submission.SubmitAnswer(studentUser.ID, quiz.ID, &StudentAnswerInput{
		QuestionID: strPtr(valid[0].QuestionID), AnswerID: strPtr(valid[0].ID),
	})
	require.NoError(t, err)
	_, err = f.submission.SubmitQuiz(studentUser.ID, quiz.ID)
	require.NoError(t, err)

	require.NoError(t, f.classroom.Delete(owner.ID, classroom.ID))

	for _, m := range []interface{}{
		&model.CoursePost{}, &model.Comment{}, &model.Quiz{}, &model.Question{},
		&model.Answer{}, &model.StudentAnswer{}, &model.StudentQuiz{},
	} {
		var count int64
		require.NoError(t, f.db.Model(m).Count(&count).Error)
		assert.Zero(t, count, "%T rows left", m)
	}

	var enrollments int64
	f.db.Model(&model.StudentClassroom{}).Count(&enrollments)
	assert.EqualValues(t, 1, enrollments)
}

func rosterFile(t *testing.T, rows ...string) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, value := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("Sheet1", cell, value))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestImportRoster(t *testing.T) {
	f := newFixture(t)
	owner, ownerProfile := testutil.CreateTeacher(t, f.db, "owner@example.com")
	_, enrolled := testutil.CreateStudent(t, f.db, "enrolled@example.com")
	testutil.CreateStudent(t, f.db, "new@example.com")
	classroom := testutil.CreateClassroom(t, f.db, ownerProfile, "Algebra")
	testutil.Enroll(t, f.db, enrolled, classroom)

	file := rosterFile(t,
		"Email",
		"new@EXAMPLE.com",
		"enrolled@example.com",
		"owner@example.com",
		"ghost@example.com",
		"Jane Doe",
		"new@example.com",
	)

	result, err := f.classroom.ImportRoster(owner.ID, classroom.ID, file)
	require.NoError(t, err)
	assert.Equal(t, []string{"new@example.com"}, result.Enrolled)
	assert.ElementsMatch(t, []RosterSkip{
		{Email: "new@example.com", Reason: rosterReasonDuplicate},
		{Email: "enrolled@example.com", Reason: rosterReasonEnrolled},
		{Email: "owner@example.com", Reason: rosterReasonNotStudent},
		{Email: "ghost@example.com", Reason: rosterReasonNotStudent},
		{Email: "Jane Doe", Reason: rosterReasonInvalid},
	}, result.Skipped)

	var count int64
	f.db.Model(&model.StudentClassroom{}).Where("classroom_id = ?", classroom.ID).Count(&count)
	assert.EqualValues(t, 2, count)

	_, err = f.classroom.ImportRoster(owner.ID, classroom.ID, bytes.NewBufferString("not a spreadsheet"))
	assert.ErrorIs(t, err, util.ErrInvalidFile)
}
