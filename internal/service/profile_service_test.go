package service

import (
	"testing"
	"time"

	"quiz_room_hub/internal/model"
	"quiz_room_hub/internal/testutil"
	"quiz_room_hub/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateTeacherProfile(t *testing.T) {
	f := newFixture(t)
	owner, profile := testutil.CreateTeacher(t, f.db, "owner@example.com")
	other, _ := testutil.CreateTeacher(t, f.db, "other@example.com")

	dob, err := model.ParseDate("1990-04-12")
	require.NoError(t, err)
	years := 7
	in := &TeacherProfileInput{
		StudentProfileInput: StudentProfileInput{
			UserFirstName: strPtr("Grace"),
			Bio:           strPtr("Math teacher"),
			DateOfBirth:   &dob,
		},
		YearsOfExperience: &years,
	}

	_, err = f.profile.UpdateTeacher(other.ID, profile.ID, in)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	view, err := f.profile.UpdateTeacher(owner.ID, profile.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Grace", view.UserFirstName)
	assert.Equal(t, "owner@example.com", view.UserEmail)
	assert.Equal(t, "Math teacher", view.Bio)
	require.NotNil(t, view.DateOfBirth)
	assert.Equal(t, time.April, view.DateOfBirth.Month())
	require.NotNil(t, view.YearsOfExperience)
	assert.EqualValues(t, 7, *view.YearsOfExperience)

	_, err = f.profile.GetTeacher(model.GenerateUUID())
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestListProfiles(t *testing.T) {
	f := newFixture(t)
	testutil.CreateTeacher(t, f.db, "t@example.com")
	testutil.CreateStudent(t, f.db, "s1@example.com")
	testutil.CreateStudent(t, f.db, "s2@example.com")
	testutil.CreateStaff(t, f.db, "staff@example.com")

	page, err := f.profile.ListTeachers(firstPage)
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)

	page, err = f.profile.ListStudents(util.Pagination{Page: 2, Limit: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)
	assert.Len(t, page.List.([]StudentProfileView), 1)
}

func TestDeleteTeacherRemovesEverythingOwned(t *testing.T) {
	f := newFixture(t)
	owner, profile := testutil.CreateTeacher(t, f.db, "owner@example.com")
	studentUser, student := testutil.CreateStudent(t, f.db, "student@example.com")
	classroom := testutil.CreateClassroom(t, f.db, profile, "Algebra")
	testutil.Enroll(t, f.db, student, classroom)
	testutil.CreateQuiz(t, f.db, classroom, 1)

	assert.ErrorIs(t, f.profile.DeleteTeacher(studentUser.ID, profile.ID), util.ErrPermissionDenied)
	require.NoError(t, f.profile.DeleteTeacher(owner.ID, profile.ID))

	var count int64
	f.db.Model(&model.User{}).Where("id = ?", owner.ID).Count(&count)
	assert.Zero(t, count)
	for _, m := range []interface{}{&model.TeacherProfile{}, &model.Classroom{}, &model.StudentClassroom{}, &model.Quiz{}, &model.Answer{}} {
		f.db.Model(m).Count(&count)
		assert.Zero(t, count, "%T rows left", m)
	}

	f.db.Model(&model.StudentProfile{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestDeleteStudentRemovesEverythingOwned(t *testing.T) {
	f := newFixture(t)
	owner, teacher := testutil.CreateTeacher(t, f.db, "owner@example.com")
	studentUser, student := testutil.CreateStudent(t, f.db, "student@example.com")
	_, other := testutil.CreateStudent(t, f.db, "other@example.com")
	classroom := testutil.CreateClassroom(t, f.db, teacher, "Algebra")
	testutil.Enroll(t, f.db, student, classroom)
	testutil.Enroll(t, f.db, other, classroom)
	quiz, valid, _ := testutil.CreateQuiz(t, f.db, classroom, 1)

	post, err := f.post.CreatePost(owner.ID, classroom.ID, &PostInput{Title: strPtr("Hello"), Content: strPtr("World")})
	require.NoError(t, err)
	_, err = f.post.CreateComment(studentUser.ID, classroom.ID, post.ID, &CommentInput{Content: strPtr("Hi")})
	require.NoError(t, err)
	_, err = f.submission.SubmitAnswer(studentUser.ID, quiz.ID, &StudentAnswerInput{
		QuestionID: strPtr(valid[0].QuestionID), AnswerID: strPtr(valid[0].ID),
	})
	require.NoError(t, err)
	_, err = f.submission.SubmitQuiz(studentUser.ID, quiz.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, f.profile.DeleteStudent(owner.ID, student.ID), util.ErrPermissionDenied)
	require.NoError(t, f.profile.DeleteStudent(studentUser.ID, student.ID))

	var count int64
	f.db.Model(&model.User{}).Where("id = ?", studentUser.ID).Count(&count)
	assert.Zero(t, count)
	for _, m := range []interface{}{&model.StudentAnswer{}, &model.StudentQuiz{}, &model.Comment{}} {
		f.db.Model(m).Count(&count)
		assert.Zero(t, count, "%T rows left", m)
	}
	f.db.Model(&model.StudentProfile{}).Where("id = ?", student.ID).Count(&count)
	assert.Zero(t, count)

	// the other student's enrollment and the classroom content stay
	f.db.Model(&model.StudentClassroom{}).Count(&count)
	assert.EqualValues(t, 1, count)
	f.db.Model(&model.CoursePost{}).Count(&count)
	assert.EqualValues(t, 1, count)
	f.db.Model(&model.Quiz{}).Count(&count)
	assert.EqualValues(t, 1, count)
}
