package service

import (
	"testing"

	"quiz_room_hub/internal/repository"
	"quiz_room_hub/internal/testutil"
	"quiz_room_hub/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db         *gorm.DB
	auth       *AuthService
	profile    *ProfileService
	classroom  *ClassroomService
	post       *PostService
	quiz       *QuizService
	submission *SubmissionService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.OpenDB(t)

	users := repository.NewUserRepository(db)
	profiles := repository.NewProfileRepository(db)
	classrooms := repository.NewClassroomRepository(db)
	enrollments := repository.NewEnrollmentRepository(db)
	quizzes := repository.NewQuizRepository(db)
	perm := NewPermissionService(profiles, enrollments)

	return &fixture{
		db:        db,
		auth:      NewAuthService(users, profiles, NewDBTokenStore(repository.NewTokenRepository(db)), testutil.Config()),
		profile:   NewProfileService(profiles, users),
		classroom: NewClassroomService(classrooms, enrollments, profiles, perm),
		post: NewPostService(repository.NewPostRepository(db), repository.NewCommentRepository(db),
			classrooms, perm),
		quiz:       NewQuizService(quizzes, classrooms, perm),
		submission: NewSubmissionService(repository.NewSubmissionRepository(db), quizzes, classrooms, perm),
	}
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

var firstPage = util.Pagination{Page: 1, Limit: util.DefaultPageSize}

// requireFieldError asserts err is a validation error carrying msg for field.
func requireFieldError(t *testing.T, err error, field, msg string) {
	t.Helper()
	var verr *util.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields[field], msg)
}
