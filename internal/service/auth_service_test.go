package service

import (
	"context"
	"testing"

	"quiz_room_hub/internal/model"
	"quiz_room_hub/internal/testutil"
	"quiz_room_hub/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerInput(email string, isTeacher bool) *RegisterInput {
	return &RegisterInput{
		Email:     strPtr(email),
		Password:  strPtr(testutil.Password),
		Password2: strPtr(testutil.Password),
		FirstName: strPtr("Ada"),
		LastName:  strPtr("Lovelace"),
		IsTeacher: boolPtr(isTeacher),
	}
}

func TestRegisterCreatesMatchingProfile(t *testing.T) {
	f := newFixture(t)

	teacher, err := f.auth.Register(registerInput("teacher@example.com", true))
	require.NoError(t, err)
	student, err := f.auth.Register(registerInput("student@EXAMPLE.com", false))
	require.NoError(t, err)
	assert.Equal(t, "student@example.com", student.Email)

	var count int64
	f.db.Model(&model.TeacherProfile{}).Where("user_id = ?", teacher.ID).Count(&count)
	assert.EqualValues(t, 1, count)
	f.db.Model(&model.StudentProfile{}).Where("user_id = ?", teacher.ID).Count(&count)
	assert.EqualValues(t, 0, count)
	f.db.Model(&model.StudentProfile{}).Where("user_id = ?", student.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestRegisterReportsEveryProblem(t *testing.T) {
	f := newFixture(t)
	_, err := f.auth.Register(registerInput("taken@example.com", false))
	require.NoError(t, err)

	in := registerInput("taken@example.com", false)
	in.Password, in.Password2 = strPtr("123"), strPtr("123")
	_, err = f.auth.Register(in)

	var verr *util.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{msgEmailTaken}, verr.Fields["email"])
	assert.Equal(t, []string{msgPasswordTooShort, msgPasswordNumeric}, verr.Fields["password"])

	in = registerInput("other@example.com", false)
	in.Password2 = strPtr("something-else-entirely")
	_, err = f.auth.Register(in)
	requireFieldError(t, err, "password", msgPasswordMismatch)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	_, err := f.auth.Register(registerInput("ada@example.com", true))
	require.NoError(t, err)

	resp, err := f.auth.Login(&LoginInput{Email: strPtr("ada@example.com"), Password: strPtr(testutil.Password)})
	require.NoError(t, err)
	assert.True(t, resp.IsTeacher)
	assert.NotEmpty(t, resp.Tokens.Access)
	assert.NotEmpty(t, resp.Tokens.Refresh)

	user, err := f.auth.UserRepo.FindByEmail("ada@example.com")
	require.NoError(t, err)
	assert.NotNil(t, user.LastLogin)

	_, err = f.auth.Login(&LoginInput{Email: strPtr("ada@example.com"), Password: strPtr("wrong-password")})
	requireFieldError(t, err, util.NonFieldErrorsKey, msgInvalidCredentials)

	_, err = f.auth.Login(&LoginInput{Email: strPtr("nobody@example.com"), Password: strPtr(testutil.Password)})
	requireFieldError(t, err, util.NonFieldErrorsKey, msgInvalidCredentials)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.auth.Register(registerInput("ada@example.com", false))
	require.NoError(t, err)
	resp, err := f.auth.Login(&LoginInput{Email: strPtr("ada@example.com"), Password: strPtr(testutil.Password)})
	require.NoError(t, err)
	refresh := &RefreshInput{Refresh: strPtr(resp.Tokens.Refresh)}

	access, err := f.auth.Refresh(ctx, refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, access.Access)

	require.NoError(t, f.auth.Logout(ctx, resp.ID, refresh))

	_, err = f.auth.Refresh(ctx, refresh)
	assert.ErrorIs(t, err, util.ErrInvalidToken)

	err = f.auth.Logout(ctx, resp.ID, refresh)
	requireFieldError(t, err, "refresh", msgTokenRevoked)

	err = f.auth.Logout(ctx, resp.ID, &RefreshInput{Refresh: strPtr(resp.Tokens.Access)})
	requireFieldError(t, err, "refresh", msgTokenInvalid)
}

func TestMe(t *testing.T) {
	f := newFixture(t)
	teacher, profile := testutil.CreateTeacher(t, f.db, "t@example.com")
	staff := testutil.CreateStaff(t, f.db, "staff@example.com")

	me, err := f.auth.Me(teacher)
	require.NoError(t, err)
	assert.Equal(t, "teacher", me.Role)
	assert.Equal(t, profile.ID, me.ProfileID)

	me, err = f.auth.Me(staff)
	require.NoError(t, err)
	assert.Equal(t, "staff", me.Role)
	assert.Empty(t, me.ProfileID)
}

func TestCreateAdminHasNoProfile(t *testing.T) {
	f := newFixture(t)

	admin, err := f.auth.CreateAdmin("root@example.com", testutil.Password)
	require.NoError(t, err)
	assert.True(t, admin.IsStaff)
	assert.True(t, admin.IsSuperuser)

	var count int64
	f.db.Model(&model.TeacherProfile{}).Where("user_id = ?", admin.ID).Count(&count)
	assert.EqualValues(t, 0, count)
}
