package util

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"quiz_room_hub/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type classroomInput struct {
	Name        *string `json:"name" validate:"required,notblank,max=255"`
	Description *string `json:"description"`
}

type answerInput struct {
	Description *string `json:"description" validate:"required,notblank"`
	IsValid     *bool   `json:"is_valid" validate:"required"`
}

type profileInput struct {
	FirstName   *string     `json:"user_first_name"`
	DateOfBirth *model.Date `json:"date_of_birth"`
	Years       *int        `json:"years_of_experience" validate:"omitempty,min=0"`
}

func fieldErrors(t *testing.T, err error) map[string][]string {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
	return verr.Fields
}

func TestDecodeStrictValid(t *testing.T) {
	var in classroomInput
	require.NoError(t, DecodeStrict([]byte(`{"name":"Algebra","description":"x"}`), &in))
	assert.Equal(t, "Algebra", *in.Name)
	assert.Equal(t, "x", *in.Description)
}

func TestDecodeStrictRequired(t *testing.T) {
	var in classroomInput
	errs := fieldErrors(t, DecodeStrict([]byte(`{}`), &in))
	assert.Equal(t, []string{"This field is required."}, errs["name"])
}

func TestDecodeStrictBlank(t *testing.T) {
	var in classroomInput
	errs := fieldErrors(t, DecodeStrict([]byte(`{"name":"   "}`), &in))
	assert.Equal(t, []string{"This field may not be blank."}, errs["name"])
}

func TestDecodeStrictUnknownFields(t *testing.T) {
	var in classroomInput
	errs := fieldErrors(t, DecodeStrict([]byte(`{"name":"a","zeta":1,"alpha":2}`), &in))
	assert.Equal(t, []string{"alpha", "zeta"}, errs[InvalidFieldsKey])
}

func TestDecodeStrictTypeErrors(t *testing.T) {
	var in answerInput
	errs := fieldErrors(t, DecodeStrict([]byte(`{"description":5,"is_valid":"yes"}`), &in))
	assert.Equal(t, []string{"Not a valid string."}, errs["description"])
	assert.Equal(t, []string{"Not a valid boolean."}, errs["is_valid"])
}

func TestDecodeStrictDateAndMin(t *testing.T) {
	var in profileInput
	errs := fieldErrors(t, DecodeStrict([]byte(`{"date_of_birth":"01/02/2000"}`), &in))
	assert.Contains(t, errs["date_of_birth"][0], "YYYY-MM-DD")

	in = profileInput{}
	errs = fieldErrors(t, DecodeStrict([]byte(`{"years_of_experience":-1}`), &in))
	assert.Equal(t, []string{"Ensure this value is greater than or equal to 0."}, errs["years_of_experience"])

	in = profileInput{}
	require.NoError(t, DecodeStrict([]byte(`{"date_of_birth":"2000-02-01","years_of_experience":3}`), &in))
	assert.Equal(t, "2000-02-01", in.DateOfBirth.String())
	assert.Equal(t, 3, *in.Years)
}

func TestDecodeStrictRejectsNonObject(t *testing.T) {
	var in classroomInput
	errs := fieldErrors(t, DecodeStrict([]byte(`[1,2]`), &in))
	assert.NotEmpty(t, errs[NonFieldErrorsKey])
}

func TestValidationErrorOrNil(t *testing.T) {
	assert.NoError(t, NewValidationError().OrNil())
	err := NewFieldError("email", "Enter a valid email address.").OrNil()
	require.Error(t, err)
	assert.Equal(t, "email: Enter a valid email address.", err.Error())
}

func bindRequest(t *testing.T, body string, dst interface{}) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	return BindJSON(c, dst)
}

func TestBindJSONBodyLimit(t *testing.T) {
	var in classroomInput
	require.NoError(t, bindRequest(t, `{"name":"Algebra"}`, &in))
	assert.Equal(t, "Algebra", *in.Name)

	huge := `{"name":"Algebra","description":"` + strings.Repeat("x", MaxJSONBodyBytes) + `"}`
	err := bindRequest(t, huge, &classroomInput{})
	assert.ErrorIs(t, err, ErrRequestTooLarge)
}
