package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"quiz_room_hub/internal/model"
	"quiz_room_hub/internal/repository"
	"quiz_room_hub/internal/service"
	"quiz_room_hub/internal/testutil"
	"quiz_room_hub/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type apiResponse struct {
	Code    int                 `json:"code"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  map[string][]string `json:"errors"`
}

type testServer struct {
	t   *testing.T
	db  *gorm.DB
	app *App
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := testutil.OpenDB(t)
	cfg := testutil.Config()
	tokens := service.NewDBTokenStore(repository.NewTokenRepository(db))
	return &testServer{t: t, db: db, app: NewAppWithStore(cfg, db, tokens)}
}

func (s *testServer) token(user *model.User) string {
	s.t.Helper()
	token, err := util.GenerateJWT(user, util.AccessToken, testutil.Secret, s.app.Config.JWT.AccessExpire)
	require.NoError(s.t, err)
	return token
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(s.t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.app.Router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(resp.Data, data))
	}
	return resp
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/register", "", map[string]interface{}{
		"email": "ada@example.com", "password": testutil.Password, "password2": testutil.Password,
		"first_name": "Ada", "is_teacher": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/register", "", map[string]interface{}{"email": "bad"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode(t, rec, nil)
	assert.Equal(t, []string{"Enter a valid email address."}, resp.Errors["email"])
	assert.Equal(t, []string{"This field is required."}, resp.Errors["password"])

	var login service.LoginResponse
	rec = s.do(http.MethodPost, "/api/login", "", map[string]string{"email": "ada@example.com", "password": testutil.Password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &login)
	assert.True(t, login.IsTeacher)

	rec = s.do(http.MethodPost, "/api/login", "", map[string]string{"email": "ada@example.com", "password": "nope-nope-nope"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"Invalid credentials."}, decode(t, rec, nil).Errors[util.NonFieldErrorsKey])

	var me service.MeResponse
	rec = s.do(http.MethodGet, "/api/me", login.Tokens.Access, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &me)
	assert.Equal(t, "teacher", me.Role)

	rec = s.do(http.MethodGet, "/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = s.do(http.MethodGet, "/api/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = s.do(http.MethodGet, "/api/me", login.Tokens.Refresh, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/api/token/refresh", "", map[string]string{"refresh": login.Tokens.Refresh})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, "/api/logout", login.Tokens.Access, map[string]string{"refresh": login.Tokens.Refresh})
	require.Equal(t, http.StatusResetContent, rec.Code, rec.Body.String())
	assert.Empty(t, rec.Body.Bytes())

	rec = s.do(http.MethodPost, "/api/token/refresh", "", map[string]string{"refresh": login.Tokens.Refresh})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = s.do(http.MethodPost, "/api/logout", login.Tokens.Access, map[string]string{"refresh": login.Tokens.Refresh})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStrictBinding(t *testing.T) {
	s := newTestServer(t)
	teacher, _ := testutil.CreateTeacher(t, s.db, "t@example.com")
	token := s.token(teacher)

	rec := s.do(http.MethodPost, "/api/classrooms", token, map[string]interface{}{"name": "Algebra", "room": 12, "floor": 2})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"floor", "room"}, decode(t, rec, nil).Errors[util.InvalidFieldsKey])

	rec = s.do(http.MethodPost, "/api/classrooms", token, map[string]interface{}{"name": 42})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"Not a valid string."}, decode(t, rec, nil).Errors["name"])

	rec = s.do(http.MethodPost, "/api/classrooms", token, map[string]interface{}{"name": "   "})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"This field may not be blank."}, decode(t, rec, nil).Errors["name"])

	rec = s.do(http.MethodPost, "/api/classrooms", token, "[1, 2]")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/classrooms", token, map[string]interface{}{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"This field is required."}, decode(t, rec, nil).Errors["name"])
}

func TestProfileRoutes(t *testing.T) {
	s := newTestServer(t)
	teacher, profile := testutil.CreateTeacher(t, s.db, "t@example.com")
	student, _ := testutil.CreateStudent(t, s.db, "s@example.com")
	staff := testutil.CreateStaff(t, s.db, "staff@example.com")

	rec := s.do(http.MethodGet, "/api/profiles/teachers", s.token(teacher), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = s.do(http.MethodGet, "/api/profiles/students", s.token(staff), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	path := "/api/profiles/teachers/" + profile.ID
	rec = s.do(http.MethodPut, path, s.token(student), map[string]interface{}{"bio": "hi"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodPut, path, s.token(teacher), map[string]interface{}{"bio": 5, "date_of_birth": "12/04/1990"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode(t, rec, nil)
	assert.Equal(t, []string{"Not a valid string."}, resp.Errors["bio"])
	assert.Contains(t, resp.Errors["date_of_birth"][0], "YYYY-MM-DD")

	var fetched map[string]interface{}
	rec = s.do(http.MethodGet, path, s.token(student), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &fetched)

	// a fetched profile can be sent back with edits
	fetched["bio"] = "Loves geometry"
	fetched["date_of_birth"] = "1990-04-12"
	fetched["years_of_experience"] = 3
	var view service.TeacherProfileView
	rec = s.do(http.MethodPut, path, s.token(teacher), fetched)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &view)
	assert.Equal(t, "Loves geometry", view.Bio)
	assert.Equal(t, "1990-04-12", view.DateOfBirth.String())

	rec = s.do(http.MethodDelete, path, s.token(teacher), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(http.MethodGet, path, s.token(student), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClassroomAndPostRoutes(t *testing.T) {
	s := newTestServer(t)
	teacher, _ := testutil.CreateTeacher(t, s.db, "t@example.com")
	student, studentProfile := testutil.CreateStudent(t, s.db, "s@example.com")
	teacherToken, studentToken := s.token(teacher), s.token(student)

	var classroom model.Classroom
	rec := s.do(http.MethodPost, "/api/classrooms", teacherToken, map[string]string{"name": "Algebra"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	decode(t, rec, &classroom)

	rec = s.do(http.MethodPost, "/api/classrooms", studentToken, map[string]string{"name": "Mine"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodGet, "/api/classrooms/"+classroom.ID, studentToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodPost, "/api/students-classrooms", studentToken, map[string]string{"classroom_id": classroom.ID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = s.do(http.MethodGet, "/api/classrooms/"+classroom.ID, studentToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	postsPath := fmt.Sprintf("/api/classrooms/%s/posts", classroom.ID)
	var post model.CoursePost
	rec = s.do(http.MethodPost, postsPath, teacherToken, map[string]string{"title": "Welcome", "content": "Hello"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	decode(t, rec, &post)

	rec = s.do(http.MethodGet, "/api/classrooms/"+model.GenerateUUID()+"/posts", studentToken, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"Classroom does not exist."}, decode(t, rec, nil).Errors[util.NonFieldErrorsKey])

	commentsPath := fmt.Sprintf("%s/%s/comments", postsPath, post.ID)
	rec = s.do(http.MethodPost, commentsPath, studentToken, map[string]string{"content": "Thanks"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var page struct {
		List  []model.Comment `json:"list"`
		Total int64           `json:"total"`
	}
	rec = s.do(http.MethodGet, commentsPath, teacherToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &page)
	require.EqualValues(t, 1, page.Total)
	assert.Equal(t, "s@example.com", page.List[0].User.Email)

	enrollmentPath := fmt.Sprintf("/api/students-classrooms/%s/%s", studentProfile.ID, classroom.ID)
	rec = s.do(http.MethodGet, enrollmentPath, studentToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(http.MethodDelete, enrollmentPath, studentToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodDelete, "/api/classrooms/"+classroom.ID, teacherToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(http.MethodGet, "/api/classrooms/"+classroom.ID, teacherToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestQuizRoutes(t *testing.T) {
	s := newTestServer(t)
	teacher, teacherProfile := testutil.CreateTeacher(t, s.db, "t@example.com")
	student, studentProfile := testutil.CreateStudent(t, s.db, "s@example.com")
	teacherToken, studentToken := s.token(teacher), s.token(student)
	classroom := testutil.CreateClassroom(t, s.db, teacherProfile, "Algebra")
	testutil.Enroll(t, s.db, studentProfile, classroom)

	rec := s.do(http.MethodPost, "/api/quizzes", teacherToken, map[string]string{"classroom_id": model.GenerateUUID(), "title": "Q"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"Classroom does not exist"}, decode(t, rec, nil).Errors[util.NonFieldErrorsKey])

	var quiz model.Quiz
	rec = s.do(http.MethodPost, "/api/quizzes", teacherToken, map[string]string{"classroom_id": classroom.ID, "title": "Q"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	decode(t, rec, &quiz)

	var question service.QuestionView
	rec = s.do(http.MethodPost, "/api/quizzes/"+quiz.ID+"/questions", teacherToken, map[string]string{"description": "2+2?"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	decode(t, rec, &question)

	answersPath := fmt.Sprintf("/api/quizzes/%s/questions/%s/answers", quiz.ID, question.ID)
	rec = s.do(http.MethodPost, answersPath, teacherToken, map[string]interface{}{"description": "4", "is_valid": "yes"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"Not a valid boolean."}, decode(t, rec, nil).Errors["is_valid"])

	var right, wrong model.Answer
	rec = s.do(http.MethodPost, answersPath, teacherToken, map[string]interface{}{"description": "4", "is_valid": true})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	decode(t, rec, &right)
	rec = s.do(http.MethodPost, answersPath, teacherToken, map[string]interface{}{"description": "5", "is_valid": false})
	require.Equal(t, http.StatusCreated, rec.Code)
	decode(t, rec, &wrong)

	rec = s.do(http.MethodGet, answersPath, studentToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var studentQuestion service.QuestionView
	rec = s.do(http.MethodGet, fmt.Sprintf("/api/quizzes/%s/questions/%s", quiz.ID, question.ID), studentToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &studentQuestion)
	require.Len(t, studentQuestion.Answers, 2)
	assert.Nil(t, studentQuestion.Answers[0].IsValid)

	rec = s.do(http.MethodPost, "/api/quizzes/"+quiz.ID+"/student-answer", studentToken,
		map[string]string{"question_id": question.ID, "answer_id": right.ID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = s.do(http.MethodPost, "/api/quizzes/"+quiz.ID+"/student-answer", studentToken,
		map[string]string{"question_id": question.ID, "answer_id": wrong.ID})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"Student cannot answer the same question again."}, decode(t, rec, nil).Errors[util.NonFieldErrorsKey])

	var result service.StudentQuizView
	rec = s.do(http.MethodPost, "/api/quizzes/"+quiz.ID+"/student-quiz/submit", studentToken, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	decode(t, rec, &result)
	assert.Equal(t, 100.0, result.Mark)

	rec = s.do(http.MethodGet, "/api/quizzes/"+quiz.ID+"/student-quiz", studentToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/quizzes/"+quiz.ID+"/student-quiz/export", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = s.do(http.MethodGet, "/api/quizzes/"+quiz.ID+"/student-quiz/export", teacherToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, util.MimeXLSX, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), quiz.ID)

	rec = s.do(http.MethodDelete, "/api/quizzes/"+quiz.ID, teacherToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRosterUpload(t *testing.T) {
	s := newTestServer(t)
	teacher, teacherProfile := testutil.CreateTeacher(t, s.db, "t@example.com")
	testutil.CreateStudent(t, s.db, "s@example.com")
	classroom := testutil.CreateClassroom(t, s.db, teacherProfile, "Algebra")

	book := excelize.NewFile()
	require.NoError(t, book.SetCellValue("Sheet1", "A1", "Email"))
	require.NoError(t, book.SetCellValue("Sheet1", "A2", "s@example.com"))
	data, err := book.WriteToBuffer()
	require.NoError(t, err)
	book.Close()

	upload := func(content []byte) *httptest.ResponseRecorder {
		var body bytes.Buffer
		w := multipart.NewWriter(&body)
		part, err := w.CreateFormFile("file", "roster.xlsx")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/classrooms/"+classroom.ID+"/roster", &body)
		req.Header.Set("Content-Type", w.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+s.token(teacher))
		rec := httptest.NewRecorder()
		s.app.Router.ServeHTTP(rec, req)
		return rec
	}

	var result service.RosterResult
	rec := upload(data.Bytes())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &result)
	assert.Equal(t, []string{"s@example.com"}, result.Enrolled)

	rec = upload([]byte("email\ns@example.com\n"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSwaggerDoc(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodGet, "/swagger/doc.json", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var doc struct {
		Paths       map[string]map[string]json.RawMessage `json:"paths"`
		Definitions map[string]json.RawMessage            `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Contains(t, doc.Paths, "/api/login")
	assert.Contains(t, doc.Paths["/api/quizzes/{quiz_id}/student-quiz/submit"], "post")
	assert.Contains(t, doc.Paths["/api/classrooms/{id}/roster"], "post")
	assert.Contains(t, doc.Definitions, "service.TeacherProfileView")
}
