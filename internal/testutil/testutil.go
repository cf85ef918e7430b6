// Package testutil opens throwaway databases and seeds accounts for tests.
package testutil

import (
	"testing"
	"time"

	"quiz_room_hub/internal/config"
	"quiz_room_hub/internal/model"
	"quiz_room_hub/pkg/database"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	Password = "correct-horse-42"
	Secret   = "test-secret-that-is-long-enough-for-hs256"
)

// OpenDB returns a migrated in-memory database private to the test.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("OpenDB(): %v", err)
	}

	// every connection to :memory: is a new database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("OpenDB(): %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Migrate(): %v", err)
	}
	return db
}

func Config() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.JWT.Secret = Secret
	cfg.JWT.AccessExpire = 15 * time.Minute
	cfg.JWT.RefreshExpire = 24 * time.Hour
	return cfg
}

func createUser(t *testing.T, db *gorm.DB, user *model.User) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("createUser(): %v", err)
	}
	user.Password = string(hash)
	user.IsActive = true
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("createUser(%s): %v", user.Email, err)
	}
	return user
}

func CreateTeacher(t *testing.T, db *gorm.DB, email string) (*model.User, *model.TeacherProfile) {
	t.Helper()
	user := createUser(t, db, &model.User{Email: email, FirstName: "Teacher", IsTeacher: true})
	var profile model.TeacherProfile
	if err := db.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		t.Fatalf("CreateTeacher(%s): %v", email, err)
	}
	return user, &profile
}

func CreateStudent(t *testing.T, db *gorm.DB, email string) (*model.User, *model.StudentProfile) {
	t.Helper()
	user := createUser(t, db, &model.User{Email: email, FirstName: "Student"})
	var profile model.StudentProfile
	if err := db.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		t.Fatalf("CreateStudent(%s): %v", email, err)
	}
	return user, &profile
}

func CreateStaff(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	return createUser(t, db, &model.User{Email: email, IsStaff: true, IsSuperuser: true})
}

func CreateClassroom(t *testing.T, db *gorm.DB, teacher *model.TeacherProfile, name string) *model.Classroom {
	t.Helper()
	classroom := &model.Classroom{Name: name, TeacherID: teacher.ID}
	if err := db.Create(classroom).Error; err != nil {
		t.Fatalf("CreateClassroom(): %v", err)
	}
	return classroom
}

func Enroll(t *testing.T, db *gorm.DB, student *model.StudentProfile, classroom *model.Classroom) {
	t.Helper()
	err := db.Create(&model.StudentClassroom{StudentID: student.ID, ClassroomID: classroom.ID}).Error
	if err != nil {
		t.Fatalf("Enroll(): %v", err)
	}
}

// CreateQuiz adds a quiz whose questions each have one valid and one
// invalid answer. It returns the valid and invalid answers per question.
func CreateQuiz(t *testing.T, db *gorm.DB, classroom *model.Classroom, questions int) (*model.Quiz, []model.Answer, []model.Answer) {
	t.Helper()
	quiz := &model.Quiz{Title: "Quiz", ClassroomID: classroom.ID}
	if err := db.Create(quiz).Error; err != nil {
		t.Fatalf("CreateQuiz(): %v", err)
	}

	var valid, invalid []model.Answer
	for i := 0; i < questions; i++ {
		q := &model.Question{Description: "Question", QuizID: quiz.ID}
		if err := db.Create(q).Error; err != nil {
			t.Fatalf("CreateQuiz(): %v", err)
		}
		good := model.Answer{Description: "right", IsValid: true, QuestionID: q.ID}
		bad := model.Answer{Description: "wrong", IsValid: false, QuestionID: q.ID}
		if err := db.Create(&good).Error; err != nil {
			t.Fatalf("CreateQuiz(): %v", err)
		}
		if err := db.Create(&bad).Error; err != nil {
			t.Fatalf("CreateQuiz(): %v", err)
		}
		valid = append(valid, good)
		invalid = append(invalid, bad)
	}
	return quiz, valid, invalid
}
