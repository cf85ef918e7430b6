package service

import (
	"errors"
	"fmt"
	"io"
	"quiz_room_hub/internal/model"
	"quiz_room_hub/internal/repository"
	"quiz_room_hub/internal/util"
	"quiz_room_hub/pkg/logger"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	msgStudentIDRequired   = "student_id is required for teachers."
	msgNotValidClassroom   = "Not a valid classroom."
	msgStudentMissing      = "StudentProfile matching query does not exist."
	msgClassroomMissing    = "Classroom matching query does not exist."
	msgAlreadyEnrolled     = "This student is already enrolled in the specified classroom."
	rosterReasonNotStudent = "no student account with this email"
	rosterReasonEnrolled   = "already enrolled"
	rosterReasonDuplicate  = "duplicate row"
	rosterReasonInvalid    = "invalid email"
)

type ClassroomService struct {
	ClassroomRepo  *repository.ClassroomRepository
	EnrollmentRepo *repository.EnrollmentRepository
	ProfileRepo    *repository.ProfileRepository
	Perm           *PermissionService
}

func NewClassroomService(
	classroomRepo *repository.ClassroomRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	profileRepo *repository.ProfileRepository,
	perm *PermissionService,
) *ClassroomService {
	return &ClassroomService{
		ClassroomRepo:  classroomRepo,
		EnrollmentRepo: enrollmentRepo,
		ProfileRepo:    profileRepo,
		Perm:           perm,
	}
}

type ClassroomInput struct {
	ID          util.ReadOnly `json:"id"`
	TeacherID   util.ReadOnly `json:"teacher_id"`
	CreatedAt   util.ReadOnly `json:"created_at"`
	UpdatedAt   util.ReadOnly `json:"updated_at"`
	Name        *string       `json:"name" validate:"required,notblank,max=255"`
	Description *string       `json:"description"`
}

type EnrollmentInput struct {
	ClassroomID *string `json:"classroom_id" validate:"required,uuid"`
	StudentID   *string `json:"student_id" validate:"omitempty,uuid"`
}

type RosterSkip struct {
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

type RosterResult struct {
	Enrolled []string     `json:"enrolled"`
	Skipped  []RosterSkip `json:"skipped"`
}

// findClassroom loads a classroom by path id, mapping bad or unknown ids to
// ErrNotFound.
func (s *ClassroomService) findClassroom(id string) (*model.Classroom, error) {
	if !model.IsUUID(id) {
		return nil, util.ErrNotFound
	}
	classroom, err := s.ClassroomRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err)
	}
	return classroom, nil
}

func (s *ClassroomService) List(userID uint, p util.Pagination) (*util.PageResponse, error) {
	teacher, err := s.Perm.TeacherOf(userID)
	if err != nil {
		return nil, err
	}
	classrooms, total, err := s.ClassroomRepo.ListByTeacher(teacher.ID, p.Offset(), p.Limit)
	if err != nil {
		return nil, err
	}
	resp := util.NewPageResponse(classrooms, total, p)
	return &resp, nil
}

func (s *ClassroomService) Create(userID uint, in *ClassroomInput) (*model.Classroom, error) {
	teacher, err := s.Perm.TeacherOf(userID)
	if err != nil {
		return nil, err
	}
	classroom := &model.Classroom{
		Name:        strings.TrimSpace(*in.Name),
		Description: deref(in.Description),
		TeacherID:   teacher.ID,
	}
	if err := s.ClassroomRepo.Create(classroom); err != nil {
		return nil, err
	}
	return classroom, nil
}

func (s *ClassroomService) Get(userID uint, id string) (*model.Classroom, error) {
	classroom, err := s.findClassroom(id)
	if err != nil {
		return nil, err
	}
	if err := s.Perm.RequireMember(classroom, userID); err != nil {
		return nil, err
	}
	return classroom, nil
}

func (s *ClassroomService) Update(userID uint, id string, in *ClassroomInput) (*model.Classroom, error) {
	classroom, err := s.findClassroom(id)
	if err != nil {
		return nil, err
	}
	if err := s.Perm.RequireOwner(classroom, userID); err != nil {
		return nil, err
	}

	classroom.Name = strings.TrimSpace(*in.Name)
	classroom.Description = deref(in.Description)
	if err := s.ClassroomRepo.Update(classroom); err != nil {
		return nil, err
	}
	return classroom, nil
}

func (s *ClassroomService) Delete(userID uint, id string) error {
	classroom, err := s.findClassroom(id)
	if err != nil {
		return err
	}
	if err := s.Perm.RequireOwner(classroom, userID); err != nil {
		return err
	}
	return s.ClassroomRepo.Delete(classroom.ID)
}

// ListEnrollments shows students their own enrollments and teachers the
// enrollments of the classrooms they own.
func (s *ClassroomService) ListEnrollments(userID uint, p util.Pagination) (*util.PageResponse, error) {
	var (
		enrollments []model.StudentClassroom
		total       int64
	)

	student, err := s.Perm.StudentOf(userID)
	switch {
	case err == nil:
		enrollments, total, err = s.EnrollmentRepo.ListByStudent(student.ID, p.Offset(), p.Limit)
	case errors.Is(err, util.ErrPermissionDenied):
		teacher, terr := s.Perm.TeacherOf(userID)
		if terr != nil {
			return nil, terr
		}
		enrollments, total, err = s.EnrollmentRepo.ListByTeacher(teacher.ID, p.Offset(), p.Limit)
	}
	if err != nil {
		return nil, err
	}

	views := make([]EnrollmentView, 0, len(enrollments))
	for i := range enrollments {
		views = append(views, NewEnrollmentView(&enrollments[i]))
	}
	resp := util.NewPageResponse(views, total, p)
	return &resp, nil
}

// CreateEnrollment lets a student join a classroom or a teacher add a
// student to one of their own classrooms.
func (s *ClassroomService) CreateEnrollment(userID uint, in *EnrollmentInput) (*EnrollmentView, error) {
	teacher, terr := s.Perm.TeacherOf(userID)
	student, serr := s.Perm.StudentOf(userID)
	if terr != nil && serr != nil {
		if !errors.Is(terr, util.ErrPermissionDenied) {
			return nil, terr
		}
		return nil, serr
	}
	isTeacher := terr == nil

	if isTeacher && in.StudentID == nil {
		return nil, util.NewFieldError("student_id", msgStudentIDRequired)
	}

	classroom, err := s.ClassroomRepo.FindByID(*in.ClassroomID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NewNonFieldError(msgClassroomMissing)
	}
	if err != nil {
		return nil, err
	}

	if isTeacher {
		student, err = s.ProfileRepo.FindStudentByID(*in.StudentID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NewNonFieldError(msgStudentMissing)
		}
		if err != nil {
			return nil, err
		}
		if classroom.TeacherID != teacher.ID {
			return nil, util.NewNonFieldError(msgNotValidClassroom)
		}
	}

	exists, err := s.EnrollmentRepo.Exists(student.ID, classroom.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.NewNonFieldError(msgAlreadyEnrolled)
	}

	enrollment := &model.StudentClassroom{StudentID: student.ID, ClassroomID: classroom.ID}
	if err := s.EnrollmentRepo.Create(enrollment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.NewNonFieldError(msgAlreadyEnrolled)
		}
		return nil, err
	}

	enrollment.Student = student
	enrollment.Classroom = classroom
	view := NewEnrollmentView(enrollment)
	return &view, nil
}

func (s *ClassroomService) findEnrollment(studentID, classroomID string) (*model.StudentClassroom, *model.Classroom, error) {
	if !model.IsUUID(studentID) || !model.IsUUID(classroomID) {
		return nil, nil, util.ErrNotFound
	}
	student, err := s.ProfileRepo.FindStudentByID(studentID)
	if err != nil {
		return nil, nil, notFound(err)
	}
	classroom, err := s.ClassroomRepo.FindByID(classroomID)
	if err != nil {
		return nil, nil, notFound(err)
	}
	enrollment, err := s.EnrollmentRepo.Find(student.ID, classroom.ID)
	if err != nil {
		return nil, nil, notFound(err)
	}
	enrollment.Student = student
	enrollment.Classroom = classroom
	return enrollment, classroom, nil
}

func (s *ClassroomService) GetEnrollment(userID uint, studentID, classroomID string) (*EnrollmentView, error) {
	enrollment, classroom, err := s.findEnrollment(studentID, classroomID)
	if err != nil {
		return nil, err
	}
	if err := s.Perm.RequireMember(classroom, userID); err != nil {
		return nil, err
	}
	view := NewEnrollmentView(enrollment)
	return &view, nil
}

func (s *ClassroomService) DeleteEnrollment(userID uint, studentID, classroomID string) error {
	enrollment, classroom, err := s.findEnrollment(studentID, classroomID)
	if err != nil {
		return err
	}
	if err := s.Perm.RequireOwner(classroom, userID); err != nil {
		return err
	}
	return s.EnrollmentRepo.Delete(enrollment)
}

// ImportRoster enrolls the students listed in the first column of the first
// sheet of an xlsx file. A first row that is not an email is a header.
func (s *ClassroomService) ImportRoster(userID uint, classroomID string, file io.Reader) (*RosterResult, error) {
	classroom, err := s.findClassroom(classroomID)
	if err != nil {
		return nil, err
	}
	if err := s.Perm.RequireOwner(classroom, userID); err != nil {
		return nil, err
	}

	emails, invalid, err := readRosterEmails(file)
	if err != nil {
		return nil, err
	}

	result := &RosterResult{Enrolled: []string{}, Skipped: []RosterSkip{}}
	for _, cell := range invalid {
		result.Skipped = append(result.Skipped, RosterSkip{Email: cell, Reason: rosterReasonInvalid})
	}

	seen := make(map[string]bool, len(emails))
	unique := make([]string, 0, len(emails))
	for _, email := range emails {
		if seen[email] {
			result.Skipped = append(result.Skipped, RosterSkip{Email: email, Reason: rosterReasonDuplicate})
			continue
		}
		seen[email] = true
		unique = append(unique, email)
	}

	students, err := s.ProfileRepo.FindStudentsByEmails(unique)
	if err != nil {
		return nil, err
	}
	byEmail := make(map[string]*model.StudentProfile, len(students))
	studentIDs := make([]string, 0, len(students))
	for i := range students {
		byEmail[students[i].User.Email] = &students[i]
		studentIDs = append(studentIDs, students[i].ID)
	}

	enrolled, err := s.EnrollmentRepo.EnrolledStudentIDs(classroom.ID, studentIDs)
	if err != nil {
		return nil, err
	}

	var toCreate []model.StudentClassroom
	for _, email := range unique {
		student, ok := byEmail[email]
		switch {
		case !ok:
			result.Skipped = append(result.Skipped, RosterSkip{Email: email, Reason: rosterReasonNotStudent})
		case enrolled[student.ID]:
			result.Skipped = append(result.Skipped, RosterSkip{Email: email, Reason: rosterReasonEnrolled})
		default:
			toCreate = append(toCreate, model.StudentClassroom{StudentID: student.ID, ClassroomID: classroom.ID})
			result.Enrolled = append(result.Enrolled, email)
		}
	}

	if err := s.EnrollmentRepo.CreateBatch(toCreate); err != nil {
		return nil, err
	}

	logger.Log.Info("Roster imported",
		zap.String("classroom_id", classroom.ID),
		zap.Int("enrolled", len(result.Enrolled)),
		zap.Int("skipped", len(result.Skipped)),
	)
	return result, nil
}

// readRosterEmails returns the normalized emails of the first column and the
// cells after the header that are not emails.
func readRosterEmails(file io.Reader) ([]string, []string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: cannot open spreadsheet", util.ErrInvalidFile)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Log.Warn("Error closing roster file", zap.Error(err))
		}
	}()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, nil, fmt.Errorf("%w: spreadsheet has no sheets", util.ErrInvalidFile)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: cannot read sheet %s", util.ErrInvalidFile, sheetName)
	}

	var emails, invalid []string
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell := strings.TrimSpace(row[0])
		if cell == "" {
			continue
		}
		if err := util.Validate.Var(cell, "email"); err != nil {
			if i > 0 {
				invalid = append(invalid, cell)
			}
			continue
		}
		emails = append(emails, NormalizeEmail(cell))
	}
	return emails, invalid, nil
}
