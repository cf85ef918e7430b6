package service

import (
	"errors"
	"quiz_room_hub/internal/model"
	"quiz_room_hub/internal/repository"
	"quiz_room_hub/internal/util"

	"gorm.io/gorm"
)

// PermissionService answers the role and object questions shared by the
// classroom, post and quiz endpoints.
type PermissionService struct {
	ProfileRepo    *repository.ProfileRepository
	EnrollmentRepo *repository.EnrollmentRepository
}

func NewPermissionService(profileRepo *repository.ProfileRepository, enrollmentRepo *repository.EnrollmentRepository) *PermissionService {
	return &PermissionService{
		ProfileRepo:    profileRepo,
		EnrollmentRepo: enrollmentRepo,
	}
}

// TeacherOf returns the caller's teacher profile or ErrPermissionDenied.
func (s *PermissionService) TeacherOf(userID uint) (*model.TeacherProfile, error) {
	p, err := s.ProfileRepo.FindTeacherByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrPermissionDenied
	}
	return p, err
}

// StudentOf returns the caller's student profile or ErrPermissionDenied.
func (s *PermissionService) StudentOf(userID uint) (*model.StudentProfile, error) {
	p, err := s.ProfileRepo.FindStudentByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrPermissionDenied
	}
	return p, err
}

func (s *PermissionService) IsOwner(classroom *model.Classroom, userID uint) (bool, error) {
	teacher, err := s.ProfileRepo.FindTeacherByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return classroom.TeacherID == teacher.ID, nil
}

// IsMember is true for the owner and for students enrolled in the classroom.
func (s *PermissionService) IsMember(classroom *model.Classroom, userID uint) (bool, error) {
	owner, err := s.IsOwner(classroom, userID)
	if err != nil || owner {
		return owner, err
	}

	student, err := s.ProfileRepo.FindStudentByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return s.EnrollmentRepo.Exists(student.ID, classroom.ID)
}

func (s *PermissionService) RequireOwner(classroom *model.Classroom, userID uint) error {
	ok, err := s.IsOwner(classroom, userID)
	if err != nil {
		return err
	}
	if !ok {
		return util.ErrPermissionDenied
	}
	return nil
}

func (s *PermissionService) RequireMember(classroom *model.Classroom, userID uint) error {
	ok, err := s.IsMember(classroom, userID)
	if err != nil {
		return err
	}
	if !ok {
		return util.ErrPermissionDenied
	}
	return nil
}

// notFound turns a missing row into ErrNotFound and passes other errors on.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrNotFound
	}
	return err
}
