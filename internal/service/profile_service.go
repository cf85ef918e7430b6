package service

import (
	"quiz_room_hub/internal/model"
	"quiz_room_hub/internal/repository"
	"quiz_room_hub/internal/util"
	"time"
)

type ProfileService struct {
	ProfileRepo *repository.ProfileRepository
	UserRepo    *repository.UserRepository
}

func NewProfileService(profileRepo *repository.ProfileRepository, userRepo *repository.UserRepository) *ProfileService {
	return &ProfileService{
		ProfileRepo: profileRepo,
		UserRepo:    userRepo,
	}
}

type profileUserFields struct {
	UserID         uint       `json:"user_id"`
	UserEmail      string     `json:"user_email"`
	UserFirstName  string     `json:"user_first_name"`
	UserLastName   string     `json:"user_last_name"`
	UserIsTeacher  bool       `json:"user_is_teacher"`
	UserIsActive   bool       `json:"user_is_active"`
	UserDateJoined time.Time  `json:"user_date_joined"`
	UserLastLogin  *time.Time `json:"user_last_login"`
}

func newProfileUserFields(u *model.User) profileUserFields {
	return profileUserFields{
		UserID:         u.ID,
		UserEmail:      u.Email,
		UserFirstName:  u.FirstName,
		UserLastName:   u.LastName,
		UserIsTeacher:  u.IsTeacher,
		UserIsActive:   u.IsActive,
		UserDateJoined: u.DateJoined,
		UserLastLogin:  u.LastLogin,
	}
}

type TeacherProfileView struct {
	profileUserFields
	ID                string      `json:"id"`
	Bio               string      `json:"bio"`
	DateOfBirth       *model.Date `json:"date_of_birth" swaggertype:"string" format:"date"`
	YearsOfExperience *uint       `json:"years_of_experience"`
}

type StudentProfileView struct {
	profileUserFields
	ID          string      `json:"id"`
	Bio         string      `json:"bio"`
	DateOfBirth *model.Date `json:"date_of_birth" swaggertype:"string" format:"date"`
}

func NewTeacherProfileView(p *model.TeacherProfile) TeacherProfileView {
	return TeacherProfileView{
		profileUserFields: newProfileUserFields(&p.User),
		ID:                p.ID,
		Bio:               p.Bio,
		DateOfBirth:       p.DateOfBirth,
		YearsOfExperience: p.YearsOfExperience,
	}
}

func NewStudentProfileView(p *model.StudentProfile) StudentProfileView {
	return StudentProfileView{
		profileUserFields: newProfileUserFields(&p.User),
		ID:                p.ID,
		Bio:               p.Bio,
		DateOfBirth:       p.DateOfBirth,
	}
}

// readOnlyProfileFields lets clients send back a profile they fetched.
type readOnlyProfileFields struct {
	ID             util.ReadOnly `json:"id"`
	UserID         util.ReadOnly `json:"user_id"`
	UserEmail      util.ReadOnly `json:"user_email"`
	UserIsTeacher  util.ReadOnly `json:"user_is_teacher"`
	UserIsActive   util.ReadOnly `json:"user_is_active"`
	UserDateJoined util.ReadOnly `json:"user_date_joined"`
	UserLastLogin  util.ReadOnly `json:"user_last_login"`
}

type StudentProfileInput struct {
	readOnlyProfileFields
	UserFirstName *string     `json:"user_first_name" validate:"omitempty,max=150"`
	UserLastName  *string     `json:"user_last_name" validate:"omitempty,max=150"`
	Bio           *string     `json:"bio"`
	DateOfBirth   *model.Date `json:"date_of_birth" swaggertype:"string" format:"date"`
}

type TeacherProfileInput struct {
	StudentProfileInput
	YearsOfExperience *int `json:"years_of_experience" validate:"omitempty,min=0"`
}

func (in *StudentProfileInput) userFields() map[string]interface{} {
	fields := map[string]interface{}{}
	if in.UserFirstName != nil {
		fields["first_name"] = *in.UserFirstName
	}
	if in.UserLastName != nil {
		fields["last_name"] = *in.UserLastName
	}
	return fields
}

func (s *ProfileService) ListTeachers(p util.Pagination) (*util.PageResponse, error) {
	profiles, total, err := s.ProfileRepo.ListTeachers(p.Offset(), p.Limit)
	if err != nil {
		return nil, err
	}
	views := make([]TeacherProfileView, 0, len(profiles))
	for i := range profiles {
		views = append(views, NewTeacherProfileView(&profiles[i]))
	}
	resp := util.NewPageResponse(views, total, p)
	return &resp, nil
}

func (s *ProfileService) ListStudents(p util.Pagination) (*util.PageResponse, error) {
	profiles, total, err := s.ProfileRepo.ListStudents(p.Offset(), p.Limit)
	if err != nil {
		return nil, err
	}
	views := make([]StudentProfileView, 0, len(profiles))
	for i := range profiles {
		views = append(views, NewStudentProfileView(&profiles[i]))
	}
	resp := util.NewPageResponse(views, total, p)
	return &resp, nil
}

func (s *ProfileService) findTeacher(id string) (*model.TeacherProfile, error) {
	if !model.IsUUID(id) {
		return nil, util.ErrNotFound
	}
	p, err := s.ProfileRepo.FindTeacherByID(id)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (s *ProfileService) findStudent(id string) (*model.StudentProfile, error) {
	if !model.IsUUID(id) {
		return nil, util.ErrNotFound
	}
	p, err := s.ProfileRepo.FindStudentByID(id)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (s *ProfileService) GetTeacher(id string) (*TeacherProfileView, error) {
	p, err := s.findTeacher(id)
	if err != nil {
		return nil, err
	}
	view := NewTeacherProfileView(p)
	return &view, nil
}

func (s *ProfileService) GetStudent(id string) (*StudentProfileView, error) {
	p, err := s.findStudent(id)
	if err != nil {
		return nil, err
	}
	view := NewStudentProfileView(p)
	return &view, nil
}

func (s *ProfileService) UpdateTeacher(userID uint, id string, in *TeacherProfileInput) (*TeacherProfileView, error) {
	p, err := s.findTeacher(id)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, util.ErrPermissionDenied
	}

	if in.Bio != nil {
		p.Bio = *in.Bio
	}
	if in.DateOfBirth != nil {
		p.DateOfBirth = in.DateOfBirth
	}
	if in.YearsOfExperience != nil {
		years := uint(*in.YearsOfExperience)
		p.YearsOfExperience = &years
	}
	if err := s.ProfileRepo.UpdateTeacher(p, in.userFields()); err != nil {
		return nil, err
	}
	return s.GetTeacher(id)
}

func (s *ProfileService) UpdateStudent(userID uint, id string, in *StudentProfileInput) (*StudentProfileView, error) {
	p, err := s.findStudent(id)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, util.ErrPermissionDenied
	}

	if in.Bio != nil {
		p.Bio = *in.Bio
	}
	if in.DateOfBirth != nil {
		p.DateOfBirth = in.DateOfBirth
	}
	if err := s.ProfileRepo.UpdateStudent(p, in.userFields()); err != nil {
		return nil, err
	}
	return s.GetStudent(id)
}

// DeleteTeacher removes the owner's account along with everything it owns.
func (s *ProfileService) DeleteTeacher(userID uint, id string) error {
	p, err := s.findTeacher(id)
	if err != nil {
		return err
	}
	if p.UserID != userID {
		return util.ErrPermissionDenied
	}
	return s.UserRepo.Delete(p.UserID)
}

func (s *ProfileService) DeleteStudent(userID uint, id string) error {
	p, err := s.findStudent(id)
	if err != nil {
		return err
	}
	if p.UserID != userID {
		return util.ErrPermissionDenied
	}
	return s.UserRepo.Delete(p.UserID)
}
