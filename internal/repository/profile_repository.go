package repository

import (
	"quiz_room_hub/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository struct {
	DB *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

func (r *ProfileRepository) FindTeacherByID(id string) (*model.TeacherProfile, error) {
	var p model.TeacherProfile
	err := r.DB.Preload("User").Where("id = ?", id).First(&p).Error
	return &p, err
}

func (r *ProfileRepository) FindStudentByID(id string) (*model.StudentProfile, error) {
	var p model.StudentProfile
	err := r.DB.Preload("User").Where("id = ?", id).First(&p).Error
	return &p, err
}

func (r *ProfileRepository) FindTeacherByUserID(userID uint) (*model.TeacherProfile, error) {
	var p model.TeacherProfile
	err := r.DB.Preload("User").Where("user_id = ?", userID).First(&p).Error
	return &p, err
}

func (r *ProfileRepository) FindStudentByUserID(userID uint) (*model.StudentProfile, error) {
	var p model.StudentProfile
	err := r.DB.Preload("User").Where("user_id = ?", userID).First(&p).Error
	return &p, err
}

func (r *ProfileRepository) ListTeachers(offset, limit int) ([]model.TeacherProfile, int64, error) {
	var profiles []model.TeacherProfile
	var total int64

	query := r.DB.Model(&model.TeacherProfile{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("User").Order("id").Offset(offset).Limit(limit).Find(&profiles).Error
	return profiles, total, err
}

func (r *ProfileRepository) ListStudents(offset, limit int) ([]model.StudentProfile, int64, error) {
	var profiles []model.StudentProfile
	var total int64

	query := r.DB.Model(&model.StudentProfile{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("User").Order("id").Offset(offset).Limit(limit).Find(&profiles).Error
	return profiles, total, err
}

// FindStudentsByEmails returns the student profiles whose user email is in
// emails.
func (r *ProfileRepository) FindStudentsByEmails(emails []string) ([]model.StudentProfile, error) {
	var profiles []model.StudentProfile
	if len(emails) == 0 {
		return profiles, nil
	}
	err := r.DB.Preload("User").
		Joins("JOIN users ON users.id = student_profiles.user_id").
		Where("users.email IN ?", emails).
		Find(&profiles).Error
	return profiles, err
}

// UpdateTeacher saves the profile and, when userFields is not empty, the
// owning user's columns in one transaction.
func (r *ProfileRepository) UpdateTeacher(p *model.TeacherProfile, userFields map[string]interface{}) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := updateUserFieldsTx(tx, p.UserID, userFields); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(p).Error
	})
}

func (r *ProfileRepository) UpdateStudent(p *model.StudentProfile, userFields map[string]interface{}) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := updateUserFieldsTx(tx, p.UserID, userFields); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(p).Error
	})
}

func updateUserFieldsTx(tx *gorm.DB, userID uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return tx.Model(&model.User{}).Where("id = ?", userID).Updates(fields).Error
}
