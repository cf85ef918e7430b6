package repository

import (
	"quiz_room_hub/internal/model"

	"gorm.io/gorm"
)

type ClassroomRepository struct {
	DB *gorm.DB
}

func NewClassroomRepository(db *gorm.DB) *ClassroomRepository {
	return &ClassroomRepository{DB: db}
}

func (r *ClassroomRepository) Create(classroom *model.Classroom) error {
	return r.DB.Create(classroom).Error
}

func (r *ClassroomRepository) FindByID(id string) (*model.Classroom, error) {
	var classroom model.Classroom
	err := r.DB.Where("id = ?", id).First(&classroom).Error
	return &classroom, err
}

func (r *ClassroomRepository) ExistsForTeacher(id, teacherID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Classroom{}).
		Where("id = ? AND teacher_id = ?", id, teacherID).
		Count(&count).Error
	return count > 0, err
}

func (r *ClassroomRepository) ListByTeacher(teacherID string, offset, limit int) ([]model.Classroom, int64, error) {
	var classrooms []model.Classroom
	var total int64

	query := r.DB.Model(&model.Classroom{}).Where("teacher_id = ?", teacherID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&classrooms).Error
	return classrooms, total, err
}

func (r *ClassroomRepository) Update(classroom *model.Classroom) error {
	return r.DB.Model(classroom).
		Select("name", "description").
		Updates(classroom).Error
}

// Delete removes the classroom with its enrollments, posts and quizzes.
func (r *ClassroomRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return deleteClassroomsTx(tx, []string{id})
	})
}

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) Create(enrollment *model.StudentClassroom) error {
	return r.DB.Create(enrollment).Error
}

func (r *EnrollmentRepository) Find(studentID, classroomID string) (*model.StudentClassroom, error) {
	var enrollment model.StudentClassroom
	err := r.DB.Where("student_id = ? AND classroom_id = ?", studentID, classroomID).
		First(&enrollment).Error
	return &enrollment, err
}

func (r *EnrollmentRepository) Exists(studentID, classroomID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.StudentClassroom{}).
		Where("student_id = ? AND classroom_id = ?", studentID, classroomID).
		Count(&count).Error
	return count > 0, err
}

// EnrolledStudentIDs returns which of studentIDs already belong to the
// classroom.
func (r *EnrollmentRepository) EnrolledStudentIDs(classroomID string, studentIDs []string) (map[string]bool, error) {
	out := make(map[string]bool)
	if len(studentIDs) == 0 {
		return out, nil
	}
	var ids []string
	err := r.DB.Model(&model.StudentClassroom{}).
		Where("classroom_id = ? AND student_id IN ?", classroomID, studentIDs).
		Pluck("student_id", &ids).Error
	for _, id := range ids {
		out[id] = true
	}
	return out, err
}

func (r *EnrollmentRepository) CreateBatch(enrollments []model.StudentClassroom) error {
	if len(enrollments) == 0 {
		return nil
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&enrollments).Error
	})
}

func (r *EnrollmentRepository) Delete(enrollment *model.StudentClassroom) error {
	return r.DB.Delete(enrollment).Error
}

func (r *EnrollmentRepository) ListByStudent(studentID string, offset, limit int) ([]model.StudentClassroom, int64, error) {
	query := r.DB.Model(&model.StudentClassroom{}).Where("student_id = ?", studentID)
	return r.list(query, offset, limit)
}

func (r *EnrollmentRepository) ListByTeacher(teacherID string, offset, limit int) ([]model.StudentClassroom, int64, error) {
	query := r.DB.Model(&model.StudentClassroom{}).
		Where("classroom_id IN (?)", r.DB.Model(&model.Classroom{}).Select("id").Where("teacher_id = ?", teacherID))
	return r.list(query, offset, limit)
}

func (r *EnrollmentRepository) list(query *gorm.DB, offset, limit int) ([]model.StudentClassroom, int64, error) {
	var enrollments []model.StudentClassroom
	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Student.User").Preload("Classroom").
		Order("joined_at DESC").Offset(offset).Limit(limit).
		Find(&enrollments).Error
	return enrollments, total, err
}
