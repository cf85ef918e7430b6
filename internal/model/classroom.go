package model

import "time"

type Classroom struct {
	UUIDBase
	Name        string          `gorm:"size:255;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	TeacherID   string          `gorm:"index;type:varchar(36);not null" json:"teacher_id"`
	Teacher     *TeacherProfile `gorm:"foreignKey:TeacherID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (Classroom) TableName() string {
	return "classrooms"
}

// StudentClassroom is one enrollment of a student in a classroom.
type StudentClassroom struct {
	BaseModel
	StudentID   string          `gorm:"type:varchar(36);not null;uniqueIndex:idx_student_classroom" json:"student_id"`
	Student     *StudentProfile `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
	ClassroomID string          `gorm:"type:varchar(36);not null;uniqueIndex:idx_student_classroom;index" json:"classroom_id"`
	Classroom   *Classroom      `gorm:"foreignKey:ClassroomID;constraint:OnDelete:CASCADE" json:"-"`
	JoinedAt    time.Time       `gorm:"autoCreateTime" json:"joined_at"`
}

func (StudentClassroom) TableName() string {
	return "student_classrooms"
}
