package model

type TeacherProfile struct {
	UUIDBase
	UserID            uint   `gorm:"uniqueIndex;not null" json:"-"`
	User              User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Bio               string `gorm:"type:text" json:"bio"`
	DateOfBirth       *Date  `gorm:"type:date" json:"date_of_birth" swaggertype:"string" format:"date"`
	YearsOfExperience *uint  `json:"years_of_experience"`
}

func (TeacherProfile) TableName() string {
	return "teacher_profiles"
}

type StudentProfile struct {
	UUIDBase
	UserID      uint   `gorm:"uniqueIndex;not null" json:"-"`
	User        User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Bio         string `gorm:"type:text" json:"bio"`
	DateOfBirth *Date  `gorm:"type:date" json:"date_of_birth" swaggertype:"string" format:"date"`
}

func (StudentProfile) TableName() string {
	return "student_profiles"
}
