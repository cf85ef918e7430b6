package model

import (
	"time"

	"gorm.io/gorm"
)

// swagger:model User
type User struct {
	BaseModel
	Email       string     `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"size:128;not null" json:"-"`
	FirstName   string     `gorm:"size:150" json:"first_name"`
	LastName    string     `gorm:"size:150" json:"last_name"`
	IsTeacher   bool       `gorm:"not null;default:false" json:"is_teacher"`
	IsStaff     bool       `gorm:"not null;default:false" json:"-"`
	IsSuperuser bool       `gorm:"not null;default:false" json:"-"`
	IsActive    bool       `gorm:"not null;default:true" json:"is_active"`
	DateJoined  time.Time  `gorm:"autoCreateTime" json:"date_joined"`
	LastLogin   *time.Time `json:"last_login"`
}

func (User) TableName() string {
	return "users"
}

// AfterCreate gives every regular account exactly one profile matching its
// role. Staff and superusers get none.
func (u *User) AfterCreate(tx *gorm.DB) error {
	if u.IsStaff || u.IsSuperuser {
		return nil
	}

	session := tx.Session(&gorm.Session{NewDB: true})
	if u.IsTeacher {
		return session.Create(&TeacherProfile{UserID: u.ID}).Error
	}
	return session.Create(&StudentProfile{UserID: u.ID}).Error
}

// RevokedToken records refresh tokens that were logged out.
type RevokedToken struct {
	JTI       string    `gorm:"primaryKey;size:64"`
	UserID    uint      `gorm:"index"`
	ExpiresAt time.Time `gorm:"index"`
	CreatedAt time.Time
}

func (RevokedToken) TableName() string {
	return "revoked_tokens"
}
