package model

import "time"

type CoursePost struct {
	UUIDBase
	Title       string     `gorm:"size:200;not null" json:"title"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	ClassroomID string     `gorm:"index;type:varchar(36);not null" json:"classroom_id"`
	Classroom   *Classroom `gorm:"foreignKey:ClassroomID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	LastUpdated time.Time  `gorm:"autoUpdateTime" json:"last_updated"`
}

func (CoursePost) TableName() string {
	return "course_posts"
}

type Comment struct {
	UUIDBase
	Content   string      `gorm:"type:text;not null" json:"content"`
	PostID    string      `gorm:"index;type:varchar(36);not null" json:"post_id"`
	Post      *CoursePost `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	UserID    uint        `gorm:"index;not null" json:"-"`
	User      *User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	CreatedAt time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (Comment) TableName() string {
	return "comments"
}
