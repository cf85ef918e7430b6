package repository

import (
	"quiz_room_hub/internal/model"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{DB: db}
}

func (r *PostRepository) Create(post *model.CoursePost) error {
	return r.DB.Create(post).Error
}

// FindInClassroom only matches a post that belongs to classroomID.
func (r *PostRepository) FindInClassroom(id, classroomID string) (*model.CoursePost, error) {
	var post model.CoursePost
	err := r.DB.Where("id = ? AND classroom_id = ?", id, classroomID).First(&post).Error
	return &post, err
}

func (r *PostRepository) ListByClassroom(classroomID string, offset, limit int) ([]model.CoursePost, int64, error) {
	var posts []model.CoursePost
	var total int64

	query := r.DB.Model(&model.CoursePost{}).Where("classroom_id = ?", classroomID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&posts).Error
	return posts, total, err
}

func (r *PostRepository) Update(post *model.CoursePost) error {
	return r.DB.Model(post).Select("title", "content").Updates(post).Error
}

func (r *PostRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return deletePostsTx(tx, []string{id})
	})
}

type CommentRepository struct {
	DB *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{DB: db}
}

func (r *CommentRepository) Create(comment *model.Comment) error {
	if err := r.DB.Create(comment).Error; err != nil {
		return err
	}
	return r.DB.Preload("User").First(comment, "id = ?", comment.ID).Error
}

func (r *CommentRepository) FindInPost(id, postID string) (*model.Comment, error) {
	var comment model.Comment
	err := r.DB.Preload("User").Where("id = ? AND post_id = ?", id, postID).First(&comment).Error
	return &comment, err
}

func (r *CommentRepository) ListByPost(postID string, offset, limit int) ([]model.Comment, int64, error) {
	var comments []model.Comment
	var total int64

	query := r.DB.Model(&model.Comment{}).Where("post_id = ?", postID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("User").Order("created_at DESC").Offset(offset).Limit(limit).Find(&comments).Error
	return comments, total, err
}

func (r *CommentRepository) Update(comment *model.Comment) error {
	return r.DB.Model(comment).Select("content").Updates(comment).Error
}

func (r *CommentRepository) Delete(comment *model.Comment) error {
	return r.DB.Delete(comment).Error
}
