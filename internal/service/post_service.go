package service

import (
	"errors"
	"quiz_room_hub/internal/model"
	"quiz_room_hub/internal/repository"
	"quiz_room_hub/internal/util"

	"gorm.io/gorm"
)

const (
	msgClassroomDoesNotExist = "Classroom does not exist."
	msgPostDoesNotExist      = "Post does not exist."
)

type PostService struct {
	PostRepo      *repository.PostRepository
	CommentRepo   *repository.CommentRepository
	ClassroomRepo *repository.ClassroomRepository
	Perm          *PermissionService
}

func NewPostService(
	postRepo *repository.PostRepository,
	commentRepo *repository.CommentRepository,
	classroomRepo *repository.ClassroomRepository,
	perm *PermissionService,
) *PostService {
	return &PostService{
		PostRepo:      postRepo,
		CommentRepo:   commentRepo,
		ClassroomRepo: classroomRepo,
		Perm:          perm,
	}
}

type PostInput struct {
	ID          util.ReadOnly `json:"id"`
	ClassroomID util.ReadOnly `json:"classroom_id"`
	CreatedAt   util.ReadOnly `json:"created_at"`
	LastUpdated util.ReadOnly `json:"last_updated"`
	Title       *string       `json:"title" validate:"required,notblank,max=200"`
	Content     *string       `json:"content" validate:"required,notblank"`
}

type CommentInput struct {
	ID        util.ReadOnly `json:"id"`
	PostID    util.ReadOnly `json:"post_id"`
	User      util.ReadOnly `json:"user"`
	CreatedAt util.ReadOnly `json:"created_at"`
	UpdatedAt util.ReadOnly `json:"updated_at"`
	Content   *string       `json:"content" validate:"required,notblank"`
}

func (s *PostService) findClassroom(id string) (*model.Classroom, error) {
	if !model.IsUUID(id) {
		return nil, util.ErrNotFound
	}
	classroom, err := s.ClassroomRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err)
	}
	return classroom, nil
}

func (s *PostService) findPost(classroom *model.Classroom, postID string) (*model.CoursePost, error) {
	if !model.IsUUID(postID) {
		return nil, util.ErrNotFound
	}
	post, err := s.PostRepo.FindInClassroom(postID, classroom.ID)
	if err != nil {
		return nil, notFound(err)
	}
	return post, nil
}

func (s *PostService) findComment(post *model.CoursePost, commentID string) (*model.Comment, error) {
	if !model.IsUUID(commentID) {
		return nil, util.ErrNotFound
	}
	comment, err := s.CommentRepo.FindInPost(commentID, post.ID)
	if err != nil {
		return nil, notFound(err)
	}
	return comment, nil
}

// loadPost resolves the classroom and post of a nested route.
func (s *PostService) loadPost(classroomID, postID string) (*model.Classroom, *model.CoursePost, error) {
	classroom, err := s.findClassroom(classroomID)
	if err != nil {
		return nil, nil, err
	}
	post, err := s.findPost(classroom, postID)
	if err != nil {
		return nil, nil, err
	}
	return classroom, post, nil
}

func (s *PostService) CreatePost(userID uint, classroomID string, in *PostInput) (*model.CoursePost, error) {
	classroom, err := s.findClassroom(classroomID)
	if err != nil {
		return nil, err
	}
	if err := s.Perm.RequireOwner(classroom, userID); err != nil {
		return nil, err
	}

	post := &model.CoursePost{
		Title:       *in.Title,
		Content:     *in.Content,
		ClassroomID: classroom.ID,
	}
	if err := s.PostRepo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) ListPosts(userID uint, classroomID string, p util.Pagination) (*util.PageResponse, error) {
	var classroom *model.Classroom
	var err error
	if model.IsUUID(classroomID) {
		classroom, err = s.ClassroomRepo.FindByID(classroomID)
	} else {
		err = gorm.ErrRecordNotFound
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NewNonFieldError(msgClassroomDoesNotExist)
	}
	if err != nil {
		return nil, err
	}
	if err := s.Perm.RequireMember(classroom, userID); err != nil {
		return nil, err
	}

	posts, total, err := s.PostRepo.ListByClassroom(classroom.ID, p.Offset(), p.Limit)
	if err != nil {
		return nil, err
	}
	resp := util.NewPageResponse(posts, total, p)
	return &resp, nil
}

func (s *PostService) GetPost(userID uint, classroomID, postID string) (*model.CoursePost, error) {
	classroom, post, err := s.loadPost(classroomID, postID)
	if err != nil {
		return nil, err
	}
	if err := s.Perm.RequireMember(classroom, userID); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) UpdatePost(userID uint, classroomID, postID string, in *PostInput) (*model.CoursePost, error) {
	classroom, post, err := s.loadPost(classroomID, postID)
	if err != nil {
		return nil, err
	}
	if err := s.Perm.RequireOwner(classroom, userID); err != nil {
		return nil, err
	}

	post.Title = *in.Title
	post.Content = *in.Content
	if err := s.PostRepo.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) DeletePost(userID uint, classroomID, postID string) error {
	classroom, post, err := s.loadPost(classroomID, postID)
	if err != nil {
		return err
	}
	if err := s.Perm.RequireOwner(classroom, userID); err != nil {
		return err
	}
	return s.PostRepo.Delete(post.ID)
}

func (s *PostService) CreateComment(userID uint, classroomID, postID string, in *CommentInput) (*model.Comment, error) {
	classroom, post, err := s.loadPost(classroomID, postID)
	if err != nil {
		return nil, err
	}
	if err := s.Perm.RequireMember(classroom, userID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		Content: *in.Content,
		PostID:  post.ID,
		UserID:  userID,
	}
	if err := s.CommentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *PostService) ListComments(userID uint, classroomID, postID string, p util.Pagination) (*util.PageResponse, error) {
	classroom, err := s.findClassroom(classroomID)
	if err != nil {
		return nil, err
	}
	post, err := s.findPost(classroom, postID)
	if errors.Is(err, util.ErrNotFound) {
		return nil, util.NewNonFieldError(msgPostDoesNotExist)
	}
	if err != nil {
		return nil, err
	}
	if err := s.Perm.RequireMember(classroom, userID); err != nil {
		return nil, err
	}

	comments, total, err := s.CommentRepo.ListByPost(post.ID, p.Offset(), p.Limit)
	if err != nil {
		return nil, err
	}
	resp := util.NewPageResponse(comments, total, p)
	return &resp, nil
}

func (s *PostService) loadComment(classroomID, postID, commentID string) (*model.Classroom, *model.Comment, error) {
	classroom, post, err := s.loadPost(classroomID, postID)
	if err != nil {
		return nil, nil, err
	}
	comment, err := s.findComment(post, commentID)
	if err != nil {
		return nil, nil, err
	}
	return classroom, comment, nil
}

func (s *PostService) GetComment(userID uint, classroomID, postID, commentID string) (*model.Comment, error) {
	classroom, comment, err := s.loadComment(classroomID, postID, commentID)
	if err != nil {
		return nil, err
	}
	if err := s.Perm.RequireMember(classroom, userID); err != nil {
		return nil, err
	}
	return comment, nil
}

// UpdateComment is limited to the comment's author.
func (s *PostService) UpdateComment(userID uint, classroomID, postID, commentID string, in *CommentInput) (*model.Comment, error) {
	_, comment, err := s.loadComment(classroomID, postID, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, util.ErrPermissionDenied
	}

	comment.Content = *in.Content
	if err := s.CommentRepo.Update(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment is allowed for the classroom owner and the comment's author.
func (s *PostService) DeleteComment(userID uint, classroomID, postID, commentID string) error {
	classroom, comment, err := s.loadComment(classroomID, postID, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		if err := s.Perm.RequireOwner(classroom, userID); err != nil {
			return err
		}
	}
	return s.CommentRepo.Delete(comment)
}
