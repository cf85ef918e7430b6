package controller

import (
	"quiz_room_hub/internal/service"
	"quiz_room_hub/internal/util"

	"github.com/gin-gonic/gin"
)

type PostController struct {
	PostService *service.PostService
}

func NewPostController(postService *service.PostService) *PostController {
	return &PostController{PostService: postService}
}

// ListPosts godoc
// @Summary List classroom posts
// @Tags posts
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Classroom ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Failure 400 {object} util.Response "Unknown classroom"
// @Failure 403 {object} util.Response
// @Router /api/classrooms/{id}/posts [get]
func (c *PostController) ListPosts(ctx *gin.Context) {
	page, err := c.PostService.ListPosts(currentUserID(ctx), ctx.Param("id"), util.GetPagination(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, page)
}

// CreatePost godoc
// @Summary Publish a post in a classroom
// @Tags posts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Classroom ID"
// @Param body body service.PostInput true "Post data"
// @Success 201 {object} util.Response{data=model.CoursePost}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/classrooms/{id}/posts [post]
func (c *PostController) CreatePost(ctx *gin.Context) {
	var req service.PostInput
	if err := util.BindJSON(ctx, &req); err != nil {
		util.HandleError(ctx, err)
		return
	}

	post, err := c.PostService.CreatePost(currentUserID(ctx), ctx.Param("id"), &req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, post)
}

// GetPost godoc
// @Summary Get a post
// @Tags posts
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Classroom ID"
// @Param post_id path string true "Post ID"
// @Success 200 {object} util.Response{data=model.CoursePost}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/classrooms/{id}/posts/{post_id} [get]
func (c *PostController) GetPost(ctx *gin.Context) {
	post, err := c.PostService.GetPost(currentUserID(ctx), ctx.Param("id"), ctx.Param("post_id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, post)
}

// UpdatePost godoc
// @Summary Update a post
// @Tags posts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Classroom ID"
// @Param post_id path string true "Post ID"
// @Param body body service.PostInput true "Post data"
// @Success 200 {object} util.Response{data=model.CoursePost}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/classrooms/{id}/posts/{post_id} [put]
func (c *PostController) UpdatePost(ctx *gin.Context) {
	var req service.PostInput
	if err := util.BindJSON(ctx, &req); err != nil {
		util.HandleError(ctx, err)
		return
	}

	post, err := c.PostService.UpdatePost(currentUserID(ctx), ctx.Param("id"), ctx.Param("post_id"), &req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, post)
}

// DeletePost godoc
// @Summary Delete a post
// @Tags posts
// @Security ApiKeyAuth
// @Param id path string true "Classroom ID"
// @Param post_id path string true "Post ID"
// @Success 204 "No Content"
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/classrooms/{id}/posts/{post_id} [delete]
func (c *PostController) DeletePost(ctx *gin.Context) {
	if err := c.PostService.DeletePost(currentUserID(ctx), ctx.Param("id"), ctx.Param("post_id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// ListComments godoc
// @Summary List comments of a post
// @Tags comments
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Classroom ID"
// @Param post_id path string true "Post ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Failure 400 {object} util.Response "Unknown post"
// @Failure 403 {object} util.Response
// @Router /api/classrooms/{id}/posts/{post_id}/comments [get]
func (c *PostController) ListComments(ctx *gin.Context) {
	page, err := c.PostService.ListComments(currentUserID(ctx), ctx.Param("id"), ctx.Param("post_id"), util.GetPagination(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, page)
}

// CreateComment godoc
// @Summary Comment on a post
// @Tags comments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Classroom ID"
// @Param post_id path string true "Post ID"
// @Param body body service.CommentInput true "Comment data"
// @Success 201 {object} util.Response{data=model.Comment}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/classrooms/{id}/posts/{post_id}/comments [post]
func (c *PostController) CreateComment(ctx *gin.Context) {
	var req service.CommentInput
	if err := util.BindJSON(ctx, &req); err != nil {
		util.HandleError(ctx, err)
		return
	}

	comment, err := c.PostService.CreateComment(currentUserID(ctx), ctx.Param("id"), ctx.Param("post_id"), &req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, comment)
}

// @Summary Get a comment
// @Tags comments
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Classroom ID"
// @Param post_id path string true "Post ID"
// @Param comment_id path string true "Comment ID"
// @Success 200 {object} util.Response{data=model.Comment}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/classrooms/{id}/posts/{post_id}/comments/{comment_id} [get]
func (c *PostController) GetComment(ctx *gin.Context) {
	comment, err := c.PostService.GetComment(currentUserID(ctx), ctx.Param("id"), ctx.Param("post_id"), ctx.Param("comment_id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, comment)
}

// @Summary Edit a comment
// @Description Only the author may edit a comment
// @Tags comments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Classroom ID"
// @Param post_id path string true "Post ID"
// @Param comment_id path string true "Comment ID"
// @Param body body service.CommentInput true "Comment data"
// @Success 200 {object} util.Response{data=model.Comment}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/classrooms/{id}/posts/{post_id}/comments/{comment_id} [put]
func (c *PostController) UpdateComment(ctx *gin.Context) {
	var req service.CommentInput
	if err := util.BindJSON(ctx, &req); err != nil {
		util.HandleError(ctx, err)
		return
	}

	comment, err := c.PostService.UpdateComment(currentUserID(ctx), ctx.Param("id"), ctx.Param("post_id"), ctx.Param("comment_id"), &req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, comment)
}

// @Summary Delete a comment
// @Description The author or the classroom teacher may delete a comment
// @Tags comments
// @Security ApiKeyAuth
// @Param id path string true "Classroom ID"
// @Param post_id path string true "Post ID"
// @Param comment_id path string true "Comment ID"
// @Success 204 "No Content"
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/classrooms/{id}/posts/{post_id}/comments/{comment_id} [delete]
func (c *PostController) DeleteComment(ctx *gin.Context) {
	if err := c.PostService.DeleteComment(currentUserID(ctx), ctx.Param("id"), ctx.Param("post_id"), ctx.Param("comment_id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}
