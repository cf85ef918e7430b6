package controller

import (
	"quiz_room_hub/internal/service"
	"quiz_room_hub/internal/util"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	ProfileService *service.ProfileService
}

func NewProfileController(profileService *service.ProfileService) *ProfileController {
	return &ProfileController{ProfileService: profileService}
}

// ListTeachers godoc
// @Summary List teacher profiles
// @Description Staff only
// @Tags profiles
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Failure 403 {object} util.Response
// @Router /api/profiles/teachers [get]
func (c *ProfileController) ListTeachers(ctx *gin.Context) {
	page, err := c.ProfileService.ListTeachers(util.GetPagination(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, page)
}

// GetTeacher godoc
// @Summary Get a teacher profile
// @Tags profiles
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Profile ID"
// @Success 200 {object} util.Response{data=service.TeacherProfileView}
// @Failure 404 {object} util.Response
// @Router /api/profiles/teachers/{id} [get]
func (c *ProfileController) GetTeacher(ctx *gin.Context) {
	profile, err := c.ProfileService.GetTeacher(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, profile)
}

// UpdateTeacher godoc
// @Summary Update a teacher profile
// @Description Only the profile owner may update it
// @Tags profiles
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Profile ID"
// @Param body body service.TeacherProfileInput true "Profile data"
// @Success 200 {object} util.Response{data=service.TeacherProfileView}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/profiles/teachers/{id} [put]
func (c *ProfileController) UpdateTeacher(ctx *gin.Context) {
	var req service.TeacherProfileInput
	if err := util.BindJSON(ctx, &req); err != nil {
		util.HandleError(ctx, err)
		return
	}

	profile, err := c.ProfileService.UpdateTeacher(currentUserID(ctx), ctx.Param("id"), &req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, profile)
}

// DeleteTeacher godoc
// @Summary Delete a teacher profile
// @Description Deletes the profile together with its user account
// @Tags profiles
// @Security ApiKeyAuth
// @Param id path string true "Profile ID"
// @Success 204 "No Content"
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/profiles/teachers/{id} [delete]
func (c *ProfileController) DeleteTeacher(ctx *gin.Context) {
	if err := c.ProfileService.DeleteTeacher(currentUserID(ctx), ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// ListStudents godoc
// @Summary List student profiles
// @Description Staff only
// @Tags profiles
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Failure 403 {object} util.Response
// @Router /api/profiles/students [get]
func (c *ProfileController) ListStudents(ctx *gin.Context) {
	page, err := c.ProfileService.ListStudents(util.GetPagination(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, page)
}

// @Summary Get a student profile
// @Tags profiles
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Profile ID"
// @Success 200 {object} util.Response{data=service.StudentProfileView}
// @Failure 404 {object} util.Response
// @Router /api/profiles/students/{id} [get]
func (c *ProfileController) GetStudent(ctx *gin.Context) {
	profile, err := c.ProfileService.GetStudent(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, profile)
}

// @Summary Update a student profile
// @Tags profiles
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Profile ID"
// @Param body body service.StudentProfileInput true "Profile data"
// @Success 200 {object} util.Response{data=service.StudentProfileView}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/profiles/students/{id} [put]
func (c *ProfileController) UpdateStudent(ctx *gin.Context) {
	var req service.StudentProfileInput
	if err := util.BindJSON(ctx, &req); err != nil {
		util.HandleError(ctx, err)
		return
	}

	profile, err := c.ProfileService.UpdateStudent(currentUserID(ctx), ctx.Param("id"), &req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, profile)
}

// @Summary Delete a student profile
// @Tags profiles
// @Security ApiKeyAuth
// @Param id path string true "Profile ID"
// @Success 204 "No Content"
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/profiles/students/{id} [delete]
func (c *ProfileController) DeleteStudent(ctx *gin.Context) {
	if err := c.ProfileService.DeleteStudent(currentUserID(ctx), ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}
