package controller

import (
	"quiz_room_hub/internal/service"
	"quiz_room_hub/internal/util"

	"github.com/gin-gonic/gin"
)

type ClassroomController struct {
	ClassroomService *service.ClassroomService
}

func NewClassroomController(classroomService *service.ClassroomService) *ClassroomController {
	return &ClassroomController{ClassroomService: classroomService}
}

// ListClassrooms godoc
// @Summary List my classrooms
// @Description Teachers see the classrooms they own
// @Tags classrooms
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Failure 403 {object} util.Response
// @Router /api/classrooms [get]
func (c *ClassroomController) ListClassrooms(ctx *gin.Context) {
	page, err := c.ClassroomService.List(currentUserID(ctx), util.GetPagination(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, page)
}

// CreateClassroom godoc
// @Summary Create a classroom
// @Tags classrooms
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ClassroomInput true "Classroom data"
// @Success 201 {object} util.Response{data=model.Classroom}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/classrooms [post]
func (c *ClassroomController) CreateClassroom(ctx *gin.Context) {
	var req service.ClassroomInput
	if err := util.BindJSON(ctx, &req); err != nil {
		util.HandleError(ctx, err)
		return
	}

	classroom, err := c.ClassroomService.Create(currentUserID(ctx), &req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, classroom)
}

// GetClassroom godoc
// @Summary Get a classroom
// @Tags classrooms
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Classroom ID"
// @Success 200 {object} util.Response{data=model.Classroom}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/classrooms/{id} [get]
func (c *ClassroomController) GetClassroom(ctx *gin.Context) {
	classroom, err := c.ClassroomService.Get(currentUserID(ctx), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, classroom)
}

// UpdateClassroom godoc
// @Summary Update a classroom
// @Tags classrooms
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Classroom ID"
// @Param body body service.ClassroomInput true "Classroom data"
// @Success 200 {object} util.Response{data=model.Classroom}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/classrooms/{id} [put]
func (c *ClassroomController) UpdateClassroom(ctx *gin.Context) {
	var req service.ClassroomInput
	if err := util.BindJSON(ctx, &req); err != nil {
		util.HandleError(ctx, err)
		return
	}

	classroom, err := c.ClassroomService.Update(currentUserID(ctx), ctx.Param("id"), &req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, classroom)
}

// DeleteClassroom godoc
// @Summary Delete a classroom
// @Description Removes the classroom with its enrollments, posts and quizzes
// @Tags classrooms
// @Security ApiKeyAuth
// @Param id path string true "Classroom ID"
// @Success 204 "No Content"
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/classrooms/{id} [delete]
func (c *ClassroomController) DeleteClassroom(ctx *gin.Context) {
	if err := c.ClassroomService.Delete(currentUserID(ctx), ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// ImportRoster godoc
// @Summary Import a classroom roster
// @Description Enrolls the students whose emails are in the first column of an xlsx file
// @Tags classrooms
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Classroom ID"
// @Param file formData file true "Roster spreadsheet (.xlsx)"
// @Success 200 {object} util.Response{data=service.RosterResult}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/classrooms/{id}/roster [post]
func (c *ClassroomController) ImportRoster(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.ValidationFailed(ctx, util.NewFieldError("file", "No file was submitted."))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	_, reader, err := util.SniffMimeType(file, []string{util.MimeZip, util.MimeXLSX})
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	result, err := c.ClassroomService.ImportRoster(currentUserID(ctx), ctx.Param("id"), reader)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// ListEnrollments godoc
// @Summary List enrollments
// @Description Teachers see enrollments in their classrooms, students see their own
// @Tags enrollments
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/students-classrooms [get]
func (c *ClassroomController) ListEnrollments(ctx *gin.Context) {
	page, err := c.ClassroomService.ListEnrollments(currentUserID(ctx), util.GetPagination(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, page)
}

// CreateEnrollment godoc
// @Summary Enroll a student
// @Description Teachers enroll a student into a classroom they own, students join a classroom
// @Tags enrollments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.EnrollmentInput true "Enrollment data"
// @Success 201 {object} util.Response{data=service.EnrollmentView}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/students-classrooms [post]
func (c *ClassroomController) CreateEnrollment(ctx *gin.Context) {
	var req service.EnrollmentInput
	if err := util.BindJSON(ctx, &req); err != nil {
		util.HandleError(ctx, err)
		return
	}

	enrollment, err := c.ClassroomService.CreateEnrollment(currentUserID(ctx), &req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, enrollment)
}

// GetEnrollment godoc
// @Summary Get an enrollment
// @Tags enrollments
// @Produce json
// @Security ApiKeyAuth
// @Param student_id path string true "Student profile ID"
// @Param classroom_id path string true "Classroom ID"
// @Success 200 {object} util.Response{data=service.EnrollmentView}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/students-classrooms/{student_id}/{classroom_id} [get]
func (c *ClassroomController) GetEnrollment(ctx *gin.Context) {
	enrollment, err := c.ClassroomService.GetEnrollment(currentUserID(ctx), ctx.Param("student_id"), ctx.Param("classroom_id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, enrollment)
}

// DeleteEnrollment godoc
// @Summary Remove a student from a classroom
// @Tags enrollments
// @Security ApiKeyAuth
// @Param student_id path string true "Student profile ID"
// @Param classroom_id path string true "Classroom ID"
// @Success 204 "No Content"
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/students-classrooms/{student_id}/{classroom_id} [delete]
func (c *ClassroomController) DeleteEnrollment(ctx *gin.Context) {
	if err := c.ClassroomService.DeleteEnrollment(currentUserID(ctx), ctx.Param("student_id"), ctx.Param("classroom_id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}
