package controller

import (
	"fmt"
	"net/http"
	"quiz_room_hub/internal/service"
	"quiz_room_hub/internal/util"

	"github.com/gin-gonic/gin"
)

type SubmissionController struct {
	SubmissionService *service.SubmissionService
}

func NewSubmissionController(submissionService *service.SubmissionService) *SubmissionController {
	return &SubmissionController{SubmissionService: submissionService}
}

// SubmitAnswer godoc
// @Summary Answer a quiz question
// @Description Enrolled students pick one answer per question until the quiz is submitted
// @Tags submissions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param quiz_id path string true "Quiz ID"
// @Param body body service.StudentAnswerInput true "Chosen answer"
// @Success 201 {object} util.Response{data=service.StudentAnswerView}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/quizzes/{quiz_id}/student-answer [post]
func (c *SubmissionController) SubmitAnswer(ctx *gin.Context) {
	var req service.StudentAnswerInput
	if err := util.BindJSON(ctx, &req); err != nil {
		util.HandleError(ctx, err)
		return
	}

	answer, err := c.SubmissionService.SubmitAnswer(currentUserID(ctx), ctx.Param("quiz_id"), &req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, answer)
}

// SubmitQuiz godoc
// @Summary Submit a quiz
// @Description Grades the student's answers and stores the mark
// @Tags submissions
// @Produce json
// @Security ApiKeyAuth
// @Param quiz_id path string true "Quiz ID"
// @Success 201 {object} util.Response{data=service.StudentQuizView}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/quizzes/{quiz_id}/student-quiz/submit [post]
func (c *SubmissionController) SubmitQuiz(ctx *gin.Context) {
	result, err := c.SubmissionService.SubmitQuiz(currentUserID(ctx), ctx.Param("quiz_id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, result)
}

// ListStudentQuizzes godoc
// @Summary List quiz marks
// @Description The classroom teacher sees every mark, a student sees their own
// @Tags submissions
// @Produce json
// @Security ApiKeyAuth
// @Param quiz_id path string true "Quiz ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{quiz_id}/student-quiz [get]
func (c *SubmissionController) ListStudentQuizzes(ctx *gin.Context) {
	page, err := c.SubmissionService.ListStudentQuizzes(currentUserID(ctx), ctx.Param("quiz_id"), util.GetPagination(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, page)
}

// ExportMarks godoc
// @Summary Export quiz marks
// @Description Downloads the gradebook of a quiz as an xlsx file
// @Tags submissions
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security ApiKeyAuth
// @Param quiz_id path string true "Quiz ID"
// @Success 200 {file} file
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{quiz_id}/student-quiz/export [get]
func (c *SubmissionController) ExportMarks(ctx *gin.Context) {
	quiz, data, err := c.SubmissionService.ExportMarks(currentUserID(ctx), ctx.Param("quiz_id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="quiz-%s-marks.xlsx"`, quiz.ID))
	ctx.Data(http.StatusOK, util.MimeXLSX, data)
}
