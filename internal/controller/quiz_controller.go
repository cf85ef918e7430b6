package controller

import (
	"quiz_room_hub/internal/service"
	"quiz_room_hub/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// ListQuizzes godoc
// @Summary List my quizzes
// @Description Quizzes in every classroom owned by the teacher
// @Tags quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Failure 403 {object} util.Response
// @Router /api/quizzes [get]
func (c *QuizController) ListQuizzes(ctx *gin.Context) {
	page, err := c.QuizService.ListQuizzes(currentUserID(ctx), util.GetPagination(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, page)
}

// ListClassroomQuizzes godoc
// @Summary List quizzes of a classroom
// @Tags quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Classroom ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/classrooms/{id}/quizzes [get]
func (c *QuizController) ListClassroomQuizzes(ctx *gin.Context) {
	page, err := c.QuizService.ListClassroomQuizzes(currentUserID(ctx), ctx.Param("id"), util.GetPagination(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, page)
}

// CreateQuiz godoc
// @Summary Create a quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.QuizInput true "Quiz data"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	var req service.QuizInput
	if err := util.BindJSON(ctx, &req); err != nil {
		util.HandleError(ctx, err)
		return
	}

	quiz, err := c.QuizService.CreateQuiz(currentUserID(ctx), &req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}

// GetQuiz godoc
// @Summary Get a quiz
// @Tags quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param quiz_id path string true "Quiz ID"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{quiz_id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	quiz, err := c.QuizService.GetQuiz(currentUserID(ctx), ctx.Param("quiz_id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// UpdateQuiz godoc
// @Summary Update a quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param quiz_id path string true "Quiz ID"
// @Param body body service.QuizUpdateInput true "Quiz data"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{quiz_id} [put]
func (c *QuizController) UpdateQuiz(ctx *gin.Context) {
	var req service.QuizUpdateInput
	if err := util.BindJSON(ctx, &req); err != nil {
		util.HandleError(ctx, err)
		return
	}

	quiz, err := c.QuizService.UpdateQuiz(currentUserID(ctx), ctx.Param("quiz_id"), &req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// DeleteQuiz godoc
// @Summary Delete a quiz
// @Tags quizzes
// @Security ApiKeyAuth
// @Param quiz_id path string true "Quiz ID"
// @Success 204 "No Content"
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{quiz_id} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	if err := c.QuizService.DeleteQuiz(currentUserID(ctx), ctx.Param("quiz_id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// ListQuestions godoc
// @Summary List questions of a quiz
// @Description Answer validity is only shown to the classroom teacher
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Param quiz_id path string true "Quiz ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{quiz_id}/questions [get]
func (c *QuizController) ListQuestions(ctx *gin.Context) {
	page, err := c.QuizService.ListQuestions(currentUserID(ctx), ctx.Param("quiz_id"), util.GetPagination(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, page)
}

// CreateQuestion godoc
// @Summary Add a question to a quiz
// @Tags questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param quiz_id path string true "Quiz ID"
// @Param body body service.QuestionInput true "Question data"
// @Success 201 {object} util.Response{data=service.QuestionView}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{quiz_id}/questions [post]
func (c *QuizController) CreateQuestion(ctx *gin.Context) {
	var req service.QuestionInput
	if err := util.BindJSON(ctx, &req); err != nil {
		util.HandleError(ctx, err)
		return
	}

	question, err := c.QuizService.CreateQuestion(currentUserID(ctx), ctx.Param("quiz_id"), &req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// @Summary Get a question
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Param quiz_id path string true "Quiz ID"
// @Param question_id path string true "Question ID"
// @Success 200 {object} util.Response{data=service.QuestionView}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{quiz_id}/questions/{question_id} [get]
func (c *QuizController) GetQuestion(ctx *gin.Context) {
	question, err := c.QuizService.GetQuestion(currentUserID(ctx), ctx.Param("quiz_id"), ctx.Param("question_id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// @Summary Update a question
// @Tags questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param quiz_id path string true "Quiz ID"
// @Param question_id path string true "Question ID"
// @Param body body service.QuestionInput true "Question data"
// @Success 200 {object} util.Response{data=service.QuestionView}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{quiz_id}/questions/{question_id} [put]
func (c *QuizController) UpdateQuestion(ctx *gin.Context) {
	var req service.QuestionInput
	if err := util.BindJSON(ctx, &req); err != nil {
		util.HandleError(ctx, err)
		return
	}

	question, err := c.QuizService.UpdateQuestion(currentUserID(ctx), ctx.Param("quiz_id"), ctx.Param("question_id"), &req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// @Summary Delete a question
// @Tags questions
// @Security ApiKeyAuth
// @Param quiz_id path string true "Quiz ID"
// @Param question_id path string true "Question ID"
// @Success 204 "No Content"
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{quiz_id}/questions/{question_id} [delete]
func (c *QuizController) DeleteQuestion(ctx *gin.Context) {
	if err := c.QuizService.DeleteQuestion(currentUserID(ctx), ctx.Param("quiz_id"), ctx.Param("question_id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// ListAnswers godoc
// @Summary List answers of a question
// @Description Classroom teacher only
// @Tags answers
// @Produce json
// @Security ApiKeyAuth
// @Param quiz_id path string true "Quiz ID"
// @Param question_id path string true "Question ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{quiz_id}/questions/{question_id}/answers [get]
func (c *QuizController) ListAnswers(ctx *gin.Context) {
	page, err := c.QuizService.ListAnswers(currentUserID(ctx), ctx.Param("quiz_id"), ctx.Param("question_id"), util.GetPagination(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, page)
}

// CreateAnswer godoc
// @Summary Add an answer to a question
// @Tags answers
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param quiz_id path string true "Quiz ID"
// @Param question_id path string true "Question ID"
// @Param body body service.AnswerInput true "Answer data"
// @Success 201 {object} util.Response{data=model.Answer}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{quiz_id}/questions/{question_id}/answers [post]
func (c *QuizController) CreateAnswer(ctx *gin.Context) {
	var req service.AnswerInput
	if err := util.BindJSON(ctx, &req); err != nil {
		util.HandleError(ctx, err)
		return
	}

	answer, err := c.QuizService.CreateAnswer(currentUserID(ctx), ctx.Param("quiz_id"), ctx.Param("question_id"), &req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, answer)
}

// @Summary Get an answer
// @Tags answers
// @Produce json
// @Security ApiKeyAuth
// @Param quiz_id path string true "Quiz ID"
// @Param question_id path string true "Question ID"
// @Param answer_id path string true "Answer ID"
// @Success 200 {object} util.Response{data=model.Answer}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{quiz_id}/questions/{question_id}/answers/{answer_id} [get]
func (c *QuizController) GetAnswer(ctx *gin.Context) {
	answer, err := c.QuizService.GetAnswer(currentUserID(ctx), ctx.Param("quiz_id"), ctx.Param("question_id"), ctx.Param("answer_id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, answer)
}

// @Summary Update an answer
// @Tags answers
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param quiz_id path string true "Quiz ID"
// @Param question_id path string true "Question ID"
// @Param answer_id path string true "Answer ID"
// @Param body body service.AnswerInput true "Answer data"
// @Success 200 {object} util.Response{data=model.Answer}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{quiz_id}/questions/{question_id}/answers/{answer_id} [put]
func (c *QuizController) UpdateAnswer(ctx *gin.Context) {
	var req service.AnswerInput
	if err := util.BindJSON(ctx, &req); err != nil {
		util.HandleError(ctx, err)
		return
	}

	answer, err := c.QuizService.UpdateAnswer(currentUserID(ctx), ctx.Param("quiz_id"), ctx.Param("question_id"), ctx.Param("answer_id"), &req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, answer)
}

// @Summary Delete an answer
// @Tags answers
// @Security ApiKeyAuth
// @Param quiz_id path string true "Quiz ID"
// @Param question_id path string true "Question ID"
// @Param answer_id path string true "Answer ID"
// @Success 204 "No Content"
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{quiz_id}/questions/{question_id}/answers/{answer_id} [delete]
func (c *QuizController) DeleteAnswer(ctx *gin.Context) {
	if err := c.QuizService.DeleteAnswer(currentUserID(ctx), ctx.Param("quiz_id"), ctx.Param("question_id"), ctx.Param("answer_id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}
