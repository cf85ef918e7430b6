package app

import (
	"quiz_room_hub/docs"
	"quiz_room_hub/internal/config"
	"quiz_room_hub/internal/middleware"
	"quiz_room_hub/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg.JWT.Secret, repos.user))
	{
		a.registerAccountRoutes(authGroup, c)
		a.registerClassroomRoutes(authGroup, c)
		a.registerQuizRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.POST("/token/refresh", c.auth.Refresh)
	}
}

func (a *App) registerAccountRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.POST("/logout", c.auth.Logout)
	rg.GET("/me", c.auth.Me)

	profiles := rg.Group("/profiles")
	{
		profiles.GET("/teachers", middleware.StaffMiddleware(), c.profile.ListTeachers)
		profiles.GET("/teachers/:id", c.profile.GetTeacher)
		profiles.PUT("/teachers/:id", c.profile.UpdateTeacher)
		profiles.DELETE("/teachers/:id", c.profile.DeleteTeacher)

		profiles.GET("/students", middleware.StaffMiddleware(), c.profile.ListStudents)
		profiles.GET("/students/:id", c.profile.GetStudent)
		profiles.PUT("/students/:id", c.profile.UpdateStudent)
		profiles.DELETE("/students/:id", c.profile.DeleteStudent)
	}
}

// Every route below /classrooms names the classroom :id, gin needs one
// wildcard name per path segment.
func (a *App) registerClassroomRoutes(rg *gin.RouterGroup, c *controllers) {
	classrooms := rg.Group("/classrooms")
	{
		classrooms.GET("", c.classroom.ListClassrooms)
		classrooms.POST("", c.classroom.CreateClassroom)
		classrooms.GET("/:id", c.classroom.GetClassroom)
		classrooms.PUT("/:id", c.classroom.UpdateClassroom)
		classrooms.DELETE("/:id", c.classroom.DeleteClassroom)
		classrooms.POST("/:id/roster", c.classroom.ImportRoster)
		classrooms.GET("/:id/quizzes", c.quiz.ListClassroomQuizzes)

		classrooms.GET("/:id/posts", c.post.ListPosts)
		classrooms.POST("/:id/posts", c.post.CreatePost)
		classrooms.GET("/:id/posts/:post_id", c.post.GetPost)
		classrooms.PUT("/:id/posts/:post_id", c.post.UpdatePost)
		classrooms.DELETE("/:id/posts/:post_id", c.post.DeletePost)

		classrooms.GET("/:id/posts/:post_id/comments", c.post.ListComments)
		classrooms.POST("/:id/posts/:post_id/comments", c.post.CreateComment)
		classrooms.GET("/:id/posts/:post_id/comments/:comment_id", c.post.GetComment)
		classrooms.PUT("/:id/posts/:post_id/comments/:comment_id", c.post.UpdateComment)
		classrooms.DELETE("/:id/posts/:post_id/comments/:comment_id", c.post.DeleteComment)
	}

	enrollments := rg.Group("/students-classrooms")
	{
		enrollments.GET("", c.classroom.ListEnrollments)
		enrollments.POST("", c.classroom.CreateEnrollment)
		enrollments.GET("/:student_id/:classroom_id", c.classroom.GetEnrollment)
		enrollments.DELETE("/:student_id/:classroom_id", c.classroom.DeleteEnrollment)
	}
}

func (a *App) registerQuizRoutes(rg *gin.RouterGroup, c *controllers) {
	quizzes := rg.Group("/quizzes")
	{
		quizzes.GET("", c.quiz.ListQuizzes)
		quizzes.POST("", c.quiz.CreateQuiz)
		quizzes.GET("/:quiz_id", c.quiz.GetQuiz)
		quizzes.PUT("/:quiz_id", c.quiz.UpdateQuiz)
		quizzes.DELETE("/:quiz_id", c.quiz.DeleteQuiz)

		quizzes.GET("/:quiz_id/questions", c.quiz.ListQuestions)
		quizzes.POST("/:quiz_id/questions", c.quiz.CreateQuestion)
		quizzes.GET("/:quiz_id/questions/:question_id", c.quiz.GetQuestion)
		quizzes.PUT("/:quiz_id/questions/:question_id", c.quiz.UpdateQuestion)
		quizzes.DELETE("/:quiz_id/questions/:question_id", c.quiz.DeleteQuestion)

		quizzes.GET("/:quiz_id/questions/:question_id/answers", c.quiz.ListAnswers)
		quizzes.POST("/:quiz_id/questions/:question_id/answers", c.quiz.CreateAnswer)
		quizzes.GET("/:quiz_id/questions/:question_id/answers/:answer_id", c.quiz.GetAnswer)
		quizzes.PUT("/:quiz_id/questions/:question_id/answers/:answer_id", c.quiz.UpdateAnswer)
		quizzes.DELETE("/:quiz_id/questions/:question_id/answers/:answer_id", c.quiz.DeleteAnswer)

		quizzes.POST("/:quiz_id/student-answer", c.submission.SubmitAnswer)
		quizzes.GET("/:quiz_id/student-quiz", c.submission.ListStudentQuizzes)
		quizzes.POST("/:quiz_id/student-quiz/submit", c.submission.SubmitQuiz)
		quizzes.GET("/:quiz_id/student-quiz/export", c.submission.ExportMarks)
	}
}
