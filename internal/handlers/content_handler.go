package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lms_backend/internal/middleware"
	"lms_backend/internal/models"
	"lms_backend/internal/services"
	"lms_backend/internal/services/dto"
)

// ContentHandler groups the instructor-authored course content
// endpoints: materials, assignments, quizzes and live classes. Each
// create fans out a notification to the enrolled students.
type ContentHandler struct {
	*BaseHandler
	materialService   services.MaterialService
	assignmentService services.AssignmentService
	quizService       services.QuizService
	liveClassService  services.LiveClassService
}

func NewContentHandler(
	base *BaseHandler,
	materialService services.MaterialService,
	assignmentService services.AssignmentService,
	quizService services.QuizService,
	liveClassService services.LiveClassService,
) *ContentHandler {
	return &ContentHandler{
		BaseHandler:       base,
		materialService:   materialService,
		assignmentService: assignmentService,
		quizService:       quizService,
		liveClassService:  liveClassService,
	}
}

func (h *ContentHandler) RegisterRoutes(r *gin.RouterGroup) {
	instructor := r.Group("/instructor")
	instructor.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleInstructor))
	{
		instructor.POST("/materials", h.CreateMaterial)
		instructor.POST("/assignments", h.CreateAssignment)
		instructor.GET("/assignments/:assignmentId/submissions", h.ListSubmissions)
		instructor.PUT("/submissions/:submissionId/grade", h.GradeSubmission)
		instructor.POST("/quizzes", h.CreateQuiz)
		instructor.DELETE("/quizzes/:quizId", h.DeleteQuiz)
		instructor.GET("/quizzes/:quizId/results", h.ListQuizResults)
		instructor.POST("/live-classes", h.ScheduleLiveClass)
		instructor.PUT("/live-classes/:liveClassId/start", h.StartLiveClass)
		instructor.PUT("/live-classes/:liveClassId/end", h.EndLiveClass)
	}

	courses := r.Group("/courses")
	courses.Use(middleware.AuthMiddleware())
	{
		courses.GET("/:courseId/materials", h.ListMaterials)
		courses.GET("/:courseId/assignments", h.ListAssignments)
		courses.GET("/:courseId/quizzes", h.ListQuizzes)
		courses.GET("/:courseId/live-classes", h.ListLiveClasses)
	}

	student := r.Group("/student")
	student.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleStudent))
	{
		student.POST("/assignments/:assignmentId/submissions", h.SubmitAssignment)
		student.GET("/submissions", h.ListMySubmissions)
		student.GET("/quizzes/:quizId", h.GetQuizForTaking)
		student.POST("/quizzes/:quizId/submissions", h.SubmitQuiz)
	}
}

func (h *ContentHandler) ListMaterials(c *gin.Context) {
	materials, err := h.materialService.ListByCourse(c.Param("courseId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, materials)
}

func (h *ContentHandler) ListAssignments(c *gin.Context) {
	assignments, err := h.assignmentService.ListByCourse(c.Param("courseId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignments)
}

func (h *ContentHandler) ListQuizzes(c *gin.Context) {
	quizzes, err := h.quizService.ListByCourse(c.Param("courseId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, quizzes)
}

func (h *ContentHandler) ListLiveClasses(c *gin.Context) {
	liveClasses, err := h.liveClassService.ListByCourse(c.Param("courseId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, liveClasses)
}

func (h *ContentHandler) CreateMaterial(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateMaterialRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.materialService.CreateMaterial(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ContentHandler) CreateAssignment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateAssignmentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.assignmentService.CreateAssignment(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ContentHandler) SubmitAssignment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitAssignmentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.assignmentService.SubmitAssignment(c.Param("assignmentId"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ContentHandler) ListSubmissions(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	submissions, err := h.assignmentService.ListSubmissions(c.Param("assignmentId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, submissions)
}

func (h *ContentHandler) ListMySubmissions(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	submissions, err := h.assignmentService.ListStudentSubmissions(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, submissions)
}

func (h *ContentHandler) GradeSubmission(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.GradeSubmissionRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.assignmentService.GradeSubmission(c.Param("submissionId"), userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ContentHandler) CreateQuiz(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateQuizRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.quizService.CreateQuiz(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ContentHandler) DeleteQuiz(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.quizService.DeleteQuiz(c.Param("quizId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ContentHandler) ListQuizResults(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	results, err := h.quizService.ListResults(c.Param("quizId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func (h *ContentHandler) GetQuizForTaking(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	quiz, err := h.quizService.GetQuizForTaking(c.Param("quizId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

func (h *ContentHandler) SubmitQuiz(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitQuizRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	result, err := h.quizService.SubmitQuiz(c.Param("quizId"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *ContentHandler) ScheduleLiveClass(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ScheduleLiveClassRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.liveClassService.ScheduleLiveClass(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ContentHandler) StartLiveClass(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.liveClassService.StartLiveClass(c.Param("liveClassId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ContentHandler) EndLiveClass(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.liveClassService.EndLiveClass(c.Param("liveClassId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
