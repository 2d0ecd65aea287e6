package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lms_backend/internal/middleware"
	"lms_backend/internal/models"
	"lms_backend/internal/services"
	"lms_backend/internal/services/dto"
)

type CourseHandler struct {
	*BaseHandler
	courseService services.CourseService
}

func NewCourseHandler(base *BaseHandler, courseService services.CourseService) *CourseHandler {
	return &CourseHandler{
		BaseHandler:   base,
		courseService: courseService,
	}
}

func (h *CourseHandler) RegisterRoutes(r *gin.RouterGroup) {
	courses := r.Group("/courses")
	courses.Use(middleware.AuthMiddleware())
	{
		courses.GET("", h.ListCourses)
		courses.GET("/:courseId", h.GetCourseDetail)
	}

	admin := r.Group("/admin/courses")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.POST("", h.CreateCourse)
		admin.POST("/:courseId/enrollments", h.EnrollStudent)
	}
}

func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req dto.CreateCourseRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.courseService.CreateCourse(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CourseHandler) EnrollStudent(c *gin.Context) {
	var req dto.EnrollRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.courseService.EnrollStudent(c.Param("courseId"), req.StudentID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

// ListCourses returns role-appropriate courses: instructors see what
// they teach, students what they are enrolled in, admins everything
// visible.
func (h *CourseHandler) ListCourses(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var (
		courses []*dto.CourseResponse
		err     error
	)
	switch models.UserRole(h.GetRole(c)) {
	case models.UserRoleInstructor:
		courses, err = h.courseService.ListInstructorCourses(userID)
	case models.UserRoleStudent:
		courses, err = h.courseService.ListEnrolledCourses(userID)
	default:
		courses, err = h.courseService.ListVisibleCourses()
	}
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

func (h *CourseHandler) GetCourseDetail(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	detail, err := h.courseService.GetCourseDetail(c.Param("courseId"), userID, h.GetRole(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}
