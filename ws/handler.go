package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"lms_backend/internal/auth"
	"lms_backend/internal/logger"
	"lms_backend/internal/models"
	"lms_backend/internal/repositories"
	"lms_backend/internal/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browsers cannot set Authorization headers on websocket dials, so
	// origin filtering happens at the proxy. Token auth below gates the
	// actual subscription.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	manager     *Manager
	chatService services.ChatService
	courseRepo  repositories.CourseRepository
}

func NewHandler(manager *Manager, chatService services.ChatService, courseRepo repositories.CourseRepository) *Handler {
	return &Handler{
		manager:     manager,
		chatService: chatService,
		courseRepo:  courseRepo,
	}
}

// ServeWS upgrades the connection and subscribes the caller to one
// course chat. Auth comes from the token query parameter because
// browser websocket dials cannot carry headers.
func (h *Handler) ServeWS(c *gin.Context) {
	claims, err := auth.ParseToken(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing token"})
		return
	}

	courseID := c.Query("course_id")
	if courseID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "course_id query parameter is required"})
		return
	}

	course, err := h.courseRepo.FindByID(courseID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
		return
	}

	if !h.mayJoin(course, claims) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not enrolled in this course"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("ws upgrade failed", "error", err)
		return
	}

	client := &Client{
		UserID:      claims.UserID,
		CourseID:    courseID,
		Conn:        conn,
		Send:        make(chan any, h.manager.queueSize),
		manager:     h.manager,
		chatService: h.chatService,
	}

	h.manager.register <- client

	go client.readPump()
	go client.writePump()
}

func (h *Handler) mayJoin(course *models.Course, claims *auth.Claims) bool {
	switch models.UserRole(claims.Role) {
	case models.UserRoleAdmin:
		return true
	case models.UserRoleInstructor:
		return course.InstructorID == claims.UserID
	default:
		enrolled, err := h.courseRepo.IsEnrolled(claims.UserID, course.ID)
		if err != nil {
			logger.Warn("ws enrollment check failed", "user_id", claims.UserID, "error", err)
			return false
		}
		return enrolled
	}
}
