package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lms_backend/internal/middleware"
	"lms_backend/internal/services"
	"lms_backend/internal/services/dto"
)

type ChatHandler struct {
	*BaseHandler
	chatService     services.ChatService
	activityService services.ActivityService
}

func NewChatHandler(base *BaseHandler, chatService services.ChatService, activityService services.ActivityService) *ChatHandler {
	return &ChatHandler{
		BaseHandler:     base,
		chatService:     chatService,
		activityService: activityService,
	}
}

func (h *ChatHandler) RegisterRoutes(r *gin.RouterGroup) {
	chat := r.Group("/chat")
	chat.Use(middleware.AuthMiddleware())
	{
		chat.POST("/messages", h.SendMessage)
		chat.GET("/courses/:courseId/messages", h.GetMessages)
	}
}

// SendMessage is the HTTP fallback for clients without a live socket.
// The service persists and broadcasts in one call either way.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.chatService.SaveMessage(userID, req.CourseID, req.Message)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.activityService.Record(userID, "chat_message", req.CourseID)
	c.JSON(http.StatusOK, resp)
}

func (h *ChatHandler) GetMessages(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	messages, err := h.chatService.GetMessagesForCourse(c.Param("courseId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}
