package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lms_backend/internal/middleware"
	"lms_backend/internal/models"
	"lms_backend/internal/services"
	"lms_backend/internal/services/dto"
)

// UserHandler exposes the admin user provisioning endpoints. There is
// no self-service registration: accounts are created by admins only.
type UserHandler struct {
	*BaseHandler
	userService     services.UserService
	activityService services.ActivityService
}

func NewUserHandler(base *BaseHandler, userService services.UserService, activityService services.ActivityService) *UserHandler {
	return &UserHandler{
		BaseHandler:     base,
		userService:     userService,
		activityService: activityService,
	}
}

func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin/users")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.POST("", h.CreateUser)
		admin.GET("", h.ListUsers)
		admin.GET("/:userId", h.GetUser)
	}

	activity := r.Group("/admin/activity")
	activity.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleAdmin))
	{
		activity.GET("", h.ListActivity)
	}
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.userService.CreateUser(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Query("role"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUser(c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) ListActivity(c *gin.Context) {
	page, pageSize := ParsePagination(c)
	entries, err := h.activityService.List(c.Query("user_id"), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
