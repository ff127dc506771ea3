package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/apexstock/apex-stock-api/internal/middleware"
	"github.com/apexstock/apex-stock-api/internal/models"
	"github.com/apexstock/apex-stock-api/internal/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// @Summary List Users
// @Description Get all users (admin only)
// @Tags Users
// @Produce json
// @Success 200 {array} models.UserResponse
// @Security BearerAuth
// @Router /users [get]
func (h *UserHandler) Index(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, users[i].ToResponse())
	}
	c.JSON(http.StatusOK, responses)
}

// @Summary Get User
// @Description Get a single user by ID (admin only)
// @Tags Users
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} models.UserResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /users/{user_id} [get]
func (h *UserHandler) Show(c *gin.Context) {
	id, ok := parseID(c, "user_id")
	if !ok {
		return
	}

	user, err := h.userService.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.ToResponse())
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// @Summary Create User
// @Description Create a new user with an explicit role (admin only)
// @Tags Users
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "User Data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "kind": "validation_failed"})
		return
	}

	user, err := h.userService.Create(c.Request.Context(), services.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    user.ToResponse(),
	})
}

type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Role     *string `json:"role"`
	Password *string `json:"password"`
}

// @Summary Update User
// @Description Update a user. Only the supplied fields change (admin only).
// @Tags Users
// @Accept json
// @Produce json
// @Param user_id path int true "User ID"
// @Param request body UpdateUserRequest true "User Fields"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /users/{user_id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "user_id")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "kind": "validation_failed"})
		return
	}

	user, err := h.userService.Update(c.Request.Context(), id, services.UpdateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Role:     req.Role,
		Password: req.Password,
	}, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"user":    user.ToResponse(),
	})
}

// @Summary Delete User
// @Description Delete a user. Self-deletion is rejected (admin only).
// @Tags Users
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /users/{user_id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "user_id")
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id, middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// @Summary User Stats
// @Description Get user counts by role (admin only)
// @Tags Users
// @Produce json
// @Success 200 {object} models.UserStats
// @Security BearerAuth
// @Router /users/stats [get]
func (h *UserHandler) Stats(c *gin.Context) {
	stats, err := h.userService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
