package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/novacollege/nodues_backend/internal/core/domain"
	portssvc "github.com/novacollege/nodues_backend/internal/core/ports/services"
	"github.com/novacollege/nodues_backend/internal/dto"
	"github.com/novacollege/nodues_backend/internal/middleware"
)

// maxSignatureImageBytes caps uploaded signature images at 1 MiB.
const maxSignatureImageBytes = 1 << 20

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

// newUserHandler creates a new userHandler.
func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{userService: us}
}

// registerUserRoutes registers all user-related routes.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	users := rg.Group("/users")
	{
		users.POST("", middleware.RequireRoles(domain.RoleAdmin), h.createUser)
		users.GET("", middleware.RequireRoles(domain.RoleAdmin, domain.RolePrincipal), h.listUsers)
		users.GET("/by-department/:department", middleware.RequireRoles(domain.RoleAdmin, domain.RolePrincipal, domain.RoleHOD), h.listUsersByDepartment)
		users.GET("/:id", h.getUser)
		users.PUT("/:id", h.updateUser)
		users.DELETE("/:id", middleware.RequireRoles(domain.RoleAdmin), h.deleteUser)
		users.PUT("/:id/signature-image", h.uploadSignatureImage)
		users.GET("/:id/signature-image", h.getSignatureImage)
	}
}

// createUser godoc
// @Summary Create a new user
// @Description Creates a new user account. Admin only; any role may be granted.
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Username or email already taken"
// @Security BearerAuth
// @Router /users [post]
func (h *userHandler) createUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	createdUser, err := h.userService.CreateUser(c.Request.Context(), req, actor.UserID)
	if err != nil {
		respondWithError(c, err, "Failed to create user")
		return
	}

	logger.Info("User created", slog.String("new_user_id", createdUser.UserID), slog.String("creator_user_id", actor.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(createdUser))
}

// getUser godoc
// @Summary Get a user by ID
// @Description Retrieves a user. Users may fetch themselves; staff roles may fetch anyone.
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	userID := c.Param("id")

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	if actor.UserID != userID && !actor.HasAnyRole(domain.RoleAdmin, domain.RolePrincipal, domain.RoleHOD, domain.RoleDepartmentAdmin) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// listUsers godoc
// @Summary List users
// @Description Retrieves a paginated list of users. Admin and principal only.
// @Tags users
// @Produce json
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListUsersResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondWithError(c, err, "Failed to list users")
		return
	}
	c.JSON(http.StatusOK, dto.ToListUserResponse(users))
}

// listUsersByDepartment godoc
// @Summary List users in a department
// @Description Retrieves users belonging to a department.
// @Tags users
// @Produce json
// @Param department path string true "Department code"
// @Success 200 {object} dto.ListUsersResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/by-department/{department} [get]
func (h *userHandler) listUsersByDepartment(c *gin.Context) {
	department := domain.Department(c.Param("department"))

	users, err := h.userService.ListUsersByDepartment(c.Request.Context(), department)
	if err != nil {
		respondWithError(c, err, "Failed to list users")
		return
	}
	c.JSON(http.StatusOK, dto.ToListUserResponse(users))
}

// updateUser godoc
// @Summary Update a user
// @Description Updates a user's details. Users may update themselves; role and enabled-state changes require admin.
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID to update"
// @Param user body dto.UpdateUserRequest true "User details to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *userHandler) updateUser(c *gin.Context) {
	userID := c.Param("id")

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	isAdmin := actor.HasRole(domain.RoleAdmin)
	if actor.UserID != userID && !isAdmin {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return
	}
	if (req.Roles != nil || req.IsEnabled != nil) && !isAdmin {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Only an admin may change roles or enabled state"})
		return
	}

	updatedUser, err := h.userService.UpdateUser(c.Request.Context(), userID, req, actor.UserID)
	if err != nil {
		respondWithError(c, err, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(updatedUser))
}

// deleteUser godoc
// @Summary Delete a user
// @Description Marks a user as deleted (soft delete). Admin only.
// @Tags users
// @Produce json
// @Param id path string true "User ID to delete"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *userHandler) deleteUser(c *gin.Context) {
	userID := c.Param("id")

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), userID, actor.UserID); err != nil {
		respondWithError(c, err, "Failed to delete user")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User deleted",
		slog.String("target_user_id", userID), slog.String("deleter_user_id", actor.UserID))
	c.Status(http.StatusNoContent)
}

// uploadSignatureImage godoc
// @Summary Upload a signature image
// @Description Stores the signature image used when signing certificates with useSignatureImage=true. Users may upload their own; admins may upload for anyone.
// @Tags users
// @Accept image/png
// @Produce json
// @Param id path string true "User ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/signature-image [put]
func (h *userHandler) uploadSignatureImage(c *gin.Context) {
	userID := c.Param("id")

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	image, err := io.ReadAll(io.LimitReader(c.Request.Body, maxSignatureImageBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to read request body"})
		return
	}
	if len(image) > maxSignatureImageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "Signature image too large"})
		return
	}

	if err := h.userService.UploadSignatureImage(c.Request.Context(), userID, image, actor.UserID); err != nil {
		respondWithError(c, err, "Failed to store signature image")
		return
	}
	c.Status(http.StatusNoContent)
}

// getSignatureImage godoc
// @Summary Get a signature image
// @Description Returns the stored signature image for a user.
// @Tags users
// @Produce image/png
// @Param id path string true "User ID"
// @Success 200 {string} binary "Signature image"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/signature-image [get]
func (h *userHandler) getSignatureImage(c *gin.Context) {
	userID := c.Param("id")

	image, err := h.userService.GetSignatureImage(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve signature image")
		return
	}
	c.Data(http.StatusOK, "image/png", image)
}
