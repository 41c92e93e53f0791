package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/novacollege/nodues_backend/internal/core/domain"
	portssvc "github.com/novacollege/nodues_backend/internal/core/ports/services"
	"github.com/novacollege/nodues_backend/internal/dto"
	"github.com/novacollege/nodues_backend/internal/middleware"
)

// dueHandler handles HTTP requests for the due ledger.
type dueHandler struct {
	dueService portssvc.DueSvcFacade
}

func newDueHandler(ds portssvc.DueSvcFacade) *dueHandler {
	return &dueHandler{dueService: ds}
}

// RegisterDueRoutes registers all due-related routes.
func RegisterDueRoutes(rg *gin.RouterGroup, dueService portssvc.DueSvcFacade) {
	h := newDueHandler(dueService)

	dues := rg.Group("/dues")
	{
		dues.POST("", middleware.RequireRoles(domain.RoleAdmin, domain.RoleDepartmentAdmin), h.createDue)
		dues.GET("", h.listDues)
		dues.GET("/student/:userID", h.listDuesByStudent)
		dues.GET("/:id", h.getDue)
		dues.POST("/:id/pay", h.payDue)
		dues.POST("/:id/approve", middleware.RequireRoles(domain.RoleAdmin, domain.RoleDepartmentAdmin, domain.RoleHOD), h.approveDue)
		dues.POST("/:id/reject", middleware.RequireRoles(domain.RoleAdmin, domain.RoleDepartmentAdmin, domain.RoleHOD), h.rejectDue)
		dues.POST("/:id/receipt", h.generateReceipt)
		dues.DELETE("/:id", middleware.RequireRoles(domain.RoleAdmin, domain.RoleDepartmentAdmin), h.deleteDue)
	}
}

// createDue godoc
// @Summary Raise a due against a student
// @Description Creates a PENDING due. Department admins are scoped to their own department.
// @Tags dues
// @Accept json
// @Produce json
// @Param due body dto.CreateDueRequest true "Due details"
// @Success 201 {object} dto.DueResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Student not found"
// @Security BearerAuth
// @Router /dues [post]
func (h *dueHandler) createDue(c *gin.Context) {
	var req dto.CreateDueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	due, err := h.dueService.CreateDue(c.Request.Context(), actor, req)
	if err != nil {
		respondWithError(c, err, "Failed to create due")
		return
	}
	c.JSON(http.StatusCreated, dto.ToDueResponse(due))
}

// listDues godoc
// @Summary List dues visible to the caller
// @Description Admins see all dues (token paginated), department admins and HODs their department, students their own.
// @Tags dues
// @Produce json
// @Param limit query int false "Maximum results per page" default(20)
// @Param nextToken query string false "Pagination token from a previous response"
// @Success 200 {object} dto.ListDuesResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /dues [get]
func (h *dueHandler) listDues(c *gin.Context) {
	var params dto.ListDuesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	dues, nextToken, err := h.dueService.ListDuesForActor(c.Request.Context(), actor, params.Limit, params.NextToken)
	if err != nil {
		respondWithError(c, err, "Failed to list dues")
		return
	}
	c.JSON(http.StatusOK, dto.ToListDuesResponse(dues, nextToken))
}

// listDuesByStudent godoc
// @Summary List a student's dues
// @Description Students may list their own dues; department-scoped staff see only their department's slice.
// @Tags dues
// @Produce json
// @Param userID path string true "Student user ID"
// @Success 200 {object} dto.ListDuesResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /dues/student/{userID} [get]
func (h *dueHandler) listDuesByStudent(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	dues, err := h.dueService.ListDuesByStudent(c.Request.Context(), actor, c.Param("userID"))
	if err != nil {
		respondWithError(c, err, "Failed to list dues")
		return
	}
	c.JSON(http.StatusOK, dto.ToListDuesResponse(dues, nil))
}

// getDue godoc
// @Summary Get a due by ID
// @Tags dues
// @Produce json
// @Param id path string true "Due ID"
// @Success 200 {object} dto.DueResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /dues/{id} [get]
func (h *dueHandler) getDue(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	due, err := h.dueService.GetDueByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve due")
		return
	}

	// Students may only see their own dues.
	if !actor.HasAnyRole(domain.RoleAdmin, domain.RolePrincipal, domain.RoleHOD, domain.RoleDepartmentAdmin) && due.StudentUserID != actor.UserID {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return
	}
	c.JSON(http.StatusOK, dto.ToDueResponse(due))
}

// payDue godoc
// @Summary Pay a due
// @Description Marks a PENDING due as PAID with the student's payment reference. Only the owning student may pay.
// @Tags dues
// @Accept json
// @Produce json
// @Param id path string true "Due ID"
// @Param payment body dto.PayDueRequest true "Payment reference"
// @Success 200 {object} dto.DueResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Due is not payable in its current state"
// @Security BearerAuth
// @Router /dues/{id}/pay [post]
func (h *dueHandler) payDue(c *gin.Context) {
	var req dto.PayDueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	due, err := h.dueService.PayDue(c.Request.Context(), actor, c.Param("id"), req.PaymentReference)
	if err != nil {
		respondWithError(c, err, "Failed to record payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToDueResponse(due))
}

// approveDue godoc
// @Summary Approve a paid due
// @Description Moves a PAID due to APPROVED. Department admins and HODs are scoped to their own department.
// @Tags dues
// @Produce json
// @Param id path string true "Due ID"
// @Success 200 {object} dto.DueResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Due is not in the PAID state"
// @Security BearerAuth
// @Router /dues/{id}/approve [post]
func (h *dueHandler) approveDue(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	due, err := h.dueService.ApproveDue(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to approve due")
		return
	}
	c.JSON(http.StatusOK, dto.ToDueResponse(due))
}

// rejectDue godoc
// @Summary Reject a due
// @Description Moves a due to REJECTED, e.g. when a claimed payment could not be verified.
// @Tags dues
// @Produce json
// @Param id path string true "Due ID"
// @Success 200 {object} dto.DueResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /dues/{id}/reject [post]
func (h *dueHandler) rejectDue(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	due, err := h.dueService.RejectDue(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to reject due")
		return
	}
	c.JSON(http.StatusOK, dto.ToDueResponse(due))
}

// generateReceipt godoc
// @Summary Generate a payment receipt
// @Description Allocates a receipt number for an APPROVED due. Idempotent: repeated calls return the same receipt.
// @Tags dues
// @Produce json
// @Param id path string true "Due ID"
// @Success 200 {object} dto.DueResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Due is not APPROVED"
// @Security BearerAuth
// @Router /dues/{id}/receipt [post]
func (h *dueHandler) generateReceipt(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	due, err := h.dueService.GenerateDueReceipt(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to generate receipt")
		return
	}
	c.JSON(http.StatusOK, dto.ToDueResponse(due))
}

// deleteDue godoc
// @Summary Delete a due
// @Description Removes a PENDING due. Department admins may only delete dues of their own department.
// @Tags dues
// @Produce json
// @Param id path string true "Due ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Only PENDING dues can be deleted"
// @Security BearerAuth
// @Router /dues/{id} [delete]
func (h *dueHandler) deleteDue(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	if err := h.dueService.DeleteDue(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondWithError(c, err, "Failed to delete due")
		return
	}
	c.Status(http.StatusNoContent)
}
