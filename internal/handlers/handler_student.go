package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/novacollege/nodues_backend/internal/core/domain"
	portssvc "github.com/novacollege/nodues_backend/internal/core/ports/services"
	"github.com/novacollege/nodues_backend/internal/dto"
	"github.com/novacollege/nodues_backend/internal/middleware"
)

// studentHandler handles HTTP requests related to student profiles.
type studentHandler struct {
	studentService portssvc.StudentSvcFacade
}

func newStudentHandler(ss portssvc.StudentSvcFacade) *studentHandler {
	return &studentHandler{studentService: ss}
}

// registerStudentRoutes registers all student-profile routes.
func registerStudentRoutes(rg *gin.RouterGroup, studentService portssvc.StudentSvcFacade) {
	h := newStudentHandler(studentService)

	students := rg.Group("/students")
	{
		students.POST("", middleware.RequireRoles(domain.RoleAdmin), h.createStudent)
		students.GET("", middleware.RequireRoles(domain.RoleAdmin, domain.RolePrincipal, domain.RoleHOD, domain.RoleDepartmentAdmin), h.listStudents)
		students.GET("/by-roll/:rollNumber", middleware.RequireRoles(domain.RoleAdmin, domain.RolePrincipal, domain.RoleHOD, domain.RoleDepartmentAdmin), h.getStudentByRollNumber)
		students.GET("/:userID", h.getStudent)
		students.PUT("/:userID", h.updateStudent)
	}
}

// createStudent godoc
// @Summary Register a student profile
// @Description Attaches academic details to an existing STUDENT user. Admin only.
// @Tags students
// @Accept json
// @Produce json
// @Param student body dto.CreateStudentRequest true "Student details"
// @Success 201 {object} dto.StudentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 409 {object} ErrorResponse "Profile or roll number already exists"
// @Security BearerAuth
// @Router /students [post]
func (h *studentHandler) createStudent(c *gin.Context) {
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	student, err := h.studentService.CreateStudent(c.Request.Context(), req, actor.UserID)
	if err != nil {
		respondWithError(c, err, "Failed to create student profile")
		return
	}
	c.JSON(http.StatusCreated, dto.ToStudentResponse(student))
}

// getStudent godoc
// @Summary Get a student profile
// @Description Retrieves the profile attached to a user. Students may fetch their own profile.
// @Tags students
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} dto.StudentResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /students/{userID} [get]
func (h *studentHandler) getStudent(c *gin.Context) {
	userID := c.Param("userID")

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	if actor.UserID != userID && !actor.HasAnyRole(domain.RoleAdmin, domain.RolePrincipal, domain.RoleHOD, domain.RoleDepartmentAdmin) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return
	}

	student, err := h.studentService.GetStudentByUserID(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve student profile")
		return
	}
	c.JSON(http.StatusOK, dto.ToStudentResponse(student))
}

// getStudentByRollNumber godoc
// @Summary Get a student profile by roll number
// @Tags students
// @Produce json
// @Param rollNumber path string true "Roll number"
// @Success 200 {object} dto.StudentResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /students/by-roll/{rollNumber} [get]
func (h *studentHandler) getStudentByRollNumber(c *gin.Context) {
	student, err := h.studentService.GetStudentByRollNumber(c.Request.Context(), c.Param("rollNumber"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve student profile")
		return
	}
	c.JSON(http.StatusOK, dto.ToStudentResponse(student))
}

// listStudents godoc
// @Summary List student profiles
// @Produce json
// @Tags students
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.StudentResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /students [get]
func (h *studentHandler) listStudents(c *gin.Context) {
	var params dto.ListStudentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	students, err := h.studentService.ListStudents(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondWithError(c, err, "Failed to list students")
		return
	}
	c.JSON(http.StatusOK, dto.ToListStudentResponse(students))
}

// updateStudent godoc
// @Summary Update a student profile
// @Description Updates mutable profile fields. Students may update their own profile; admins may update anyone's.
// @Tags students
// @Accept json
// @Produce json
// @Param userID path string true "User ID"
// @Param student body dto.UpdateStudentRequest true "Fields to update"
// @Success 200 {object} dto.StudentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /students/{userID} [put]
func (h *studentHandler) updateStudent(c *gin.Context) {
	userID := c.Param("userID")

	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	if actor.UserID != userID && !actor.HasRole(domain.RoleAdmin) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return
	}

	student, err := h.studentService.GetStudentByUserID(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve student profile")
		return
	}

	updated, err := h.studentService.UpdateStudent(c.Request.Context(), student.StudentID, req, actor.UserID)
	if err != nil {
		respondWithError(c, err, "Failed to update student profile")
		return
	}
	c.JSON(http.StatusOK, dto.ToStudentResponse(updated))
}
