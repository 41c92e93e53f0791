package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/novacollege/nodues_backend/internal/core/domain"
	portssvc "github.com/novacollege/nodues_backend/internal/core/ports/services"
	"github.com/novacollege/nodues_backend/internal/dto"
	"github.com/novacollege/nodues_backend/internal/middleware"
)

// certificateHandler handles HTTP requests for the no-dues certificate
// workflow.
type certificateHandler struct {
	certificateService portssvc.CertificateSvcFacade
}

func newCertificateHandler(cs portssvc.CertificateSvcFacade) *certificateHandler {
	return &certificateHandler{certificateService: cs}
}

// registerCertificateRoutes registers certificate and signature routes.
func registerCertificateRoutes(rg *gin.RouterGroup, certificateService portssvc.CertificateSvcFacade) {
	h := newCertificateHandler(certificateService)

	certificates := rg.Group("/certificates")
	{
		certificates.POST("", h.createCertificate)
		certificates.GET("", h.listCertificates)
		certificates.GET("/by-number/:number", h.getCertificateByNumber)
		certificates.GET("/student/:userID", h.listCertificatesByStudent)
		certificates.GET("/pending-principal", middleware.RequireRoles(domain.RolePrincipal, domain.RoleAdmin), h.listPendingPrincipal)
		certificates.GET("/:id", h.getCertificate)
		certificates.POST("/:id/sign", middleware.RequireRoles(domain.RoleDepartmentAdmin, domain.RoleHOD, domain.RoleAdmin), h.signByDepartment)
		certificates.POST("/:id/reject", middleware.RequireRoles(domain.RoleDepartmentAdmin, domain.RoleHOD, domain.RoleAdmin), h.rejectByDepartment)
		certificates.POST("/:id/principal-sign", middleware.RequireRoles(domain.RolePrincipal, domain.RoleAdmin), h.signByPrincipal)
		certificates.PUT("/:id/status", middleware.RequireRoles(domain.RoleAdmin), h.updateStatus)
		certificates.POST("/:id/request-signature", h.requestSignature)
		certificates.DELETE("/:id", middleware.RequireRoles(domain.RoleAdmin), h.deleteCertificate)
	}

	signatures := rg.Group("/signatures")
	{
		signatures.GET("/pending", middleware.RequireRoles(domain.RoleDepartmentAdmin, domain.RoleHOD, domain.RoleAdmin), h.listPendingSignatures)
		signatures.GET("/student/:userID", h.listSignaturesByStudent)
		signatures.POST("/receipt", middleware.RequireRoles(domain.RoleDepartmentAdmin, domain.RoleHOD, domain.RoleAdmin), h.generateDepartmentReceipt)
	}
}

// createCertificate godoc
// @Summary Request a no-dues certificate
// @Description Opens a certificate with one PENDING signature per required department. Fails while the student has uncleared dues or an active certificate.
// @Tags certificates
// @Accept json
// @Produce json
// @Param request body dto.CreateCertificateRequest true "Student to open the certificate for"
// @Success 201 {object} dto.CertificateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Uncleared dues or an active certificate exists"
// @Security BearerAuth
// @Router /certificates [post]
func (h *certificateHandler) createCertificate(c *gin.Context) {
	var req dto.CreateCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	certificate, err := h.certificateService.CreateCertificate(c.Request.Context(), actor, req.StudentUserID)
	if err != nil {
		respondWithError(c, err, "Failed to create certificate")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCertificateResponse(certificate))
}

// listCertificates godoc
// @Summary List certificates visible to the caller
// @Description Admins see everything, the principal their sign-off queue, HODs their department's students, department admins certificates awaiting their signature, students their own.
// @Tags certificates
// @Produce json
// @Success 200 {array} dto.CertificateResponse
// @Security BearerAuth
// @Router /certificates [get]
func (h *certificateHandler) listCertificates(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	certificates, err := h.certificateService.ListCertificatesForActor(c.Request.Context(), actor)
	if err != nil {
		respondWithError(c, err, "Failed to list certificates")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCertificateResponse(certificates))
}

// getCertificate godoc
// @Summary Get a certificate by ID
// @Tags certificates
// @Produce json
// @Param id path string true "Certificate ID"
// @Success 200 {object} dto.CertificateResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /certificates/{id} [get]
func (h *certificateHandler) getCertificate(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	certificate, err := h.certificateService.GetCertificateByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve certificate")
		return
	}
	if !actor.HasAnyRole(domain.RoleAdmin, domain.RolePrincipal, domain.RoleHOD, domain.RoleDepartmentAdmin) && certificate.StudentUserID != actor.UserID {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return
	}
	c.JSON(http.StatusOK, dto.ToCertificateResponse(certificate))
}

// getCertificateByNumber godoc
// @Summary Get a certificate by its number
// @Description Lookup used for certificate verification.
// @Tags certificates
// @Produce json
// @Param number path string true "Certificate number"
// @Success 200 {object} dto.CertificateResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /certificates/by-number/{number} [get]
func (h *certificateHandler) getCertificateByNumber(c *gin.Context) {
	certificate, err := h.certificateService.GetCertificateByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve certificate")
		return
	}
	c.JSON(http.StatusOK, dto.ToCertificateResponse(certificate))
}

// listCertificatesByStudent godoc
// @Summary List a student's certificates
// @Tags certificates
// @Produce json
// @Param userID path string true "Student user ID"
// @Success 200 {array} dto.CertificateResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /certificates/student/{userID} [get]
func (h *certificateHandler) listCertificatesByStudent(c *gin.Context) {
	userID := c.Param("userID")

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	if actor.UserID != userID && !actor.HasAnyRole(domain.RoleAdmin, domain.RolePrincipal, domain.RoleHOD, domain.RoleDepartmentAdmin) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return
	}

	certificates, err := h.certificateService.ListCertificatesByStudent(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to list certificates")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCertificateResponse(certificates))
}

// listPendingPrincipal godoc
// @Summary List certificates awaiting principal sign-off
// @Tags certificates
// @Produce json
// @Success 200 {array} dto.CertificateResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /certificates/pending-principal [get]
func (h *certificateHandler) listPendingPrincipal(c *gin.Context) {
	certificates, err := h.certificateService.ListPendingPrincipalSignatures(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "Failed to list certificates")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCertificateResponse(certificates))
}

// signByDepartment godoc
// @Summary Record a department's sign-off
// @Description Marks the caller's department signature SIGNED and recomputes the certificate status. Signatures are write-once.
// @Tags certificates
// @Accept json
// @Produce json
// @Param id path string true "Certificate ID"
// @Param signature body dto.SignByDepartmentRequest true "Department and optional comments"
// @Success 200 {object} dto.SignatureResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Signature already processed, pending dues, or terminal certificate"
// @Security BearerAuth
// @Router /certificates/{id}/sign [post]
func (h *certificateHandler) signByDepartment(c *gin.Context) {
	h.departmentAction(c, h.certificateService.SignByDepartment)
}

// rejectByDepartment godoc
// @Summary Record a department's rejection
// @Description Marks the caller's department signature REJECTED; the certificate moves to REJECTED.
// @Tags certificates
// @Accept json
// @Produce json
// @Param id path string true "Certificate ID"
// @Param signature body dto.SignByDepartmentRequest true "Department and rejection comments"
// @Success 200 {object} dto.SignatureResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /certificates/{id}/reject [post]
func (h *certificateHandler) rejectByDepartment(c *gin.Context) {
	h.departmentAction(c, h.certificateService.RejectByDepartment)
}

type departmentActionFunc func(ctx context.Context, actor domain.Actor, req dto.SignByDepartmentRequest) (*domain.DepartmentSignature, error)

func (h *certificateHandler) departmentAction(c *gin.Context, action departmentActionFunc) {
	var req dto.SignByDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	req.CertificateID = c.Param("id")

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	signature, err := action(c.Request.Context(), actor, req)
	if err != nil {
		respondWithError(c, err, "Failed to process signature")
		return
	}
	c.JSON(http.StatusOK, dto.ToSignatureResponse(signature))
}

// signByPrincipal godoc
// @Summary Principal sign-off
// @Description Completes an ALLSIGNED certificate, setting the issue date.
// @Tags certificates
// @Accept json
// @Produce json
// @Param id path string true "Certificate ID"
// @Param options body dto.SignByPrincipalRequest true "Sign-off options"
// @Success 200 {object} dto.CertificateResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Certificate is not ALLSIGNED or already completed"
// @Security BearerAuth
// @Router /certificates/{id}/principal-sign [post]
func (h *certificateHandler) signByPrincipal(c *gin.Context) {
	var req dto.SignByPrincipalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	certificate, err := h.certificateService.SignByPrincipal(c.Request.Context(), actor, c.Param("id"), req.UseSignatureImage)
	if err != nil {
		respondWithError(c, err, "Failed to record principal sign-off")
		return
	}
	c.JSON(http.StatusOK, dto.ToCertificateResponse(certificate))
}

// updateStatus godoc
// @Summary Administratively change a certificate's status
// @Description Applies a status transition, validated against the workflow transition table. Admin only.
// @Tags certificates
// @Accept json
// @Produce json
// @Param id path string true "Certificate ID"
// @Param status body dto.UpdateCertificateStatusRequest true "Target status"
// @Success 200 {object} dto.CertificateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Illegal transition"
// @Security BearerAuth
// @Router /certificates/{id}/status [put]
func (h *certificateHandler) updateStatus(c *gin.Context) {
	var req dto.UpdateCertificateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	certificate, err := h.certificateService.UpdateCertificateStatus(c.Request.Context(), actor, c.Param("id"), req.Status)
	if err != nil {
		respondWithError(c, err, "Failed to update certificate status")
		return
	}
	c.JSON(http.StatusOK, dto.ToCertificateResponse(certificate))
}

// requestSignatureBody carries the department whose sign-off is requested.
type requestSignatureBody struct {
	Department string `json:"department" binding:"required,department"`
}

// requestSignature godoc
// @Summary Ask a department to sign
// @Description Notifies the department's admin that a signature is awaited. Students may only request for their own certificate.
// @Tags certificates
// @Accept json
// @Produce json
// @Param id path string true "Certificate ID"
// @Param request body requestSignatureBody true "Department to ask"
// @Success 202 "Accepted"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Signature already processed"
// @Security BearerAuth
// @Router /certificates/{id}/request-signature [post]
func (h *certificateHandler) requestSignature(c *gin.Context) {
	var req requestSignatureBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	err := h.certificateService.RequestDepartmentSignature(c.Request.Context(), actor, c.Param("id"), domain.Department(req.Department))
	if err != nil {
		respondWithError(c, err, "Failed to request signature")
		return
	}
	c.Status(http.StatusAccepted)
}

// deleteCertificate godoc
// @Summary Delete a certificate
// @Description Removes a certificate and its signatures. Admin only.
// @Tags certificates
// @Produce json
// @Param id path string true "Certificate ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /certificates/{id} [delete]
func (h *certificateHandler) deleteCertificate(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	if err := h.certificateService.DeleteCertificate(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondWithError(c, err, "Failed to delete certificate")
		return
	}
	c.Status(http.StatusNoContent)
}

// listPendingSignatures godoc
// @Summary List a department's pending signature queue
// @Description Department staff see their own department's queue; admins may pass ?department= to inspect any.
// @Tags signatures
// @Produce json
// @Param department query string false "Department code (admin only)"
// @Success 200 {array} dto.SignatureResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /signatures/pending [get]
func (h *certificateHandler) listPendingSignatures(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	department := actor.Department
	if actor.HasRole(domain.RoleAdmin) {
		if q := c.Query("department"); q != "" {
			department = domain.Department(q)
		}
	}
	if department == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "A department must be specified"})
		return
	}

	signatures, err := h.certificateService.ListPendingSignaturesByDepartment(c.Request.Context(), department)
	if err != nil {
		respondWithError(c, err, "Failed to list pending signatures")
		return
	}
	c.JSON(http.StatusOK, dto.ToListSignatureResponse(signatures))
}

// listSignaturesByStudent godoc
// @Summary List all signatures recorded for a student
// @Description Includes standalone department receipts not yet attached to a certificate.
// @Tags signatures
// @Produce json
// @Param userID path string true "Student user ID"
// @Success 200 {array} dto.SignatureResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /signatures/student/{userID} [get]
func (h *certificateHandler) listSignaturesByStudent(c *gin.Context) {
	userID := c.Param("userID")

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	if actor.UserID != userID && !actor.HasAnyRole(domain.RoleAdmin, domain.RolePrincipal, domain.RoleHOD, domain.RoleDepartmentAdmin) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return
	}

	signatures, err := h.certificateService.ListSignaturesByStudent(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to list signatures")
		return
	}
	c.JSON(http.StatusOK, dto.ToListSignatureResponse(signatures))
}

// generateDepartmentReceipt godoc
// @Summary Issue a standalone department clearance receipt
// @Description Records a SIGNED department clearance for a student before any certificate exists. It is carried into the student's next certificate.
// @Tags signatures
// @Accept json
// @Produce json
// @Param request body dto.GenerateDepartmentReceiptRequest true "Student and department"
// @Success 200 {object} dto.SignatureResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Pending dues or signature already attached to a certificate"
// @Security BearerAuth
// @Router /signatures/receipt [post]
func (h *certificateHandler) generateDepartmentReceipt(c *gin.Context) {
	var req dto.GenerateDepartmentReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	signature, err := h.certificateService.GenerateDepartmentReceipt(c.Request.Context(), actor, req.StudentUserID, domain.Department(req.Department))
	if err != nil {
		respondWithError(c, err, "Failed to generate department receipt")
		return
	}
	c.JSON(http.StatusOK, dto.ToSignatureResponse(signature))
}
