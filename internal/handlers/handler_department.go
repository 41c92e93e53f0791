package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/novacollege/nodues_backend/internal/core/domain"
	"github.com/novacollege/nodues_backend/internal/dto"
)

// registerDepartmentRoutes registers the department catalogue routes.
func registerDepartmentRoutes(rg *gin.RouterGroup) {
	departments := rg.Group("/departments")
	{
		departments.GET("", listDepartments)
		departments.GET("/clearance", listClearanceDepartments)
	}
}

func toDepartmentResponses(departments []domain.Department) []dto.DepartmentResponse {
	res := make([]dto.DepartmentResponse, len(departments))
	for i, d := range departments {
		res[i] = dto.DepartmentResponse{
			Code:                 string(d),
			DisplayName:          d.DisplayName(),
			RequiredForClearance: d.IsRequiredForClearance(),
		}
	}
	return res
}

// listDepartments godoc
// @Summary List all departments
// @Description Returns the full department catalogue: clearance departments and academic departments.
// @Tags departments
// @Produce json
// @Success 200 {array} dto.DepartmentResponse
// @Security BearerAuth
// @Router /departments [get]
func listDepartments(c *gin.Context) {
	c.JSON(http.StatusOK, toDepartmentResponses(domain.AllDepartments()))
}

// listClearanceDepartments godoc
// @Summary List clearance departments
// @Description Returns the departments whose signatures a no-dues certificate requires.
// @Tags departments
// @Produce json
// @Success 200 {array} dto.DepartmentResponse
// @Security BearerAuth
// @Router /departments/clearance [get]
func listClearanceDepartments(c *gin.Context) {
	c.JSON(http.StatusOK, toDepartmentResponses(domain.RequiredSignatureDepartments()))
}
