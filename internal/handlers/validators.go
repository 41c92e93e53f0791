package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/novacollege/nodues_backend/internal/core/domain"
)

// RegisterCustomValidators installs the binding validators used by the
// request DTOs. Must be called once before routes are served.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// "department" accepts any known clearance or academic department code.
		_ = v.RegisterValidation("department", func(fl validator.FieldLevel) bool {
			return domain.Department(fl.Field().String()).IsKnown()
		})
	}
}
