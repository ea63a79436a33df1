package http

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	housingVO "boaz/internal/domain/housing/valueobjects"
	subscriptionVO "boaz/internal/domain/subscription/valueobjects"
)

// registerValidations installs the domain status vocabularies into gin's
// binding validator, so malformed statuses are rejected at the JSON
// binding stage with the other field errors.
func registerValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterValidation("unit_status", func(fl validator.FieldLevel) bool {
		_, ok := housingVO.ParseUnitStatus(fl.Field().String())
		return ok
	})
	v.RegisterValidation("subscription_status", func(fl validator.FieldLevel) bool {
		_, ok := subscriptionVO.ParseStatus(fl.Field().String())
		return ok
	})
}
