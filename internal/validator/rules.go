package validator

import (
	"log"

	"dienstmarkt_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules installs the custom validation tags. Failure to
// register is a startup error.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-status", validateUserStatus)
	mustRegister("is-job-status", validateJobStatus)
	mustRegister("is-sort-key", validateSortKey)
}

func validateUserStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' handles empty
	}
	switch models.UserStatus(value) {
	case models.UserStatusActive, models.UserStatusSuspended, models.UserStatusDeleted:
		return true
	default:
		return false
	}
}

func validateJobStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.JobStatus(value) {
	case models.JobStatusActive, models.JobStatusCompleted, models.JobStatusCancelled:
		return true
	default:
		return false
	}
}

// The UI offers "rating" and "newest". "rating" is accepted but currently
// falls through to the unchanged filter order, see ProfileService.Search.
func validateSortKey(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", "rating", "newest":
		return true
	default:
		return false
	}
}
