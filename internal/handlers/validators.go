package handlers

import (
	"fmt"

	"github.com/SscSPs/repayment_tracker/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// vocabularyValidators are the binding tags for the closed vocabularies.
var vocabularyValidators = map[string]validator.Func{
	"repayment_status": func(fl validator.FieldLevel) bool {
		return domain.RepaymentStatus(fl.Field().String()).IsValid()
	},
	"demand_calling_status": func(fl validator.FieldLevel) bool {
		return domain.DemandCallingStatus(fl.Field().String()).IsValid()
	},
	"contact_calling_status": func(fl validator.FieldLevel) bool {
		return domain.ContactCallingStatus(fl.Field().String()).IsValid()
	},
	"contact_role": func(fl validator.FieldLevel) bool {
		_, ok := domain.ParseContactRole(fl.Field().String())
		return ok
	},
	"calling_channel": func(fl validator.FieldLevel) bool {
		return domain.CallingChannel(fl.Field().String()).IsValid()
	},
	"approval_action": func(fl validator.FieldLevel) bool {
		_, ok := domain.ParseApprovalAction(fl.Field().String())
		return ok
	},
}

// RegisterValidators adds the vocabulary tags to gin's validator engine.
// It must run before any route binds a request.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	for tag, fn := range vocabularyValidators {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %s validator: %w", tag, err)
		}
	}
	return nil
}
