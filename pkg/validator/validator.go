package validator

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/medagenda/agenda-api/internal/model"
)

// RegisterCustom installs agenda-specific validations on gin's binding
// engine so request structs can use them in binding tags.
func RegisterCustom() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine")
	}

	validations := map[string]validator.Func{
		"viewmode": func(fl validator.FieldLevel) bool {
			return model.ViewMode(fl.Field().String()).Valid()
		},
		"navaction": func(fl validator.FieldLevel) bool {
			switch fl.Field().String() {
			case "today", "prev", "next":
				return true
			}
			return false
		},
		"eventstatus": func(fl validator.FieldLevel) bool {
			return model.EventStatus(fl.Field().String()).Valid()
		},
		"eventtype": func(fl validator.FieldLevel) bool {
			return model.EventType(fl.Field().String()).Valid()
		},
	}

	for tag, fn := range validations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %s validation: %w", tag, err)
		}
	}
	return nil
}
