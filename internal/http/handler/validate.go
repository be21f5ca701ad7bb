package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"printshop/internal/model"
	"printshop/internal/service"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report JSON names so messages match the request body
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	enums := map[string]func(string) bool{
		"colormode":   func(s string) bool { return model.ColorMode(s).Valid() },
		"papersize":   func(s string) bool { return model.PaperSize(s).Valid() },
		"orientation": func(s string) bool { return model.Orientation(s).Valid() },
		"sides":       func(s string) bool { return model.Sides(s).Valid() },
		"quality":     func(s string) bool { return model.Quality(s).Valid() },
		"tokentype":   func(s string) bool { return model.TokenType(s).Valid() },
		"jobstatus":   func(s string) bool { return model.JobStatus(s).Valid() },
		"plan":        func(s string) bool { return model.Plan(s).Valid() },
	}
	for tag, valid := range enums {
		mustRegister(v, tag, func(fl validator.FieldLevel) bool {
			return valid(fl.Field().String())
		})
	}
	return v
}

// mustRegister panics when a custom tag cannot be registered, so a broken
// tag fails at startup instead of silently skipping validation.
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %q validation: %v", tag, err))
	}
}

// bind parses the JSON body into dst and validates it. Failures are
// service.ErrValidation errors.
func bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fmt.Errorf("%w: malformed request body", service.ErrValidation)
	}
	return validateStruct(dst)
}

func validateStruct(dst any) error {
	err := validate.Struct(dst)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", service.ErrValidation, err)
	}
	return fmt.Errorf("%w: %s", service.ErrValidation, describe(verrs[0]))
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "uuid":
		return field + " must be a UUID"
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "latitude", "longitude":
		return field + " is out of range"
	default:
		return fmt.Sprintf("%s has an invalid value %q", field, fmt.Sprint(fe.Value()))
	}
}
