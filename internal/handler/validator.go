package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/Farmstead_Go/internal/domain"
)

// Validator checks request bodies against their validate tags. Besides the
// built-in rules it knows the catalog identifiers: crop, animal, good,
// upgrade and difficulty.
type Validator struct {
	validate *validator.Validate
}

// identifier tags and the message reported when one fails
var catalogTags = map[string]struct {
	valid   func(string) bool
	message string
}{
	"crop":       {func(s string) bool { return domain.CropID(s).Valid() }, "Unknown crop"},
	"animal":     {func(s string) bool { return domain.AnimalID(s).Valid() }, "Unknown animal"},
	"good":       {func(s string) bool { return domain.GoodID(s).Valid() }, "Unknown good"},
	"upgrade":    {func(s string) bool { return domain.UpgradeKey(s).Valid() }, "Unknown upgrade"},
	"difficulty": {func(s string) bool { return domain.Difficulty(s).Valid() }, "Unknown difficulty"},
}

var sharedValidator = sync.OnceValue(func() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their JSON name
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return strings.ToLower(f.Name)
		}
		return name
	})

	for tag, rule := range catalogTags {
		valid := rule.valid
		// empty values pass; pair with required when needed
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == "" || valid(s)
		})
	}
	return &Validator{validate: v}
})

// GetValidator returns the process-wide validator
func GetValidator() *Validator {
	return sharedValidator()
}

// ValidateStruct validates s using its tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError maps each failing field to a message for the client,
// keyed by JSON field name.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"error": "Invalid request format"}
	}

	fields := make(map[string]string, len(verrs))
	for _, e := range verrs {
		fields[e.Field()] = fieldMessage(e)
	}
	return fields
}

func fieldMessage(e validator.FieldError) string {
	if rule, ok := catalogTags[e.Tag()]; ok {
		return rule.message
	}
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "max":
		return fmt.Sprintf("Must be at most %s", e.Param())
	case "min":
		return fmt.Sprintf("Must be at least %s", e.Param())
	default:
		return "Invalid value"
	}
}
