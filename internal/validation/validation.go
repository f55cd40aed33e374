package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Errors maps a field name to every message reported for it.
// It is returned as the body of 400 responses.
type Errors map[string][]string

// NonFieldErrors is the key used for errors not tied to a single field.
const NonFieldErrors = "non_field_errors"

// Add appends msg to the messages of field.
func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Merge appends every message of other into e.
func (e Errors) Merge(other Errors) {
	for field, msgs := range other {
		e[field] = append(e[field], msgs...)
	}
}

// Has reports whether field has at least one message.
func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

// Err returns e as an error, or nil when no messages were collected.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e[field], " ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

// Validator wraps validator.Validate and reports failures keyed by JSON field name.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator that names fields after their json tags.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	return &Validator{validate: v}
}

// Struct validates s and returns the collected messages. The result is never nil.
func (v *Validator) Struct(s interface{}) Errors {
	errs := Errors{}
	err := v.validate.Struct(s)
	if err == nil {
		return errs
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errs.Add(NonFieldErrors, err.Error())
		return errs
	}
	for _, fe := range validationErrors {
		errs.Add(fe.Field(), message(fe))
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s.", label(fe.Field()), fe.Param())
	case "lt":
		return fmt.Sprintf("Ensure this value is less than %s.", fe.Param())
	case "username":
		return "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	case "oneof":
		return fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(fe.Value()))
	default:
		return fmt.Sprintf("Field '%s' failed on the '%s' tag.", fe.Field(), fe.Tag())
	}
}

// label turns a json field name like "first_name" into "First name".
func label(field string) string {
	if field == "" {
		return field
	}
	words := strings.ReplaceAll(field, "_", " ")
	return strings.ToUpper(words[:1]) + words[1:]
}
