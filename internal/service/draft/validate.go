package draft

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Input carries raw form values. Every field is required; there are no cross-field rules.
type Input struct {
	Name        string `json:"name"        validate:"required,min=2"`
	Email       string `json:"email"       validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required,min=10"`
	Position    string `json:"position"    validate:"required,min=2"`
	Description string `json:"description" validate:"required,min=10"`
}

// Field names, in form order.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPhoneNumber = "phoneNumber"
	FieldPosition    = "position"
	FieldDescription = "description"
)

// Fields lists the form fields in display order.
var Fields = []string{FieldName, FieldEmail, FieldPhoneNumber, FieldPosition, FieldDescription}

var fieldMessages = map[string]string{
	FieldName:        "Name must be at least 2 characters.",
	FieldEmail:       "Please enter a valid email address.",
	FieldPhoneNumber: "Phone number must be at least 10 characters.",
	FieldPosition:    "Position must be at least 2 characters.",
	FieldDescription: "Description must be at least 10 characters.",
}

// FieldError is a rejected field with a message suitable for display next to its input.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors lists rejected fields in form order.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	msgs := make([]string, len(fe))
	for i, e := range fe {
		msgs[i] = e.Field + ": " + e.Message
	}
	return "invalid draft: " + strings.Join(msgs, "; ")
}

// Get returns the message for field, or "" if the field was accepted.
func (fe FieldErrors) Get(field string) string {
	for _, e := range fe {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

// Map returns the errors keyed by field name.
func (fe FieldErrors) Map() map[string]string {
	m := make(map[string]string, len(fe))
	for _, e := range fe {
		m[e.Field] = e.Message
	}
	return m
}

var structValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
})

// Validate checks in against the form rules. On success it returns a draft whose
// fields equal the input exactly; values are never trimmed or normalized.
// All entry points (form view, download, API, CLI) go through here.
func Validate(in Input) (ProfileDraft, FieldErrors) {
	err := structValidator().Struct(in)
	if err == nil {
		return ProfileDraft(in), nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// InvalidValidationError only happens on programmer error; report every field.
		all := make(FieldErrors, len(Fields))
		for i, f := range Fields {
			all[i] = FieldError{Field: f, Message: fieldMessages[f]}
		}
		return ProfileDraft{}, all
	}

	failed := make(map[string]bool, len(verrs))
	for _, fe := range verrs {
		failed[fe.Field()] = true
	}
	var out FieldErrors
	for _, f := range Fields {
		if failed[f] {
			out = append(out, FieldError{Field: f, Message: fieldMessages[f]})
		}
	}
	return ProfileDraft{}, out
}

// InputFrom converts a stored draft back into form input, e.g. to pre-fill the form.
func InputFrom(d ProfileDraft) Input {
	return Input(d)
}
