// Package validate holds the field-by-field submission draft validation.
// Every rule is evaluated independently so the form can flag all invalid
// fields in one pass.
package validate

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/clientportal/intake-gateway/internal/core/domain"
)

// User-facing messages, one per field, matching the intake form copy.
const (
	MsgFullName = "Full name must be at least 2 characters long"
	MsgEmail    = "Please enter a valid email address"
	MsgPhone    = "Phone number must be in format: +1-XXX-XXX-XXXX"
)

var (
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+1-\d{3}-\d{3}-\d{4}$`)
)

// draftSchema mirrors domain.SubmissionDraft with the custom validation tags
// attached. Kept separate so the domain type stays free of transport concerns.
type draftSchema struct {
	FullName    string `validate:"full_name"`
	Email       string `validate:"intake_email"`
	PhoneNumber string `validate:"intake_phone"`
}

// Validator checks submission drafts and login payloads.
type Validator struct {
	v *validator.Validate
}

// New builds a Validator with the three intake field rules registered.
func New() *Validator {
	v := validator.New()

	mustRegister(v, "full_name", func(fl validator.FieldLevel) bool {
		return len(strings.TrimSpace(fl.Field().String())) >= 2
	})
	mustRegister(v, "intake_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "intake_phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	return &Validator{v: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("validate: register " + tag + ": " + err.Error())
	}
}

// Draft validates every field of the draft independently and returns one
// message per failing field. An empty result means the draft may be
// submitted. The call is total: it never panics and never performs I/O.
func (va *Validator) Draft(d domain.SubmissionDraft) domain.FieldErrors {
	fieldErrs := domain.FieldErrors{}

	err := va.v.Struct(draftSchema{
		FullName:    d.FullName,
		Email:       d.Email,
		PhoneNumber: d.PhoneNumber,
	})
	if err == nil {
		return fieldErrs
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		// Cannot happen for a plain struct value; treat as fully invalid
		// rather than letting a submit through unvalidated.
		return domain.FieldErrors{
			"full_name":    MsgFullName,
			"email":        MsgEmail,
			"phone_number": MsgPhone,
		}
	}

	for _, fe := range ve {
		switch fe.StructField() {
		case "FullName":
			fieldErrs["full_name"] = MsgFullName
		case "Email":
			fieldErrs["email"] = MsgEmail
		case "PhoneNumber":
			fieldErrs["phone_number"] = MsgPhone
		}
	}
	return fieldErrs
}
