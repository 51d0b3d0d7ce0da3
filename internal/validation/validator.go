package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"farm-tracker/internal/domain"
)

// Validator checks drafts and identifiers before they reach the services.
// Struct rules live in `validate` tags on the draft types; rules that need
// the current time or more than one field are checked here.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Struct runs the tag rules on s and reports failures as a *ValidationError.
func (v *Validator) Struct(s interface{}) error {
	ve := NewValidationError()
	v.collect(ve, s)
	return ve.OrNil()
}

func (v *Validator) collect(ve *ValidationError, s interface{}) {
	err := v.validate.Struct(s)
	if err == nil {
		return
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		ve.AddInvalidValueError("input", s, err.Error())
		return
	}
	for _, fe := range fieldErrs {
		addFieldError(ve, fe)
	}
}

func addFieldError(ve *ValidationError, fe validator.FieldError) {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		ve.AddRequiredError(field)
	case "email":
		ve.AddInvalidFormatError(field, fe.Value(), "email address")
	case "max":
		if fe.Kind() == reflect.String {
			ve.AddInvalidLengthError(field, fe.Value(), fe.Param())
			return
		}
		ve.AddInvalidRangeError(field, fe.Value(), "must be at most "+fe.Param())
	case "gte":
		ve.AddInvalidRangeError(field, fe.Value(), "must be at least "+fe.Param())
	case "lte":
		ve.AddInvalidRangeError(field, fe.Value(), "must be at most "+fe.Param())
	default:
		ve.AddInvalidValueError(field, fe.Value(), fmt.Sprintf("failed '%s' check", fe.Tag()))
	}
}

// IsValidID reports whether id is a record identifier.
func (v *Validator) IsValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// ValidateID validates a record identifier for the named field.
func (v *Validator) ValidateID(field, id string) error {
	if strings.TrimSpace(id) == "" {
		ve := NewValidationError()
		ve.AddRequiredError(field)
		return ve
	}
	if !v.IsValidID(id) {
		ve := NewValidationError()
		ve.AddInvalidFormatError(field, id, "UUID")
		return ve
	}
	return nil
}

// ValidateWorkerDraft validates a worker for onboarding or update.
func (v *Validator) ValidateWorkerDraft(d domain.WorkerDraft, now time.Time) error {
	ve := NewValidationError()
	v.collect(ve, d)
	if d.HireDate != nil && d.HireDate.After(now) {
		ve.AddInvalidRangeError("hire_date", *d.HireDate, "cannot be in the future")
	}
	return ve.OrNil()
}

// ValidateFarmDraft validates a farm before it is saved.
func (v *Validator) ValidateFarmDraft(d domain.FarmDraft) error {
	return v.Struct(d)
}

// ValidateFieldDraft validates a field before it is saved.
func (v *Validator) ValidateFieldDraft(d domain.FieldDraft) error {
	return v.Struct(d)
}

// ValidateSoilTestDraft validates a soil test. A sample cannot be dated
// after the day it is recorded.
func (v *Validator) ValidateSoilTestDraft(d domain.SoilTestDraft, now time.Time) error {
	ve := NewValidationError()
	v.collect(ve, d)
	if !d.TestDate.IsZero() && !d.TestDate.Before(domain.StartOfDay(now).AddDate(0, 0, 1)) {
		ve.AddInvalidRangeError("test_date", d.TestDate, "cannot be in the future")
	}
	return ve.OrNil()
}
