package user

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/janisto/huma-users/internal/platform/timeutil"
)

var (
	emailPattern = regexp.MustCompile("^[a-zA-Z0-9_!#$%&'*+/=?`{|}~^.-]+@[a-zA-Z0-9.-]+\\.[a-zA-Z]{2,}$")
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

// recordFields is the validation view of a Record. Field names follow the JSON
// names so errors can be reported per request field.
type recordFields struct {
	Email       string    `name:"email"       validate:"nonblank,user_email"`
	FirstName   string    `name:"firstName"   validate:"nonblank"`
	LastName    string    `name:"lastName"    validate:"nonblank"`
	BirthDate   time.Time `name:"birthDate"   validate:"required,ltfield=Today"`
	PhoneNumber string    `name:"phoneNumber" validate:"omitempty,phone10"`
	Today       time.Time `validate:"-"`
}

var messages = map[string]string{
	"email.nonblank":      "Email is required",
	"email.user_email":    "Email should be valid",
	"firstName.nonblank":  "First name is required",
	"lastName.nonblank":   "Last name is required",
	"birthDate.required":  "Birth date is required",
	"birthDate.ltfield":   "Birth date must be in the past",
	"phoneNumber.phone10": "Phone number should be valid",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("name")
	})
	mustRegister(v, "nonblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v, "user_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "phone10", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// Validate checks the field constraints of r. today is the current calendar
// date; birth dates must be strictly before it. Failures are returned as a
// *ValidationError keyed by JSON field name.
func Validate(r Record, today time.Time) error {
	err := validate.Struct(recordFields{
		Email:       r.Email,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		BirthDate:   timeutil.DateOf(r.BirthDate),
		PhoneNumber: r.PhoneNumber,
		Today:       timeutil.DateOf(today),
	})
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = "is invalid"
		}
		fields[fe.Field()] = msg
	}
	return &ValidationError{Fields: fields}
}
