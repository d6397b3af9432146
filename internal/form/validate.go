package form

import (
	"errors"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// MinMessageLength is the minimum trimmed message length, in characters.
const MinMessageLength = 10

// Code classifies a field validation failure.
type Code string

const (
	CodeRequired      Code = "Required"
	CodeInvalidFormat Code = "InvalidFormat"
	CodeTooShort      Code = "TooShort"
)

// emailShape matches local@domain.tld with no whitespace in any part.
var emailShape = regexp.MustCompile(`^[^\s\p{Z}@]+@[^\s\p{Z}@]+\.[^\s\p{Z}@]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("email_shape", EmailShape)
	_ = v.RegisterValidation("min_trimmed", MinTrimmed)
	return v
}

// EmailShape reports whether the field looks like local@domain.tld.
// Empty values pass; pair with required.
func EmailShape(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return emailShape.MatchString(val)
}

// MinTrimmed checks the character count after trimming surrounding whitespace.
func MinTrimmed(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= n
}

// FieldError is a validation failure attached to one field.
type FieldError struct {
	Field   Field
	Code    Code
	Message string
}

func (e FieldError) Error() string {
	return e.Field.String() + ": " + e.Message
}

// Errors maps fields to their validation failure. A nil or empty Errors means
// the draft is valid.
type Errors map[Field]FieldError

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, f := range e.Fields() {
		msgs = append(msgs, e[f].Error())
	}
	return strings.Join(msgs, "; ")
}

// Has reports whether f failed validation.
func (e Errors) Has(f Field) bool {
	_, ok := e[f]
	return ok
}

// Fields returns the failing fields in declaration order.
func (e Errors) Fields() []Field {
	fields := make([]Field, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	slices.Sort(fields)
	return fields
}

// First returns the first failing field in declaration order, or FieldNone.
func (e Errors) First() Field {
	fields := e.Fields()
	if len(fields) == 0 {
		return FieldNone
	}
	return fields[0]
}

func (e Errors) clone() Errors {
	if len(e) == 0 {
		return Errors{}
	}
	out := make(Errors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

var fieldsByName = map[string]Field{
	"Email":   FieldEmail,
	"Message": FieldMessage,
}

var messages = map[Field]map[Code]string{
	FieldEmail: {
		CodeRequired:      "Email is required",
		CodeInvalidFormat: "Please enter a valid email address",
	},
	FieldMessage: {
		CodeRequired: "Message is required",
		CodeTooShort: "Message must be at least " + strconv.Itoa(MinMessageLength) + " characters",
	},
}

// Validate checks d and returns one error per failing field. It depends only
// on the draft's values, so repeated calls on the same draft agree.
func Validate(d Draft) Errors {
	errs := Errors{}

	err := validate.Struct(d)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errs
	}

	for _, fe := range verrs {
		field, ok := fieldsByName[fe.StructField()]
		if !ok {
			continue
		}
		code := tagCode(fe.Tag())
		errs[field] = FieldError{
			Field:   field,
			Code:    code,
			Message: messages[field][code],
		}
	}

	return errs
}

func tagCode(tag string) Code {
	switch tag {
	case "required":
		return CodeRequired
	case "email_shape":
		return CodeInvalidFormat
	case "min_trimmed":
		return CodeTooShort
	}
	return Code(tag)
}
