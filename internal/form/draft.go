package form

// Field identifies a form input.
type Field int

// Fields in declaration order. Focus goes to the first invalid one.
const (
	FieldNone Field = iota
	FieldName
	FieldEmail
	FieldMessage
)

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldEmail:
		return "email"
	case FieldMessage:
		return "message"
	default:
		return "none"
	}
}

// Draft is the in-progress form input. Name is optional and never validated.
type Draft struct {
	Name    string `json:"name"`
	Email   string `json:"email" validate:"required,email_shape"`
	Message string `json:"message" validate:"required,min_trimmed=10"`
}

// Get returns the value of f.
func (d Draft) Get(f Field) string {
	switch f {
	case FieldName:
		return d.Name
	case FieldEmail:
		return d.Email
	case FieldMessage:
		return d.Message
	}
	return ""
}
