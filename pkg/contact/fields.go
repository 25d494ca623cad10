package contact

import "strings"

// Field identifies a contact form input. The values double as the HTML
// name/id attributes and the JSON keys used by the live session protocol.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldPhone   Field = "phone"
	FieldSubject Field = "subject"
	FieldMessage Field = "message"
)

// Fields lists every input in rendering order.
func Fields() []Field {
	return []Field{FieldName, FieldEmail, FieldPhone, FieldSubject, FieldMessage}
}

// RequiredFields lists the inputs that carry validation, in the order they
// are checked on submit.
func RequiredFields() []Field {
	return []Field{FieldName, FieldEmail, FieldMessage}
}

// ParseField maps a raw name onto a known Field.
func ParseField(raw string) (Field, bool) {
	candidate := Field(strings.TrimSpace(raw))
	for _, field := range Fields() {
		if field == candidate {
			return field, true
		}
	}
	return "", false
}

// Validated reports whether the field has a validation rule.
func (f Field) Validated() bool {
	switch f {
	case FieldName, FieldEmail, FieldMessage:
		return true
	default:
		return false
	}
}

// FormState holds the current value of every contact input.
type FormState struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Value returns the value stored for field.
func (f FormState) Value(field Field) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldEmail:
		return f.Email
	case FieldPhone:
		return f.Phone
	case FieldSubject:
		return f.Subject
	case FieldMessage:
		return f.Message
	default:
		return ""
	}
}

// With returns a copy of f with field set to value. Unknown fields leave the
// state untouched.
func (f FormState) With(field Field, value string) FormState {
	switch field {
	case FieldName:
		f.Name = value
	case FieldEmail:
		f.Email = value
	case FieldPhone:
		f.Phone = value
	case FieldSubject:
		f.Subject = value
	case FieldMessage:
		f.Message = value
	}
	return f
}

// Values flattens the state into a field-keyed map.
func (f FormState) Values() map[string]string {
	out := make(map[string]string, len(Fields()))
	for _, field := range Fields() {
		out[string(field)] = f.Value(field)
	}
	return out
}

// FormFromValues builds a FormState from raw submitted values. The phone mask
// is applied so a state built from a browser post matches one built from
// keystrokes.
func FormFromValues(values map[string]string) FormState {
	var form FormState
	for _, field := range Fields() {
		value := values[string(field)]
		if field == FieldPhone {
			value = FormatPhone(value)
		}
		form = form.With(field, value)
	}
	return form
}

// ErrorState holds the current message of every validated field. An empty
// message means the field passed its rule at last check.
type ErrorState struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Get returns the message for field.
func (e ErrorState) Get(field Field) string {
	switch field {
	case FieldName:
		return e.Name
	case FieldEmail:
		return e.Email
	case FieldMessage:
		return e.Message
	default:
		return ""
	}
}

// With returns a copy of e with the message for field replaced.
func (e ErrorState) With(field Field, message string) ErrorState {
	switch field {
	case FieldName:
		e.Name = message
	case FieldEmail:
		e.Email = message
	case FieldMessage:
		e.Message = message
	}
	return e
}

// Any reports whether at least one field carries an error.
func (e ErrorState) Any() bool {
	return e.Name != "" || e.Email != "" || e.Message != ""
}

// Map returns the non-empty messages keyed by field name.
func (e ErrorState) Map() map[string]string {
	out := make(map[string]string, 3)
	for _, field := range RequiredFields() {
		if msg := e.Get(field); msg != "" {
			out[string(field)] = msg
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
