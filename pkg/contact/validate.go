package contact

import (
	"regexp"
	"strings"
)

// emailPattern accepts local@domain.tld where each part is a run without
// whitespace or '@'.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateField returns the error message for value under the rule of field,
// or an empty string when the value is acceptable. Fields without a rule
// (phone, subject) always pass.
func ValidateField(field Field, value string) string {
	switch field {
	case FieldName:
		if isBlank(value) {
			return MsgNameRequired
		}
	case FieldEmail:
		if isBlank(value) {
			return MsgEmailRequired
		}
		if !IsEmail(value) {
			return MsgEmailInvalid
		}
	case FieldMessage:
		if isBlank(value) {
			return MsgMessageRequired
		}
	}
	return ""
}

// IsEmail reports whether value has the local@domain.tld shape. The value is
// matched as typed, so surrounding whitespace fails the check.
func IsEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// Check validates value for field and returns the error state with only that
// field's message replaced, together with the verdict.
func (e ErrorState) Check(field Field, value string) (ErrorState, bool) {
	if !field.Validated() {
		return e, true
	}
	msg := ValidateField(field, value)
	return e.With(field, msg), msg == ""
}

// ValidateForm runs every required rule against form. All rules always run so
// each invalid field gets its own message.
func ValidateForm(form FormState) (ErrorState, bool) {
	var (
		errs  ErrorState
		valid = true
	)
	for _, field := range RequiredFields() {
		var ok bool
		errs, ok = errs.Check(field, form.Value(field))
		valid = valid && ok
	}
	return errs, valid
}

func isBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}
