package model

import (
	"sort"
	"strconv"
)

// Control is the kind of input a field renders as.
type Control string

const (
	ControlText     Control = "text"
	ControlEmail    Control = "email"
	ControlTel      Control = "tel"
	ControlTextarea Control = "textarea"
)

// ParseControl maps an extension value onto a Control, falling back to text.
func ParseControl(raw string) Control {
	switch Control(raw) {
	case ControlEmail, ControlTel, ControlTextarea:
		return Control(raw)
	default:
		return ControlText
	}
}

const (
	ValidationRuleRequired  = "required"
	ValidationRuleMaxLength = "maxLength"
	ValidationRuleEmail     = "email"
)

// ValidationRule represents a single constraint applied to a field. Length
// limits encode their threshold in Params["value"].
type ValidationRule struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// Field models one input of the contact form.
type Field struct {
	Name        string            `json:"name"`
	Label       string            `json:"label"`
	Control     Control           `json:"control"`
	Format      string            `json:"format,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Description string            `json:"description,omitempty"`
	Required    bool              `json:"required"`
	MaxLength   int               `json:"maxLength,omitempty"`
	Rows        int               `json:"rows,omitempty"`
	Order       int               `json:"order"`
	Validations []ValidationRule  `json:"validations,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Multiline reports whether the field renders as a textarea.
func (f Field) Multiline() bool {
	return f.Control == ControlTextarea
}

// InputType is the HTML type attribute for single-line controls.
func (f Field) InputType() string {
	if f.Control == "" || f.Control == ControlTextarea {
		return string(ControlText)
	}
	return string(f.Control)
}

// FormModel is the contact form as renderers consume it.
type FormModel struct {
	OperationID string            `json:"operationId"`
	Endpoint    string            `json:"endpoint"`
	Method      string            `json:"method"`
	ContentType string            `json:"contentType"`
	Summary     string            `json:"summary,omitempty"`
	Description string            `json:"description,omitempty"`
	Fields      []Field           `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Field looks a field up by name.
func (m FormModel) Field(name string) (Field, bool) {
	for _, f := range m.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// RequiredNames lists required fields in form order.
func (m FormModel) RequiredNames() []string {
	var names []string
	for _, f := range m.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// Names lists every field name in form order.
func (m FormModel) Names() []string {
	names := make([]string, 0, len(m.Fields))
	for _, f := range m.Fields {
		names = append(names, f.Name)
	}
	return names
}

// SortFields orders fields by Order, then by name for stable output.
func SortFields(fields []Field) {
	sort.SliceStable(fields, func(i, j int) bool {
		if fields[i].Order != fields[j].Order {
			return fields[i].Order < fields[j].Order
		}
		return fields[i].Name < fields[j].Name
	})
}

// DeriveValidations rebuilds the canonical rule list from the field's
// attributes.
func (f Field) DeriveValidations() []ValidationRule {
	var rules []ValidationRule
	if f.Required {
		rules = append(rules, ValidationRule{Kind: ValidationRuleRequired})
	}
	if f.Format == "email" || f.Control == ControlEmail {
		rules = append(rules, ValidationRule{Kind: ValidationRuleEmail})
	}
	if f.MaxLength > 0 {
		rules = append(rules, ValidationRule{
			Kind:   ValidationRuleMaxLength,
			Params: map[string]string{"value": strconv.Itoa(f.MaxLength)},
		})
	}
	return rules
}
