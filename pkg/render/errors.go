package render

import (
	"sort"
	"strings"

	"github.com/goliatone/go-assessoria/pkg/model"
)

// ErrorMapping splits an error payload into field-level and form-level
// messages. Each field carries at most one message.
type ErrorMapping struct {
	Fields map[string]string
	Form   []string
}

// MapErrors routes payload entries onto the form's fields. Keys may be plain
// field names or pointer-style paths ("/body/email", "$.email"); anything that
// does not resolve to a known field becomes a form-level message so it is not
// lost.
func MapErrors(form model.FormModel, payload map[string]string) ErrorMapping {
	mapping := ErrorMapping{}
	if len(payload) == 0 {
		return mapping
	}

	known := make(map[string]struct{}, len(form.Fields))
	for _, f := range form.Fields {
		known[f.Name] = struct{}{}
	}

	for _, key := range sortedKeys(payload) {
		message := strings.TrimSpace(payload[key])
		if message == "" {
			continue
		}
		field, ok := resolveField(key, known)
		if !ok {
			mapping.Form = MergeFormErrors(mapping.Form, message)
			continue
		}
		if mapping.Fields == nil {
			mapping.Fields = make(map[string]string)
		}
		if _, taken := mapping.Fields[field]; !taken {
			mapping.Fields[field] = message
		}
	}
	return mapping
}

// MergeFormErrors concatenates form-level messages, trimming whitespace and
// removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)

	out := make([]string, 0, len(combined))
	seen := make(map[string]struct{}, len(combined))
	for _, message := range combined {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func resolveField(raw string, known map[string]struct{}) (string, bool) {
	segments := dropWrapperSegments(parsePathSegments(raw))
	if len(segments) != 1 {
		return "", false
	}
	_, ok := known[segments[0]]
	return segments[0], ok
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	clean = strings.TrimLeft(clean, "#$./")
	if clean == "" {
		return nil
	}
	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if segment := strings.TrimSpace(part); segment != "" {
			out = append(out, segment)
		}
	}
	return out
}

func dropWrapperSegments(segments []string) []string {
	out := segments
	for len(out) > 1 {
		switch strings.ToLower(out[0]) {
		case "body", "request", "payload", "data":
			out = out[1:]
			continue
		}
		break
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
