package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

const (
	ExtensionPlaceholder = "x-placeholder"
	ExtensionControl     = "x-control"
	ExtensionRows        = "x-rows"
	ExtensionOrder       = "x-order"
)

// CanonicalizeExtensionValue turns an extension value into a renderer
// friendly string. Returns false when the value cannot be represented
// deterministically.
func CanonicalizeExtensionValue(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		if v == "" {
			return "", false
		}
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case json.Number:
		return v.String(), v.String() != ""
	case map[string]any, []any:
		payload, err := json.Marshal(v)
		if err != nil || string(payload) == "{}" || string(payload) == "[]" {
			return "", false
		}
		return string(payload), true
	default:
		return "", false
	}
}

// ExtensionInt reads an integer extension, accepting numbers and numeric
// strings.
func ExtensionInt(ext map[string]any, key string) (int, bool) {
	raw, ok := CanonicalizeExtensionValue(ext[key])
	if !ok {
		return 0, false
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return int(f), true
	}
	return 0, false
}

// ExtensionString reads a trimmed string extension.
func ExtensionString(ext map[string]any, key string) string {
	raw, ok := CanonicalizeExtensionValue(ext[key])
	if !ok {
		return ""
	}
	return strings.TrimSpace(raw)
}

// MetadataFromExtensions copies every representable `x-` extension into a
// flat map keyed without the prefix. Returns nil when nothing is found.
func MetadataFromExtensions(ext map[string]any) map[string]string {
	var out map[string]string
	for key, value := range ext {
		if !strings.HasPrefix(key, "x-") {
			continue
		}
		str, ok := CanonicalizeExtensionValue(value)
		if !ok {
			continue
		}
		if out == nil {
			out = make(map[string]string)
		}
		out[strings.TrimPrefix(key, "x-")] = str
	}
	return out
}
