// Package fieldmap reads loosely shaped backend JSON.
//
// The backend and its ML upstream disagree on field names for the same
// concept (_id vs id vs user_id, height vs height_cm, token vs
// access_token). Rather than probing alternatives ad hoc at every call
// site, feature clients declare the aliases once and take the first
// one present.
package fieldmap

import "encoding/json"

// Decode unmarshals a JSON object into a generic map. Returns nil for
// anything that is not a JSON object, including empty input.
func Decode(raw []byte) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil
	}
	return obj
}

// String returns the first alias present in obj holding a string value.
func String(obj map[string]any, aliases ...string) string {
	for _, key := range aliases {
		if s, ok := obj[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// Float returns the first alias present in obj holding a numeric value.
// JSON numbers decode as float64; integers stored as strings are not
// accepted.
func Float(obj map[string]any, aliases ...string) (float64, bool) {
	for _, key := range aliases {
		if f, ok := obj[key].(float64); ok {
			return f, true
		}
	}
	return 0, false
}

// Int returns the first numeric alias truncated to an int.
func Int(obj map[string]any, aliases ...string) (int, bool) {
	f, ok := Float(obj, aliases...)
	return int(f), ok
}

// Object returns the first alias present in obj holding a nested object.
func Object(obj map[string]any, aliases ...string) map[string]any {
	for _, key := range aliases {
		if nested, ok := obj[key].(map[string]any); ok {
			return nested
		}
	}
	return nil
}

// Strings collects the string members of the first alias holding an array.
func Strings(obj map[string]any, aliases ...string) []string {
	for _, key := range aliases {
		arr, ok := obj[key].([]any)
		if !ok {
			continue
		}
		out := make([]string, 0, len(arr))
		for _, v := range arr {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Status interprets the backend's {"status": ..., "message": ...}
// envelope. The backend frequently reports business failures with HTTP
// 200 and status "error", so a 2xx response alone proves nothing.
// Returns ok=true when the envelope is absent or reports success.
func Status(raw []byte) (ok bool, message string) {
	obj := Decode(raw)
	if obj == nil {
		return true, ""
	}
	status, present := obj["status"].(string)
	if !present || status != "error" {
		return true, ""
	}
	return false, String(obj, "message", "detail", "error")
}
