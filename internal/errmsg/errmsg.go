// Package errmsg turns failed API requests into user-facing text. It is the
// one place that knows the backend's error-shape conventions; callers at
// the UI edge get a single summary string, and forms can additionally ask
// for a field→message map to show errors next to the offending input.
package errmsg

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mobilestore/storefront/internal/api"
)

// Fixed user-facing messages for responses that carry no usable text.
const (
	MsgNetworkError   = "Network error. Please check your connection and try again."
	MsgInvalidRequest = "Invalid request. Please check your input."
	MsgAuthRequired   = "Authentication required. Please log in."
	MsgForbidden      = "You do not have permission to perform this action."
	MsgNotFound       = "The requested resource was not found."
	MsgRateLimited    = "Too many requests. Please try again later."
	MsgServerError    = "Server error. Please try again later."
	MsgUnexpected     = "An unexpected error occurred."

	// MsgInvalidCredentials replaces the backend's "no active account"
	// detail so that a failed login never reveals whether the email exists.
	MsgInvalidCredentials = "Invalid email or password."

	// MsgEmailTaken replaces the backend's uniqueness-violation wording on
	// the email field with a friendlier sentence.
	MsgEmailTaken = "An account with this email already exists. Please use a different email or try logging in."
)

// Keys that never name a form field in a flat error body.
var reservedKeys = map[string]bool{
	"detail":           true,
	"message":          true,
	"error":            true,
	"success":          true,
	"non_field_errors": true,
}

// Summary derives one human-readable message from a failed request. Known
// backend error shapes are tried in priority order; a fixed status-code
// table is the fallback.
func Summary(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		if msg := err.Error(); msg != "" {
			return msg
		}
		return MsgUnexpected
	}

	if apiErr.IsNetwork() {
		return MsgNetworkError
	}

	var body map[string]any
	if len(apiErr.Body) > 0 {
		_ = json.Unmarshal(apiErr.Body, &body)
	}

	// Shape 1: {"error": {"message": "..."}}
	if inner, ok := body["error"].(map[string]any); ok {
		if msg, ok := inner["message"].(string); ok && msg != "" {
			return msg
		}
	}

	// Shape 2: {"detail": "..."}, with the invalid-credentials rewrite
	if detail, ok := body["detail"].(string); ok && detail != "" {
		if strings.Contains(strings.ToLower(detail), "no active account") {
			return MsgInvalidCredentials
		}
		return detail
	}

	// Shape 3: {"message": "..."}
	if msg, ok := body["message"].(string); ok && msg != "" {
		return msg
	}

	switch apiErr.StatusCode {
	case 400:
		return MsgInvalidRequest
	case 401:
		return MsgAuthRequired
	case 403:
		return MsgForbidden
	case 404:
		return MsgNotFound
	case 429:
		return MsgRateLimited
	case 500:
		return MsgServerError
	default:
		return fmt.Sprintf("An error occurred (%d). Please try again.", apiErr.StatusCode)
	}
}

// FieldErrors extracts field-specific messages from a failed request, for
// inline display on forms. The result is empty when the failure carries no
// per-field information.
func FieldErrors(err error) map[string]string {
	fields := map[string]string{}

	var apiErr *api.Error
	if !errors.As(err, &apiErr) || len(apiErr.Body) == 0 {
		return fields
	}

	var body map[string]any
	if json.Unmarshal(apiErr.Body, &body) != nil {
		return fields
	}

	// Shape 1: {"error": {"details": {"field": ["..."]}}}
	if inner, ok := body["error"].(map[string]any); ok {
		if details, ok := inner["details"].(map[string]any); ok {
			for key, value := range details {
				if msg, ok := firstMessage(value); ok {
					fields[key] = msg
				}
			}
			normalize(fields)
			return fields
		}
	}

	// Shape 2: flat field errors, {"field": ["..."]}
	for key, value := range body {
		if reservedKeys[key] {
			continue
		}
		switch v := value.(type) {
		case string:
			fields[key] = v
		case []any:
			if msg, ok := firstMessage(v); ok {
				fields[key] = msg
			}
		case map[string]any:
			// One level of nesting, e.g. password validation details.
			for _, nested := range v {
				if msg, ok := firstMessage(nested); ok {
					fields[key] = msg
					break
				}
			}
		}
	}

	if raw, ok := body["non_field_errors"].([]any); ok {
		if msg, ok := firstMessage(raw); ok {
			fields["general"] = msg
		}
	}

	normalize(fields)
	return fields
}

// firstMessage pulls the first usable string out of a value that may be a
// string or an array of strings.
func firstMessage(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, v != ""
	case []any:
		if len(v) > 0 {
			if msg, ok := v[0].(string); ok {
				return msg, msg != ""
			}
		}
	}
	return "", false
}

// normalize applies the backend-specific renames the forms rely on.
func normalize(fields map[string]string) {
	if msg, ok := fields["email"]; ok && strings.Contains(msg, "already exists") {
		fields["email"] = MsgEmailTaken
	}
	if msg, ok := fields["password2"]; ok {
		fields["confirmPassword"] = msg
		delete(fields, "password2")
	}
}
