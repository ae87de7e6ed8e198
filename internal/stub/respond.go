package stub

import (
	"encoding/json"
	"net/http"
)

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// respondDetail sends a DRF-style {"detail": "..."} error.
func respondDetail(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"detail": message})
}

// respondError sends the custom exception-handler shape:
// {"success": false, "error": {"message": "...", "code": N}}.
func respondError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]any{
		"success": false,
		"error": map[string]any{
			"message": message,
			"code":    statusCode,
		},
	})
}

// respondFieldErrors sends DRF-style flat field errors:
// {"field": ["message", ...]}.
func respondFieldErrors(w http.ResponseWriter, statusCode int, fields map[string][]string) {
	writeJSON(w, statusCode, fields)
}
