package httpx

import (
	"encoding/json"
	"net/http"
)

// JSON writes v with the given status code. Encoding errors are dropped
// since the header has already gone out.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONError writes a standard {"error": message} JSON response.
func JSONError(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// SafeError returns the error message for client responses. Internal server
// errors (5xx) are replaced with the status text so storage details never
// reach the client.
func SafeError(err error, status int) string {
	if status >= http.StatusInternalServerError {
		return http.StatusText(status)
	}
	return err.Error()
}

// WelcomeHandler answers the root path with a fixed greeting.
func WelcomeHandler(message string) http.HandlerFunc {
	body := map[string]string{"message": message}
	return func(w http.ResponseWriter, _ *http.Request) {
		JSON(w, http.StatusOK, body)
	}
}

// NotFound answers unknown paths in the same {"error": ...} shape as the API.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	JSONError(w, http.StatusNotFound, "Not Found")
}

// MethodNotAllowed answers known paths requested with an unsupported method.
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	JSONError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
}
