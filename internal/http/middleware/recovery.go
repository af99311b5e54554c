package middleware

import (
	"encoding/json"
	"net/http"

	"ivarberg/internal/logging"
)

// UnexpectedErrorMessage is returned to clients when a handler panics.
const UnexpectedErrorMessage = "Ett oväntat fel uppstod. Försök igen senare."

// Recovery recovers from panics, logs them and answers with a JSON 500.
func Recovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logging.WithContext(r.Context()).Error().
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Interface("panic", err).
						Msg("Recovered from panic")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]any{
						"success": false,
						"error":   UnexpectedErrorMessage,
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
