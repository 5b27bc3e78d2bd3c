package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/senutpal/paxossim/internal/kerror"
	"github.com/senutpal/paxossim/internal/klogging"
)

// ErrorHandlingMiddleware recovers handler panics and turns them into a JSON
// error body with the status mapped from the error code.
func ErrorHandlingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		start := time.Now()
		defer func() {
			if err := recover(); err != nil {
				logger := klogging.Error(r.Context()).With("elapsedMs", time.Since(start).Milliseconds()).With("path", r.URL.Path)

				var ke *kerror.Kerror
				switch v := err.(type) {
				case *kerror.Kerror:
					ke = v
					logger.WithError(ke)
				case error:
					ke = kerror.Create("InternalServerError", "an unexpected error occurred").
						WithErrorCode(kerror.EC_UNKNOWN).
						With("error", v.Error())
					logger.WithError(ke)
				default:
					ke = kerror.Create("UnknownPanic", "unexpected panic with non-error value").
						WithErrorCode(kerror.EC_UNKNOWN).
						With("panic_value", v)
					logger.With("panic_value", v)
				}
				logger.Log("PanicRecovered", "panic recovered in middleware")

				w.WriteHeader(ke.ErrorCode.ToHttpErrorCode())
				json.NewEncoder(w).Encode(map[string]interface{}{
					"error": ke.Type,
					"msg":   ke.Msg,
					"code":  ke.ErrorCode,
				})
			}
		}()

		next.ServeHTTP(w, r)
	})
}
