package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
)

// recoverer turns a panic in a handler into a JSON 500 response and records
// the panic value on the request log entry.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}

			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}

			httplog.LogEntrySetField(r.Context(), "panic", slog.AnyValue(rvr))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, serverErrorResponse)
		}()

		next.ServeHTTP(w, r)
	})
}
