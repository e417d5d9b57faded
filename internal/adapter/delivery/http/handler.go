package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/video-api/internal/entity"
)

func handlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "pong")
}

func newValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return validate
}

// decodeBody reads a JSON body into v. It writes the 400 response itself and
// reports false when the body is empty or malformed.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		render.Status(r, http.StatusBadRequest)

		if errors.Is(err, io.EOF) {
			render.JSON(w, r, emptyRequestBodyResponse)
			return false
		}

		render.JSON(w, r, invalidRequestBodyResponse)
		return false
	}

	return true
}

// renderError maps a use case error to its HTTP response.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		vErr  *entity.ValidationError
		nfErr *entity.NotFoundError
	)

	switch {
	case errors.As(err, &vErr):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, violationsResponse(vErr))
	case errors.As(err, &nfErr):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, notFoundResponse(nfErr))
	default:
		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, serverErrorResponse)
	}
}
