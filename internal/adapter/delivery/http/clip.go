package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/video-api/internal/entity"
)

type clipUseCase interface {
	Create(ctx context.Context, clip *entity.Clip) (*entity.Clip, error)
	Get(ctx context.Context, id string) (*entity.Clip, error)
	List(ctx context.Context) ([]*entity.Clip, error)
	Update(ctx context.Context, id string, candidate *entity.Clip) (*entity.Clip, error)
	Delete(ctx context.Context, id string) error
}

type clipHandler struct {
	useCase  clipUseCase
	validate *validator.Validate
}

func newClipHandler(useCase clipUseCase, validate *validator.Validate) *clipHandler {
	return &clipHandler{
		useCase:  useCase,
		validate: validate,
	}
}

// decodeClip reads and validates a clip body, writing the 400 response on failure.
func (h *clipHandler) decodeClip(w http.ResponseWriter, r *http.Request) (*entity.Clip, bool) {
	var req clipRequest

	if !decodeBody(w, r, &req) {
		return nil, false
	}

	if err := h.validate.Struct(req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, validationErrorResponse(err))
		return nil, false
	}

	return req.toEntity(), true
}

func (h *clipHandler) createClip(w http.ResponseWriter, r *http.Request) {
	candidate, ok := h.decodeClip(w, r)
	if !ok {
		return
	}

	clip, err := h.useCase.Create(r.Context(), candidate)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toClipResponse(clip))
}

func (h *clipHandler) listClips(w http.ResponseWriter, r *http.Request) {
	clips, err := h.useCase.List(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}

	resp := make([]clipResponse, 0, len(clips))
	for _, c := range clips {
		resp = append(resp, toClipResponse(c))
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

func (h *clipHandler) getClip(w http.ResponseWriter, r *http.Request) {
	clip, err := h.useCase.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toClipResponse(clip))
}

func (h *clipHandler) updateClip(w http.ResponseWriter, r *http.Request) {
	candidate, ok := h.decodeClip(w, r)
	if !ok {
		return
	}

	clip, err := h.useCase.Update(r.Context(), chi.URLParam(r, "id"), candidate)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toClipResponse(clip))
}

func (h *clipHandler) deleteClip(w http.ResponseWriter, r *http.Request) {
	if err := h.useCase.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		renderError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
