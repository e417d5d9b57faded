package http

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/vadimbarashkov/video-api/internal/entity"
)

type videoUseCase interface {
	Create(ctx context.Context, candidate *entity.Video) (*entity.Video, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Video, error)
	GetByTitle(ctx context.Context, title string, publishedAt *time.Time) ([]*entity.Video, error)
	Update(ctx context.Context, id uuid.UUID, candidate *entity.Video) (*entity.Video, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	IncrementLike(ctx context.Context, id uuid.UUID) (*entity.Video, error)
	List(ctx context.Context, req entity.PageRequest) (*entity.Page[*entity.Video], error)
}

type videoHandler struct {
	useCase videoUseCase
}

func newVideoHandler(useCase videoUseCase) *videoHandler {
	return &videoHandler{useCase: useCase}
}

// videoID parses the id path parameter, answering 400 when it isn't a UUID.
func videoID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, invalidIDResponse)
		return uuid.Nil, false
	}

	return id, true
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func (h *videoHandler) createVideo(w http.ResponseWriter, r *http.Request) {
	var req videoRequest

	if !decodeBody(w, r, &req) {
		return
	}

	video, err := h.useCase.Create(r.Context(), req.toEntity())
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toVideoResponse(video))
}

func (h *videoHandler) listVideos(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page")
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, invalidQueryParamResponse("page"))
		return
	}

	size, err := queryInt(r, "size")
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, invalidQueryParamResponse("size"))
		return
	}

	result, err := h.useCase.List(r.Context(), entity.PageRequest{
		Page: page,
		Size: size,
		Sort: entity.ParseSort(r.URL.Query().Get("sort")),
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toVideoPageResponse(result))
}

func (h *videoHandler) getVideo(w http.ResponseWriter, r *http.Request) {
	id, ok := videoID(w, r)
	if !ok {
		return
	}

	video, err := h.useCase.GetByID(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toVideoResponse(video))
}

func (h *videoHandler) getVideosByTitle(w http.ResponseWriter, r *http.Request) {
	title := chi.URLParam(r, "title")
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(title); err == nil {
			title = unescaped
		}
	}

	var publishedAt *time.Time
	if raw := r.URL.Query().Get("published_at"); raw != "" {
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, invalidQueryParamResponse("published_at"))
			return
		}
		publishedAt = &t
	}

	videos, err := h.useCase.GetByTitle(r.Context(), title, publishedAt)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toVideoResponses(videos))
}

func (h *videoHandler) updateVideo(w http.ResponseWriter, r *http.Request) {
	id, ok := videoID(w, r)
	if !ok {
		return
	}

	var req videoRequest

	if !decodeBody(w, r, &req) {
		return
	}

	video, err := h.useCase.Update(r.Context(), id, req.toEntity())
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toVideoResponse(video))
}

func (h *videoHandler) likeVideo(w http.ResponseWriter, r *http.Request) {
	id, ok := videoID(w, r)
	if !ok {
		return
	}

	video, err := h.useCase.IncrementLike(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toVideoResponse(video))
}

func (h *videoHandler) deleteVideo(w http.ResponseWriter, r *http.Request) {
	id, ok := videoID(w, r)
	if !ok {
		return
	}

	if _, err := h.useCase.Delete(r.Context(), id); err != nil {
		renderError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
