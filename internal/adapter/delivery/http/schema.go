package http

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/vadimbarashkov/video-api/internal/entity"
)

const statusError = "error"

// videoRequest is the body accepted when creating or updating a video.
// ID is only read on update, where it must match the id in the path.
type videoRequest struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
}

func (req videoRequest) toEntity() *entity.Video {
	return &entity.Video{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
	}
}

type videoResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Likes       int64     `json:"likes"`
	PublishedAt time.Time `json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`
	ModifiedAt  time.Time `json:"modified_at"`
}

func toVideoResponse(video *entity.Video) videoResponse {
	return videoResponse{
		ID:          video.ID,
		Title:       video.Title,
		Description: video.Description,
		URL:         video.URL,
		Likes:       video.Likes,
		PublishedAt: video.PublishedAt,
		CreatedAt:   video.CreatedAt,
		ModifiedAt:  video.ModifiedAt,
	}
}

func toVideoResponses(videos []*entity.Video) []videoResponse {
	resp := make([]videoResponse, 0, len(videos))
	for _, v := range videos {
		resp = append(resp, toVideoResponse(v))
	}
	return resp
}

// videoPageResponse is one page of the video listing.
type videoPageResponse struct {
	Content       []videoResponse `json:"content"`
	PageNumber    int             `json:"page_number"`
	PageSize      int             `json:"page_size"`
	TotalElements int64           `json:"total_elements"`
	TotalPages    int             `json:"total_pages"`
}

func toVideoPageResponse(page *entity.Page[*entity.Video]) videoPageResponse {
	return videoPageResponse{
		Content:       toVideoResponses(page.Content),
		PageNumber:    page.Number,
		PageSize:      page.Size,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
	}
}

type clipRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	URL         string `json:"url" validate:"required,url"`
}

func (req clipRequest) toEntity() *entity.Clip {
	return &entity.Clip{
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
	}
}

type clipResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`
	ModifiedAt  time.Time `json:"modified_at"`
}

func toClipResponse(clip *entity.Clip) clipResponse {
	return clipResponse{
		ID:          clip.ID,
		Title:       clip.Title,
		Description: clip.Description,
		URL:         clip.URL,
		PublishedAt: clip.PublishedAt,
		CreatedAt:   clip.CreatedAt,
		ModifiedAt:  clip.ModifiedAt,
	}
}

// validationError represents an individual validation error.
type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// errorResponse represents a structured error response.
type errorResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Errors  []validationError `json:"errors,omitempty"`
}

var (
	emptyRequestBodyResponse = errorResponse{
		Status:  statusError,
		Message: "empty request body",
	}

	invalidRequestBodyResponse = errorResponse{
		Status:  statusError,
		Message: "invalid request body",
	}

	invalidIDResponse = errorResponse{
		Status:  statusError,
		Message: "invalid id",
	}

	serverErrorResponse = errorResponse{
		Status:  statusError,
		Message: "server error occurred",
	}
)

func invalidQueryParamResponse(name string) errorResponse {
	return errorResponse{
		Status:  statusError,
		Message: "invalid query parameter: " + name,
	}
}

func notFoundResponse(err *entity.NotFoundError) errorResponse {
	return errorResponse{
		Status:  statusError,
		Message: err.Message,
	}
}

// messageForTag returns a user-friendly message based on the validation tag.
func messageForTag(tag string) string {
	switch tag {
	case "required":
		return "this field is required"
	case "url":
		return "invalid url"
	default:
		return "invalid value"
	}
}

// getValidationErrors processes validation errors and returns a list of validationError.
func getValidationErrors(err error) []validationError {
	var validationErrs []validationError

	errs, ok := err.(validator.ValidationErrors)
	if ok {
		for _, e := range errs {
			validationErrs = append(validationErrs, validationError{
				Field:   e.Field(),
				Message: messageForTag(e.Tag()),
			})
		}
	}

	return validationErrs
}

// validationErrorResponse constructs an errorResponse for request validation errors.
func validationErrorResponse(err error) errorResponse {
	return errorResponse{
		Status:  statusError,
		Message: "validation error",
		Errors:  getValidationErrors(err),
	}
}

// violationsResponse reports the violations found by the use case, keeping their order.
func violationsResponse(err *entity.ValidationError) errorResponse {
	errs := make([]validationError, 0, len(err.Violations))
	for _, v := range err.Violations {
		errs = append(errs, validationError{
			Field:   strings.ToLower(v.Field),
			Message: v.Message,
		})
	}

	return errorResponse{
		Status:  statusError,
		Message: "validation error",
		Errors:  errs,
	}
}
