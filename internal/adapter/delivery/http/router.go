// Package http provides the HTTP delivery layer of the video service: the chi
// router, the handlers and the request and response schemas.
package http

import (
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter builds the router serving the video and clip APIs under /api/v1.
func NewRouter(logger *httplog.Logger, videoUseCase videoUseCase, clipUseCase clipUseCase) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*"},
		AllowedMethods:   []string{"POST", "GET", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           84600,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(recoverer)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/swagger.yml"),
	))

	r.Get("/docs/swagger.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./docs/swagger.yml")
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))

		r.Get("/ping", handlePing)

		r.Route("/videos", func(r chi.Router) {
			h := newVideoHandler(videoUseCase)

			r.Post("/", h.createVideo)
			r.Get("/", h.listVideos)
			r.Get("/title/{title}", h.getVideosByTitle)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.getVideo)
				r.Put("/", h.updateVideo)
				r.Delete("/", h.deleteVideo)
				r.Put("/likes", h.likeVideo)
			})
		})

		r.Route("/clips", func(r chi.Router) {
			h := newClipHandler(clipUseCase, newValidator())

			r.Post("/", h.createClip)
			r.Get("/", h.listClips)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.getClip)
				r.Put("/", h.updateClip)
				r.Delete("/", h.deleteClip)
			})
		})
	})

	return r
}
