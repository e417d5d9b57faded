package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gavv/httpexpect/v2"
	"github.com/go-chi/httplog/v2"
	"github.com/stretchr/testify/suite"
	"github.com/vadimbarashkov/video-api/internal/config"
)

// APITestSuite drives the whole service over a SQLite database.
type APITestSuite struct {
	suite.Suite
	cfg    *config.Config
	server *httptest.Server
	e      *httpexpect.Expect
}

func (suite *APITestSuite) SetupTest() {
	suite.cfg = &config.Config{
		Env:        config.EnvDev,
		Store:      config.Store{Driver: config.DriverSQLite},
		SQLite:     config.SQLite{Path: filepath.Join(suite.T().TempDir(), "videos.db")},
		Pagination: config.Pagination{DefaultSize: 10, MaxSize: 100},
	}

	db, err := openStore(context.Background(), suite.cfg)
	if err != nil {
		suite.T().Fatalf("Failed to open store: %v", err)
	}
	suite.T().Cleanup(func() {
		db.Close()
	})

	logger := httplog.NewLogger("", httplog.Options{Writer: io.Discard})

	suite.server = httptest.NewServer(newHandler(suite.cfg, logger, db))
	suite.T().Cleanup(func() {
		suite.server.Close()
	})

	suite.e = httpexpect.Default(suite.T(), suite.server.URL)
}

func (suite *APITestSuite) createVideo(title string) string {
	return suite.e.POST("/api/v1/videos").
		WithJSON(map[string]string{"title": title, "description": "description"}).
		Expect().
		Status(http.StatusCreated).
		JSON().Object().
		Value("id").String().Raw()
}

func (suite *APITestSuite) TestVideoLifecycle() {
	id := suite.createVideo("Go concurrency patterns")

	video := suite.e.GET("/api/v1/videos/{id}", id).
		Expect().
		Status(http.StatusOK).
		JSON().Object()

	video.HasValue("likes", 0)
	created := video.Value("created_at").String().Raw()
	video.HasValue("published_at", created)
	video.HasValue("modified_at", created)

	suite.e.PUT("/api/v1/videos/{id}", id).
		WithJSON(map[string]string{"id": id, "title": "ignored", "description": "abcd"}).
		Expect().
		Status(http.StatusOK).
		JSON().Object().
		HasValue("description", "abcd").
		HasValue("title", "Go concurrency patterns")

	for i := 0; i < 3; i++ {
		suite.e.PUT("/api/v1/videos/{id}/likes", id).
			Expect().
			Status(http.StatusOK)
	}

	suite.e.GET("/api/v1/videos/{id}", id).
		Expect().
		Status(http.StatusOK).
		JSON().Object().
		HasValue("likes", 3)

	suite.e.GET("/api/v1/videos/title/{title}", "Go concurrency patterns").
		Expect().
		Status(http.StatusOK).
		JSON().Array().Length().IsEqual(1)

	suite.e.DELETE("/api/v1/videos/{id}", id).
		Expect().
		Status(http.StatusNoContent)

	suite.e.DELETE("/api/v1/videos/{id}", id).
		Expect().
		Status(http.StatusNotFound).
		JSON().Object().
		HasValue("message", "video não encontrado")
}

func (suite *APITestSuite) TestCreateVideoValidation() {
	errs := suite.e.POST("/api/v1/videos").
		WithJSON(map[string]string{"url": "anything"}).
		Expect().
		Status(http.StatusBadRequest).
		JSON().Object().
		Value("errors").Array()

	errs.Length().IsEqual(2)
	errs.Value(0).Object().HasValue("message", "descrição não pode estar vazio")
	errs.Value(1).Object().HasValue("message", "título não pode estar vazio")
}

func (suite *APITestSuite) TestUpdateVideoIDMismatch() {
	id := suite.createVideo("first")
	other := suite.createVideo("second")

	suite.e.PUT("/api/v1/videos/{id}", id).
		WithJSON(map[string]string{"id": other, "description": "abcd"}).
		Expect().
		Status(http.StatusNotFound).
		JSON().Object().
		HasValue("message", "video não apresenta o ID correto")
}

func (suite *APITestSuite) TestListVideos() {
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		suite.createVideo(title)
	}

	page := suite.e.GET("/api/v1/videos").
		WithQuery("page", 2).
		WithQuery("size", 2).
		Expect().
		Status(http.StatusOK).
		JSON().Object()

	page.Value("content").Array().Length().IsEqual(1)
	page.HasValue("page_number", 2)
	page.HasValue("page_size", 2)
	page.HasValue("total_elements", 5)

	page = suite.e.GET("/api/v1/videos").
		WithQuery("sort", "title,asc").
		Expect().
		Status(http.StatusOK).
		JSON().Object()

	page.HasValue("page_size", 10)
	page.Value("content").Array().Value(0).Object().HasValue("title", "a")
}

func (suite *APITestSuite) TestClipLifecycle() {
	clip := suite.e.POST("/api/v1/clips").
		WithJSON(map[string]string{"title": "intro", "url": "https://example.com/clips/intro"}).
		Expect().
		Status(http.StatusCreated).
		JSON().Object()

	id := clip.Value("id").String().Raw()

	suite.e.PUT("/api/v1/clips/{id}", id).
		WithJSON(map[string]string{"title": "outro", "url": "https://example.com/clips/outro"}).
		Expect().
		Status(http.StatusOK).
		JSON().Object().
		HasValue("title", "outro")

	suite.e.GET("/api/v1/clips").
		Expect().
		Status(http.StatusOK).
		JSON().Array().Length().IsEqual(1)

	suite.e.DELETE("/api/v1/clips/{id}", id).
		Expect().
		Status(http.StatusNoContent)

	suite.e.GET("/api/v1/clips/{id}", id).
		Expect().
		Status(http.StatusNotFound)
}

func TestAPI(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
