package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kasperbn/poster_shop/internal/events"
	"github.com/kasperbn/poster_shop/internal/hash"
	"github.com/kasperbn/poster_shop/internal/models"
	"github.com/kasperbn/poster_shop/internal/repo"
	"github.com/kasperbn/poster_shop/internal/search"
	"github.com/kasperbn/poster_shop/internal/service"
)

var testSecret = []byte("test-secret")

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to connect to in-memory db")

	err = db.AutoMigrate(
		&models.User{},
		&models.Poster{},
		&models.Genre{},
		&models.GenrePosterRel{},
		&models.Cartline{},
		&models.UserRating{},
	)
	require.NoError(t, err, "failed to migrate tables")

	return db
}

type testEnv struct {
	E       *echo.Echo
	DB      *gorm.DB
	Users   *UserHTTP
	Catalog *CatalogHTTP
	Genres  *GenreHTTP
	Cart    *CartHTTP
	Ratings *RatingHTTP
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := initTestDB(t)
	r := repo.New(db)
	producer := &events.Producer{}
	indexer := &search.Indexer{}

	return &testEnv{
		E:       echo.New(),
		DB:      db,
		Users:   &UserHTTP{Svc: &service.UserService{Repo: r, JWTSecret: testSecret}, Producer: producer},
		Catalog: &CatalogHTTP{Svc: &service.CatalogService{Repo: r}, Producer: producer, Indexer: indexer},
		Genres:  &GenreHTTP{Svc: &service.CatalogService{Repo: r}, Producer: producer},
		Cart:    &CartHTTP{Svc: &service.CartService{Repo: r}, Producer: producer},
		Ratings: &RatingHTTP{Svc: &service.RatingService{Repo: r}, Producer: producer},
	}
}

func (env *testEnv) jsonRequest(method, target string, payload any) (*httptest.ResponseRecorder, echo.Context) {
	var body *bytes.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, env.E.NewContext(req, rec)
}

func (env *testEnv) createUser(t *testing.T, role string) *models.User {
	t.Helper()

	pw, err := hash.HashPassword("password")
	require.NoError(t, err)

	user := models.User{
		Firstname:    "Test",
		Lastname:     "User",
		Email:        fmt.Sprintf("%s@example.com", uuid.NewString()),
		PasswordHash: pw,
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, env.DB.Create(&user).Error)
	return &user
}

func (env *testEnv) createPoster(t *testing.T) *models.Poster {
	t.Helper()

	poster := models.Poster{
		Name:        "Test Poster",
		Slug:        uuid.NewString(),
		Description: "a poster",
		Image:       "poster.jpg",
		Width:       50,
		Height:      70,
		Price:       19.99,
		Stock:       10,
	}
	require.NoError(t, env.DB.Create(&poster).Error)
	return &poster
}

func requireHTTPError(t *testing.T, err error, code int) {
	t.Helper()

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError, got %v", err)
	require.Equal(t, code, he.Code)
}
