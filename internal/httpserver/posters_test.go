package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kasperbn/poster_shop/internal/models"
)

func TestGetPostersPagination(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 25; i++ {
		env.createPoster(t)
	}

	rec, c := env.jsonRequest(http.MethodGet, "/api/posters?page=2&size=10", nil)
	require.NoError(t, env.Catalog.GetPosters(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []models.Poster `json:"data"`
		Meta struct {
			Page       int   `json:"page"`
			Size       int   `json:"size"`
			Total      int64 `json:"total"`
			TotalPages int64 `json:"total_pages"`
			HasPrev    bool  `json:"has_prev"`
			HasNext    bool  `json:"has_next"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 10)
	require.Equal(t, 2, resp.Meta.Page)
	require.EqualValues(t, 25, resp.Meta.Total)
	require.EqualValues(t, 3, resp.Meta.TotalPages)
	require.True(t, resp.Meta.HasPrev)
	require.True(t, resp.Meta.HasNext)
}

func TestCreatePoster(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.jsonRequest(http.MethodPost, "/api/posters", map[string]any{
		"name":        "Sunset",
		"slug":        "sunset",
		"description": "a sunset over the sea",
		"image":       "sunset.jpg",
		"width":       50,
		"height":      70,
		"price":       24.5,
		"stock":       3,
	})
	require.NoError(t, env.Catalog.CreatePoster(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var got models.Poster
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "sunset", got.Slug)
	require.NotEmpty(t, got.ID)

	// missing fields are rejected before touching storage
	_, cBad := env.jsonRequest(http.MethodPost, "/api/posters", map[string]any{
		"name": "No Slug",
	})
	requireHTTPError(t, env.Catalog.CreatePoster(cBad), http.StatusBadRequest)
}

func TestGetPosterBySlug(t *testing.T) {
	env := newTestEnv(t)
	poster := env.createPoster(t)

	rec, c := env.jsonRequest(http.MethodGet, "/api/posters/slug/"+poster.Slug, nil)
	c.SetParamNames("slug")
	c.SetParamValues(poster.Slug)
	require.NoError(t, env.Catalog.GetPosterBySlug(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.Poster
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, poster.ID, got.ID)

	_, cMissing := env.jsonRequest(http.MethodGet, "/api/posters/slug/nope", nil)
	cMissing.SetParamNames("slug")
	cMissing.SetParamValues("nope")
	requireHTTPError(t, env.Catalog.GetPosterBySlug(cMissing), http.StatusNotFound)
}

func TestPatchPoster(t *testing.T) {
	env := newTestEnv(t)
	poster := env.createPoster(t)

	rec, c := env.jsonRequest(http.MethodPut, "/api/posters/1", map[string]any{
		"price": 9.99,
		"stock": 0,
	})
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(poster.ID))
	require.NoError(t, env.Catalog.PatchPoster(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.Poster
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, 9.99, got.Price)
	require.Equal(t, 0, got.Stock)
	require.Equal(t, poster.Name, got.Name)
}

func TestDeletePoster(t *testing.T) {
	env := newTestEnv(t)
	poster := env.createPoster(t)

	rec, c := env.jsonRequest(http.MethodDelete, "/api/posters/1", nil)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(poster.ID))
	require.NoError(t, env.Catalog.DeletePoster(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	_, cAgain := env.jsonRequest(http.MethodDelete, "/api/posters/1", nil)
	cAgain.SetParamNames("id")
	cAgain.SetParamValues(fmt.Sprint(poster.ID))
	requireHTTPError(t, env.Catalog.DeletePoster(cAgain), http.StatusNotFound)
}

func TestSearchPostersUnconfigured(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.jsonRequest(http.MethodGet, "/api/posters/search?q=sunset", nil)
	requireHTTPError(t, env.Catalog.SearchPosters(c), http.StatusInternalServerError)

	_, cNoQuery := env.jsonRequest(http.MethodGet, "/api/posters/search", nil)
	requireHTTPError(t, env.Catalog.SearchPosters(cNoQuery), http.StatusBadRequest)
}
