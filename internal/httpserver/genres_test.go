package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kasperbn/poster_shop/internal/models"
)

func TestGenreCRUD(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.jsonRequest(http.MethodPost, "/api/genres", map[string]string{
		"title": "Abstract",
		"slug":  "abstract",
	})
	require.NoError(t, env.Genres.CreateGenre(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var genre models.Genre
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &genre))
	require.NotEmpty(t, genre.ID)

	recGet, cGet := env.jsonRequest(http.MethodGet, "/api/genres/slug/abstract", nil)
	cGet.SetParamNames("slug")
	cGet.SetParamValues("abstract")
	require.NoError(t, env.Genres.GetGenreBySlug(cGet))
	require.Equal(t, http.StatusOK, recGet.Code)

	recPatch, cPatch := env.jsonRequest(http.MethodPut, "/api/genres/1", map[string]string{
		"title": "Abstract Art",
	})
	cPatch.SetParamNames("id")
	cPatch.SetParamValues(fmt.Sprint(genre.ID))
	require.NoError(t, env.Genres.PatchGenre(cPatch))
	require.Equal(t, http.StatusOK, recPatch.Code)

	var patched models.Genre
	require.NoError(t, json.Unmarshal(recPatch.Body.Bytes(), &patched))
	require.Equal(t, "Abstract Art", patched.Title)
	require.Equal(t, "abstract", patched.Slug)

	recDel, cDel := env.jsonRequest(http.MethodDelete, "/api/genres/1", nil)
	cDel.SetParamNames("id")
	cDel.SetParamValues(fmt.Sprint(genre.ID))
	require.NoError(t, env.Genres.DeleteGenre(cDel))
	require.Equal(t, http.StatusNoContent, recDel.Code)

	_, cMissing := env.jsonRequest(http.MethodGet, "/api/genres/1", nil)
	cMissing.SetParamNames("id")
	cMissing.SetParamValues(fmt.Sprint(genre.ID))
	requireHTTPError(t, env.Genres.GetGenre(cMissing), http.StatusNotFound)
}

func TestCreateGenreValidation(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.jsonRequest(http.MethodPost, "/api/genres", map[string]string{"title": "No Slug"})
	requireHTTPError(t, env.Genres.CreateGenre(c), http.StatusBadRequest)
}
