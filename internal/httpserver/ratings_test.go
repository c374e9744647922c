package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kasperbn/poster_shop/internal/models"
	"github.com/kasperbn/poster_shop/internal/transport"
)

func TestCreateRatingReplaces(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, models.RoleUser)
	poster := env.createPoster(t)

	rec, c := env.jsonRequest(http.MethodPost, "/api/ratings", map[string]any{
		"userId":   user.ID,
		"posterId": poster.ID,
		"numStars": 3,
	})
	require.NoError(t, env.Ratings.CreateRating(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	// rating the same poster again replaces the stars, no second row
	recAgain, cAgain := env.jsonRequest(http.MethodPost, "/api/ratings", map[string]any{
		"userId":   user.ID,
		"posterId": poster.ID,
		"numStars": 5,
	})
	require.NoError(t, env.Ratings.CreateRating(cAgain))
	require.Equal(t, http.StatusOK, recAgain.Code)

	var got models.UserRating
	require.NoError(t, json.Unmarshal(recAgain.Body.Bytes(), &got))
	require.Equal(t, 5, got.NumStars)

	var ratings []models.UserRating
	env.DB.Where("user_id = ? AND poster_id = ?", user.ID, poster.ID).Find(&ratings)
	require.Len(t, ratings, 1)
	require.Equal(t, 5, ratings[0].NumStars)
}

func TestCreateRatingValidation(t *testing.T) {
	env := newTestEnv(t)

	for _, stars := range []int{0, 6, -1} {
		_, c := env.jsonRequest(http.MethodPost, "/api/ratings", map[string]any{
			"userId":   1,
			"posterId": 1,
			"numStars": stars,
		})
		requireHTTPError(t, env.Ratings.CreateRating(c), http.StatusBadRequest)
	}

	_, cMissing := env.jsonRequest(http.MethodPost, "/api/ratings", map[string]any{
		"userId":   1,
		"posterId": 1,
	})
	requireHTTPError(t, env.Ratings.CreateRating(cMissing), http.StatusBadRequest)
}

func TestAverageRating(t *testing.T) {
	env := newTestEnv(t)
	poster := env.createPoster(t)

	for _, stars := range []int{2, 4, 4} {
		user := env.createUser(t, models.RoleUser)
		require.NoError(t, env.DB.Create(&models.UserRating{
			UserID:   user.ID,
			PosterID: poster.ID,
			NumStars: stars,
		}).Error)
	}

	rec, c := env.jsonRequest(http.MethodGet, "/api/ratings/poster/1/average", nil)
	c.SetParamNames("posterId")
	c.SetParamValues(fmt.Sprint(poster.ID))
	require.NoError(t, env.Ratings.GetAverageRating(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp transport.AverageRatingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, poster.ID, resp.PosterID)
	require.Equal(t, 3.3, resp.AverageRating)
	require.Equal(t, 3, resp.TotalRatings)
}

func TestAverageRatingEmpty(t *testing.T) {
	env := newTestEnv(t)
	poster := env.createPoster(t)

	rec, c := env.jsonRequest(http.MethodGet, "/api/ratings/poster/1/average", nil)
	c.SetParamNames("posterId")
	c.SetParamValues(fmt.Sprint(poster.ID))
	require.NoError(t, env.Ratings.GetAverageRating(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp transport.AverageRatingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 0.0, resp.AverageRating)
	require.Equal(t, 0, resp.TotalRatings)
}

func TestDeleteRating(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, models.RoleUser)
	poster := env.createPoster(t)

	rating := models.UserRating{UserID: user.ID, PosterID: poster.ID, NumStars: 4}
	require.NoError(t, env.DB.Create(&rating).Error)

	rec, c := env.jsonRequest(http.MethodDelete, "/api/ratings/1", nil)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(rating.ID))
	require.NoError(t, env.Ratings.DeleteRating(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	_, cAgain := env.jsonRequest(http.MethodDelete, "/api/ratings/1", nil)
	cAgain.SetParamNames("id")
	cAgain.SetParamValues(fmt.Sprint(rating.ID))
	requireHTTPError(t, env.Ratings.DeleteRating(cAgain), http.StatusNotFound)
}
