package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kasperbn/poster_shop/internal/models"
)

func TestCreateCartlineMerges(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, models.RoleUser)
	poster := env.createPoster(t)

	rec, c := env.jsonRequest(http.MethodPost, "/api/cartlines", map[string]any{
		"userId":   user.ID,
		"posterId": poster.ID,
		"quantity": 2,
	})
	require.NoError(t, env.Cart.CreateCartline(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var first models.Cartline
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))
	require.Equal(t, 2, first.Quantity)

	// same pair again adds quantities onto the existing line
	recMerge, cMerge := env.jsonRequest(http.MethodPost, "/api/cartlines", map[string]any{
		"userId":   user.ID,
		"posterId": poster.ID,
		"quantity": 3,
	})
	require.NoError(t, env.Cart.CreateCartline(cMerge))
	require.Equal(t, http.StatusOK, recMerge.Code)

	var merged models.Cartline
	require.NoError(t, json.Unmarshal(recMerge.Body.Bytes(), &merged))
	require.Equal(t, first.ID, merged.ID)
	require.Equal(t, 5, merged.Quantity)

	var count int64
	env.DB.Model(&models.Cartline{}).
		Where("user_id = ? AND poster_id = ?", user.ID, poster.ID).
		Count(&count)
	require.EqualValues(t, 1, count)
}

func TestCreateCartlineValidation(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.jsonRequest(http.MethodPost, "/api/cartlines", map[string]any{
		"userId":   1,
		"posterId": 1,
		"quantity": 0,
	})
	requireHTTPError(t, env.Cart.CreateCartline(c), http.StatusBadRequest)

	_, cNeg := env.jsonRequest(http.MethodPost, "/api/cartlines", map[string]any{
		"userId":   1,
		"posterId": 1,
		"quantity": -3,
	})
	requireHTTPError(t, env.Cart.CreateCartline(cNeg), http.StatusBadRequest)
}

func TestUpdateCartline(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, models.RoleUser)
	poster := env.createPoster(t)

	line := models.Cartline{UserID: user.ID, PosterID: poster.ID, Quantity: 1}
	require.NoError(t, env.DB.Create(&line).Error)

	rec, c := env.jsonRequest(http.MethodPut, "/api/cartlines/1", map[string]any{"quantity": 7})
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(line.ID))
	require.NoError(t, env.Cart.UpdateCartline(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.Cartline
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, 7, got.Quantity)

	_, cBad := env.jsonRequest(http.MethodPut, "/api/cartlines/1", map[string]any{"quantity": 0})
	cBad.SetParamNames("id")
	cBad.SetParamValues(fmt.Sprint(line.ID))
	requireHTTPError(t, env.Cart.UpdateCartline(cBad), http.StatusBadRequest)

	_, cMissing := env.jsonRequest(http.MethodPut, "/api/cartlines/9999", map[string]any{"quantity": 2})
	cMissing.SetParamNames("id")
	cMissing.SetParamValues("9999")
	requireHTTPError(t, env.Cart.UpdateCartline(cMissing), http.StatusNotFound)
}

func TestDeleteCartline(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, models.RoleUser)
	poster := env.createPoster(t)

	line := models.Cartline{UserID: user.ID, PosterID: poster.ID, Quantity: 1}
	require.NoError(t, env.DB.Create(&line).Error)

	rec, c := env.jsonRequest(http.MethodDelete, "/api/cartlines/1", nil)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(line.ID))
	require.NoError(t, env.Cart.DeleteCartline(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	_, cAgain := env.jsonRequest(http.MethodDelete, "/api/cartlines/1", nil)
	cAgain.SetParamNames("id")
	cAgain.SetParamValues(fmt.Sprint(line.ID))
	requireHTTPError(t, env.Cart.DeleteCartline(cAgain), http.StatusNotFound)
}

func TestClearCart(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, models.RoleUser)
	other := env.createUser(t, models.RoleUser)
	p1 := env.createPoster(t)
	p2 := env.createPoster(t)

	require.NoError(t, env.DB.Create(&models.Cartline{UserID: user.ID, PosterID: p1.ID, Quantity: 1}).Error)
	require.NoError(t, env.DB.Create(&models.Cartline{UserID: user.ID, PosterID: p2.ID, Quantity: 2}).Error)
	require.NoError(t, env.DB.Create(&models.Cartline{UserID: other.ID, PosterID: p1.ID, Quantity: 3}).Error)

	rec, c := env.jsonRequest(http.MethodDelete, "/api/cartlines/user/1/clear", nil)
	c.SetParamNames("userId")
	c.SetParamValues(fmt.Sprint(user.ID))
	require.NoError(t, env.Cart.ClearCart(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	var mine, theirs int64
	env.DB.Model(&models.Cartline{}).Where("user_id = ?", user.ID).Count(&mine)
	env.DB.Model(&models.Cartline{}).Where("user_id = ?", other.ID).Count(&theirs)
	require.EqualValues(t, 0, mine)
	require.EqualValues(t, 1, theirs)
}
