package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kasperbn/poster_shop/internal/events"
	"github.com/kasperbn/poster_shop/internal/middleware/auth"
	"github.com/kasperbn/poster_shop/internal/search"
	"github.com/kasperbn/poster_shop/internal/service"
)

// Deps carries everything the HTTP layer needs. Producer and Indexer may be
// zero-valued when Kafka/Elasticsearch are not configured.
type Deps struct {
	Users     *service.UserService
	Catalog   *service.CatalogService
	Cart      *service.CartService
	Ratings   *service.RatingService
	Producer  *events.Producer
	Indexer   *search.Indexer
	JWTSecret []byte
}

func Register(e *echo.Echo, deps Deps) {
	e.HTTPErrorHandler = HTTPErrorHandler

	authMW := auth.New(deps.JWTSecret)

	users := &UserHTTP{Svc: deps.Users, Producer: deps.Producer}
	catalog := &CatalogHTTP{Svc: deps.Catalog, Producer: deps.Producer, Indexer: deps.Indexer}
	genres := &GenreHTTP{Svc: deps.Catalog, Producer: deps.Producer}
	cart := &CartHTTP{Svc: deps.Cart, Producer: deps.Producer}
	ratings := &RatingHTTP{Svc: deps.Ratings, Producer: deps.Producer}

	api := e.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	u := api.Group("/users")
	u.POST("/register", users.Register)
	u.POST("/login", users.Login)
	u.GET("/profile", users.GetProfile, authMW.RequireAuth)
	u.GET("", users.GetUsers, authMW.RequireAdmin)
	u.GET("/:id", users.GetUser, authMW.RequireAdmin)
	u.PUT("/:id", users.PatchUser, authMW.RequireAdmin)
	u.DELETE("/:id", users.DeleteUser, authMW.RequireAdmin)

	p := api.Group("/posters")
	p.GET("", catalog.GetPosters)
	p.GET("/search", catalog.SearchPosters)
	p.GET("/slug/:slug", catalog.GetPosterBySlug)
	p.GET("/:id", catalog.GetPoster)
	p.POST("", catalog.CreatePoster, authMW.RequireAdmin)
	p.PUT("/:id", catalog.PatchPoster, authMW.RequireAdmin)
	p.DELETE("/:id", catalog.DeletePoster, authMW.RequireAdmin)

	g := api.Group("/genres")
	g.GET("", genres.GetGenres)
	g.GET("/slug/:slug", genres.GetGenreBySlug)
	g.GET("/:id", genres.GetGenre)
	g.POST("", genres.CreateGenre, authMW.RequireAdmin)
	g.PUT("/:id", genres.PatchGenre, authMW.RequireAdmin)
	g.DELETE("/:id", genres.DeleteGenre, authMW.RequireAdmin)

	cl := api.Group("/cartlines")
	cl.GET("", cart.GetCartlines, authMW.RequireAdmin)
	cl.GET("/user/:userId", cart.GetCartlinesByUser, authMW.RequireAuth)
	cl.GET("/:id", cart.GetCartline, authMW.RequireAuth)
	cl.POST("", cart.CreateCartline, authMW.RequireAuth)
	cl.PUT("/:id", cart.UpdateCartline, authMW.RequireAuth)
	cl.DELETE("/user/:userId/clear", cart.ClearCart, authMW.RequireAuth)
	cl.DELETE("/:id", cart.DeleteCartline, authMW.RequireAuth)

	r := api.Group("/ratings")
	r.GET("", ratings.GetRatings)
	r.GET("/poster/:posterId/average", ratings.GetAverageRating)
	r.GET("/poster/:posterId", ratings.GetRatingsByPoster)
	r.GET("/user/:userId", ratings.GetRatingsByUser, authMW.RequireAuth)
	r.GET("/:id", ratings.GetRating)
	r.POST("", ratings.CreateRating, authMW.RequireAuth)
	r.DELETE("/:id", ratings.DeleteRating, authMW.RequireAdmin)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
