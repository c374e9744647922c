package transport

type RegisterRequest struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type PatchUserRequest struct {
	Firstname *string `json:"firstname"`
	Lastname  *string `json:"lastname"`
	IsActive  *bool   `json:"isActive"`
}

type CreatePosterRequest struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Price       float64 `json:"price"`
	Stock       *int    `json:"stock"`
}

type PatchPosterRequest struct {
	Name        *string  `json:"name"`
	Slug        *string  `json:"slug"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
	Width       *int     `json:"width"`
	Height      *int     `json:"height"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
}

type CreateGenreRequest struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

type PatchGenreRequest struct {
	Title *string `json:"title"`
	Slug  *string `json:"slug"`
}

type CreateCartlineRequest struct {
	UserID   uint `json:"userId"`
	PosterID uint `json:"posterId"`
	Quantity int  `json:"quantity"`
}

type UpdateCartlineRequest struct {
	Quantity int `json:"quantity"`
}

type CreateRatingRequest struct {
	UserID   uint `json:"userId"`
	PosterID uint `json:"posterId"`
	NumStars *int `json:"numStars"`
}

type AverageRatingResponse struct {
	PosterID      uint    `json:"posterId"`
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int     `json:"totalRatings"`
}
