package models

import (
	"time"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Firstname    string    `gorm:"not null"                 json:"firstname"`
	Lastname     string    `gorm:"not null"                 json:"lastname"`
	Email        string    `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Role         string    `gorm:"not null;default:USER"    json:"role"`
	IsActive     bool      `gorm:"default:true"             json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Poster struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"not null"                 json:"name"`
	Slug        string  `gorm:"uniqueIndex;not null"     json:"slug"`
	Description string  `gorm:"not null"                 json:"description"`
	Image       string  `gorm:"not null"                 json:"image"`
	Width       int     `gorm:"not null"                 json:"width"`
	Height      int     `gorm:"not null"                 json:"height"`
	Price       float64 `gorm:"not null"                 json:"price"`
	Stock       int     `gorm:"not null"                 json:"stock"`

	Genres  []GenrePosterRel `gorm:"foreignKey:PosterID" json:"genres,omitempty"`
	Ratings []UserRating     `gorm:"foreignKey:PosterID" json:"ratings,omitempty"`
}

type Genre struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Title string `gorm:"not null"                 json:"title"`
	Slug  string `gorm:"uniqueIndex;not null"     json:"slug"`

	Posters []GenrePosterRel `gorm:"foreignKey:GenreID" json:"posters,omitempty"`
}

type GenrePosterRel struct {
	ID       uint `gorm:"primaryKey;autoIncrement"                      json:"id"`
	GenreID  uint `gorm:"not null;uniqueIndex:idx_genre_poster"         json:"genreId"`
	PosterID uint `gorm:"not null;uniqueIndex:idx_genre_poster"         json:"posterId"`

	Genre  *Genre  `gorm:"foreignKey:GenreID"  json:"genre,omitempty"`
	Poster *Poster `gorm:"foreignKey:PosterID" json:"poster,omitempty"`
}

type Cartline struct {
	ID       uint `gorm:"primaryKey;autoIncrement"                      json:"id"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_cartline_user_poster" json:"userId"`
	PosterID uint `gorm:"not null;uniqueIndex:idx_cartline_user_poster" json:"posterId"`
	Quantity int  `gorm:"not null;check:quantity>0"                     json:"quantity"`

	User   *User   `gorm:"foreignKey:UserID"   json:"user,omitempty"`
	Poster *Poster `gorm:"foreignKey:PosterID" json:"poster,omitempty"`
}

type UserRating struct {
	ID       uint `gorm:"primaryKey;autoIncrement"                    json:"id"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_rating_user_poster" json:"userId"`
	PosterID uint `gorm:"not null;uniqueIndex:idx_rating_user_poster" json:"posterId"`
	NumStars int  `gorm:"not null;check:num_stars BETWEEN 1 AND 5"    json:"numStars"`

	User   *User   `gorm:"foreignKey:UserID"   json:"user,omitempty"`
	Poster *Poster `gorm:"foreignKey:PosterID" json:"poster,omitempty"`
}
