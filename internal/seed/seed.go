package seed

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kasperbn/poster_shop/internal/hash"
	"github.com/kasperbn/poster_shop/internal/logging"
	"github.com/kasperbn/poster_shop/internal/models"
)

// ImportDir loads every known CSV file in dir into the database. Rows that
// collide with existing unique keys are skipped, a file that fails to parse is
// logged and the remaining files still import.
func ImportDir(ctx context.Context, db *gorm.DB, dir string) error {
	l := logging.FromContext(ctx).With("component", "seed")

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("seed: read dir %s: %w", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".csv") {
			continue
		}

		rows, err := readRows(filepath.Join(dir, name))
		if err != nil {
			l.Error("seed file failed", "file", name, "error", err)
			continue
		}

		var count int64
		switch name {
		case "user.csv":
			count, err = importUsers(ctx, db, rows)
		case "genre.csv":
			count, err = importGenres(ctx, db, rows)
		case "poster.csv":
			count, err = importPosters(ctx, db, rows)
		case "genrePosterRel.csv":
			count, err = importGenrePosterRels(ctx, db, rows)
		case "cartlines.csv":
			count, err = importCartlines(ctx, db, rows)
		case "userRatings.csv":
			count, err = importRatings(ctx, db, rows)
		default:
			l.Info("skipping unknown file", "file", name)
			continue
		}
		if err != nil {
			l.Error("seed file failed", "file", name, "error", err)
			continue
		}
		l.Info("seed file imported", "file", name, "rows", count)
	}
	return nil
}

// row is a single CSV record keyed by header column.
type row map[string]string

func readRows(path string) ([]row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) < 2 {
		return nil, nil
	}

	header := records[0]
	rows := make([]row, 0, len(records)-1)
	for _, rec := range records[1:] {
		m := make(row, len(header))
		for i, col := range header {
			if i < len(rec) {
				m[strings.TrimSpace(col)] = strings.TrimSpace(rec[i])
			}
		}
		rows = append(rows, m)
	}
	return rows, nil
}

func (r row) str(key string) string { return r[key] }

func (r row) num(key string) (int, error) {
	if r[key] == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(r[key])
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", key, err)
	}
	return n, nil
}

func (r row) float(key string) (float64, error) {
	if r[key] == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(r[key], 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", key, err)
	}
	return f, nil
}

func (r row) boolean(key string) bool {
	v := r[key]
	return v != "" && v != "0" && !strings.EqualFold(v, "false")
}

func insert[T any](ctx context.Context, db *gorm.DB, records []T) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}
	res := db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&records)
	return res.RowsAffected, res.Error
}

func importUsers(ctx context.Context, db *gorm.DB, rows []row) (int64, error) {
	users := make([]models.User, 0, len(rows))
	for _, r := range rows {
		pw, err := hash.HashPassword(r.str("password"))
		if err != nil {
			return 0, err
		}
		role := r.str("role")
		if role == "" {
			role = models.RoleUser
		}
		users = append(users, models.User{
			Firstname:    r.str("firstname"),
			Lastname:     r.str("lastname"),
			Email:        r.str("email"),
			PasswordHash: pw,
			Role:         role,
			IsActive:     r.boolean("isActive"),
		})
	}
	return insert(ctx, db, users)
}

func importGenres(ctx context.Context, db *gorm.DB, rows []row) (int64, error) {
	genres := make([]models.Genre, 0, len(rows))
	for _, r := range rows {
		genres = append(genres, models.Genre{
			Title: r.str("title"),
			Slug:  r.str("slug"),
		})
	}
	return insert(ctx, db, genres)
}

func importPosters(ctx context.Context, db *gorm.DB, rows []row) (int64, error) {
	posters := make([]models.Poster, 0, len(rows))
	for _, r := range rows {
		width, err := r.num("width")
		if err != nil {
			return 0, err
		}
		height, err := r.num("height")
		if err != nil {
			return 0, err
		}
		price, err := r.float("price")
		if err != nil {
			return 0, err
		}
		stock, err := r.num("stock")
		if err != nil {
			return 0, err
		}
		posters = append(posters, models.Poster{
			Name:        r.str("name"),
			Slug:        r.str("slug"),
			Description: r.str("description"),
			Image:       r.str("image"),
			Width:       width,
			Height:      height,
			Price:       price,
			Stock:       stock,
		})
	}
	return insert(ctx, db, posters)
}

func importGenrePosterRels(ctx context.Context, db *gorm.DB, rows []row) (int64, error) {
	rels := make([]models.GenrePosterRel, 0, len(rows))
	for _, r := range rows {
		genreID, err := r.num("genreId")
		if err != nil {
			return 0, err
		}
		posterID, err := r.num("posterId")
		if err != nil {
			return 0, err
		}
		rels = append(rels, models.GenrePosterRel{
			GenreID:  uint(genreID),
			PosterID: uint(posterID),
		})
	}
	return insert(ctx, db, rels)
}

func importCartlines(ctx context.Context, db *gorm.DB, rows []row) (int64, error) {
	lines := make([]models.Cartline, 0, len(rows))
	for _, r := range rows {
		userID, err := r.num("userId")
		if err != nil {
			return 0, err
		}
		posterID, err := r.num("posterId")
		if err != nil {
			return 0, err
		}
		quantity, err := r.num("quantity")
		if err != nil {
			return 0, err
		}
		lines = append(lines, models.Cartline{
			UserID:   uint(userID),
			PosterID: uint(posterID),
			Quantity: quantity,
		})
	}
	return insert(ctx, db, lines)
}

func importRatings(ctx context.Context, db *gorm.DB, rows []row) (int64, error) {
	ratings := make([]models.UserRating, 0, len(rows))
	for _, r := range rows {
		userID, err := r.num("userId")
		if err != nil {
			return 0, err
		}
		posterID, err := r.num("posterId")
		if err != nil {
			return 0, err
		}
		stars, err := r.num("numStars")
		if err != nil {
			return 0, err
		}
		ratings = append(ratings, models.UserRating{
			UserID:   uint(userID),
			PosterID: uint(posterID),
			NumStars: stars,
		})
	}
	return insert(ctx, db, ratings)
}
