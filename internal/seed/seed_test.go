package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kasperbn/poster_shop/internal/hash"
	"github.com/kasperbn/poster_shop/internal/models"
)

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Poster{},
		&models.Genre{},
		&models.GenrePosterRel{},
		&models.Cartline{},
		&models.UserRating{},
	))
	return db
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestImportDir(t *testing.T) {
	db := initTestDB(t)
	dir := t.TempDir()

	writeFile(t, dir, "user.csv",
		"firstname,lastname,email,password,role,isActive\n"+
			"Ada,Lovelace,ada@example.com,secret,ADMIN,1\n"+
			"Alan,Turing,alan@example.com,secret,USER,true\n")
	writeFile(t, dir, "genre.csv",
		"title,slug\nAbstract,abstract\nNature,nature\n")
	writeFile(t, dir, "poster.csv",
		"name,slug,description,image,width,height,price,stock\n"+
			"Sunset,sunset,a sunset,sunset.jpg,50,70,24.5,3\n")
	writeFile(t, dir, "genrePosterRel.csv",
		"genreId,posterId\n1,1\n2,1\n")
	writeFile(t, dir, "cartlines.csv",
		"userId,posterId,quantity\n1,1,2\n")
	writeFile(t, dir, "userRatings.csv",
		"userId,posterId,numStars\n1,1,4\n2,1,5\n")
	writeFile(t, dir, "notes.txt", "ignored")
	writeFile(t, dir, "unknown.csv", "a,b\n1,2\n")

	require.NoError(t, ImportDir(context.Background(), db, dir))

	var users []models.User
	require.NoError(t, db.Order("id").Find(&users).Error)
	require.Len(t, users, 2)
	require.Equal(t, "ada@example.com", users[0].Email)
	require.Equal(t, models.RoleAdmin, users[0].Role)
	require.True(t, users[0].IsActive)
	require.NotEqual(t, "secret", users[0].PasswordHash)
	require.True(t, hash.CheckPassword(users[0].PasswordHash, "secret"))

	counts := map[string]int64{}
	for name, model := range map[string]any{
		"genres":  &models.Genre{},
		"posters": &models.Poster{},
		"rels":    &models.GenrePosterRel{},
		"lines":   &models.Cartline{},
		"ratings": &models.UserRating{},
	} {
		var n int64
		require.NoError(t, db.Model(model).Count(&n).Error)
		counts[name] = n
	}
	require.EqualValues(t, 2, counts["genres"])
	require.EqualValues(t, 1, counts["posters"])
	require.EqualValues(t, 2, counts["rels"])
	require.EqualValues(t, 1, counts["lines"])
	require.EqualValues(t, 2, counts["ratings"])
}

func TestImportDirSkipsDuplicates(t *testing.T) {
	db := initTestDB(t)
	dir := t.TempDir()

	writeFile(t, dir, "genre.csv", "title,slug\nAbstract,abstract\n")

	require.NoError(t, ImportDir(context.Background(), db, dir))
	require.NoError(t, ImportDir(context.Background(), db, dir))

	var n int64
	require.NoError(t, db.Model(&models.Genre{}).Count(&n).Error)
	require.EqualValues(t, 1, n)
}

func TestImportDirBadFileDoesNotAbort(t *testing.T) {
	db := initTestDB(t)
	dir := t.TempDir()

	writeFile(t, dir, "poster.csv",
		"name,slug,description,image,width,height,price,stock\n"+
			"Broken,broken,x,x.jpg,not-a-number,70,1.0,1\n")
	writeFile(t, dir, "genre.csv", "title,slug\nNature,nature\n")

	require.NoError(t, ImportDir(context.Background(), db, dir))

	var posters, genres int64
	require.NoError(t, db.Model(&models.Poster{}).Count(&posters).Error)
	require.NoError(t, db.Model(&models.Genre{}).Count(&genres).Error)
	require.EqualValues(t, 0, posters)
	require.EqualValues(t, 1, genres)
}

func TestImportDirMissingDir(t *testing.T) {
	db := initTestDB(t)
	require.Error(t, ImportDir(context.Background(), db, filepath.Join(t.TempDir(), "nope")))
}
