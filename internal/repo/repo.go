package repo

import (
	"gorm.io/gorm"
)

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}

// notFoundIfNoRows normalizes affected-row checks on update/delete so the
// HTTP layer can treat a missing id uniformly as gorm.ErrRecordNotFound.
func notFoundIfNoRows(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
