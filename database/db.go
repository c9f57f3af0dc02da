package database

import (
	"net/http"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	apperrors "storefront/errors"
	"storefront/logger"
	"storefront/models"
)

var DB *gorm.DB

// Connect opens the Postgres connection and runs migrations.
func Connect(dsn string) error {
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return apperrors.New(http.StatusServiceUnavailable, "Database connection error", err)
	}

	if err := DB.AutoMigrate(
		&models.User{},
		&models.Order{},
		&models.Collection{},
		&models.Category{},
		&models.Subcollection{},
		&models.Subcategory{},
		&models.Product{},
	); err != nil {
		return apperrors.New(http.StatusInternalServerError, "Database migration error", err)
	}

	logger.Log.Info("Connected to PostgreSQL")
	return nil
}
