package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/toh-yonetim/dashboard/internal/models"
)

// LicenseRepository handles license persistence.
type LicenseRepository struct {
	db *DB
}

// NewLicenseRepository creates a new license repository.
func NewLicenseRepository(db *DB) *LicenseRepository {
	return &LicenseRepository{db: db}
}

// Create stores a new license.
func (r *LicenseRepository) Create(license *models.License) error {
	if err := r.db.Create(license).Error; err != nil {
		return fmt.Errorf("failed to create license: %w", err)
	}
	return nil
}

// GetByPublicID retrieves a license by its public ID.
func (r *LicenseRepository) GetByPublicID(publicID string) (*models.License, error) {
	var license models.License
	if err := r.db.Where("public_id = ?", publicID).First(&license).Error; err != nil {
		return nil, fmt.Errorf("failed to get license %s: %w", publicID, notFound(err))
	}
	return &license, nil
}

// List returns licenses in issue order, optionally filtered by status.
func (r *LicenseRepository) List(status models.LicenseStatus) ([]models.License, error) {
	var licenses []models.License
	q := r.db.Order("issue_date ASC, id ASC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&licenses).Error; err != nil {
		return nil, fmt.Errorf("failed to list licenses: %w", err)
	}
	return licenses, nil
}

// Delete removes a license by public ID.
func (r *LicenseRepository) Delete(publicID string) error {
	res := r.db.Where("public_id = ?", publicID).Delete(&models.License{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete license: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("failed to delete license %s: %w", publicID, ErrNotFound)
	}
	return nil
}

// ExpireBefore marks active licenses whose expiry is not after now as expired
// and returns them. A license is only returned by the run that flipped it, so
// overlapping runs never report the same license twice.
func (r *LicenseRepository) ExpireBefore(now time.Time) ([]models.License, error) {
	var expired []models.License
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var due []models.License
		err := tx.
			Where("status = ? AND expiry_date <= ?", models.LicenseActive, now).
			Order("expiry_date ASC").
			Find(&due).Error
		if err != nil {
			return fmt.Errorf("failed to find due licenses: %w", err)
		}

		for i := range due {
			res := tx.Model(&models.License{}).
				Where("id = ? AND status = ?", due[i].ID, models.LicenseActive).
				Update("status", models.LicenseExpired)
			if res.Error != nil {
				return fmt.Errorf("failed to expire license %s: %w", due[i].PublicID, res.Error)
			}
			if res.RowsAffected == 0 {
				continue
			}
			due[i].Status = models.LicenseExpired
			expired = append(expired, due[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return expired, nil
}

// CountByStatus returns the number of licenses with status.
func (r *LicenseRepository) CountByStatus(status models.LicenseStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.License{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
