package repository

import (
	"fmt"

	"github.com/toh-yonetim/dashboard/internal/models"
)

// TrainingRepository handles training persistence.
type TrainingRepository struct {
	db *DB
}

// NewTrainingRepository creates a new training repository.
func NewTrainingRepository(db *DB) *TrainingRepository {
	return &TrainingRepository{db: db}
}

// Create stores a new training.
func (r *TrainingRepository) Create(training *models.Training) error {
	if err := r.db.Create(training).Error; err != nil {
		return fmt.Errorf("failed to create training: %w", err)
	}
	return nil
}

// GetByPublicID retrieves a training by its public ID.
func (r *TrainingRepository) GetByPublicID(publicID string) (*models.Training, error) {
	var training models.Training
	if err := r.db.Where("public_id = ?", publicID).First(&training).Error; err != nil {
		return nil, fmt.Errorf("failed to get training %s: %w", publicID, notFound(err))
	}
	return &training, nil
}

// List returns trainings in creation order.
func (r *TrainingRepository) List() ([]models.Training, error) {
	var trainings []models.Training
	if err := r.db.Order("created_at ASC, id ASC").Find(&trainings).Error; err != nil {
		return nil, fmt.Errorf("failed to list trainings: %w", err)
	}
	return trainings, nil
}

// UpdateStatus moves a training from one status to another. It returns
// ErrNotFound when no training with publicID is currently in status from.
func (r *TrainingRepository) UpdateStatus(publicID string, from, to models.TrainingStatus) error {
	res := r.db.Model(&models.Training{}).
		Where("public_id = ? AND status = ?", publicID, from).
		Update("status", to)
	if res.Error != nil {
		return fmt.Errorf("failed to update training status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("failed to update training %s: %w", publicID, ErrNotFound)
	}
	return nil
}

// CountByStatus returns the number of trainings with status.
func (r *TrainingRepository) CountByStatus(status models.TrainingStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.Training{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
