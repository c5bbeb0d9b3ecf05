package repository

import (
	"fmt"
	"time"

	"github.com/toh-yonetim/dashboard/internal/models"
)

// AccountRepository handles account-related database operations.
type AccountRepository struct {
	db *DB
}

// NewAccountRepository creates a new account repository.
func NewAccountRepository(db *DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create creates a new account.
func (r *AccountRepository) Create(account *models.Account) error {
	if err := r.db.Create(account).Error; err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(id uint) (*models.Account, error) {
	var account models.Account
	if err := r.db.First(&account, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get account %d: %w", id, notFound(err))
	}
	return &account, nil
}

// GetByLogin retrieves an account whose username or email equals login.
func (r *AccountRepository) GetByLogin(login string) (*models.Account, error) {
	var account models.Account
	err := r.db.Where("username = ? OR email = ?", login, login).First(&account).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", login, notFound(err))
	}
	return &account, nil
}

// ExistsByUsernameOrEmail reports whether username or email is already taken.
func (r *AccountRepository) ExistsByUsernameOrEmail(username, email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Account{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check account existence: %w", err)
	}
	return count > 0, nil
}

// TouchLastLogin sets the last login time of an account.
func (r *AccountRepository) TouchLastLogin(id uint, at time.Time) error {
	err := r.db.Model(&models.Account{}).Where("id = ?", id).Update("last_login", at).Error
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

// Count returns the number of registered accounts.
func (r *AccountRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Account{}).Count(&count).Error
	return count, err
}
