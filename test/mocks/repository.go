package mocks

import (
	"fmt"
	"sync"
	"time"

	"github.com/toh-yonetim/dashboard/internal/models"
	"github.com/toh-yonetim/dashboard/internal/repository"
)

// MockAccountRepository is an in-memory account store
type MockAccountRepository struct {
	mu       sync.Mutex
	accounts map[uint]*models.Account
	nextID   uint

	// CreateErr, when set, is returned by Create
	CreateErr error
}

// NewMockAccountRepository creates an empty store
func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{accounts: make(map[uint]*models.Account), nextID: 1}
}

func (m *MockAccountRepository) Create(account *models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateErr != nil {
		return m.CreateErr
	}
	account.ID = m.nextID
	m.nextID++
	stored := *account
	m.accounts[account.ID] = &stored
	return nil
}

func (m *MockAccountRepository) GetByID(id uint) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.accounts[id]
	if !ok {
		return nil, fmt.Errorf("account %d: %w", id, repository.ErrNotFound)
	}
	cp := *a
	return &cp, nil
}

func (m *MockAccountRepository) GetByLogin(login string) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.accounts {
		if a.Username == login || a.Email == login {
			cp := *a
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("account %s: %w", login, repository.ErrNotFound)
}

func (m *MockAccountRepository) ExistsByUsernameOrEmail(username, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.accounts {
		if a.Username == username || a.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockAccountRepository) TouchLastLogin(id uint, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.LastLogin = &at
	return nil
}

func (m *MockAccountRepository) Count() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.accounts)), nil
}
