package repositories

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/poofware/equity-registry/internal/models"
	"github.com/poofware/equity-registry/internal/utils"
)

// MemoryAccountStore is an in-process AccountStore with the same version
// semantics as the Postgres store. Used by tests and local tooling.
type MemoryAccountStore struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*models.Account
}

func NewMemoryAccountStore() *MemoryAccountStore {
	return &MemoryAccountStore{accounts: make(map[uuid.UUID]*models.Account)}
}

func (s *MemoryAccountStore) Get(_ context.Context, id uuid.UUID) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[id]
	if !ok {
		return nil, nil
	}
	return acc.Clone(), nil
}

func (s *MemoryAccountStore) Insert(_ context.Context, account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[account.ID]; ok {
		return utils.ErrAccountExists
	}
	account.SetRowVersion(1)
	s.accounts[account.ID] = account.Clone()
	return nil
}

func (s *MemoryAccountStore) UpdateIfVersion(_ context.Context, account *models.Account, expected int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.accounts[account.ID]
	if !ok || current.GetRowVersion() != expected {
		return false, nil
	}
	account.SetRowVersion(expected + 1)
	s.accounts[account.ID] = account.Clone()
	return true, nil
}

func (s *MemoryAccountStore) UpdatePairIfVersion(_ context.Context, a, b *models.Account, expectedA, expectedB int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	currentA, okA := s.accounts[a.ID]
	currentB, okB := s.accounts[b.ID]
	if !okA || !okB {
		return false, nil
	}
	// Both versions must still match before either record is touched.
	if currentA.GetRowVersion() != expectedA || currentB.GetRowVersion() != expectedB {
		return false, nil
	}
	a.SetRowVersion(expectedA + 1)
	b.SetRowVersion(expectedB + 1)
	s.accounts[a.ID] = a.Clone()
	s.accounts[b.ID] = b.Clone()
	return true, nil
}
