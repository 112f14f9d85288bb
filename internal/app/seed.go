package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/poofware/equity-registry/internal/models"
	"github.com/poofware/equity-registry/internal/repositories"
	"github.com/poofware/equity-registry/internal/utils"
)

// Sentinel ids used to check if seeding has already occurred.
const (
	SentinelManagerID  = "dddddddd-dddd-4ddd-8ddd-ddddddddddd1"
	SentinelInvestorID = "dddddddd-dddd-4ddd-8ddd-ddddddddddd2"
)

// SeedDemoData inserts one Manager with a property and one funded
// Investor so a fresh development environment is immediately usable.
// Idempotent: skips when the sentinel manager already exists.
func SeedDemoData(ctx context.Context, store repositories.AccountStore) error {
	managerID := uuid.MustParse(SentinelManagerID)

	// IDEMPOTENCY CHECK
	if existing, err := store.Get(ctx, managerID); err != nil {
		return fmt.Errorf("check for sentinel account: %w", err)
	} else if existing != nil {
		utils.Logger.Info("Seed data already present; skipping seeding.")
		return nil
	}

	now := time.Now().UTC()
	manager := &models.Account{
		ID:            managerID,
		OwnerIdentity: "demo-manager",
		DisplayName:   "Demo Manager",
		Role:          models.RoleManager,
		Balance:       0,
		Property: &models.Property{
			Name:                "Lot1",
			Value:               1000,
			RemainingPercentage: models.FullOwnership,
			Shareholders:        []models.Shareholder{},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	investor := &models.Account{
		ID:            uuid.MustParse(SentinelInvestorID),
		OwnerIdentity: "demo-investor",
		DisplayName:   "Demo Investor",
		Role:          models.RoleInvestor,
		Balance:       500,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	for _, acc := range []*models.Account{manager, investor} {
		if err := store.Insert(ctx, acc); err != nil && !errors.Is(err, utils.ErrAccountExists) {
			return fmt.Errorf("seed account %s: %w", acc.DisplayName, err)
		}
	}

	utils.Logger.Info("Seeded demo manager and investor accounts.")
	return nil
}
