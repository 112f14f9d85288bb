package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/poofware/equity-registry/internal/models"
	"github.com/poofware/equity-registry/internal/repositories"
	"github.com/poofware/equity-registry/internal/utils"
)

// maxInvestAttempts bounds the re-read/re-validate loop when a concurrent
// purchase wins the conditional pair write.
const maxInvestAttempts = 3

// RegistryService is the ledger mutation engine: account creation,
// property creation and share purchases against the account store.
// Every operation validates fully before it writes anything; a rejected
// operation leaves all state unchanged.
type RegistryService interface {
	CreateAccount(ctx context.Context, caller models.Identity, displayName string, role models.Role, initialBalance int64) (uuid.UUID, string, error)
	CheckBalance(ctx context.Context, id uuid.UUID) (int64, error)
	GetAccount(ctx context.Context, id uuid.UUID) (*models.Account, error)
	CreateProperty(ctx context.Context, caller models.Identity, accountID uuid.UUID, name string, value int64) (string, error)
	Invest(ctx context.Context, caller models.Identity, ownerID, buyerID uuid.UUID, percentage int64) (string, error)
}

type registryService struct {
	store repositories.AccountStore
	newID func() uuid.UUID
}

func NewRegistryService(store repositories.AccountStore) RegistryService {
	return &registryService{store: store, newID: uuid.New}
}

/* ------------------------------------------------------------------
   CreateAccount
------------------------------------------------------------------ */

func (s *registryService) CreateAccount(
	ctx context.Context,
	caller models.Identity,
	displayName string,
	role models.Role,
	initialBalance int64,
) (uuid.UUID, string, error) {
	if strings.TrimSpace(displayName) == "" {
		return uuid.Nil, "", utils.NewInvalidArgument("display name cannot be empty")
	}
	if !role.Valid() {
		return uuid.Nil, "", utils.NewInvalidArgument(
			fmt.Sprintf("role must be either %s or %s", models.RoleManager, models.RoleInvestor))
	}
	if initialBalance < 0 {
		return uuid.Nil, "", utils.NewInvalidArgument("initial balance cannot be negative")
	}

	now := time.Now().UTC()
	acc := &models.Account{
		ID:            s.newID(),
		OwnerIdentity: caller,
		DisplayName:   displayName,
		Role:          role,
		Balance:       initialBalance,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.store.Insert(ctx, acc); err != nil {
		if errors.Is(err, utils.ErrAccountExists) {
			// The id generator guarantees uniqueness; still, never
			// overwrite an existing record.
			return uuid.Nil, "", utils.NewConflict("generated account id collides with an existing account")
		}
		return uuid.Nil, "", err
	}

	utils.Logger.Infof("created %s account %s", acc.Role, acc.ID)

	if role == models.RoleManager {
		return acc.ID, fmt.Sprintf(
			"Create your first property with createProperty; you will need your account id: %s", acc.ID), nil
	}
	return acc.ID, fmt.Sprintf(
		"Your account was created successfully. Keep this id for further interactions: %s", acc.ID), nil
}

/* ------------------------------------------------------------------
   Reads
------------------------------------------------------------------ */

func (s *registryService) CheckBalance(ctx context.Context, id uuid.UUID) (int64, error) {
	acc, err := s.GetAccount(ctx, id)
	if err != nil {
		return 0, err
	}
	return acc.Balance, nil
}

func (s *registryService) GetAccount(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	acc, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, utils.NewNotFound(fmt.Sprintf("no account exists for id %s", id))
	}
	return acc, nil
}

/* ------------------------------------------------------------------
   CreateProperty
------------------------------------------------------------------ */

func (s *registryService) CreateProperty(
	ctx context.Context,
	caller models.Identity,
	accountID uuid.UUID,
	name string,
	value int64,
) (string, error) {
	err := repositories.UpdateWithRetry(ctx, s.store, accountID, func(acc *models.Account) error {
		if strings.TrimSpace(name) == "" {
			return utils.NewInvalidArgument("property name cannot be empty")
		}
		if value <= 0 {
			return utils.NewInvalidArgument("property value must be positive")
		}
		if acc.Role != models.RoleManager {
			return utils.NewForbidden("only Manager accounts may own a property")
		}
		if acc.OwnerIdentity != caller {
			return utils.NewUnauthorized("caller is not the owner of this account")
		}
		if acc.Property != nil {
			return utils.NewConflict("account already owns a property")
		}

		acc.Property = &models.Property{
			Name:                name,
			Value:               value,
			RemainingPercentage: models.FullOwnership,
			Shareholders:        []models.Shareholder{},
		}
		acc.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return "", translateStoreErr(err, accountID)
	}

	utils.Logger.Infof("account %s now owns property %q (value %d)", accountID, name, value)
	return fmt.Sprintf(
		"Property created successfully. Shareholders will refer to your account id to invest: %s", accountID), nil
}

/* ------------------------------------------------------------------
   Invest
------------------------------------------------------------------ */

func (s *registryService) Invest(
	ctx context.Context,
	caller models.Identity,
	ownerID, buyerID uuid.UUID,
	percentage int64,
) (string, error) {
	for attempt := 0; attempt < maxInvestAttempts; attempt++ {
		owner, err := s.store.Get(ctx, ownerID)
		if err != nil {
			return "", err
		}
		if owner == nil {
			return "", utils.NewNotFound(fmt.Sprintf("owner account %s does not exist", ownerID))
		}
		buyer, err := s.store.Get(ctx, buyerID)
		if err != nil {
			return "", err
		}
		if buyer == nil {
			return "", utils.NewNotFound(fmt.Sprintf("buyer account %s does not exist", buyerID))
		}
		if ownerID == buyerID {
			return "", utils.NewInvalidArgument("an account cannot buy shares of its own property")
		}
		if owner.Property == nil {
			return "", utils.NewConflict("owner account has no property")
		}
		if buyer.OwnerIdentity != caller {
			return "", utils.NewUnauthorized("caller is not the owner of the buyer account")
		}

		prop := owner.Property
		if prop.RemainingPercentage == 0 {
			return "", utils.NewConflict("all shares of the property have already been sold")
		}
		if percentage <= 0 || percentage > prop.RemainingPercentage {
			return "", utils.NewInvalidArgument(fmt.Sprintf(
				"requested percentage must be between 1 and the remaining %d", prop.RemainingPercentage))
		}

		cost := shareCost(prop.Value, percentage)
		if cost == 0 {
			return "", utils.NewInvalidArgument("requested percentage is too small to price")
		}
		if buyer.Balance < cost {
			return "", utils.NewInsufficientFunds(fmt.Sprintf(
				"balance %d cannot cover the cost of %d", buyer.Balance, cost))
		}

		ownerVersion := owner.GetRowVersion()
		buyerVersion := buyer.GetRowVersion()

		now := time.Now().UTC()
		buyer.Balance -= cost
		buyer.UpdatedAt = now
		owner.Balance += cost
		owner.UpdatedAt = now
		prop.RemainingPercentage -= percentage
		if i := prop.FindShareholder(buyer.OwnerIdentity); i >= 0 {
			prop.Shareholders[i].Percentage += percentage
		} else {
			prop.Shareholders = append(prop.Shareholders, models.Shareholder{
				HolderID:       buyer.ID,
				HolderName:     buyer.DisplayName,
				HolderIdentity: buyer.OwnerIdentity,
				Percentage:     percentage,
			})
		}

		ok, err := s.store.UpdatePairIfVersion(ctx, owner, buyer, ownerVersion, buyerVersion)
		if err != nil {
			return "", err
		}
		if ok {
			utils.Logger.Infof("account %s bought %d%% of property %q from account %s for %d",
				buyerID, percentage, prop.Name, ownerID, cost)
			return fmt.Sprintf("Investment recorded: %d%% of %q for %d", percentage, prop.Name, cost), nil
		}
		// a concurrent purchase won the write – re-read and re-validate
	}
	return "", utils.NewConflict("the accounts changed during the purchase; please retry")
}

// shareCost prices percentage of value, truncating fractional units.
// The value is split around 100 so the intermediate products stay inside
// int64 for any percentage up to 100, however large the value is; the
// result equals value*percentage/100 computed without overflow.
func shareCost(value, percentage int64) int64 {
	return value/100*percentage + value%100*percentage/100
}

// translateStoreErr maps the sentinel errors of the repositories layer
// onto typed AppErrors; AppErrors from validation pass through unchanged.
func translateStoreErr(err error, id uuid.UUID) error {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, utils.ErrNotFound):
		return utils.NewNotFound(fmt.Sprintf("no account exists for id %s", id))
	case errors.Is(err, utils.ErrRowVersionConflict):
		return utils.NewConflict("the account changed during the update; please retry")
	default:
		return err
	}
}
