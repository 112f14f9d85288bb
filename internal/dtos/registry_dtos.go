package dtos

import (
	"github.com/google/uuid"

	"github.com/poofware/equity-registry/internal/models"
)

type CreateAccountRequest struct {
	DisplayName    string `json:"display_name" validate:"required"`
	Role           string `json:"role" validate:"required"`
	InitialBalance int64  `json:"initial_balance" validate:"gte=0"`
}

type CreateAccountResponse struct {
	ID      uuid.UUID `json:"id"`
	Message string    `json:"message"`
}

type BalanceResponse struct {
	Balance int64  `json:"balance"`
	Message string `json:"message"`
}

type CreatePropertyRequest struct {
	Name  string `json:"name" validate:"required"`
	Value int64  `json:"value" validate:"required,gt=0"`
}

type InvestRequest struct {
	OwnerID    uuid.UUID `json:"owner_id" validate:"required"`
	BuyerID    uuid.UUID `json:"buyer_id" validate:"required"`
	Percentage int64     `json:"percentage" validate:"required,gt=0,lte=100"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type Shareholder struct {
	HolderID   uuid.UUID `json:"holder_id"`
	HolderName string    `json:"holder_name"`
	Percentage int64     `json:"percentage"`
}

type Property struct {
	Name                string        `json:"name"`
	Value               int64         `json:"value"`
	RemainingPercentage int64         `json:"remaining_percentage"`
	Shareholders        []Shareholder `json:"shareholders"`
}

// Account is the public view of an account record. The owner identity
// stays internal.
type Account struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	Balance     int64     `json:"balance"`
	Property    *Property `json:"property,omitempty"`
}

func NewAccountFromModel(acc *models.Account) Account {
	out := Account{
		ID:          acc.ID,
		DisplayName: acc.DisplayName,
		Role:        string(acc.Role),
		Balance:     acc.Balance,
	}
	if acc.Property != nil {
		p := Property{
			Name:                acc.Property.Name,
			Value:               acc.Property.Value,
			RemainingPercentage: acc.Property.RemainingPercentage,
			Shareholders:        make([]Shareholder, 0, len(acc.Property.Shareholders)),
		}
		for _, sh := range acc.Property.Shareholders {
			p.Shareholders = append(p.Shareholders, Shareholder{
				HolderID:   sh.HolderID,
				HolderName: sh.HolderName,
				Percentage: sh.Percentage,
			})
		}
		out.Property = &p
	}
	return out
}
