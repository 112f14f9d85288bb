package models

import (
	"time"

	"github.com/google/uuid"
)

// Identity is the opaque principal of the caller who owns an account.
// The registry never inspects it; it is only compared for equality.
type Identity string

// Role determines what an account may do. Fixed at creation.
type Role string

const (
	// RoleManager accounts may own exactly one property.
	RoleManager Role = "Manager"
	// RoleInvestor accounts may only purchase shares.
	RoleInvestor Role = "Investor"
)

func (r Role) Valid() bool {
	return r == RoleManager || r == RoleInvestor
}

// Account is one participant record. Never deleted once created.
type Account struct {
	Versioned

	ID            uuid.UUID `json:"id"`
	OwnerIdentity Identity  `json:"owner_identity"`
	DisplayName   string    `json:"display_name"`
	Role          Role      `json:"role"`
	Balance       int64     `json:"balance"` // minor units, never negative
	Property      *Property `json:"property,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ----- concurrency helpers -----
func (a *Account) GetID() string { return a.ID.String() }

// Clone returns a deep copy so callers can mutate it without
// affecting the stored record.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	cp := *a
	cp.Property = a.Property.Clone()
	return &cp
}
