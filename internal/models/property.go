package models

import (
	"github.com/google/uuid"
)

// FullOwnership is the total equity of a property, in percentage points.
const FullOwnership int64 = 100

// Shareholder records how much equity one identity holds in a property.
type Shareholder struct {
	HolderID       uuid.UUID `json:"holder_id"`
	HolderName     string    `json:"holder_name"`
	HolderIdentity Identity  `json:"holder_identity"`
	Percentage     int64     `json:"percentage"`
}

// Property is an asset embedded in its owning Manager account. Name and
// value are immutable after creation; only RemainingPercentage and
// Shareholders change as equity is sold.
type Property struct {
	Name                string        `json:"name"`
	Value               int64         `json:"value"`
	RemainingPercentage int64         `json:"remaining_percentage"`
	Shareholders        []Shareholder `json:"shareholders"`
}

// FindShareholder returns the index of the entry held by the given
// identity, or -1 when the identity holds no shares yet.
func (p *Property) FindShareholder(identity Identity) int {
	for i := range p.Shareholders {
		if p.Shareholders[i].HolderIdentity == identity {
			return i
		}
	}
	return -1
}

// SoldPercentage is the total equity already sold to shareholders.
func (p *Property) SoldPercentage() int64 {
	var total int64
	for i := range p.Shareholders {
		total += p.Shareholders[i].Percentage
	}
	return total
}

// Clone returns a deep copy of the property.
func (p *Property) Clone() *Property {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Shareholders = make([]Shareholder, len(p.Shareholders))
	copy(cp.Shareholders, p.Shareholders)
	return &cp
}
