// Package masterdata holds the reference entities a purchase order points
// at: vendors and ship-to destinations.
package masterdata

import (
	"errors"
	"time"
)

// Vendor represents a supplier a purchase order can be placed with.
type Vendor struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	PaymentTerms string    `json:"payment_terms,omitempty"`
	Currency     string    `json:"currency,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Destination represents a warehouse or store stock is shipped to.
type Destination struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	Country   string    `json:"country,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ErrNotFound indicates a missing vendor or destination.
var ErrNotFound = errors.New("masterdata: not found")
