package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidName  = errors.New("product name must not be empty")
	ErrInvalidPrice = errors.New("product price must be greater than zero")
	ErrInvalidStock = errors.New("product stock must not be negative")
)

// Product is a catalogue entry. QuantityAvailable never goes negative;
// the order workflow rejects any order that would breach that before
// writing anything.
type Product struct {
	ID                int64
	Name              string
	Description       string
	Price             Cents
	Category          string
	QuantityAvailable int
	SellerID          int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Validate enforces the catalogue invariants.
func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrInvalidName
	}
	if p.Price <= 0 {
		return ErrInvalidPrice
	}
	if p.QuantityAvailable < 0 {
		return ErrInvalidStock
	}
	return nil
}
