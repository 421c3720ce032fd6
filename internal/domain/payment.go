package domain

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentRecord is an immutable ledger entry for a completed checkout. Records
// are only ever inserted and read, never updated.
type PaymentRecord struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email         string             `bson:"email" json:"email"`
	Amount        float64            `bson:"amount" json:"amount"`
	Currency      string             `bson:"currency" json:"currency"`
	TransactionID string             `bson:"transaction_id" json:"transaction_id"`
	CartIDs       []string           `bson:"cart_ids" json:"cart_ids"`
	MenuItemIDs   []string           `bson:"menu_item_ids" json:"menu_item_ids"`
	Date          time.Time          `bson:"date" json:"date"`
}

func (p *PaymentRecord) Validate() error {
	if p.Email == "" {
		return fmt.Errorf("email is required")
	}
	if p.Amount < 0 {
		return fmt.Errorf("amount must not be negative")
	}
	if p.TransactionID == "" {
		return fmt.Errorf("transaction_id is required")
	}
	return nil
}

// FinalizeResult reports both steps of the checkout workflow. Cart cleanup is
// best effort, so callers must read DeletedCount rather than infer it from the
// HTTP status.
type FinalizeResult struct {
	PaymentID    string `json:"insertedId"`
	DeletedCount int64       `json:"deletedCount"`
}

type AdminStats struct {
	Users     int64   `json:"users"`
	MenuItems int64   `json:"menuItems"`
	Orders    int64   `json:"orders"`
	Revenue   float64 `json:"revenue"`
}

type CategoryStat struct {
	Category string  `json:"category"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}
