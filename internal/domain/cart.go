package domain

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartEntry is one shopper-selected item pending checkout. The price is a
// snapshot taken when the entry was created, not a live catalog reference.
type CartEntry struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email      string             `bson:"email" json:"email"`
	MenuItemID string             `bson:"menu_item_id" json:"menu_item_id"`
	Name       string             `bson:"name" json:"name"`
	Image      string             `bson:"image" json:"image"`
	Price      float64            `bson:"price" json:"price"`
}

func (c *CartEntry) Validate() error {
	if c.Email == "" {
		return fmt.Errorf("email is required")
	}
	if c.MenuItemID == "" {
		return fmt.Errorf("menu_item_id is required")
	}
	if c.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	return nil
}
