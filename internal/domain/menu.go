package domain

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MenuItem struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name     string             `bson:"name" json:"name"`
	Category string             `bson:"category" json:"category"`
	Price    float64            `bson:"price" json:"price"`
	Recipe   string             `bson:"recipe" json:"recipe"`
	Image    string             `bson:"image" json:"image"`
}

// MenuItemPatch carries the updatable fields; nil means leave unchanged.
type MenuItemPatch struct {
	Name     *string  `json:"name,omitempty"`
	Category *string  `json:"category,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Recipe   *string  `json:"recipe,omitempty"`
	Image    *string  `json:"image,omitempty"`
}

func (p *MenuItemPatch) Validate() error {
	if p.Price != nil && *p.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	if p.Name != nil && *p.Name == "" {
		return fmt.Errorf("name must not be empty")
	}
	return nil
}

type CreateMenuItemRequest struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Recipe   string  `json:"recipe"`
	Image    string  `json:"image"`
}

func (r *CreateMenuItemRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if r.Category == "" {
		return fmt.Errorf("category is required")
	}
	if r.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	return nil
}
