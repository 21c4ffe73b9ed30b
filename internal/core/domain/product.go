package domain

import (
	"errors"
	"time"
)

var ErrProductNotFound = errors.New("product not found")
var ErrProductUnavailable = errors.New("product not available")

// PriceOption is a named customization (flavor, size, egg option) whose
// choice scales the base price by Multiplier.
type PriceOption struct {
	Name       string `json:"name" bson:"name"`
	Servings   string `json:"servings,omitempty" bson:"servings,omitempty"`
	Multiplier float64 `json:"price_multiplier" bson:"price_multiplier"`
}

// Review is a customer review attached to a product.
type Review struct {
	User    string    `json:"user" bson:"user"`
	Rating  int       `json:"rating" bson:"rating"`
	Comment string    `json:"comment" bson:"comment"`
	Date    time.Time `json:"date" bson:"date"`
}

// Product is a catalog entry.
type Product struct {
	ID          string        `json:"id" bson:"_id,omitempty"`
	Name        string        `json:"name" bson:"name"`
	Description string        `json:"description,omitempty" bson:"description,omitempty"`
	Category    string        `json:"category" bson:"category"`
	Subcategory string        `json:"subcategory" bson:"subcategory"`
	BasePrice   float64       `json:"base_price" bson:"base_price"`
	Image       string        `json:"image,omitempty" bson:"image,omitempty"`
	Images      []string      `json:"images,omitempty" bson:"images,omitempty"`
	Flavors     []PriceOption `json:"flavors,omitempty" bson:"flavors,omitempty"`
	Sizes       []PriceOption `json:"sizes,omitempty" bson:"sizes,omitempty"`
	EggOptions  []PriceOption `json:"egg_options,omitempty" bson:"egg_options,omitempty"`
	Rating      float64       `json:"rating" bson:"rating"`
	Reviews     []Review      `json:"reviews,omitempty" bson:"reviews,omitempty"`
	Available   bool          `json:"available" bson:"available"`
	Featured    bool          `json:"featured" bson:"featured"`
	Stock       int           `json:"stock" bson:"stock"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" bson:"updated_at"`
}
