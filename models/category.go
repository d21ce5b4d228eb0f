package models

import "github.com/princinho/sahoinsure/insurance"

// Category and CatalogProduct are read-only views of the product taxonomy.
type Category struct {
	Slug        insurance.Category `json:"slug"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Products    []CatalogProduct   `json:"products"`
}

type CatalogProduct struct {
	Name        insurance.Product  `json:"name"`
	Slug        string             `json:"slug"`
	Category    insurance.Category `json:"category"`
	Description string             `json:"description"`
	BasePrice   float64            `json:"basePrice"`
}
