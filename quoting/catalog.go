package quoting

import (
	"github.com/princinho/sahoinsure/insurance"
	"github.com/princinho/sahoinsure/models"
	"github.com/princinho/sahoinsure/utils"
)

func Catalog() []models.Category {
	out := make([]models.Category, 0, 3)
	for _, c := range insurance.Categories() {
		out = append(out, CatalogCategory(c))
	}
	return out
}

func CatalogCategory(c insurance.Category) models.Category {
	products := c.Products()
	items := make([]models.CatalogProduct, 0, len(products))
	for _, p := range products {
		items = append(items, CatalogProduct(p))
	}
	return models.Category{
		Slug:        c,
		Name:        c.Title(),
		Description: c.Description(),
		Products:    items,
	}
}

func CatalogProduct(p insurance.Product) models.CatalogProduct {
	return models.CatalogProduct{
		Name:        p,
		Slug:        utils.GenerateSlug(string(p)),
		Category:    p.Category(),
		Description: p.Description(),
		BasePrice:   p.BasePrice(),
	}
}

// ProductBySlug resolves a catalog slug such as "travel-insurance".
func ProductBySlug(slug string) (insurance.Product, bool) {
	for _, p := range insurance.Products() {
		if utils.GenerateSlug(string(p)) == slug {
			return p, true
		}
	}
	return "", false
}
