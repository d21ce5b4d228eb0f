package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/princinho/sahoinsure/insurance"
	"github.com/princinho/sahoinsure/validation"
)

// GetSchema returns the field constraints for ?category=&product=. Unknown
// or empty values yield the universal fields only.
func GetSchema(clock Clock) gin.HandlerFunc {
	return func(c *gin.Context) {
		category := insurance.Category(strings.TrimSpace(c.Query("category")))
		product := insurance.Product(strings.TrimSpace(c.Query("product")))

		schema := validation.BuildSchema(category, product, clock())
		c.JSON(http.StatusOK, gin.H{
			"category":   category,
			"product":    product,
			"extensions": validation.Extensions(category, product),
			"required":   schema.Required(),
			"fields":     schema,
		})
	}
}
