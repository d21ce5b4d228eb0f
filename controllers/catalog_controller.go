package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/princinho/sahoinsure/insurance"
	"github.com/princinho/sahoinsure/models"
	"github.com/princinho/sahoinsure/quoting"
)

func GetCategories() gin.HandlerFunc {
	return func(c *gin.Context) {
		items := quoting.Catalog()
		c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
	}
}

func GetCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		category, ok := insurance.ParseCategory(strings.TrimSpace(c.Param("slug")))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		c.JSON(http.StatusOK, quoting.CatalogCategory(category))
	}
}

func GetProducts() gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []insurance.Product
		if slug := strings.TrimSpace(c.Query("category")); slug != "" {
			category, ok := insurance.ParseCategory(slug)
			if !ok {
				// unknown category => empty list
				c.JSON(http.StatusOK, gin.H{"items": []models.CatalogProduct{}, "total": 0})
				return
			}
			products = category.Products()
		} else {
			products = insurance.Products()
		}

		items := make([]models.CatalogProduct, 0, len(products))
		for _, p := range products {
			items = append(items, quoting.CatalogProduct(p))
		}
		c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
	}
}

func GetProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := quoting.ProductBySlug(strings.TrimSpace(c.Param("slug")))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusOK, quoting.CatalogProduct(p))
	}
}
