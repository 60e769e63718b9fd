package controllers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"webshop/cart"
	"webshop/middleware"
	"webshop/models"
)

// ProductFinder is the catalog access the cart endpoints need: the batched
// join lookup plus a single-product lookup for adds.
type ProductFinder interface {
	cart.Catalog
	GetAvailableProductByID(ctx context.Context, id int) (*models.Product, error)
}

type CartController struct {
	Products ProductFinder
}

func NewCartController(products ProductFinder) *CartController {
	return &CartController{Products: products}
}

func (ctrl *CartController) loadCart(c *gin.Context) (*cart.Cart, bool) {
	crt, err := cart.New(middleware.GetSession(c))
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to load cart"})
		return nil, false
	}
	return crt, true
}

// @Summary Get cart
// @Description Get the current session's cart with enriched lines and totals
// @Tags Cart
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	crt, ok := ctrl.loadCart(c)
	if !ok {
		return
	}

	lines, err := crt.Lines(c.Request.Context(), ctrl.Products)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to load cart items"})
		return
	}

	total, err := crt.TotalPrice()
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to compute cart total"})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Cart retrieved",
		"data": gin.H{
			"items":       lines,
			"total_price": total,
			"length":      crt.Len(),
		},
	})
}

// @Summary Add product to cart
// @Description Add a product to the cart, incrementing or replacing the quantity
// @Tags Cart
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body models.AddToCartRequest true "Quantity and replace flag"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/items/{id} [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid product ID"})
		return
	}

	var req models.AddToCartRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Quantity must be between 1 and 20"})
		return
	}

	product, err := ctrl.Products.GetAvailableProductByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Product not found"})
		return
	}

	crt, ok := ctrl.loadCart(c)
	if !ok {
		return
	}

	if err := crt.Add(product, req.Quantity, req.Replace); err != nil {
		if errors.Is(err, cart.ErrInvalidQuantity) {
			c.JSON(400, gin.H{"success": false, "message": "Invalid quantity"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Failed to update cart"})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Product added to cart",
		"data":    gin.H{"length": crt.Len()},
	})
}

// @Summary Remove product from cart
// @Description Remove a product line from the cart; removing an absent product is a no-op
// @Tags Cart
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Router /cart/items/{id} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid product ID"})
		return
	}

	crt, ok := ctrl.loadCart(c)
	if !ok {
		return
	}

	if err := crt.Remove(id); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to update cart"})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Product removed from cart",
		"data":    gin.H{"length": crt.Len()},
	})
}

// @Summary Clear cart
// @Description Remove the entire cart from the session
// @Tags Cart
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	crt, ok := ctrl.loadCart(c)
	if !ok {
		return
	}

	crt.Clear()

	c.JSON(200, gin.H{"success": true, "message": "Cart cleared"})
}
