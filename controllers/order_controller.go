package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"webshop/cart"
	"webshop/middleware"
	"webshop/models"
	"webshop/repositories"
	"webshop/services"
)

type OrderController struct {
	Orders   *services.OrderService
	Repo     *repositories.OrderRepository
	Products cart.Catalog
}

func NewOrderController(orders *services.OrderService, products cart.Catalog) *OrderController {
	return &OrderController{
		Orders:   orders,
		Repo:     repositories.NewOrderRepository(),
		Products: products,
	}
}

// @Summary Create order
// @Description Create an order from the session cart and queue the confirmation email
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body models.CreateOrderRequest true "Purchaser details"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /orders [post]
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	crt, err := cart.New(middleware.GetSession(c))
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to load cart"})
		return
	}

	order, err := ctrl.Orders.PlaceOrder(c.Request.Context(), crt, ctrl.Products, req)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			c.JSON(400, gin.H{"success": false, "message": "Cart is empty"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Failed to create order"})
		return
	}

	c.JSON(201, gin.H{
		"success": true,
		"message": "Order created successfully",
		"data": gin.H{
			"order":       order,
			"total_price": order.TotalCost(),
		},
	})
}

// @Summary Get all orders
// @Description Get all orders with pagination (Admin)
// @Tags Admin - Orders
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} models.PaginationResponse
// @Router /admin/orders [get]
func (ctrl *OrderController) GetAllOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	orders, total, err := ctrl.Repo.GetAllOrders(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to retrieve orders"})
		return
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	c.JSON(200, models.PaginationResponse{
		Success: true,
		Message: "Orders retrieved",
		Data:    orders,
		Meta: models.MetaData{
			Page:       page,
			Limit:      limit,
			TotalItems: total,
			TotalPages: totalPages,
		},
	})
}

// @Summary Get order by ID
// @Description Get one order with its items (Admin)
// @Tags Admin - Orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/orders/{id} [get]
func (ctrl *OrderController) GetOrderByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	order, err := ctrl.Repo.GetOrderByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(404, gin.H{"success": false, "message": "Order not found"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Failed to retrieve order"})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Order retrieved",
		"data": gin.H{
			"order":       order,
			"total_price": order.TotalCost(),
		},
	})
}
