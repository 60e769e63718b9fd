package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"webshop/config"
	"webshop/libs"
	"webshop/models"
	"webshop/repositories"
	"webshop/services"
	"webshop/utils"
)

type ProductController struct {
	Catalog  *services.CatalogService
	Products *repositories.ProductRepository
}

func NewProductController() *ProductController {
	return &ProductController{
		Catalog:  services.NewCatalogService(),
		Products: repositories.NewProductRepository(),
	}
}

func productCacheKey(category string, page, limit int) string {
	return fmt.Sprintf("products_list_c%s_p%d_l%d", category, page, limit)
}

func invalidateProductCache() {
	if config.Redis == nil {
		return
	}
	ctx := context.Background()
	iter := config.Redis.Scan(ctx, 0, "products_list_*", 0).Iterator()
	for iter.Next(ctx) {
		config.Redis.Del(ctx, iter.Val())
	}
}

// @Summary List products
// @Description Get paginated list of available products, optionally filtered by category slug
// @Tags Products
// @Produce json
// @Param category query string false "Category slug"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} models.PaginationResponse
// @Router /products [get]
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	category := c.Query("category")

	cacheKey := productCacheKey(category, page, limit)
	ctx := c.Request.Context()

	if config.Redis != nil {
		cached, err := config.Redis.Get(ctx, cacheKey).Result()
		if err == nil {
			c.Data(200, "application/json", []byte(cached))
			return
		}
	}

	response, err := ctrl.Catalog.ListProducts(ctx, category, page, limit)
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			c.JSON(404, gin.H{"success": false, "message": "Category not found"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Failed to retrieve products"})
		return
	}

	if config.Redis != nil {
		jsonData, _ := json.Marshal(response)
		config.Redis.Set(ctx, cacheKey, string(jsonData), 5*time.Minute)
	}

	c.JSON(200, response)
}

// @Summary Get product detail
// @Description Get one available product by id and slug
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Param slug path string true "Product slug"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id}/{slug} [get]
func (ctrl *ProductController) GetProductDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid product ID"})
		return
	}

	product, err := ctrl.Products.GetAvailableProduct(c.Request.Context(), id, c.Param("slug"))
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Product not found"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Product retrieved", "data": product})
}

// @Summary Create product
// @Description Create new product (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Product name"
// @Param category_id formData int true "Category ID"
// @Param description formData string false "Product description"
// @Param price formData string true "Product price, decimal string"
// @Param available formData bool false "Is available"
// @Param image formData file false "Product image"
// @Success 201 {object} models.Response
// @Router /admin/products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		c.JSON(400, gin.H{"success": false, "message": "Invalid price"})
		return
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	product := &models.Product{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Slug:        utils.Slugify(req.Name),
		Description: req.Description,
		Price:       price,
		Available:   available,
	}

	if file, err := c.FormFile("image"); err == nil {
		imageURL, err := libs.UploadProductImage(c.Request.Context(), file)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "message": "Failed to upload image", "error": err.Error()})
			return
		}
		product.ImageURL = imageURL
	}

	if err := ctrl.Products.CreateProduct(c.Request.Context(), product); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to create product"})
		return
	}

	invalidateProductCache()

	c.JSON(201, gin.H{"success": true, "message": "Product created successfully", "data": product})
}

// @Summary Update product
// @Description Update product (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/products/{id} [patch]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	product, err := ctrl.Products.GetProductByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(404, gin.H{"success": false, "message": "Product not found"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Failed to load product"})
		return
	}

	var req models.UpdateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	if req.Name != "" {
		product.Name = req.Name
		product.Slug = utils.Slugify(req.Name)
	}
	if req.CategoryID != 0 {
		product.CategoryID = req.CategoryID
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.Price != "" {
		price, err := decimal.NewFromString(req.Price)
		if err != nil || price.IsNegative() {
			c.JSON(400, gin.H{"success": false, "message": "Invalid price"})
			return
		}
		product.Price = price
	}
	if req.Available != nil {
		product.Available = *req.Available
	}

	if file, err := c.FormFile("image"); err == nil {
		imageURL, err := libs.UploadProductImage(c.Request.Context(), file)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "message": "Failed to upload image", "error": err.Error()})
			return
		}
		product.ImageURL = imageURL
	}

	if err := ctrl.Products.UpdateProduct(c.Request.Context(), product); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to update product"})
		return
	}

	invalidateProductCache()

	c.JSON(200, gin.H{"success": true, "message": "Product updated successfully", "data": product})
}

// @Summary Delete product
// @Description Delete product permanently (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Router /admin/products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if id <= 0 {
		c.JSON(400, gin.H{"success": false, "message": "Invalid product ID"})
		return
	}

	if err := ctrl.Products.DeleteProduct(c.Request.Context(), id); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to delete product"})
		return
	}

	invalidateProductCache()

	c.JSON(200, gin.H{"success": true, "message": "Product deleted permanently"})
}
