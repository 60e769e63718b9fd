package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"webshop/models"
	"webshop/repositories"
	"webshop/utils"
)

type CategoryController struct {
	Categories *repositories.CategoryRepository
}

func NewCategoryController() *CategoryController {
	return &CategoryController{Categories: repositories.NewCategoryRepository()}
}

// @Summary Get all categories
// @Description Get list of all categories
// @Tags Categories
// @Produce json
// @Success 200 {object} models.Response
// @Router /categories [get]
func (ctrl *CategoryController) GetAllCategories(c *gin.Context) {
	categories, err := ctrl.Categories.GetAllCategories(c.Request.Context())
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to retrieve categories"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Categories retrieved", "data": categories})
}

// @Summary Create category
// @Description Create new category (Admin)
// @Tags Admin - Categories
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CreateCategoryRequest true "Category"
// @Success 201 {object} models.Response
// @Router /admin/categories [post]
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	category := &models.Category{Name: req.Name, Slug: utils.Slugify(req.Name)}
	if err := ctrl.Categories.CreateCategory(c.Request.Context(), category); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to create category"})
		return
	}

	invalidateProductCache()

	c.JSON(201, gin.H{"success": true, "message": "Category created successfully", "data": category})
}

// @Summary Update category
// @Description Update category name and slug (Admin)
// @Tags Admin - Categories
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param request body models.CreateCategoryRequest true "Category"
// @Success 200 {object} models.Response
// @Router /admin/categories/{id} [patch]
func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req models.CreateCategoryRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	category := &models.Category{ID: id, Name: req.Name, Slug: utils.Slugify(req.Name)}
	if err := ctrl.Categories.UpdateCategory(c.Request.Context(), category); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(404, gin.H{"success": false, "message": "Category not found"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Failed to update category"})
		return
	}

	invalidateProductCache()

	c.JSON(200, gin.H{"success": true, "message": "Category updated successfully", "data": category})
}

// @Summary Delete category
// @Description Delete category and its products (Admin)
// @Tags Admin - Categories
// @Security BearerAuth
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} models.Response
// @Router /admin/categories/{id} [delete]
func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if id <= 0 {
		c.JSON(400, gin.H{"success": false, "message": "Invalid category ID"})
		return
	}

	if err := ctrl.Categories.DeleteCategory(c.Request.Context(), id); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to delete category"})
		return
	}

	invalidateProductCache()

	c.JSON(200, gin.H{"success": true, "message": "Category deleted permanently"})
}
