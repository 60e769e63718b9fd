package services

import (
	"context"
	"errors"
	"math"

	"github.com/jackc/pgx/v5"

	"webshop/models"
	"webshop/repositories"
)

var ErrCategoryNotFound = errors.New("category not found")

type CatalogService struct {
	products   *repositories.ProductRepository
	categories *repositories.CategoryRepository
}

func NewCatalogService() *CatalogService {
	return &CatalogService{
		products:   repositories.NewProductRepository(),
		categories: repositories.NewCategoryRepository(),
	}
}

// ListProducts pages through available products. A non-empty category slug
// must resolve to an existing category.
func (s *CatalogService) ListProducts(ctx context.Context, categorySlug string, page, limit int) (*models.PaginationResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	var category *models.Category
	if categorySlug != "" {
		var err error
		category, err = s.categories.GetCategoryBySlug(ctx, categorySlug)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		if err != nil {
			return nil, err
		}
	}

	products, total, err := s.products.GetAvailableProducts(ctx, categorySlug, page, limit)
	if err != nil {
		return nil, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	message := "Products retrieved successfully"
	if category != nil {
		message = "Products in " + category.Name + " retrieved successfully"
	}

	return &models.PaginationResponse{
		Success: true,
		Message: message,
		Data:    products,
		Meta: models.MetaData{
			Page:       page,
			Limit:      limit,
			TotalItems: total,
			TotalPages: totalPages,
		},
	}, nil
}
