package repositories

import (
	"context"
	"time"

	"webshop/config"
	"webshop/models"
)

const productColumns = `id, category_id, name, slug, image_url, description, price, available, created_at, updated_at`

type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

func scanProduct(row interface {
	Scan(dest ...interface{}) error
}, p *models.Product) error {
	return row.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Slug, &p.ImageURL,
		&p.Description, &p.Price, &p.Available, &p.CreatedAt, &p.UpdatedAt)
}

// GetAvailableProducts lists in-stock products, optionally restricted to one
// category slug, newest first.
func (r *ProductRepository) GetAvailableProducts(ctx context.Context, categorySlug string, page, limit int) ([]models.Product, int, error) {
	offset := (page - 1) * limit

	countQuery := `SELECT COUNT(*) FROM products WHERE available = true`
	listQuery := `SELECT ` + productColumns + ` FROM products WHERE available = true`
	args := []interface{}{}

	if categorySlug != "" {
		countQuery += ` AND category_id IN (SELECT id FROM categories WHERE slug = $1)`
		listQuery += ` AND category_id IN (SELECT id FROM categories WHERE slug = $1)`
		args = append(args, categorySlug)
	}

	var total int
	if err := config.DB.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listQuery += ` ORDER BY created_at DESC`
	if categorySlug != "" {
		listQuery += ` LIMIT $2 OFFSET $3`
	} else {
		listQuery += ` LIMIT $1 OFFSET $2`
	}
	args = append(args, limit, offset)

	rows, err := config.DB.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

// GetAvailableProduct fetches one available product by id and slug. Missing
// or unavailable products surface as an error the caller maps to not-found.
func (r *ProductRepository) GetAvailableProduct(ctx context.Context, id int, slug string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND slug = $2 AND available = true`

	var p models.Product
	if err := scanProduct(config.DB.QueryRow(ctx, query, id, slug), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetAvailableProductByID is the add-to-cart lookup.
func (r *ProductRepository) GetAvailableProductByID(ctx context.Context, id int) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND available = true`

	var p models.Product
	if err := scanProduct(config.DB.QueryRow(ctx, query, id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProductByID fetches a product regardless of availability, for admin use.
func (r *ProductRepository) GetProductByID(ctx context.Context, id int) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var p models.Product
	if err := scanProduct(config.DB.QueryRow(ctx, query, id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ProductsByIDs resolves a finite set of ids in one round trip. Ids without a
// matching row are simply absent from the result.
func (r *ProductRepository) ProductsByIDs(ctx context.Context, ids []int) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1)`

	rows, err := config.DB.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (category_id, name, slug, image_url, description, price, available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`
	now := time.Now()
	return config.DB.QueryRow(ctx, query,
		product.CategoryID, product.Name, product.Slug, product.ImageURL,
		product.Description, product.Price, product.Available, now, now,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *ProductRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products SET category_id = $1, name = $2, slug = $3, image_url = $4,
		description = $5, price = $6, available = $7, updated_at = $8 WHERE id = $9
	`
	_, err := config.DB.Exec(ctx, query,
		product.CategoryID, product.Name, product.Slug, product.ImageURL,
		product.Description, product.Price, product.Available, time.Now(), product.ID,
	)
	return err
}

func (r *ProductRepository) DeleteProduct(ctx context.Context, id int) error {
	_, err := config.DB.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	return err
}
