package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"webshop/config"
	"webshop/models"
)

type CategoryRepository struct{}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{}
}

func (r *CategoryRepository) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	query := `SELECT id, name, slug FROM categories ORDER BY name`

	rows, err := config.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Slug); err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	query := `SELECT id, name, slug FROM categories WHERE slug = $1`

	var cat models.Category
	err := config.DB.QueryRow(ctx, query, slug).Scan(&cat.ID, &cat.Name, &cat.Slug)
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	query := `INSERT INTO categories (name, slug) VALUES ($1, $2) RETURNING id`
	return config.DB.QueryRow(ctx, query, category.Name, category.Slug).Scan(&category.ID)
}

func (r *CategoryRepository) UpdateCategory(ctx context.Context, category *models.Category) error {
	query := `UPDATE categories SET name = $1, slug = $2 WHERE id = $3`
	tag, err := config.DB.Exec(ctx, query, category.Name, category.Slug, category.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *CategoryRepository) DeleteCategory(ctx context.Context, id int) error {
	_, err := config.DB.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	return err
}
