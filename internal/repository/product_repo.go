package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/model"
)

type ProductRepository struct {
	DB *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{DB: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *model.Product) (string, error) {
	id := uuid.NewString()
	query := `INSERT INTO products (id, name, price, stock, description, image_url) VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.DB.Exec(ctx, query, id, p.Name, p.Price, p.Stock, p.Description, p.ImageURL); err != nil {
		return "", err
	}
	return id, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	var p model.Product
	query := `
		SELECT id, name, price, stock, description, image_url, created_at
		FROM products
		WHERE id=$1
	`
	if err := r.DB.
		QueryRow(ctx, query, id).
		Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.Description, &p.ImageURL, &p.CreatedAt); err != nil {
		return nil, errors.New("product not found")
	}
	return &p, nil
}

func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]model.Product, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT id, name, price, stock, description, image_url, created_at FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.DB.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.Description, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *ProductRepository) Update(ctx context.Context, p *model.Product) error {
	query := `UPDATE products SET name=$1, price=$2, stock=$3, description=$4 WHERE id=$5`
	tag, err := r.DB.Exec(ctx, query, p.Name, p.Price, p.Stock, p.Description, p.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("product not found")
	}
	return nil
}

func (r *ProductRepository) SetImageURL(ctx context.Context, id, imageURL string) error {
	query := `UPDATE products SET image_url=$1 WHERE id=$2`
	tag, err := r.DB.Exec(ctx, query, imageURL, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("product not found")
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM products WHERE id=$1`
	tag, err := r.DB.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("product not found")
	}
	return nil
}
